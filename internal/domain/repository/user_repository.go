package repository

import (
	"context"
	"errors"

	"github.com/doodledict/doodledict-api/internal/domain/entity"
)

var (
	// ErrNotFound is returned when a lookup matches no row.
	ErrNotFound = errors.New("not found")
	// ErrDuplicate is returned when an insert violates a uniqueness
	// constraint (username or email already taken).
	ErrDuplicate = errors.New("duplicate")
)

// UserRepository defines the interface for credential store operations.
// Create must detect duplicates atomically with the insert, not as a
// separate pre-check, so two concurrent signups for the same username
// cannot both succeed.
type UserRepository interface {
	Create(ctx context.Context, u *entity.User) error
	GetByUsername(ctx context.Context, username string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
}
