package entity

import (
	"time"
)

// User is the aggregate root for the player identity domain.
// Passwords are stored as bcrypt hashes in PasswordHash and never leave
// the credential layer. Username is the immutable business key scores
// reference; this core never mutates or deletes a user.
type User struct {
	ID           int64
	Username     string
	Email        string
	PasswordHash string
	Name         string
	CreatedAt    time.Time
}
