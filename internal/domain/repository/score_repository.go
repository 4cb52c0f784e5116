package repository

import (
	"context"

	"github.com/doodledict/doodledict-api/internal/domain/entity"
)

// ScoreRepository defines the interface for the personal-best ledger.
type ScoreRepository interface {
	// RecordIfBest appends a new score event iff score strictly exceeds the
	// player's current best. The read-then-insert must be serialized per
	// username with respect to other writers; callers for different
	// usernames must not block each other. Ties are not a new best.
	RecordIfBest(ctx context.Context, username string, score, totalAttempts int) (bool, error)

	// TopN returns up to n leaderboard entries, strictly descending by best
	// score, ties broken by the earliest timestamp of the winning event.
	TopN(ctx context.Context, n int) ([]entity.LeaderboardEntry, error)
}
