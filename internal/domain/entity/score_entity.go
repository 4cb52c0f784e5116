package entity

import (
	"time"
)

// Score is an immutable personal-best event: the player identified by
// Username reached Score on TotalAttempts attempts at CreatedAt. Rows are
// only ever appended, and per username the ledger holds strictly
// increasing scores, so the most recent row is the player's current best.
type Score struct {
	ID            int64
	Username      string
	Score         int
	TotalAttempts int
	CreatedAt     time.Time
}

// LeaderboardEntry is the read-only ranked view over latest-per-player rows.
type LeaderboardEntry struct {
	Username      string `json:"username"`
	Score         int    `json:"score"`
	TotalAttempts int    `json:"total_attempts"`
}
