package postgres

import (
	"context"

	"github.com/doodledict/doodledict-api/internal/domain/entity"
	"github.com/doodledict/doodledict-api/internal/domain/repository"
)

type ScoreRepository struct {
	db DB
}

func NewScoreRepository(db DB) *ScoreRepository {
	return &ScoreRepository{db: db}
}

// RecordIfBest appends a score event when it strictly exceeds the player's
// current best. The whole read-then-insert runs in one transaction holding
// an advisory lock keyed by username, so concurrent submissions for the
// same player serialize while other players proceed unblocked. A caller
// disconnect rolls the transaction back; no partial row becomes visible.
func (r *ScoreRepository) RecordIfBest(ctx context.Context, username string, score, totalAttempts int) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return false, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	// Per-username serialization of the check-then-insert sequence. The
	// lock is released automatically at commit or rollback.
	if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtext($1))`, username); err != nil {
		return false, err
	}

	var best int
	if err := tx.QueryRow(ctx, `
		SELECT COALESCE(MAX(score), -1) FROM scores WHERE username = $1
	`, username).Scan(&best); err != nil {
		return false, err
	}

	// Ties are not a new best.
	if score <= best {
		return false, nil
	}

	if _, err := tx.Exec(ctx, `
		INSERT INTO scores (username, score, total_attempts)
		VALUES ($1, $2, $3)
	`, username, score, totalAttempts); err != nil {
		return false, err
	}

	if err := tx.Commit(ctx); err != nil {
		return false, err
	}
	return true, nil
}

// TopN ranks players by their latest (hence best) ledger row. The strict
// increase invariant makes DISTINCT ON by highest score pick exactly one
// row per player.
func (r *ScoreRepository) TopN(ctx context.Context, n int) ([]entity.LeaderboardEntry, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	rows, err := r.db.Query(ctx, `
		WITH best AS (
			SELECT DISTINCT ON (username) username, score, total_attempts, created_at
			FROM scores
			ORDER BY username, score DESC, created_at ASC
		)
		SELECT username, score, total_attempts
		FROM best
		ORDER BY score DESC, created_at ASC
		LIMIT $1
	`, n)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := make([]entity.LeaderboardEntry, 0, n)
	for rows.Next() {
		var e entity.LeaderboardEntry
		if err := rows.Scan(&e.Username, &e.Score, &e.TotalAttempts); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return entries, nil
}

var _ repository.ScoreRepository = (*ScoreRepository)(nil)
