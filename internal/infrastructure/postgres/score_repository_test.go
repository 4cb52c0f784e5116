package postgres

import (
	"context"
	"testing"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/doodledict/doodledict-api/internal/domain/entity"
)

func TestScoreRepository_RecordIfBest(t *testing.T) {
	tests := []struct {
		name         string
		score        int
		setupMock    func(mock pgxmock.PgxPoolIface)
		wantInserted bool
	}{
		{
			name:  "first score inserts",
			score: 50,
			setupMock: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectBegin()
				mock.ExpectExec(`pg_advisory_xact_lock`).
					WithArgs("alice").
					WillReturnResult(pgxmock.NewResult("SELECT", 1))
				mock.ExpectQuery(`SELECT COALESCE\(MAX\(score\), -1\)`).
					WithArgs("alice").
					WillReturnRows(pgxmock.NewRows([]string{"coalesce"}).AddRow(-1))
				mock.ExpectExec(`INSERT INTO scores`).
					WithArgs("alice", 50, 3).
					WillReturnResult(pgxmock.NewResult("INSERT", 1))
				mock.ExpectCommit()
			},
			wantInserted: true,
		},
		{
			name:  "higher score inserts",
			score: 60,
			setupMock: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectBegin()
				mock.ExpectExec(`pg_advisory_xact_lock`).
					WithArgs("alice").
					WillReturnResult(pgxmock.NewResult("SELECT", 1))
				mock.ExpectQuery(`SELECT COALESCE\(MAX\(score\), -1\)`).
					WithArgs("alice").
					WillReturnRows(pgxmock.NewRows([]string{"coalesce"}).AddRow(50))
				mock.ExpectExec(`INSERT INTO scores`).
					WithArgs("alice", 60, 3).
					WillReturnResult(pgxmock.NewResult("INSERT", 1))
				mock.ExpectCommit()
			},
			wantInserted: true,
		},
		{
			name:  "lower score rolls back without insert",
			score: 40,
			setupMock: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectBegin()
				mock.ExpectExec(`pg_advisory_xact_lock`).
					WithArgs("alice").
					WillReturnResult(pgxmock.NewResult("SELECT", 1))
				mock.ExpectQuery(`SELECT COALESCE\(MAX\(score\), -1\)`).
					WithArgs("alice").
					WillReturnRows(pgxmock.NewRows([]string{"coalesce"}).AddRow(50))
				mock.ExpectRollback()
			},
			wantInserted: false,
		},
		{
			name:  "tie rolls back without insert",
			score: 50,
			setupMock: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectBegin()
				mock.ExpectExec(`pg_advisory_xact_lock`).
					WithArgs("alice").
					WillReturnResult(pgxmock.NewResult("SELECT", 1))
				mock.ExpectQuery(`SELECT COALESCE\(MAX\(score\), -1\)`).
					WithArgs("alice").
					WillReturnRows(pgxmock.NewRows([]string{"coalesce"}).AddRow(50))
				mock.ExpectRollback()
			},
			wantInserted: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock, err := pgxmock.NewPool()
			require.NoError(t, err, "failed to create mock")
			defer mock.Close()

			tt.setupMock(mock)

			repo := NewScoreRepository(mock)
			inserted, err := repo.RecordIfBest(context.Background(), "alice", tt.score, 3)
			require.NoError(t, err)
			assert.Equal(t, tt.wantInserted, inserted)

			assert.NoError(t, mock.ExpectationsWereMet(), "unfulfilled expectations")
		})
	}
}

func TestScoreRepository_TopN(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	rows := pgxmock.NewRows([]string{"username", "score", "total_attempts"}).
		AddRow("bob", 90, 4).
		AddRow("carol", 70, 2).
		AddRow("alice", 40, 3)
	mock.ExpectQuery(`SELECT username, score, total_attempts`).
		WithArgs(10).
		WillReturnRows(rows)

	repo := NewScoreRepository(mock)
	got, err := repo.TopN(context.Background(), 10)
	require.NoError(t, err)

	assert.Equal(t, []entity.LeaderboardEntry{
		{Username: "bob", Score: 90, TotalAttempts: 4},
		{Username: "carol", Score: 70, TotalAttempts: 2},
		{Username: "alice", Score: 40, TotalAttempts: 3},
	}, got)

	assert.NoError(t, mock.ExpectationsWereMet())
}
