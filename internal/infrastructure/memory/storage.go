package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/doodledict/doodledict-api/internal/domain/entity"
	"github.com/doodledict/doodledict-api/internal/domain/repository"
)

// Storage is an in-memory implementation of the user and score
// repositories. It backs service and handler tests and honors the same
// contracts as the Postgres implementation, including per-username
// serialization of the ledger's check-then-insert.
type Storage struct {
	mu sync.RWMutex

	users      map[string]*entity.User // keyed by username
	emailIndex map[string]string       // email -> username
	scores     map[string][]entity.Score
	nextUserID int64
	nextRowID  int64
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		users:      make(map[string]*entity.User),
		emailIndex: make(map[string]string),
		scores:     make(map[string][]entity.Score),
	}
}

var (
	_ repository.UserRepository  = (*Storage)(nil)
	_ repository.ScoreRepository = (*Storage)(nil)
)

// User operations

func (s *Storage) Create(_ context.Context, u *entity.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[u.Username]; ok {
		return repository.ErrDuplicate
	}
	if _, ok := s.emailIndex[u.Email]; ok {
		return repository.ErrDuplicate
	}
	s.nextUserID++
	u.ID = s.nextUserID
	u.CreatedAt = time.Now()
	cp := *u
	s.users[u.Username] = &cp
	s.emailIndex[u.Email] = u.Username
	return nil
}

func (s *Storage) GetByUsername(_ context.Context, username string) (*entity.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[username]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (s *Storage) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	username, ok := s.emailIndex[email]
	if !ok {
		return nil, repository.ErrNotFound
	}
	u, ok := s.users[username]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

// Score ledger operations

func (s *Storage) RecordIfBest(_ context.Context, username string, score, totalAttempts int) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	best := -1
	for _, ev := range s.scores[username] {
		if ev.Score > best {
			best = ev.Score
		}
	}
	if score <= best {
		return false, nil
	}
	s.nextRowID++
	s.scores[username] = append(s.scores[username], entity.Score{
		ID:            s.nextRowID,
		Username:      username,
		Score:         score,
		TotalAttempts: totalAttempts,
		CreatedAt:     time.Now(),
	})
	return true, nil
}

func (s *Storage) TopN(_ context.Context, n int) ([]entity.LeaderboardEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	type ranked struct {
		entry entity.LeaderboardEntry
		at    time.Time
	}
	best := make([]ranked, 0, len(s.scores))
	for username, events := range s.scores {
		if len(events) == 0 {
			continue
		}
		// Strict increase per username: the latest event is the best.
		latest := events[len(events)-1]
		best = append(best, ranked{
			entry: entity.LeaderboardEntry{
				Username:      username,
				Score:         latest.Score,
				TotalAttempts: latest.TotalAttempts,
			},
			at: latest.CreatedAt,
		})
	}
	sort.Slice(best, func(i, j int) bool {
		if best[i].entry.Score != best[j].entry.Score {
			return best[i].entry.Score > best[j].entry.Score
		}
		return best[i].at.Before(best[j].at)
	})
	if len(best) > n {
		best = best[:n]
	}
	out := make([]entity.LeaderboardEntry, 0, len(best))
	for _, r := range best {
		out = append(out, r.entry)
	}
	return out, nil
}

// Best returns the player's current best score, false when the player has
// no score events yet. Test helper.
func (s *Storage) Best(username string) (int, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	events := s.scores[username]
	if len(events) == 0 {
		return 0, false
	}
	return events[len(events)-1].Score, true
}

// Events returns a copy of the player's ledger rows in insert order.
// Test helper.
func (s *Storage) Events(username string) []entity.Score {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]entity.Score, len(s.scores[username]))
	copy(out, s.scores[username])
	return out
}
