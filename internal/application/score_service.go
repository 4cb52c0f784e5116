package application

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/doodledict/doodledict-api/internal/domain/entity"
	repo "github.com/doodledict/doodledict-api/internal/domain/repository"
	"github.com/doodledict/doodledict-api/pkg/helpers"
)

// ScoreService owns the personal-best ledger rules and the cached
// leaderboard view.
type ScoreService struct {
	Scores   repo.ScoreRepository
	Users    repo.UserRepository
	Redis    *redis.Client
	Logger   *logrus.Logger
	CacheTTL time.Duration
}

func NewScoreService(scores repo.ScoreRepository, users repo.UserRepository, rdb *redis.Client, logger *logrus.Logger, cacheTTL time.Duration) *ScoreService {
	return &ScoreService{Scores: scores, Users: users, Redis: rdb, Logger: logger, CacheTTL: cacheTTL}
}

const leaderboardKeyPrefix = "leaderboard:top:"

func leaderboardKey(n int) string {
	return leaderboardKeyPrefix + strconv.Itoa(n)
}

// SaveScore records the score iff it is a new personal best for the player.
// inserted=false is the normal "not a new best" outcome, not an error.
// Unknown players fail with ErrUserNotFound.
func (s *ScoreService) SaveScore(ctx context.Context, username string, score, totalAttempts int) (bool, error) {
	if _, err := s.Users.GetByUsername(ctx, username); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return false, ErrUserNotFound
		}
		return false, err
	}
	inserted, err := s.Scores.RecordIfBest(ctx, username, score, totalAttempts)
	if err != nil {
		return false, err
	}
	if inserted && s.Redis != nil {
		// A new best changes the ranked view; drop every cached size so the
		// next read rebuilds from the ledger.
		if err := helpers.RedisDelPattern(ctx, s.Redis, leaderboardKeyPrefix+"*"); err != nil && s.Logger != nil {
			s.Logger.WithError(err).Warn("leaderboard cache invalidation failed")
		}
	}
	return inserted, nil
}

const defaultLeaderboardSize = 10

// Leaderboard returns the top-n ranked view, served from a short-TTL redis
// cache when warm. Correctness never depends on the cache: a miss always
// falls through to the ledger query.
func (s *ScoreService) Leaderboard(ctx context.Context, n int) ([]entity.LeaderboardEntry, error) {
	if n <= 0 {
		n = defaultLeaderboardSize
	}
	key := leaderboardKey(n)
	if s.Redis != nil {
		var cached []entity.LeaderboardEntry
		if ok, err := helpers.RedisGetJSON(ctx, s.Redis, key, &cached); err == nil && ok {
			return cached, nil
		}
	}
	entries, err := s.Scores.TopN(ctx, n)
	if err != nil {
		return nil, err
	}
	if s.Redis != nil {
		if err := helpers.RedisSetJSON(ctx, s.Redis, key, entries, s.CacheTTL); err != nil && s.Logger != nil {
			s.Logger.WithError(err).Warn("leaderboard cache write failed")
		}
	}
	return entries, nil
}
