package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/doodledict/doodledict-api/internal/application"
	"github.com/doodledict/doodledict-api/pkg/response"
	"github.com/doodledict/doodledict-api/pkg/validation"
)

type ScoreHandler struct {
	Svc             *application.ScoreService
	Logger          *logrus.Logger
	LeaderboardSize int
}

func NewScoreHandler(svc *application.ScoreService, logger *logrus.Logger, leaderboardSize int) *ScoreHandler {
	return &ScoreHandler{Svc: svc, Logger: logger, LeaderboardSize: leaderboardSize}
}

type saveScoreRequest struct {
	Username      string `json:"username" binding:"required"`
	Score         int    `json:"score" binding:"gte=0"`
	TotalAttempts int    `json:"total_attempts" binding:"gte=0"`
}

// SaveScore POST /save-score. Returns 200 whether or not the score was a
// new personal best; only an unknown username is an error.
func (h *ScoreHandler) SaveScore(c *gin.Context) {
	var req saveScoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	inserted, err := h.Svc.SaveScore(c.Request.Context(), req.Username, req.Score, req.TotalAttempts)
	if err != nil {
		if errors.Is(err, application.ErrUserNotFound) {
			response.Error[any](c, http.StatusNotFound, "user not found", nil)
			return
		}
		h.Logger.WithError(err).WithField("username", req.Username).Error("save score failed")
		response.Error[any](c, http.StatusInternalServerError, "failed to save score", nil)
		return
	}
	response.Success(c, http.StatusOK, gin.H{
		"message": "Score saved successfully",
	}, "score processed", map[string]any{"new_best": inserted})
}

// Leaderboard GET /leaderboard
func (h *ScoreHandler) Leaderboard(c *gin.Context) {
	entries, err := h.Svc.Leaderboard(c.Request.Context(), h.LeaderboardSize)
	if err != nil {
		h.Logger.WithError(err).Error("leaderboard query failed")
		response.Error[any](c, http.StatusInternalServerError, "failed to load leaderboard", nil)
		return
	}
	response.Success(c, http.StatusOK, gin.H{
		"leaderboard": entries,
	}, "leaderboard", nil)
}
