package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/doodledict/doodledict-api/internal/interface/http"
)

// ScoreModule wires the ledger routes.
// POST /save-score trusts the body username, matching the game client;
// GET /leaderboard is public and read-only.

type ScoreModule struct {
	Handler *handlers.ScoreHandler
}

func NewScoreModule(h *handlers.ScoreHandler) *ScoreModule {
	return &ScoreModule{Handler: h}
}

func (m *ScoreModule) Register(rg *gin.RouterGroup) {
	rg.POST("/save-score", m.Handler.SaveScore)
	rg.GET("/leaderboard", m.Handler.Leaderboard)
}
