package router

import (
	"github.com/doodledict/doodledict-api/internal/application"
	"github.com/doodledict/doodledict-api/internal/container"
	pginfra "github.com/doodledict/doodledict-api/internal/infrastructure/postgres"
	handlers "github.com/doodledict/doodledict-api/internal/interface/http"
	"github.com/doodledict/doodledict-api/internal/router/modules"
)

// InitModules initializes all application modules and registers them with
// the router registry. Called once during application startup.
func InitModules(r *Registry) {
	cfg := container.GetConfig()
	logger := container.GetLogger()

	userRepo := pginfra.NewUserRepository(container.GetPGPool())
	scoreRepo := pginfra.NewScoreRepository(container.GetPGPool())

	authSvc := application.NewAuthService(userRepo, container.GetJWT(), logger, cfg.BcryptCost)
	scoreSvc := application.NewScoreService(scoreRepo, userRepo, container.GetRedis(), logger, cfg.LeaderboardCacheTTL)
	recognizeSvc := application.NewRecognizeService(container.GetOracle(), logger)

	authHandler := handlers.NewAuthHandler(authSvc, logger)
	scoreHandler := handlers.NewScoreHandler(scoreSvc, logger, cfg.LeaderboardSize)
	recognizeHandler := handlers.NewRecognizeHandler(recognizeSvc, logger)

	r.Add(modules.NewAuthModule(authHandler, authSvc))
	r.Add(modules.NewScoreModule(scoreHandler))
	r.Add(modules.NewRecognizeModule(recognizeHandler))
}
