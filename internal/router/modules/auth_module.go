package modules

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/doodledict/doodledict-api/internal/application"
	handlers "github.com/doodledict/doodledict-api/internal/interface/http"
	"github.com/doodledict/doodledict-api/internal/interface/middleware"
	"github.com/doodledict/doodledict-api/pkg/response"
)

// AuthModule wires identity routes.
// Public: POST /signup, POST /login, POST /forgot-password
// Protected: GET /verify-token

type AuthModule struct {
	Handler *handlers.AuthHandler
	Svc     *application.AuthService
}

func NewAuthModule(h *handlers.AuthHandler, svc *application.AuthService) *AuthModule {
	return &AuthModule{Handler: h, Svc: svc}
}

func (m *AuthModule) Register(rg *gin.RouterGroup) {
	rg.GET("/", func(c *gin.Context) {
		response.Success[any](c, http.StatusOK, gin.H{"message": "Welcome to Doodle AI!"}, "ok", nil)
	})

	rg.POST("/signup", m.Handler.Signup)
	rg.POST("/login", m.Handler.Login)
	rg.POST("/forgot-password", m.Handler.ForgotPassword)

	auth := rg.Group("/")
	auth.Use(middleware.Auth(m.Svc))
	{
		auth.GET("/verify-token", m.Handler.VerifyToken)
	}
}
