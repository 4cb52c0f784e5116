package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/doodledict/doodledict-api/internal/application"
	"github.com/doodledict/doodledict-api/pkg/response"
)

// Auth validates the bearer access token and resolves its subject to a
// stored user. It sets username, userName and userEmail in the Gin context
// on success. Token validation itself needs no I/O; the user lookup covers
// the "user since deleted" case.
func Auth(svc *application.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			response.Error[any](c, http.StatusUnauthorized, "missing access token", nil)
			c.Abort()
			return
		}
		u, err := svc.VerifyToken(c.Request.Context(), token)
		if err != nil {
			switch {
			case errors.Is(err, application.ErrTokenExpired):
				response.Error[any](c, http.StatusUnauthorized, "token has expired", nil)
			case errors.Is(err, application.ErrTokenInvalid):
				response.Error[any](c, http.StatusUnauthorized, "could not validate token", nil)
			case errors.Is(err, application.ErrUserNotFound):
				response.Error[any](c, http.StatusNotFound, "user not found", nil)
			default:
				response.Error[any](c, http.StatusInternalServerError, "token verification failed", nil)
			}
			c.Abort()
			return
		}

		c.Set("username", u.Username) // required by handlers
		c.Set("userName", u.Name)     // extra convenience
		c.Set("userEmail", u.Email)   // extra convenience
		c.Next()
	}
}

func bearerToken(c *gin.Context) string {
	h := c.GetHeader("Authorization")
	if h == "" {
		return ""
	}
	parts := strings.SplitN(h, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
