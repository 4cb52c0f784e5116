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

type AuthHandler struct {
	Svc    *application.AuthService
	Logger *logrus.Logger
}

func NewAuthHandler(svc *application.AuthService, logger *logrus.Logger) *AuthHandler {
	return &AuthHandler{Svc: svc, Logger: logger}
}

type signupRequest struct {
	Username string `json:"username" binding:"required,uname"`
	Password string `json:"password" binding:"required,pwd"`
	Email    string `json:"email" binding:"required,email"`
	Name     string `json:"name" binding:"required"`
}

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type forgotPasswordRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type userPayload struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Name     string `json:"name"`
}

// Signup POST /signup
func (h *AuthHandler) Signup(c *gin.Context) {
	var req signupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	token, err := h.Svc.Signup(c.Request.Context(), application.SignupInput{
		Username: req.Username,
		Password: req.Password,
		Email:    req.Email,
		Name:     req.Name,
	})
	if err != nil {
		if errors.Is(err, application.ErrDuplicateUser) {
			response.Error[any](c, http.StatusBadRequest, "username or email already exists", nil)
			return
		}
		h.Logger.WithError(err).WithField("username", req.Username).Error("signup failed")
		response.Error[any](c, http.StatusInternalServerError, "signup failed", nil)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{
		"access_token": token,
		"token_type":   "bearer",
	}, "signup successful", nil)
}

// Login POST /login
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	u, token, err := h.Svc.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, application.ErrUserNotFound):
			response.Error[any](c, http.StatusNotFound, "user does not exist", nil)
		case errors.Is(err, application.ErrInvalidPassword):
			response.Error[any](c, http.StatusUnauthorized, "incorrect password", nil)
		default:
			h.Logger.WithError(err).WithField("username", req.Username).Error("login failed")
			response.Error[any](c, http.StatusInternalServerError, "login failed", nil)
		}
		return
	}
	response.Success(c, http.StatusOK, gin.H{
		"access_token": token,
		"token_type":   "bearer",
		"user":         userPayload{Username: u.Username, Email: u.Email, Name: u.Name},
	}, "login successful", nil)
}

// VerifyToken GET /verify-token (bearer token). The auth middleware has
// already validated the token and resolved the user.
func (h *AuthHandler) VerifyToken(c *gin.Context) {
	response.Success(c, http.StatusOK, userPayload{
		Username: c.GetString("username"),
		Email:    c.GetString("userEmail"),
		Name:     c.GetString("userName"),
	}, "token valid", nil)
}

// ForgotPassword POST /forgot-password. Delivery of reset emails is out of
// scope; this only confirms the email maps to an account.
func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var req forgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	if _, err := h.Svc.CheckEmail(c.Request.Context(), req.Email); err != nil {
		if errors.Is(err, application.ErrUserNotFound) {
			response.Error[any](c, http.StatusNotFound, "email not found", nil)
			return
		}
		h.Logger.WithError(err).Error("forgot password lookup failed")
		response.Error[any](c, http.StatusInternalServerError, "request failed", nil)
		return
	}
	response.Success[any](c, http.StatusOK, gin.H{
		"message": "Password reset instructions sent to email",
	}, "reset requested", nil)
}
