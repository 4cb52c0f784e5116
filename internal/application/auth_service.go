package application

import (
	"context"
	"errors"

	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"

	"github.com/doodledict/doodledict-api/internal/domain/entity"
	repo "github.com/doodledict/doodledict-api/internal/domain/repository"
	"github.com/doodledict/doodledict-api/pkg/helpers"
)

var (
	ErrDuplicateUser   = errors.New("username or email already exists")
	ErrUserNotFound    = errors.New("user not found")
	ErrInvalidPassword = errors.New("incorrect password")
	ErrTokenExpired    = errors.New("token has expired")
	ErrTokenInvalid    = errors.New("could not validate token")
)

// AuthService covers signup, login and token verification.
type AuthService struct {
	Repo       repo.UserRepository
	JWT        *helpers.JWTManager
	Logger     *logrus.Logger
	BcryptCost int
}

func NewAuthService(userRepo repo.UserRepository, jwtMgr *helpers.JWTManager, logger *logrus.Logger, bcryptCost int) *AuthService {
	return &AuthService{Repo: userRepo, JWT: jwtMgr, Logger: logger, BcryptCost: bcryptCost}
}

type SignupInput struct {
	Username string
	Password string
	Email    string
	Name     string
}

// Signup hashes the password, stores the new user and issues a token.
// Duplicate username or email surfaces as ErrDuplicateUser; the uniqueness
// check is atomic with the insert, no partial row is left behind.
func (s *AuthService) Signup(ctx context.Context, in SignupInput) (string, error) {
	hash, err := helpers.HashPassword(in.Password, s.BcryptCost)
	if err != nil {
		return "", err
	}
	u := &entity.User{
		Username:     in.Username,
		Email:        in.Email,
		PasswordHash: hash,
		Name:         in.Name,
	}
	if err := s.Repo.Create(ctx, u); err != nil {
		if errors.Is(err, repo.ErrDuplicate) {
			return "", ErrDuplicateUser
		}
		return "", err
	}
	token, _, err := s.JWT.GenerateAccessToken(u.Username)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("username", u.Username).Error("generate access token failed")
		}
		return "", err
	}
	return token, nil
}

// Login verifies credentials and issues a token. Unknown usernames and
// wrong passwords are distinct outcomes (404 vs 401 at the boundary).
func (s *AuthService) Login(ctx context.Context, username, password string) (*entity.User, string, error) {
	u, err := s.Repo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, "", ErrUserNotFound
		}
		return nil, "", err
	}
	if !helpers.CompareHashAndPassword(u.PasswordHash, password) {
		return nil, "", ErrInvalidPassword
	}
	token, _, err := s.JWT.GenerateAccessToken(u.Username)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("username", u.Username).Error("generate access token failed")
		}
		return nil, "", err
	}
	return u, token, nil
}

// VerifyToken validates the bearer token and re-resolves the subject, so a
// user deleted after issue surfaces as ErrUserNotFound rather than a valid
// identity.
func (s *AuthService) VerifyToken(ctx context.Context, token string) (*entity.User, error) {
	claims, err := s.JWT.ParseAccessToken(token)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}
	if claims.Username() == "" {
		return nil, ErrTokenInvalid
	}
	u, err := s.Repo.GetByUsername(ctx, claims.Username())
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return u, nil
}

// CheckEmail resolves a user by email. Password-reset delivery is out of
// scope; the handler only needs existence for the stub response.
func (s *AuthService) CheckEmail(ctx context.Context, email string) (*entity.User, error) {
	u, err := s.Repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return u, nil
}
