package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/suite"

	"github.com/doodledict/doodledict-api/internal/application"
	"github.com/doodledict/doodledict-api/internal/infrastructure/memory"
	handlers "github.com/doodledict/doodledict-api/internal/interface/http"
	"github.com/doodledict/doodledict-api/internal/router"
	"github.com/doodledict/doodledict-api/internal/router/modules"
	"github.com/doodledict/doodledict-api/pkg/helpers"
	"github.com/doodledict/doodledict-api/pkg/validation"
)

type fakeOracle struct {
	answer string
	err    error
}

func (f *fakeOracle) Classify(ctx context.Context, imageBase64 string) (string, error) {
	return f.answer, f.err
}

type HandlerSuite struct {
	suite.Suite
	engine  *gin.Engine
	storage *memory.Storage
	oracle  *fakeOracle
	jwt     *helpers.JWTManager
}

func TestHandlerSuite(t *testing.T) {
	suite.Run(t, new(HandlerSuite))
}

func (s *HandlerSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	validation.Init()

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	s.storage = memory.New()
	s.oracle = &fakeOracle{answer: "cat"}
	s.jwt = helpers.NewJWTManager("handler-test-secret", 30*time.Minute)

	mr := miniredis.RunT(s.T())
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	s.T().Cleanup(func() { _ = rdb.Close() })

	authSvc := application.NewAuthService(s.storage, s.jwt, logger, 4)
	scoreSvc := application.NewScoreService(s.storage, s.storage, rdb, logger, 30*time.Second)
	recognizeSvc := application.NewRecognizeService(s.oracle, logger)

	s.engine = gin.New()
	reg := router.NewRegistry(s.engine)
	reg.Add(modules.NewAuthModule(handlers.NewAuthHandler(authSvc, logger), authSvc))
	reg.Add(modules.NewScoreModule(handlers.NewScoreHandler(scoreSvc, logger, 10)))
	reg.Add(modules.NewRecognizeModule(handlers.NewRecognizeHandler(recognizeSvc, logger)))
	reg.RegisterAll()
}

func (s *HandlerSuite) do(method, path string, body any, header http.Header) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		s.Require().NoError(json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for k, vs := range header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)
	return w
}

func (s *HandlerSuite) decode(w *httptest.ResponseRecorder) map[string]any {
	var out map[string]any
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func (s *HandlerSuite) signup(username, email string) string {
	w := s.do(http.MethodPost, "/signup", gin.H{
		"username": username,
		"password": "hunter22pass",
		"email":    email,
		"name":     "Test Player",
	}, nil)
	s.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
	data := s.decode(w)["data"].(map[string]any)
	return data["access_token"].(string)
}

func (s *HandlerSuite) TestWelcome() {
	w := s.do(http.MethodGet, "/", nil, nil)
	s.Equal(http.StatusOK, w.Code)
	data := s.decode(w)["data"].(map[string]any)
	s.Equal("Welcome to Doodle AI!", data["message"])
}

func (s *HandlerSuite) TestSignupReturnsBearerToken() {
	token := s.signup("alice", "alice@example.com")
	s.NotEmpty(token)

	claims, err := s.jwt.ParseAccessToken(token)
	s.Require().NoError(err)
	s.Equal("alice", claims.Username())
}

func (s *HandlerSuite) TestSignupDuplicateUsername() {
	s.signup("alice", "alice@example.com")
	w := s.do(http.MethodPost, "/signup", gin.H{
		"username": "alice",
		"password": "hunter22pass",
		"email":    "other@example.com",
		"name":     "Other",
	}, nil)
	s.Equal(http.StatusBadRequest, w.Code)
	s.Equal("username or email already exists", s.decode(w)["message"])
}

func (s *HandlerSuite) TestSignupValidation() {
	w := s.do(http.MethodPost, "/signup", gin.H{
		"username": "al",
		"password": "short",
		"email":    "not-an-email",
		"name":     "X",
	}, nil)
	s.Equal(http.StatusBadRequest, w.Code)

	details := s.decode(w)["error"].(map[string]any)
	s.Contains(details, "username")
	s.Contains(details, "password")
	s.Contains(details, "email")
}

func (s *HandlerSuite) TestLoginSuccess() {
	s.signup("alice", "alice@example.com")
	w := s.do(http.MethodPost, "/login", gin.H{
		"username": "alice",
		"password": "hunter22pass",
	}, nil)
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())

	data := s.decode(w)["data"].(map[string]any)
	s.NotEmpty(data["access_token"])
	s.Equal("bearer", data["token_type"])
	user := data["user"].(map[string]any)
	s.Equal("alice", user["username"])
	s.Equal("alice@example.com", user["email"])
}

func (s *HandlerSuite) TestLoginUnknownUser() {
	w := s.do(http.MethodPost, "/login", gin.H{"username": "ghost", "password": "whatever1"}, nil)
	s.Equal(http.StatusNotFound, w.Code)
	s.Equal("user does not exist", s.decode(w)["message"])
}

func (s *HandlerSuite) TestLoginWrongPassword() {
	s.signup("alice", "alice@example.com")
	w := s.do(http.MethodPost, "/login", gin.H{"username": "alice", "password": "wrongwrong"}, nil)
	s.Equal(http.StatusUnauthorized, w.Code)
	s.Equal("incorrect password", s.decode(w)["message"])
}

func (s *HandlerSuite) TestVerifyToken() {
	token := s.signup("alice", "alice@example.com")
	w := s.do(http.MethodGet, "/verify-token", nil, http.Header{
		"Authorization": []string{"Bearer " + token},
	})
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())

	data := s.decode(w)["data"].(map[string]any)
	s.Equal("alice", data["username"])
	s.Equal("alice@example.com", data["email"])
}

func (s *HandlerSuite) TestVerifyTokenMissingHeader() {
	w := s.do(http.MethodGet, "/verify-token", nil, nil)
	s.Equal(http.StatusUnauthorized, w.Code)
}

func (s *HandlerSuite) TestVerifyTokenExpired() {
	expired := helpers.NewJWTManager("handler-test-secret", -time.Minute)
	s.signup("alice", "alice@example.com")
	token, _, err := expired.GenerateAccessToken("alice")
	s.Require().NoError(err)

	w := s.do(http.MethodGet, "/verify-token", nil, http.Header{
		"Authorization": []string{"Bearer " + token},
	})
	s.Equal(http.StatusUnauthorized, w.Code)
	s.Equal("token has expired", s.decode(w)["message"])
}

func (s *HandlerSuite) TestVerifyTokenDeletedUser() {
	token, _, err := s.jwt.GenerateAccessToken("alice")
	s.Require().NoError(err)

	w := s.do(http.MethodGet, "/verify-token", nil, http.Header{
		"Authorization": []string{"Bearer " + token},
	})
	s.Equal(http.StatusNotFound, w.Code)
}

func (s *HandlerSuite) TestForgotPassword() {
	s.signup("alice", "alice@example.com")
	w := s.do(http.MethodPost, "/forgot-password", gin.H{"email": "alice@example.com"}, nil)
	s.Require().Equal(http.StatusOK, w.Code)
	data := s.decode(w)["data"].(map[string]any)
	s.Equal("Password reset instructions sent to email", data["message"])

	w = s.do(http.MethodPost, "/forgot-password", gin.H{"email": "nobody@example.com"}, nil)
	s.Equal(http.StatusNotFound, w.Code)
}

func (s *HandlerSuite) TestSaveScoreAndLeaderboard() {
	s.signup("alice", "alice@example.com")
	s.signup("bob", "bob@example.com")

	w := s.do(http.MethodPost, "/save-score", gin.H{"username": "alice", "score": 70, "total_attempts": 5}, nil)
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	meta := s.decode(w)["meta"].(map[string]any)
	s.Equal(true, meta["new_best"])

	// lower score is accepted but not a new best
	w = s.do(http.MethodPost, "/save-score", gin.H{"username": "alice", "score": 40, "total_attempts": 2}, nil)
	s.Require().Equal(http.StatusOK, w.Code)
	meta = s.decode(w)["meta"].(map[string]any)
	s.Equal(false, meta["new_best"])

	w = s.do(http.MethodPost, "/save-score", gin.H{"username": "bob", "score": 90, "total_attempts": 4}, nil)
	s.Require().Equal(http.StatusOK, w.Code)

	w = s.do(http.MethodGet, "/leaderboard", nil, nil)
	s.Require().Equal(http.StatusOK, w.Code)
	data := s.decode(w)["data"].(map[string]any)
	board := data["leaderboard"].([]any)
	s.Require().Len(board, 2)
	first := board[0].(map[string]any)
	s.Equal("bob", first["username"])
	s.Equal(float64(90), first["score"])
}

func (s *HandlerSuite) TestSaveScoreUnknownUser() {
	w := s.do(http.MethodPost, "/save-score", gin.H{"username": "ghost", "score": 10, "total_attempts": 1}, nil)
	s.Equal(http.StatusNotFound, w.Code)
}

func (s *HandlerSuite) TestSaveScoreNegativeScore() {
	s.signup("alice", "alice@example.com")
	w := s.do(http.MethodPost, "/save-score", gin.H{"username": "alice", "score": -1, "total_attempts": 1}, nil)
	s.Equal(http.StatusBadRequest, w.Code)
}

func (s *HandlerSuite) TestRecognize() {
	w := s.do(http.MethodPost, "/recognize", gin.H{"image": "aW1hZ2U="}, nil)
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	data := s.decode(w)["data"].(map[string]any)
	s.Equal("cat", data["result"])
}

func (s *HandlerSuite) TestRecognizeOracleFailure() {
	s.oracle.err = errors.New("upstream down")
	w := s.do(http.MethodPost, "/recognize", gin.H{"image": "aW1hZ2U="}, nil)
	s.Equal(http.StatusInternalServerError, w.Code)
	s.Equal("failed to recognize doodle", s.decode(w)["message"])
}

func (s *HandlerSuite) TestRecognizeMissingImage() {
	w := s.do(http.MethodPost, "/recognize", gin.H{}, nil)
	s.Equal(http.StatusBadRequest, w.Code)
}
