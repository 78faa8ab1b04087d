package http

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"quizzapp-service/internal/app"
	"quizzapp-service/internal/infra/media"
	"quizzapp-service/internal/infra/memory"
)

type testServer struct {
	router    *gin.Engine
	feed      *app.QuestionFeed
	publicDir string
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	return newTestServerWithLogger(t, zerolog.Nop())
}

func newTestServerWithLogger(t *testing.T, logger zerolog.Logger) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	publicDir := t.TempDir()
	if err := os.WriteFile(filepath.Join(publicDir, "login.html"), []byte("<html>login</html>"), 0o644); err != nil {
		t.Fatalf("write login page: %v", err)
	}
	avatars, err := media.NewLocalStore(filepath.Join(publicDir, "images"), "/images", app.DefaultMaxAvatarBytes)
	if err != nil {
		t.Fatalf("local store: %v", err)
	}

	feed := app.NewQuestionFeed()
	accounts := app.NewAccountService(memory.NewUserStore(), avatars, app.WithHashCost(bcrypt.MinCost))
	questions := app.NewQuestionService(memory.NewQuestionStore(), feed)

	router := NewRouter(RouterConfig{
		Accounts:  NewAccountHandler(accounts),
		Questions: NewQuestionHandler(questions),
		Feed:      NewFeedHandler(feed),
		Logger:    logger,
		PublicDir: publicDir,
	})
	return &testServer{router: router, feed: feed, publicDir: publicDir}
}

func (s *testServer) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var r io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		r = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func (s *testServer) send(t *testing.T, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode %q: %v", rec.Body.String(), err)
	}
	return out
}

func expectStatus(t *testing.T, rec *httptest.ResponseRecorder, want int) {
	t.Helper()
	if rec.Code != want {
		t.Fatalf("expected status %d, got %d: %s", want, rec.Code, rec.Body.String())
	}
}

func expectError(t *testing.T, rec *httptest.ResponseRecorder, status int, msg string) {
	t.Helper()
	expectStatus(t, rec, status)
	if got := decode[errorBody](t, rec).Error; got != msg {
		t.Fatalf("expected error %q, got %q", msg, got)
	}
}

// registerAndLogin creates an account and returns its user id.
func (s *testServer) registerAndLogin(t *testing.T, username string) string {
	t.Helper()
	creds := map[string]string{"username": username, "password": "pw"}
	expectStatus(t, s.do(t, http.MethodPost, "/api/register", creds), http.StatusOK)
	rec := s.do(t, http.MethodPost, "/api/login", creds)
	expectStatus(t, rec, http.StatusOK)
	return decode[loginResponse](t, rec).UserID
}
