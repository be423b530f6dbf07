package auth

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/vestiaire-fc/vestiaire/internal/shared"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type memoryAuthRepo struct {
	users    map[string]User
	sessions map[string]int64
}

func newMemoryAuthRepo() *memoryAuthRepo {
	return &memoryAuthRepo{users: map[string]User{}, sessions: map[string]int64{}}
}

func (r *memoryAuthRepo) FindByEmail(_ context.Context, email string) (*User, error) {
	u, ok := r.users[email]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return &u, nil
}

func (r *memoryAuthRepo) CreateSession(_ context.Context, id string, userID int64, _ time.Time, _, _ string) error {
	r.sessions[id] = userID
	return nil
}

func (r *memoryAuthRepo) DeleteSession(_ context.Context, id string) error {
	delete(r.sessions, id)
	return nil
}

func addUser(t *testing.T, repo *memoryAuthRepo, email, password string, active bool) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	repo.users[email] = User{
		ID:           int64(len(repo.users) + 1),
		Email:        email,
		FullName:     "Test User",
		PasswordHash: string(hash),
		IsActive:     active,
	}
}

func newTestRouter(t *testing.T, repo *memoryAuthRepo) (chi.Router, *shared.SessionManager) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	manager := shared.NewSessionManager(client, "vestiaire_session", time.Hour, false)
	handler := NewHandler(testLogger(), NewService(repo), manager)

	router := chi.NewRouter()
	router.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess, err := manager.Load(r.Context(), r)
			require.NoError(t, err)
			next.ServeHTTP(w, r.WithContext(shared.ContextWithSession(r.Context(), sess)))
			require.NoError(t, manager.Commit(r.Context(), httptest.NewRecorder(), sess))
		})
	})
	router.Route("/auth", handler.MountRoutes)
	return router, manager
}

func TestLoginSuccess(t *testing.T) {
	repo := newMemoryAuthRepo()
	addUser(t, repo, "tresorier@vestiaire.fc", "motdepasse", true)
	router, _ := newTestRouter(t, repo)

	body := `{"email":"tresorier@vestiaire.fc","password":"motdepasse"}`
	req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "tresorier@vestiaire.fc")
	require.Len(t, repo.sessions, 1)
}

func TestLoginWrongPassword(t *testing.T) {
	repo := newMemoryAuthRepo()
	addUser(t, repo, "tresorier@vestiaire.fc", "motdepasse", true)
	router, _ := newTestRouter(t, repo)

	body := `{"email":"tresorier@vestiaire.fc","password":"mauvais-mdp"}`
	req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.Empty(t, repo.sessions)
}

func TestLoginInactiveUser(t *testing.T) {
	repo := newMemoryAuthRepo()
	addUser(t, repo, "ancien@vestiaire.fc", "motdepasse", false)
	router, _ := newTestRouter(t, repo)

	body := `{"email":"ancien@vestiaire.fc","password":"motdepasse"}`
	req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestLoginValidation(t *testing.T) {
	router, _ := newTestRouter(t, newMemoryAuthRepo())

	body := `{"email":"pas-un-email","password":"court"}`
	req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRequireUser(t *testing.T) {
	protected := RequireUser(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	protected.ServeHTTP(rec, req)
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	sess := &shared.Session{}
	sess.SetUser("7")
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req = req.WithContext(shared.ContextWithSession(req.Context(), sess))
	rec = httptest.NewRecorder()
	protected.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
}
