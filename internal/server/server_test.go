package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/skybound/internal/config"
	"github.com/vovakirdan/skybound/internal/leaderboard"
	"github.com/vovakirdan/skybound/internal/remote"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestServer(t *testing.T, cfg config.ServerConfig, seed ...leaderboard.ScoreEntry) (*Server, *leaderboard.MemoryStore) {
	t.Helper()
	store := leaderboard.NewMemoryStore()
	require.NoError(t, store.Save(context.Background(), leaderboard.Roster(seed)))
	return New(cfg, leaderboard.NewLocalSource(store), nil), store
}

func do(t *testing.T, s *Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func TestListEmpty(t *testing.T) {
	s, _ := newTestServer(t, config.ServerConfig{})

	rec := do(t, s, http.MethodGet, "/leaderboard", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestSubmitAndList(t *testing.T) {
	s, _ := newTestServer(t, config.ServerConfig{})

	rec := do(t, s, http.MethodPost, "/score", `{"name":" ann ","score":5}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"success":true}`, rec.Body.String())

	do(t, s, http.MethodPost, "/score", `{"name":"bob","score":9}`)
	do(t, s, http.MethodPost, "/score", `{"name":"ann","score":2}`)

	rec = do(t, s, http.MethodGet, "/leaderboard", "")
	assert.JSONEq(t, `[
		{"rank":1,"name":"bob","score":9},
		{"rank":2,"name":"ann","score":5}
	]`, rec.Body.String())
}

func TestSubmitRejectsBadInput(t *testing.T) {
	s, store := newTestServer(t, config.ServerConfig{})

	tests := []struct {
		name string
		body string
		code string
	}{
		{"not json", `nope`, CodeBadRequest},
		{"missing score", `{"name":"ann"}`, CodeBadRequest},
		{"missing name", `{"score":3}`, CodeBadRequest},
		{"fractional score", `{"name":"ann","score":1.5}`, CodeBadRequest},
		{"blank name", `{"name":"   ","score":3}`, leaderboard.CodeInvalidName},
		{"negative score", `{"name":"ann","score":-1}`, leaderboard.CodeInvalidScore},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, s, http.MethodPost, "/score", tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.JSONEq(t, fmt.Sprintf(`{"success":false,"error":%q}`, tt.code), rec.Body.String())
		})
	}

	r, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, r)
}

func TestSubmitFullRoster(t *testing.T) {
	seed := make([]leaderboard.ScoreEntry, leaderboard.MaxPlayers)
	for i := range seed {
		seed[i] = leaderboard.ScoreEntry{Name: fmt.Sprintf("p%d", i), Score: i}
	}
	s, _ := newTestServer(t, config.ServerConfig{}, seed...)

	rec := do(t, s, http.MethodPost, "/score", `{"name":"late","score":100}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"success":false,"error":"MAX_PLAYERS"}`, rec.Body.String())

	rec = do(t, s, http.MethodPost, "/score", `{"name":"p0","score":100}`)
	assert.JSONEq(t, `{"success":true}`, rec.Body.String())
}

func TestWinner(t *testing.T) {
	s, _ := newTestServer(t, config.ServerConfig{})

	rec := do(t, s, http.MethodGet, "/winner", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "null", rec.Body.String())

	do(t, s, http.MethodPost, "/score", `{"name":"ann","score":5}`)
	do(t, s, http.MethodPost, "/score", `{"name":"bob","score":5}`)

	rec = do(t, s, http.MethodGet, "/winner", "")
	assert.JSONEq(t, `{"rank":1,"name":"ann","score":5}`, rec.Body.String())
}

func TestReset(t *testing.T) {
	s, _ := newTestServer(t, config.ServerConfig{}, leaderboard.ScoreEntry{Name: "ann", Score: 5})

	rec := do(t, s, http.MethodDelete, "/reset", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"success":true}`, rec.Body.String())

	rec = do(t, s, http.MethodGet, "/leaderboard", "")
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestHealth(t *testing.T) {
	s, _ := newTestServer(t, config.ServerConfig{})

	rec := do(t, s, http.MethodGet, "/health", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

type failingStore struct{}

var errDisk = errors.New("disk on fire")

func (failingStore) Load(context.Context) (leaderboard.Roster, error) { return nil, errDisk }
func (failingStore) Save(context.Context, leaderboard.Roster) error  { return errDisk }
func (failingStore) Clear(context.Context) error                     { return errDisk }

func TestStorageFailure(t *testing.T) {
	s := New(config.ServerConfig{}, leaderboard.NewLocalSource(failingStore{}), nil)

	for _, req := range []struct{ method, path, body string }{
		{http.MethodGet, "/leaderboard", ""},
		{http.MethodPost, "/score", `{"name":"ann","score":1}`},
		{http.MethodGet, "/winner", ""},
		{http.MethodDelete, "/reset", ""},
	} {
		rec := do(t, s, req.method, req.path, req.body)
		assert.Equal(t, http.StatusInternalServerError, rec.Code, req.path)
		assert.Contains(t, rec.Body.String(), leaderboard.CodeStorage, req.path)
	}
}

func TestRequestID(t *testing.T) {
	s, _ := newTestServer(t, config.ServerConfig{})

	rec := do(t, s, http.MethodGet, "/health", "")
	assert.Len(t, rec.Header().Get(RequestIDHeader), 36)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	rec = httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	assert.Equal(t, "abc-123", rec.Header().Get(RequestIDHeader))
}

func TestRateLimit(t *testing.T) {
	s, _ := newTestServer(t, config.ServerConfig{
		RateLimit: config.RateLimitConfig{RPS: 0.001, Burst: 2},
	})

	assert.Equal(t, http.StatusOK, do(t, s, http.MethodGet, "/leaderboard", "").Code)
	assert.Equal(t, http.StatusOK, do(t, s, http.MethodGet, "/leaderboard", "").Code)

	rec := do(t, s, http.MethodGet, "/leaderboard", "")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.JSONEq(t, `{"error":"RATE_LIMITED"}`, rec.Body.String())

	// Health checks are never limited.
	assert.Equal(t, http.StatusOK, do(t, s, http.MethodGet, "/health", "").Code)
}

func TestIPLimiterForgetsIdleVisitors(t *testing.T) {
	l := newIPLimiter(1, 1)
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	l.now = func() time.Time { return now }

	assert.True(t, l.allow("10.0.0.1"))
	assert.False(t, l.allow("10.0.0.1"))

	now = now.Add(visitorTTL + time.Second)
	assert.True(t, l.allow("10.0.0.2"))

	l.mu.Lock()
	_, kept := l.visitors["10.0.0.1"]
	l.mu.Unlock()
	assert.False(t, kept)
}

func TestCORS(t *testing.T) {
	s, _ := newTestServer(t, config.ServerConfig{CORSOrigins: []string{"*"}})

	req := httptest.NewRequest(http.MethodGet, "/leaderboard", nil)
	req.Header.Set("Origin", "http://game.example")
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORSRestricted(t *testing.T) {
	s, _ := newTestServer(t, config.ServerConfig{CORSOrigins: []string{"http://game.example"}})

	req := httptest.NewRequest(http.MethodGet, "/leaderboard", nil)
	req.Header.Set("Origin", "http://evil.example")
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

// The HTTP client used by the game must speak this server's protocol.
func TestRemoteClientRoundTrip(t *testing.T) {
	s, _ := newTestServer(t, config.ServerConfig{})
	ts := httptest.NewServer(s.Handler())
	defer ts.Close()

	client, err := remote.NewClient(ts.URL)
	require.NoError(t, err)
	ctx := context.Background()

	res, err := client.Submit(ctx, "ann", 4)
	require.NoError(t, err)
	assert.True(t, res.Success)
	_, err = client.Submit(ctx, "bob", 7)
	require.NoError(t, err)

	entries, err := client.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []leaderboard.RankedEntry{
		{Rank: 1, Name: "bob", Score: 7},
		{Rank: 2, Name: "ann", Score: 4},
	}, entries)

	w, ok, err := client.Winner(ctx)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "bob", w.Name)

	require.NoError(t, client.Reset(ctx))
	_, ok, err = client.Winner(ctx)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestServeShutsDownOnCancel(t *testing.T) {
	s, _ := newTestServer(t, config.ServerConfig{Address: "127.0.0.1:0"})
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- s.ListenAndServe(ctx) }()

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(ShutdownTimeout + time.Second):
		t.Fatal("server did not shut down")
	}
}

func TestOpenBackend(t *testing.T) {
	t.Run("memory", func(t *testing.T) {
		b, err := OpenBackend(config.ServerConfig{Backend: config.BackendMemory}, nil)
		require.NoError(t, err)
		defer b.Close()
		assert.Equal(t, config.BackendMemory, b.Name)
	})

	t.Run("sqlite", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "server.db")
		b, err := OpenBackend(config.ServerConfig{Backend: config.BackendSQLite, DB: path}, nil)
		require.NoError(t, err)
		defer b.Close()

		src := leaderboard.NewLocalSource(b.Store)
		_, err = src.Submit(context.Background(), "ann", 3)
		require.NoError(t, err)
		entries, err := src.List(context.Background())
		require.NoError(t, err)
		assert.Len(t, entries, 1)
	})

	t.Run("redis", func(t *testing.T) {
		mr := miniredis.RunT(t)
		b, err := OpenBackend(config.ServerConfig{
			Backend: config.BackendRedis,
			Redis:   config.RedisConfig{Addr: mr.Addr(), Key: "test:board"},
		}, nil)
		require.NoError(t, err)
		defer b.Close()

		src := leaderboard.NewLocalSource(b.Store)
		_, err = src.Submit(context.Background(), "ann", 3)
		require.NoError(t, err)
		assert.True(t, mr.Exists("test:board"))
	})

	t.Run("unknown", func(t *testing.T) {
		_, err := OpenBackend(config.ServerConfig{Backend: "etcd"}, nil)
		assert.Error(t, err)
	})
}
