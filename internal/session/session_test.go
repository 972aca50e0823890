package session_test

import (
	"context"
	"net/http"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/moneydash/moneydash/internal/models"
	"github.com/moneydash/moneydash/internal/session"
	"github.com/moneydash/moneydash/internal/storage"
)

func newManager(t *testing.T) (*session.Manager, *storage.MemoryStore) {
	t.Helper()

	store := storage.NewMemoryStore()
	return session.NewManager(store, zerolog.Nop()), store
}

func TestExcluded(t *testing.T) {
	m, _ := newManager(t)

	tests := []struct {
		path     string
		excluded bool
	}{
		{"/api/v1.0/login", true},
		{"/api/v1.0/register", true},
		{"/api/v1.0/refresh-token", true},
		{"/api/v1.0/forgot-password", true},
		{"/api/v1.0/reset-password", true},
		{"/api/v1.0/activate/abc123", true},
		{"/api/v1.0/status", true},
		{"/api/v1.0/health", true},
		{"/api/v1.0/profile", false},
		{"/api/v1.0/expenses", false},
		{"/api/v1.0/budget", false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.excluded, m.Excluded(tt.path))
		})
	}
}

func TestAttach(t *testing.T) {
	m, _ := newManager(t)
	require.Nil(t, m.Set(session.State{AccessToken: "token-1"}))

	t.Run("attaches to protected endpoints", func(t *testing.T) {
		req, _ := http.NewRequest(http.MethodGet, "http://backend/api/v1.0/expenses", nil)
		m.Attach(req)
		assert.Equal(t, "Bearer token-1", req.Header.Get("Authorization"))
	})

	t.Run("skips excluded endpoints", func(t *testing.T) {
		req, _ := http.NewRequest(http.MethodPost, "http://backend/api/v1.0/login", nil)
		m.Attach(req)
		assert.Empty(t, req.Header.Get("Authorization"))
	})

	t.Run("no token, no header", func(t *testing.T) {
		m.Clear()
		req, _ := http.NewRequest(http.MethodGet, "http://backend/api/v1.0/expenses", nil)
		m.Attach(req)
		assert.Empty(t, req.Header.Get("Authorization"))
	})
}

func TestRefreshDeduplicates(t *testing.T) {
	m, _ := newManager(t)
	require.Nil(t, m.Set(session.State{AccessToken: "stale", RefreshToken: "refresh-1"}))

	var calls, waiting atomic.Int32
	release := make(chan struct{})

	m.SetExchange(func(_ context.Context, refreshToken string) (models.RefreshResponse, error) {
		assert.Equal(t, "refresh-1", refreshToken)
		calls.Add(1)
		<-release
		return models.RefreshResponse{Token: "fresh"}, nil
	})

	var wg sync.WaitGroup
	results := make([]string, 5)
	for i := range results {
		i := i
		wg.Add(1)
		go func() {
			defer wg.Done()
			waiting.Add(1)
			token, err := m.Refresh(context.Background())
			assert.Nil(t, err)
			results[i] = token
		}()
	}

	// Let all goroutines pile up on the in-flight exchange, then finish it.
	for waiting.Load() < 5 {
		time.Sleep(time.Millisecond)
	}
	time.Sleep(20 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.Equal(t, int32(1), calls.Load(), "concurrent refreshes must coalesce into one exchange")
	for _, token := range results {
		assert.Equal(t, "fresh", token)
	}
	assert.Equal(t, "fresh", m.Token())
}

func TestRefreshKeepsOldRefreshTokenWithoutRotation(t *testing.T) {
	m, store := newManager(t)
	require.Nil(t, m.Set(session.State{AccessToken: "stale", RefreshToken: "refresh-1"}))

	m.SetExchange(func(context.Context, string) (models.RefreshResponse, error) {
		return models.RefreshResponse{Token: "fresh"}, nil
	})

	_, err := m.Refresh(context.Background())
	require.Nil(t, err)

	stored, err := store.Load()
	require.Nil(t, err)
	assert.Equal(t, "fresh", stored.AccessToken)
	assert.Equal(t, "refresh-1", stored.RefreshToken)
}

func TestRefreshFailureClearsSession(t *testing.T) {
	m, store := newManager(t)
	require.Nil(t, m.Set(session.State{
		AccessToken:  "stale",
		RefreshToken: "revoked",
		User:         models.User{ID: 1, Email: "demo@moneydash.io"},
	}))

	m.SetExchange(func(context.Context, string) (models.RefreshResponse, error) {
		return models.RefreshResponse{}, assert.AnError
	})

	_, err := m.Refresh(context.Background())
	assert.ErrorIs(t, err, session.ErrSessionExpired)

	// Token, refresh token and user are gone together.
	assert.False(t, m.Authenticated())
	assert.Empty(t, m.User().Email)
	_, err = store.Load()
	assert.ErrorIs(t, err, storage.ErrNoSession)
}

func TestRefreshWithoutRefreshToken(t *testing.T) {
	m, _ := newManager(t)
	require.Nil(t, m.Set(session.State{AccessToken: "stale"}))

	m.SetExchange(func(context.Context, string) (models.RefreshResponse, error) {
		require.Fail(t, "exchange must not be called without a refresh token")
		return models.RefreshResponse{}, nil
	})

	_, err := m.Refresh(context.Background())
	assert.ErrorIs(t, err, session.ErrSessionExpired)
	assert.False(t, m.Authenticated())
}

func TestResume(t *testing.T) {
	store := storage.NewMemoryStore()
	first := session.NewManager(store, zerolog.Nop())
	require.Nil(t, first.Set(session.State{
		AccessToken:  "access",
		RefreshToken: "refresh",
		User:         models.User{ID: 1, FullName: "Demo User", Email: "demo@moneydash.io"},
	}))

	second := session.NewManager(store, zerolog.Nop())
	require.Nil(t, second.Resume())

	assert.True(t, second.Authenticated())
	assert.Equal(t, "access", second.Token())
	assert.Equal(t, "demo@moneydash.io", second.User().Email)
}
