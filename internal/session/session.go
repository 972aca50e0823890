// Package session owns the authenticated state of the client: the access
// and refresh tokens and the current user.
//
// A Manager is an explicit dependency, injected into the transport client
// and anything else that needs identity. There is no package-level session.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync"

	"github.com/rs/zerolog"
	"github.com/ryanuber/go-glob"
	"golang.org/x/sync/singleflight"

	"github.com/moneydash/moneydash/internal/models"
	"github.com/moneydash/moneydash/internal/storage"
)

var (
	// ErrNotAuthenticated is returned when an operation needs a session and
	// none is present.
	ErrNotAuthenticated = errors.New("not authenticated")

	// ErrSessionExpired is terminal: the access token was rejected and could
	// not be refreshed. All session state has been cleared; the user has to
	// log in again.
	ErrSessionExpired = errors.New("session expired, please log in again")
)

// DefaultExclusions lists the endpoints that must never receive a bearer
// token. Patterns are globs matched against the request path.
var DefaultExclusions = []string{
	"*/login",
	"*/register",
	"*/refresh-token",
	"*/forgot-password",
	"*/reset-password",
	"*/activate*",
	"*/health*",
	"*/status*",
}

// State is a snapshot of the session.
type State struct {
	AccessToken  string
	RefreshToken string
	User         models.User
}

// ExchangeFunc trades a refresh token for new tokens. The transport client
// provides it; the call itself goes through an excluded endpoint and carries
// no bearer token.
type ExchangeFunc func(ctx context.Context, refreshToken string) (models.RefreshResponse, error)

// Manager holds the session for the process lifetime and recovers from
// expired access tokens.
type Manager struct {
	mu         sync.RWMutex
	state      State
	store      storage.Store
	exchange   ExchangeFunc
	refreshing singleflight.Group
	exclusions []string
	log        zerolog.Logger
}

// NewManager returns a Manager backed by the given store.
func NewManager(store storage.Store, log zerolog.Logger) *Manager {
	return &Manager{
		store:      store,
		exclusions: DefaultExclusions,
		log:        log.With().Str("component", "session").Logger(),
	}
}

// SetExchange wires the refresh-token call. Must be set before the first
// unauthorized response can occur.
func (m *Manager) SetExchange(fn ExchangeFunc) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.exchange = fn
}

// Resume loads a persisted session, if any.
func (m *Manager) Resume() error {
	stored, err := m.store.Load()
	if err != nil {
		return err
	}

	state := State{
		AccessToken:  stored.AccessToken,
		RefreshToken: stored.RefreshToken,
	}
	if len(stored.User) > 0 {
		if err := json.Unmarshal(stored.User, &state.User); err != nil {
			return err
		}
	}

	m.mu.Lock()
	m.state = state
	m.mu.Unlock()

	return nil
}

// Set replaces the session and writes it through to the store.
func (m *Manager) Set(state State) error {
	m.mu.Lock()
	m.state = state
	m.mu.Unlock()

	return m.persist(state)
}

// Clear drops the session from memory and from the store. Token, refresh
// token and user go together; there is no partial clear.
func (m *Manager) Clear() {
	m.mu.Lock()
	m.state = State{}
	m.mu.Unlock()

	if err := m.store.Clear(); err != nil {
		m.log.Warn().Err(err).Msg("clearing stored session failed")
	}
}

// Authenticated reports whether an access token is present.
func (m *Manager) Authenticated() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state.AccessToken != ""
}

// User returns the current user.
func (m *Manager) User() models.User {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state.User
}

// Token returns the current access token.
func (m *Manager) Token() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state.AccessToken
}

// Excluded reports whether the path must not receive a credential.
func (m *Manager) Excluded(path string) bool {
	for _, pattern := range m.exclusions {
		if glob.Glob(pattern, path) {
			return true
		}
	}
	return false
}

// Attach adds the bearer credential to the request, unless the target is an
// excluded endpoint or no token is present.
func (m *Manager) Attach(req *http.Request) {
	if m.Excluded(req.URL.Path) {
		return
	}

	if token := m.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
}

func (m *Manager) persist(state State) error {
	user, err := json.Marshal(state.User)
	if err != nil {
		return err
	}

	return m.store.Save(storage.Session{
		AccessToken:  state.AccessToken,
		RefreshToken: state.RefreshToken,
		User:         user,
	})
}

// Refresh exchanges the refresh token for a new access token and returns it.
//
// Concurrent callers coalesce into a single exchange: when several requests
// fail with 401 at the same time, only one refresh call goes out and all
// callers get its outcome. Re-issuing the exchange per caller would race on
// backends that invalidate the refresh token on first use.
//
// On failure the whole session is cleared and ErrSessionExpired is returned.
func (m *Manager) Refresh(ctx context.Context) (string, error) {
	token, err, _ := m.refreshing.Do("refresh", func() (any, error) {
		m.mu.RLock()
		refreshToken := m.state.RefreshToken
		exchange := m.exchange
		m.mu.RUnlock()

		if refreshToken == "" {
			m.log.Warn().Msg("no refresh token available")
			m.Clear()
			return "", ErrSessionExpired
		}
		if exchange == nil {
			m.Clear()
			return "", ErrSessionExpired
		}

		resp, err := exchange(ctx, refreshToken)
		if err != nil {
			m.log.Warn().Err(err).Msg("token refresh failed")
			m.Clear()
			return "", errors.Join(ErrSessionExpired, err)
		}

		m.mu.Lock()
		m.state.AccessToken = resp.Token
		if resp.RefreshToken != "" {
			// Keep the old refresh token when the backend does not rotate.
			m.state.RefreshToken = resp.RefreshToken
		}
		state := m.state
		m.mu.Unlock()

		if err := m.persist(state); err != nil {
			m.log.Warn().Err(err).Msg("persisting refreshed session failed")
		}

		m.log.Debug().Msg("access token refreshed")
		return resp.Token, nil
	})
	if err != nil {
		return "", err
	}

	return token.(string), nil
}
