// Package storage persists the client session between runs.
package storage

import (
	"encoding/json"
	"errors"
)

// ErrNoSession is returned by Load when nothing is stored.
var ErrNoSession = errors.New("no stored session")

// Session is the persisted client state. Everything in it is written and
// cleared together: a half-cleared session must never be observable.
type Session struct {
	AccessToken  string          `json:"accessToken"`
	RefreshToken string          `json:"refreshToken,omitempty"`
	User         json.RawMessage `json:"user,omitempty"`
}

// Store persists sessions.
type Store interface {
	// Load returns the stored session, or ErrNoSession.
	Load() (Session, error)
	// Save replaces the stored session.
	Save(Session) error
	// Clear removes the stored session. Clearing an empty store is not an
	// error.
	Clear() error
}
