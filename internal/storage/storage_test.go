package storage_test

import (
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/moneydash/moneydash/internal/storage"
)

func stores(t *testing.T) map[string]storage.Store {
	t.Helper()

	sqlite, err := storage.NewSQLiteStore(filepath.Join(t.TempDir(), "session.db"))
	require.Nil(t, err)

	return map[string]storage.Store{
		"memory": storage.NewMemoryStore(),
		"sqlite": sqlite,
	}
}

func TestStoreRoundTrip(t *testing.T) {
	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			_, err := store.Load()
			assert.ErrorIs(t, err, storage.ErrNoSession)

			session := storage.Session{
				AccessToken:  "access",
				RefreshToken: "refresh",
				User:         json.RawMessage(`{"id":1,"fullName":"Demo User","email":"demo@moneydash.io"}`),
			}
			require.Nil(t, store.Save(session))

			loaded, err := store.Load()
			require.Nil(t, err)
			assert.Equal(t, session.AccessToken, loaded.AccessToken)
			assert.Equal(t, session.RefreshToken, loaded.RefreshToken)
			assert.JSONEq(t, string(session.User), string(loaded.User))
		})
	}
}

func TestStoreOverwrite(t *testing.T) {
	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			require.Nil(t, store.Save(storage.Session{AccessToken: "first"}))
			require.Nil(t, store.Save(storage.Session{AccessToken: "second"}))

			loaded, err := store.Load()
			require.Nil(t, err)
			assert.Equal(t, "second", loaded.AccessToken)
		})
	}
}

func TestStoreClear(t *testing.T) {
	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			// Clearing an empty store must not error.
			require.Nil(t, store.Clear())

			require.Nil(t, store.Save(storage.Session{AccessToken: "access"}))
			require.Nil(t, store.Clear())

			_, err := store.Load()
			assert.ErrorIs(t, err, storage.ErrNoSession)
		})
	}
}

func TestSQLiteStorePersistsAcrossOpens(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.db")

	store, err := storage.NewSQLiteStore(path)
	require.Nil(t, err)
	require.Nil(t, store.Save(storage.Session{AccessToken: "access"}))

	reopened, err := storage.NewSQLiteStore(path)
	require.Nil(t, err)

	loaded, err := reopened.Load()
	require.Nil(t, err)
	assert.Equal(t, "access", loaded.AccessToken)
}
