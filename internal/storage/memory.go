package storage

import "sync"

// MemoryStore keeps the session in memory. It is used in tests and whenever
// persistence across runs is not wanted.
type MemoryStore struct {
	mu      sync.Mutex
	session Session
	set     bool
}

// NewMemoryStore returns an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Load() (Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.set {
		return Session{}, ErrNoSession
	}
	return s.session, nil
}

func (s *MemoryStore) Save(session Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.session = session
	s.set = true
	return nil
}

func (s *MemoryStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.session = Session{}
	s.set = false
	return nil
}
