package memstore

import (
	"sync"

	"github.com/darasahub/njia/core/session"
)

// Store is a session-scoped storage tier: it lives and dies with the
// process, mirroring browser sessionStorage semantics.
type Store struct {
	sync.RWMutex
	table map[string]string
}

var _ session.Tier = (*Store)(nil)

func Open() *Store {
	return &Store{table: make(map[string]string)}
}

func (s *Store) Get(key string) (string, error) {
	s.RLock()
	defer s.RUnlock()
	val, ok := s.table[key]
	if !ok {
		return "", session.ErrNotFound
	}
	return val, nil
}

func (s *Store) Set(key, value string) error {
	s.Lock()
	s.table[key] = value
	s.Unlock()
	return nil
}

func (s *Store) Remove(key string) error {
	s.Lock()
	delete(s.table, key)
	s.Unlock()
	return nil
}
