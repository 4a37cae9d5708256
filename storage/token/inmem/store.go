package inmemstore

import (
	"sync"

	"github.com/matedu/matedu-go/core"
)

// Store is an in-memory token store for tests.
type Store struct {
	mutex sync.RWMutex
	token string
}

var _ core.TokenStore = (*Store)(nil)

func Open() (*Store, error) {
	return &Store{}, nil
}

func (s *Store) Set(token string) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.token = token
	return nil
}

func (s *Store) Get() (string, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return s.token, nil
}

func (s *Store) Clear() error {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.token = ""
	return nil
}
