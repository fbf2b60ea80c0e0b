// Package memory is an in-process Storage used by tests and the
// `storage: memory` config.
package memory

import (
	"context"
	"errors"
	"sync"
)

// ErrUnavailable is returned by every call while the store is marked unavailable.
var ErrUnavailable = errors.New("memory store unavailable")

type Store struct {
	mu          sync.RWMutex
	data        map[string][]byte
	unavailable bool
}

func New() *Store {
	return &Store{data: make(map[string][]byte)}
}

// SetUnavailable toggles simulated backend failure.
func (s *Store) SetUnavailable(v bool) {
	s.mu.Lock()
	s.unavailable = v
	s.mu.Unlock()
}

func (s *Store) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.unavailable {
		return nil, false, ErrUnavailable
	}
	v, ok := s.data[key]
	if !ok {
		return nil, false, nil
	}
	return append([]byte(nil), v...), true, nil
}

func (s *Store) Set(ctx context.Context, key string, value []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.unavailable {
		return ErrUnavailable
	}
	s.data[key] = append([]byte(nil), value...)
	return nil
}

func (s *Store) Close() error { return nil }
