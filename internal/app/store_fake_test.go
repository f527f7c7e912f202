package app_test

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"homeventure/internal/domain"
)

// memStore is an in-memory Store for unit tests. Set down=true to simulate an
// unreachable store; seed raw bytes directly to plant malformed records.
type memStore struct {
	mu   sync.Mutex
	m    map[string][]byte
	down bool
}

func newMemStore() *memStore { return &memStore{m: map[string][]byte{}} }

func (s *memStore) seedRaw(key string, raw []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.m[key] = raw
}

func (s *memStore) Get(ctx context.Context, key string, dst any) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.down {
		return false, fmt.Errorf("%w: down", domain.ErrStoreUnavailable)
	}
	b, ok := s.m[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(b, dst)
}

func (s *memStore) Put(ctx context.Context, key string, v any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.down {
		return fmt.Errorf("%w: down", domain.ErrStoreUnavailable)
	}
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	s.m[key] = b
	return nil
}

func (s *memStore) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.down {
		return fmt.Errorf("%w: down", domain.ErrStoreUnavailable)
	}
	delete(s.m, key)
	return nil
}

func (s *memStore) Keys(ctx context.Context, prefix string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.down {
		return nil, fmt.Errorf("%w: down", domain.ErrStoreUnavailable)
	}
	var keys []string
	for k := range s.m {
		if len(k) >= len(prefix) && k[:len(prefix)] == prefix {
			keys = append(keys, k)
		}
	}
	return keys, nil
}
