// Package redisad is the Record Store: a namespaced JSON key-value mapping
// over redis. Keys live under the "status:" and "property:" prefixes.
package redisad

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"homeventure/internal/adapters/observability"
	"homeventure/internal/domain"
)

type Store struct{ c *redis.Client }

func New(addr, pass string, db int) *Store {
	return &Store{c: redis.NewClient(&redis.Options{Addr: addr, Password: pass, DB: db})}
}

// NewFromClient wraps an existing client (tests hand in a miniredis-backed one).
func NewFromClient(c *redis.Client) *Store { return &Store{c: c} }

// Ping verifies the store is reachable at startup.
func (s *Store) Ping(ctx context.Context) error {
	if err := s.c.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}
	return nil
}

func (s *Store) Get(ctx context.Context, key string, dst any) (bool, error) {
	v, err := s.c.Get(ctx, key).Bytes()
	if err == redis.Nil {
		observability.ObserveStore("redis", "miss")
		return false, nil
	}
	if err != nil {
		observability.ObserveStore("redis", "error")
		return false, fmt.Errorf("%w: get %s: %v", domain.ErrStoreUnavailable, key, err)
	}
	observability.ObserveStore("redis", "hit")
	return true, json.Unmarshal(v, dst)
}

func (s *Store) Put(ctx context.Context, key string, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", key, err)
	}
	observability.ObserveStore("redis", "put")
	if err := s.c.Set(ctx, key, b, 0).Err(); err != nil {
		observability.ObserveStore("redis", "error")
		return fmt.Errorf("%w: put %s: %v", domain.ErrStoreUnavailable, key, err)
	}
	return nil
}

func (s *Store) Delete(ctx context.Context, key string) error {
	observability.ObserveStore("redis", "del")
	if err := s.c.Del(ctx, key).Err(); err != nil {
		observability.ObserveStore("redis", "error")
		return fmt.Errorf("%w: del %s: %v", domain.ErrStoreUnavailable, key, err)
	}
	return nil
}

// Keys scans the keyspace for a prefix. The record count is tiny (tens), so a
// full SCAN per request is fine.
func (s *Store) Keys(ctx context.Context, prefix string) ([]string, error) {
	observability.ObserveStore("redis", "list")
	var keys []string
	iter := s.c.Scan(ctx, 0, prefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		observability.ObserveStore("redis", "error")
		return nil, fmt.Errorf("%w: scan %s: %v", domain.ErrStoreUnavailable, prefix, err)
	}
	return keys, nil
}
