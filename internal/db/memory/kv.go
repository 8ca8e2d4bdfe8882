// Package memory implements db.KVStore as an in-process expiring LRU.
package memory

import (
	"context"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/kailas-cloud/autospecs/internal/db"
)

// Compile-time check: Store implements db.KVStore.
var _ db.KVStore = (*Store)(nil)

// Store keeps at most size entries, each living for ttl.
type Store struct {
	cache *expirable.LRU[string, []byte]
}

// NewStore creates an in-process store. The per-call TTL of SetWithTTL is
// capped by the store-wide ttl.
func NewStore(size int, ttl time.Duration) *Store {
	return &Store{cache: expirable.NewLRU[string, []byte](size, nil, ttl)}
}

// Get retrieves a value by key.
func (s *Store) Get(_ context.Context, key string) ([]byte, error) {
	v, ok := s.cache.Get(key)
	if !ok {
		return nil, db.ErrKeyNotFound
	}
	return v, nil
}

// SetWithTTL stores a copy of value.
func (s *Store) SetWithTTL(_ context.Context, key string, value []byte, _ time.Duration) error {
	cp := make([]byte, len(value))
	copy(cp, value)
	s.cache.Add(key, cp)
	return nil
}

// Len returns the number of live entries.
func (s *Store) Len() int { return s.cache.Len() }
