package redis

import (
	"context"
	"time"

	"github.com/redis/rueidis"

	"github.com/kailas-cloud/autospecs/internal/db"
)

// Get retrieves a value by key. With client-side caching enabled, repeated
// reads are served locally until the server invalidates the key.
func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	var resp rueidis.RedisResult
	if s.localTTL > 0 {
		resp = s.client.DoCache(ctx, s.client.B().Get().Key(key).Cache(), s.localTTL)
	} else {
		resp = s.client.Do(ctx, s.client.B().Get().Key(key).Build())
	}

	data, err := resp.AsBytes()
	if err != nil {
		if rueidis.IsRedisNil(err) {
			return nil, db.ErrKeyNotFound
		}
		return nil, &db.Error{Op: db.OpGet, Err: err}
	}
	return data, nil
}

// SetWithTTL stores a value. A non-positive ttl stores it without expiry.
func (s *Store) SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	set := s.client.B().Set().Key(key).Value(rueidis.BinaryString(value))
	var cmd rueidis.Completed
	if ttl > 0 {
		cmd = set.Ex(ttl).Build()
	} else {
		cmd = set.Build()
	}
	if err := s.client.Do(ctx, cmd).Error(); err != nil {
		return &db.Error{Op: db.OpSet, Err: err}
	}
	return nil
}
