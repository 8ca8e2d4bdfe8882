// Package optcache caches filter option lookups in a key-value store.
package optcache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/kailas-cloud/autospecs/internal/db"
	"github.com/kailas-cloud/autospecs/internal/domain/search/option"
)

const cacheKeyPrefix = "autospecs:opt:"

// lookuper is the decorated option source.
type lookuper interface {
	Lookup(ctx context.Context, field option.Field, search string, limit int) (option.Result, error)
}

// store is the consumer interface for the option cache (ISP).
type store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// CachedLookup caches option lookups. Cache failures never fail a lookup.
type CachedLookup struct {
	inner      lookuper
	store      store
	ttl        time.Duration
	cacheTotal *prometheus.CounterVec
	logger     *zap.Logger
}

// New creates a caching decorator.
// cacheTotal is a counter vec with label "result" ("hit"/"miss"), passed explicitly.
func New(
	inner lookuper,
	s store,
	ttl time.Duration,
	cacheTotal *prometheus.CounterVec,
	logger *zap.Logger,
) *CachedLookup {
	return &CachedLookup{
		inner:      inner,
		store:      s,
		ttl:        ttl,
		cacheTotal: cacheTotal,
		logger:     logger,
	}
}

// Lookup returns a cached result or calls the inner lookup.
func (c *CachedLookup) Lookup(
	ctx context.Context, field option.Field, search string, limit int,
) (option.Result, error) {
	key := cacheKey(field, search, limit)

	if res, ok := c.getFromCache(ctx, key, field); ok {
		c.incCache("hit")
		return res, nil
	}

	c.incCache("miss")

	res, err := c.inner.Lookup(ctx, field, search, limit)
	if err != nil {
		return option.Result{}, fmt.Errorf("lookup %s: %w", field, err)
	}

	c.putToCache(ctx, key, res)
	return res, nil
}

func (c *CachedLookup) incCache(result string) {
	if c.cacheTotal != nil {
		c.cacheTotal.WithLabelValues(result).Inc()
	}
}

// cacheKey ignores search and limit for lookups that do not use them.
func cacheKey(field option.Field, search string, limit int) string {
	if !field.Searchable() {
		return cacheKeyPrefix + string(field)
	}
	h := sha256.Sum256([]byte(strings.ToLower(search)))
	return cacheKeyPrefix + string(field) + ":" + strconv.Itoa(limit) + ":" + hex.EncodeToString(h[:8])
}

func (c *CachedLookup) getFromCache(ctx context.Context, key string, field option.Field) (option.Result, bool) {
	data, err := c.store.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, db.ErrKeyNotFound) {
			c.logger.Warn("Failed to get cached options", zap.String("key", key), zap.Error(err))
		}
		return option.Result{}, false
	}
	if len(data) == 0 {
		return option.Result{}, false
	}

	var dto cachedResult
	if err := json.Unmarshal(data, &dto); err != nil {
		c.logger.Warn("Failed to parse cached options", zap.String("key", key), zap.Error(err))
		return option.Result{}, false
	}
	return dto.toResult(field), true
}

func (c *CachedLookup) putToCache(ctx context.Context, key string, res option.Result) {
	data, err := json.Marshal(fromResult(res))
	if err != nil {
		c.logger.Warn("Failed to encode options", zap.String("key", key), zap.Error(err))
		return
	}
	if err := c.store.SetWithTTL(ctx, key, data, c.ttl); err != nil {
		c.logger.Warn("Failed to cache options", zap.String("key", key), zap.Error(err))
	}
}
