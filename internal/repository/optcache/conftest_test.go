package optcache

import (
	"context"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/kailas-cloud/autospecs/internal/db"
	"github.com/kailas-cloud/autospecs/internal/domain/search/option"
)

type mockLookup struct {
	result option.Result
	err    error
	calls  int
}

func (m *mockLookup) Lookup(_ context.Context, field option.Field, _ string, _ int) (option.Result, error) {
	m.calls++
	if m.err != nil {
		return option.Result{}, m.err
	}
	res := m.result
	res.Field = field
	return res, nil
}

type mockStore struct {
	getFn func(ctx context.Context, key string) ([]byte, error)
	setFn func(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

func (m *mockStore) Get(ctx context.Context, key string) ([]byte, error) {
	if m.getFn != nil {
		return m.getFn(ctx, key)
	}
	return nil, db.ErrKeyNotFound
}

func (m *mockStore) SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if m.setFn != nil {
		return m.setFn(ctx, key, value, ttl)
	}
	return nil
}

func newTestCache(t *testing.T, inner *mockLookup) (*CachedLookup, *mockStore, *prometheus.CounterVec) {
	t.Helper()
	ms := &mockStore{}
	counter := testCounter()
	return New(inner, ms, time.Minute, counter, nopLogger()), ms, counter
}

func testCounter() *prometheus.CounterVec {
	return prometheus.NewCounterVec(prometheus.CounterOpts{Name: "test_option_cache_total"}, []string{"result"})
}

func nopLogger() *zap.Logger { return zap.NewNop() }
