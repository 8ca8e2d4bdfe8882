// Package opensearch implements db.Searcher over an OpenSearch (or
// Elasticsearch-compatible) cluster via opensearch-go.
package opensearch

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/opensearch-project/opensearch-go/v2"
	"github.com/opensearch-project/opensearch-go/v2/opensearchapi"

	"github.com/kailas-cloud/autospecs/internal/db"
)

// Compile-time check: Store implements db.Searcher.
var _ db.Searcher = (*Store)(nil)

// Config holds connection parameters for the search engine.
type Config struct {
	Addresses []string
	Username  string
	Password  string
	// RequestTimeout bounds every engine call. Zero disables the bound.
	RequestTimeout time.Duration
	MaxRetries     int
}

// Store talks to the engine through the opensearch-go transport.
type Store struct {
	transport opensearchapi.Transport
	timeout   time.Duration
}

// NewStore creates an engine store.
func NewStore(cfg Config) (*Store, error) {
	if len(cfg.Addresses) == 0 {
		return nil, fmt.Errorf("addresses is required")
	}

	client, err := opensearch.NewClient(opensearch.Config{
		Addresses:     cfg.Addresses,
		Username:      cfg.Username,
		Password:      cfg.Password,
		MaxRetries:    cfg.MaxRetries,
		DisableRetry:  cfg.MaxRetries == 0,
		RetryOnStatus: []int{http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}

	return &Store{transport: client, timeout: cfg.RequestTimeout}, nil
}

// NewStoreForTest creates a Store over an arbitrary transport.
func NewStoreForTest(t opensearchapi.Transport, timeout time.Duration) *Store {
	return &Store{transport: t, timeout: timeout}
}

// Ping checks connectivity.
func (s *Store) Ping(ctx context.Context) error {
	ctx, cancel := s.bound(ctx)
	defer cancel()

	resp, err := opensearchapi.PingRequest{}.Do(ctx, s.transport)
	if err != nil {
		return &db.Error{Op: db.OpPing, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.IsError() {
		return &db.Error{Op: db.OpPing, Err: fmt.Errorf("status %d", resp.StatusCode)}
	}
	return nil
}

// WaitForReady polls Ping until the engine responds or timeout expires.
func (s *Store) WaitForReady(ctx context.Context, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	ticker := time.NewTicker(250 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return fmt.Errorf("timeout waiting for search engine: %w", ctx.Err())
		case <-ticker.C:
			if err := s.Ping(ctx); err == nil {
				return nil
			}
		}
	}
}

func (s *Store) bound(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.timeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, s.timeout)
}
