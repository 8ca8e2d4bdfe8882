package search

import (
	"context"
	"testing"

	"github.com/kailas-cloud/autospecs/internal/db"
)

// mockStore implements the consumer interface for tests.
type mockStore struct {
	searchFn func(ctx context.Context, q *db.SearchQuery) (*db.SearchResult, error)
	queries  []*db.SearchQuery
}

func (m *mockStore) Search(ctx context.Context, q *db.SearchQuery) (*db.SearchResult, error) {
	m.queries = append(m.queries, q)
	if m.searchFn != nil {
		return m.searchFn(ctx, q)
	}
	return &db.SearchResult{}, nil
}

func newTestRepo(t *testing.T, index string) (*Repo, *mockStore) {
	t.Helper()
	ms := &mockStore{}
	return New(ms, index), ms
}
