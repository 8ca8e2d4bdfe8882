package search

import (
	"context"
	"fmt"

	"github.com/kailas-cloud/autospecs/internal/db"
	"github.com/kailas-cloud/autospecs/internal/domain/search/agg"
	"github.com/kailas-cloud/autospecs/internal/domain/search/query"
	"github.com/kailas-cloud/autospecs/internal/domain/search/request"
	"github.com/kailas-cloud/autospecs/internal/domain/search/result"
	"github.com/kailas-cloud/autospecs/internal/domain/vehicle"
)

// store is the consumer interface for search operations (ISP).
type store interface {
	Search(ctx context.Context, q *db.SearchQuery) (*db.SearchResult, error)
}

// Repo runs searches against a single index.
type Repo struct {
	store store
	index string
}

// New creates a repository bound to index.
func New(s store, index string) *Repo {
	return &Repo{store: s, index: index}
}

// Index returns the bound index name.
func (r *Repo) Index() string { return r.index }

// Vehicles runs one paged search with aggregations and an exact total,
// decoding each hit into a vehicle record.
func (r *Repo) Vehicles(ctx context.Context, req request.Search) (result.Raw, error) {
	sr, err := r.store.Search(ctx, &db.SearchQuery{
		Index:          r.index,
		Query:          req.Query,
		Aggs:           req.Aggs,
		Sort:           req.Sort,
		From:           req.From,
		Size:           req.Size,
		TrackTotalHits: true,
	})
	if err != nil {
		return result.Raw{}, fmt.Errorf("search %s: %w", r.index, err)
	}

	vehicles := make([]vehicle.Vehicle, 0, len(sr.Hits))
	for _, h := range sr.Hits {
		v, err := vehicle.Parse(h.Source)
		if err != nil {
			return result.Raw{}, fmt.Errorf("hit %s: %w", h.ID, err)
		}
		vehicles = append(vehicles, v)
	}

	return result.Raw{Total: sr.Total, Vehicles: vehicles, Aggs: sr.Aggregations}, nil
}

// Aggregate runs aggregations only; no documents are returned.
func (r *Repo) Aggregate(ctx context.Context, q query.Clause, aggs agg.Set) (agg.Results, error) {
	sr, err := r.store.Search(ctx, &db.SearchQuery{
		Index: r.index,
		Query: q,
		Aggs:  aggs,
		Size:  0,
	})
	if err != nil {
		return nil, fmt.Errorf("aggregate %s: %w", r.index, err)
	}
	return sr.Aggregations, nil
}
