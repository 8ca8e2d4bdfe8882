package vehicle

import (
	"context"

	"github.com/kailas-cloud/autospecs/internal/domain/search/agg"
	"github.com/kailas-cloud/autospecs/internal/domain/search/query"
	"github.com/kailas-cloud/autospecs/internal/domain/search/request"
	"github.com/kailas-cloud/autospecs/internal/domain/search/result"
)

// Catalog is the primary index of vehicle specification records.
type Catalog interface {
	Vehicles(ctx context.Context, req request.Search) (result.Raw, error)
	Aggregate(ctx context.Context, q query.Clause, aggs agg.Set) (agg.Results, error)
}

// Registry is the secondary index of vehicle instances, keyed by vehicle id.
type Registry interface {
	Aggregate(ctx context.Context, q query.Clause, aggs agg.Set) (agg.Results, error)
}
