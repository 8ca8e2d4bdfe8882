package filteroption

import (
	"context"

	"github.com/kailas-cloud/autospecs/internal/domain/search/agg"
	"github.com/kailas-cloud/autospecs/internal/domain/search/query"
)

// Index runs aggregation-only requests against the primary index.
type Index interface {
	Aggregate(ctx context.Context, q query.Clause, aggs agg.Set) (agg.Results, error)
}
