package db

import (
	"encoding/json"

	"github.com/kailas-cloud/autospecs/internal/domain/search/agg"
	"github.com/kailas-cloud/autospecs/internal/domain/search/query"
	"github.com/kailas-cloud/autospecs/internal/domain/search/sorting"
)

// SearchQuery is one engine search request.
type SearchQuery struct {
	Index string
	// Query nil means match all.
	Query query.Clause
	Aggs  agg.Set
	Sort  []sorting.Field
	From  int
	Size  int
	// TrackTotalHits asks for an exact total instead of the engine's capped estimate.
	TrackTotalHits bool
}

// SearchResult is the output of a search.
type SearchResult struct {
	Total        int64
	Hits         []SearchHit
	Aggregations agg.Results
}

// SearchHit is a single matching document.
type SearchHit struct {
	ID     string
	Source json.RawMessage
}
