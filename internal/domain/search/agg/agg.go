// Package agg defines aggregation plans and the raw bucket results the engine returns for them.
package agg

import (
	"github.com/kailas-cloud/autospecs/internal/domain/search/query"
	"github.com/kailas-cloud/autospecs/internal/domain/search/sorting"
)

// Type identifies an aggregation variant.
type Type string

// Aggregation types.
const (
	TypeTerms  Type = "terms"
	TypeFilter Type = "filter"
	TypeStats  Type = "stats"
)

// OrderBy selects the bucket ordering key.
type OrderBy string

// Bucket ordering keys.
const (
	ByCount OrderBy = "_count"
	ByKey   OrderBy = "_key"
)

// Order is a deterministic bucket order.
type Order struct {
	By        OrderBy
	Direction sorting.Direction
}

// CountDesc orders buckets by document count, largest first.
func CountDesc() *Order { return &Order{By: ByCount, Direction: sorting.Desc} }

// KeyAsc orders buckets by key ascending.
func KeyAsc() *Order { return &Order{By: ByKey, Direction: sorting.Asc} }

// Aggregation is a node of an aggregation plan. The set of implementations is closed.
type Aggregation interface {
	Type() Type
	sealed()
}

// Set maps aggregation names to their definitions.
type Set map[string]Aggregation

// Terms buckets documents by distinct field values.
type Terms struct {
	Field string
	Size  int
	Order *Order
	Sub   Set
}

// Filter counts the documents of the enclosing bucket that satisfy Clause.
type Filter struct {
	Clause query.Clause
}

// Stats computes min/max/avg/sum over a numeric field.
type Stats struct {
	Field string
}

func (Terms) Type() Type  { return TypeTerms }
func (Filter) Type() Type { return TypeFilter }
func (Stats) Type() Type  { return TypeStats }

func (Terms) sealed()  {}
func (Filter) sealed() {}
func (Stats) sealed()  {}

// Results maps aggregation names to their raw results.
type Results map[string]Result

// Result is a raw aggregation result. Which fields are set depends on the aggregation type.
type Result struct {
	Buckets  []Bucket
	DocCount int64
	Stats    *StatsResult
}

// Bucket is one distinct-value group of a terms aggregation.
type Bucket struct {
	Key      string
	DocCount int64
	Sub      Results
}

// StatsResult holds stats aggregation values. Min and Max are nil when no document matched.
type StatsResult struct {
	Count int64
	Min   *float64
	Max   *float64
	Avg   *float64
	Sum   float64
}

// Child returns the named sub-aggregation result of the bucket.
func (b Bucket) Child(name string) (Result, bool) {
	r, ok := b.Sub[name]
	return r, ok
}
