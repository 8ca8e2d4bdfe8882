// Package request holds validated use case requests and the engine-agnostic
// search request compiled from them.
package request

import (
	"fmt"
	"slices"
	"strings"

	"github.com/kailas-cloud/autospecs/internal/domain"
	"github.com/kailas-cloud/autospecs/internal/domain/search/agg"
	"github.com/kailas-cloud/autospecs/internal/domain/search/criteria"
	"github.com/kailas-cloud/autospecs/internal/domain/search/page"
	"github.com/kailas-cloud/autospecs/internal/domain/search/query"
	"github.com/kailas-cloud/autospecs/internal/domain/search/sorting"
	"github.com/kailas-cloud/autospecs/internal/domain/vehicle"
)

// Defaults for the combinations listing.
const (
	DefaultCombinationsSize = 50
)

// Details is a validated vehicle details request.
type Details struct {
	pairs     []criteria.Pair
	filter    criteria.Filter
	highlight criteria.Highlight
	sortBy    string
	order     sorting.Direction
	page      page.Spec
}

// DetailsParams are the raw inputs of a details request.
type DetailsParams struct {
	ModelCombos string
	Filter      criteria.RawFilter
	Highlight   criteria.RawHighlight
	SortBy      string
	SortOrder   string
	Page        int
	Size        int
}

// NewDetails validates and normalizes a details request.
// Page and size must already carry their defaults.
func NewDetails(p DetailsParams) (Details, error) {
	pg, err := page.New(p.Page, p.Size, page.MaxSize)
	if err != nil {
		return Details{}, err
	}
	sortBy := strings.TrimSpace(p.SortBy)
	if sortBy != "" && !slices.Contains(vehicle.SortFields(), sortBy) {
		return Details{}, domain.NewInvalidInput("sortBy",
			fmt.Sprintf("sortBy must be one of: %s", strings.Join(vehicle.SortFields(), ", ")))
	}
	order, err := sorting.ParseDirection(strings.TrimSpace(p.SortOrder))
	if err != nil {
		return Details{}, err
	}
	pairs, err := criteria.ParsePairs("models", p.ModelCombos)
	if err != nil {
		return Details{}, err
	}
	filter, err := criteria.NormalizeFilter(p.Filter)
	if err != nil {
		return Details{}, err
	}
	highlight, err := criteria.NormalizeHighlight(p.Highlight)
	if err != nil {
		return Details{}, err
	}
	return Details{
		pairs:     pairs,
		filter:    filter,
		highlight: highlight,
		sortBy:    sortBy,
		order:     order,
		page:      pg,
	}, nil
}

// Pairs returns the manufacturer+model selection. Empty means all vehicles.
func (d Details) Pairs() []criteria.Pair { return d.pairs }

// Filter returns the normalized primary filter.
func (d Details) Filter() criteria.Filter { return d.filter }

// Highlight returns the normalized highlight set.
func (d Details) Highlight() criteria.Highlight { return d.highlight }

// SortBy returns the requested sort field, empty for the default order.
func (d Details) SortBy() string { return d.sortBy }

// SortOrder returns the requested direction.
func (d Details) SortOrder() sorting.Direction { return d.order }

// Page returns the page window.
func (d Details) Page() page.Spec { return d.page }

// Combinations is a validated manufacturer-model summary request.
type Combinations struct {
	search       string
	manufacturer string
	page         page.Spec
}

// NewCombinations validates a combinations request.
func NewCombinations(search, manufacturer string, pg, size int) (Combinations, error) {
	spec, err := page.New(pg, size, page.MaxSize)
	if err != nil {
		return Combinations{}, err
	}
	return Combinations{
		search:       strings.TrimSpace(search),
		manufacturer: strings.TrimSpace(manufacturer),
		page:         spec,
	}, nil
}

// Search returns the free-text search, empty when absent.
func (c Combinations) Search() string { return c.search }

// Manufacturer returns the exact manufacturer restriction, empty when absent.
func (c Combinations) Manufacturer() string { return c.manufacturer }

// Page returns the page window over manufacturers.
func (c Combinations) Page() page.Spec { return c.page }

// Search is one compiled engine request against a single index.
type Search struct {
	Query query.Clause
	Aggs  agg.Set
	Sort  []sorting.Field
	From  int
	Size  int
}
