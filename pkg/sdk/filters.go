package autospecs

import (
	"context"
	"fmt"
	"time"

	"github.com/kailas-cloud/autospecs/internal/domain/search/option"
)

// FilterField names a filter option lookup.
type FilterField = option.Field

// Filter option lookups.
const (
	Manufacturers FilterField = option.Manufacturers
	Models        FilterField = option.Models
	BodyClasses   FilterField = option.BodyClasses
	DataSources   FilterField = option.DataSources
	YearRange     FilterField = option.YearRange
)

// DefaultFilterLimit is the limit used when Lookup receives zero.
const DefaultFilterLimit = option.DefaultLimit

// FilterOptions is the outcome of a lookup. Values is set for value lookups,
// Bounds for YearRange.
type FilterOptions = option.Result

// YearBounds holds the lowest and highest year, nil on an empty index.
type YearBounds = option.Bounds

// FilterService lists the values available to filter controls.
type FilterService struct {
	svc optionUseCase
	obs *observer
}

// Lookup returns the distinct values of a field, or the year bounds for
// YearRange. search and limit only apply to Manufacturers and Models.
func (s *FilterService) Lookup(ctx context.Context, field FilterField, search string, limit int) (_ FilterOptions, err error) {
	start := time.Now()
	defer func() { s.obs.observe("filters.lookup", start, err) }()

	f, err := option.ParseField(string(field))
	if err != nil {
		return FilterOptions{}, fmt.Errorf("lookup: %w", err)
	}
	if limit == 0 {
		limit = DefaultFilterLimit
	}
	res, err := s.svc.Lookup(ctx, f, search, limit)
	if err != nil {
		return FilterOptions{}, fmt.Errorf("lookup %s: %w", f, err)
	}
	return res, nil
}
