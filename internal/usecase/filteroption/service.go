// Package filteroption lists the values available to each filter control.
package filteroption

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"

	"golang.org/x/sync/singleflight"

	"github.com/kailas-cloud/autospecs/internal/domain"
	"github.com/kailas-cloud/autospecs/internal/domain/search/agg"
	"github.com/kailas-cloud/autospecs/internal/domain/search/option"
	"github.com/kailas-cloud/autospecs/internal/domain/search/query"
	"github.com/kailas-cloud/autospecs/internal/domain/vehicle"
)

const (
	aggValues    = "values"
	aggYearStats = "year_stats"

	bodyClassLimit  = 100
	dataSourceLimit = 50
)

// Service answers filter option lookups. Identical concurrent lookups share one engine call.
type Service struct {
	index Index
	group singleflight.Group
}

// New creates a filter option service.
func New(index Index) *Service {
	return &Service{index: index}
}

// Lookup returns the distinct values of a field, or the year bounds for year-range.
// search and limit only apply to manufacturers and models.
func (s *Service) Lookup(ctx context.Context, field option.Field, search string, limit int) (option.Result, error) {
	if !field.IsValid() {
		_, err := option.ParseField(string(field))
		return option.Result{}, err
	}
	search = strings.TrimSpace(search)
	if field.Searchable() {
		if err := option.ValidateLimit(limit); err != nil {
			return option.Result{}, err
		}
	}

	// The shared call outlives any single caller; the engine request timeout bounds it.
	shared := context.WithoutCancel(ctx)
	ch := s.group.DoChan(flightKey(field, search, limit), func() (interface{}, error) {
		return s.lookup(shared, field, search, limit)
	})

	select {
	case <-ctx.Done():
		return option.Result{}, fmt.Errorf("%w: %s: %w", domain.ErrFilterOptionsFailed, field, ctx.Err())
	case r := <-ch:
		if r.Err != nil {
			return option.Result{}, fmt.Errorf("%w: %s: %w", domain.ErrFilterOptionsFailed, field, r.Err)
		}
		return r.Val.(option.Result), nil
	}
}

func (s *Service) lookup(ctx context.Context, field option.Field, search string, limit int) (option.Result, error) {
	if field == option.YearRange {
		return s.yearRange(ctx)
	}

	var (
		spec vehicle.FieldSpec
		size int
		q    query.Clause = query.MatchAll{}
	)
	switch field {
	case option.Manufacturers:
		spec, size = vehicle.MustLookup(vehicle.FieldManufacturer), limit
	case option.Models:
		spec, size = vehicle.MustLookup(vehicle.FieldModel), limit
	case option.BodyClasses:
		spec, size = vehicle.MustLookup(vehicle.FieldBodyClass), bodyClassLimit
	case option.DataSources:
		spec, size = vehicle.MustLookup(vehicle.FieldDataSource), dataSourceLimit
	}
	if field.Searchable() && search != "" {
		q = query.Wildcard{
			Field:           spec.Exact,
			Pattern:         query.EscapeWildcard(strings.ToLower(search)) + "*",
			CaseInsensitive: true,
		}
	}

	res, err := s.index.Aggregate(ctx, q, agg.Set{
		aggValues: agg.Terms{Field: spec.Exact, Size: size, Order: agg.KeyAsc()},
	})
	if err != nil {
		return option.Result{}, err
	}

	buckets := res[aggValues].Buckets
	values := make([]string, len(buckets))
	for i, b := range buckets {
		values[i] = b.Key
	}
	return option.Result{Field: field, Values: values}, nil
}

func (s *Service) yearRange(ctx context.Context) (option.Result, error) {
	year := vehicle.MustLookup(vehicle.FieldYear)
	res, err := s.index.Aggregate(ctx, query.MatchAll{}, agg.Set{
		aggYearStats: agg.Stats{Field: year.Exact},
	})
	if err != nil {
		return option.Result{}, err
	}

	var b option.Bounds
	if st := res[aggYearStats].Stats; st != nil {
		if st.Min != nil {
			lo := int(math.Floor(*st.Min))
			b.Min = &lo
		}
		if st.Max != nil {
			hi := int(math.Ceil(*st.Max))
			b.Max = &hi
		}
	}
	return option.Result{Field: option.YearRange, Bounds: b}, nil
}

func flightKey(field option.Field, search string, limit int) string {
	if !field.Searchable() {
		return string(field)
	}
	return string(field) + "\x00" + strconv.Itoa(limit) + "\x00" + strings.ToLower(search)
}
