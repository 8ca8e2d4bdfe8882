package autospecs

import (
	"context"
	"fmt"
	"time"

	"github.com/kailas-cloud/autospecs/internal/domain/search/criteria"
	"github.com/kailas-cloud/autospecs/internal/domain/search/page"
	"github.com/kailas-cloud/autospecs/internal/domain/search/request"
	"github.com/kailas-cloud/autospecs/internal/domain/search/result"
)

// Envelope is one page of vehicle details with facet statistics.
// It marshals to the same JSON as the HTTP API.
type Envelope = result.Envelope

// Combinations is one page of manufacturers with their models.
type Combinations = result.Combinations

// DefaultCombinationsSize is the page size used when CombinationsQuery.Size is zero.
const DefaultCombinationsSize = request.DefaultCombinationsSize

// DetailsQuery selects a page of vehicle details. Multi-value fields are
// comma-separated; pairs use "Manufacturer:Model". Zero Page and Size take the
// defaults (1 and 20). Years are strings so the SDK validates them the same
// way the HTTP API does.
type DetailsQuery struct {
	Models       string
	Manufacturer string
	Model        string
	BodyClass    string
	DataSource   string
	YearMin      string
	YearMax      string

	ManufacturerSearch string
	ModelSearch        string
	BodyClassSearch    string
	DataSourceSearch   string

	HighlightYearMin      string
	HighlightYearMax      string
	HighlightManufacturer string
	HighlightModels       string
	HighlightBodyClass    string

	SortBy    string
	SortOrder string
	Page      int
	Size      int
}

func (q DetailsQuery) params() request.DetailsParams {
	pg, size := q.Page, q.Size
	if pg == 0 {
		pg = 1
	}
	if size == 0 {
		size = page.DefaultSize
	}
	return request.DetailsParams{
		ModelCombos: q.Models,
		Filter: criteria.RawFilter{
			Manufacturer:       q.Manufacturer,
			Model:              q.Model,
			BodyClass:          q.BodyClass,
			DataSource:         q.DataSource,
			YearMin:            q.YearMin,
			YearMax:            q.YearMax,
			ManufacturerSearch: q.ManufacturerSearch,
			ModelSearch:        q.ModelSearch,
			BodyClassSearch:    q.BodyClassSearch,
			DataSourceSearch:   q.DataSourceSearch,
		},
		Highlight: criteria.RawHighlight{
			YearMin:      q.HighlightYearMin,
			YearMax:      q.HighlightYearMax,
			Manufacturer: q.HighlightManufacturer,
			ModelCombos:  q.HighlightModels,
			BodyClass:    q.HighlightBodyClass,
		},
		SortBy:    q.SortBy,
		SortOrder: q.SortOrder,
		Page:      pg,
		Size:      size,
	}
}

// CombinationsQuery selects a page of manufacturers.
type CombinationsQuery struct {
	Search       string
	Manufacturer string
	Page         int
	Size         int
}

// VehicleService runs vehicle searches.
type VehicleService struct {
	svc vehicleUseCase
	obs *observer
}

// Details returns one page of vehicles with statistics over the whole match.
func (s *VehicleService) Details(ctx context.Context, q DetailsQuery) (_ Envelope, err error) {
	start := time.Now()
	defer func() { s.obs.observe("vehicles.details", start, err) }()

	req, err := request.NewDetails(q.params())
	if err != nil {
		return Envelope{}, fmt.Errorf("details: %w", err)
	}
	env, err := s.svc.Details(ctx, req)
	if err != nil {
		return Envelope{}, fmt.Errorf("details: %w", err)
	}
	return env, nil
}

// Combinations lists manufacturers with their models and record counts.
func (s *VehicleService) Combinations(ctx context.Context, q CombinationsQuery) (_ Combinations, err error) {
	start := time.Now()
	defer func() { s.obs.observe("vehicles.combinations", start, err) }()

	pg, size := q.Page, q.Size
	if pg == 0 {
		pg = 1
	}
	if size == 0 {
		size = DefaultCombinationsSize
	}
	req, err := request.NewCombinations(q.Search, q.Manufacturer, pg, size)
	if err != nil {
		return Combinations{}, fmt.Errorf("combinations: %w", err)
	}
	res, err := s.svc.Combinations(ctx, req)
	if err != nil {
		return Combinations{}, fmt.Errorf("combinations: %w", err)
	}
	return res, nil
}
