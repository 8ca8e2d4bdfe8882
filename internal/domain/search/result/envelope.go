package result

import (
	"github.com/kailas-cloud/autospecs/internal/domain/search/agg"
	"github.com/kailas-cloud/autospecs/internal/domain/search/criteria"
	"github.com/kailas-cloud/autospecs/internal/domain/search/sorting"
	"github.com/kailas-cloud/autospecs/internal/domain/vehicle"
)

// Statistics is the facet breakdown of the whole matching set, not just the page.
type Statistics struct {
	ByManufacturer       Facet       `json:"byManufacturer"`
	ModelsByManufacturer NestedFacet `json:"modelsByManufacturer"`
	ByYearRange          Facet       `json:"byYearRange"`
	ByBodyClass          Facet       `json:"byBodyClass"`
	TotalCount           int64       `json:"totalCount"`
}

// Echo reproduces the normalized request inputs. It never contains the compiled query.
type Echo struct {
	ModelCombos []criteria.Pair         `json:"modelCombos"`
	Filters     criteria.FilterEcho     `json:"filters"`
	Highlights  *criteria.HighlightEcho `json:"highlights,omitempty"`
	SortBy      *string                 `json:"sortBy"`
	SortOrder   sorting.Direction       `json:"sortOrder"`
}

// Envelope is the paginated vehicle details response.
type Envelope struct {
	Total      int64             `json:"total"`
	Page       int               `json:"page"`
	Size       int               `json:"size"`
	TotalPages int               `json:"totalPages"`
	Query      Echo              `json:"query"`
	Results    []vehicle.Vehicle `json:"results"`
	Statistics Statistics        `json:"statistics"`
}

// ModelCount is one model of a manufacturer with its record count.
type ModelCount struct {
	Model string `json:"model"`
	Count int64  `json:"count"`
}

// ManufacturerSummary is a manufacturer with its record count and models.
type ManufacturerSummary struct {
	Manufacturer string       `json:"manufacturer"`
	Count        int64        `json:"count"`
	Models       []ModelCount `json:"models"`
}

// Combinations is the paginated manufacturer-model summary.
type Combinations struct {
	Total      int                   `json:"total"`
	Page       int                   `json:"page"`
	Size       int                   `json:"size"`
	TotalPages int                   `json:"totalPages"`
	Data       []ManufacturerSummary `json:"data"`
}

// Raw is an unshaped engine response for one page of vehicles.
type Raw struct {
	Total    int64
	Vehicles []vehicle.Vehicle
	Aggs     agg.Results
}
