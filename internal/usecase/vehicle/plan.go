package vehicle

import (
	"github.com/kailas-cloud/autospecs/internal/domain/search/agg"
	"github.com/kailas-cloud/autospecs/internal/domain/search/query"
)

// Aggregation names.
const (
	aggByManufacturer       = "by_manufacturer"
	aggModelsByManufacturer = "models_by_manufacturer"
	aggModels               = "models"
	aggByYear               = "by_year_range"
	aggByBodyClass          = "by_body_class"
	aggHighlighted          = "highlighted"
)

// Facet bucket caps.
const (
	manufacturerBuckets = 100
	modelBuckets        = 50
	yearBuckets         = 100
	bodyClassBuckets    = 20
)

// planFacets builds the four facets. A non-nil highlight attaches the
// highlighted filter count to every facet and both levels of the nested one.
// The shaped nested facet reports counts per model; the manufacturer-level
// count rides along in the raw aggregations.
func planFacets(highlight query.Clause) agg.Set {
	sub := func() agg.Set {
		if highlight == nil {
			return nil
		}
		return agg.Set{aggHighlighted: agg.Filter{Clause: highlight}}
	}

	nested := sub()
	if nested == nil {
		nested = agg.Set{}
	}
	nested[aggModels] = agg.Terms{
		Field: modelField.Exact,
		Size:  modelBuckets,
		Order: agg.CountDesc(),
		Sub:   sub(),
	}

	return agg.Set{
		aggByManufacturer: agg.Terms{
			Field: manufacturerField.Exact,
			Size:  manufacturerBuckets,
			Order: agg.CountDesc(),
			Sub:   sub(),
		},
		aggModelsByManufacturer: agg.Terms{
			Field: manufacturerField.Exact,
			Size:  manufacturerBuckets,
			Order: agg.CountDesc(),
			Sub:   nested,
		},
		aggByYear: agg.Terms{
			Field: yearField.Exact,
			Size:  yearBuckets,
			Order: agg.KeyAsc(),
			Sub:   sub(),
		},
		aggByBodyClass: agg.Terms{
			Field: bodyClassField.Exact,
			Size:  bodyClassBuckets,
			Order: agg.CountDesc(),
			Sub:   sub(),
		},
	}
}
