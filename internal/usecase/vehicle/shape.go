package vehicle

import (
	"github.com/kailas-cloud/autospecs/internal/domain/search/agg"
	"github.com/kailas-cloud/autospecs/internal/domain/search/criteria"
	"github.com/kailas-cloud/autospecs/internal/domain/search/request"
	"github.com/kailas-cloud/autospecs/internal/domain/search/result"
	domveh "github.com/kailas-cloud/autospecs/internal/domain/vehicle"
)

func shapeEnvelope(
	req request.Details, raw result.Raw, rows []domveh.Vehicle, highlighted bool,
) result.Envelope {
	if rows == nil {
		rows = []domveh.Vehicle{}
	}
	pg := req.Page()
	return result.Envelope{
		Total:      raw.Total,
		Page:       pg.Page(),
		Size:       pg.Size(),
		TotalPages: pg.TotalPages(raw.Total),
		Query:      echo(req),
		Results:    rows,
		Statistics: shapeStatistics(raw.Aggs, raw.Total, highlighted),
	}
}

// echo reproduces the normalized request inputs.
func echo(req request.Details) result.Echo {
	pairs := req.Pairs()
	if pairs == nil {
		pairs = []criteria.Pair{}
	}
	e := result.Echo{
		ModelCombos: pairs,
		Filters:     req.Filter().Echo(),
		SortBy:      effectiveSortBy(req.SortBy()),
		SortOrder:   req.SortOrder(),
	}
	if h := req.Highlight(); !h.IsEmpty() {
		he := h.Echo()
		e.Highlights = &he
	}
	return e
}

func shapeStatistics(aggs agg.Results, total int64, highlighted bool) result.Statistics {
	return result.Statistics{
		ByManufacturer:       shapeFacet(aggs[aggByManufacturer], highlighted),
		ModelsByManufacturer: shapeNested(aggs[aggModelsByManufacturer], highlighted),
		ByYearRange:          shapeFacet(aggs[aggByYear], highlighted),
		ByBodyClass:          shapeFacet(aggs[aggByBodyClass], highlighted),
		TotalCount:           total,
	}
}

func shapeFacet(r agg.Result, highlighted bool) result.Facet {
	f := make(result.Facet, 0, len(r.Buckets))
	for _, b := range r.Buckets {
		f = append(f, result.Entry{Key: b.Key, Count: bucketCount(b, highlighted)})
	}
	return f
}

func shapeNested(r agg.Result, highlighted bool) result.NestedFacet {
	n := make(result.NestedFacet, 0, len(r.Buckets))
	for _, b := range r.Buckets {
		models, _ := b.Child(aggModels)
		n = append(n, result.NestedEntry{Key: b.Key, Facet: shapeFacet(models, highlighted)})
	}
	return n
}

func bucketCount(b agg.Bucket, highlighted bool) result.Count {
	if !highlighted {
		return result.Plain(b.DocCount)
	}
	h, _ := b.Child(aggHighlighted)
	return result.Segmented(b.DocCount, h.DocCount)
}
