package vehicle

import (
	"context"
	"fmt"

	"github.com/kailas-cloud/autospecs/internal/domain"
	"github.com/kailas-cloud/autospecs/internal/domain/search/agg"
	"github.com/kailas-cloud/autospecs/internal/domain/search/query"
	"github.com/kailas-cloud/autospecs/internal/domain/search/request"
	"github.com/kailas-cloud/autospecs/internal/domain/search/result"
)

const (
	aggManufacturers = "manufacturers"

	combinationBuckets = 100
	searchFuzziness    = "AUTO"
)

// Combinations lists manufacturers with their models and record counts,
// paged over manufacturers.
func (s *Service) Combinations(ctx context.Context, req request.Combinations) (result.Combinations, error) {
	res, err := s.catalog.Aggregate(ctx, compileCombinations(req), agg.Set{
		aggManufacturers: agg.Terms{
			Field: manufacturerField.Exact,
			Size:  combinationBuckets,
			Order: agg.KeyAsc(),
			Sub: agg.Set{aggModels: agg.Terms{
				Field: modelField.Exact,
				Size:  combinationBuckets,
				Order: agg.KeyAsc(),
			}},
		},
	})
	if err != nil {
		return result.Combinations{}, fmt.Errorf("%w: %w", domain.ErrCombinationsFailed, err)
	}

	buckets := res[aggManufacturers].Buckets
	all := make([]result.ManufacturerSummary, 0, len(buckets))
	for _, b := range buckets {
		sub, _ := b.Child(aggModels)
		models := make([]result.ModelCount, 0, len(sub.Buckets))
		for _, m := range sub.Buckets {
			models = append(models, result.ModelCount{Model: m.Key, Count: m.DocCount})
		}
		all = append(all, result.ManufacturerSummary{Manufacturer: b.Key, Count: b.DocCount, Models: models})
	}

	pg := req.Page()
	start, end := pg.Window(len(all))
	return result.Combinations{
		Total:      len(all),
		Page:       pg.Page(),
		Size:       pg.Size(),
		TotalPages: pg.TotalPages(int64(len(all))),
		Data:       all[start:end],
	}, nil
}

// compileCombinations matches free text fuzzily against manufacturer and model
// or exactly against body class, optionally restricted to one manufacturer.
func compileCombinations(req request.Combinations) query.Clause {
	var must []query.Clause
	if text := req.Search(); text != "" {
		must = append(must, query.AnyOf(
			query.Match{Field: manufacturerField.Name, Query: text, Fuzziness: searchFuzziness},
			query.Match{Field: modelField.Name, Query: text, Fuzziness: searchFuzziness},
			query.Term{Field: bodyClassField.Exact, Value: text},
		))
	}
	if m := req.Manufacturer(); m != "" {
		must = append(must, query.Term{Field: manufacturerField.Exact, Value: m})
	}
	if len(must) == 0 {
		return query.MatchAll{}
	}
	return query.AllOf(must...)
}
