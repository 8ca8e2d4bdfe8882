package vehicle

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/kailas-cloud/autospecs/internal/domain/search/agg"
	"github.com/kailas-cloud/autospecs/internal/domain/search/query"
	domveh "github.com/kailas-cloud/autospecs/internal/domain/vehicle"
	"github.com/kailas-cloud/autospecs/internal/logger"
)

const aggInstanceCounts = "instance_counts"

var errMissingInstanceCounts = errors.New("instance_counts aggregation missing from response")

// enrich attaches per-vehicle instance counts from the registry. A vehicle
// without a bucket has zero instances. A failed lookup never fails the
// request: every row then carries an unknown (nil) count.
func (s *Service) enrich(ctx context.Context, rows []domveh.Vehicle) []domveh.Vehicle {
	if len(rows) == 0 {
		return rows
	}

	ids := distinctIDs(rows)
	counts := map[string]int64{}
	if len(ids) > 0 {
		var err error
		counts, err = s.instanceCounts(ctx, ids)
		if err != nil {
			logger.FromContext(ctx).Warn("Instance count lookup failed",
				zap.Int("ids", len(ids)),
				zap.Error(err),
			)
			if s.enrichFailures != nil {
				s.enrichFailures.Inc()
			}
			out := make([]domveh.Vehicle, len(rows))
			for i, r := range rows {
				out[i] = r.WithInstanceCount(nil)
			}
			return out
		}
	}

	out := make([]domveh.Vehicle, len(rows))
	for i, r := range rows {
		n := counts[r.ID()]
		out[i] = r.WithInstanceCount(&n)
	}
	return out
}

func (s *Service) instanceCounts(ctx context.Context, ids []string) (map[string]int64, error) {
	res, err := s.registry.Aggregate(ctx,
		query.Terms{Field: s.joinField, Values: ids},
		agg.Set{aggInstanceCounts: agg.Terms{Field: s.joinField, Size: len(ids)}},
	)
	if err != nil {
		return nil, err
	}
	r, ok := res[aggInstanceCounts]
	if !ok {
		return nil, errMissingInstanceCounts
	}
	counts := make(map[string]int64, len(r.Buckets))
	for _, b := range r.Buckets {
		counts[b.Key] = b.DocCount
	}
	return counts, nil
}

// distinctIDs returns the non-empty vehicle ids of rows in first-seen order.
func distinctIDs(rows []domveh.Vehicle) []string {
	seen := make(map[string]struct{}, len(rows))
	ids := make([]string, 0, len(rows))
	for _, r := range rows {
		id := r.ID()
		if id == "" {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	return ids
}
