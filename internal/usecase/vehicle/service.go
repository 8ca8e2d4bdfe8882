// Package vehicle runs the vehicle details pipeline (compile, plan, search,
// enrich, shape) and the manufacturer-model summary.
package vehicle

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/kailas-cloud/autospecs/internal/domain"
	"github.com/kailas-cloud/autospecs/internal/domain/search/request"
	"github.com/kailas-cloud/autospecs/internal/domain/search/result"
	domveh "github.com/kailas-cloud/autospecs/internal/domain/vehicle"
	"github.com/kailas-cloud/autospecs/internal/logger"
)

// Service answers vehicle details and combinations queries.
type Service struct {
	catalog        Catalog
	registry       Registry
	joinField      string
	enrichFailures prometheus.Counter
}

// New creates a vehicle service. joinField is the registry field holding the
// vehicle id; empty means vehicle_id. enrichFailures may be nil.
func New(catalog Catalog, registry Registry, joinField string, enrichFailures prometheus.Counter) *Service {
	if joinField == "" {
		joinField = domveh.FieldVehicleID
	}
	return &Service{
		catalog:        catalog,
		registry:       registry,
		joinField:      joinField,
		enrichFailures: enrichFailures,
	}
}

// Details returns one page of vehicles with facet statistics over the whole match.
func (s *Service) Details(ctx context.Context, req request.Details) (result.Envelope, error) {
	q := compileQuery(req.Pairs(), req.Filter())
	highlight, highlighted := compileHighlight(req.Highlight())

	raw, err := s.catalog.Vehicles(ctx, request.Search{
		Query: q,
		Aggs:  planFacets(highlight),
		Sort:  resolveSort(req.SortBy(), req.SortOrder()),
		From:  req.Page().Offset(),
		Size:  req.Page().Size(),
	})
	if err != nil {
		return result.Envelope{}, fmt.Errorf("%w: %w", domain.ErrSearchFailed, err)
	}

	ctx = logger.WithFields(ctx, zap.Int64("total", raw.Total), zap.Int("page", req.Page().Page()))
	rows := s.enrich(ctx, raw.Vehicles)
	return shapeEnvelope(req, raw, rows, highlighted), nil
}
