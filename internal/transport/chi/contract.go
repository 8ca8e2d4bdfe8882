package chi

import (
	"context"

	"github.com/kailas-cloud/autospecs/internal/domain/search/option"
	"github.com/kailas-cloud/autospecs/internal/domain/search/request"
	"github.com/kailas-cloud/autospecs/internal/domain/search/result"
	healthuc "github.com/kailas-cloud/autospecs/internal/usecase/health"
)

// vehicleService answers the vehicle endpoints.
type vehicleService interface {
	Details(ctx context.Context, req request.Details) (result.Envelope, error)
	Combinations(ctx context.Context, req request.Combinations) (result.Combinations, error)
}

// optionLookup answers the filter option endpoint.
type optionLookup interface {
	Lookup(ctx context.Context, field option.Field, search string, limit int) (option.Result, error)
}

// healthChecker reports readiness.
type healthChecker interface {
	Check(ctx context.Context) healthuc.Report
}
