package health

import (
	"context"
	"time"
)

// Status represents the aggregated readiness status.
type Status string

const (
	// Ready indicates every required component answers.
	Ready Status = "ready"
	// NotReady indicates the search engine is unreachable.
	NotReady Status = "not ready"
)

// CheckResult represents an individual component check outcome.
type CheckResult string

const (
	// Connected indicates a passing check.
	Connected CheckResult = "connected"
	// Disconnected indicates a failing check.
	Disconnected CheckResult = "disconnected"
)

// Component names used in reports.
const (
	ComponentEngine = "elasticsearch"
	ComponentCache  = "cache"
)

// Report aggregates readiness check results.
type Report struct {
	Status Status
	Checks map[string]CheckResult
	// Err is the engine failure, nil when ready.
	Err error
}

// Service coordinates readiness checks.
type Service struct {
	engine  Pinger
	cache   Pinger
	timeout time.Duration
}

// New creates a Service. cache can be nil; a failing cache never makes the
// service unready. timeout bounds each ping, zero means no bound.
func New(engine, cache Pinger, timeout time.Duration) *Service {
	return &Service{engine: engine, cache: cache, timeout: timeout}
}

// Check pings the engine and, when configured, the cache.
func (s *Service) Check(ctx context.Context) Report {
	checks := make(map[string]CheckResult)
	r := Report{Status: Ready, Checks: checks}

	if err := s.ping(ctx, s.engine); err != nil {
		checks[ComponentEngine] = Disconnected
		r.Status = NotReady
		r.Err = err
	} else {
		checks[ComponentEngine] = Connected
	}

	if s.cache != nil {
		if err := s.ping(ctx, s.cache); err != nil {
			checks[ComponentCache] = Disconnected
		} else {
			checks[ComponentCache] = Connected
		}
	}

	return r
}

func (s *Service) ping(ctx context.Context, p Pinger) error {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}
	return p.Ping(ctx)
}
