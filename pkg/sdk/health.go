package autospecs

import (
	"context"
	"time"

	healthuc "github.com/kailas-cloud/autospecs/internal/usecase/health"
)

// HealthStatus represents the aggregated system health.
type HealthStatus struct {
	Status string            // "ready" or "not ready"
	Checks map[string]string // component → "connected"/"disconnected"
	Error  string            // engine failure, empty when ready
}

// Ready reports whether the search engine answered.
func (h HealthStatus) Ready() bool {
	return h.Status == string(healthuc.Ready)
}

// Health checks the search engine.
func (c *Client) Health(ctx context.Context) HealthStatus {
	start := time.Now()
	report := c.healthSvc.Check(ctx)
	c.obs.observe("health", start, report.Err)

	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}
	status := HealthStatus{
		Status: string(report.Status),
		Checks: checks,
	}
	if report.Err != nil {
		status.Error = report.Err.Error()
	}
	return status
}

// healthUseCase is the internal interface for health checks.
type healthUseCase interface {
	Check(ctx context.Context) healthuc.Report
}
