package autospecs

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/kailas-cloud/autospecs/internal/domain"
)

// Outcome labels of autospecs_sdk_operations_total.
const (
	outcomeOK      = "ok"
	outcomeInvalid = "invalid"
	outcomeError   = "error"
)

// searchBuckets cover a cached filter lookup up to a slow enriched details page.
var searchBuckets = []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10}

type sdkMetrics struct {
	operations     *prometheus.CounterVec
	duration       *prometheus.HistogramVec
	enrichFailures prometheus.Counter
}

func newSDKMetrics(reg prometheus.Registerer) (*sdkMetrics, error) {
	opts := func(name, help string) prometheus.Opts {
		return prometheus.Opts{Namespace: "autospecs", Subsystem: "sdk", Name: name, Help: help}
	}

	m := &sdkMetrics{
		operations: prometheus.NewCounterVec(prometheus.CounterOpts(
			opts("operations_total", "SDK operations by name and outcome (ok, invalid, error)."),
		), []string{"operation", "outcome"}),
		enrichFailures: prometheus.NewCounter(prometheus.CounterOpts(
			opts("enrichment_failures_total", "Details pages served without instance counts."),
		)),
	}
	h := opts("operation_duration_seconds", "SDK operation latency in seconds.")
	m.duration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: h.Namespace, Subsystem: h.Subsystem, Name: h.Name, Help: h.Help,
		Buckets: searchBuckets,
	}, []string{"operation"})

	if err := registerOrReuse(reg, &m.operations); err != nil {
		return nil, err
	}
	if err := registerOrReuse(reg, &m.duration); err != nil {
		return nil, err
	}
	if err := registerOrReuse(reg, &m.enrichFailures); err != nil {
		return nil, err
	}
	return m, nil
}

// registerOrReuse registers c, or swaps in the collector already registered
// under the same descriptor so several clients can share one registry.
func registerOrReuse[T prometheus.Collector](reg prometheus.Registerer, c *T) error {
	err := reg.Register(*c)
	if err == nil {
		return nil
	}
	var are prometheus.AlreadyRegisteredError
	if !errors.As(err, &are) {
		return fmt.Errorf("autospecs: register metric: %w", err)
	}
	existing, ok := are.ExistingCollector.(T)
	if !ok {
		return fmt.Errorf("autospecs: metric already registered as %T", are.ExistingCollector)
	}
	*c = existing
	return nil
}

// observer records every public SDK call. A nil observer, or one without a
// logger or metrics, skips the missing half.
type observer struct {
	logger  *slog.Logger
	metrics *sdkMetrics
}

func newObserver(logger *slog.Logger, reg prometheus.Registerer) (*observer, error) {
	o := &observer{logger: logger}
	if reg == nil {
		return o, nil
	}
	m, err := newSDKMetrics(reg)
	if err != nil {
		return nil, err
	}
	o.metrics = m
	return o, nil
}

func (o *observer) enrichFailures() prometheus.Counter {
	if o == nil || o.metrics == nil {
		return nil
	}
	return o.metrics.enrichFailures
}

// outcome separates caller mistakes from engine or network failures.
func outcome(err error) string {
	switch {
	case err == nil:
		return outcomeOK
	case errors.Is(err, domain.ErrInvalidInput), errors.Is(err, domain.ErrUnknownFilterField):
		return outcomeInvalid
	default:
		return outcomeError
	}
}

func (o *observer) observe(op string, start time.Time, err error) {
	if o == nil {
		return
	}
	took := time.Since(start)
	res := outcome(err)

	if o.metrics != nil {
		o.metrics.operations.WithLabelValues(op, res).Inc()
		o.metrics.duration.WithLabelValues(op).Observe(took.Seconds())
	}
	if o.logger == nil {
		return
	}

	attrs := []any{slog.String("op", op), slog.Duration("took", took)}
	switch res {
	case outcomeOK:
		o.logger.Debug("autospecs call", attrs...)
	case outcomeInvalid:
		o.logger.Info("autospecs call rejected", append(attrs, slog.Any("error", err))...)
	default:
		o.logger.Warn("autospecs call failed", append(attrs, slog.Any("error", err))...)
	}
}
