package autospecs

import (
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Option configures the Client.
type Option interface {
	apply(*clientConfig)
}

// optionFunc adapts a function to the Option interface.
type optionFunc func(*clientConfig)

func (f optionFunc) apply(c *clientConfig) { f(c) }

type clientConfig struct {
	addrs    []string
	username string
	password string

	primaryIndex   string
	secondaryIndex string
	joinField      string

	requestTimeout   time.Duration
	maxRetries       int
	readinessTimeout time.Duration

	logger     *slog.Logger
	metricsReg prometheus.Registerer
}

// WithEngine sets the search engine node addresses.
func WithEngine(addrs ...string) Option {
	return optionFunc(func(c *clientConfig) {
		c.addrs = append([]string(nil), addrs...)
	})
}

// WithBasicAuth sets the engine credentials.
func WithBasicAuth(username, password string) Option {
	return optionFunc(func(c *clientConfig) {
		c.username = username
		c.password = password
	})
}

// WithIndices sets the vehicle index and the per-instance index used for
// instance counts. Defaults: autos-unified and autos-vins.
func WithIndices(primary, secondary string) Option {
	return optionFunc(func(c *clientConfig) {
		c.primaryIndex = primary
		c.secondaryIndex = secondary
	})
}

// WithJoinField sets the field of the instance index holding the vehicle id.
// Default: vehicle_id.
func WithJoinField(field string) Option {
	return optionFunc(func(c *clientConfig) {
		c.joinField = field
	})
}

// WithRequestTimeout bounds every engine call. Default: 10s.
func WithRequestTimeout(d time.Duration) Option {
	return optionFunc(func(c *clientConfig) {
		c.requestTimeout = d
	})
}

// WithMaxRetries enables retries on 502/503/504 engine responses.
func WithMaxRetries(n int) Option {
	return optionFunc(func(c *clientConfig) {
		c.maxRetries = n
	})
}

// WithReadinessTimeout sets how long New waits for the engine. Default: 10s.
func WithReadinessTimeout(d time.Duration) Option {
	return optionFunc(func(c *clientConfig) {
		c.readinessTimeout = d
	})
}

// WithLogger enables structured logging for SDK operations.
// Pass nil to disable (default). Uses standard library slog.
func WithLogger(l *slog.Logger) Option {
	return optionFunc(func(c *clientConfig) {
		c.logger = l
	})
}

// WithPrometheus registers SDK metrics (operation counts and durations and
// instance count enrichment failures) on the given registerer.
// Pass nil to disable (default).
func WithPrometheus(reg prometheus.Registerer) Option {
	return optionFunc(func(c *clientConfig) {
		c.metricsReg = reg
	})
}
