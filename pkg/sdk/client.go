package autospecs

import (
	"context"
	"errors"
	"fmt"
	"time"

	dbOpensearch "github.com/kailas-cloud/autospecs/internal/db/opensearch"
	"github.com/kailas-cloud/autospecs/internal/domain/search/option"
	"github.com/kailas-cloud/autospecs/internal/domain/search/request"
	"github.com/kailas-cloud/autospecs/internal/domain/search/result"
	searchrepo "github.com/kailas-cloud/autospecs/internal/repository/search"
	filteroptionuc "github.com/kailas-cloud/autospecs/internal/usecase/filteroption"
	healthuc "github.com/kailas-cloud/autospecs/internal/usecase/health"
	vehicleuc "github.com/kailas-cloud/autospecs/internal/usecase/vehicle"
)

const (
	defaultPrimaryIndex     = "autos-unified"
	defaultSecondaryIndex   = "autos-vins"
	defaultRequestTimeout   = 10 * time.Second
	defaultReadinessTimeout = 10 * time.Second
)

// Internal interfaces for substitution in tests.
type vehicleUseCase interface {
	Details(ctx context.Context, req request.Details) (result.Envelope, error)
	Combinations(ctx context.Context, req request.Combinations) (result.Combinations, error)
}

type optionUseCase interface {
	Lookup(ctx context.Context, field option.Field, search string, limit int) (option.Result, error)
}

type pinger interface {
	Ping(ctx context.Context) error
}

// Client is the autospecs SDK entry point.
type Client struct {
	engine     pinger
	vehicleSvc vehicleUseCase
	optionSvc  optionUseCase
	healthSvc  healthUseCase
	obs        *observer
}

// New creates a Client and waits for the search engine to answer.
// The provided context is used for the initial readiness check.
func New(ctx context.Context, opts ...Option) (*Client, error) {
	cfg := &clientConfig{
		primaryIndex:     defaultPrimaryIndex,
		secondaryIndex:   defaultSecondaryIndex,
		requestTimeout:   defaultRequestTimeout,
		readinessTimeout: defaultReadinessTimeout,
	}
	for _, o := range opts {
		o.apply(cfg)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	engine, err := dbOpensearch.NewStore(dbOpensearch.Config{
		Addresses:      cfg.addrs,
		Username:       cfg.username,
		Password:       cfg.password,
		RequestTimeout: cfg.requestTimeout,
		MaxRetries:     cfg.maxRetries,
	})
	if err != nil {
		return nil, fmt.Errorf("autospecs: create engine store: %w", err)
	}

	if err := engine.WaitForReady(ctx, cfg.readinessTimeout); err != nil {
		return nil, fmt.Errorf("autospecs: engine not ready: %w", err)
	}

	obs, err := newObserver(cfg.logger, cfg.metricsReg)
	if err != nil {
		return nil, err
	}

	catalog := searchrepo.New(engine, cfg.primaryIndex)
	registry := searchrepo.New(engine, cfg.secondaryIndex)

	return &Client{
		engine:     engine,
		vehicleSvc: vehicleuc.New(catalog, registry, cfg.joinField, obs.enrichFailures()),
		optionSvc:  filteroptionuc.New(catalog),
		healthSvc:  healthuc.New(engine, nil, cfg.requestTimeout),
		obs:        obs,
	}, nil
}

func (c *clientConfig) validate() error {
	if len(c.addrs) == 0 {
		return errors.New("autospecs: engine address required (use WithEngine)")
	}
	if c.primaryIndex == "" || c.secondaryIndex == "" {
		return errors.New("autospecs: both indices are required")
	}
	if c.primaryIndex == c.secondaryIndex {
		return errors.New("autospecs: primary and secondary indices must differ")
	}
	return nil
}

// Ping checks search engine connectivity.
func (c *Client) Ping(ctx context.Context) (err error) {
	start := time.Now()
	defer func() { c.obs.observe("ping", start, err) }()

	if err = c.engine.Ping(ctx); err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	return nil
}

// Vehicles returns the vehicle search service.
func (c *Client) Vehicles() *VehicleService {
	return &VehicleService{svc: c.vehicleSvc, obs: c.obs}
}

// Filters returns the filter option service.
func (c *Client) Filters() *FilterService {
	return &FilterService{svc: c.optionSvc, obs: c.obs}
}
