package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/kailas-cloud/autospecs/internal/config"
	dbMemory "github.com/kailas-cloud/autospecs/internal/db/memory"
	dbOpensearch "github.com/kailas-cloud/autospecs/internal/db/opensearch"
	dbRedis "github.com/kailas-cloud/autospecs/internal/db/redis"
	"github.com/kailas-cloud/autospecs/internal/domain/search/option"
	logpkg "github.com/kailas-cloud/autospecs/internal/logger"
	"github.com/kailas-cloud/autospecs/internal/metrics"
	"github.com/kailas-cloud/autospecs/internal/repository/optcache"
	searchrepo "github.com/kailas-cloud/autospecs/internal/repository/search"
	chiTransport "github.com/kailas-cloud/autospecs/internal/transport/chi"
	filteroptionuc "github.com/kailas-cloud/autospecs/internal/usecase/filteroption"
	healthuc "github.com/kailas-cloud/autospecs/internal/usecase/health"
	vehicleuc "github.com/kailas-cloud/autospecs/internal/usecase/vehicle"
	"github.com/kailas-cloud/autospecs/internal/version"
)

func main() {
	// Load configuration based on ENV
	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.New(logpkg.Options{
		Env:     env,
		Level:   cfg.Logging.Level,
		Service: cfg.Service,
		Version: version.Version,
	})
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting autospecs API server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.Strings("engine_addresses", cfg.Engine.Addresses),
		zap.String("primary_index", cfg.Search.PrimaryIndex),
		zap.String("secondary_index", cfg.Search.SecondaryIndex),
		zap.String("cache_driver", cfg.Cache.Driver),
	)

	engine, err := dbOpensearch.NewStore(dbOpensearch.Config{
		Addresses:      cfg.Engine.Addresses,
		Username:       cfg.Engine.Username,
		Password:       cfg.Engine.Password,
		RequestTimeout: time.Duration(cfg.Engine.RequestTimeoutSec) * time.Second,
		MaxRetries:     cfg.Engine.MaxRetries,
	})
	if err != nil {
		logger.Fatal("Failed to create search engine store", zap.Error(err))
	}

	// Wait for the engine to be ready
	ctx := context.Background()
	if err := engine.WaitForReady(ctx, time.Duration(cfg.Engine.ReadinessTimeout)*time.Second); err != nil {
		logger.Fatal("Search engine not ready", zap.Error(err))
	}
	logger.Info("Connected to search engine")

	// Register metrics explicitly (no init())
	metrics.RegisterEngineMetrics()

	catalog := searchrepo.New(engine, cfg.Search.PrimaryIndex)
	registry := searchrepo.New(engine, cfg.Search.SecondaryIndex)

	vehicleSvc := vehicleuc.New(catalog, registry, cfg.Search.JoinField, metrics.EnrichmentFailuresTotal)
	optionSvc := filteroptionuc.New(catalog)

	options, cachePinger, closeCache := buildOptionLookup(cfg.Cache, optionSvc, logger)
	defer closeCache()

	healthSvc := healthuc.New(engine, cachePinger, time.Duration(cfg.Engine.RequestTimeoutSec)*time.Second)

	server := chiTransport.NewServer(vehicleSvc, options, healthSvc, chiTransport.Info{
		Service: cfg.Service,
		Index:   cfg.Search.PrimaryIndex,
	}, logger)

	r := chi.NewRouter()
	r.Use(jsonRecoverer(logger, cfg.Service))
	r.Use(chiMiddleware.RequestID)
	r.Use(cors.Handler(corsOptions(cfg.HTTP.CORSOrigins)))
	r.Use(wideEventMiddleware(logger))
	r.Use(chiTransport.APIKeyMiddleware(cfg.Auth.APIKeys))
	r.Use(metrics.Middleware("/metrics"))
	server.Register(r)

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	<-quit
	logger.Info("Received shutdown signal")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
	}

	logger.Info("Server stopped gracefully")
}

const cacheReadinessTimeout = 5 * time.Second

type optionLookup interface {
	Lookup(ctx context.Context, field option.Field, search string, limit int) (option.Result, error)
}

// buildOptionLookup wraps the filter option service in the configured cache.
// The returned pinger is a nil interface (not a typed nil pointer) unless the
// cache lives in an external store.
func buildOptionLookup(
	cfg config.CacheConfig,
	inner *filteroptionuc.Service,
	logger *zap.Logger,
) (optionLookup, healthuc.Pinger, func()) {
	ttl := time.Duration(cfg.TTLSec) * time.Second

	switch cfg.Driver {
	case config.CacheMemory:
		store := dbMemory.NewStore(cfg.Size, ttl)
		return optcache.New(inner, store, ttl, metrics.OptionCacheTotal, logger), nil, func() {}
	case config.CacheRedis:
		store, err := dbRedis.NewStore(dbRedis.Config{
			Addrs:          cfg.Addrs,
			Password:       cfg.Password,
			ClientCacheTTL: time.Duration(cfg.ClientCacheSec) * time.Second,
		})
		if err != nil {
			logger.Fatal("Failed to create cache store", zap.Error(err))
		}
		if err := store.WaitForReady(context.Background(), cacheReadinessTimeout); err != nil {
			logger.Warn("Cache not ready, lookups fall through to the engine", zap.Error(err))
		}
		return optcache.New(inner, store, ttl, metrics.OptionCacheTotal, logger), store, store.Close
	default:
		return inner, nil, func() {}
	}
}

func corsOptions(origins []string) cors.Options {
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	return cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Authorization", chiTransport.APIKeyHeader, "Content-Type", "X-Request-ID"},
		ExposedHeaders: []string{"X-Request-ID"},
		MaxAge:         300,
	}
}

// jsonRecoverer is a recovery middleware that returns JSON instead of a plain text stacktrace.
func jsonRecoverer(logger *zap.Logger, service string) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rvr := recover(); rvr != nil {
					logger.Error("panic recovered",
						zap.Any("panic", rvr),
						zap.String("path", r.URL.Path),
						zap.Stack("stacktrace"),
					)
					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusInternalServerError)
					_ = json.NewEncoder(w).Encode(map[string]string{
						"error":   "internal error",
						"service": service,
					})
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// wideEventMiddleware emits a canonical log line per request and propagates X-Request-ID.
func wideEventMiddleware(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			// chi.middleware.RequestID already placed request_id in context
			requestID := chiMiddleware.GetReqID(r.Context())
			if requestID != "" {
				w.Header().Set("X-Request-ID", requestID)
			}

			reqLogger := logger.With(zap.String("request_id", requestID))
			ctx := logpkg.ContextWithLogger(r.Context(), reqLogger)

			ww := chiMiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r.WithContext(ctx))

			// Canonical log line, one per request
			reqLogger.Info("http_request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.String("query", r.URL.RawQuery),
				zap.Int("status", ww.Status()),
				zap.Duration("latency", time.Since(start)),
				zap.String("ip", r.RemoteAddr),
				zap.String("user_agent", r.UserAgent()),
				zap.Int("response_bytes", ww.BytesWritten()),
			)
		})
	}
}
