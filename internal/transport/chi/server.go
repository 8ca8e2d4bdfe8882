package chi

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/oapi-codegen/runtime"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/kailas-cloud/autospecs/internal/domain"
	"github.com/kailas-cloud/autospecs/internal/domain/search/criteria"
	"github.com/kailas-cloud/autospecs/internal/domain/search/option"
	"github.com/kailas-cloud/autospecs/internal/domain/search/page"
	"github.com/kailas-cloud/autospecs/internal/domain/search/request"
	healthuc "github.com/kailas-cloud/autospecs/internal/usecase/health"
	"github.com/kailas-cloud/autospecs/internal/version"
)

// APIPrefix is the mount point of the specs API.
const APIPrefix = "/api/specs/v1"

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error) bool

// Info identifies the running service in health and root responses.
type Info struct {
	Service string
	Index   string
}

// Server serves the specs API over chi.
type Server struct {
	vehicles      vehicleService
	options       optionLookup
	health        healthChecker
	info          Info
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(
	vehicles vehicleService,
	options optionLookup,
	health healthChecker,
	info Info,
	logger *zap.Logger,
) *Server {
	s := &Server{
		vehicles: vehicles,
		options:  options,
		health:   health,
		info:     info,
		logger:   logger,
	}
	s.errorHandlers = []errorHandler{
		invalidInputHandler,
		sentinelHandler(domain.ErrUnknownFilterField, http.StatusBadRequest, "Invalid field"),
	}
	return s
}

// Register mounts every route on r.
func (s *Server) Register(r chi.Router) {
	r.Get("/", s.Root)
	r.Get("/health", s.Health)
	r.Get("/ready", s.Ready)
	r.Get("/metrics", s.Metrics)

	r.Route(APIPrefix, func(r chi.Router) {
		r.Get("/manufacturer-model-combinations", s.Combinations)
		r.Get("/vehicles/details", s.VehicleDetails)
		r.Get("/filters/{fieldName}", s.FilterOptions)
	})
}

// Root handles GET /.
func (s *Server) Root(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"message": "Auto Discovery Specs API",
		"service": s.info.Service,
		"version": version.Version,
		"endpoints": map[string]string{
			"health":       "/health",
			"ready":        "/ready",
			"metrics":      "/metrics",
			"combinations": APIPrefix + "/manufacturer-model-combinations",
			"details":      APIPrefix + "/vehicles/details",
			"filters":      APIPrefix + "/filters/{fieldName}",
		},
	})
}

// Health handles GET /health. It only reports that the process is alive.
func (s *Server) Health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":    "ok",
		"service":   s.info.Service,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"index":     s.info.Index,
	})
}

// Ready handles GET /ready.
func (s *Server) Ready(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	resp := map[string]any{
		"status":  report.Status,
		"service": s.info.Service,
	}
	for k, v := range report.Checks {
		resp[k] = v
	}

	status := http.StatusOK
	if report.Status != healthuc.Ready {
		status = http.StatusServiceUnavailable
		if report.Err != nil {
			resp["error"] = report.Err.Error()
		}
		s.logger.Warn("readiness check failed", zap.Error(report.Err))
	}
	writeJSON(w, status, resp)
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

// Combinations handles GET /manufacturer-model-combinations.
func (s *Server) Combinations(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	pg, size := 1, request.DefaultCombinationsSize
	if err := bindInts(q, intParam{"page", &pg}, intParam{"size", &size}); err != nil {
		s.handleDomainError(w, err)
		return
	}

	req, err := request.NewCombinations(q.Get("search"), q.Get("manufacturer"), pg, size)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	res, err := s.vehicles.Combinations(r.Context(), req)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// VehicleDetails handles GET /vehicles/details.
func (s *Server) VehicleDetails(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	pg, size := 1, page.DefaultSize
	if err := bindInts(q, intParam{"page", &pg}, intParam{"size", &size}); err != nil {
		s.handleDomainError(w, err)
		return
	}

	req, err := request.NewDetails(detailsParams(q, pg, size))
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	env, err := s.vehicles.Details(r.Context(), req)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, env)
}

// FilterOptions handles GET /filters/{fieldName}.
func (s *Server) FilterOptions(w http.ResponseWriter, r *http.Request) {
	field, err := option.ParseField(chi.URLParam(r, "fieldName"))
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	q := r.URL.Query()
	limit := option.DefaultLimit
	if err := bindInts(q, intParam{"limit", &limit}); err != nil {
		s.handleDomainError(w, err)
		return
	}
	if err := option.ValidateLimit(limit); err != nil {
		s.handleDomainError(w, err)
		return
	}

	res, err := s.options.Lookup(r.Context(), field, q.Get("search"), limit)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func detailsParams(q url.Values, pg, size int) request.DetailsParams {
	return request.DetailsParams{
		ModelCombos: q.Get("models"),
		Filter: criteria.RawFilter{
			Manufacturer:       q.Get("manufacturer"),
			Model:              q.Get("model"),
			BodyClass:          q.Get("bodyClass"),
			DataSource:         q.Get("dataSource"),
			YearMin:            q.Get("yearMin"),
			YearMax:            q.Get("yearMax"),
			ManufacturerSearch: q.Get("manufacturerSearch"),
			ModelSearch:        q.Get("modelSearch"),
			BodyClassSearch:    q.Get("bodyClassSearch"),
			DataSourceSearch:   q.Get("dataSourceSearch"),
		},
		Highlight: criteria.RawHighlight{
			YearMin:      q.Get("h_yearMin"),
			YearMax:      q.Get("h_yearMax"),
			Manufacturer: q.Get("h_manufacturer"),
			ModelCombos:  q.Get("h_modelCombos"),
			BodyClass:    q.Get("h_bodyClass"),
		},
		SortBy:    q.Get("sortBy"),
		SortOrder: q.Get("sortOrder"),
		Page:      pg,
		Size:      size,
	}
}

type intParam struct {
	name string
	dest *int
}

// bindInts binds optional integer query parameters; absent ones keep their defaults.
func bindInts(q url.Values, params ...intParam) error {
	for _, p := range params {
		if err := runtime.BindQueryParameter("form", true, false, p.name, q, p.dest); err != nil {
			return domain.NewInvalidInput(p.name, p.name+" must be an integer")
		}
	}
	return nil
}

// errorResponse is the body of every non-2xx response.
type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
	Service string `json:"service,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, title, message string) {
	writeJSON(w, status, errorResponse{Error: title, Message: message})
}

// safeDomainMessage returns a sentinel error message for the client without exposing internals.
func safeDomainMessage(err error) string {
	sentinels := []error{
		domain.ErrSearchFailed,
		domain.ErrCombinationsFailed,
		domain.ErrFilterOptionsFailed,
	}
	for _, s := range sentinels {
		if errors.Is(err, s) {
			return s.Error()
		}
	}
	return "internal error"
}

// invalidInputHandler reports the rejected parameter and the reason.
func invalidInputHandler(w http.ResponseWriter, err error) bool {
	var iie *domain.InvalidInputError
	if !errors.As(err, &iie) {
		return false
	}
	writeError(w, http.StatusBadRequest, "Bad Request", iie.Reason)
	return true
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int, title string) errorHandler {
	return func(w http.ResponseWriter, err error) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, title, err.Error())
		return true
	}
}

func (s *Server) handleDomainError(w http.ResponseWriter, err error) {
	for _, h := range s.errorHandlers {
		if h(w, err) {
			s.logger.Debug("request rejected", zap.Error(err))
			return
		}
	}
	s.logger.Error("internal error", zap.Error(err))
	writeJSON(w, http.StatusInternalServerError, errorResponse{
		Error:   safeDomainMessage(err),
		Service: s.info.Service,
	})
}
