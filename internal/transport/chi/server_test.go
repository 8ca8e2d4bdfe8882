package chi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/kailas-cloud/autospecs/internal/domain"
	"github.com/kailas-cloud/autospecs/internal/domain/search/option"
	"github.com/kailas-cloud/autospecs/internal/domain/search/request"
	"github.com/kailas-cloud/autospecs/internal/domain/search/result"
	healthuc "github.com/kailas-cloud/autospecs/internal/usecase/health"
)

// --- Mocks ---

type mockVehicles struct {
	detailsFn      func(ctx context.Context, req request.Details) (result.Envelope, error)
	combinationsFn func(ctx context.Context, req request.Combinations) (result.Combinations, error)
}

func (m *mockVehicles) Details(ctx context.Context, req request.Details) (result.Envelope, error) {
	return m.detailsFn(ctx, req)
}

func (m *mockVehicles) Combinations(ctx context.Context, req request.Combinations) (result.Combinations, error) {
	return m.combinationsFn(ctx, req)
}

type mockOptions struct {
	lookupFn func(ctx context.Context, field option.Field, search string, limit int) (option.Result, error)
}

func (m *mockOptions) Lookup(ctx context.Context, field option.Field, search string, limit int) (option.Result, error) {
	return m.lookupFn(ctx, field, search, limit)
}

type mockHealth struct {
	report healthuc.Report
}

func (m *mockHealth) Check(context.Context) healthuc.Report { return m.report }

func unexpectedDetails(t *testing.T) func(context.Context, request.Details) (result.Envelope, error) {
	return func(context.Context, request.Details) (result.Envelope, error) {
		t.Error("details must not be called")
		return result.Envelope{}, nil
	}
}

func newTestRouter(v *mockVehicles, o *mockOptions, h *mockHealth) http.Handler {
	if v == nil {
		v = &mockVehicles{}
	}
	if o == nil {
		o = &mockOptions{}
	}
	if h == nil {
		h = &mockHealth{}
	}
	s := NewServer(v, o, h, Info{Service: "autospecs", Index: "autos-unified"}, zap.NewNop())
	r := chi.NewRouter()
	s.Register(r)
	return r
}

func do(t *testing.T, h http.Handler, target string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, target, http.NoBody))

	var body map[string]any
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode %s: %v (%s)", target, err, rr.Body.String())
	}
	return rr, body
}

// --- Tests ---

func TestVehicleDetails_ParsesQuery(t *testing.T) {
	var got request.Details
	v := &mockVehicles{detailsFn: func(_ context.Context, req request.Details) (result.Envelope, error) {
		got = req
		return result.Envelope{Total: 1, Page: 2, Size: 5, Results: nil}, nil
	}}
	h := newTestRouter(v, nil, nil)

	rr, body := do(t, h, APIPrefix+"/vehicles/details?models=Ford:F-150,Honda:Civic"+
		"&manufacturer=Ford,Honda&yearMin=2015&bodyClassSearch=sed&h_manufacturer=Ford"+
		"&sortBy=year&sortOrder=desc&page=2&size=5")

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %v", rr.Code, body)
	}
	if len(got.Pairs()) != 2 || got.Pairs()[1].Model != "Civic" {
		t.Errorf("pairs = %+v", got.Pairs())
	}
	f := got.Filter()
	if len(f.Manufacturers) != 2 || *f.YearMin != 2015 || f.BodyClassSearch != "sed" {
		t.Errorf("filter = %+v", f)
	}
	if got.Highlight().Manufacturers[0] != "Ford" {
		t.Errorf("highlight = %+v", got.Highlight())
	}
	if got.SortBy() != "year" || got.SortOrder() != "desc" {
		t.Errorf("sort = %s %s", got.SortBy(), got.SortOrder())
	}
	if got.Page().Page() != 2 || got.Page().Size() != 5 {
		t.Errorf("page = %+v", got.Page())
	}
	if body["total"] != float64(1) {
		t.Errorf("total = %v", body["total"])
	}
}

func TestVehicleDetails_Defaults(t *testing.T) {
	var got request.Details
	v := &mockVehicles{detailsFn: func(_ context.Context, req request.Details) (result.Envelope, error) {
		got = req
		return result.Envelope{}, nil
	}}

	rr, _ := do(t, newTestRouter(v, nil, nil), APIPrefix+"/vehicles/details")
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d", rr.Code)
	}
	if got.Page().Page() != 1 || got.Page().Size() != 20 || got.SortOrder() != "asc" {
		t.Errorf("defaults = page %d size %d order %s", got.Page().Page(), got.Page().Size(), got.SortOrder())
	}
}

func TestVehicleDetails_Validation(t *testing.T) {
	h := newTestRouter(&mockVehicles{detailsFn: unexpectedDetails(t)}, nil, nil)

	tests := []struct {
		name  string
		query string
		want  string
	}{
		{"page zero", "page=0", "page must be >= 1"},
		{"size too large", "size=101", "size must be between 1 and 100"},
		{"non-integer size", "size=ten", "size must be an integer"},
		{"sort order", "sortOrder=up", `sortOrder must be either "asc" or "desc"`},
		{"sort field", "sortBy=color", "sortBy must be one of"},
		{"malformed pair", "models=Ford", "Manufacturer:Model"},
		{"half pair", "models=Ford:", "Manufacturer:Model"},
		{"non-integer year", "yearMin=abc", "not an integer"},
		{"malformed highlight pair", "h_modelCombos=:Civic", "Manufacturer:Model"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr, body := do(t, h, APIPrefix+"/vehicles/details?"+tt.query)
			if rr.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400", rr.Code)
			}
			msg, _ := body["message"].(string)
			if !strings.Contains(msg, tt.want) {
				t.Errorf("message = %q, want it to contain %q", msg, tt.want)
			}
		})
	}
}

func TestVehicleDetails_InstanceCountSortAccepted(t *testing.T) {
	called := false
	v := &mockVehicles{detailsFn: func(context.Context, request.Details) (result.Envelope, error) {
		called = true
		return result.Envelope{}, nil
	}}

	rr, _ := do(t, newTestRouter(v, nil, nil), APIPrefix+"/vehicles/details?sortBy=instance_count")
	if rr.Code != http.StatusOK || !called {
		t.Errorf("status = %d, called = %v", rr.Code, called)
	}
}

func TestVehicleDetails_SearchFailure(t *testing.T) {
	v := &mockVehicles{detailsFn: func(context.Context, request.Details) (result.Envelope, error) {
		return result.Envelope{}, fmt.Errorf("%w: %w", domain.ErrSearchFailed, errors.New("dial tcp: refused"))
	}}

	rr, body := do(t, newTestRouter(v, nil, nil), APIPrefix+"/vehicles/details")
	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d", rr.Code)
	}
	if body["error"] != domain.ErrSearchFailed.Error() || body["service"] != "autospecs" {
		t.Errorf("body = %v", body)
	}
	if strings.Contains(rr.Body.String(), "dial tcp") {
		t.Error("internal error detail leaked to the client")
	}
}

func TestCombinations(t *testing.T) {
	var got request.Combinations
	v := &mockVehicles{combinationsFn: func(_ context.Context, req request.Combinations) (result.Combinations, error) {
		got = req
		return result.Combinations{Total: 1, Page: 1, Size: 50, TotalPages: 1, Data: []result.ManufacturerSummary{
			{Manufacturer: "Ford", Count: 2, Models: []result.ModelCount{{Model: "F-150", Count: 2}}},
		}}, nil
	}}

	rr, body := do(t, newTestRouter(v, nil, nil), APIPrefix+"/manufacturer-model-combinations?search=ford&manufacturer=Ford")
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d", rr.Code)
	}
	if got.Search() != "ford" || got.Manufacturer() != "Ford" || got.Page().Size() != 50 {
		t.Errorf("request = %q %q size %d", got.Search(), got.Manufacturer(), got.Page().Size())
	}
	data := body["data"].([]any)
	if first := data[0].(map[string]any); first["manufacturer"] != "Ford" {
		t.Errorf("data = %v", data)
	}
}

func TestCombinations_Failure(t *testing.T) {
	v := &mockVehicles{combinationsFn: func(context.Context, request.Combinations) (result.Combinations, error) {
		return result.Combinations{}, fmt.Errorf("%w: boom", domain.ErrCombinationsFailed)
	}}

	rr, body := do(t, newTestRouter(v, nil, nil), APIPrefix+"/manufacturer-model-combinations")
	if rr.Code != http.StatusInternalServerError || body["error"] != "failed to fetch vehicle data" {
		t.Errorf("status = %d, body = %v", rr.Code, body)
	}
}

func TestFilterOptions(t *testing.T) {
	var gotField option.Field
	var gotSearch string
	var gotLimit int
	o := &mockOptions{lookupFn: func(_ context.Context, f option.Field, search string, limit int) (option.Result, error) {
		gotField, gotSearch, gotLimit = f, search, limit
		return option.Result{Field: f, Values: []string{"Ford"}}, nil
	}}
	h := newTestRouter(nil, o, nil)

	rr, body := do(t, h, APIPrefix+"/filters/manufacturers?search=fo&limit=10")
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d", rr.Code)
	}
	if gotField != option.Manufacturers || gotSearch != "fo" || gotLimit != 10 {
		t.Errorf("lookup(%s, %q, %d)", gotField, gotSearch, gotLimit)
	}
	if vals := body["manufacturers"].([]any); len(vals) != 1 {
		t.Errorf("body = %v", body)
	}

	do(t, h, APIPrefix+"/filters/body-classes")
	if gotLimit != option.DefaultLimit {
		t.Errorf("default limit = %d", gotLimit)
	}
}

func TestFilterOptions_Validation(t *testing.T) {
	o := &mockOptions{lookupFn: func(context.Context, option.Field, string, int) (option.Result, error) {
		t.Error("lookup must not be called")
		return option.Result{}, nil
	}}
	h := newTestRouter(nil, o, nil)

	rr, body := do(t, h, APIPrefix+"/filters/colors")
	if rr.Code != http.StatusBadRequest || !strings.Contains(body["message"].(string), "Valid fields") {
		t.Errorf("unknown field: status = %d, body = %v", rr.Code, body)
	}
	for _, q := range []string{"limit=0", "limit=5001", "limit=many"} {
		if rr, _ := do(t, h, APIPrefix+"/filters/models?"+q); rr.Code != http.StatusBadRequest {
			t.Errorf("%s: status = %d", q, rr.Code)
		}
	}
}

func TestFilterOptions_YearRange(t *testing.T) {
	lo, hi := 1990, 2024
	o := &mockOptions{lookupFn: func(context.Context, option.Field, string, int) (option.Result, error) {
		return option.Result{Field: option.YearRange, Bounds: option.Bounds{Min: &lo, Max: &hi}}, nil
	}}

	_, body := do(t, newTestRouter(nil, o, nil), APIPrefix+"/filters/year-range")
	if body["min"] != float64(1990) || body["max"] != float64(2024) {
		t.Errorf("body = %v", body)
	}
}

func TestHealth(t *testing.T) {
	rr, body := do(t, newTestRouter(nil, nil, nil), "/health")
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d", rr.Code)
	}
	if body["status"] != "ok" || body["index"] != "autos-unified" || body["timestamp"] == "" {
		t.Errorf("body = %v", body)
	}
}

func TestReady(t *testing.T) {
	h := &mockHealth{report: healthuc.Report{
		Status: healthuc.Ready,
		Checks: map[string]healthuc.CheckResult{healthuc.ComponentEngine: healthuc.Connected},
	}}
	rr, body := do(t, newTestRouter(nil, nil, h), "/ready")
	if rr.Code != http.StatusOK || body["status"] != "ready" || body["elasticsearch"] != "connected" {
		t.Errorf("ready: status = %d, body = %v", rr.Code, body)
	}

	h.report = healthuc.Report{
		Status: healthuc.NotReady,
		Checks: map[string]healthuc.CheckResult{healthuc.ComponentEngine: healthuc.Disconnected},
		Err:    errors.New("connection refused"),
	}
	rr, body = do(t, newTestRouter(nil, nil, h), "/ready")
	if rr.Code != http.StatusServiceUnavailable || body["status"] != "not ready" || body["error"] != "connection refused" {
		t.Errorf("not ready: status = %d, body = %v", rr.Code, body)
	}
}

func TestRoot(t *testing.T) {
	rr, body := do(t, newTestRouter(nil, nil, nil), "/")
	if rr.Code != http.StatusOK || body["message"] != "Auto Discovery Specs API" {
		t.Errorf("status = %d, body = %v", rr.Code, body)
	}
	endpoints := body["endpoints"].(map[string]any)
	if endpoints["details"] != APIPrefix+"/vehicles/details" {
		t.Errorf("endpoints = %v", endpoints)
	}
}
