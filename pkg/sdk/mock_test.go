package autospecs

import (
	"context"

	"github.com/kailas-cloud/autospecs/internal/domain/search/option"
	"github.com/kailas-cloud/autospecs/internal/domain/search/request"
	"github.com/kailas-cloud/autospecs/internal/domain/search/result"
	healthuc "github.com/kailas-cloud/autospecs/internal/usecase/health"
)

// --- vehicleUseCase mock ---

type mockVehicleUC struct {
	detailsFn      func(ctx context.Context, req request.Details) (result.Envelope, error)
	combinationsFn func(ctx context.Context, req request.Combinations) (result.Combinations, error)
}

func (m *mockVehicleUC) Details(ctx context.Context, req request.Details) (result.Envelope, error) {
	return m.detailsFn(ctx, req)
}

func (m *mockVehicleUC) Combinations(ctx context.Context, req request.Combinations) (result.Combinations, error) {
	return m.combinationsFn(ctx, req)
}

// --- optionUseCase mock ---

type mockOptionUC struct {
	lookupFn func(ctx context.Context, field option.Field, search string, limit int) (option.Result, error)
}

func (m *mockOptionUC) Lookup(ctx context.Context, field option.Field, search string, limit int) (option.Result, error) {
	return m.lookupFn(ctx, field, search, limit)
}

// --- healthUseCase mock ---

type mockHealthUC struct {
	report healthuc.Report
}

func (m *mockHealthUC) Check(_ context.Context) healthuc.Report {
	return m.report
}

// --- pinger mock ---

type mockPinger struct {
	err error
}

func (m *mockPinger) Ping(_ context.Context) error {
	return m.err
}

func testClient(
	vehicleSvc vehicleUseCase,
	optionSvc optionUseCase,
	healthSvc healthUseCase,
) *Client {
	return &Client{
		engine:     &mockPinger{},
		vehicleSvc: vehicleSvc,
		optionSvc:  optionSvc,
		healthSvc:  healthSvc,
	}
}
