package health

import (
	"context"
	"errors"
	"testing"
	"time"
)

// --- Mocks ---

type mockPinger struct {
	err      error
	deadline bool
}

func (m *mockPinger) Ping(ctx context.Context) error {
	_, m.deadline = ctx.Deadline()
	return m.err
}

// --- Tests ---

func TestCheck_AllConnected(t *testing.T) {
	svc := New(&mockPinger{}, &mockPinger{}, 0)
	r := svc.Check(context.Background())

	if r.Status != Ready {
		t.Errorf("expected %q, got %q", Ready, r.Status)
	}
	if r.Checks[ComponentEngine] != Connected {
		t.Errorf("expected engine %q, got %q", Connected, r.Checks[ComponentEngine])
	}
	if r.Checks[ComponentCache] != Connected {
		t.Errorf("expected cache %q, got %q", Connected, r.Checks[ComponentCache])
	}
	if r.Err != nil {
		t.Errorf("unexpected error: %v", r.Err)
	}
}

func TestCheck_EngineDown(t *testing.T) {
	pingErr := errors.New("conn refused")
	svc := New(&mockPinger{err: pingErr}, nil, 0)
	r := svc.Check(context.Background())

	if r.Status != NotReady {
		t.Errorf("expected %q, got %q", NotReady, r.Status)
	}
	if r.Checks[ComponentEngine] != Disconnected {
		t.Errorf("expected engine %q, got %q", Disconnected, r.Checks[ComponentEngine])
	}
	if !errors.Is(r.Err, pingErr) {
		t.Errorf("expected ping error, got %v", r.Err)
	}
	if _, ok := r.Checks[ComponentCache]; ok {
		t.Error("cache should not be checked when not configured")
	}
}

func TestCheck_CacheDownStaysReady(t *testing.T) {
	svc := New(&mockPinger{}, &mockPinger{err: errors.New("timeout")}, 0)
	r := svc.Check(context.Background())

	if r.Status != Ready {
		t.Errorf("expected %q, got %q", Ready, r.Status)
	}
	if r.Checks[ComponentCache] != Disconnected {
		t.Errorf("expected cache %q, got %q", Disconnected, r.Checks[ComponentCache])
	}
}

func TestCheck_Timeout(t *testing.T) {
	engine := &mockPinger{}
	New(engine, nil, time.Second).Check(context.Background())
	if !engine.deadline {
		t.Error("expected ping to run with a deadline")
	}

	engine = &mockPinger{}
	New(engine, nil, 0).Check(context.Background())
	if engine.deadline {
		t.Error("zero timeout should not set a deadline")
	}
}
