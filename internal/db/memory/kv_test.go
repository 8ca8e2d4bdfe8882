package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/kailas-cloud/autospecs/internal/db"
)

func TestStore_GetSet(t *testing.T) {
	s := NewStore(10, time.Minute)
	ctx := context.Background()

	if _, err := s.Get(ctx, "k"); !errors.Is(err, db.ErrKeyNotFound) {
		t.Fatalf("expected ErrKeyNotFound, got %v", err)
	}

	val := []byte("v1")
	if err := s.SetWithTTL(ctx, "k", val, time.Minute); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	val[0] = 'x'

	got, err := s.Get(ctx, "k")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(got) != "v1" {
		t.Errorf("Get = %q, want stored copy %q", got, "v1")
	}
}

func TestStore_EvictsOldest(t *testing.T) {
	s := NewStore(2, time.Minute)
	ctx := context.Background()

	for _, k := range []string{"a", "b", "c"} {
		_ = s.SetWithTTL(ctx, k, []byte(k), time.Minute)
	}
	if s.Len() != 2 {
		t.Errorf("Len = %d, want 2", s.Len())
	}
	if _, err := s.Get(ctx, "a"); !errors.Is(err, db.ErrKeyNotFound) {
		t.Errorf("oldest entry should be evicted, got %v", err)
	}
}

func TestStore_Expires(t *testing.T) {
	s := NewStore(10, 20*time.Millisecond)
	ctx := context.Background()

	_ = s.SetWithTTL(ctx, "k", []byte("v"), time.Minute)
	time.Sleep(60 * time.Millisecond)

	if _, err := s.Get(ctx, "k"); !errors.Is(err, db.ErrKeyNotFound) {
		t.Errorf("expected expired entry, got %v", err)
	}
}
