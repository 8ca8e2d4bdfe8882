package logger

import (
	"context"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestNew(t *testing.T) {
	for _, env := range []string{"prod", "local", "dev", "docker"} {
		l, err := New(Options{Env: env, Service: "autospecs", Version: "dev"})
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", env, err)
		}
		if l == nil {
			t.Fatalf("%s: nil logger", env)
		}
	}
}

func TestNew_UnknownEnv(t *testing.T) {
	if _, err := New(Options{Env: "staging"}); err == nil {
		t.Fatal("expected error for unknown env")
	}
}

func TestNew_Level(t *testing.T) {
	l, err := New(Options{Env: "prod", Level: "warn"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if l.Core().Enabled(zapcore.InfoLevel) {
		t.Error("info must be disabled at warn level")
	}
	if !l.Core().Enabled(zapcore.WarnLevel) {
		t.Error("warn must be enabled at warn level")
	}

	if _, err := New(Options{Env: "prod", Level: "loud"}); err == nil {
		t.Fatal("expected error for invalid level")
	}
}

func TestFromContext_Default(t *testing.T) {
	if FromContext(context.Background()) == nil {
		t.Fatal("FromContext must never return nil")
	}
}

func TestWithFields(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	ctx := ContextWithLogger(context.Background(), zap.New(core))

	ctx = WithFields(ctx, zap.String("index", "autos-vins"))
	FromContext(ctx).Info("lookup")

	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("entries = %d, want 1", len(entries))
	}
	if got := entries[0].ContextMap()["index"]; got != "autos-vins" {
		t.Errorf("index = %v, want autos-vins", got)
	}
}

func TestWithFields_NoLogger(t *testing.T) {
	ctx := context.Background()
	if WithFields(ctx, zap.String("k", "v")) != ctx {
		t.Error("context without a logger must be returned unchanged")
	}
}
