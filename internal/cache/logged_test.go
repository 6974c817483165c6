package cache

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type brokenCatalog struct{}

var errDown = errors.New("redis down")

func (brokenCatalog) Get(context.Context, string, any) (bool, error) { return false, errDown }
func (brokenCatalog) Set(context.Context, string, any) error { return errDown }
func (brokenCatalog) Invalidate(context.Context) error { return errDown }

func TestLoggedRecordsInvalidationFailure(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	c := NewLogged(brokenCatalog{}, zap.New(core))

	if err := c.Invalidate(context.Background()); !errors.Is(err, errDown) {
		t.Fatalf("expected error to pass through, got %v", err)
	}

	entries := logs.FilterMessage("catalog cache invalidation failed").All()
	if len(entries) != 1 {
		t.Fatalf("expected 1 log entry, got %d", len(entries))
	}
	if entries[0].Level != zapcore.ErrorLevel {
		t.Errorf("expected error level, got %s", entries[0].Level)
	}
}

func TestLoggedRecordsReadAndWriteFailures(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	c := NewLogged(brokenCatalog{}, zap.New(core))
	ctx := context.Background()

	var v int
	if ok, err := c.Get(ctx, "list:all", &v); ok || err == nil {
		t.Errorf("expected failed read, got %v %v", ok, err)
	}
	if err := c.Set(ctx, "list:all", 1); err == nil {
		t.Error("expected failed write")
	}

	if n := logs.FilterField(zap.String("key", "list:all")).Len(); n != 2 {
		t.Errorf("expected 2 keyed entries, got %d", n)
	}
}

func TestLoggedIsSilentOnSuccess(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	c := NewLogged(Nop{}, zap.New(core))

	_ = c.Invalidate(context.Background())
	if logs.Len() != 0 {
		t.Errorf("expected no logs, got %d", logs.Len())
	}
}
