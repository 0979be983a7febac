package env

import (
	"os"
	"testing"

	"go.uber.org/zap"
)

func TestLoadFallsBackToDefaultsWhenUnset(t *testing.T) {
	for _, k := range []string{"RTCTRL_LOG_LEVEL", "RTCTRL_OUTPUT_DIR", "RTCTRL_REGION_BOUND", "RTCTRL_WORKERS", "RTCTRL_INCREMENTAL_LABEL"} {
		_ = os.Unsetenv(k)
	}
	logger := zap.NewNop()

	e := Load(logger)
	if e.LogLevel != "info" {
		t.Fatalf("expected info, got %s", e.LogLevel)
	}
	if e.RegionBound != 4 {
		t.Fatalf("expected 4, got %d", e.RegionBound)
	}
	if e.Workers != 0 {
		t.Fatalf("expected 0, got %d", e.Workers)
	}
	if !e.IncrementalLog {
		t.Fatal("expected incremental labelling to default true")
	}
}

func TestLoadReadsOverriddenValues(t *testing.T) {
	t.Setenv("RTCTRL_LOG_LEVEL", "debug")
	t.Setenv("RTCTRL_REGION_BOUND", "8")
	t.Setenv("RTCTRL_WORKERS", "4")
	t.Setenv("RTCTRL_INCREMENTAL_LABEL", "false")

	e := Load(zap.NewNop())
	if e.LogLevel != "debug" {
		t.Fatalf("expected debug, got %s", e.LogLevel)
	}
	if e.RegionBound != 8 {
		t.Fatalf("expected 8, got %d", e.RegionBound)
	}
	if e.Workers != 4 {
		t.Fatalf("expected 4, got %d", e.Workers)
	}
	if e.IncrementalLog {
		t.Fatal("expected incremental labelling false")
	}
}
