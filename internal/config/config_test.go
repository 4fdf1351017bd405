package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeGalaxy(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "galaxy.json")
	if err := os.WriteFile(path, []byte(`{"planets":[]}`), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("INPUT_FILE", writeGalaxy(t))
	for _, k := range []string{"ASSET_DIR", "GAME_TICK_MS", "TICK_BUDGET_MS", "ORCHESTRATOR_ASYNC", "LOG_LEVEL", "SIM_STEP_MS", "SIM_SEED"} {
		t.Setenv(k, "")
	}

	c, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if c.Galaxy.AssetDir != "assets" {
		t.Errorf("asset dir = %q", c.Galaxy.AssetDir)
	}
	if c.Game.TickPeriod != 600*time.Millisecond || c.Orchestrator.Budget != 100*time.Millisecond {
		t.Errorf("tick=%v budget=%v", c.Game.TickPeriod, c.Orchestrator.Budget)
	}
	if c.Orchestrator.Async || c.Logging.Level != "info" || c.Sim.Seed != 0 {
		t.Errorf("unexpected defaults: %+v", c)
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("INPUT_FILE", writeGalaxy(t))
	t.Setenv("GAME_TICK_MS", "250")
	t.Setenv("ORCHESTRATOR_ASYNC", "true")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("SIM_SEED", "42")
	t.Setenv("TICK_BUDGET_MS", "nonsense")

	c, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if c.Game.TickPeriod != 250*time.Millisecond || !c.Orchestrator.Async || c.Sim.Seed != 42 {
		t.Errorf("overrides not applied: %+v", c)
	}
	if c.Orchestrator.Budget != 100*time.Millisecond {
		t.Errorf("bad number should fall back, got %v", c.Orchestrator.Budget)
	}
}

func TestLoad_InputFileRequired(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("INPUT_FILE", "")
	if _, err := Load(); !errors.Is(err, ErrInputFile) {
		t.Errorf("err = %v", err)
	}

	t.Setenv("INPUT_FILE", filepath.Join(t.TempDir(), "missing.json"))
	_, err := Load()
	if !errors.Is(err, ErrInputFile) || !errors.Is(err, os.ErrNotExist) {
		t.Errorf("err = %v", err)
	}
}

func TestLoad_RejectsUnknownLevel(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("INPUT_FILE", writeGalaxy(t))
	t.Setenv("LOG_LEVEL", "loud")
	if _, err := Load(); err == nil {
		t.Error("expected an error for LOG_LEVEL=loud")
	}
}

func TestLoad_ReadsDotEnv(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	galaxy := writeGalaxy(t)
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte("ASSET_DIR=art\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("INPUT_FILE", galaxy)
	t.Setenv("ASSET_DIR", "")
	os.Unsetenv("ASSET_DIR")

	c, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if c.Galaxy.AssetDir != "art" {
		t.Errorf("asset dir = %q, want value from .env", c.Galaxy.AssetDir)
	}
}
