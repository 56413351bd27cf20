package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_Defaults(t *testing.T) {
	os.Clearenv()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Port != "8087" {
		t.Errorf("Port = %s, want 8087", cfg.Port)
	}
	if cfg.Env != "development" {
		t.Errorf("Env = %s, want development", cfg.Env)
	}
	if cfg.Analysis.InsiderSellThreshold != 10_000_000 {
		t.Errorf("InsiderSellThreshold = %v, want 10000000", cfg.Analysis.InsiderSellThreshold)
	}
	if cfg.Analysis.TrimTriggerGainPct != 200 {
		t.Errorf("TrimTriggerGainPct = %v, want 200", cfg.Analysis.TrimTriggerGainPct)
	}
	if cfg.Analysis.SortBy != "weight" {
		t.Errorf("SortBy = %s, want weight", cfg.Analysis.SortBy)
	}
	if !cfg.Analysis.ShowSmallPositions {
		t.Error("ShowSmallPositions should default to true")
	}
}

func TestLoad_Overrides(t *testing.T) {
	os.Clearenv()
	os.Setenv("SORT_BY", "alerts")
	os.Setenv("INSIDER_SELL_THRESHOLD", "5000000")
	os.Setenv("SHOW_SMALL_POSITIONS", "false")
	defer os.Clearenv()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Analysis.SortBy != "alerts" {
		t.Errorf("SortBy = %s, want alerts", cfg.Analysis.SortBy)
	}
	if cfg.Analysis.InsiderSellThreshold != 5_000_000 {
		t.Errorf("InsiderSellThreshold = %v, want 5000000", cfg.Analysis.InsiderSellThreshold)
	}
	if cfg.Analysis.ShowSmallPositions {
		t.Error("ShowSmallPositions should be false")
	}
}

func TestLoad_InvalidSortKey(t *testing.T) {
	os.Clearenv()
	os.Setenv("SORT_BY", "volume")
	defer os.Clearenv()

	if _, err := Load(); err == nil {
		t.Error("expected validation error for invalid SORT_BY")
	}
}

func TestLoad_InvalidEnv(t *testing.T) {
	os.Clearenv()
	os.Setenv("ENV", "test")
	defer os.Clearenv()

	if _, err := Load(); err == nil {
		t.Error("expected validation error for invalid ENV")
	}
}

func TestLoadFrom_ExplicitFile(t *testing.T) {
	os.Clearenv()
	os.Setenv("PORT", "7000") // the named file must win over the environment
	defer os.Clearenv()

	envFile := filepath.Join(t.TempDir(), "custom.env")
	content := "PORT=9999\nSORT_BY=ticker\n"
	if err := os.WriteFile(envFile, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFrom(envFile)
	if err != nil {
		t.Fatalf("LoadFrom failed: %v", err)
	}

	if cfg.Port != "9999" {
		t.Errorf("Port = %s, want 9999", cfg.Port)
	}
	if cfg.Analysis.SortBy != "ticker" {
		t.Errorf("SortBy = %s, want ticker", cfg.Analysis.SortBy)
	}
}

func TestLoadFrom_MissingFile(t *testing.T) {
	os.Clearenv()

	if _, err := LoadFrom(filepath.Join(t.TempDir(), "nope.env")); err == nil {
		t.Error("expected error for a missing env file")
	}
}

func TestLoad_TrimRangeOrder(t *testing.T) {
	os.Clearenv()
	os.Setenv("TRIM_TARGET_LOW_PCT", "0.12")
	os.Setenv("TRIM_TARGET_HIGH_PCT", "0.10")
	defer os.Clearenv()

	if _, err := Load(); err == nil {
		t.Error("expected validation error when trim low bound exceeds high bound")
	}
}
