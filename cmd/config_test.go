package cmd

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadWatchConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "watch.yaml")
	content := "interval_seconds: 30\nvs_currency: eur\ncoingecko_api_key: demo-key\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing config failed: %v", err)
	}

	cfg, err := loadWatchConfig(path, true)
	if err != nil {
		t.Fatalf("loadWatchConfig() failed: %v", err)
	}
	if cfg.interval() != 30*time.Second {
		t.Errorf("interval() = %v, want 30s", cfg.interval())
	}
	if cfg.Currency != "eur" || cfg.APIKey != "demo-key" {
		t.Errorf("config = %+v", cfg)
	}
}

func TestLoadWatchConfig_MissingDefault(t *testing.T) {
	// The default path missing is not an error, the zero config applies.
	cfg, err := loadWatchConfig(filepath.Join(t.TempDir(), "watch.yaml"), false)
	if err != nil {
		t.Fatalf("loadWatchConfig() = %v, want nil", err)
	}
	if cfg != (watchConfig{}) {
		t.Errorf("config = %+v, want the zero value", cfg)
	}
}

func TestLoadWatchConfig_MissingExplicit(t *testing.T) {
	if _, err := loadWatchConfig(filepath.Join(t.TempDir(), "watch.yaml"), true); err == nil {
		t.Fatal("loadWatchConfig() on an explicit missing file = nil, want an error")
	}
}

func TestLoadWatchConfig_BadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "watch.yaml")
	if err := os.WriteFile(path, []byte("interval_seconds: [oops"), 0644); err != nil {
		t.Fatalf("writing config failed: %v", err)
	}
	if _, err := loadWatchConfig(path, true); err == nil {
		t.Fatal("loadWatchConfig() on bad yaml = nil, want an error")
	}
}
