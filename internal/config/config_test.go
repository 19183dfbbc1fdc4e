package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadOverridesDefaults(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "config.yaml")

	content := `site:
  title_trim_suffix: " - Ma Boutique"
fetch:
  user_agent: custom-bot/2.0
  timeout_seconds: 5
ai:
  provider: mock
output:
  workbook: teas.xlsx
  sqlite: teas.db
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if cfg.Site.TitleTrimSuffix != " - Ma Boutique" {
		t.Errorf("Unexpected title suffix: %q", cfg.Site.TitleTrimSuffix)
	}
	if cfg.Fetch.UserAgent != "custom-bot/2.0" {
		t.Errorf("Unexpected user agent: %q", cfg.Fetch.UserAgent)
	}
	if cfg.Fetch.TimeoutSeconds != 5 {
		t.Errorf("Expected timeout 5, got %d", cfg.Fetch.TimeoutSeconds)
	}
	if cfg.AI.Provider != "mock" {
		t.Errorf("Unexpected provider: %q", cfg.AI.Provider)
	}
	if cfg.Output.Workbook != "teas.xlsx" || cfg.Output.SQLite != "teas.db" {
		t.Errorf("Unexpected output config: %+v", cfg.Output)
	}

	// Keys absent from the file keep their defaults.
	if cfg.Fetch.Burst != 2 {
		t.Errorf("Expected default burst 2, got %d", cfg.Fetch.Burst)
	}
	if cfg.Fetch.PerHostIntervalMS != 1000 {
		t.Errorf("Expected default interval 1000, got %d", cfg.Fetch.PerHostIntervalMS)
	}
	if cfg.Cache.Dir != "." {
		t.Errorf("Expected default cache dir, got %q", cfg.Cache.Dir)
	}
}

func TestLoadOrDefaultWithoutPath(t *testing.T) {
	cfg, err := LoadOrDefault("")
	if err != nil {
		t.Fatalf("LoadOrDefault failed: %v", err)
	}
	if cfg.Site.TitleTrimSuffix != " - Jardin du thé" {
		t.Errorf("Unexpected default suffix: %q", cfg.Site.TitleTrimSuffix)
	}
	if cfg.Fetch.Timeout().Seconds() != 20 {
		t.Errorf("Unexpected default timeout: %v", cfg.Fetch.Timeout())
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "config.yaml")

	content := `fetch:
  timeout_seconds: 0
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(path); err == nil {
		t.Error("Expected validation error for zero timeout")
	}
}

func TestLoadNonExistentFile(t *testing.T) {
	if _, err := Load("/nonexistent/config.yaml"); err == nil {
		t.Error("Should error on non-existent file")
	}
}

func TestLoadRejectsMalformedYAML(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "config.yaml")

	if err := os.WriteFile(path, []byte("fetch: [not a map"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("Should error on malformed yaml")
	}
}
