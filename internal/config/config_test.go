package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
server:
  host: "127.0.0.1"
  port: 9000
catalog:
  path: "/srv/catalog/data.json"
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Server.Host != "127.0.0.1" || cfg.Server.Port != 9000 {
		t.Errorf("unexpected server config: %+v", cfg.Server)
	}
	if cfg.Catalog.Path != "/srv/catalog/data.json" {
		t.Errorf("absolute catalog path should be kept, got %s", cfg.Catalog.Path)
	}
	if cfg.Debug {
		t.Error("debug should default to false when unset")
	}
}

func TestLoad_debugTrue(t *testing.T) {
	path := writeConfig(t, `
debug: true
logging:
  level: warn
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if !cfg.Debug {
		t.Error("debug should be true when set in config")
	}
	if cfg.Logging.Level != "warn" {
		t.Errorf("logging level: got %q", cfg.Logging.Level)
	}
}

func TestLoad_catalogPathRelativeToConfigDir(t *testing.T) {
	path := writeConfig(t, `
catalog:
  path: "./data/items.yaml"
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	want := filepath.Join(filepath.Dir(path), "data", "items.yaml")
	if cfg.Catalog.Path != want {
		t.Errorf("catalog.path = %s, want %s", cfg.Catalog.Path, want)
	}
}

func TestLoad_defaultCatalogPathNextToConfig(t *testing.T) {
	path := writeConfig(t, "server:\n  port: 3001\n")
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	want := filepath.Join(filepath.Dir(path), "data.json")
	if cfg.Catalog.Path != want {
		t.Errorf("catalog.path = %s, want %s", cfg.Catalog.Path, want)
	}
}

func TestLoad_expandsEnvVars(t *testing.T) {
	t.Setenv("DARKSEEKER_TEST_HOST", "0.0.0.0")
	path := writeConfig(t, `
server:
  host: "${DARKSEEKER_TEST_HOST}"
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Server.Host != "0.0.0.0" {
		t.Errorf("host: got %q", cfg.Server.Host)
	}
}

func TestLoad_invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{"negative default limit", "search:\n  default_limit: -1\n", "default_limit"},
		{"max below default", "search:\n  default_limit: 10\n  max_limit: 5\n", "max_limit"},
		{"port out of range", "server:\n  port: 70000\n", "port"},
		{"metrics path without slash", "metrics:\n  path: metrics\n", "metrics.path"},
		{"malformed yaml", "server: [", "parse"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content))
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q should mention %q", err, tt.wantErr)
			}
		})
	}
}

func TestLoad_missingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestApplyDefaults(t *testing.T) {
	cfg := &Config{}
	ApplyDefaults(cfg)
	if cfg.Server.Host != "localhost" {
		t.Errorf("default host: got %s", cfg.Server.Host)
	}
	if cfg.Server.Port != 3000 {
		t.Errorf("default port: got %d", cfg.Server.Port)
	}
	if cfg.Search.DefaultLimit != 4 {
		t.Errorf("default limit: got %d", cfg.Search.DefaultLimit)
	}
	if cfg.Search.MaxLimit != 100 {
		t.Errorf("max limit: got %d", cfg.Search.MaxLimit)
	}
	if cfg.Catalog.DebounceMs != 400 {
		t.Errorf("debounce: got %d", cfg.Catalog.DebounceMs)
	}
	if cfg.Metrics.Path != "/metrics" {
		t.Errorf("metrics path: got %s", cfg.Metrics.Path)
	}
}

func TestMetricsConfig_EnabledOrDefault(t *testing.T) {
	t.Run("nil_returns_true", func(t *testing.T) {
		m := &MetricsConfig{}
		if !m.EnabledOrDefault() {
			t.Error("EnabledOrDefault() = false, want true")
		}
	})
	t.Run("false_returns_false", func(t *testing.T) {
		f := false
		m := &MetricsConfig{Enabled: &f}
		if m.EnabledOrDefault() {
			t.Error("EnabledOrDefault() = true, want false")
		}
	})
}

func TestSave(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "saved.yaml")
	cfg := Default()
	cfg.Server.Port = 9090
	cfg.Catalog.Path = "/tmp/catalog.json"
	if err := Save(path, cfg); err != nil {
		t.Fatal(err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if loaded.Server.Port != 9090 {
		t.Errorf("loaded port: got %d", loaded.Server.Port)
	}
	if loaded.Catalog.Path != "/tmp/catalog.json" {
		t.Errorf("loaded catalog path: got %s", loaded.Catalog.Path)
	}
}
