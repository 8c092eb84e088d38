package main

import (
	"context"
	"errors"
	"flag"
	"io"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"go.uber.org/zap"

	"github.com/hyperjump/darkseeker/internal/catalog"
	"github.com/hyperjump/darkseeker/internal/catalog/catalogtest"
	"github.com/hyperjump/darkseeker/internal/cli"
	"github.com/hyperjump/darkseeker/internal/config"
	"github.com/hyperjump/darkseeker/internal/models"
)

func TestSearchArgsReorder(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		expected []string
	}{
		{
			name:     "flags after query are moved first",
			args:     []string{"arduino", "-limit", "2"},
			expected: []string{"-limit", "2", "arduino"},
		},
		{
			name:     "flags first returns unchanged",
			args:     []string{"-limit", "2", "arduino"},
			expected: []string{"-limit", "2", "arduino"},
		},
		{
			name:     "query only returns unchanged",
			args:     []string{"curso de arduino"},
			expected: []string{"curso de arduino"},
		},
		{
			name:     "empty args returns unchanged",
			args:     []string{},
			expected: []string{},
		},
		{
			name:     "multiple positionals then flags",
			args:     []string{"curso", "web", "--sort", "newest"},
			expected: []string{"--sort", "newest", "curso", "web"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := searchArgsReorder(tt.args)
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("searchArgsReorder() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestBuildSearchQuery(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		expected string
	}{
		{"single word", []string{"arduino"}, "arduino"},
		{"multiple words", []string{"curso", "web"}, "curso web"},
		{"single quoted phrase", []string{"curso web"}, "curso web"},
		{"empty args", []string{}, ""},
		{"blank args", []string{"  ", "  "}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := buildSearchQuery(tt.args)
			if got != tt.expected {
				t.Errorf("buildSearchQuery(%v) = %q, want %q", tt.args, got, tt.expected)
			}
		})
	}
}

func TestParseSearchArgs(t *testing.T) {
	opts, err := parseSearchArgs([]string{
		"curso", "de", "arduino",
		"--category", "Educación",
		"--min", "100", "--max", "500",
		"--tags", " arduino, ,web ",
		"--sort", "price_desc",
		"--page", "2", "--limit", "3",
		"--output", "json",
		"--server", "",
	}, io.Discard)
	if err != nil {
		t.Fatalf("parseSearchArgs: %v", err)
	}
	q := opts.query
	if q.Text != "curso de arduino" || q.Category != "Educación" {
		t.Errorf("text/category = %q/%q", q.Text, q.Category)
	}
	if q.PriceMin == nil || *q.PriceMin != 100 || q.PriceMax == nil || *q.PriceMax != 500 {
		t.Errorf("price bounds = %v/%v", q.PriceMin, q.PriceMax)
	}
	if !reflect.DeepEqual(q.Tags, []string{"arduino", "web"}) {
		t.Errorf("tags = %v", q.Tags)
	}
	if q.Sort != models.SortPriceDesc || q.Page != 2 || q.Limit != 3 {
		t.Errorf("sort/page/limit = %s/%d/%d", q.Sort, q.Page, q.Limit)
	}
	if opts.format != cli.OutputJSON || opts.serverURL != "" {
		t.Errorf("format/server = %s/%q", opts.format, opts.serverURL)
	}
}

func TestParseSearchArgs_defaults(t *testing.T) {
	opts, err := parseSearchArgs(nil, io.Discard)
	if err != nil {
		t.Fatalf("parseSearchArgs: %v", err)
	}
	if opts.query.Text != "" || opts.query.PriceMin != nil || opts.query.PriceMax != nil || opts.query.Tags != nil {
		t.Errorf("unexpected query: %+v", opts.query)
	}
	if opts.query.Sort != models.SortRelevance || opts.serverURL != defaultServerURL || opts.format != cli.OutputText {
		t.Errorf("unexpected defaults: %+v", opts)
	}
}

func TestParseSearchArgs_errors(t *testing.T) {
	for _, args := range [][]string{
		{"--min", "cheap"},
		{"--max", "NaN"},
		{"--output", "xml"},
		{"--page", "two"},
	} {
		if _, err := parseSearchArgs(args, io.Discard); err == nil {
			t.Errorf("parseSearchArgs(%v): expected error", args)
		}
	}
	if _, err := parseSearchArgs([]string{"-h"}, io.Discard); !errors.Is(err, flag.ErrHelp) {
		t.Errorf("-h: got %v, want flag.ErrHelp", err)
	}
}

func TestLoadConfig_prefersCwdConfigWhenDefaultPath(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.yaml")
	content := `
debug: true
server:
  port: 8080
catalog:
  path: "./items.yaml"
`
	if err := os.WriteFile(configPath, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}
	chdir(t, dir)

	cfg, resolved, err := loadConfig(defaultConfigPath)
	if err != nil {
		t.Fatal(err)
	}
	// On macOS, cwd can be /private/var/... while t.TempDir() is /var/...; compare canonical paths.
	resolvedCanon, _ := filepath.EvalSymlinks(resolved)
	configPathCanon, _ := filepath.EvalSymlinks(configPath)
	if resolvedCanon != configPathCanon {
		t.Errorf("resolved path = %s, want %s", resolvedCanon, configPathCanon)
	}
	if !cfg.Debug || cfg.Server.Port != 8080 {
		t.Errorf("unexpected config: debug=%t port=%d", cfg.Debug, cfg.Server.Port)
	}
	if filepath.Base(cfg.Catalog.Path) != "items.yaml" || !filepath.IsAbs(cfg.Catalog.Path) {
		t.Errorf("catalog path = %s, want absolute path to items.yaml", cfg.Catalog.Path)
	}
}

func TestLoadConfig_defaultsWhenNoFile(t *testing.T) {
	chdir(t, t.TempDir())
	if _, err := os.Stat(defaultConfigPath); err == nil {
		t.Skip("a system config exists at " + defaultConfigPath)
	}

	cfg, resolved, err := loadConfig(defaultConfigPath)
	if err != nil {
		t.Fatal(err)
	}
	if resolved != "" {
		t.Errorf("resolved path = %q, want empty", resolved)
	}
	if cfg.Server.Port != 3000 || cfg.Search.DefaultLimit != 4 {
		t.Errorf("expected built-in defaults, got %+v", cfg)
	}
}

func TestLoadConfig_explicitPathMustExist(t *testing.T) {
	if _, _, err := loadConfig(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for a missing explicit config")
	}
}

func TestImportCatalog(t *testing.T) {
	dir := t.TempDir()
	src := catalogtest.WriteFile(t, dir, "items.json", catalogtest.JSON)
	dst := filepath.Join(dir, "out", "catalog.db")

	n, err := importCatalog(context.Background(), src, dst, zap.NewNop())
	if err != nil {
		t.Fatalf("importCatalog: %v", err)
	}
	if n != 10 {
		t.Errorf("imported %d items, want 10", n)
	}

	c, err := catalog.NewLoader().Load(context.Background(), dst)
	if err != nil {
		t.Fatalf("load imported catalog: %v", err)
	}
	if c.Len() != 10 || c.Items()[0].Title != "Kit Arduino Uno para principiantes" {
		t.Errorf("imported catalog: len=%d first=%q", c.Len(), c.Items()[0].Title)
	}

	if usage := catalogDiskUsage(dst); usage == nil || *usage == 0 {
		t.Errorf("catalogDiskUsage(%s) = %v, want a positive size", dst, usage)
	}
}

func TestImportCatalog_rejectsNonSQLiteDestination(t *testing.T) {
	dir := t.TempDir()
	src := catalogtest.WriteFile(t, dir, "items.json", catalogtest.JSON)
	if _, err := importCatalog(context.Background(), src, filepath.Join(dir, "out.json"), zap.NewNop()); err == nil {
		t.Error("expected error for a non-SQLite destination")
	}
}

func TestImportCatalog_invalidSourceLeavesNoDatabase(t *testing.T) {
	dir := t.TempDir()
	src := catalogtest.WriteFile(t, dir, "items.json", `[{"title": "Bad", "price": -1}]`)
	dst := filepath.Join(dir, "catalog.db")
	if _, err := importCatalog(context.Background(), src, dst, zap.NewNop()); err == nil {
		t.Fatal("expected validation error")
	}
	if _, err := os.Stat(dst); !os.IsNotExist(err) {
		t.Errorf("database should not be created, stat err = %v", err)
	}
}

func TestNewDirectEngine(t *testing.T) {
	dir := t.TempDir()
	cfg := config.Default()
	cfg.Catalog.Path = catalogtest.WriteFile(t, dir, "items.json", catalogtest.JSON)

	engine, err := newDirectEngine(context.Background(), cfg, zap.NewNop())
	if err != nil {
		t.Fatalf("newDirectEngine: %v", err)
	}
	page, err := engine.Search(context.Background(), &models.Query{Text: "arduino"})
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(catalogtest.IDs(page.Items), []string{"1", "2", "4"}) {
		t.Errorf("ids = %v", catalogtest.IDs(page.Items))
	}

	cfg.Catalog.Path = filepath.Join(dir, "missing.json")
	if _, err := newDirectEngine(context.Background(), cfg, zap.NewNop()); err == nil {
		t.Error("expected error for a missing catalog")
	}
}

func TestCatalogDiskUsage_missingFile(t *testing.T) {
	usage := catalogDiskUsage(filepath.Join(t.TempDir(), "missing.json"))
	if usage == nil || *usage != 0 {
		t.Errorf("missing catalog usage = %v, want 0", usage)
	}
}

func TestRecordReload(t *testing.T) {
	// metric values are asserted in the metrics package
	recordReload(catalog.New(catalogtest.Items(), "fixture"), nil)
	recordReload(nil, errors.New("boom"))
}

func chdir(t *testing.T, dir string) {
	t.Helper()
	orig, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chdir(orig) })
}

func TestInitConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "etc", "config.yaml")

	if err := initConfig(path, false); err != nil {
		t.Fatalf("initConfig: %v", err)
	}
	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("written config does not load: %v", err)
	}
	if cfg.Server.Port != 3000 || cfg.Search.DefaultLimit != 4 || !cfg.Metrics.EnabledOrDefault() {
		t.Errorf("unexpected config: %+v", cfg)
	}
	if cfg.Catalog.Path != filepath.Join(dir, "etc", "data.json") {
		t.Errorf("catalog path = %s, want data.json next to the config", cfg.Catalog.Path)
	}

	if err := initConfig(path, false); err == nil {
		t.Error("expected error when the file exists")
	}
	if err := initConfig(path, true); err != nil {
		t.Errorf("initConfig with force: %v", err)
	}
}
