// Package main is the DarkSeeker CLI entry point.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/hyperjump/darkseeker/internal/catalog"
	"github.com/hyperjump/darkseeker/internal/cli"
	"github.com/hyperjump/darkseeker/internal/config"
	"github.com/hyperjump/darkseeker/internal/metrics"
	"github.com/hyperjump/darkseeker/internal/models"
	"github.com/hyperjump/darkseeker/internal/search"
	"github.com/hyperjump/darkseeker/internal/server"
	"github.com/hyperjump/darkseeker/internal/storage"
	"github.com/hyperjump/darkseeker/internal/watcher"
	"github.com/hyperjump/darkseeker/pkg/utils"
)

var version = "dev"

const (
	defaultConfigPath = "/usr/local/etc/darkseeker/config.yaml"
	defaultServerURL  = "http://localhost:3000"
)

// loadConfig loads config from path. When path is the default, config.yaml in the current
// directory wins if present, and when neither file exists the built-in defaults are used
// (resolved path ""). Returns the config and the path that was actually loaded.
func loadConfig(path string) (*config.Config, string, error) {
	if path == defaultConfigPath {
		if cwd, cwdErr := os.Getwd(); cwdErr == nil {
			fallback := filepath.Join(cwd, "config.yaml")
			if _, statErr := os.Stat(fallback); statErr == nil {
				cfg, loadErr := config.Load(fallback)
				if loadErr != nil {
					return nil, "", loadErr
				}
				return cfg, fallback, nil
			}
		}
		if _, statErr := os.Stat(path); errors.Is(statErr, os.ErrNotExist) {
			return config.Default(), "", nil
		}
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, "", err
	}
	return cfg, path, nil
}

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}
	command := os.Args[1]
	switch command {
	case "server":
		runServer()
	case "search":
		runSearch()
	case "tags":
		runTags()
	case "import":
		runImport()
	case "status":
		runStatus()
	case "config":
		runConfig()
	case "version", "--version", "-v":
		fmt.Printf("darkseeker version %s\n", version)
	case "help", "--help", "-h":
		printUsage()
	default:
		fmt.Printf("Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

// mustLoadConfig loads config and a logger for the one-shot commands, exiting on failure.
func mustLoadConfig(path string) (*config.Config, *zap.Logger) {
	cfg, _, err := loadConfig(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	logger, err := utils.NewLogger(cfg.Debug, cfg.Logging.Level)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	return cfg, logger
}

// recordReload keeps the catalog metrics in step with every reload attempt.
func recordReload(c *catalog.Catalog, err error) {
	metrics.IncReload(err)
	if c != nil {
		metrics.SetCatalogItems(c.Len())
	}
}

func runServer() {
	fs := flag.NewFlagSet("server", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	debug := fs.Bool("debug", false, "enable debug logging (catalog reloads, every search)")
	_ = fs.Parse(os.Args[2:])

	cfg, resolvedConfigPath, err := loadConfig(*configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}
	debugMode := cfg.Debug || *debug
	logger, err := utils.NewLogger(debugMode, cfg.Logging.Level)
	if err != nil {
		fmt.Printf("Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("config loaded",
		zap.String("config_path", resolvedConfigPath),
		zap.String("catalog_path", cfg.Catalog.Path),
		zap.Bool("debug", debugMode),
	)

	store := catalog.NewStore(nil)
	reloader := catalog.NewReloader(
		catalog.NewLoader(catalog.WithLogger(logger)),
		store,
		cfg.Catalog.Path,
		catalog.WithReloadLogger(logger),
		catalog.WithReloadHook(recordReload),
	)
	if _, err := reloader.Reload(context.Background()); err != nil {
		logger.Fatal("Failed to load catalog", zap.String("path", cfg.Catalog.Path), zap.Error(err))
	}

	engine := search.NewEngine(store, &cfg.Search,
		search.WithLogger(logger),
		search.WithSearchObserver(metrics.ObserveSearch),
	)

	watchCtx, watchCancel := context.WithCancel(context.Background())
	defer watchCancel()
	if cfg.Catalog.Watch {
		watchSvc := watcher.NewWatcher(
			[]string{cfg.Catalog.Path},
			func(string) {
				_, _ = reloader.Reload(watchCtx)
			},
			watcher.WithLogger(logger),
			watcher.WithDebounce(time.Duration(cfg.Catalog.DebounceMs)*time.Millisecond),
		)
		if err := watchSvc.Start(watchCtx); err != nil {
			logger.Fatal("Failed to start watcher", zap.Error(err))
		}
		defer watchSvc.Stop()
	}

	srv := server.NewServer(engine, cfg, logger)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Server failed", zap.Error(err))
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM, syscall.SIGHUP)
	for sig := range sigChan {
		if sig == syscall.SIGHUP {
			logger.Info("SIGHUP received, reloading catalog")
			_, _ = reloader.Reload(context.Background())
			continue
		}
		break
	}

	logger.Info("Shutting down...")
	watchCancel()
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeoutSec)*time.Second)
	defer cancel()
	if err := srv.Stop(ctx); err != nil {
		logger.Warn("graceful shutdown failed", zap.Error(err))
	}
}

// printSearchUsage prints search subcommand usage.
func printSearchUsage(fs *flag.FlagSet) {
	fmt.Fprintf(fs.Output(), "Usage: darkseeker search [flags] [query]\n\n")
	fmt.Fprintf(fs.Output(), "Query is all remaining arguments joined by spaces; it may be empty to browse by filters.\n\n")
	fs.PrintDefaults()
	fmt.Fprintf(fs.Output(), `
Examples:
  darkseeker search arduino
  darkseeker search --tags ia,seguridad
  darkseeker search --category Electrónica --sort price_asc
  darkseeker search --min 100 --max 500 --limit 10 curso
  darkseeker search --server "" arduino            # read the catalog directly
`)
}

// buildSearchQuery joins all positional args with spaces so multi-word queries
// work the same with or without shell quoting.
func buildSearchQuery(args []string) string {
	return strings.TrimSpace(strings.Join(args, " "))
}

// searchArgsReorder moves any flags (and their values) that appear after the query
// to the front of the slice so that flag.Parse() sees them. Go's flag package
// stops at the first non-flag argument, so "darkseeker search arduino -limit 2"
// would otherwise leave -limit unparsed.
func searchArgsReorder(args []string) []string {
	for i, a := range args {
		if len(a) > 0 && a[0] == '-' {
			if i == 0 {
				return args
			}
			reordered := make([]string, 0, len(args))
			reordered = append(reordered, args[i:]...)
			reordered = append(reordered, args[:i]...)
			return reordered
		}
	}
	return args
}

// searchOptions is the parsed search command line.
type searchOptions struct {
	configPath string
	serverURL  string
	format     cli.OutputFormat
	query      *models.Query
}

// parseSearchArgs parses the search flags. Malformed price bounds are rejected here
// rather than silently ignored as the HTTP API does.
func parseSearchArgs(args []string, output io.Writer) (*searchOptions, error) {
	fs := flag.NewFlagSet("search", flag.ContinueOnError)
	fs.SetOutput(output)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	serverURL := fs.String("server", defaultServerURL, "server URL (empty = read the catalog directly)")
	category := fs.String("category", "", "exact category to keep")
	minPrice := fs.String("min", "", "minimum price, inclusive")
	maxPrice := fs.String("max", "", "maximum price, inclusive")
	tags := fs.String("tags", "", "comma-separated tags; items with any of them are kept")
	sortBy := fs.String("sort", string(models.SortRelevance), "relevance, price_asc, price_desc, or newest")
	page := fs.Int("page", 1, "page number")
	limit := fs.Int("limit", 0, "items per page (0 = server default)")
	outputFormat := fs.String("output", "text", "output format: text, compact, or json")
	fs.Usage = func() { printSearchUsage(fs) }
	if err := fs.Parse(searchArgsReorder(args)); err != nil {
		return nil, err
	}

	format, err := cli.ParseOutputFormat(*outputFormat)
	if err != nil {
		return nil, err
	}
	query := &models.Query{
		Text:     buildSearchQuery(fs.Args()),
		Category: *category,
		Tags:     search.SplitTags(*tags),
		Sort:     models.ParseSort(*sortBy),
		Page:     *page,
		Limit:    *limit,
	}
	if query.PriceMin, err = parsePriceFlag("min", *minPrice); err != nil {
		return nil, err
	}
	if query.PriceMax, err = parsePriceFlag("max", *maxPrice); err != nil {
		return nil, err
	}
	return &searchOptions{
		configPath: *configPath,
		serverURL:  *serverURL,
		format:     format,
		query:      query,
	}, nil
}

func parsePriceFlag(name, raw string) (*float64, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	bound := search.ParseBound(raw)
	if bound == nil {
		return nil, fmt.Errorf("invalid --%s value %q", name, raw)
	}
	return bound, nil
}

func runSearch() {
	opts, err := parseSearchArgs(os.Args[2:], os.Stderr)
	if err != nil {
		if !errors.Is(err, flag.ErrHelp) {
			fmt.Fprintf(os.Stderr, "%v\n", err)
		}
		os.Exit(1)
	}

	ctx := context.Background()
	var page *models.ResultPage
	if opts.serverURL != "" {
		page, err = cli.NewClient(opts.serverURL).Search(ctx, opts.query)
	} else {
		var engine *search.Engine
		engine, err = openEngine(ctx, opts.configPath)
		if err == nil {
			page, err = engine.Search(ctx, opts.query)
		}
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Search failed: %v\n", err)
		os.Exit(1)
	}
	if err := cli.WriteSearchResults(os.Stdout, page, opts.format); err != nil {
		fmt.Fprintf(os.Stderr, "Output failed: %v\n", err)
		os.Exit(1)
	}
}

// openEngine loads the configured catalog once for a direct (serverless) command.
func openEngine(ctx context.Context, configPath string) (*search.Engine, error) {
	cfg, logger := mustLoadConfig(configPath)
	defer logger.Sync()
	return newDirectEngine(ctx, cfg, logger)
}

func newDirectEngine(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*search.Engine, error) {
	c, err := catalog.NewLoader(catalog.WithLogger(logger)).Load(ctx, cfg.Catalog.Path)
	if err != nil {
		return nil, err
	}
	return search.NewEngine(catalog.NewStore(c), &cfg.Search, search.WithLogger(logger)), nil
}

func runTags() {
	fs := flag.NewFlagSet("tags", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	serverURL := fs.String("server", defaultServerURL, "server URL (empty = read the catalog directly)")
	outputFormat := fs.String("output", "text", "output format: text or json")
	_ = fs.Parse(os.Args[2:])

	format, err := cli.ParseOutputFormat(*outputFormat)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()
	var tags []string
	if *serverURL != "" {
		tags, err = cli.NewClient(*serverURL).Tags(ctx)
	} else {
		var engine *search.Engine
		engine, err = openEngine(ctx, *configPath)
		if err == nil {
			tags, err = engine.Tags(ctx)
		}
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Tags failed: %v\n", err)
		os.Exit(1)
	}
	if err := cli.WriteTags(os.Stdout, tags, format); err != nil {
		fmt.Fprintf(os.Stderr, "Output failed: %v\n", err)
		os.Exit(1)
	}
}

// importCatalog loads src in any supported format, validates it and replaces the contents
// of the SQLite catalog database at dst. It returns the number of items written.
func importCatalog(ctx context.Context, src, dst string, logger *zap.Logger) (int, error) {
	if !catalog.IsSQLite(dst) {
		return 0, fmt.Errorf("destination %s: want a .db, .sqlite or .sqlite3 file", dst)
	}
	c, err := catalog.NewLoader(catalog.WithLogger(logger)).Load(ctx, src)
	if err != nil {
		return 0, err
	}
	store, err := storage.NewSQLiteStorage(dst)
	if err != nil {
		return 0, err
	}
	defer store.Close()
	if err := store.ReplaceItems(ctx, c.Items()); err != nil {
		return 0, err
	}
	n, err := store.CountItems(ctx)
	if err != nil {
		return 0, err
	}
	logger.Info("catalog imported", zap.String("src", src), zap.String("dst", dst), zap.Int64("items", n))
	return int(n), nil
}

func runImport() {
	fs := flag.NewFlagSet("import", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	_ = fs.Parse(os.Args[2:])
	if fs.NArg() != 2 {
		fmt.Println("Usage: darkseeker import [flags] <catalog-file> <destination.db>")
		os.Exit(1)
	}
	_, logger := mustLoadConfig(*configPath)
	defer logger.Sync()

	n, err := importCatalog(context.Background(), fs.Arg(0), fs.Arg(1), logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Import failed: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Imported %d item(s) into %s\n", n, fs.Arg(1))
}

// catalogDiskUsage returns the on-disk size of a catalog file, including SQLite's
// side files, or nil when it cannot be measured.
func catalogDiskUsage(path string) *int64 {
	paths := []string{path}
	if catalog.IsSQLite(path) {
		paths = storage.DatabaseFiles(path)
	}
	n, err := storage.DiskUsageBytes(paths...)
	if err != nil {
		return nil
	}
	return &n
}

func runStatus() {
	fs := flag.NewFlagSet("status", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	serverURL := fs.String("server", defaultServerURL, "server URL (empty = read the catalog directly)")
	outputFormat := fs.String("output", "text", "output format: text or json")
	_ = fs.Parse(os.Args[2:])

	format, err := cli.ParseOutputFormat(*outputFormat)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()
	var status cli.Status
	if *serverURL != "" {
		stats, err := cli.NewClient(*serverURL).Stats(ctx)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Status failed: %v\n", err)
			os.Exit(1)
		}
		status.Stats = *stats
	} else {
		cfg, logger := mustLoadConfig(*configPath)
		defer logger.Sync()
		engine, err := newDirectEngine(ctx, cfg, logger)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to load catalog: %v\n", err)
			os.Exit(1)
		}
		stats, err := engine.Stats(ctx)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Status failed: %v\n", err)
			os.Exit(1)
		}
		status.Stats = *stats
		status.DiskUsageBytes = catalogDiskUsage(cfg.Catalog.Path)
	}
	if err := cli.WriteStatus(os.Stdout, &status, format); err != nil {
		fmt.Fprintf(os.Stderr, "Output failed: %v\n", err)
		os.Exit(1)
	}
}

// initConfig writes the built-in defaults to path. An existing file is only replaced
// when force is set.
func initConfig(path string, force bool) error {
	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create config directory: %w", err)
		}
	}
	return config.Save(path, config.Default())
}

func runConfig() {
	if len(os.Args) < 3 || os.Args[2] != "init" {
		fmt.Println("Usage: darkseeker config init [--force] [path]")
		os.Exit(1)
	}
	fs := flag.NewFlagSet("config init", flag.ExitOnError)
	force := fs.Bool("force", false, "overwrite an existing file")
	_ = fs.Parse(os.Args[3:])
	path := "config.yaml"
	if fs.NArg() > 0 {
		path = fs.Arg(0)
	}
	if err := initConfig(path, *force); err != nil {
		fmt.Fprintf(os.Stderr, "Config init failed: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Wrote default config to %s\n", path)
}

func printUsage() {
	fmt.Println(`DarkSeeker - catalog search engine

Usage:
  darkseeker <command> [flags]

Commands:
  server    Serve the catalog over HTTP (reloads on SIGHUP or file change)
  search    Search the catalog
  tags      List every tag in the catalog
  import    Convert a catalog file into a SQLite catalog database
  status    Show catalog statistics
  config    Write a default config file (config init [--force] [path])
  version   Print version
  help      Show this help

Catalog formats: .json, .yaml, .yml, .toml, .xlsx, .db, .sqlite, .sqlite3

Run 'darkseeker <command> -h' for command flags.`)
}
