package catalog

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/hyperjump/darkseeker/internal/models"
	"github.com/hyperjump/darkseeker/internal/storage"
)

// Loader reads catalog files into snapshots.
type Loader struct {
	logger *zap.Logger
}

// LoaderOption configures a Loader.
type LoaderOption func(*Loader)

// WithLogger sets the logger.
func WithLogger(logger *zap.Logger) LoaderOption {
	return func(l *Loader) {
		l.logger = logger
	}
}

// NewLoader returns a Loader.
func NewLoader(opts ...LoaderOption) *Loader {
	l := &Loader{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Extensions lists the catalog file extensions Load understands.
var Extensions = []string{".json", ".yaml", ".yml", ".toml", ".xlsx", ".db", ".sqlite", ".sqlite3"}

// IsSQLite reports whether path names a SQLite catalog database.
func IsSQLite(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".db", ".sqlite", ".sqlite3":
		return true
	}
	return false
}

// Load reads the catalog at path, chosen by extension, validates it and returns a snapshot.
func (l *Loader) Load(ctx context.Context, path string) (*Catalog, error) {
	items, err := l.ReadItems(ctx, path)
	if err != nil {
		return nil, err
	}
	prepared, err := Prepare(items)
	if err != nil {
		return nil, fmt.Errorf("invalid catalog %s: %w", path, err)
	}
	c := New(prepared, path)
	l.logger.Debug("catalog loaded", zap.String("path", path), zap.Int("items", c.Len()))
	return c, nil
}

// ReadItems decodes the items stored at path without validating them.
func (l *Loader) ReadItems(ctx context.Context, path string) ([]models.Item, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if IsSQLite(path) {
		return readSQLite(ctx, path)
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	items, err := DecodeBytes(content, strings.ToLower(filepath.Ext(path)))
	if err != nil {
		return nil, fmt.Errorf("decode catalog %s: %w", path, err)
	}
	return items, nil
}

// DecodeBytes decodes catalog content by extension. ext should include the leading dot
// (e.g. ".json"). SQLite databases cannot be decoded from bytes; use Load.
func DecodeBytes(content []byte, ext string) ([]models.Item, error) {
	switch ext {
	case ".json":
		return decodeJSON(content)
	case ".yaml", ".yml":
		return decodeYAML(content)
	case ".toml":
		return decodeTOML(content)
	case ".xlsx":
		return decodeExcel(content)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
}

func readSQLite(ctx context.Context, path string) ([]models.Item, error) {
	store, err := storage.OpenSQLiteReadOnly(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	defer store.Close()
	items, err := store.ListItems(ctx)
	if err != nil {
		return nil, fmt.Errorf("list items from %s: %w", path, err)
	}
	return items, nil
}
