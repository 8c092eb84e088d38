// Package search implements the query pipeline: score, filter, sort and paginate.
package search

import (
	"context"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/hyperjump/darkseeker/internal/catalog"
	"github.com/hyperjump/darkseeker/internal/config"
	"github.com/hyperjump/darkseeker/internal/models"
)

// SearchObserver receives the filtered total and duration of every search.
type SearchObserver func(total int, elapsed time.Duration)

// Engine evaluates queries against the current catalog snapshot.
type Engine struct {
	store    *catalog.Store
	config   *config.SearchConfig
	logger   *zap.Logger
	observer SearchObserver
	tags     atomic.Pointer[tagCache]
}

// tagCache holds the tag list computed for one snapshot.
type tagCache struct {
	snapshot *catalog.Catalog
	tags     []string
}

// Stats summarizes the current snapshot.
type Stats struct {
	Items      int       `json:"items"`
	Tags       int       `json:"tags"`
	Categories []string  `json:"categories"`
	LoadedAt   time.Time `json:"loaded_at"`
	Source     string    `json:"source"`
}

// EngineOption configures an Engine.
type EngineOption func(*Engine)

// WithLogger sets the logger.
func WithLogger(logger *zap.Logger) EngineOption {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithSearchObserver registers a callback run after every successful search.
func WithSearchObserver(obs SearchObserver) EngineOption {
	return func(e *Engine) {
		e.observer = obs
	}
}

// NewEngine creates a search engine reading snapshots from store.
func NewEngine(store *catalog.Store, cfg *config.SearchConfig, opts ...EngineOption) *Engine {
	if cfg == nil {
		cfg = &config.Default().Search
	}
	e := &Engine{store: store, config: cfg, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Search runs query against the current snapshot. The query is not modified; paging
// defaults are applied to a copy. An empty result is not an error.
func (e *Engine) Search(ctx context.Context, query *models.Query) (*models.ResultPage, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	snapshot, err := e.store.Snapshot()
	if err != nil {
		return nil, err
	}

	startTime := time.Now()
	q := *query
	ProcessQuery(&q, e.config)
	page := Run(snapshot.Items(), &q)
	elapsed := time.Since(startTime)

	e.logger.Debug("search",
		zap.String("q", q.Text),
		zap.String("category", q.Category),
		zap.Strings("tags", q.Tags),
		zap.String("sort", string(q.Sort)),
		zap.Int("page", q.Page),
		zap.Int("limit", q.Limit),
		zap.Int("total", page.Total),
		zap.Duration("elapsed", elapsed),
	)
	if e.observer != nil {
		e.observer(page.Total, elapsed)
	}
	return page, nil
}

// Run evaluates an already processed query over items: Score, Filter, Sort, Paginate.
func Run(items []models.Item, q *models.Query) *models.ResultPage {
	scored := Score(items, q.Text)
	kept := Filter(scored, q)
	sorted := Sort(kept, q.Sort)
	return Paginate(sorted, q.Page, q.Limit)
}

// Tags returns the distinct tags of the current snapshot. The list is computed once per
// snapshot; callers receive their own copy.
func (e *Engine) Tags(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	snapshot, err := e.store.Snapshot()
	if err != nil {
		return nil, err
	}
	tags := e.snapshotTags(snapshot)
	out := make([]string, len(tags))
	copy(out, tags)
	return out, nil
}

func (e *Engine) snapshotTags(snapshot *catalog.Catalog) []string {
	if cached := e.tags.Load(); cached != nil && cached.snapshot == snapshot {
		return cached.tags
	}
	tags := ListTags(snapshot.Items())
	e.tags.Store(&tagCache{snapshot: snapshot, tags: tags})
	return tags
}

// Stats describes the current snapshot.
func (e *Engine) Stats(ctx context.Context) (*Stats, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	snapshot, err := e.store.Snapshot()
	if err != nil {
		return nil, err
	}
	return &Stats{
		Items:      snapshot.Len(),
		Tags:       len(e.snapshotTags(snapshot)),
		Categories: ListCategories(snapshot.Items()),
		LoadedAt:   snapshot.LoadedAt(),
		Source:     snapshot.Source(),
	}, nil
}
