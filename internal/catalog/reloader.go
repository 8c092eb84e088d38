package catalog

import (
	"context"
	"sync"

	"go.uber.org/zap"
)

// ReloadHook is called after every reload attempt with the new snapshot or the error.
type ReloadHook func(c *Catalog, err error)

// Reloader reads a catalog file and swaps the result into a Store. A failed reload
// leaves the previous snapshot in place.
type Reloader struct {
	loader *Loader
	store  *Store
	path   string
	logger *zap.Logger
	hooks  []ReloadHook
	mu     sync.Mutex
}

// ReloaderOption configures a Reloader.
type ReloaderOption func(*Reloader)

// WithReloadLogger sets the logger.
func WithReloadLogger(logger *zap.Logger) ReloaderOption {
	return func(r *Reloader) {
		r.logger = logger
	}
}

// WithReloadHook registers a hook run after each reload attempt.
func WithReloadHook(hook ReloadHook) ReloaderOption {
	return func(r *Reloader) {
		r.hooks = append(r.hooks, hook)
	}
}

// NewReloader returns a Reloader that loads path into store.
func NewReloader(loader *Loader, store *Store, path string, opts ...ReloaderOption) *Reloader {
	r := &Reloader{loader: loader, store: store, path: path, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Path returns the catalog file being reloaded.
func (r *Reloader) Path() string {
	return r.path
}

// Reload loads the catalog file and installs it. Concurrent calls are serialized so
// snapshots are installed in the order they were read.
func (r *Reloader) Reload(ctx context.Context) (*Catalog, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, err := r.loader.Load(ctx, r.path)
	if err != nil {
		r.logger.Warn("catalog reload failed, keeping previous snapshot",
			zap.String("path", r.path), zap.Error(err))
		r.runHooks(nil, err)
		return nil, err
	}

	prev := r.store.Swap(c)
	fields := []zap.Field{zap.String("path", r.path), zap.Int("items", c.Len())}
	if prev != nil {
		fields = append(fields, zap.Int("previous_items", prev.Len()))
	}
	r.logger.Info("catalog reloaded", fields...)
	r.runHooks(c, nil)
	return c, nil
}

func (r *Reloader) runHooks(c *Catalog, err error) {
	for _, hook := range r.hooks {
		hook(c, err)
	}
}
