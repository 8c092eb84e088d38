// Package catalog holds immutable item snapshots and loads them from files.
package catalog

import (
	"errors"
	"time"

	"github.com/hyperjump/darkseeker/internal/models"
)

var (
	// ErrUnavailable is returned when no catalog snapshot has been loaded.
	ErrUnavailable = errors.New("catalog unavailable")
	// ErrUnsupportedFormat is returned for a catalog file extension no decoder handles.
	ErrUnsupportedFormat = errors.New("unsupported catalog format")
)

// Catalog is one immutable snapshot of the item collection. Callers must treat the
// slice returned by Items as read-only; it is shared by every reader of the snapshot.
type Catalog struct {
	items    []models.Item
	source   string
	loadedAt time.Time
}

// New builds a snapshot from items. The slice is copied, so later changes by the
// caller do not reach the snapshot.
func New(items []models.Item, source string) *Catalog {
	owned := make([]models.Item, len(items))
	copy(owned, items)
	return &Catalog{items: owned, source: source, loadedAt: time.Now()}
}

// Items returns the items in catalog order.
func (c *Catalog) Items() []models.Item {
	return c.items
}

// Len returns the number of items.
func (c *Catalog) Len() int {
	return len(c.items)
}

// Source returns where the snapshot was read from.
func (c *Catalog) Source() string {
	return c.source
}

// LoadedAt returns when the snapshot was built.
func (c *Catalog) LoadedAt() time.Time {
	return c.loadedAt
}
