// Package storage defines the persistence interface for catalog items.
package storage

import (
	"context"

	"github.com/hyperjump/darkseeker/internal/models"
)

// Storage persists a catalog as an ordered list of items.
type Storage interface {
	// ListItems returns every item in catalog order.
	ListItems(ctx context.Context) ([]models.Item, error)
	// ReplaceItems atomically replaces the whole catalog with items, keeping their order.
	ReplaceItems(ctx context.Context, items []models.Item) error
	CountItems(ctx context.Context) (int64, error)

	Close() error
}
