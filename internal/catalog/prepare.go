package catalog

import (
	"fmt"
	"math"

	"github.com/hyperjump/darkseeker/internal/models"
)

// Prepare validates decoded items and returns a normalized copy: items without an id get a
// generated one and nil tag lists become empty. Duplicate ids and negative or non-finite
// prices are errors.
func Prepare(items []models.Item) ([]models.Item, error) {
	out := make([]models.Item, len(items))
	taken := make(map[models.ID]struct{}, len(items))

	for i, item := range items {
		if math.IsNaN(item.Price) || math.IsInf(item.Price, 0) {
			return nil, fmt.Errorf("item %d (%q): price is not a finite number", i, item.ID)
		}
		if item.Price < 0 {
			return nil, fmt.Errorf("item %d (%q): negative price %v", i, item.ID, item.Price)
		}
		if item.ID != "" {
			if _, dup := taken[item.ID]; dup {
				return nil, fmt.Errorf("item %d: duplicate id %q", i, item.ID)
			}
			taken[item.ID] = struct{}{}
		}
		if item.Tags == nil {
			item.Tags = []string{}
		} else {
			item.Tags = append([]string(nil), item.Tags...)
		}
		out[i] = item
	}

	// explicit ids are all reserved before any id is generated
	for i := range out {
		if out[i].ID == "" {
			out[i].ID = uniqueID(out[i], taken)
			taken[out[i].ID] = struct{}{}
		}
	}
	return out, nil
}
