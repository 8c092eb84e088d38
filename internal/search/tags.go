package search

import (
	"sort"

	"github.com/hyperjump/darkseeker/internal/models"
)

// ListTags returns every distinct tag across items, compared case-sensitively and
// sorted ascending.
func ListTags(items []models.Item) []string {
	seen := make(map[string]struct{})
	for _, item := range items {
		for _, t := range item.Tags {
			seen[t] = struct{}{}
		}
	}
	return sortedKeys(seen)
}

// ListCategories returns every distinct non-empty category, sorted ascending.
func ListCategories(items []models.Item) []string {
	seen := make(map[string]struct{})
	for _, item := range items {
		if item.Category != "" {
			seen[item.Category] = struct{}{}
		}
	}
	return sortedKeys(seen)
}

func sortedKeys(m map[string]struct{}) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
