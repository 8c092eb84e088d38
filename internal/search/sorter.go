package search

import (
	"sort"

	"github.com/hyperjump/darkseeker/internal/models"
)

// Sort returns a copy of items ordered by strategy. Every strategy is stable, so equal
// keys keep their input order. Unknown strategies order by relevance.
func Sort(items []models.ScoredItem, strategy models.Sort) []models.ScoredItem {
	sorted := make([]models.ScoredItem, len(items))
	copy(sorted, items)
	sort.SliceStable(sorted, less(sorted, strategy))
	return sorted
}

func less(s []models.ScoredItem, strategy models.Sort) func(i, j int) bool {
	switch strategy {
	case models.SortPriceAsc:
		return func(i, j int) bool { return s[i].Price < s[j].Price }
	case models.SortPriceDesc:
		return func(i, j int) bool { return s[i].Price > s[j].Price }
	case models.SortNewest:
		// Undated items go last.
		return func(i, j int) bool {
			a, b := s[i].Date, s[j].Date
			if a.IsZero() || b.IsZero() {
				return !a.IsZero() && b.IsZero()
			}
			return a.After(b)
		}
	default:
		return func(i, j int) bool { return s[i].Score > s[j].Score }
	}
}
