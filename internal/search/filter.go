package search

import "github.com/hyperjump/darkseeker/internal/models"

// Predicate reports whether a scored item survives one filter.
type Predicate func(models.ScoredItem) bool

// Predicates builds the filters a query asks for, in evaluation order: relevance,
// category, price range, tags. Criteria the query leaves unset contribute nothing.
func Predicates(q *models.Query) []Predicate {
	var preds []Predicate
	if q.HasText() {
		preds = append(preds, func(s models.ScoredItem) bool { return s.Score > 0 })
	}
	if q.Category != "" {
		category := q.Category
		preds = append(preds, func(s models.ScoredItem) bool { return s.Category == category })
	}
	if q.PriceMin != nil {
		minPrice := *q.PriceMin
		preds = append(preds, func(s models.ScoredItem) bool { return s.Price >= minPrice })
	}
	if q.PriceMax != nil {
		maxPrice := *q.PriceMax
		preds = append(preds, func(s models.ScoredItem) bool { return s.Price <= maxPrice })
	}
	if p := tagPredicate(q.Tags); p != nil {
		preds = append(preds, p)
	}
	return preds
}

// tagPredicate matches items carrying at least one of the wanted tags. Comparison is
// equality after normalization on both sides. Returns nil when no usable tag is given.
func tagPredicate(tags []string) Predicate {
	n := newNormalizer()
	wanted := make(map[string]struct{}, len(tags))
	for _, t := range tags {
		if nt := n.normalize(t); nt != "" {
			wanted[nt] = struct{}{}
		}
	}
	if len(wanted) == 0 {
		return nil
	}
	return func(s models.ScoredItem) bool {
		for _, t := range s.Tags {
			if _, ok := wanted[n.normalize(t)]; ok {
				return true
			}
		}
		return false
	}
}

// Filter returns, in input order, the items that satisfy every predicate of q.
// The result is a new slice; scored is left untouched.
func Filter(scored []models.ScoredItem, q *models.Query) []models.ScoredItem {
	preds := Predicates(q)
	out := make([]models.ScoredItem, 0, len(scored))
	for _, s := range scored {
		if matchesAll(s, preds) {
			out = append(out, s)
		}
	}
	return out
}

func matchesAll(s models.ScoredItem, preds []Predicate) bool {
	for _, p := range preds {
		if !p(s) {
			return false
		}
	}
	return true
}
