package models

import "strings"

// Sort is the ordering strategy for a result page.
type Sort string

const (
	// SortRelevance orders by descending score. It is the default.
	SortRelevance Sort = "relevance"
	// SortPriceAsc orders by ascending price.
	SortPriceAsc Sort = "price_asc"
	// SortPriceDesc orders by descending price.
	SortPriceDesc Sort = "price_desc"
	// SortNewest orders by descending date.
	SortNewest Sort = "newest"
)

// ParseSort maps a request value to a Sort. Empty and unknown values map to SortRelevance.
func ParseSort(s string) Sort {
	switch v := Sort(strings.TrimSpace(s)); v {
	case SortRelevance, SortPriceAsc, SortPriceDesc, SortNewest:
		return v
	default:
		return SortRelevance
	}
}

// Query describes one search request. A nil price bound means "not supplied".
type Query struct {
	Text     string
	Category string
	PriceMin *float64
	PriceMax *float64
	Tags     []string
	Sort     Sort
	Page     int
	Limit    int
}

// HasText reports whether the free-text term is non-empty after trimming.
// A blank term is treated exactly like an absent one.
func (q *Query) HasText() bool {
	return strings.TrimSpace(q.Text) != ""
}
