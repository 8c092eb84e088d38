package search

import (
	"math"
	"net/url"
	"strconv"
	"strings"

	"github.com/hyperjump/darkseeker/internal/models"
)

// ParseParams builds a Query from request parameters (q, category, min, max, tags, sort,
// page, limit). Malformed numbers never fail: bad bounds are left unset and bad page or
// limit values are left 0 for ProcessQuery to default.
func ParseParams(values url.Values) *models.Query {
	q := &models.Query{
		Text:     values.Get("q"),
		Category: values.Get("category"),
		PriceMin: ParseBound(values.Get("min")),
		PriceMax: ParseBound(values.Get("max")),
		Sort:     models.ParseSort(values.Get("sort")),
		Page:     parseInt(values.Get("page")),
		Limit:    parseInt(values.Get("limit")),
	}
	for _, raw := range values["tags"] {
		q.Tags = append(q.Tags, SplitTags(raw)...)
	}
	return q
}

// EncodeParams is the inverse of ParseParams, used by clients calling /api/search.
// Unset fields are omitted.
func EncodeParams(q *models.Query) url.Values {
	v := url.Values{}
	if q.Text != "" {
		v.Set("q", q.Text)
	}
	if q.Category != "" {
		v.Set("category", q.Category)
	}
	if q.PriceMin != nil {
		v.Set("min", strconv.FormatFloat(*q.PriceMin, 'f', -1, 64))
	}
	if q.PriceMax != nil {
		v.Set("max", strconv.FormatFloat(*q.PriceMax, 'f', -1, 64))
	}
	if len(q.Tags) > 0 {
		v.Set("tags", strings.Join(q.Tags, ","))
	}
	if q.Sort != "" && q.Sort != models.SortRelevance {
		v.Set("sort", string(q.Sort))
	}
	if q.Page > 0 {
		v.Set("page", strconv.Itoa(q.Page))
	}
	if q.Limit > 0 {
		v.Set("limit", strconv.Itoa(q.Limit))
	}
	return v
}

// SplitTags splits a comma-separated tag list, trimming each entry and dropping empties.
func SplitTags(raw string) []string {
	var tags []string
	for _, part := range strings.Split(raw, ",") {
		if t := strings.TrimSpace(part); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}

// ParseBound parses a price bound. Empty, malformed, and non-finite values return nil.
func ParseBound(s string) *float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	return &f
}

func parseInt(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0
	}
	return n
}
