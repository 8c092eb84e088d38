package search

import (
	"github.com/hyperjump/darkseeker/internal/config"
	"github.com/hyperjump/darkseeker/internal/models"
)

// ProcessQuery applies paging defaults in place: a page below 1 becomes 1, a limit below 1
// becomes the configured default, and a limit above the configured maximum is capped.
// A nil cfg uses the built-in defaults.
func ProcessQuery(query *models.Query, cfg *config.SearchConfig) {
	if cfg == nil {
		cfg = &config.Default().Search
	}
	if query.Page < 1 {
		query.Page = 1
	}
	if query.Limit < 1 {
		query.Limit = cfg.DefaultLimit
	}
	if cfg.MaxLimit > 0 && query.Limit > cfg.MaxLimit {
		query.Limit = cfg.MaxLimit
	}
	query.Sort = models.ParseSort(string(query.Sort))
}
