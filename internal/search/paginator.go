package search

import "github.com/hyperjump/darkseeker/internal/models"

// TotalPages is ceil(total/limit), never less than 1.
func TotalPages(total, limit int) int {
	if limit < 1 {
		return 1
	}
	pages := total / limit
	if total%limit != 0 {
		pages++
	}
	if pages < 1 {
		pages = 1
	}
	return pages
}

// Paginate slices page (1-based) of size limit out of items. A page outside the
// range yields an empty item list; the requested page number is echoed unchanged.
func Paginate(items []models.ScoredItem, page, limit int) *models.ResultPage {
	result := &models.ResultPage{
		Total:      len(items),
		Page:       page,
		TotalPages: TotalPages(len(items), limit),
		Items:      []models.ScoredItem{},
	}
	if page < 1 || limit < 1 {
		return result
	}

	// compare page indexes, not offsets: (page-1)*limit overflows for huge pages
	if len(items) == 0 || page-1 > (len(items)-1)/limit {
		return result
	}
	start := (page - 1) * limit
	end := len(items)
	if limit < end-start {
		end = start + limit
	}
	result.Items = append(result.Items, items[start:end]...)
	return result
}
