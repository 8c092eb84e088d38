package catalog

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/hyperjump/darkseeker/internal/models"
)

// decodeExcel reads the first sheet of a workbook. The first row names the columns
// (id, title, description, category, price, tags, date; any order, case-insensitive).
// Tags are comma-separated within their cell. Blank rows are skipped.
func decodeExcel(content []byte) ([]models.Item, error) {
	f, err := excelize.OpenReader(bytes.NewReader(content))
	if err != nil {
		return nil, fmt.Errorf("open Excel: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return []models.Item{}, nil
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("get rows for sheet %q: %w", sheets[0], err)
	}
	if len(rows) == 0 {
		return []models.Item{}, nil
	}

	columns := make(map[string]int, len(rows[0]))
	for i, name := range rows[0] {
		columns[strings.ToLower(strings.TrimSpace(name))] = i
	}
	if _, ok := columns["title"]; !ok {
		return nil, fmt.Errorf("sheet %q: header row has no title column", sheets[0])
	}

	items := make([]models.Item, 0, len(rows)-1)
	for r, row := range rows[1:] {
		cell := func(name string) string {
			i, ok := columns[name]
			if !ok || i >= len(row) {
				return ""
			}
			return strings.TrimSpace(row[i])
		}
		if isBlankRow(row) {
			continue
		}

		line := r + 2
		item := models.Item{
			ID:          models.ID(cell("id")),
			Title:       cell("title"),
			Description: cell("description"),
			Category:    cell("category"),
			Tags:        splitCellTags(cell("tags")),
		}
		if raw := cell("price"); raw != "" {
			price, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				return nil, fmt.Errorf("row %d: invalid price %q", line, raw)
			}
			item.Price = price
		}
		date, err := models.ParseDate(cell("date"))
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", line, err)
		}
		item.Date = date
		items = append(items, item)
	}
	return items, nil
}

func splitCellTags(raw string) []string {
	tags := []string{}
	for _, part := range strings.Split(raw, ",") {
		if t := strings.TrimSpace(part); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}

func isBlankRow(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
