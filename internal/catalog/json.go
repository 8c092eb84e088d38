package catalog

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/hyperjump/darkseeker/internal/models"
)

// decodeJSON accepts either a bare array of items or an object with an "items" array.
func decodeJSON(content []byte) ([]models.Item, error) {
	trimmed := bytes.TrimSpace(content)
	if len(trimmed) == 0 {
		return []models.Item{}, nil
	}
	if trimmed[0] == '{' {
		var doc struct {
			Items []models.Item `json:"items"`
		}
		if err := json.Unmarshal(trimmed, &doc); err != nil {
			return nil, fmt.Errorf("parse JSON: %w", err)
		}
		return doc.Items, nil
	}
	var items []models.Item
	if err := json.Unmarshal(trimmed, &items); err != nil {
		return nil, fmt.Errorf("parse JSON: %w", err)
	}
	return items, nil
}
