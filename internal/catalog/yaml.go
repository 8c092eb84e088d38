package catalog

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/hyperjump/darkseeker/internal/models"
)

// decodeYAML accepts either a top-level sequence of items or a mapping with an "items" key.
func decodeYAML(content []byte) ([]models.Item, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(content, &root); err != nil {
		return nil, fmt.Errorf("parse YAML: %w", err)
	}
	if len(root.Content) == 0 {
		return []models.Item{}, nil
	}

	doc := root.Content[0]
	switch doc.Kind {
	case yaml.SequenceNode:
		var items []models.Item
		if err := doc.Decode(&items); err != nil {
			return nil, fmt.Errorf("decode YAML items: %w", err)
		}
		return items, nil
	case yaml.MappingNode:
		var wrapped struct {
			Items []models.Item `yaml:"items"`
		}
		if err := doc.Decode(&wrapped); err != nil {
			return nil, fmt.Errorf("decode YAML items: %w", err)
		}
		return wrapped.Items, nil
	default:
		return nil, fmt.Errorf("parse YAML: expected a list of items or an items mapping (line %d)", doc.Line)
	}
}
