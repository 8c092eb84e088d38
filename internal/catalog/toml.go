package catalog

import (
	"fmt"
	"strconv"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/hyperjump/darkseeker/internal/models"
)

// tomlItem mirrors models.Item with loosely typed fields: TOML ids may be integers, prices
// may be integers, and dates may be native TOML date or datetime values.
type tomlItem struct {
	ID          any      `toml:"id"`
	Title       string   `toml:"title"`
	Description string   `toml:"description"`
	Category    string   `toml:"category"`
	Price       any      `toml:"price"`
	Tags        []string `toml:"tags"`
	Date        any      `toml:"date"`
}

// decodeTOML reads an array of [[items]] tables.
func decodeTOML(content []byte) ([]models.Item, error) {
	var doc struct {
		Items []tomlItem `toml:"items"`
	}
	if err := toml.Unmarshal(content, &doc); err != nil {
		return nil, fmt.Errorf("parse TOML: %w", err)
	}

	items := make([]models.Item, 0, len(doc.Items))
	for i, ti := range doc.Items {
		item, err := ti.toItem()
		if err != nil {
			return nil, fmt.Errorf("items[%d]: %w", i, err)
		}
		items = append(items, item)
	}
	return items, nil
}

func (ti tomlItem) toItem() (models.Item, error) {
	item := models.Item{
		Title:       ti.Title,
		Description: ti.Description,
		Category:    ti.Category,
		Tags:        ti.Tags,
	}

	switch v := ti.ID.(type) {
	case nil:
	case string:
		item.ID = models.ID(v)
	case int64:
		item.ID = models.ID(strconv.FormatInt(v, 10))
	default:
		return item, fmt.Errorf("id must be a string or an integer, got %T", ti.ID)
	}

	switch v := ti.Price.(type) {
	case nil:
	case int64:
		item.Price = float64(v)
	case float64:
		item.Price = v
	default:
		return item, fmt.Errorf("price must be a number, got %T", ti.Price)
	}

	date, err := tomlDate(ti.Date)
	if err != nil {
		return item, err
	}
	item.Date = date
	return item, nil
}

func tomlDate(v any) (models.Date, error) {
	switch d := v.(type) {
	case nil:
		return models.Date{}, nil
	case string:
		return models.ParseDate(d)
	case int64:
		return models.ParseDate(strconv.FormatInt(d, 10))
	case time.Time:
		return models.NewDate(d), nil
	case toml.LocalDate:
		return models.ParseDate(d.String())
	case toml.LocalDateTime:
		return models.NewDate(d.AsTime(time.UTC)), nil
	default:
		return models.Date{}, fmt.Errorf("%w: unsupported TOML value %T", models.ErrInvalidDate, v)
	}
}
