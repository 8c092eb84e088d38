package catalog

import (
	"strconv"

	"github.com/google/uuid"

	"github.com/hyperjump/darkseeker/internal/models"
)

// itemNamespace scopes generated item ids.
var itemNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://darkseeker/items"))

// GenerateID returns a stable id derived from the item's title, category and date.
// The same content always yields the same id across reloads.
func GenerateID(item models.Item) models.ID {
	name := item.Title + "\x00" + item.Category + "\x00" + item.Date.String()
	return models.ID(uuid.NewSHA1(itemNamespace, []byte(name)).String())
}

// uniqueID returns GenerateID(item), suffixed with -2, -3, ... until it is not in taken.
func uniqueID(item models.Item, taken map[models.ID]struct{}) models.ID {
	base := GenerateID(item)
	id := base
	for n := 2; ; n++ {
		if _, ok := taken[id]; !ok {
			return id
		}
		id = models.ID(string(base) + "-" + strconv.Itoa(n))
	}
}
