package search

import (
	"strings"

	"github.com/hyperjump/darkseeker/internal/models"
)

// Field weights. A match in each field counts once, so the maximum score is 17.
const (
	TitleWeight       = 10
	DescriptionWeight = 5
	TagWeight         = 2
)

// Score wraps every item with its relevance to text. A blank text scores every item 0.
// The items are not modified.
func Score(items []models.Item, text string) []models.ScoredItem {
	n := newNormalizer()
	term := n.normalize(text)

	scored := make([]models.ScoredItem, len(items))
	for i, item := range items {
		scored[i] = models.ScoredItem{Item: item, Score: scoreItem(n, item, term)}
	}
	return scored
}

func scoreItem(n *normalizer, item models.Item, term string) int {
	if term == "" {
		return 0
	}
	score := 0
	if strings.Contains(n.normalize(item.Title), term) {
		score += TitleWeight
	}
	if strings.Contains(n.normalize(item.Description), term) {
		score += DescriptionWeight
	}
	for _, tag := range item.Tags {
		if strings.Contains(n.normalize(tag), term) {
			score += TagWeight
			break
		}
	}
	return score
}
