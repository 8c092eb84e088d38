package search

import (
	"strings"

	"golang.org/x/text/cases"
)

// normalizer folds case and trims surrounding whitespace. A cases.Caser keeps
// internal state, so each pipeline run gets its own normalizer.
type normalizer struct {
	caser cases.Caser
}

func newNormalizer() *normalizer {
	return &normalizer{caser: cases.Fold()}
}

func (n *normalizer) normalize(s string) string {
	return strings.TrimSpace(n.caser.String(s))
}

// Normalize returns s case-folded and trimmed, the form used for every text comparison.
func Normalize(s string) string {
	return newNormalizer().normalize(s)
}
