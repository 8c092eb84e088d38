package models

// ScoredItem is an Item annotated with its relevance score for a single request.
// The score lives only as long as the request; the underlying Item is never modified.
type ScoredItem struct {
	Item  `yaml:",inline"`
	Score int `json:"score" yaml:"score"`
}

// ResultPage is one page of ordered search results plus pagination metadata.
// Page echoes the requested page even when it exceeds TotalPages.
type ResultPage struct {
	Total      int          `json:"total"`
	Page       int          `json:"page"`
	TotalPages int          `json:"totalPages"`
	Items      []ScoredItem `json:"items"`
}
