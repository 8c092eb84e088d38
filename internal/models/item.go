// Package models defines core data structures for catalog items, queries, and result pages.
package models

import (
	"encoding/json"
	"fmt"
)

// Item is one catalog entry. Items are read-only once a catalog snapshot is built.
type Item struct {
	ID          ID       `json:"id" yaml:"id" toml:"id"`
	Title       string   `json:"title" yaml:"title" toml:"title"`
	Description string   `json:"description" yaml:"description" toml:"description"`
	Category    string   `json:"category" yaml:"category" toml:"category"`
	Price       float64  `json:"price" yaml:"price" toml:"price"`
	Tags        []string `json:"tags" yaml:"tags" toml:"tags"`
	Date        Date     `json:"date" yaml:"date" toml:"date"`
}

// ID is an opaque item identifier, unique within a catalog.
type ID string

// UnmarshalJSON accepts both JSON strings and numbers, so catalogs written with
// numeric ids ("id": 7) load the same as string ids ("id": "7").
func (id *ID) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("id must be a string or a number: %s", string(data))
	}
	*id = ID(n.String())
	return nil
}

// String returns the id text.
func (id ID) String() string {
	return string(id)
}
