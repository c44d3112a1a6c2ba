// Copyright (c) 2026 Biblion. All rights reserved.

// Package author manages the shared author records referenced by works and
// containers.
//
// Authors are owned independently: works and containers point at them through
// association rows, and deleting an owner never deletes the author itself.
// Authors with no remaining associations are removed by an explicit prune.
package author

// Author represents a person credited on a work or container.
//
// Authors are not deduplicated by content; a caller must pass an existing id
// to reuse one.
type Author struct {
	ID     string `json:"id"`
	First  string `json:"first"`
	Last   string `json:"last"`
	Suffix string `json:"suffix,omitempty"` // disambiguator, e.g. "jr."
}

// Filter holds the parameters for a paginated author search.
type Filter struct {
	Query string // substring match against the normalized last name
}

// Global field names for validation
const (
	FieldFirst  = "first"
	FieldLast   = "last"
	FieldSuffix = "suffix"
)
