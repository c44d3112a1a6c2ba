// Copyright (c) 2026 Biblion. All rights reserved.

// Package keyword manages the controlled vocabulary attached to works and
// containers.
//
// Unlike authors, keywords are deduplicated by content: the (language, value)
// pair is unique, and adding an existing pair returns the stored row instead
// of creating a duplicate.
package keyword

// Keyword is a single vocabulary entry.
type Keyword struct {
	ID       int    `json:"id"`
	Language string `json:"language"` // ISO 639 code, e.g. "en"
	Value    string `json:"value"`
}

// Filter holds the parameters for a paginated keyword search.
type Filter struct {
	Language string
	Query    string // substring match against the normalized value
}

// Global field names for validation
const (
	FieldLanguage = "language"
	FieldValue    = "value"
)
