// Copyright (c) 2026 Biblion. All rights reserved.

// Package worktype manages the small reference table of bibliographic types
// (book, article, thesis, ...).
//
// Type ids are caller-chosen short codes and double as the primary key.
// Records that arrive without a type are filed under the placeholder id.
package worktype

// PlaceholderID is the type id used when a record names no type.
const PlaceholderID = "-"

// WorkType is a bibliographic type shared by works and containers.
type WorkType struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Canonicalize fills in the placeholder id and defaults the display name to
// the id.
func (t *WorkType) Canonicalize() {
	if t.ID == "" {
		t.ID = PlaceholderID
	}
	if t.Name == "" {
		t.Name = t.ID
	}
}

// Global field names for validation
const (
	FieldID   = "id"
	FieldName = "name"
)
