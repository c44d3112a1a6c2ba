// Copyright (c) 2026 Biblion. All rights reserved.

// Package work implements the heart of the catalog: saving, querying and
// deleting bibliographic works and their containers.
//
// # Reconciliation
//
// A save request carries a full record graph: scalar fields plus authors,
// keywords, external links and (for works) a nested container. Saving
// reconciles every referenced entity against the store inside one
// transaction, rewrites the association rows from scratch, derives the
// citation key and upserts the owning row. Submitting the same graph twice
// therefore converges to the same stored state.
package work

import (
	"github.com/tkempf/biblion/internal/catalog/author"
	"github.com/tkempf/biblion/internal/catalog/keyword"
	"github.com/tkempf/biblion/internal/catalog/worktype"
)

// Record holds the fields shared by works and containers.
type Record struct {
	ID       string             `json:"id"`
	Key      string             `json:"key"`
	Type     *worktype.WorkType `json:"type,omitempty"`
	Title    string             `json:"title"`
	Language string             `json:"language,omitempty"`

	Edition   string `json:"edition,omitempty"`
	Publisher string `json:"publisher,omitempty"`
	Number    string `json:"number,omitempty"`
	YearPub   int    `json:"year_pub,omitempty"`
	YearPub2  int    `json:"year_pub2,omitempty"`
	PlacePub  string `json:"place_pub,omitempty"`
	Location  string `json:"location,omitempty"`

	AccessDate    string `json:"access_date,omitempty"`
	Note          string `json:"note,omitempty"`
	Datation      string `json:"datation,omitempty"`
	DatationValue int    `json:"datation_value,omitempty"`

	Authors  []Authorship      `json:"authors,omitempty"`
	Keywords []keyword.Keyword `json:"keywords,omitempty"`
	Links    []ExternalID      `json:"links,omitempty"`
}

// Container is a record that other works appear in: a journal, an anthology,
// conference proceedings.
type Container struct {
	Record
}

// Work is a cataloged bibliographic record, optionally hosted by a container.
type Work struct {
	Record

	Container *Container `json:"container,omitempty"`
	FirstPage string     `json:"first_page,omitempty"`
	LastPage  string     `json:"last_page,omitempty"`
}

// Authorship ties an author to a record with a role and a citation position.
type Authorship struct {
	author.Author

	Role    string `json:"role,omitempty"`
	Ordinal int    `json:"ordinal,omitempty"`
}

// ExternalID is a pointer into an external system (DOI, catalog id, URL).
type ExternalID struct {
	SourceID string `json:"source_id"`
	Scope    string `json:"scope,omitempty"`
	Value    string `json:"value"`
}

// Info is the list-view projection of a work or container. A work's host
// container appears as a nested summary, one level deep.
type Info struct {
	ID        string       `json:"id"`
	Key       string       `json:"key"`
	Type      string       `json:"type,omitempty"`
	Title     string       `json:"title"`
	Language  string       `json:"language,omitempty"`
	YearPub   int          `json:"year_pub,omitempty"`
	Authors   []Authorship `json:"authors,omitempty"`
	Container *Info        `json:"container,omitempty"`
	FirstPage string       `json:"first_page,omitempty"`
	LastPage  string       `json:"last_page,omitempty"`
}

// Filter narrows a work or container listing. Zero values mean "not set".
//
// With MatchAny false the set fields are combined with AND. With MatchAny
// true they are combined with OR, and an UNSET field counts as satisfied, so
// any filter with at least one unset field matches every record. Callers
// wanting a selective OR must set every field.
type Filter struct {
	Type        string `json:"type,omitempty"`
	AuthorID    string `json:"author_id,omitempty"`
	LastName    string `json:"last_name,omitempty"`
	Language    string `json:"language,omitempty"`
	Title       string `json:"title,omitempty"`
	ContainerID string `json:"container_id,omitempty"`
	Keyword     string `json:"keyword,omitempty"`
	YearPubMin  int    `json:"year_pub_min,omitempty"`
	YearPubMax  int    `json:"year_pub_max,omitempty"`
	Key         string `json:"key,omitempty"`
	MatchAny    bool   `json:"match_any,omitempty"`
}
