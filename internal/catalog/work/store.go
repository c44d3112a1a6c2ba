// Copyright (c) 2026 Biblion. All rights reserved.

package work

import (
	"context"

	"github.com/tkempf/biblion/internal/catalog/author"
	"github.com/tkempf/biblion/internal/catalog/keyword"
	"github.com/tkempf/biblion/internal/catalog/worktype"
)

// OwnerKind selects between the two record tables sharing the association
// machinery.
type OwnerKind int

const (
	OwnerWork OwnerKind = iota
	OwnerContainer
)

// Repository is the read side of the catalog plus the transaction factory
// for saves.
type Repository interface {
	Begin(context context.Context) (Tx, error)

	GetWork(context context.Context, id string) (*Work, error)
	GetContainer(context context.Context, id string) (*Container, error)
	ListWorks(context context.Context, f Filter, limit, offset int) ([]*Info, int, error)
	ListContainers(context context.Context, f Filter, limit, offset int) ([]*Info, int, error)

	// Deletes are idempotent: removing an absent record is a silent no-op.
	// Association rows go with the owner; shared authors and keywords stay.
	DeleteWork(context context.Context, id string) error
	DeleteContainer(context context.Context, id string) error
}

// Tx is the transactional write surface the reconciliation engine runs on.
// One save request maps to exactly one Tx.
type Tx interface {
	Commit(context context.Context) error
	Rollback(context context.Context) error

	// RecordKey returns the stored citation key of an owner row, reporting
	// whether the row exists at all.
	RecordKey(context context.Context, kind OwnerKind, id string) (key string, found bool, err error)

	// UpsertWork and UpsertContainer write the scalar columns of the owner
	// row. Association rows are handled separately by Replace*Links.
	UpsertWork(context context.Context, w *Work, insert bool) error
	UpsertContainer(context context.Context, c *Container, insert bool) error

	// KeyInUse reports whether key is carried by any work or container other
	// than the row identified by (kind, excludeID).
	KeyInUse(context context.Context, key string, kind OwnerKind, excludeID string) (bool, error)

	FindAuthor(context context.Context, id string) (*author.Author, bool, error)
	SaveAuthor(context context.Context, a *author.Author, insert bool) error

	// EnsureKeyword finds the stored (language, value) pair or creates it,
	// filling k.ID either way.
	EnsureKeyword(context context.Context, k *keyword.Keyword) error

	UpsertWorkType(context context.Context, t *worktype.WorkType) error

	// Replace*Links clear the owner's association rows and rewrite them from
	// the given set. An empty or nil set just clears.
	ReplaceAuthorLinks(context context.Context, kind OwnerKind, ownerID string, links []Authorship) error
	ReplaceKeywordLinks(context context.Context, kind OwnerKind, ownerID string, keywordIDs []int) error
	ReplaceExternalLinks(context context.Context, kind OwnerKind, ownerID string, links []ExternalID) error
}
