// Copyright (c) 2026 Biblion. All rights reserved.

package work

import (
	"context"

	"github.com/tkempf/biblion/internal/catalog/keyword"
	"github.com/tkempf/biblion/internal/catalog/worktype"
	"github.com/tkempf/biblion/pkg/uuid"
)

// resolveAuthors reconciles each submitted authorship against the author
// table and returns the surviving set with citation ordinals reassigned
// sequentially from 1 in input order.
//
// Per entry:
//   - id present, row found, last name given: the row is overwritten with the
//     submitted fields (the submission wins).
//   - id present, row found, no last name: a pure reference; the stored
//     fields are adopted.
//   - id present, row missing, no last name: a dangling reference; the entry
//     is silently dropped and consumes no ordinal.
//   - id present, row missing, last name given: inserted under the caller's
//     id, so resubmitting the same graph stays idempotent.
//   - no id: inserted under a fresh id.
func resolveAuthors(context context.Context, tx Tx, authors []Authorship) ([]Authorship, error) {
	resolved := make([]Authorship, 0, len(authors))

	for _, entry := range authors {
		if entry.ID == "" {
			entry.ID = uuid.New()
			if err := tx.SaveAuthor(context, &entry.Author, true); err != nil {
				return nil, err
			}
		} else {
			stored, found, err := tx.FindAuthor(context, entry.ID)
			if err != nil {
				return nil, err
			}

			switch {
			case found && entry.Last != "":
				if err := tx.SaveAuthor(context, &entry.Author, false); err != nil {
					return nil, err
				}
			case found:
				entry.Author = *stored
			case entry.Last != "":
				if err := tx.SaveAuthor(context, &entry.Author, true); err != nil {
					return nil, err
				}
			default:
				continue
			}
		}

		entry.Ordinal = len(resolved) + 1
		resolved = append(resolved, entry)
	}

	return resolved, nil
}

// resolveKeywords maps each submitted keyword to its stored id, creating
// missing (language, value) pairs. Duplicate pairs in the input collapse to
// one association.
func resolveKeywords(context context.Context, tx Tx, keywords []keyword.Keyword) ([]int, error) {
	ids := make([]int, 0, len(keywords))
	seen := make(map[int]bool, len(keywords))

	for i := range keywords {
		if err := tx.EnsureKeyword(context, &keywords[i]); err != nil {
			return nil, err
		}
		if seen[keywords[i].ID] {
			continue
		}
		seen[keywords[i].ID] = true
		ids = append(ids, keywords[i].ID)
	}

	return ids, nil
}

// resolveType upserts the record's type, filing typeless records under the
// placeholder. A nil type stays nil.
func resolveType(context context.Context, tx Tx, t *worktype.WorkType) error {
	if t == nil {
		return nil
	}

	t.Canonicalize()
	return tx.UpsertWorkType(context, t)
}
