// Copyright (c) 2026 Biblion. All rights reserved.

package work

import (
	"context"

	"github.com/tkempf/biblion/internal/platform/apperr"
	"github.com/tkempf/biblion/pkg/citekey"
)

// finalKey derives the citation key the record will be stored under.
//
// Manual keys (and a manual key already on the stored row) survive untouched
// and are exempt from collision handling. A computed key that collides with
// any other stored work or container gets its trailing disambiguator letter
// advanced; a colliding key with no letter yet is kept as-is.
//
// Containers include their number in the key; works do not. Call this after
// author resolution so ordinals are final.
func finalKey(context context.Context, tx Tx, kind OwnerKind, rec *Record, oldKey string) (string, error) {
	entity := &citekey.Entity{
		Key:    rec.Key,
		Number: rec.Number,
		Year:   rec.YearPub,
	}
	for _, a := range rec.Authors {
		entity.Authors = append(entity.Authors, citekey.Author{
			Last:    a.Last,
			Suffix:  a.Suffix,
			Ordinal: a.Ordinal,
		})
	}

	key, err := citekey.Pick(oldKey, entity, kind == OwnerContainer)
	if err != nil {
		return "", apperr.Internal(err)
	}

	if citekey.IsManual(key) {
		return key, nil
	}

	inUse, err := tx.KeyInUse(context, key, kind, rec.ID)
	if err != nil {
		return "", err
	}
	if inUse {
		key, _ = citekey.NextSuffix(key)
	}

	return key, nil
}
