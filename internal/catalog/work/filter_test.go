// Copyright (c) 2026 Biblion. All rights reserved.

package work

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilter_WhereSQL_And(t *testing.T) {
	f := Filter{Language: "en", YearPubMin: 1990}

	where, args := f.whereSQL(OwnerWork)

	require.Equal(t, []any{"en", 1990}, args)
	assert.Equal(t, " WHERE w.language = $1 AND w.yearpub >= $2", where)
}

func TestFilter_WhereSQL_Empty(t *testing.T) {
	where, args := Filter{}.whereSQL(OwnerWork)

	assert.Empty(t, where)
	assert.Nil(t, args)
}

func TestFilter_WhereSQL_OrWithUnsetFieldMatchesAll(t *testing.T) {
	// In OR mode an unset field counts as satisfied, so any partially set
	// filter matches every record and emits no WHERE at all.
	f := Filter{Language: "en", Title: "history", MatchAny: true}

	where, args := f.whereSQL(OwnerWork)

	assert.Empty(t, where)
	assert.Nil(t, args)
}

func TestFilter_WhereSQL_OrFullySet(t *testing.T) {
	f := Filter{
		Type:        "book",
		AuthorID:    "a-1",
		LastName:    "Doe",
		Language:    "en",
		Title:       "History",
		ContainerID: "c-1",
		Keyword:     "rome",
		YearPubMin:  1900,
		YearPubMax:  2000,
		Key:         "Doe 1950",
		MatchAny:    true,
	}

	where, args := f.whereSQL(OwnerWork)

	require.Len(t, args, 10)
	assert.True(t, strings.HasPrefix(where, " WHERE ("))
	assert.Equal(t, 9, strings.Count(where, " OR "))
	assert.NotContains(t, where, " AND $")
}

func TestFilter_WhereSQL_NormalizesSearchTerms(t *testing.T) {
	f := Filter{LastName: "Dáv", Title: "Élan 3"}

	where, args := f.whereSQL(OwnerWork)

	require.Len(t, args, 2)
	// Last names drop digits and accents; titles keep digits.
	assert.Equal(t, "%dav%", args[0])
	assert.Equal(t, "%elan 3%", args[1])
	assert.Contains(t, where, "a.lastx LIKE $1")
	assert.Contains(t, where, "w.titlex LIKE $2")
}

func TestFilter_WhereSQL_ContainerKind(t *testing.T) {
	f := Filter{ContainerID: "c-9"}

	whereWork, _ := f.whereSQL(OwnerWork)
	whereContainer, _ := f.whereSQL(OwnerContainer)

	assert.Equal(t, " WHERE w.containerid = $1", whereWork)
	// For containers the reference matches the record's own id.
	assert.Equal(t, " WHERE w.id = $1", whereContainer)
}

func TestFilter_WhereSQL_JunctionTablesPerKind(t *testing.T) {
	f := Filter{AuthorID: "a-1", Keyword: "rome"}

	whereWork, _ := f.whereSQL(OwnerWork)
	whereContainer, _ := f.whereSQL(OwnerContainer)

	assert.Contains(t, whereWork, "catalog.workauthor")
	assert.Contains(t, whereWork, "catalog.workkeyword")
	assert.Contains(t, whereContainer, "catalog.containerauthor")
	assert.Contains(t, whereContainer, "catalog.containerkeyword")
}
