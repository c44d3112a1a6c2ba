// Copyright (c) 2026 Biblion. All rights reserved.

package work

import (
	"fmt"
	"strings"

	"github.com/tkempf/biblion/internal/platform/database/schema"
	"github.com/tkempf/biblion/pkg/normtext"
)

// filterFieldCount is the number of filterable fields on Filter, MatchAny
// excluded.
const filterFieldCount = 10

// whereSQL renders the filter into a WHERE clause over the owner table
// aliased as "w". It returns the empty string when no predicate applies.
//
// AND mode combines every set field. OR mode treats an unset field as
// satisfied, so unless all fields are set the clause degenerates to "match
// everything" and no WHERE is emitted.
func (f Filter) whereSQL(kind OwnerKind) (string, []any) {
	conds, args := f.predicates(kind)
	if len(conds) == 0 {
		return "", nil
	}

	if f.MatchAny {
		if len(conds) < filterFieldCount {
			return "", nil
		}
		return " WHERE (" + strings.Join(conds, " OR ") + ")", args
	}

	return " WHERE " + strings.Join(conds, " AND "), args
}

// predicates returns one SQL condition per set field, with placeholders
// numbered from $1.
func (f Filter) predicates(kind OwnerKind) ([]string, []any) {
	var conds []string
	var args []any

	add := func(cond string, arg any) {
		args = append(args, arg)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}

	authorJunction := schema.WorkAuthor.Table
	authorOwnerCol := schema.WorkAuthor.WorkID
	keywordJunction := schema.WorkKeyword.Table
	keywordOwnerCol := schema.WorkKeyword.WorkID
	if kind == OwnerContainer {
		authorJunction = schema.ContainerAuthor.Table
		authorOwnerCol = schema.ContainerAuthor.ContainerID
		keywordJunction = schema.ContainerKeyword.Table
		keywordOwnerCol = schema.ContainerKeyword.ContainerID
	}

	if f.Type != "" {
		add("w.typeid = $%d", f.Type)
	}
	if f.AuthorID != "" {
		add(fmt.Sprintf(
			"EXISTS (SELECT 1 FROM %s j WHERE j.%s = w.id AND j.authorid = $%%d)",
			authorJunction, authorOwnerCol,
		), f.AuthorID)
	}
	if f.LastName != "" {
		add(fmt.Sprintf(
			"EXISTS (SELECT 1 FROM %s j JOIN %s a ON a.id = j.authorid WHERE j.%s = w.id AND a.lastx LIKE $%%d)",
			authorJunction, schema.Author.Table, authorOwnerCol,
		), "%"+normtext.Normalize(f.LastName, false)+"%")
	}
	if f.Language != "" {
		add("w.language = $%d", f.Language)
	}
	if f.Title != "" {
		add("w.titlex LIKE $%d", "%"+normtext.Normalize(f.Title, true)+"%")
	}
	if f.ContainerID != "" {
		// Containers have no host; the reference matches their own id.
		if kind == OwnerContainer {
			add("w.id = $%d", f.ContainerID)
		} else {
			add("w.containerid = $%d", f.ContainerID)
		}
	}
	if f.Keyword != "" {
		add(fmt.Sprintf(
			"EXISTS (SELECT 1 FROM %s j JOIN %s k ON k.id = j.keywordid WHERE j.%s = w.id AND k.valuex LIKE $%%d)",
			keywordJunction, schema.Keyword.Table, keywordOwnerCol,
		), "%"+normtext.Normalize(f.Keyword, true)+"%")
	}
	if f.YearPubMin != 0 {
		add("w.yearpub >= $%d", f.YearPubMin)
	}
	if f.YearPubMax != 0 {
		add("w.yearpub <= $%d", f.YearPubMax)
	}
	if f.Key != "" {
		add("w.key = $%d", f.Key)
	}

	return conds, args
}
