// Copyright (c) 2026 Biblion. All rights reserved.

// Package citekey derives human-readable citation keys for catalog records,
// e.g. "Doe & Aspen 2020".
//
// # Manual keys
//
// A key starting with [ManualPrefix] was fixed by a user and is never
// recomputed; [Pick] arbitrates between a stored key and a freshly computed
// one.
package citekey

import (
	"errors"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

const (
	// ManualPrefix marks a user-fixed key that must never be auto-recomputed.
	ManualPrefix = "!"

	// MaxLen is the maximum stored key length in characters. Longer keys are
	// hard-truncated.
	MaxLen = 300

	// maxNames is the number of author last names rendered before " & al.".
	maxNames = 3
)

// ErrNilEntity is returned when a nil entity is passed to [Build] or [Pick].
var ErrNilEntity = errors.New("citekey: nil entity")

// trailingSuffix matches a run of digits optionally followed by one lowercase
// disambiguator letter at the end of a key ("...2020" or "...2020b").
var trailingSuffix = regexp.MustCompile(`([0-9]+)([a-z])?$`)

// Author is the minimal author view needed for key derivation.
type Author struct {
	Last    string
	Suffix  string // disambiguator, e.g. "jr."
	Ordinal int    // 1-based citation position; 0 = unset
}

// Entity is the minimal record view needed for key derivation.
type Entity struct {
	Key     string // current key as submitted; may carry ManualPrefix
	Authors []Author
	Number  string // issue/volume number, containers only
	Year    int
}

// Build derives the computed citation key for e.
//
// Up to the first three authors (ordered by ordinal, then last name, then
// suffix) are joined with " & "; more than three appends " & al.". When
// includeNumber is set and the number is non-empty it is appended before the
// year. The year is always appended, even when zero.
//
// A record with no authors yields a key starting with a space before the
// number/year portion. That matches the legacy output and stored keys depend
// on it, so it is deliberately not special-cased.
func Build(e *Entity, includeNumber bool) (string, error) {
	if e == nil {
		return "", ErrNilEntity
	}

	ordered := make([]Author, len(e.Authors))
	copy(ordered, e.Authors)
	sort.SliceStable(ordered, func(i, j int) bool {
		if ordered[i].Ordinal != ordered[j].Ordinal {
			return ordered[i].Ordinal < ordered[j].Ordinal
		}
		if ordered[i].Last != ordered[j].Last {
			return ordered[i].Last < ordered[j].Last
		}
		return ordered[i].Suffix < ordered[j].Suffix
	})

	names := make([]string, 0, maxNames)
	for _, a := range ordered {
		if len(names) == maxNames {
			break
		}
		name := a.Last
		if a.Suffix != "" {
			name += " " + a.Suffix
		}
		names = append(names, name)
	}

	key := strings.Join(names, " & ")
	if len(ordered) > maxNames {
		key += " & al."
	}

	if includeNumber && e.Number != "" {
		key += " " + e.Number
	}
	key += " " + strconv.Itoa(e.Year)

	return truncate(key), nil
}

// Pick arbitrates between the stored key and the key recomputed from e.
//
// A manual key on e always wins. Otherwise the computed key replaces oldKey
// unless oldKey is itself manual, in which case it is preserved.
func Pick(oldKey string, e *Entity, includeNumber bool) (string, error) {
	if e == nil {
		return "", ErrNilEntity
	}

	if strings.HasPrefix(e.Key, ManualPrefix) {
		return e.Key, nil
	}

	if strings.HasPrefix(oldKey, ManualPrefix) {
		return oldKey, nil
	}

	return Build(e, includeNumber)
}

// IsManual reports whether key carries the manual-prefix sentinel.
func IsManual(key string) bool {
	return strings.HasPrefix(key, ManualPrefix)
}

// NextSuffix inspects the trailing "digits plus optional letter" portion of a
// colliding key and returns the disambiguated form of key.
//
// A trailing letter is advanced to its successor; 'z' saturates (there is no
// wraparound and no two-letter extension). A key ending in bare digits is
// returned unchanged: the reference behavior only advances an existing letter
// and never invents the initial 'a'.
func NextSuffix(key string) (string, bool) {
	m := trailingSuffix.FindStringSubmatch(key)
	if m == nil || m[2] == "" {
		return key, false
	}

	letter := m[2][0]
	if letter < 'z' {
		letter++
	}

	return truncate(key[:len(key)-1] + string(letter)), true
}

// truncate cuts key to MaxLen characters. Truncation happens on a rune
// boundary so a key is never left with a split multi-byte sequence.
func truncate(key string) string {
	if len(key) <= MaxLen {
		return key
	}
	runes := []rune(key)
	if len(runes) <= MaxLen {
		return key
	}
	return string(runes[:MaxLen])
}
