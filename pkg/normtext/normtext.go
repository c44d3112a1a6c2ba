// Copyright (c) 2026 Biblion. All rights reserved.

// Package normtext canonicalizes free text for accent- and case-insensitive
// comparison.
//
// # Usage
//
// Normalized values back the shadow columns (lastx, titlex, valuex,
// containerx) used for substring filtering and sorting. The function is pure:
// stored shadow values depend on it staying deterministic across releases.
package normtext

import (
	"strings"
	"unicode"

	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Normalize converts s into its canonical indexed form.
//
// # Transformation Pipeline
//
// 1. Normalizes to NFD (decomposes accented chars: é → e + combining acute).
// 2. Removes combining marks (accents).
// 3. Converts to lowercase.
// 4. Keeps only letters, apostrophes and, when keepDigits is set, digits.
// 5. Collapses any run of whitespace to a single space and trims the ends.
//
// An empty input is returned unchanged.
func Normalize(s string, keepDigits bool) string {
	if s == "" {
		return s
	}

	// 1. Decompose and strip combining marks
	t := transform.Chain(norm.NFD, transform.RemoveFunc(isMn))
	decomposed, _, _ := transform.String(t, s)

	var b strings.Builder
	b.Grow(len(decomposed))
	pendingSpace := false

	for _, r := range decomposed {
		switch {
		case unicode.IsSpace(r):
			// Collapse runs; leading whitespace never emits.
			if b.Len() > 0 {
				pendingSpace = true
			}
		case unicode.IsLetter(r):
			if pendingSpace {
				b.WriteByte(' ')
				pendingSpace = false
			}
			b.WriteRune(unicode.ToLower(r))
		case unicode.IsDigit(r) && keepDigits:
			if pendingSpace {
				b.WriteByte(' ')
				pendingSpace = false
			}
			b.WriteRune(r)
		case r == '\'' || r == '’':
			if pendingSpace {
				b.WriteByte(' ')
				pendingSpace = false
			}
			b.WriteByte('\'')
		}
		// Everything else is dropped.
	}

	return b.String()
}

// isMn reports whether r is a Unicode non-spacing mark (e.g., accents).
func isMn(r rune) bool {
	return unicode.Is(unicode.Mn, r)
}
