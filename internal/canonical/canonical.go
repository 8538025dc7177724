// Package canonical normalizes free-text identifiers (team names) into a
// comparison-stable form. Two spellings that differ only in case, accents,
// punctuation, or incidental whitespace canonicalize identically, so the
// security key derived from them is stable across re-entry. The canonical
// form is used only as hashing input and is never displayed.
package canonical

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// stripMarks decomposes accented characters and drops the combining marks,
// reducing "é" to "e".
var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)))

// Canonicalize trims, lowercases, folds diacritics to their base letter,
// drops everything that is not a lowercase ASCII letter, digit, or space,
// and collapses whitespace runs to a single space. It is pure, total over
// any input, and idempotent; empty input yields empty output.
func Canonicalize(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))

	if folded, _, err := transform.String(stripMarks, s); err == nil {
		s = folded
	}

	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case unicode.IsSpace(r):
			b.WriteByte(' ')
		}
	}

	return strings.Join(strings.Fields(b.String()), " ")
}
