// Package mapping is the column reconciliation engine: it resolves the
// two-row source header, matches loosely spelled headers onto the master
// schema, locates the date-headed valuation columns and builds the
// immutable per-run mapping plan.
package mapping

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Normalize canonicalizes a header for comparison: lowercase, diacritics
// stripped, and every run of whitespace or punctuation collapsed to a
// single space. Idempotent.
func Normalize(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	if out, _, err := transform.String(stripMarks, s); err == nil {
		s = out
	}
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		} else {
			b.WriteRune(' ')
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

// NormalizeKey canonicalizes a natural-key value (a Rut) so formatting
// variants of the same identifier collide: thousand separators, the
// check-digit dash and whitespace are dropped and letters uppercased.
// "12.345.678-9", "12345678-9" and "123456789" all map to "123456789".
func NormalizeKey(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range strings.TrimSpace(s) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(unicode.ToUpper(r))
		}
	}
	return b.String()
}
