package resolver

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// stripDiacritics decomposes to NFD, drops combining marks, and recomposes,
// so "São Paulo" and "Sao Paulo" normalize identically.
var stripDiacritics = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Normalize produces the canonical comparison form of a name: trimmed,
// case-folded, diacritics stripped, inner whitespace collapsed. Scoring is
// defined over normalized strings only, so scores are reproducible.
func Normalize(s string) string {
	if out, _, err := transform.String(stripDiacritics, s); err == nil {
		s = out
	}
	s = strings.ToLower(s)
	return strings.Join(strings.Fields(s), " ")
}

// tokenSort reorders the words of a normalized string so word order does not
// count against the score ("city taipei" vs "taipei city").
func tokenSort(s string) string {
	fields := strings.Fields(s)
	for i := 1; i < len(fields); i++ {
		for j := i; j > 0 && fields[j] < fields[j-1]; j-- {
			fields[j], fields[j-1] = fields[j-1], fields[j]
		}
	}
	return strings.Join(fields, " ")
}
