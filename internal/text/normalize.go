// Package text provides the canonical letter sequence used by every analyzer.
package text

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Normalize drops every character outside the ASCII letters and upper-cases the rest.
func Normalize(raw string) string {
	var b strings.Builder
	b.Grow(len(raw))
	for i := 0; i < len(raw); i++ {
		ch := raw[i]
		switch {
		case ch >= 'A' && ch <= 'Z':
			b.WriteByte(ch)
		case ch >= 'a' && ch <= 'z':
			b.WriteByte(ch - 'a' + 'A')
		}
	}
	return b.String()
}

// FoldAccents removes combining marks so that accented letters survive
// normalization as their base letter ("é" becomes "e").
func FoldAccents(raw string) string {
	folded, _, err := transform.String(stripMarks, raw)
	if err != nil {
		return raw
	}
	return folded
}

// IsLetter reports whether ch is an ASCII letter.
func IsLetter(ch byte) bool {
	return (ch >= 'A' && ch <= 'Z') || (ch >= 'a' && ch <= 'z')
}
