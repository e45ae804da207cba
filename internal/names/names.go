// Package names provides person-name normalization for index lookups.
//
// Genealogy records carry Vietnamese names with full diacritics ("Nguyễn Văn
// Bình"). Fold normalizes them to a lowercase ASCII key ("nguyen van binh") so
// that store index lookups match regardless of how the caller typed the name.
package names

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// Fold returns a lowercase, diacritic-stripped form of a name suitable as an
// index key. Interior whitespace is collapsed to single spaces.
func Fold(name string) string {
	// Decompose accented characters so the combining marks can be dropped.
	s := norm.NFKD.String(name)

	var b strings.Builder
	b.Grow(len(s))
	lastSpace := true
	for _, r := range s {
		switch {
		case unicode.Is(unicode.Mn, r):
			// Combining mark from decomposition.
			continue
		case unicode.IsSpace(r):
			if !lastSpace {
				b.WriteByte(' ')
				lastSpace = true
			}
			continue
		// NFKD does not decompose the Vietnamese đ/Đ.
		case r == 'đ':
			r = 'd'
		case r == 'Đ':
			r = 'D'
		}
		b.WriteRune(unicode.ToLower(r))
		lastSpace = false
	}

	return strings.TrimRight(b.String(), " ")
}
