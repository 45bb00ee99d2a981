// Package normalize turns the free text found on maker sites into the units
// and identifiers the catalog stores: halfwidth text, tax-included yen, grams,
// millimeters and URL slugs.
package normalize

import (
	"strings"

	"golang.org/x/text/width"
)

// Fold maps fullwidth Latin letters, digits and punctuation to their
// halfwidth forms and the wave dash to "~". Katakana and kanji are left
// alone. Fold(Fold(s)) == Fold(s).
func Fold(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r == '〜' {
			b.WriteRune('~')
			continue
		}
		p := width.LookupRune(r)
		if p.Kind() == width.EastAsianFullwidth {
			if n := p.Narrow(); n != 0 {
				b.WriteRune(n)
				continue
			}
		}
		b.WriteRune(r)
	}
	return b.String()
}
