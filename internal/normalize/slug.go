// Package normalize canonicalizes the free-form strings found in the
// VGCPastes spreadsheet: event names, dates, placements and team text.
package normalize

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// asciiFold decomposes accented characters and drops the combining marks,
// matching an NFKD-then-ASCII transliteration.
var asciiFold = transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)))

// Slugify converts text to a filename-safe slug: lowercase ASCII with every
// run of non-alphanumeric characters collapsed to a single underscore.
// Characters that do not transliterate to ASCII are dropped. Slugify is
// idempotent and never fails; empty or all-symbol input yields "".
func Slugify(text string) string {
	folded, _, err := transform.String(asciiFold, text)
	if err != nil {
		folded = text
	}

	var b strings.Builder
	b.Grow(len(folded))
	pendingSep := false
	for _, r := range folded {
		switch {
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9':
			if pendingSep && b.Len() > 0 {
				b.WriteByte('_')
			}
			pendingSep = false
			b.WriteRune(r)
		case r >= 'A' && r <= 'Z':
			if pendingSep && b.Len() > 0 {
				b.WriteByte('_')
			}
			pendingSep = false
			b.WriteRune(unicode.ToLower(r))
		case r > unicode.MaxASCII:
			// Untransliterated runes are dropped, not replaced.
		default:
			pendingSep = true
		}
	}
	return b.String()
}
