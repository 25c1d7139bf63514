// Package normalize provides the case/diacritic folding used to match
// queried card names against Scryfall records and card faces.
package normalize

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var foldTransformer = transform.Chain(
	norm.NFD,
	runes.Remove(runes.In(unicode.Mn)),
	norm.NFC,
)

// Name returns the normalized form of a card name: diacritics stripped,
// lowercased, surrounding whitespace removed. Scryfall stores names like
// "Lórien Revealed" and "Jötun Grunt"; user-supplied filenames rarely
// carry the accents, so both sides are folded before comparison.
func Name(name string) string {
	folded, _, err := transform.String(foldTransformer, name)
	if err != nil {
		// Fold failure leaves the input usable as-is.
		folded = name
	}
	return strings.ToLower(strings.TrimSpace(folded))
}

// Equal reports whether two card names refer to the same card after folding.
func Equal(a, b string) bool {
	return Name(a) == Name(b)
}
