package scraper

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var diacriticRemover = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Fold lowercases text and strips diacritics, so that keyword matching
// treats "Intérim" and "interim" alike.
func Fold(text string) string {
	folded, _, err := transform.String(diacriticRemover, text)
	if err != nil {
		folded = text
	}
	return strings.ToLower(folded)
}
