// Package extract parses the reconstructed text of cartaporte fields into
// structured values. Every parser is total: a missing pattern yields nil
// attributes, never an error.
package extract

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/lgarreta/ecuapassdocs/internal/catalog"
)

// Extractor holds the patterns built from a reference catalog. It keeps no
// per-document state and is safe for concurrent use.
type Extractor struct {
	cat *catalog.Catalog

	reLocation  *regexp.Regexp
	reIncoterm  *regexp.Regexp
	reCityAfter *regexp.Regexp
}

func New(cat *catalog.Catalog) *Extractor {
	countries := quoteAll(cat.Countries())
	codes := quoteAll(cat.IncotermCodes())
	// "<city> - <country>": the city stays on the country's line.
	location := regexp.MustCompile(`(?i)([^\n]*?)[\s\-]+(` + countries + `)(?:[^\p{L}\p{N}_]|$)`)
	return &Extractor{
		cat:         cat,
		reLocation:  location,
		reIncoterm:  regexp.MustCompile(`(?i)\b(` + codes + `)\b`),
		reCityAfter: regexp.MustCompile(`(?i)\b(?:` + codes + `)\b[^\p{L}\p{N}_]+(.*)`),
	}
}

func quoteAll(words []string) string {
	q := make([]string, len(words))
	for i, w := range words {
		q[i] = regexp.QuoteMeta(w)
	}
	return strings.Join(q, "|")
}

// firstGroup returns the first capture group of re in text.
func firstGroup(re *regexp.Regexp, text *string) *string {
	if text == nil {
		return nil
	}
	m := re.FindStringSubmatch(*text)
	if m == nil {
		return nil
	}
	return &m[1]
}

// nonEmpty returns nil for an empty string.
func nonEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func trimNonWord(s string) string {
	return strings.TrimFunc(s, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_'
	})
}
