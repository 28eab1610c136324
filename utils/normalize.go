package utils

import (
	"strings"
	"unicode"

	"github.com/mozillazg/go-unidecode"
	"golang.org/x/text/unicode/norm"
)

// NormalizeQuery folds a user-typed search string into the plain ASCII,
// lowercase form the API indexes. Most of the catalog is Portuguese, so
// "São João" and "sao joao" must match the same records.
func NormalizeQuery(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}

	// Decompose first so combining marks transliterate predictably.
	s = norm.NFKD.String(s)
	s = unidecode.Unidecode(s)
	s = strings.ToLower(s)

	// Collapse runs of whitespace left behind by transliteration.
	fields := strings.FieldsFunc(s, unicode.IsSpace)
	return strings.Join(fields, " ")
}
