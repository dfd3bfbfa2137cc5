package ingest

import (
	"strings"
	"unicode"
)

// Tokenize splits text into lowercase word tokens. A token is a maximal run
// of letters, digits, and underscores; every other rune is a separator.
// Nothing is filtered: single letters and pure numbers are tokens too, so
// counts stay faithful to the source text.
func Tokenize(text string) []string {
	var tokens []string
	var current strings.Builder

	for _, r := range text {
		if isWordRune(r) {
			current.WriteRune(unicode.ToLower(r))
			continue
		}
		if current.Len() > 0 {
			tokens = append(tokens, current.String())
			current.Reset()
		}
	}

	// Don't forget the last token
	if current.Len() > 0 {
		tokens = append(tokens, current.String())
	}

	return tokens
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsNumber(r) || r == '_'
}
