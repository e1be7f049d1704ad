// Package tokenizer turns field text into the term sequence the index and
// the query evaluator share.
//
// Tokenize is pure and deterministic: the same text always yields the same
// terms, so index-time and query-time vocabularies agree.
package tokenizer

import (
	"strings"
	"unicode"
)

// Tokenize splits text into content terms. Latin tokens are lower-cased,
// punctuation separates tokens, and empty tokens are never emitted.
func Tokenize(text string) []string {
	if text == "" {
		return nil
	}

	lower := strings.ToLower(text)
	return strings.FieldsFunc(lower, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	})
}

// TokenizeCounts returns per-term frequencies and the total token count of
// the text. The total counts every token, not distinct terms.
func TokenizeCounts(text string) (freqs map[string]int, total int) {
	terms := Tokenize(text)
	if len(terms) == 0 {
		return nil, 0
	}

	freqs = make(map[string]int, len(terms))
	for _, t := range terms {
		freqs[t]++
	}
	return freqs, len(terms)
}
