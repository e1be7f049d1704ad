// Package constants defines application-wide constants and tuning values.
//
// This package centralizes all constant values used throughout the patseek
// engine including:
//   - BM25F scoring parameters (field weights and length-normalization slopes)
//   - Snippet window geometry
//   - Default limits and the result divider
//
// The scoring constants are fixed by the ranking model and must not be
// changed independently of each other.
package constants

// BM25F scoring parameters.
const (
	// K1 controls term-frequency saturation.
	K1 = 1.1

	// Per-field weights applied to normalized term frequencies.
	WeightTitle    = 2.5
	WeightAbstract = 1.5
	WeightClaims   = 1.1

	// Per-field length-normalization slopes.
	BTitle    = 0.3
	BAbstract = 0.75
	BClaims   = 0.8
)

// Snippet generation.
const (
	// SnippetWindow is the snippet width in characters of original field text.
	SnippetWindow = 80

	// HighlightOpen and HighlightClose wrap query-term occurrences.
	HighlightOpen  = "<<"
	HighlightClose = ">>"
)

// Search defaults.
const (
	DefaultTopK     = 5
	MaxQueryLength  = 1000
	MaxSuggestions  = 3
	ResultDivider   = "--------------------------------------------------"
)

// Index artifact file names.
const (
	DocTableFile = "doc_table.json"
	TermDictFile = "term_dict.json"
	PostingsFile = "postings.bin"
)

// Builder behavior.
const (
	// PostingSize is the on-disk size of one (doc_id, tf) pair.
	PostingSize = 8

	// ProgressInterval is how many documents pass between progress log lines.
	ProgressInterval = 1000
)

// Cache configuration.
const (
	// PostingsCacheCapacity bounds the per-query postings cache. The cache is
	// cleared at every top-level query, so the bound only matters for
	// pathological single queries.
	PostingsCacheCapacity = 4096
)
