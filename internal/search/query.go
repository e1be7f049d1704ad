// Package search implements the query evaluator: the bracket-modifier
// parser, candidate resolution, BM25F scoring and snippet generation.
package search

import (
	"strings"

	pserrors "github.com/patseek/patseek/internal/errors"
	"github.com/patseek/patseek/internal/index"
)

// Query is the parsed form of one user query line.
type Query struct {
	// Raw is the original input, kept for result rendering.
	Raw string

	Verbose    bool
	AndMode    bool
	PhraseMode bool

	// Fields are the fields selected by [FIELD=…] tags, in canonical T, A, C
	// order. Defaults to all three when no tag is present.
	Fields []index.Field

	// fieldsSpecified records whether any [FIELD=…] tag appeared; validation
	// only rejects PHRASE+field combinations the user actually asked for.
	fieldsSpecified bool

	// Text is the free-text body after all tags.
	Text string

	// InvalidTags collects unrecognized bracketed content.
	InvalidTags []string
}

// Parse splits the bracketed modifiers off the query body. Parsing is purely
// syntactic; call Validate before searching.
func Parse(input string) *Query {
	q := &Query{Raw: input}

	remaining := strings.TrimSpace(input)
	for strings.HasPrefix(remaining, "[") {
		end := strings.Index(remaining, "]")
		if end < 0 {
			break
		}
		tag := remaining[1:end]
		remaining = strings.TrimSpace(remaining[end+1:])
		q.applyTag(tag)
	}

	if len(q.Fields) == 0 {
		q.Fields = append(q.Fields, index.AllFields...)
	}
	q.Text = remaining
	return q
}

func (q *Query) applyTag(tag string) {
	switch strings.ToUpper(strings.TrimSpace(tag)) {
	case "VERBOSE", "V":
		q.Verbose = true
	case "AND", "A":
		q.AndMode = true
	case "PHRASE", "P":
		q.PhraseMode = true
	case "FIELD=T":
		q.addField(index.FieldTitle)
	case "FIELD=A":
		q.addField(index.FieldAbstract)
	case "FIELD=C":
		q.addField(index.FieldClaims)
	default:
		q.InvalidTags = append(q.InvalidTags, tag)
	}
}

func (q *Query) addField(f index.Field) {
	q.fieldsSpecified = true
	prev := q.Fields
	for _, have := range prev {
		if have == f {
			return
		}
	}
	// Keep canonical ordering regardless of tag order.
	q.Fields = nil
	for _, cand := range index.AllFields {
		if cand == f || containsField(prev, cand) {
			q.Fields = append(q.Fields, cand)
		}
	}
}

func containsField(fields []index.Field, f index.Field) bool {
	for _, have := range fields {
		if have == f {
			return true
		}
	}
	return false
}

// Validate enforces the query-level rules. A nil return means the query may
// be searched.
func (q *Query) Validate() error {
	if len(q.InvalidTags) > 0 {
		return pserrors.NewQueryError(q.Raw, "unknown tag ["+strings.Join(q.InvalidTags, "], [")+"]")
	}
	if q.PhraseMode && q.AndMode {
		return pserrors.NewQueryError(q.Raw, "[PHRASE] and [AND] cannot be combined")
	}
	if q.PhraseMode && q.fieldsSpecified {
		for _, f := range q.Fields {
			if f != index.FieldTitle {
				return pserrors.NewQueryError(q.Raw, "[PHRASE] only searches TITLE; [FIELD="+string(f)+"] is not allowed")
			}
		}
	}
	return nil
}

// ActiveFields returns the fields scoring operates on. PHRASE mode is always
// TITLE-only.
func (q *Query) ActiveFields() []index.Field {
	if q.PhraseMode {
		return []index.Field{index.FieldTitle}
	}
	return q.Fields
}
