package search

import (
	"strings"

	"github.com/patseek/patseek/internal/index"
)

// resolver computes candidate document sets for the three query modes.
type resolver struct {
	ix *index.Index
}

// docsForTerm unions the postings of term over the given fields. Unknown
// terms yield an empty set.
func (r *resolver) docsForTerm(term string, fields []index.Field) (map[int]struct{}, error) {
	out := make(map[int]struct{})
	for _, f := range fields {
		postings, err := r.ix.Postings(term, f)
		if err != nil {
			return nil, err
		}
		for docID := range postings {
			out[docID] = struct{}{}
		}
	}
	return out, nil
}

// resolveOr returns every document containing at least one query term in at
// least one active field.
func (r *resolver) resolveOr(terms []string, fields []index.Field) (map[int]struct{}, error) {
	out := make(map[int]struct{})
	for _, term := range terms {
		docs, err := r.docsForTerm(term, fields)
		if err != nil {
			return nil, err
		}
		for docID := range docs {
			out[docID] = struct{}{}
		}
	}
	return out, nil
}

// resolveAnd intersects the per-term field-unions. Any term absent from all
// selected fields empties the set.
func (r *resolver) resolveAnd(terms []string, fields []index.Field) (map[int]struct{}, error) {
	var out map[int]struct{}
	for _, term := range terms {
		docs, err := r.docsForTerm(term, fields)
		if err != nil {
			return nil, err
		}
		if len(docs) == 0 {
			return map[int]struct{}{}, nil
		}
		if out == nil {
			out = docs
			continue
		}
		for docID := range out {
			if _, ok := docs[docID]; !ok {
				delete(out, docID)
			}
		}
		if len(out) == 0 {
			return out, nil
		}
	}
	if out == nil {
		out = map[int]struct{}{}
	}
	return out, nil
}

// resolvePhrase narrows an AND conjunction on TITLE down to documents whose
// original title contains the query body as a substring.
func (r *resolver) resolvePhrase(terms []string, phrase string) (map[int]struct{}, error) {
	titleOnly := []index.Field{index.FieldTitle}
	candidates, err := r.resolveAnd(terms, titleOnly)
	if err != nil {
		return nil, err
	}

	needle := strings.ToLower(phrase)
	out := make(map[int]struct{}, len(candidates))
	for docID := range candidates {
		doc, ok := r.ix.Doc(docID)
		if !ok {
			continue
		}
		if strings.Contains(strings.ToLower(doc.TextT), needle) {
			out[docID] = struct{}{}
		}
	}
	return out, nil
}

// resolve dispatches on the query mode.
func (r *resolver) resolve(q *Query, terms []string) (map[int]struct{}, error) {
	switch {
	case q.PhraseMode:
		return r.resolvePhrase(terms, q.Text)
	case q.AndMode:
		return r.resolveAnd(terms, q.Fields)
	default:
		return r.resolveOr(terms, q.Fields)
	}
}
