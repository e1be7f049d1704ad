package search

import (
	"math"
	"sort"

	"github.com/patseek/patseek/internal/constants"
	"github.com/patseek/patseek/internal/index"
)

// scorer computes BM25F document scores against the loaded index.
type scorer struct {
	ix *index.Index
}

func fieldWeight(f index.Field) float64 {
	switch f {
	case index.FieldTitle:
		return constants.WeightTitle
	case index.FieldAbstract:
		return constants.WeightAbstract
	case index.FieldClaims:
		return constants.WeightClaims
	}
	return 0
}

func fieldB(f index.Field) float64 {
	switch f {
	case index.FieldTitle:
		return constants.BTitle
	case index.FieldAbstract:
		return constants.BAbstract
	case index.FieldClaims:
		return constants.BClaims
	}
	return 0
}

// idf is the Okapi BM25 idf with 0.5 adjustments.
func idf(n, df int) float64 {
	return math.Log((float64(n)-float64(df)+0.5)/(float64(df)+0.5) + 1)
}

// termScore computes one term's BM25F contribution for one document: the
// field-weighted pseudo-TF pushed through the k1 saturation curve.
func (s *scorer) termScore(term string, doc *index.Document, fields []index.Field) (float64, error) {
	df, ok := s.ix.DF(term)
	if !ok {
		return 0, nil
	}

	meta := s.ix.Stats()
	var pseudoTF float64
	for _, f := range fields {
		postings, err := s.ix.Postings(term, f)
		if err != nil {
			return 0, err
		}
		tf := float64(postings[doc.DocID])
		if tf == 0 {
			continue
		}

		ntf := tf
		if avgdl := meta.Avgdl(f); avgdl > 0 {
			b := fieldB(f)
			ntf = tf / ((1 - b) + b*(float64(doc.Len(f))/avgdl))
		}
		pseudoTF += fieldWeight(f) * ntf
	}

	if pseudoTF <= 0 {
		return 0, nil
	}
	return idf(s.ix.NumDocs(), df) * ((constants.K1 + 1) * pseudoTF) / (constants.K1 + pseudoTF), nil
}

// scoreDoc sums the per-term contributions over the query terms.
func (s *scorer) scoreDoc(doc *index.Document, terms []string, fields []index.Field) (float64, error) {
	var score float64
	for _, term := range terms {
		ts, err := s.termScore(term, doc, fields)
		if err != nil {
			return 0, err
		}
		score += ts
	}
	return score, nil
}

// ranked is one scored candidate.
type ranked struct {
	doc   *index.Document
	score float64
}

// rank scores every candidate and orders by (-score, doc_id).
func (s *scorer) rank(candidates map[int]struct{}, terms []string, fields []index.Field) ([]ranked, error) {
	out := make([]ranked, 0, len(candidates))
	for docID := range candidates {
		doc, ok := s.ix.Doc(docID)
		if !ok {
			continue
		}
		score, err := s.scoreDoc(doc, terms, fields)
		if err != nil {
			return nil, err
		}
		out = append(out, ranked{doc: doc, score: score})
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].score != out[j].score {
			return out[i].score > out[j].score
		}
		return out[i].doc.DocID < out[j].doc.DocID
	})
	return out, nil
}
