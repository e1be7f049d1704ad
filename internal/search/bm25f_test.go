package search

import (
	"math"
	"testing"

	"github.com/patseek/patseek/internal/index"
)

func TestIDFMonotonicity(t *testing.T) {
	n := 1000
	prev := math.Inf(1)
	for df := 1; df <= n; df *= 2 {
		cur := idf(n, df)
		if cur >= prev {
			t.Errorf("idf(%d, %d) = %f not below idf at smaller df (%f)", n, df, cur, prev)
		}
		prev = cur
	}
}

func TestIDFNonNegative(t *testing.T) {
	// The +1 inside the log keeps idf positive even when df approaches N.
	for _, df := range []int{1, 10, 99, 100} {
		if got := idf(100, df); got <= 0 {
			t.Errorf("idf(100, %d) = %f, want > 0", df, got)
		}
	}
}

func TestTermScoreZeroForAbsentTerm(t *testing.T) {
	ix := buildIndex(t, [][3]string{{"alpha", "", ""}})
	s := &scorer{ix: ix}
	doc, _ := ix.Doc(0)

	got, err := s.termScore("missing", doc, index.AllFields)
	if err != nil {
		t.Fatal(err)
	}
	if got != 0 {
		t.Errorf("termScore for unknown term = %f, want 0", got)
	}
}

func TestClaimsOnlyQueryWhenFieldEmptyCorpuswide(t *testing.T) {
	// Claims are empty corpus-wide, so avgdl_C = 0; a claims-only query
	// must finish without error and match nothing.
	ix := buildIndex(t, [][3]string{{"alpha", "beta", ""}})
	s := NewSearcher(ix, nil, 5)

	out, err := s.Search("[FIELD=C] alpha")
	if err != nil {
		t.Fatalf("avgdl=0 field must not error: %v", err)
	}
	if out.Total != 0 {
		t.Errorf("Total = %d, want 0", out.Total)
	}
}

func TestScoreScalesWithTermFrequency(t *testing.T) {
	ix := buildIndex(t, [][3]string{
		{"widget widget widget", "", ""},
		{"widget", "", ""},
	})
	s := NewSearcher(ix, nil, 5)

	out, err := s.Search("widget")
	if err != nil {
		t.Fatal(err)
	}
	if out.Results[0].Doc.DocID != 0 {
		t.Errorf("higher-tf doc should rank first, got doc %d", out.Results[0].Doc.DocID)
	}
}
