package index

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/patseek/patseek/internal/corpus"
	"github.com/patseek/patseek/internal/tokenizer"
)

func writeCorpusDoc(t *testing.T, dir, name, title, abstract, claims string) {
	t.Helper()
	data := `{"dataset": {"invention_title": ` + jsonString(title) +
		`, "abstract": ` + jsonString(abstract) +
		`, "claims": ` + jsonString(claims) + `}}`
	if err := os.WriteFile(filepath.Join(dir, name), []byte(data), 0644); err != nil {
		t.Fatal(err)
	}
}

func jsonString(s string) string {
	out := make([]byte, 0, len(s)+2)
	out = append(out, '"')
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == '"' || c == '\\' {
			out = append(out, '\\')
		}
		out = append(out, c)
	}
	return string(append(out, '"'))
}

// buildTestIndex indexes the documents in corpusDir and opens the result.
func buildTestIndex(t *testing.T, corpusDir string) *Index {
	t.Helper()

	b := NewBuilder(nil)
	if err := b.BuildFromDir(corpusDir); err != nil {
		t.Fatalf("BuildFromDir() error = %v", err)
	}

	indexDir := t.TempDir()
	docTable := filepath.Join(indexDir, "doc_table.json")
	termDict := filepath.Join(indexDir, "term_dict.json")
	postings := filepath.Join(indexDir, "postings.bin")
	if err := b.Commit(docTable, termDict, postings); err != nil {
		t.Fatalf("Commit() error = %v", err)
	}

	ix, err := Open(docTable, termDict, postings)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() { ix.Close() })
	return ix
}

func TestBuilderAssignsDenseDocIDs(t *testing.T) {
	dir := t.TempDir()
	writeCorpusDoc(t, dir, "a.json", "alpha", "", "")
	writeCorpusDoc(t, dir, "b.json", "beta", "", "")
	writeCorpusDoc(t, dir, "c.json", "gamma", "", "")

	ix := buildTestIndex(t, dir)

	if ix.NumDocs() != 3 {
		t.Fatalf("NumDocs() = %d, want 3", ix.NumDocs())
	}
	for id := 0; id < 3; id++ {
		if _, ok := ix.Doc(id); !ok {
			t.Errorf("doc_id %d missing; ids must be dense", id)
		}
	}
}

func TestPostingsRoundTrip(t *testing.T) {
	dir := t.TempDir()
	writeCorpusDoc(t, dir, "a.json", "quantum radar quantum", "signal processing", "claim 1")
	writeCorpusDoc(t, dir, "b.json", "radar", "quantum signal", "")

	ix := buildTestIndex(t, dir)

	postings, err := ix.Postings("quantum", FieldTitle)
	if err != nil {
		t.Fatal(err)
	}
	if len(postings) != 1 || postings[0] != 2 {
		t.Errorf("quantum/T postings = %v, want {0:2}", postings)
	}

	postings, err = ix.Postings("quantum", FieldAbstract)
	if err != nil {
		t.Fatal(err)
	}
	if len(postings) != 1 || postings[1] != 1 {
		t.Errorf("quantum/A postings = %v, want {1:1}", postings)
	}

	postings, err = ix.Postings("radar", FieldTitle)
	if err != nil {
		t.Fatal(err)
	}
	if len(postings) != 2 || postings[0] != 1 || postings[1] != 1 {
		t.Errorf("radar/T postings = %v, want {0:1,1:1}", postings)
	}

	// Absent (term, field) pairs are empty, not errors.
	postings, err = ix.Postings("radar", FieldClaims)
	if err != nil {
		t.Fatal(err)
	}
	if len(postings) != 0 {
		t.Errorf("radar/C postings = %v, want empty", postings)
	}
}

func TestDFIsUnionAcrossFields(t *testing.T) {
	dir := t.TempDir()
	// "quantum" appears in T and A of doc0 and in A of doc1: df must be 2,
	// not 3 (the per-field counts T=1 and A=2 summed).
	writeCorpusDoc(t, dir, "a.json", "quantum quantum", "quantum", "")
	writeCorpusDoc(t, dir, "b.json", "", "quantum", "")

	ix := buildTestIndex(t, dir)

	df, ok := ix.DF("quantum")
	if !ok {
		t.Fatal("quantum missing from dictionary")
	}
	if df != 2 {
		t.Errorf("df = %d, want 2 (union of distinct docs)", df)
	}
}

func TestFieldLengthConsistency(t *testing.T) {
	dir := t.TempDir()
	title := "network protocol for quantum key distribution"
	abstract := "a protocol distributing quantum keys over a network"
	writeCorpusDoc(t, dir, "a.json", title, abstract, "claim 1 claim 2")

	ix := buildTestIndex(t, dir)

	doc, _ := ix.Doc(0)
	for _, f := range AllFields {
		wantLen := len(tokenizer.Tokenize(doc.Text(f)))
		if doc.Len(f) != wantLen {
			t.Errorf("len_%s = %d, want %d", f, doc.Len(f), wantLen)
		}

		// len_F must equal the tf sum over all terms for this doc/field.
		sum := 0
		for _, term := range ix.Terms() {
			postings, err := ix.Postings(term, f)
			if err != nil {
				t.Fatal(err)
			}
			sum += postings[0]
		}
		if sum != doc.Len(f) {
			t.Errorf("field %s: tf sum = %d, want len %d", f, sum, doc.Len(f))
		}
	}
}

func TestMetadataAverages(t *testing.T) {
	dir := t.TempDir()
	writeCorpusDoc(t, dir, "a.json", "one two three four", "x", "")
	writeCorpusDoc(t, dir, "b.json", "one two", "y z", "")

	ix := buildTestIndex(t, dir)

	stats := ix.Stats()
	if stats.TotalDocs != 2 {
		t.Errorf("TotalDocs = %d, want 2", stats.TotalDocs)
	}
	if stats.AvgdlT != 3.0 {
		t.Errorf("AvgdlT = %f, want 3.0", stats.AvgdlT)
	}
	if stats.AvgdlA != 1.5 {
		t.Errorf("AvgdlA = %f, want 1.5", stats.AvgdlA)
	}
	if stats.AvgdlC != 0 {
		t.Errorf("AvgdlC = %f, want 0", stats.AvgdlC)
	}
}

func TestBuilderSkipsMalformedAndCounts(t *testing.T) {
	dir := t.TempDir()
	writeCorpusDoc(t, dir, "good.json", "alpha", "", "")
	if err := os.WriteFile(filepath.Join(dir, "bad.json"), []byte("{broken"), 0644); err != nil {
		t.Fatal(err)
	}

	b := NewBuilder(nil)
	if err := b.BuildFromDir(dir); err != nil {
		t.Fatalf("BuildFromDir() error = %v", err)
	}
	if b.NumDocs() != 1 {
		t.Errorf("NumDocs() = %d, want 1", b.NumDocs())
	}
	if b.Skipped() != 1 {
		t.Errorf("Skipped() = %d, want 1", b.Skipped())
	}
}

func TestDuplicateRelpathsAreDistinctDocs(t *testing.T) {
	dir := t.TempDir()
	sub1 := filepath.Join(dir, "x")
	sub2 := filepath.Join(dir, "y")
	for _, sub := range []string{sub1, sub2} {
		if err := os.MkdirAll(sub, 0755); err != nil {
			t.Fatal(err)
		}
	}
	writeCorpusDoc(t, sub1, "same.json", "alpha", "", "")
	writeCorpusDoc(t, sub2, "same.json", "beta", "", "")

	ix := buildTestIndex(t, dir)
	if ix.NumDocs() != 2 {
		t.Errorf("NumDocs() = %d, want 2 (same filename, different dirs)", ix.NumDocs())
	}
}

func TestCommitEmptyCorpus(t *testing.T) {
	ix := buildTestIndex(t, t.TempDir())
	if ix.NumDocs() != 0 {
		t.Errorf("NumDocs() = %d, want 0", ix.NumDocs())
	}
	stats := ix.Stats()
	if stats.AvgdlT != 0 || stats.AvgdlA != 0 || stats.AvgdlC != 0 {
		t.Errorf("empty corpus averages = %+v, want zeros", stats)
	}
}

func TestBuilderDirectAdd(t *testing.T) {
	b := NewBuilder(nil)
	b.Add(corpus.Record{RelPath: "r.json", Title: "alpha beta", Abstract: "beta", Claims: ""})

	if b.NumDocs() != 1 {
		t.Fatalf("NumDocs() = %d, want 1", b.NumDocs())
	}
}
