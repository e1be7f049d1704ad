package index

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"strconv"

	"go.uber.org/zap"

	"github.com/patseek/patseek/internal/constants"
	"github.com/patseek/patseek/internal/corpus"
	pserrors "github.com/patseek/patseek/internal/errors"
	"github.com/patseek/patseek/internal/tokenizer"
)

// Builder accumulates per-field postings in memory and commits the three
// index artifacts. Malformed corpus documents are skipped with a log line;
// the policy is fixed for the whole run and reported in the summary.
type Builder struct {
	log *zap.Logger

	docs     []*Document
	postings map[Field]map[string][]Posting

	sumLen  map[Field]int
	skipped int
}

// NewBuilder creates an empty builder.
func NewBuilder(log *zap.Logger) *Builder {
	if log == nil {
		log = zap.NewNop()
	}
	b := &Builder{
		log:      log,
		postings: make(map[Field]map[string][]Posting, len(AllFields)),
		sumLen:   make(map[Field]int, len(AllFields)),
	}
	for _, f := range AllFields {
		b.postings[f] = make(map[string][]Posting)
	}
	return b
}

// Add assigns the next doc_id to rec and folds its three fields into the
// in-memory postings. Duplicate relpaths are distinct documents.
func (b *Builder) Add(rec corpus.Record) {
	docID := len(b.docs)

	doc := &Document{
		DocID:   docID,
		RelPath: rec.RelPath,
		TextT:   rec.Title,
		TextA:   rec.Abstract,
		TextC:   rec.Claims,
	}

	texts := map[Field]string{
		FieldTitle:    rec.Title,
		FieldAbstract: rec.Abstract,
		FieldClaims:   rec.Claims,
	}
	lens := map[Field]int{}
	for _, f := range AllFields {
		freqs, total := tokenizer.TokenizeCounts(texts[f])
		lens[f] = total
		b.sumLen[f] += total
		for term, tf := range freqs {
			b.postings[f][term] = append(b.postings[f][term], Posting{
				DocID: uint32(docID),
				TF:    uint32(tf),
			})
		}
	}
	doc.LenT = lens[FieldTitle]
	doc.LenA = lens[FieldAbstract]
	doc.LenC = lens[FieldClaims]

	b.docs = append(b.docs, doc)
}

// BuildFromDir walks the corpus directory, adding every parseable document.
func (b *Builder) BuildFromDir(corpusDir string) error {
	err := corpus.Walk(corpusDir, func(rec corpus.Record) error {
		b.Add(rec)
		if len(b.docs)%constants.ProgressInterval == 0 {
			b.log.Info("indexing progress", zap.Int("documents", len(b.docs)))
		}
		return nil
	}, func(path string, err error) {
		b.skipped++
		b.log.Warn("skipping malformed document", zap.String("path", path), zap.Error(err))
	})
	if err != nil {
		return pserrors.NewIndexError("walk", corpusDir, err)
	}
	return nil
}

// NumDocs returns the number of documents added so far.
func (b *Builder) NumDocs() int { return len(b.docs) }

// Skipped returns the number of malformed documents skipped.
func (b *Builder) Skipped() int { return b.skipped }

// metadata computes N and the per-field average lengths.
func (b *Builder) metadata() Metadata {
	n := len(b.docs)
	m := Metadata{TotalDocs: n}
	if n == 0 {
		return m
	}
	m.AvgdlT = float64(b.sumLen[FieldTitle]) / float64(n)
	m.AvgdlA = float64(b.sumLen[FieldAbstract]) / float64(n)
	m.AvgdlC = float64(b.sumLen[FieldClaims]) / float64(n)
	return m
}

// Commit writes the three artifacts. The postings file is written first in
// sorted term order, recording per-field offsets into the term dictionary;
// df is the cardinality of the per-term doc_id union across fields.
func (b *Builder) Commit(docTablePath, termDictPath, postingsPath string) error {
	terms := b.sortedTerms()

	termDict, err := b.writePostings(postingsPath, terms)
	if err != nil {
		return err
	}
	if err := writeJSONArtifact(termDictPath, termDict); err != nil {
		return pserrors.NewIndexError("write", termDictPath, err)
	}

	docTable := docTableArtifact{
		Metadata:  b.metadata(),
		Documents: make(map[string]*Document, len(b.docs)),
	}
	for _, doc := range b.docs {
		docTable.Documents[strconv.Itoa(doc.DocID)] = doc
	}
	if err := writeJSONArtifact(docTablePath, docTable); err != nil {
		return pserrors.NewIndexError("write", docTablePath, err)
	}

	b.log.Info("index committed",
		zap.Int("documents", len(b.docs)),
		zap.Int("skipped", b.skipped),
		zap.Int("terms", len(termDict)),
		zap.String("doc_table", docTablePath),
		zap.String("term_dict", termDictPath),
		zap.String("postings", postingsPath),
	)
	return nil
}

// sortedTerms returns the sorted union of terms over all fields.
func (b *Builder) sortedTerms() []string {
	seen := make(map[string]struct{})
	for _, f := range AllFields {
		for term := range b.postings[f] {
			seen[term] = struct{}{}
		}
	}
	terms := make([]string, 0, len(seen))
	for term := range seen {
		terms = append(terms, term)
	}
	sort.Strings(terms)
	return terms
}

func (b *Builder) writePostings(path string, terms []string) (map[string]*TermEntry, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, pserrors.NewIndexError("mkdir", path, err)
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, pserrors.NewIndexError("create", path, err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	termDict := make(map[string]*TermEntry, len(terms))

	var offset int64
	var buf []byte
	for _, term := range terms {
		entry := &TermEntry{}
		union := make(map[uint32]struct{})

		for _, field := range AllFields {
			plist, ok := b.postings[field][term]
			if !ok {
				continue
			}
			start := offset
			buf = buf[:0]
			for _, p := range plist {
				buf = appendPosting(buf, p)
				union[p.DocID] = struct{}{}
			}
			if _, err := w.Write(buf); err != nil {
				return nil, pserrors.NewIndexError("write", path, err)
			}
			offset += int64(len(buf))
			entry.setRef(field, &PostingsRef{Start: start, Length: len(plist)})
		}

		entry.DF = len(union)
		termDict[term] = entry
	}

	if err := w.Flush(); err != nil {
		return nil, pserrors.NewIndexError("write", path, err)
	}
	if err := f.Sync(); err != nil {
		return nil, pserrors.NewIndexError("sync", path, err)
	}
	return termDict, nil
}

func writeJSONArtifact(path string, v any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return f.Sync()
}
