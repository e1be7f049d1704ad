package index

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/patseek/patseek/internal/cache"
	"github.com/patseek/patseek/internal/constants"
	pserrors "github.com/patseek/patseek/internal/errors"
)

// Index is the query-time view of a committed index: the doc table and term
// dictionary in RAM, plus a random-access handle on the postings file.
// Postings lists are materialized on demand and cached per (term, field);
// the searcher clears the cache at the start of every top-level query.
type Index struct {
	meta  Metadata
	docs  map[int]*Document
	terms map[string]*TermEntry

	postings *os.File
	cache    *cache.PostingsCache
}

// Open loads the doc table and term dictionary and opens the postings file.
// Any missing artifact is fatal: the searcher refuses to initialize.
func Open(docTablePath, termDictPath, postingsPath string) (*Index, error) {
	var table docTableArtifact
	if err := readJSONArtifact(docTablePath, &table); err != nil {
		return nil, pserrors.NewIndexError("open", docTablePath, err)
	}

	terms := make(map[string]*TermEntry)
	if err := readJSONArtifact(termDictPath, &terms); err != nil {
		return nil, pserrors.NewIndexError("open", termDictPath, err)
	}

	pf, err := os.Open(postingsPath)
	if err != nil {
		return nil, pserrors.NewIndexError("open", postingsPath, err)
	}

	docs := make(map[int]*Document, len(table.Documents))
	for key, doc := range table.Documents {
		id, err := strconv.Atoi(key)
		if err != nil {
			pf.Close()
			return nil, pserrors.NewIndexError("open", docTablePath, fmt.Errorf("bad doc_id key %q", key))
		}
		docs[id] = doc
	}

	return &Index{
		meta:     table.Metadata,
		docs:     docs,
		terms:    terms,
		postings: pf,
		cache:    cache.NewPostingsCache(constants.PostingsCacheCapacity),
	}, nil
}

// Close releases the postings file handle.
func (ix *Index) Close() error {
	return ix.postings.Close()
}

// Stats returns the index-wide metadata.
func (ix *Index) Stats() Metadata { return ix.meta }

// NumDocs returns N.
func (ix *Index) NumDocs() int { return ix.meta.TotalDocs }

// DF returns the global document frequency of term.
func (ix *Index) DF(term string) (int, bool) {
	entry, ok := ix.terms[term]
	if !ok {
		return 0, false
	}
	return entry.DF, true
}

// HasTerm reports whether term exists in the dictionary.
func (ix *Index) HasTerm(term string) bool {
	_, ok := ix.terms[term]
	return ok
}

// Terms returns every dictionary term. Used for query suggestions.
func (ix *Index) Terms() []string {
	out := make([]string, 0, len(ix.terms))
	for term := range ix.terms {
		out = append(out, term)
	}
	return out
}

// Doc returns the document record for id.
func (ix *Index) Doc(id int) (*Document, bool) {
	doc, ok := ix.docs[id]
	return doc, ok
}

// Postings returns the doc_id -> tf mapping of term in field. The empty map
// case (term absent from the field) returns nil with no error. A short read
// from the postings file is a CorruptIndexError and aborts the query.
func (ix *Index) Postings(term string, field Field) (map[int]int, error) {
	entry, ok := ix.terms[term]
	if !ok {
		return nil, nil
	}
	ref := entry.Ref(field)
	if ref == nil || ref.Length == 0 {
		return nil, nil
	}

	key := cache.Key(term, string(field))
	if cached, ok := ix.cache.Get(key); ok {
		return cached, nil
	}

	raw := make([]byte, ref.Length*constants.PostingSize)
	n, err := ix.postings.ReadAt(raw, ref.Start)
	if err != nil && err != io.EOF {
		return nil, pserrors.NewIndexError("read", ix.postings.Name(), err)
	}
	if n < len(raw) {
		return nil, pserrors.NewCorruptIndexError(ref.Start, len(raw), n)
	}

	plist, err := decodePostings(raw, ref.Length, ref.Start)
	if err != nil {
		return nil, err
	}

	out := make(map[int]int, len(plist))
	for _, p := range plist {
		out[int(p.DocID)] = int(p.TF)
	}
	ix.cache.Put(key, out)
	return out, nil
}

// ClearCache drops all cached postings. Called at the start of each
// top-level query to keep session memory bounded.
func (ix *Index) ClearCache() {
	ix.cache.Clear()
}

// CacheStats exposes postings cache counters.
func (ix *Index) CacheStats() cache.Stats {
	return ix.cache.Stats()
}

func readJSONArtifact(path string, v any) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return json.NewDecoder(f).Decode(v)
}
