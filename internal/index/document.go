// Package index implements the on-disk inverted index: the builder that
// writes the doc table, term dictionary and postings artifacts, and the
// loader that serves random-access postings reads at query time.
package index

import "path/filepath"

// Field identifies one of the three document fields.
type Field string

const (
	FieldTitle    Field = "T"
	FieldAbstract Field = "A"
	FieldClaims   Field = "C"
)

// AllFields lists the fields in canonical T, A, C order.
var AllFields = []Field{FieldTitle, FieldAbstract, FieldClaims}

// Name returns the display name used in snippet headers.
func (f Field) Name() string {
	switch f {
	case FieldTitle:
		return "TITLE"
	case FieldAbstract:
		return "ABSTRACT"
	case FieldClaims:
		return "CLAIMS"
	}
	return string(f)
}

// Document is one corpus document as stored in the doc table.
type Document struct {
	DocID   int    `json:"doc_id"`
	RelPath string `json:"relpath"`

	LenT int `json:"len_T"`
	LenA int `json:"len_A"`
	LenC int `json:"len_C"`

	TextT string `json:"text_T"`
	TextA string `json:"text_A"`
	TextC string `json:"text_C"`
}

// Len returns the token count of field f.
func (d *Document) Len(f Field) int {
	switch f {
	case FieldTitle:
		return d.LenT
	case FieldAbstract:
		return d.LenA
	case FieldClaims:
		return d.LenC
	}
	return 0
}

// Text returns the raw original text of field f.
func (d *Document) Text(f Field) string {
	switch f {
	case FieldTitle:
		return d.TextT
	case FieldAbstract:
		return d.TextA
	case FieldClaims:
		return d.TextC
	}
	return ""
}

// Filename returns the base name of the source file, used in result output.
func (d *Document) Filename() string {
	return filepath.Base(d.RelPath)
}

// Metadata holds the index-wide statistics stored in the doc table.
type Metadata struct {
	AvgdlT    float64 `json:"avgdl_T"`
	AvgdlA    float64 `json:"avgdl_A"`
	AvgdlC    float64 `json:"avgdl_C"`
	TotalDocs int     `json:"total_docs"`
}

// Avgdl returns the mean length of field f across the corpus.
func (m Metadata) Avgdl(f Field) float64 {
	switch f {
	case FieldTitle:
		return m.AvgdlT
	case FieldAbstract:
		return m.AvgdlA
	case FieldClaims:
		return m.AvgdlC
	}
	return 0
}

// PostingsRef locates one per-field postings list inside postings.bin.
type PostingsRef struct {
	// Start is the byte offset of the first posting.
	Start int64 `json:"start"`
	// Length is the number of posting entries, not bytes.
	Length int `json:"length"`
}

// TermEntry is one term dictionary record. A field slot is nil when the term
// never appears in that field.
type TermEntry struct {
	DF int          `json:"df"`
	T  *PostingsRef `json:"T,omitempty"`
	A  *PostingsRef `json:"A,omitempty"`
	C  *PostingsRef `json:"C,omitempty"`
}

// Ref returns the postings reference for field f, or nil.
func (e *TermEntry) Ref(f Field) *PostingsRef {
	switch f {
	case FieldTitle:
		return e.T
	case FieldAbstract:
		return e.A
	case FieldClaims:
		return e.C
	}
	return nil
}

func (e *TermEntry) setRef(f Field, ref *PostingsRef) {
	switch f {
	case FieldTitle:
		e.T = ref
	case FieldAbstract:
		e.A = ref
	case FieldClaims:
		e.C = ref
	}
}

// docTableArtifact is the JSON shape of doc_table.json.
type docTableArtifact struct {
	Metadata  Metadata             `json:"metadata"`
	Documents map[string]*Document `json:"documents"`
}
