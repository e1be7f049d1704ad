// Package corpus reads patent-like JSON documents from a directory tree.
//
// Each document file has the shape
//
//	{"dataset": {"invention_title": "...", "abstract": "...", "claims": "..."}}
//
// with every field optional. Both plain .json files and gzip-compressed
// .json.gz files are accepted.
package corpus

import (
	"encoding/json"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/gzip"
)

// Record is one document yielded by the reader.
type Record struct {
	// RelPath is the path of the source file relative to the corpus root.
	RelPath string

	Title    string
	Abstract string
	Claims   string
}

type documentFile struct {
	Dataset struct {
		InventionTitle string `json:"invention_title"`
		Abstract       string `json:"abstract"`
		Claims         string `json:"claims"`
	} `json:"dataset"`
}

// Walk visits every document under root in lexical order and calls fn for
// each successfully parsed record. Files that fail to parse are reported
// through onSkip and skipped; the walk itself continues. I/O errors from the
// filesystem abort the walk.
func Walk(root string, fn func(Record) error, onSkip func(path string, err error)) error {
	root = filepath.Clean(root)

	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !isDocumentFile(path) {
			return nil
		}

		rec, err := readDocument(root, path)
		if err != nil {
			if onSkip != nil {
				onSkip(path, err)
			}
			return nil
		}
		return fn(rec)
	})
}

func isDocumentFile(path string) bool {
	return strings.HasSuffix(path, ".json") || strings.HasSuffix(path, ".json.gz")
}

func readDocument(root, path string) (Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return Record{}, err
	}
	defer f.Close()

	var r io.Reader = f
	if strings.HasSuffix(path, ".gz") {
		gz, err := gzip.NewReader(f)
		if err != nil {
			return Record{}, fmt.Errorf("gzip open: %w", err)
		}
		defer gz.Close()
		r = gz
	}

	var doc documentFile
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return Record{}, fmt.Errorf("parse document: %w", err)
	}

	rel, err := filepath.Rel(root, path)
	if err != nil {
		rel = path
	}

	return Record{
		RelPath:  rel,
		Title:    doc.Dataset.InventionTitle,
		Abstract: doc.Dataset.Abstract,
		Claims:   doc.Dataset.Claims,
	}, nil
}
