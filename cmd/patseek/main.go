// patseek - field-weighted text retrieval over patent JSON documents.
//
// patseek builds a three-artifact inverted index (doc table, term
// dictionary, binary postings) and answers ranked keyword queries scored
// with BM25F. Queries support Boolean [AND], exact [PHRASE] matching on
// titles, [FIELD=…] restriction, and [VERBOSE] snippet highlighting.
//
// Usage:
//
//	patseek index ./corpus
//	patseek search "[AND] quantum key"
//	patseek serve --addr :8080
//	patseek            # interactive shell
package main

import (
	"fmt"
	"os"

	"github.com/patseek/patseek/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
