package search

import (
	"fmt"
	"io"

	"github.com/sahilm/fuzzy"
	"go.uber.org/zap"

	"github.com/patseek/patseek/internal/constants"
	"github.com/patseek/patseek/internal/index"
	"github.com/patseek/patseek/internal/tokenizer"
)

// Result is one ranked document with its optional snippets.
type Result struct {
	Doc      *index.Document
	Score    float64
	Snippets []Snippet
}

// Output is the complete answer to one query.
type Output struct {
	Query       *Query
	Total       int
	Results     []Result
	Suggestions []string
}

// Searcher evaluates parsed queries against a loaded index.
type Searcher struct {
	ix   *index.Index
	log  *zap.Logger
	topK int
}

// NewSearcher creates a searcher over ix printing topK results per query.
func NewSearcher(ix *index.Index, log *zap.Logger, topK int) *Searcher {
	if log == nil {
		log = zap.NewNop()
	}
	if topK <= 0 {
		topK = constants.DefaultTopK
	}
	return &Searcher{ix: ix, log: log, topK: topK}
}

// Search runs the full pipeline for one query line: parse, validate,
// resolve, score, rank and (in verbose mode) generate snippets. The postings
// cache is cleared at the start of every call.
func (s *Searcher) Search(input string) (*Output, error) {
	q := Parse(input)
	if err := q.Validate(); err != nil {
		return nil, err
	}

	s.ix.ClearCache()

	terms := tokenizer.Tokenize(q.Text)
	out := &Output{Query: q}
	if len(terms) == 0 {
		return out, nil
	}

	r := &resolver{ix: s.ix}
	candidates, err := r.resolve(q, terms)
	if err != nil {
		return nil, err
	}

	if len(candidates) == 0 {
		out.Suggestions = s.suggest(terms)
		return out, nil
	}

	sc := &scorer{ix: s.ix}
	ranked, err := sc.rank(candidates, terms, q.ActiveFields())
	if err != nil {
		return nil, err
	}

	out.Total = len(ranked)
	top := ranked
	if len(top) > s.topK {
		top = top[:s.topK]
	}
	for _, rd := range top {
		res := Result{Doc: rd.doc, Score: rd.score}
		if q.Verbose {
			res.Snippets = GenerateSnippets(rd.doc, q, terms)
		}
		out.Results = append(out.Results, res)
	}

	s.log.Debug("query evaluated",
		zap.String("query", input),
		zap.Int("candidates", len(candidates)),
		zap.Int("returned", len(out.Results)),
	)
	return out, nil
}

// suggest offers dictionary terms close to the unknown query terms. Only
// consulted when the query matched nothing.
func (s *Searcher) suggest(terms []string) []string {
	for _, t := range terms {
		if s.ix.HasTerm(t) {
			// At least one term is known; the empty result is real.
			return nil
		}
	}

	dictionary := s.ix.Terms()
	var out []string
	seen := make(map[string]struct{})
	for _, t := range terms {
		matches := fuzzy.Find(t, dictionary)
		for i := 0; i < len(matches) && i < 1; i++ {
			cand := dictionary[matches[i].Index]
			if _, dup := seen[cand]; dup {
				continue
			}
			seen[cand] = struct{}{}
			out = append(out, cand)
			if len(out) >= constants.MaxSuggestions {
				return out
			}
		}
	}
	return out
}

// Render prints the result block in the fixed terminal format.
func (s *Searcher) Render(w io.Writer, out *Output) {
	fmt.Fprintln(w, "RESULT:")
	fmt.Fprintf(w, "검색어 입력: %s\n", out.Query.Raw)
	fmt.Fprintf(w, "총 %d개 문서 검색\n", out.Total)

	topN := len(out.Results)
	fmt.Fprintf(w, "상위 %d개 문서:\n", topN)
	for _, res := range out.Results {
		fmt.Fprintf(w, "  %s  %.2f\n", res.Doc.Filename(), res.Score)
	}

	if out.Query.Verbose && len(out.Results) > 0 {
		fmt.Fprintln(w)
		for _, res := range out.Results {
			fmt.Fprintln(w, constants.ResultDivider)
			fmt.Fprintf(w, "파일명: %s, 점수: %.2f\n", res.Doc.Filename(), res.Score)
			for _, sn := range res.Snippets {
				fmt.Fprintf(w, "[%s] %s\n", sn.Field.Name(), sn.Text)
			}
		}
		fmt.Fprintln(w, constants.ResultDivider)
	}

	if len(out.Suggestions) > 0 {
		fmt.Fprintf(w, "혹시 이것을 찾으셨나요? %v\n", out.Suggestions)
	}
}
