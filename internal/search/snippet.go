package search

import (
	"sort"
	"strings"
	"unicode"

	"github.com/patseek/patseek/internal/constants"
	"github.com/patseek/patseek/internal/index"
)

// Snippet is one highlighted window of a document field.
type Snippet struct {
	Field index.Field `json:"field"`
	Text  string      `json:"text"`
}

// span is one term occurrence in rune coordinates.
type span struct {
	start int
	end   int
}

func lowerRunes(s string) []rune {
	rs := []rune(s)
	for i, r := range rs {
		rs[i] = unicode.ToLower(r)
	}
	return rs
}

// indexRunes finds needle in haystack starting at from, or -1.
func indexRunes(haystack, needle []rune, from int) int {
	if len(needle) == 0 || from < 0 {
		return -1
	}
	for i := from; i+len(needle) <= len(haystack); i++ {
		match := true
		for j := range needle {
			if haystack[i+j] != needle[j] {
				match = false
				break
			}
		}
		if match {
			return i
		}
	}
	return -1
}

// termSpans locates every case-insensitive occurrence of each term.
func termSpans(textLower []rune, terms []string) map[string][]span {
	out := make(map[string][]span, len(terms))
	for _, term := range terms {
		if _, dup := out[term]; dup {
			continue
		}
		needle := lowerRunes(term)
		var spans []span
		for from := 0; ; {
			i := indexRunes(textLower, needle, from)
			if i < 0 {
				break
			}
			spans = append(spans, span{start: i, end: i + len(needle)})
			from = i + 1
		}
		if len(spans) > 0 {
			out[term] = spans
		}
	}
	return out
}

// distinctInWindow counts terms with at least one occurrence wholly inside
// [start, start+width).
func distinctInWindow(spans map[string][]span, start, width int) int {
	count := 0
	for _, list := range spans {
		for _, sp := range list {
			if sp.start >= start && sp.end <= start+width {
				count++
				break
			}
		}
	}
	return count
}

// coveredInWindow returns the set of terms wholly inside the window.
func coveredInWindow(spans map[string][]span, start, width int) map[string]struct{} {
	out := make(map[string]struct{})
	for term, list := range spans {
		for _, sp := range list {
			if sp.start >= start && sp.end <= start+width {
				out[term] = struct{}{}
				break
			}
		}
	}
	return out
}

// bestWindow selects the W-rune window maximizing distinct query-term
// coverage. Clamped to text bounds and re-anchored so the window is exactly
// W runes whenever the text is long enough; ties prefer the earlier start.
func bestWindow(text string, terms []string) (start, width, distinct int) {
	runes := []rune(text)
	if len(runes) == 0 {
		return 0, 0, 0
	}

	width = constants.SnippetWindow
	if len(runes) < width {
		width = len(runes)
	}
	maxStart := len(runes) - width

	spans := termSpans(lowerRunes(text), terms)

	clamp := func(s int) int {
		if s < 0 {
			return 0
		}
		if s > maxStart {
			return maxStart
		}
		return s
	}

	candidates := map[int]struct{}{0: {}}
	for _, list := range spans {
		for _, sp := range list {
			candidates[clamp(sp.start)] = struct{}{}
			candidates[clamp(sp.end-width)] = struct{}{}
		}
	}

	starts := make([]int, 0, len(candidates))
	for s := range candidates {
		starts = append(starts, s)
	}
	sort.Ints(starts)

	bestStart, bestCount := 0, 0
	for _, s := range starts {
		if c := distinctInWindow(spans, s, width); c > bestCount {
			bestStart, bestCount = s, c
		}
	}
	return bestStart, width, bestCount
}

// Highlight wraps every query-term occurrence in text with <<…>> markers.
// Matching is case-insensitive and longest-match-first; regions already
// wrapped are copied verbatim, so highlighting is idempotent.
func Highlight(text string, terms []string) string {
	if text == "" || len(terms) == 0 {
		return text
	}

	// Longest first so overlapping terms never produce nested markup.
	ordered := make([]string, 0, len(terms))
	seen := make(map[string]struct{}, len(terms))
	for _, t := range terms {
		if t == "" {
			continue
		}
		if _, dup := seen[t]; dup {
			continue
		}
		seen[t] = struct{}{}
		ordered = append(ordered, t)
	}
	sort.SliceStable(ordered, func(i, j int) bool {
		return len([]rune(ordered[i])) > len([]rune(ordered[j]))
	})

	runes := []rune(text)
	lower := lowerRunes(text)
	openMark := []rune(constants.HighlightOpen)
	closeMark := []rune(constants.HighlightClose)

	var out []rune
	for i := 0; i < len(runes); {
		// Copy existing markup verbatim.
		if hasPrefixRunes(runes, i, openMark) {
			end := indexRunes(runes, closeMark, i+len(openMark))
			if end >= 0 {
				out = append(out, runes[i:end+len(closeMark)]...)
				i = end + len(closeMark)
				continue
			}
		}

		matched := false
		for _, term := range ordered {
			needle := lowerRunes(term)
			if hasPrefixRunes(lower, i, needle) {
				out = append(out, openMark...)
				out = append(out, runes[i:i+len(needle)]...)
				out = append(out, closeMark...)
				i += len(needle)
				matched = true
				break
			}
		}
		if !matched {
			out = append(out, runes[i])
			i++
		}
	}
	return string(out)
}

func hasPrefixRunes(rs []rune, at int, prefix []rune) bool {
	if at+len(prefix) > len(rs) {
		return false
	}
	for j := range prefix {
		if rs[at+j] != prefix[j] {
			return false
		}
	}
	return true
}

func sliceWindow(text string, start, width int) string {
	runes := []rune(text)
	if start > len(runes) {
		return ""
	}
	end := start + width
	if end > len(runes) {
		end = len(runes)
	}
	return string(runes[start:end])
}

// GenerateSnippets produces the per-mode snippet set for one result.
func GenerateSnippets(doc *index.Document, q *Query, terms []string) []Snippet {
	switch {
	case q.PhraseMode:
		return phraseSnippet(doc, q.Text)
	case q.AndMode:
		return andSnippets(doc, q.ActiveFields(), terms)
	default:
		return orSnippet(doc, q.ActiveFields(), terms)
	}
}

// orSnippet picks the single field whose best window covers the most
// distinct query terms.
func orSnippet(doc *index.Document, fields []index.Field, terms []string) []Snippet {
	var bestField index.Field
	var bestText string
	bestCount := 0

	for _, f := range fields {
		text := doc.Text(f)
		if text == "" {
			continue
		}
		start, width, count := bestWindow(text, terms)
		if count > bestCount {
			bestField = f
			bestText = sliceWindow(text, start, width)
			bestCount = count
		}
	}

	if bestCount == 0 {
		return nil
	}
	return []Snippet{{Field: bestField, Text: Highlight(bestText, terms)}}
}

// andSnippets emits one snippet per field, most-covering field first, until
// every query term has been shown or the fields run out.
func andSnippets(doc *index.Document, fields []index.Field, terms []string) []Snippet {
	type fieldWindow struct {
		field   index.Field
		text    string
		covered map[string]struct{}
	}

	windows := make([]fieldWindow, 0, len(fields))
	for _, f := range fields {
		text := doc.Text(f)
		if text == "" {
			continue
		}
		start, width, count := bestWindow(text, terms)
		if count == 0 {
			continue
		}
		spans := termSpans(lowerRunes(text), terms)
		windows = append(windows, fieldWindow{
			field:   f,
			text:    sliceWindow(text, start, width),
			covered: coveredInWindow(spans, start, width),
		})
	}

	// Descending covered-term count; canonical field order breaks ties.
	sort.SliceStable(windows, func(i, j int) bool {
		return len(windows[i].covered) > len(windows[j].covered)
	})

	needed := make(map[string]struct{}, len(terms))
	for _, t := range terms {
		needed[t] = struct{}{}
	}

	var out []Snippet
	shown := make(map[string]struct{})
	for _, w := range windows {
		contributes := false
		for term := range w.covered {
			if _, have := shown[term]; !have {
				contributes = true
				break
			}
		}
		if !contributes {
			continue
		}
		out = append(out, Snippet{Field: w.field, Text: Highlight(w.text, terms)})
		for term := range w.covered {
			shown[term] = struct{}{}
		}
		if len(shown) >= len(needed) {
			break
		}
	}
	return out
}

// phraseSnippet centers the window on the exact phrase match in the title.
func phraseSnippet(doc *index.Document, phrase string) []Snippet {
	text := doc.TextT
	runes := []rune(text)
	needle := lowerRunes(strings.TrimSpace(phrase))
	if len(needle) == 0 {
		return nil
	}

	p := indexRunes(lowerRunes(text), needle, 0)
	if p < 0 {
		return nil
	}
	L := len(needle)

	w := constants.SnippetWindow
	start := p + L/2 - w/2
	if start < 0 {
		start = 0
	}
	if len(runes) <= w {
		start = 0
	} else if start > len(runes)-w {
		start = len(runes) - w
	}

	window := sliceWindow(text, start, w)
	return []Snippet{{
		Field: index.FieldTitle,
		Text:  Highlight(window, []string{strings.TrimSpace(phrase)}),
	}}
}
