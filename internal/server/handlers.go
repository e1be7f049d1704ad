package server

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	pserrors "github.com/patseek/patseek/internal/errors"
	"github.com/patseek/patseek/internal/search"
)

// searchResponse is the JSON shape of /v1/search.
type searchResponse struct {
	Query   string         `json:"query"`
	Total   int            `json:"total"`
	Results []searchResult `json:"results"`
}

type searchResult struct {
	DocID    int              `json:"doc_id"`
	Filename string           `json:"filename"`
	RelPath  string           `json:"relpath"`
	Score    float64          `json:"score"`
	Snippets []search.Snippet `json:"snippets,omitempty"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status": "ok",
		"docs":   s.ix.NumDocs(),
	})
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	if query == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "missing q parameter"})
		return
	}

	out, err := s.searcher.Search(query)
	if err != nil {
		if _, ok := err.(*pserrors.QueryError); ok {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
			return
		}
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
		return
	}

	resp := searchResponse{
		Query:   query,
		Total:   out.Total,
		Results: make([]searchResult, 0, len(out.Results)),
	}
	limit := parseLimit(r.URL.Query().Get("limit"), len(out.Results))
	for _, res := range out.Results[:limit] {
		resp.Results = append(resp.Results, searchResult{
			DocID:    res.Doc.DocID,
			Filename: res.Doc.Filename(),
			RelPath:  res.Doc.RelPath,
			Score:    res.Score,
			Snippets: res.Snippets,
		})
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleDoc(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "doc id must be an integer"})
		return
	}

	doc, ok := s.ix.Doc(id)
	if !ok {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "document not found"})
		return
	}
	writeJSON(w, http.StatusOK, doc)
}

func parseLimit(raw string, upper int) int {
	if raw == "" {
		return upper
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 || n > upper {
		return upper
	}
	return n
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
