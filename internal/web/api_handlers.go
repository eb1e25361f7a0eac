package web

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/evcraddock/comment-analyzer/internal/analysis"
	"github.com/evcraddock/comment-analyzer/internal/lang"
)

// apiError writes a JSON error response.
func apiError(w http.ResponseWriter, msg string, code int) {
	apiJSON(w, map[string]string{"error": msg}, code)
}

// apiJSON writes a JSON response with the given status code.
func apiJSON(w http.ResponseWriter, data interface{}, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		http.Error(w, `{"error":"encode failed"}`, http.StatusInternalServerError)
	}
}

// CreateRequest is the body of POST /api/analyses.
type CreateRequest struct {
	Name     string `json:"name"`
	Language string `json:"language,omitempty"`
	Content  string `json:"content"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	apiJSON(w, map[string]string{"status": "ok"}, http.StatusOK)
}

// analysisID parses the {id} URL parameter, writing a 400 on failure.
func analysisID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id < 1 {
		apiError(w, "invalid analysis ID", http.StatusBadRequest)
		return 0, false
	}
	return id, true
}

// parseLanguage resolves an optional language token. Empty means detect.
func parseLanguage(id string) (lang.Language, bool) {
	if id == "" {
		return lang.Unknown, true
	}
	l := lang.Parse(id)
	return l, l != lang.Unknown
}

// apiListAnalyses returns stored analyses, newest first.
func (s *Server) apiListAnalyses(w http.ResponseWriter, r *http.Request) {
	opts := analysis.ListOptions{}
	if id := r.URL.Query().Get("language"); id != "" {
		l, ok := parseLanguage(id)
		if !ok {
			apiError(w, "unsupported language: "+id, http.StatusBadRequest)
			return
		}
		opts.Language = l
	}

	analyses, err := s.repo.List(opts)
	if err != nil {
		apiError(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if analyses == nil {
		analyses = []*analysis.Analysis{}
	}
	apiJSON(w, analyses, http.StatusOK)
}

// apiCreateAnalysis analyzes a submitted document and stores the report.
func (s *Server) apiCreateAnalysis(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.maxBody)

	var req CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			apiError(w, fmt.Sprintf("request body exceeds %d bytes", tooLarge.Limit), http.StatusRequestEntityTooLarge)
			return
		}
		apiError(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	if req.Name == "" {
		apiError(w, "name is required", http.StatusBadRequest)
		return
	}
	l, ok := parseLanguage(req.Language)
	if !ok {
		apiError(w, "unsupported language: "+req.Language, http.StatusBadRequest)
		return
	}

	a, err := s.svc.Analyze(req.Name, []byte(req.Content), l)
	if err != nil {
		apiError(w, err.Error(), http.StatusInternalServerError)
		return
	}
	apiJSON(w, a, http.StatusCreated)
}

// apiGetAnalysis returns one analysis with its comments.
func (s *Server) apiGetAnalysis(w http.ResponseWriter, r *http.Request) {
	id, ok := analysisID(w, r)
	if !ok {
		return
	}

	d, err := s.repo.GetDetail(id)
	if errors.Is(err, analysis.ErrNotFound) {
		apiError(w, "analysis not found", http.StatusNotFound)
		return
	}
	if err != nil {
		apiError(w, err.Error(), http.StatusInternalServerError)
		return
	}
	apiJSON(w, d, http.StatusOK)
}

// apiListWords returns the word histogram of an analysis.
func (s *Server) apiListWords(w http.ResponseWriter, r *http.Request) {
	id, ok := analysisID(w, r)
	if !ok {
		return
	}

	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			apiError(w, "limit must be a non-negative integer", http.StatusBadRequest)
			return
		}
		limit = n
	}

	exists, err := s.repo.Exists(id)
	if err != nil {
		apiError(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if !exists {
		apiError(w, "analysis not found", http.StatusNotFound)
		return
	}

	words, err := s.repo.ListWords(id, limit)
	if err != nil {
		apiError(w, err.Error(), http.StatusInternalServerError)
		return
	}
	apiJSON(w, words, http.StatusOK)
}

// apiDeleteAnalysis removes an analysis.
func (s *Server) apiDeleteAnalysis(w http.ResponseWriter, r *http.Request) {
	id, ok := analysisID(w, r)
	if !ok {
		return
	}

	if err := s.repo.Delete(id); errors.Is(err, analysis.ErrNotFound) {
		apiError(w, "analysis not found", http.StatusNotFound)
		return
	} else if err != nil {
		apiError(w, err.Error(), http.StatusInternalServerError)
		return
	}
	apiJSON(w, map[string]string{"status": "deleted"}, http.StatusOK)
}
