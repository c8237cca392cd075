package server

import (
	"encoding/json"
	"net/http"
	"strconv"

	"enrichly/internal/core"

	"github.com/go-chi/chi/v5"
)

// BatchRewriteRequest is the payload for POST /api/rewrite/batch.
type BatchRewriteRequest struct {
	ArticleIDs []string            `json:"article_ids"`
	Options    core.RewriteOptions `json:"options"`
	BatchSize  int                 `json:"batch_size"`
}

// CandidatesResponse is the payload for GET /api/candidates.
type CandidatesResponse struct {
	ArticleIDs []string `json:"article_ids"`
	Total      int      `json:"total"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// handleHealth handles GET /health
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleRewriteArticle handles POST /api/articles/{articleID}/rewrite.
// The body is a core.RewriteOptions object and may be empty.
func (s *Server) handleRewriteArticle(w http.ResponseWriter, r *http.Request) {
	articleID := chi.URLParam(r, "articleID")
	if articleID == "" {
		s.respondError(w, http.StatusBadRequest, "article id is required")
		return
	}

	var opts core.RewriteOptions
	if r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&opts); err != nil {
			s.respondError(w, http.StatusBadRequest, "invalid JSON payload")
			return
		}
	}

	result := s.rewriter.RewriteArticle(r.Context(), articleID, opts)

	// The pipeline reports failures in the result rather than via errors;
	// the HTTP status mirrors the outcome for easy dashboard filtering.
	status := http.StatusOK
	if !result.Success {
		status = http.StatusUnprocessableEntity
	}
	s.respondJSON(w, status, result)
}

// handleRewriteBatch handles POST /api/rewrite/batch
func (s *Server) handleRewriteBatch(w http.ResponseWriter, r *http.Request) {
	var req BatchRewriteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}
	if len(req.ArticleIDs) == 0 {
		s.respondError(w, http.StatusBadRequest, "article_ids is required")
		return
	}

	results := s.rewriter.RewriteBatch(r.Context(), req.ArticleIDs, req.Options, req.BatchSize)
	s.respondJSON(w, http.StatusOK, results)
}

// handleCandidates handles GET /api/candidates?limit=N&all_statuses=bool
func (s *Server) handleCandidates(w http.ResponseWriter, r *http.Request) {
	limit := 10
	if v := r.URL.Query().Get("limit"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed < 1 {
			s.respondError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = parsed
	}

	includeAll := r.URL.Query().Get("all_statuses") == "true"

	ids, err := s.rewriter.Candidates(limit, includeAll)
	if err != nil {
		s.log.Error("Failed to select candidates", "error", err)
		s.respondError(w, http.StatusInternalServerError, "failed to select candidates")
		return
	}

	s.respondJSON(w, http.StatusOK, CandidatesResponse{
		ArticleIDs: ids,
		Total:      len(ids),
	})
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.log.Error("Failed to encode response", "error", err)
	}
}

func (s *Server) respondError(w http.ResponseWriter, status int, message string) {
	s.respondJSON(w, status, errorResponse{Error: message})
}
