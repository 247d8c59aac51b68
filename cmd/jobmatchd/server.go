package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	jobmatch "github.com/talentgrid/jobmatch"
	"github.com/talentgrid/jobmatch/core"
	"github.com/talentgrid/jobmatch/search"
)

// server exposes the matcher over a small JSON API:
//
//	GET  /health       liveness check
//	POST /index/build  rebuild the index from the configured corpus
//	POST /search       rank jobs against resume text
type server struct {
	matcher *jobmatch.Matcher
	logger  *slog.Logger
}

func newServer(matcher *jobmatch.Matcher) *server {
	return &server{
		matcher: matcher,
		logger:  slog.Default().With("component", "http"),
	}
}

func (s *server) listenAndServe(addr string) error {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("POST /index/build", s.handleBuild)
	mux.HandleFunc("POST /search", s.handleSearch)

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return srv.ListenAndServe()
}

type buildRequest struct {
	Corpus string `json:"corpus"`
}

type searchRequest struct {
	Query string `json:"query"`
	TopK  int    `json:"top_k"`
	Role  string `json:"role"`
}

type searchResultPayload struct {
	Id           int64   `json:"id"`
	Title        string  `json:"title"`
	Company      string  `json:"company"`
	Location     string  `json:"location"`
	Skills       string  `json:"skills,omitempty"`
	URL          string  `json:"url,omitempty"`
	Score        float32 `json:"score"`
	Similarity   float32 `json:"similarity"`
	SkillOverlap float32 `json:"skillOverlap"`
}

func (s *server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"status": "ok"})
}

func (s *server) handleBuild(w http.ResponseWriter, r *http.Request) {
	var req buildRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, fmt.Errorf("invalid request body: %w", err))
		return
	}
	if req.Corpus == "" {
		s.writeError(w, http.StatusBadRequest, errors.New("missing 'corpus' field in request body"))
		return
	}

	count, err := s.matcher.BuildIndex(r.Context(), req.Corpus)
	if err != nil {
		s.logger.Error("error building index", "err", err)
		s.writeError(w, http.StatusInternalServerError, fmt.Errorf("failed to build index: %w", err))
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"status":    "success",
		"message":   fmt.Sprintf("Index built successfully with %d jobs", count),
		"job_count": count,
	})
}

func (s *server) handleSearch(w http.ResponseWriter, r *http.Request) {
	var req searchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, fmt.Errorf("invalid request body: %w", err))
		return
	}
	if req.Query == "" {
		s.writeError(w, http.StatusBadRequest, errors.New("missing 'query' field in request body"))
		return
	}

	role, err := core.ParseRole(req.Role)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}

	resp, err := s.matcher.Search(r.Context(), req.Query, req.TopK, role)
	if err != nil {
		if errors.Is(err, search.ErrNoIndex) {
			s.writeError(w, http.StatusBadRequest, errors.New("index not built, call /index/build first"))
			return
		}
		s.logger.Error("error during search", "err", err)
		s.writeError(w, http.StatusInternalServerError, fmt.Errorf("search failed: %w", err))
		return
	}

	results := make([]searchResultPayload, len(resp.Results))
	for i, hit := range resp.Results {
		results[i] = searchResultPayload{
			Id:           hit.Job.Id,
			Title:        hit.Job.Title,
			Company:      hit.Job.Company,
			Location:     hit.Job.Location,
			Skills:       hit.Job.Skills,
			URL:          hit.Job.URL,
			Score:        hit.Score,
			Similarity:   hit.Similarity,
			SkillOverlap: hit.SkillOverlap,
		}
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "success",
		"role":    resp.Role,
		"count":   len(results),
		"results": results,
	})
}

func (s *server) writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]any{
		"status":  "error",
		"message": err.Error(),
	})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		slog.Error("error encoding response", "err", err)
	}
}
