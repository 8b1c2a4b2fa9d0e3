// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gradmatch/gradmatch/internal/domain/model"
)

// defaultMaxLimit bounds ?limit when the server was built without one.
const defaultMaxLimit = 100

// MatchesDependencies defines the interface for match read operations.
type MatchesDependencies interface {
	// FindMatches runs the ranking pipeline for a project against the
	// full candidate pool.
	FindMatches(ctx context.Context, projectID string, limit int) ([]Match, Report, error)

	// ExplainMatch computes or re-reads one pair and breaks its score
	// down by dimension. The bool reports whether the result was already
	// cached.
	ExplainMatch(ctx context.Context, projectID, candidateID string) (model.MatchResult, model.Explanation, bool, error)
}

// MatchesHandler handles ranked match requests.
type MatchesHandler struct {
	deps     MatchesDependencies
	maxLimit int
}

// NewMatchesHandler creates a new matches handler.
func NewMatchesHandler(deps MatchesDependencies, maxLimit int) *MatchesHandler {
	if maxLimit < 1 {
		maxLimit = defaultMaxLimit
	}
	return &MatchesHandler{
		deps:     deps,
		maxLimit: maxLimit,
	}
}

// matchDetailResponse pairs one match result with its explanation.
type matchDetailResponse struct {
	Result      model.MatchResult `json:"result"`
	Explanation model.Explanation `json:"explanation"`
	CacheHit    bool              `json:"cache_hit"`
}

// HandleListMatches handles GET /projects/{id}/matches?limit=N requests.
func (h *MatchesHandler) HandleListMatches(w http.ResponseWriter, r *http.Request) {
	const op = "api.list_matches"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	parts := strings.Split(strings.TrimPrefix(r.URL.Path, "/projects/"), "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] != "matches" {
		writeError(w, http.StatusBadRequest, "bad_request", fmt.Errorf("%s: %w", op, ErrBadRequest))
		return
	}
	projectID := parts[0]
	limitStr := r.URL.Query().Get("limit")
	n, err := strconv.Atoi(limitStr)
	if err != nil || n < 1 {
		writeError(w, http.StatusBadRequest, "bad_request", fmt.Errorf("%s: %w", op, ErrBadRequest))
		return
	}
	if n > h.maxLimit {
		writeError(w, http.StatusBadRequest, "limit_exceeded", fmt.Errorf("%s: %w", op, ErrBadRequest))
		return
	}
	matches, report, err := h.deps.FindMatches(r.Context(), projectID, n)
	if err != nil {
		writeDomainError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, matchListResponse{
		ProjectID: projectID,
		Matches:   matches,
		Report:    report,
	})
}

// HandleGetMatch handles GET /projects/{id}/matches/{candidate_id} requests.
func (h *MatchesHandler) HandleGetMatch(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_match"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	parts := strings.Split(strings.TrimPrefix(r.URL.Path, "/projects/"), "/")
	if len(parts) != 3 || parts[0] == "" || parts[1] != "matches" || parts[2] == "" {
		writeError(w, http.StatusBadRequest, "bad_request", fmt.Errorf("%s: %w", op, ErrBadRequest))
		return
	}
	result, explanation, hit, err := h.deps.ExplainMatch(r.Context(), parts[0], parts[2])
	if err != nil {
		writeDomainError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, matchDetailResponse{
		Result:      result,
		Explanation: explanation,
		CacheHit:    hit,
	})
}
