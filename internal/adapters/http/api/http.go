// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gradmatch/gradmatch/internal/adapters/mq/queue"
	"github.com/gradmatch/gradmatch/internal/adapters/repository"
	"github.com/gradmatch/gradmatch/internal/domain/ranking"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	MatchesDependencies
	WarmDependencies
}

// Match mirrors the ranked read shape returned by pipeline queries.
type Match = ranking.Match

// Report mirrors the run accounting returned alongside a ranked list.
type Report = ranking.Report

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler  *HealthHandler
	statsHandler   *StatsHandler
	matchesHandler *MatchesHandler
	warmHandler    *WarmHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider, maxLimit int) *Server {
	return &Server{
		healthHandler:  NewHealthHandler(),
		statsHandler:   NewStatsHandler(statsProvider),
		matchesHandler: NewMatchesHandler(deps, maxLimit),
		warmHandler:    NewWarmHandler(deps),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(ctx context.Context, mux *http.ServeMux) {
	// Specific paths first (most specific to least specific)
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/metrics", s.healthHandler.HandleMetrics)
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/projects/", s.routeProjects)
}

// routeProjects fans the /projects/ subtree out to its handlers. All three
// routes share one prefix, so the mux cannot split them itself.
func (s *Server) routeProjects(w http.ResponseWriter, r *http.Request) {
	parts := strings.Split(strings.TrimPrefix(r.URL.Path, "/projects/"), "/")
	switch {
	case len(parts) == 2 && parts[1] == "matches":
		MetricsMiddleware(s.matchesHandler.HandleListMatches, "project_matches")(w, r)
	case len(parts) == 3 && parts[1] == "matches":
		MetricsMiddleware(s.matchesHandler.HandleGetMatch, "project_match_detail")(w, r)
	case len(parts) == 2 && parts[1] == "warm":
		MetricsMiddleware(s.warmHandler.HandleWarmProject, "project_warm")(w, r)
	default:
		http.NotFound(w, r)
	}
}

// matchListResponse is the read shape for GET /projects/{id}/matches.
type matchListResponse struct {
	ProjectID string  `json:"project_id"`
	Matches   []Match `json:"matches"`
	Report    Report  `json:"report"`
}

// warmResponse acknowledges an accepted cache warming request.
type warmResponse struct {
	Status string `json:"status"`
	Queued int    `json:"queued"`
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// writeDomainError translates upstream sentinel errors into HTTP statuses.
// Anything unrecognized is a 500.
func writeDomainError(w http.ResponseWriter, op string, err error) {
	wrapped := fmt.Errorf("%s: %w", op, err)
	switch {
	case errors.Is(err, ranking.ErrInvalidInput):
		writeError(w, http.StatusBadRequest, "bad_request", wrapped)
	case errors.Is(err, repository.ErrProjectNotFound),
		errors.Is(err, repository.ErrCandidateNotFound),
		errors.Is(err, repository.ErrDocumentNotFound):
		writeError(w, http.StatusNotFound, "not_found", wrapped)
	case errors.Is(err, queue.ErrQueueFull):
		writeError(w, http.StatusTooManyRequests, "backpressure", wrapped)
	case errors.Is(err, queue.ErrQueueClosed):
		writeError(w, http.StatusServiceUnavailable, "unavailable", wrapped)
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", wrapped)
	}
}
