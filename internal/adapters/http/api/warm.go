// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"fmt"
	"net/http"
	"strings"
)

// WarmDependencies defines the interface for cache warming operations.
type WarmDependencies interface {
	// WarmProject enqueues one precompute job per candidate for the
	// project and returns how many were queued. A full queue surfaces as
	// an error wrapping queue.ErrQueueFull.
	WarmProject(ctx context.Context, projectID string) (int, error)
}

// WarmHandler handles cache warming requests.
type WarmHandler struct {
	deps WarmDependencies
}

// NewWarmHandler creates a new warm handler.
func NewWarmHandler(deps WarmDependencies) *WarmHandler {
	return &WarmHandler{deps: deps}
}

// HandleWarmProject handles POST /projects/{id}/warm requests.
func (h *WarmHandler) HandleWarmProject(w http.ResponseWriter, r *http.Request) {
	const op = "api.warm_project"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	parts := strings.Split(strings.TrimPrefix(r.URL.Path, "/projects/"), "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] != "warm" {
		writeError(w, http.StatusBadRequest, "bad_request", fmt.Errorf("%s: %w", op, ErrBadRequest))
		return
	}
	queued, err := h.deps.WarmProject(r.Context(), parts[0])
	if err != nil {
		writeDomainError(w, op, err)
		return
	}
	writeJSON(w, http.StatusAccepted, warmResponse{Status: "accepted", Queued: queued})
}
