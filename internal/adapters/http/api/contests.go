// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	service "github.com/echolearn/arena/internal/app"
)

// ContestsHandler handles the contest catalog, submissions and stats.
type ContestsHandler struct {
	deps Dependencies
}

// NewContestsHandler creates a new contests handler.
func NewContestsHandler(deps Dependencies) *ContestsHandler {
	return &ContestsHandler{deps: deps}
}

// HandleList handles GET /contests requests.
func (h *ContestsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	userID, ok := userFromRequest(w, r)
	if !ok {
		return
	}
	contests, err := h.deps.ListContests(r.Context(), userID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, contests)
}

// HandleContestPath dispatches the /contests/ subtree:
//
//	GET  /contests/stats
//	GET  /contests/{id}
//	POST /contests/{id}/submit
//	GET  /contests/{id}/discussions
func (h *ContestsHandler) HandleContestPath(w http.ResponseWriter, r *http.Request) {
	rest := strings.Trim(strings.TrimPrefix(r.URL.Path, "/contests/"), "/")
	parts := strings.Split(rest, "/")

	switch {
	case len(parts) == 1 && parts[0] == "stats":
		h.handleStats(w, r)
	case len(parts) == 1 && parts[0] != "":
		h.handleGet(w, r, parts[0])
	case len(parts) == 2 && parts[1] == "submit":
		h.handleSubmit(w, r, parts[0])
	case len(parts) == 2 && parts[1] == "discussions":
		h.handleDiscussions(w, r, parts[0])
	default:
		http.NotFound(w, r)
	}
}

func (h *ContestsHandler) handleGet(w http.ResponseWriter, r *http.Request, contestID string) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	userID, ok := userFromRequest(w, r)
	if !ok {
		return
	}
	detail, err := h.deps.GetContest(r.Context(), userID, contestID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, detail)
}

func (h *ContestsHandler) handleSubmit(w http.ResponseWriter, r *http.Request, contestID string) {
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	userID, ok := userFromRequest(w, r)
	if !ok {
		return
	}

	var req SubmitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", ErrBadRequest)
		return
	}

	result, err := h.deps.Submit(r.Context(), userID, contestID, req)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (h *ContestsHandler) handleStats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	userID, ok := userFromRequest(w, r)
	if !ok {
		return
	}
	stats, err := h.deps.Stats(r.Context(), userID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func (h *ContestsHandler) handleDiscussions(w http.ResponseWriter, r *http.Request, contestID string) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	discussions, err := h.deps.Discussions(r.Context(), contestID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, discussions)
}

// writeServiceError translates service errors into HTTP responses.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrContestNotFound):
		writeError(w, http.StatusNotFound, "contest_not_found", err)
	case errors.Is(err, service.ErrAlreadySubmitted):
		writeError(w, http.StatusBadRequest, "already_submitted", err)
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", err)
	}
}
