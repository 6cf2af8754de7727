// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/echolearn/arena/internal/domain/model"
	"github.com/echolearn/arena/internal/domain/types"
)

// userHeader identifies the requesting user. Authentication proper lives
// outside this service; an upstream gateway is expected to set the header.
const userHeader = "X-User-ID"

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	ListContests(ctx context.Context, userID string) ([]ContestSummary, error)
	GetContest(ctx context.Context, userID, contestID string) (ContestDetail, error)
	Submit(ctx context.Context, userID, contestID string, req SubmitRequest) (SubmitResult, error)
	Stats(ctx context.Context, userID string) (StatsView, error)
	Discussions(ctx context.Context, contestID string) ([]model.Discussion, error)
}

// Read and write shapes mirror the service view types.
type (
	ContestSummary = types.ContestSummary
	ContestDetail  = types.ContestDetail
	SubmitRequest  = types.SubmitRequest
	SubmitResult   = types.SubmitResult
	StatsView      = types.StatsView
)

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler   *HealthHandler
	contestsHandler *ContestsHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies) *Server {
	return &Server{
		healthHandler:   NewHealthHandler(),
		contestsHandler: NewContestsHandler(deps),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(ctx context.Context, mux *http.ServeMux) {
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/contests", MetricsMiddleware(s.contestsHandler.HandleList, "contests"))
	mux.HandleFunc("/contests/", MetricsMiddleware(s.contestsHandler.HandleContestPath, "contest"))
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

// userFromRequest extracts the user id header, writing a 401 when absent.
func userFromRequest(w http.ResponseWriter, r *http.Request) (string, bool) {
	userID := r.Header.Get(userHeader)
	if userID == "" {
		writeError(w, http.StatusUnauthorized, "missing_user", ErrMissingUser)
		return "", false
	}
	return userID, true
}
