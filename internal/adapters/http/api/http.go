// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/okian/swimsplit/internal/adapters/repository"
	service "github.com/okian/swimsplit/internal/app"
	"github.com/okian/swimsplit/internal/domain/model"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to the service implementation.
type Dependencies interface {
	// Analyze computes statistics without persisting.
	Analyze(ctx context.Context, race model.Race, events []model.Event, manual model.Measurements) (*service.Analysis, error)

	// AnalyzeAndStore computes and persists the capture.
	AnalyzeAndStore(ctx context.Context, race model.Race, events []model.Event, manual model.Measurements) (*service.Analysis, error)

	// Get recomputes the analysis of a stored race.
	Get(ctx context.Context, id string) (*service.Analysis, error)

	// List returns stored race summaries.
	List(ctx context.Context, limit int) ([]repository.RaceSummary, error)

	// Stats returns service counters.
	Stats(ctx context.Context) service.Snapshot
}

// Server wires HTTP routes for the analysis API.
type Server struct {
	healthHandler  *HealthHandler
	statsHandler   *StatsHandler
	analyzeHandler *AnalyzeHandler
	racesHandler   *RacesHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, maxListLimit int) *Server {
	return &Server{
		healthHandler:  NewHealthHandler(),
		statsHandler:   NewStatsHandler(deps),
		analyzeHandler: NewAnalyzeHandler(deps),
		racesHandler:   NewRacesHandler(deps, maxListLimit),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(ctx context.Context, mux *http.ServeMux) {
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/analyze", MetricsMiddleware(s.analyzeHandler.HandleAnalyze, "analyze"))
	mux.HandleFunc("/races", MetricsMiddleware(s.racesHandler.HandleList, "races"))
	mux.HandleFunc("/races/", MetricsMiddleware(s.racesHandler.HandleGet, "race"))
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

// NewKind annotates a sentinel with the operation that raised it.
func NewKind(op string, kind error) error {
	return fmt.Errorf("%s: %w", op, kind)
}

// WrapKind annotates a sentinel with the operation and the cause.
func WrapKind(op string, kind, cause error) error {
	return fmt.Errorf("%s: %w: %v", op, kind, cause)
}

// isNotFound translates upstream not-found errors to 404.
func isNotFound(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, repository.ErrNotFound) {
		return true
	}
	return strings.Contains(strings.ToLower(err.Error()), "not found")
}
