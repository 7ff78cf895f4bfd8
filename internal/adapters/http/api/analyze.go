// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/okian/swimsplit/internal/domain/model"
)

// AnalyzeHandler handles analysis requests.
type AnalyzeHandler struct {
	deps Dependencies
}

// NewAnalyzeHandler creates a new analyze handler.
func NewAnalyzeHandler(deps Dependencies) *AnalyzeHandler {
	return &AnalyzeHandler{deps: deps}
}

// analyzeRequest is the POST /analyze body.
type analyzeRequest struct {
	Race         model.Race         `json:"race"`
	Events       []model.Event      `json:"events"`
	Measurements model.Measurements `json:"measurements"`
	// Persist stores the capture so it can be re-analyzed later.
	Persist bool `json:"persist"`
}

func (a analyzeRequest) validate() error {
	switch {
	case strings.TrimSpace(string(a.Race.Stroke)) == "":
		return errors.New("missing race.stroke")
	case a.Race.Distance <= 0:
		return errors.New("race.distance must be positive")
	case len(a.Events) == 0:
		return errors.New("missing events")
	}
	if _, err := model.ParseStroke(string(a.Race.Stroke)); err != nil {
		return err
	}
	return nil
}

// HandleAnalyze handles POST /analyze requests. A computable capture
// returns the full per-lap table; a capture missing its end event is
// unprocessable, not a server fault.
func (h *AnalyzeHandler) HandleAnalyze(w http.ResponseWriter, r *http.Request) {
	const op = "api.analyze"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req analyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}

	analyze := h.deps.Analyze
	if req.Persist {
		analyze = h.deps.AnalyzeAndStore
	}
	out, err := analyze(r.Context(), req.Race, req.Events, req.Measurements)
	if err != nil {
		if errors.Is(err, model.ErrMissingEndEvent) || errors.Is(err, model.ErrMissingStartEvent) ||
			errors.Is(err, model.ErrEventsOutOfOrder) {
			writeError(w, http.StatusUnprocessableEntity, "incomputable_race", err)
			return
		}
		writeError(w, http.StatusInternalServerError, "internal", WrapKind(op, ErrInternal, err))
		return
	}
	writeJSON(w, http.StatusOK, out)
}
