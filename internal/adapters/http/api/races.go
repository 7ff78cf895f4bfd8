// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"net/http"
	"strconv"
	"strings"
)

// Default and maximum listing sizes.
const defaultListLimit = 20

// RacesHandler serves stored race listings and re-analysis.
type RacesHandler struct {
	deps     Dependencies
	maxLimit int
}

// NewRacesHandler creates a new races handler.
func NewRacesHandler(deps Dependencies, maxLimit int) *RacesHandler {
	if maxLimit <= 0 {
		maxLimit = defaultListLimit
	}
	return &RacesHandler{deps: deps, maxLimit: maxLimit}
}

// HandleList handles GET /races?limit=N requests.
func (h *RacesHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	const op = "api.list_races"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}

	limit := defaultListLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
			return
		}
		limit = n
	}
	if limit > h.maxLimit {
		writeError(w, http.StatusBadRequest, "limit_exceeded", NewKind(op, ErrBadRequest))
		return
	}

	sums, err := h.deps.List(r.Context(), limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal", WrapKind(op, ErrInternal, err))
		return
	}
	writeJSON(w, http.StatusOK, sums)
}

// HandleGet handles GET /races/{id} requests by recomputing the stored
// capture's analysis.
func (h *RacesHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_race"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}

	id := strings.TrimPrefix(r.URL.Path, "/races/")
	if id == "" || strings.Contains(id, "/") {
		writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
		return
	}

	out, err := h.deps.Get(r.Context(), id)
	if err != nil {
		if isNotFound(err) {
			writeError(w, http.StatusNotFound, "not_found", err)
			return
		}
		writeError(w, http.StatusInternalServerError, "internal", WrapKind(op, ErrInternal, err))
		return
	}
	writeJSON(w, http.StatusOK, out)
}
