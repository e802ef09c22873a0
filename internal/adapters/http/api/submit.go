// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/rolematch/rolematch/internal/adapters/repository"
)

// SubmitHandler handles assessment submission requests.
type SubmitHandler struct {
	deps Dependencies
}

// NewSubmitHandler creates a new submit handler.
func NewSubmitHandler(deps Dependencies) *SubmitHandler {
	return &SubmitHandler{deps: deps}
}

// HandleSubmit handles POST /submit requests. The result buckets are
// returned as comma-joined role lists, the shape questionnaire clients
// render directly.
func (h *SubmitHandler) HandleSubmit(w http.ResponseWriter, r *http.Request) {
	const op = "api.submit"

	var req submitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	if strings.TrimSpace(req.SessionID) == "" {
		writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
		return
	}

	result, err := h.deps.Submit(r.Context(), req.SessionID)
	switch {
	case errors.Is(err, repository.ErrSessionNotFound):
		writeError(w, http.StatusNotFound, "session_not_found", WrapKind(op, ErrNotFound, err))
		return
	case errors.Is(err, repository.ErrNoAnswers):
		writeError(w, http.StatusBadRequest, "no_answers", WrapKind(op, ErrBadRequest, err))
		return
	case err != nil:
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"status":     "success",
		"session_id": req.SessionID,
		"results": map[string]string{
			"Best fit roles":  strings.Join(result.Best, ", "),
			"Next best roles": strings.Join(result.NextBest, ", "),
		},
	})
}
