// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rolematch/rolematch/internal/adapters/repository"
	"github.com/rolematch/rolematch/internal/domain/questions"
)

// SessionHandler handles session lifecycle and answer requests.
type SessionHandler struct {
	deps Dependencies
}

// NewSessionHandler creates a new session handler.
func NewSessionHandler(deps Dependencies) *SessionHandler {
	return &SessionHandler{deps: deps}
}

// HandleStartSession handles POST /start-session requests.
func (h *SessionHandler) HandleStartSession(w http.ResponseWriter, r *http.Request) {
	const op = "api.start_session"

	sessionID, err := h.deps.StartSession(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"status":     "success",
		"session_id": sessionID,
	})
}

// HandleSaveAnswer handles POST /save-answer requests.
func (h *SessionHandler) HandleSaveAnswer(w http.ResponseWriter, r *http.Request) {
	const op = "api.save_answer"

	var req answerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}

	skip, err := h.deps.SaveAnswer(r.Context(), req.SessionID, *req.QuestionID, req.Answer, req.EventKind)
	switch {
	case errors.Is(err, repository.ErrSessionNotFound):
		writeError(w, http.StatusNotFound, "session_not_found", WrapKind(op, ErrNotFound, err))
		return
	case errors.Is(err, questions.ErrUnknownQuestion):
		writeError(w, http.StatusBadRequest, "unknown_question", WrapKind(op, ErrBadRequest, err))
		return
	case err != nil:
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
		return
	}

	resp := map[string]any{"status": "success"}
	if skip {
		resp["skip_next"] = true
	}
	writeJSON(w, http.StatusOK, resp)
}
