// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
)

// QuestionsHandler handles questionnaire requests.
type QuestionsHandler struct {
	deps Dependencies
}

// NewQuestionsHandler creates a new questions handler.
func NewQuestionsHandler(deps Dependencies) *QuestionsHandler {
	return &QuestionsHandler{deps: deps}
}

// HandleGetQuestions handles GET /get-questions requests.
func (h *QuestionsHandler) HandleGetQuestions(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.deps.Questions(r.Context()))
}

// HandleGetQuestion handles GET /get-question/{id} requests.
func (h *QuestionsHandler) HandleGetQuestion(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_question"

	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}

	q, err := h.deps.Question(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusNotFound, "question_not_found", WrapKind(op, ErrNotFound, err))
		return
	}
	writeJSON(w, http.StatusOK, q)
}
