// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"github.com/rolematch/rolematch/internal/domain/links"
	"github.com/rolematch/rolematch/internal/domain/questions"
	"github.com/rolematch/rolematch/internal/domain/scoring"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	// StartSession creates a new assessment session and returns its id.
	StartSession(ctx context.Context) (string, error)

	// Question and Questions expose the questionnaire.
	Question(ctx context.Context, id int) (questions.Question, error)
	Questions(ctx context.Context) []questions.Question

	// SaveAnswer persists one answer. The returned hint tells the client
	// to skip the follow-up movement questions.
	SaveAnswer(ctx context.Context, sessionID string, questionID int, answer, eventKind string) (bool, error)

	// Submit replays a session's answers and returns the ranked buckets.
	Submit(ctx context.Context, sessionID string) (scoring.Result, error)

	// Roles and RoleLinks expose the active catalog.
	Roles(ctx context.Context) []string
	RoleLinks(ctx context.Context, role string) (links.RoleLinks, bool)

	// ReloadCatalog and ReloadLinks swap in admin-uploaded sheets.
	ReloadCatalog(ctx context.Context, path string) error
	ReloadLinks(ctx context.Context, path string) error
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler    *HealthHandler
	statsHandler     *StatsHandler
	sessionHandler   *SessionHandler
	submitHandler    *SubmitHandler
	questionsHandler *QuestionsHandler
	rolesHandler     *RolesHandler
	adminHandler     *AdminHandler
}

// ServerOption applies a configuration option to the Server.
type ServerOption func(*Server)

// WithAdminToken guards the admin upload routes. Empty disables them.
func WithAdminToken(token string) ServerOption {
	return func(s *Server) {
		s.adminHandler.token = token
	}
}

// WithUploadsDir sets where admin CSV uploads are staged.
func WithUploadsDir(dir string) ServerOption {
	return func(s *Server) {
		if dir != "" {
			s.adminHandler.uploadsDir = dir
		}
	}
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider, opts ...ServerOption) *Server {
	s := &Server{
		healthHandler:    NewHealthHandler(),
		statsHandler:     NewStatsHandler(statsProvider),
		sessionHandler:   NewSessionHandler(deps),
		submitHandler:    NewSubmitHandler(deps),
		questionsHandler: NewQuestionsHandler(deps),
		rolesHandler:     NewRolesHandler(deps),
		adminHandler:     NewAdminHandler(deps),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Router builds the chi router with all routes attached.
func (s *Server) Router(ctx context.Context) chi.Router {
	_ = ctx

	r := chi.NewRouter()
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Admin-Token"},
		MaxAge:         300,
	}))

	r.Get("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	r.Get("/metrics", s.healthHandler.HandleMetrics)
	r.Get("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))

	r.Post("/start-session", MetricsMiddleware(s.sessionHandler.HandleStartSession, "start-session"))
	r.Post("/save-answer", MetricsMiddleware(s.sessionHandler.HandleSaveAnswer, "save-answer"))
	r.Post("/submit", MetricsMiddleware(s.submitHandler.HandleSubmit, "submit"))

	r.Get("/get-questions", MetricsMiddleware(s.questionsHandler.HandleGetQuestions, "get-questions"))
	r.Get("/get-question/{id}", MetricsMiddleware(s.questionsHandler.HandleGetQuestion, "get-question"))
	r.Get("/get-roles", MetricsMiddleware(s.rolesHandler.HandleGetRoles, "get-roles"))
	r.Get("/role-links/{role}", MetricsMiddleware(s.rolesHandler.HandleGetRoleLinks, "role-links"))

	r.Route("/admin", func(r chi.Router) {
		r.Use(s.adminHandler.Authenticate)
		r.Post("/upload-catalog", MetricsMiddleware(s.adminHandler.HandleUploadCatalog, "upload-catalog"))
		r.Post("/upload-links", MetricsMiddleware(s.adminHandler.HandleUploadLinks, "upload-links"))
	})

	return r
}

// answerRequest mirrors the wire schema for POST /save-answer.
type answerRequest struct {
	SessionID  string `json:"session_id"`
	QuestionID *int   `json:"question_id"`
	Answer     string `json:"answer"`
	EventKind  string `json:"event_kind,omitempty"`
}

func (a answerRequest) validate() error {
	switch {
	case strings.TrimSpace(a.SessionID) == "":
		return errors.New("missing session_id")
	case a.QuestionID == nil:
		return errors.New("missing question_id")
	case strings.TrimSpace(a.Answer) == "":
		return errors.New("missing answer")
	}
	return nil
}

// submitRequest mirrors the wire schema for POST /submit.
type submitRequest struct {
	SessionID string `json:"session_id"`
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
