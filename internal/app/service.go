// Package service provides the core business service that implements
// the dependencies required by the HTTP API.
package service

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	repository "github.com/rolematch/rolematch/internal/adapters/repository"
	"github.com/rolematch/rolematch/internal/domain/catalog"
	"github.com/rolematch/rolematch/internal/domain/keywords"
	"github.com/rolematch/rolematch/internal/domain/links"
	"github.com/rolematch/rolematch/internal/domain/questions"
	"github.com/rolematch/rolematch/internal/domain/schedule"
	"github.com/rolematch/rolematch/internal/domain/scoring"
	"github.com/rolematch/rolematch/pkg/logger"
	"github.com/rolematch/rolematch/pkg/metrics"
)

// Service implements the API dependencies for the role matching system.
type Service struct {
	mu sync.RWMutex

	// Core components
	store      repository.Store
	catalog    atomic.Pointer[catalog.Catalog]
	roleLinks  atomic.Pointer[links.Table]
	skills     *keywords.Categorizer
	experience *keywords.Categorizer

	// Configuration
	catalogPath   string
	linksPath     string
	keywordsPath  string
	topN          int
	fallbackFloor int
	elimination   bool

	// State
	started bool

	// Logging
	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithStore sets the session store. Defaults to the in-memory store.
func WithStore(store repository.Store) Option {
	return func(s *Service) {
		if store != nil {
			s.store = store
		}
	}
}

// WithCatalogPath sets the role catalog CSV path loaded on Start.
func WithCatalogPath(path string) Option {
	return func(s *Service) {
		if path != "" {
			s.catalogPath = path
		}
	}
}

// WithLinksPath sets the role links CSV path loaded on Start.
func WithLinksPath(path string) Option {
	return func(s *Service) {
		s.linksPath = path
	}
}

// WithKeywordsPath overrides the embedded skill keyword dictionaries.
func WithKeywordsPath(path string) Option {
	return func(s *Service) {
		s.keywordsPath = path
	}
}

// WithTopN caps the number of roles returned per result bucket.
func WithTopN(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.topN = n
		}
	}
}

// WithFallbackFloor drops eliminated roles scoring below the floor from
// the next-best bucket. Negative disables the floor.
func WithFallbackFloor(floor int) Option {
	return func(s *Service) {
		s.fallbackFloor = floor
	}
}

// WithElimination toggles hard role elimination during scoring.
func WithElimination(enabled bool) Option {
	return func(s *Service) {
		s.elimination = enabled
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(logger logger.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		catalogPath:   "data/roles.csv",
		linksPath:     "",
		topN:          3,
		fallbackFloor: -1,
		elimination:   true,
		logger:        nil, // Will be replaced when service starts
	}

	// Apply all options
	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Start loads the catalog, links, and keyword dictionaries and wires the
// session store.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	// Initialize logger if not already set
	if s.logger == nil {
		s.logger = logger.Get()
	}

	s.logger.Info(ctx, "starting role matching service...")

	sets, err := keywords.LoadFile(s.keywordsPath)
	if err != nil {
		return fmt.Errorf("load keyword dictionaries: %w", err)
	}
	if s.skills, err = sets.Categorizer(keywords.SetRequiredSkills); err != nil {
		return fmt.Errorf("compile skill dictionary: %w", err)
	}
	if s.experience, err = sets.Categorizer(keywords.SetRequiredExperience); err != nil {
		return fmt.Errorf("compile experience dictionary: %w", err)
	}

	if err := s.loadCatalog(ctx, s.catalogPath); err != nil {
		return err
	}
	if err := s.loadLinks(ctx, s.linksPath); err != nil {
		return err
	}

	if s.store == nil {
		s.store = repository.NewMemoryStore()
		s.logger.Info(ctx, "using in-memory session store")
	}

	s.started = true
	s.logger.Info(ctx, "role matching service started",
		logger.Int("roles", s.catalog.Load().Len()),
		logger.Int("roleLinks", s.roleLinks.Load().Len()),
		logger.Int("topN", s.topN),
		logger.Bool("elimination", s.elimination),
	)

	return nil
}

// Stop gracefully shuts down the service.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}

	s.logger.Info(context.Background(), "stopping role matching service...")

	if s.store != nil {
		s.store.Close()
	}

	s.started = false
	s.logger.Info(context.Background(), "role matching service stopped")
}

// loadCatalog parses and swaps in a role catalog. Callers hold no lock;
// the swap itself is atomic.
func (s *Service) loadCatalog(ctx context.Context, path string) error {
	cat, warnings, err := catalog.LoadFile(path)
	if err != nil {
		return fmt.Errorf("load role catalog: %w", err)
	}
	for _, w := range warnings {
		s.logger.Warn(ctx, "skipped catalog row",
			logger.Int("row", w.Row),
			logger.String("role", w.Role),
			logger.String("reason", w.Reason.Error()),
		)
	}

	s.catalog.Store(cat)
	metrics.RecordCatalogReload()
	metrics.UpdateCatalogRoles(cat.Len())
	metrics.RecordCatalogRowsSkipped(len(warnings))

	s.logger.Info(ctx, "role catalog loaded",
		logger.String("path", path),
		logger.Int("roles", cat.Len()),
		logger.Int("skippedRows", len(warnings)),
	)
	return nil
}

// loadLinks parses and swaps in the role link table. An empty path keeps
// an empty table so lookups simply miss.
func (s *Service) loadLinks(ctx context.Context, path string) error {
	table, err := links.LoadFile(path)
	if err != nil {
		return fmt.Errorf("load role links: %w", err)
	}

	s.roleLinks.Store(table)
	metrics.UpdateRoleLinks(table.Len())

	s.logger.Info(ctx, "role links loaded",
		logger.String("path", path),
		logger.Int("roles", table.Len()),
	)
	return nil
}

// ReloadCatalog swaps in a new role catalog from the given CSV path.
func (s *Service) ReloadCatalog(ctx context.Context, path string) error {
	return s.loadCatalog(ctx, path)
}

// ReloadLinks swaps in a new role link table from the given CSV path.
func (s *Service) ReloadLinks(ctx context.Context, path string) error {
	return s.loadLinks(ctx, path)
}

// StartSession creates a new assessment session and returns its id.
func (s *Service) StartSession(ctx context.Context) (string, error) {
	id := uuid.NewString()
	if _, err := s.store.CreateSession(ctx, id); err != nil {
		metrics.RecordStoreError()
		return "", err
	}

	metrics.RecordSessionStarted()
	s.logger.Debug(ctx, "session started", logger.String("sessionID", id))
	return id, nil
}

// Question returns the question with the given id.
func (s *Service) Question(ctx context.Context, id int) (questions.Question, error) {
	_ = ctx
	return questions.Get(id)
}

// Questions returns the full ordered questionnaire.
func (s *Service) Questions(ctx context.Context) []questions.Question {
	_ = ctx
	return questions.All()
}

// SaveAnswer validates and persists one answer. The returned skip hint is
// true when the volunteer declined physical activity, letting the client
// jump past the follow-up movement questions.
func (s *Service) SaveAnswer(ctx context.Context, sessionID string, questionID int, answer, eventKind string) (bool, error) {
	kind, err := questions.KindOf(questionID)
	if err != nil {
		return false, err
	}

	if _, err := s.store.Session(ctx, sessionID); err != nil {
		return false, err
	}

	q, err := questions.Get(questionID)
	if err != nil {
		return false, err
	}

	rec := repository.AnswerRecord{
		SessionID:  sessionID,
		QuestionID: questionID,
		Question:   q.Text,
		Answer:     answer,
		EventKind:  eventKind,
	}
	if err := s.store.SaveAnswer(ctx, rec); err != nil {
		metrics.RecordStoreError()
		return false, err
	}

	metrics.RecordAnswerSaved()
	s.logger.Debug(ctx, "answer saved",
		logger.String("sessionID", sessionID),
		logger.Int("questionID", questionID),
	)

	skip := kind == questions.KindPhysicalActivity && scoring.ParseChoice(answer) == scoring.No
	return skip, nil
}

// Submit replays a session's stored answers through the scoring engine and
// returns the ranked result buckets. The session is marked completed.
func (s *Service) Submit(ctx context.Context, sessionID string) (scoring.Result, error) {
	start := time.Now()

	if _, err := s.store.Session(ctx, sessionID); err != nil {
		return scoring.Result{}, err
	}

	records, err := s.store.Answers(ctx, sessionID)
	if err != nil {
		return scoring.Result{}, err
	}

	scorer, err := s.newScorer()
	if err != nil {
		return scoring.Result{}, err
	}

	for _, rec := range records {
		kind := schedule.ParseEventKind(rec.EventKind)
		if err := scorer.ApplyRaw(rec.QuestionID, rec.Answer, kind); err != nil {
			metrics.RecordReplayError()
			s.logger.Warn(ctx, "skipping unscorable answer",
				logger.String("sessionID", sessionID),
				logger.Int("questionID", rec.QuestionID),
				logger.Error(err),
			)
		}
	}

	result := scorer.TopMatches(s.topN)

	if err := s.store.CompleteSession(ctx, sessionID); err != nil {
		metrics.RecordStoreError()
		return scoring.Result{}, err
	}

	eliminated := s.catalog.Load().Len() - scorer.RemainingCount()
	metrics.RecordAssessmentCompleted()
	metrics.RecordEliminatedRoles(eliminated)
	metrics.RecordScoringDuration(float64(time.Since(start).Microseconds()) / 1000.0)

	s.logger.Info(ctx, "assessment completed",
		logger.String("sessionID", sessionID),
		logger.Int("answers", len(records)),
		logger.Int("eliminatedRoles", eliminated),
		logger.Int("bestFit", len(result.Best)),
		logger.Int("nextBest", len(result.NextBest)),
	)

	return result, nil
}

// newScorer builds a scorer over the active catalog with the configured
// elimination and fallback behavior.
func (s *Service) newScorer() (*scoring.Scorer, error) {
	opts := []scoring.Option{
		scoring.WithCategorizers(s.skills, s.experience),
	}
	if !s.elimination {
		opts = append(opts, scoring.WithoutElimination())
	}
	if s.fallbackFloor >= 0 {
		opts = append(opts, scoring.WithFallbackFloor(s.fallbackFloor))
	}
	return scoring.New(s.catalog.Load(), opts...)
}

// Roles returns the active catalog's role names in load order.
func (s *Service) Roles(ctx context.Context) []string {
	_ = ctx
	return s.catalog.Load().Names()
}

// RoleLinks returns the published links for a role, if any.
func (s *Service) RoleLinks(ctx context.Context, role string) (links.RoleLinks, bool) {
	_ = ctx
	return s.roleLinks.Load().Get(role)
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := map[string]interface{}{
		"started":       s.started,
		"topN":          s.topN,
		"elimination":   s.elimination,
		"fallbackFloor": s.fallbackFloor,
	}

	if s.started {
		cat := s.catalog.Load()
		table := s.roleLinks.Load()

		stats["roles"] = cat.Len()
		stats["roleLinks"] = table.Len()

		// Update metrics
		metrics.UpdateCatalogRoles(cat.Len())
		metrics.UpdateRoleLinks(table.Len())
	}

	return stats
}
