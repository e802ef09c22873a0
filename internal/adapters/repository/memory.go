package repository

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"
)

// MemoryStore is an in-memory Store for development and tests. All methods
// are safe for concurrent use.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]Session
	answers  map[string]map[int]AnswerRecord
	now      func() time.Time
}

// MemoryOption applies a configuration option to the MemoryStore.
type MemoryOption func(*MemoryStore)

// WithClock overrides the time source, for deterministic tests.
func WithClock(now func() time.Time) MemoryOption {
	return func(s *MemoryStore) {
		if now != nil {
			s.now = now
		}
	}
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore(opts ...MemoryOption) *MemoryStore {
	s := &MemoryStore{
		sessions: make(map[string]Session),
		answers:  make(map[string]map[int]AnswerRecord),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CreateSession registers a new in-progress session.
func (s *MemoryStore) CreateSession(_ context.Context, id string) (Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sessions[id]; ok {
		return Session{}, fmt.Errorf("%w: %s", ErrDuplicateSession, id)
	}
	sess := Session{ID: id, Status: StatusInProgress, CreatedAt: s.now()}
	s.sessions[id] = sess
	return sess, nil
}

// Session returns the session with the given id.
func (s *MemoryStore) Session(_ context.Context, id string) (Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.sessions[id]
	if !ok {
		return Session{}, fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	return sess, nil
}

// CompleteSession marks a session completed.
func (s *MemoryStore) CompleteSession(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[id]
	if !ok {
		return fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	sess.Status = StatusCompleted
	s.sessions[id] = sess
	return nil
}

// SaveAnswer stores an answer, replacing any earlier one for the same
// question in the same session.
func (s *MemoryStore) SaveAnswer(_ context.Context, rec AnswerRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sessions[rec.SessionID]; !ok {
		return fmt.Errorf("%w: %s", ErrSessionNotFound, rec.SessionID)
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = s.now()
	}
	byQuestion, ok := s.answers[rec.SessionID]
	if !ok {
		byQuestion = make(map[int]AnswerRecord)
		s.answers[rec.SessionID] = byQuestion
	}
	byQuestion[rec.QuestionID] = rec
	return nil
}

// Answers returns a session's answers ordered by question id.
func (s *MemoryStore) Answers(_ context.Context, sessionID string) ([]AnswerRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if _, ok := s.sessions[sessionID]; !ok {
		return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, sessionID)
	}
	byQuestion := s.answers[sessionID]
	if len(byQuestion) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoAnswers, sessionID)
	}
	out := make([]AnswerRecord, 0, len(byQuestion))
	for _, rec := range byQuestion {
		out = append(out, rec)
	}
	sort.Slice(out, func(a, b int) bool { return out[a].QuestionID < out[b].QuestionID })
	return out, nil
}

// Close is a no-op for the in-memory store.
func (s *MemoryStore) Close() {}
