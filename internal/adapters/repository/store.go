// Package repository defines the assessment store interface and errors.
//
// The store keeps session metadata and the ordered answer records the
// scoring engine replays. The engine's only contract with it is that
// replaying the answers of a session, in question order, reconstructs
// identical score state on any worker.
package repository

import (
	"context"
	"time"
)

// Session statuses.
const (
	StatusInProgress = "in_progress"
	StatusCompleted  = "completed"
)

// Session is one assessment session's metadata.
type Session struct {
	ID        string
	Status    string
	CreatedAt time.Time
}

// AnswerRecord is one stored answer. Answer holds the raw wire value:
// plain text for single choices, a JSON array for multiselects. EventKind
// qualifies availability answers and is empty elsewhere.
type AnswerRecord struct {
	SessionID  string
	QuestionID int
	Question   string
	Answer     string
	EventKind  string
	CreatedAt  time.Time
}

// Store provides read/write access to sessions and their answers.
type Store interface {
	// CreateSession registers a new in-progress session.
	// Returns ErrDuplicateSession when the id already exists.
	CreateSession(ctx context.Context, id string) (Session, error)

	// Session returns the session with the given id.
	// Returns ErrSessionNotFound when the id is unknown.
	Session(ctx context.Context, id string) (Session, error)

	// CompleteSession marks a session completed.
	CompleteSession(ctx context.Context, id string) error

	// SaveAnswer stores an answer, replacing any earlier answer for the
	// same question in the same session.
	SaveAnswer(ctx context.Context, rec AnswerRecord) error

	// Answers returns a session's answers ordered by question id, the
	// order the scoring engine replays them in.
	// Returns ErrNoAnswers when the session has none.
	Answers(ctx context.Context, sessionID string) ([]AnswerRecord, error)

	// Close releases any underlying resources.
	Close()
}
