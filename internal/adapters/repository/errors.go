package repository

import "errors"

// Sentinel kinds for store errors.
var (
	ErrSessionNotFound  = errors.New("session not found")
	ErrDuplicateSession = errors.New("session already exists")
	ErrNoAnswers        = errors.New("no answers for session")
)
