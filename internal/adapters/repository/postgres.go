package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresConfig holds PostgreSQL connection configuration.
type PostgresConfig struct {
	DSN         string
	MaxConns    int32
	MinConns    int32
	MaxLifetime time.Duration
}

// Schema for the assessment tables. Applied on startup; idempotent.
const schema = `
CREATE TABLE IF NOT EXISTS assessment_sessions (
    session_id TEXT PRIMARY KEY,
    status     TEXT NOT NULL DEFAULT 'in_progress',
    created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS user_answers (
    session_id  TEXT NOT NULL REFERENCES assessment_sessions (session_id),
    question_id INT  NOT NULL,
    question    TEXT NOT NULL DEFAULT '',
    answer      TEXT NOT NULL,
    event_kind  TEXT NOT NULL DEFAULT '',
    created_at  TIMESTAMPTZ NOT NULL DEFAULT now(),
    PRIMARY KEY (session_id, question_id)
);
`

// PostgresStore implements Store on PostgreSQL.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore connects to PostgreSQL, applies the schema, and returns
// a ready store.
func NewPostgresStore(ctx context.Context, cfg PostgresConfig) (*PostgresStore, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("parse postgres dsn: %w", err)
	}
	if cfg.MaxConns > 0 {
		poolConfig.MaxConns = cfg.MaxConns
	}
	if cfg.MinConns > 0 {
		poolConfig.MinConns = cfg.MinConns
	}
	if cfg.MaxLifetime > 0 {
		poolConfig.MaxConnLifetime = cfg.MaxLifetime
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("create connection pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	if _, err := pool.Exec(ctx, schema); err != nil {
		pool.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	return &PostgresStore{pool: pool}, nil
}

// Ping checks database connectivity.
func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

// Close closes the connection pool.
func (s *PostgresStore) Close() {
	s.pool.Close()
}

// CreateSession registers a new in-progress session.
func (s *PostgresStore) CreateSession(ctx context.Context, id string) (Session, error) {
	query := `
		INSERT INTO assessment_sessions (session_id, status)
		VALUES ($1, $2)
		ON CONFLICT (session_id) DO NOTHING
		RETURNING session_id, status, created_at
	`
	var sess Session
	err := s.pool.QueryRow(ctx, query, id, StatusInProgress).
		Scan(&sess.ID, &sess.Status, &sess.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Session{}, fmt.Errorf("%w: %s", ErrDuplicateSession, id)
	}
	if err != nil {
		return Session{}, fmt.Errorf("create session: %w", err)
	}
	return sess, nil
}

// Session returns the session with the given id.
func (s *PostgresStore) Session(ctx context.Context, id string) (Session, error) {
	query := `
		SELECT session_id, status, created_at
		FROM assessment_sessions
		WHERE session_id = $1
	`
	var sess Session
	err := s.pool.QueryRow(ctx, query, id).Scan(&sess.ID, &sess.Status, &sess.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Session{}, fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	if err != nil {
		return Session{}, fmt.Errorf("get session: %w", err)
	}
	return sess, nil
}

// CompleteSession marks a session completed.
func (s *PostgresStore) CompleteSession(ctx context.Context, id string) error {
	tag, err := s.pool.Exec(ctx,
		`UPDATE assessment_sessions SET status = $1 WHERE session_id = $2`,
		StatusCompleted, id)
	if err != nil {
		return fmt.Errorf("complete session: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	return nil
}

// SaveAnswer upserts an answer on (session, question).
func (s *PostgresStore) SaveAnswer(ctx context.Context, rec AnswerRecord) error {
	query := `
		INSERT INTO user_answers (session_id, question_id, question, answer, event_kind)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (session_id, question_id)
		DO UPDATE SET question = EXCLUDED.question,
		              answer = EXCLUDED.answer,
		              event_kind = EXCLUDED.event_kind,
		              created_at = now()
	`
	_, err := s.pool.Exec(ctx, query,
		rec.SessionID, rec.QuestionID, rec.Question, rec.Answer, rec.EventKind)
	if err != nil {
		return fmt.Errorf("save answer: %w", err)
	}
	return nil
}

// Answers returns a session's answers ordered by question id.
func (s *PostgresStore) Answers(ctx context.Context, sessionID string) ([]AnswerRecord, error) {
	query := `
		SELECT session_id, question_id, question, answer, event_kind, created_at
		FROM user_answers
		WHERE session_id = $1
		ORDER BY question_id
	`
	rows, err := s.pool.Query(ctx, query, sessionID)
	if err != nil {
		return nil, fmt.Errorf("query answers: %w", err)
	}
	defer rows.Close()

	var out []AnswerRecord
	for rows.Next() {
		var rec AnswerRecord
		if err := rows.Scan(&rec.SessionID, &rec.QuestionID, &rec.Question,
			&rec.Answer, &rec.EventKind, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan answer: %w", err)
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read answers: %w", err)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoAnswers, sessionID)
	}
	return out, nil
}
