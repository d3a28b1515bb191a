package repository

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
)

// SessionRepo handles stopwatch sessions.
type SessionRepo struct {
	db *sql.DB
}

func NewSessionRepo(db *sql.DB) *SessionRepo { return &SessionRepo{db: db} }

func (r *SessionRepo) Insert(ctx context.Context, s *Session) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	_, err := r.db.ExecContext(ctx, `
	INSERT INTO stopwatch_sessions(id, elapsed_ms, recorded_at) VALUES (?, ?, ?)
	`, s.ID, s.ElapsedMs, s.RecordedAt)
	return err
}

func (r *SessionRepo) Recent(ctx context.Context, limit int) ([]Session, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := r.db.QueryContext(ctx, `
	SELECT id, elapsed_ms, recorded_at
	FROM stopwatch_sessions
	ORDER BY recorded_at DESC, rowid DESC
	LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Session
	for rows.Next() {
		var s Session
		if err := rows.Scan(&s.ID, &s.ElapsedMs, &s.RecordedAt); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}
