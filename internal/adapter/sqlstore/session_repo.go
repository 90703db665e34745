package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/WTomoharu/db-final-project/internal/domain"
)

// SessionRepo implements domain.SessionRepository on DB.
type SessionRepo struct {
	db *DB
}

// NewSessionRepo wraps a DB as a SessionRepository.
func NewSessionRepo(db *DB) *SessionRepo {
	return &SessionRepo{db: db}
}

// Create stores a new session.
func (r *SessionRepo) Create(ctx context.Context, userID int64, token string) error {
	_, err := r.db.sql.ExecContext(ctx,
		"INSERT INTO sessions (token, user_id, created_at) VALUES ($1, $2, $3)",
		token, userID, formatTime(time.Now()),
	)
	return err
}

// GetByToken retrieves a session by token. Absent sessions are (nil, nil).
func (r *SessionRepo) GetByToken(ctx context.Context, token string) (*domain.Session, error) {
	var s domain.Session
	var created string
	err := r.db.sql.QueryRowContext(ctx,
		"SELECT token, user_id, created_at FROM sessions WHERE token = $1",
		token,
	).Scan(&s.Token, &s.UserID, &created)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	t, err := parseTime(created)
	if err != nil {
		return nil, err
	}
	s.CreatedAt = t
	return &s, nil
}

// Delete removes a session by token. Unknown tokens are a no-op.
func (r *SessionRepo) Delete(ctx context.Context, token string) error {
	_, err := r.db.sql.ExecContext(ctx, "DELETE FROM sessions WHERE token = $1", token)
	return err
}
