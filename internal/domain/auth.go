// Package domain contains the core business entities and interfaces.
package domain

import (
	"context"
	"time"
)

// User represents a registered account.
type User struct {
	ID            int64    `json:"id"`
	Username      string   `json:"username"`
	Password      string   `json:"-"`
	InitialWeight *float64 `json:"initialWeight"`
	GoalWeight    *float64 `json:"goalWeight"`
}

// Session maps an opaque token to a user. Sessions do not expire; they are
// removed only by logout.
type Session struct {
	Token     string
	UserID    int64
	CreatedAt time.Time
}

// UserRepository defines the port for user persistence operations.
type UserRepository interface {
	GetByUsername(ctx context.Context, username string) (*User, error)
	GetByID(ctx context.Context, id int64) (*User, error)
	List(ctx context.Context) ([]User, error)
	Create(ctx context.Context, username, password string) (*User, error)
	SetGoalWeight(ctx context.Context, id int64, goalWeight float64) error
}

// SessionRepository defines the port for session persistence operations.
type SessionRepository interface {
	Create(ctx context.Context, userID int64, token string) error
	GetByToken(ctx context.Context, token string) (*Session, error)
	Delete(ctx context.Context, token string) error
}
