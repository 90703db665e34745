package domain

import (
	"context"
	"time"
)

// Report is an immutable snapshot of a user's latest weight shared into one
// group. Weight is copied at post time, not referenced.
type Report struct {
	CreatedAt time.Time `json:"createdAt"`
	UserID    int64     `json:"userId"`
	GroupID   int64     `json:"groupId"`
	Weight    float64   `json:"weight"`
	Comment   *string   `json:"comment"`
	Username  string    `json:"username"`
}

// ReportRepository is the port for report persistence. Reports are
// append-only.
type ReportRepository interface {
	Add(ctx context.Context, r Report) error
	ListForGroup(ctx context.Context, groupID int64) ([]Report, error)
}
