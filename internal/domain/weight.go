package domain

import (
	"context"
	"time"
)

// WeightRecord is an immutable, timestamped personal weight entry.
type WeightRecord struct {
	UserID    int64     `json:"userId"`
	Weight    float64   `json:"weight"`
	CreatedAt time.Time `json:"createdAt"`
}

// WeightRepository is the port for weight-record persistence. Records are
// append-only; there is no update or delete.
type WeightRepository interface {
	Add(ctx context.Context, userID int64, weight float64, createdAt time.Time) error
	ListForUser(ctx context.Context, userID int64) ([]WeightRecord, error)
	LatestForUser(ctx context.Context, userID int64) (*WeightRecord, error)
}
