package app

import (
	"context"
	"time"

	"github.com/WTomoharu/db-final-project/internal/domain"
)

// jst is the fixed UTC+9 offset used to stamp weight records and reports.
var jst = time.FixedZone("JST", 9*60*60)

// WeightService encapsulates personal weight tracking use cases.
type WeightService struct {
	weights domain.WeightRepository
	users   domain.UserRepository
}

// NewWeightService creates a WeightService backed by the given repositories.
func NewWeightService(weights domain.WeightRepository, users domain.UserRepository) *WeightService {
	return &WeightService{weights: weights, users: users}
}

// Record appends a new timestamped weight entry for the user. Values are not
// range-checked; the log is a faithful record of what the user reported.
func (s *WeightService) Record(ctx context.Context, userID int64, weight float64) error {
	return s.weights.Add(ctx, userID, weight, time.Now().In(jst))
}

// List returns all weight records for the user, ordered by creation time.
func (s *WeightService) List(ctx context.Context, userID int64) ([]domain.WeightRecord, error) {
	return s.weights.ListForUser(ctx, userID)
}

// Latest returns the user's most recent weight record, or nil if the user
// has never recorded one.
func (s *WeightService) Latest(ctx context.Context, userID int64) (*domain.WeightRecord, error) {
	return s.weights.LatestForUser(ctx, userID)
}

// SetGoalWeight updates the user's goal weight. Positivity is the caller's
// concern; only one of the two HTTP paths enforces it.
func (s *WeightService) SetGoalWeight(ctx context.Context, userID int64, goalWeight float64) error {
	return s.users.SetGoalWeight(ctx, userID, goalWeight)
}
