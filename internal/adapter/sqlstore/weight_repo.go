package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/WTomoharu/db-final-project/internal/domain"
)

// WeightRepo implements domain.WeightRepository on DB.
type WeightRepo struct {
	db *DB
}

// NewWeightRepo wraps a DB as a WeightRepository.
func NewWeightRepo(db *DB) *WeightRepo {
	return &WeightRepo{db: db}
}

// Add appends a weight record.
func (r *WeightRepo) Add(ctx context.Context, userID int64, weight float64, createdAt time.Time) error {
	_, err := r.db.sql.ExecContext(ctx,
		"INSERT INTO weight_records (user_id, weight, created_at) VALUES ($1, $2, $3)",
		userID, weight, formatTime(createdAt),
	)
	return err
}

// ListForUser returns all weight records for the user, oldest first.
func (r *WeightRepo) ListForUser(ctx context.Context, userID int64) ([]domain.WeightRecord, error) {
	rows, err := r.db.sql.QueryContext(ctx,
		"SELECT user_id, weight, created_at FROM weight_records WHERE user_id = $1 ORDER BY created_at",
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.WeightRecord
	for rows.Next() {
		rec, err := scanWeightRecord(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *rec)
	}
	return out, rows.Err()
}

// LatestForUser returns the record with the maximum created_at for the
// user, or (nil, nil) if the user has none.
func (r *WeightRepo) LatestForUser(ctx context.Context, userID int64) (*domain.WeightRecord, error) {
	row := r.db.sql.QueryRowContext(ctx, `
		SELECT user_id, weight, created_at
		FROM weight_records
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT 1`,
		userID,
	)
	rec, err := scanWeightRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return rec, err
}

func scanWeightRecord(row rowScanner) (*domain.WeightRecord, error) {
	var rec domain.WeightRecord
	var created string
	if err := row.Scan(&rec.UserID, &rec.Weight, &created); err != nil {
		return nil, err
	}
	t, err := parseTime(created)
	if err != nil {
		return nil, err
	}
	rec.CreatedAt = t
	return &rec, nil
}
