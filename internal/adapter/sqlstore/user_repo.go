package sqlstore

import (
	"context"
	"database/sql"
	"errors"

	"github.com/WTomoharu/db-final-project/internal/domain"
)

// UserRepo implements domain.UserRepository on DB.
type UserRepo struct {
	db *DB
}

// NewUserRepo wraps a DB as a UserRepository.
func NewUserRepo(db *DB) *UserRepo {
	return &UserRepo{db: db}
}

// GetByUsername retrieves a user by username. Absent users are (nil, nil).
func (r *UserRepo) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	row := r.db.sql.QueryRowContext(ctx,
		"SELECT id, username, password, initial_weight, goal_weight FROM users WHERE username = $1",
		username,
	)
	return scanUser(row)
}

// GetByID retrieves a user by id. Absent users are (nil, nil).
func (r *UserRepo) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	row := r.db.sql.QueryRowContext(ctx,
		"SELECT id, username, password, initial_weight, goal_weight FROM users WHERE id = $1",
		id,
	)
	return scanUser(row)
}

// List returns all users.
func (r *UserRepo) List(ctx context.Context) ([]domain.User, error) {
	rows, err := r.db.sql.QueryContext(ctx,
		"SELECT id, username, password, initial_weight, goal_weight FROM users")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *u)
	}
	return out, rows.Err()
}

// Create inserts a new user with null weight fields. A duplicate username
// surfaces the storage-level unique violation unchanged.
func (r *UserRepo) Create(ctx context.Context, username, password string) (*domain.User, error) {
	var id int64
	err := r.db.sql.QueryRowContext(ctx,
		"INSERT INTO users (username, password) VALUES ($1, $2) RETURNING id",
		username, password,
	).Scan(&id)
	if err != nil {
		return nil, err
	}
	return &domain.User{ID: id, Username: username, Password: password}, nil
}

// SetGoalWeight updates the user's goal weight by id.
func (r *UserRepo) SetGoalWeight(ctx context.Context, id int64, goalWeight float64) error {
	_, err := r.db.sql.ExecContext(ctx,
		"UPDATE users SET goal_weight = $1 WHERE id = $2",
		goalWeight, id,
	)
	return err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (*domain.User, error) {
	var u domain.User
	var initial, goal sql.NullFloat64
	err := row.Scan(&u.ID, &u.Username, &u.Password, &initial, &goal)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if initial.Valid {
		u.InitialWeight = &initial.Float64
	}
	if goal.Valid {
		u.GoalWeight = &goal.Float64
	}
	return &u, nil
}
