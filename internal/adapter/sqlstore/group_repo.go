package sqlstore

import (
	"context"
	"database/sql"
	"errors"

	"github.com/WTomoharu/db-final-project/internal/domain"
)

// GroupRepo implements domain.GroupRepository on DB.
type GroupRepo struct {
	db *DB
}

// NewGroupRepo wraps a DB as a GroupRepository.
func NewGroupRepo(db *DB) *GroupRepo {
	return &GroupRepo{db: db}
}

// Create inserts a group and returns the generated id paired with the name.
func (r *GroupRepo) Create(ctx context.Context, name string) (*domain.Group, error) {
	var id int64
	err := r.db.sql.QueryRowContext(ctx,
		"INSERT INTO groups (name) VALUES ($1) RETURNING id",
		name,
	).Scan(&id)
	if err != nil {
		return nil, err
	}
	return &domain.Group{ID: id, Name: name}, nil
}

// Get retrieves a group by id. Absent groups are (nil, nil).
func (r *GroupRepo) Get(ctx context.Context, id int64) (*domain.Group, error) {
	var g domain.Group
	err := r.db.sql.QueryRowContext(ctx,
		"SELECT id, name FROM groups WHERE id = $1",
		id,
	).Scan(&g.ID, &g.Name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &g, nil
}

// List returns all groups.
func (r *GroupRepo) List(ctx context.Context) ([]domain.Group, error) {
	rows, err := r.db.sql.QueryContext(ctx, "SELECT id, name FROM groups")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectGroups(rows)
}

// ListForUser returns the groups the user belongs to, joined through the
// membership table.
func (r *GroupRepo) ListForUser(ctx context.Context, userID int64) ([]domain.Group, error) {
	rows, err := r.db.sql.QueryContext(ctx, `
		SELECT g.id, g.name
		FROM groups g
		INNER JOIN user_group_relations ugr ON g.id = ugr.group_id
		WHERE ugr.user_id = $1`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectGroups(rows)
}

// AddMember inserts a membership row.
func (r *GroupRepo) AddMember(ctx context.Context, userID, groupID int64) error {
	_, err := r.db.sql.ExecContext(ctx,
		"INSERT INTO user_group_relations (user_id, group_id) VALUES ($1, $2)",
		userID, groupID,
	)
	return err
}

// IsMember reports whether the user belongs to the group.
func (r *GroupRepo) IsMember(ctx context.Context, userID, groupID int64) (bool, error) {
	var count int
	err := r.db.sql.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM user_group_relations WHERE user_id = $1 AND group_id = $2",
		userID, groupID,
	).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// Delete removes the group; memberships go with it via the cascading
// foreign keys.
func (r *GroupRepo) Delete(ctx context.Context, id int64) error {
	_, err := r.db.sql.ExecContext(ctx, "DELETE FROM groups WHERE id = $1", id)
	return err
}

func collectGroups(rows *sql.Rows) ([]domain.Group, error) {
	var out []domain.Group
	for rows.Next() {
		var g domain.Group
		if err := rows.Scan(&g.ID, &g.Name); err != nil {
			return nil, err
		}
		out = append(out, g)
	}
	return out, rows.Err()
}
