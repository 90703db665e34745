package sqlstore

import (
	"context"
	"database/sql"

	"github.com/WTomoharu/db-final-project/internal/domain"
)

// ReportRepo implements domain.ReportRepository on DB.
type ReportRepo struct {
	db *DB
}

// NewReportRepo wraps a DB as a ReportRepository.
func NewReportRepo(db *DB) *ReportRepo {
	return &ReportRepo{db: db}
}

// Add appends a report row.
func (r *ReportRepo) Add(ctx context.Context, rep domain.Report) error {
	var comment sql.NullString
	if rep.Comment != nil {
		comment = sql.NullString{String: *rep.Comment, Valid: true}
	}
	_, err := r.db.sql.ExecContext(ctx, `
		INSERT INTO reports (created_at, user_id, group_id, weight, comment)
		VALUES ($1, $2, $3, $4, $5)`,
		formatTime(rep.CreatedAt), rep.UserID, rep.GroupID, rep.Weight, comment,
	)
	return err
}

// ListForGroup returns the group's reports newest first, each joined with
// the reporting user's username.
func (r *ReportRepo) ListForGroup(ctx context.Context, groupID int64) ([]domain.Report, error) {
	rows, err := r.db.sql.QueryContext(ctx, `
		SELECT r.created_at, r.user_id, r.group_id, r.weight, r.comment, u.username
		FROM reports r
		JOIN users u ON r.user_id = u.id
		WHERE r.group_id = $1
		ORDER BY r.created_at DESC`,
		groupID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Report
	for rows.Next() {
		var rep domain.Report
		var created string
		var comment sql.NullString
		if err := rows.Scan(&created, &rep.UserID, &rep.GroupID, &rep.Weight, &comment, &rep.Username); err != nil {
			return nil, err
		}
		t, err := parseTime(created)
		if err != nil {
			return nil, err
		}
		rep.CreatedAt = t
		if comment.Valid {
			rep.Comment = &comment.String
		}
		out = append(out, rep)
	}
	return out, rows.Err()
}
