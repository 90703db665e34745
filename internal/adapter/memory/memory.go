// Package memory implements the domain repositories in memory for
// development and testing.
package memory

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/WTomoharu/db-final-project/internal/domain"
)

// DB holds the in-memory tables. The per-port repositories share its lock.
type DB struct {
	mu sync.Mutex

	users    []*domain.User
	groups   []*domain.Group
	members  map[[2]int64]bool // [userID, groupID]
	weights  []domain.WeightRecord
	reports  []domain.Report
	sessions map[string]*domain.Session

	userIDCounter  int64
	groupIDCounter int64
}

// New creates a new in-memory database.
func New() *DB {
	return &DB{
		members:  make(map[[2]int64]bool),
		sessions: make(map[string]*domain.Session),
	}
}

// Ensure interfaces are met.
var _ domain.UserRepository = (*UserRepo)(nil)
var _ domain.GroupRepository = (*GroupRepo)(nil)
var _ domain.WeightRepository = (*WeightRepo)(nil)
var _ domain.ReportRepository = (*ReportRepo)(nil)
var _ domain.SessionRepository = (*SessionRepo)(nil)

// --- UserRepository ---

// UserRepo implements user persistence.
type UserRepo struct{ db *DB }

// UserRepo returns the user repository view of the database.
func (db *DB) UserRepo() *UserRepo { return &UserRepo{db: db} }

// GetByUsername retrieves a user by username.
func (r *UserRepo) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	for _, u := range r.db.users {
		if u.Username == username {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

// GetByID retrieves a user by id.
func (r *UserRepo) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	for _, u := range r.db.users {
		if u.ID == id {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

// List returns all users.
func (r *UserRepo) List(ctx context.Context) ([]domain.User, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	out := make([]domain.User, 0, len(r.db.users))
	for _, u := range r.db.users {
		out = append(out, *u)
	}
	return out, nil
}

// Create creates a new user, rejecting duplicate usernames like the unique
// constraint would.
func (r *UserRepo) Create(ctx context.Context, username, password string) (*domain.User, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	for _, u := range r.db.users {
		if u.Username == username {
			return nil, errors.New("UNIQUE constraint failed: users.username")
		}
	}

	r.db.userIDCounter++
	u := &domain.User{
		ID:       r.db.userIDCounter,
		Username: username,
		Password: password,
	}
	r.db.users = append(r.db.users, u)
	cp := *u
	return &cp, nil
}

// SetGoalWeight updates the user's goal weight.
func (r *UserRepo) SetGoalWeight(ctx context.Context, id int64, goalWeight float64) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	for _, u := range r.db.users {
		if u.ID == id {
			g := goalWeight
			u.GoalWeight = &g
			return nil
		}
	}
	// UPDATE of a missing row affects nothing and is not an error.
	return nil
}

// --- GroupRepository ---

// GroupRepo implements group and membership persistence.
type GroupRepo struct{ db *DB }

// GroupRepo returns the group repository view of the database.
func (db *DB) GroupRepo() *GroupRepo { return &GroupRepo{db: db} }

// Create inserts a group.
func (r *GroupRepo) Create(ctx context.Context, name string) (*domain.Group, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	r.db.groupIDCounter++
	g := &domain.Group{ID: r.db.groupIDCounter, Name: name}
	r.db.groups = append(r.db.groups, g)
	cp := *g
	return &cp, nil
}

// Get retrieves a group by id.
func (r *GroupRepo) Get(ctx context.Context, id int64) (*domain.Group, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	for _, g := range r.db.groups {
		if g.ID == id {
			cp := *g
			return &cp, nil
		}
	}
	return nil, nil
}

// List returns all groups.
func (r *GroupRepo) List(ctx context.Context) ([]domain.Group, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	out := make([]domain.Group, 0, len(r.db.groups))
	for _, g := range r.db.groups {
		out = append(out, *g)
	}
	return out, nil
}

// ListForUser returns the groups the user belongs to.
func (r *GroupRepo) ListForUser(ctx context.Context, userID int64) ([]domain.Group, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	var out []domain.Group
	for _, g := range r.db.groups {
		if r.db.members[[2]int64{userID, g.ID}] {
			out = append(out, *g)
		}
	}
	return out, nil
}

// AddMember inserts a membership row, rejecting duplicates like the
// composite primary key would.
func (r *GroupRepo) AddMember(ctx context.Context, userID, groupID int64) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	key := [2]int64{userID, groupID}
	if r.db.members[key] {
		return errors.New("UNIQUE constraint failed: user_group_relations")
	}
	r.db.members[key] = true
	return nil
}

// IsMember reports whether the user belongs to the group.
func (r *GroupRepo) IsMember(ctx context.Context, userID, groupID int64) (bool, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	return r.db.members[[2]int64{userID, groupID}], nil
}

// Delete removes the group and cascades its memberships.
func (r *GroupRepo) Delete(ctx context.Context, id int64) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	for i, g := range r.db.groups {
		if g.ID == id {
			r.db.groups = append(r.db.groups[:i], r.db.groups[i+1:]...)
			break
		}
	}
	for key := range r.db.members {
		if key[1] == id {
			delete(r.db.members, key)
		}
	}
	return nil
}

// --- WeightRepository ---

// WeightRepo implements weight-record persistence.
type WeightRepo struct{ db *DB }

// WeightRepo returns the weight repository view of the database.
func (db *DB) WeightRepo() *WeightRepo { return &WeightRepo{db: db} }

// Add appends a weight record.
func (r *WeightRepo) Add(ctx context.Context, userID int64, weight float64, createdAt time.Time) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	r.db.weights = append(r.db.weights, domain.WeightRecord{
		UserID:    userID,
		Weight:    weight,
		CreatedAt: createdAt,
	})
	return nil
}

// ListForUser returns the user's records oldest first.
func (r *WeightRepo) ListForUser(ctx context.Context, userID int64) ([]domain.WeightRecord, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	var out []domain.WeightRecord
	for _, w := range r.db.weights {
		if w.UserID == userID {
			out = append(out, w)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

// LatestForUser returns the record with the maximum created_at.
func (r *WeightRepo) LatestForUser(ctx context.Context, userID int64) (*domain.WeightRecord, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	var latest *domain.WeightRecord
	for i := range r.db.weights {
		w := &r.db.weights[i]
		if w.UserID != userID {
			continue
		}
		if latest == nil || w.CreatedAt.After(latest.CreatedAt) {
			latest = w
		}
	}
	if latest == nil {
		return nil, nil
	}
	cp := *latest
	return &cp, nil
}

// --- ReportRepository ---

// ReportRepo implements report persistence.
type ReportRepo struct{ db *DB }

// ReportRepo returns the report repository view of the database.
func (db *DB) ReportRepo() *ReportRepo { return &ReportRepo{db: db} }

// Add appends a report.
func (r *ReportRepo) Add(ctx context.Context, rep domain.Report) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	r.db.reports = append(r.db.reports, rep)
	return nil
}

// ListForGroup returns the group's reports newest first with the reporting
// user's username filled in.
func (r *ReportRepo) ListForGroup(ctx context.Context, groupID int64) ([]domain.Report, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	var out []domain.Report
	for _, rep := range r.db.reports {
		if rep.GroupID != groupID {
			continue
		}
		for _, u := range r.db.users {
			if u.ID == rep.UserID {
				rep.Username = u.Username
				break
			}
		}
		out = append(out, rep)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

// --- SessionRepository ---

// SessionRepo implements session persistence.
type SessionRepo struct{ db *DB }

// SessionRepo returns the session repository view of the database.
func (db *DB) SessionRepo() *SessionRepo { return &SessionRepo{db: db} }

// Create stores a new session.
func (r *SessionRepo) Create(ctx context.Context, userID int64, token string) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	r.db.sessions[token] = &domain.Session{
		Token:     token,
		UserID:    userID,
		CreatedAt: time.Now().UTC(),
	}
	return nil
}

// GetByToken retrieves a session by token.
func (r *SessionRepo) GetByToken(ctx context.Context, token string) (*domain.Session, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if s, ok := r.db.sessions[token]; ok {
		cp := *s
		return &cp, nil
	}
	return nil, nil
}

// Delete removes a session.
func (r *SessionRepo) Delete(ctx context.Context, token string) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	delete(r.db.sessions, token)
	return nil
}

// DeleteUser removes a user row, simulating an account deleted outside the
// application while sessions referencing it survive. Test helper.
func (db *DB) DeleteUser(id int64) {
	db.mu.Lock()
	defer db.mu.Unlock()

	for i, u := range db.users {
		if u.ID == id {
			db.users = append(db.users[:i], db.users[i+1:]...)
			return
		}
	}
}
