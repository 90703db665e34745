package app

import (
	"context"
	"errors"
	"time"

	"github.com/WTomoharu/db-final-project/internal/domain"
)

var (
	// ErrGroupNotFound indicates that the requested group does not exist.
	ErrGroupNotFound = errors.New("group not found")
	// ErrNotMember indicates a member-only action attempted by a non-member.
	ErrNotMember = errors.New("not a member of this group")
	// ErrNoWeightRecord indicates the user has no weight record to report.
	ErrNoWeightRecord = errors.New("no weight record found for user")
)

// GroupService encapsulates group, membership and report use cases.
type GroupService struct {
	groups  domain.GroupRepository
	weights domain.WeightRepository
	reports domain.ReportRepository
}

// NewGroupService creates a GroupService backed by the given repositories.
func NewGroupService(groups domain.GroupRepository, weights domain.WeightRepository, reports domain.ReportRepository) *GroupService {
	return &GroupService{groups: groups, weights: weights, reports: reports}
}

// Create inserts a new group and joins the creator to it.
func (s *GroupService) Create(ctx context.Context, name string, creatorID int64) (*domain.Group, error) {
	group, err := s.groups.Create(ctx, name)
	if err != nil {
		return nil, err
	}
	if err := s.groups.AddMember(ctx, creatorID, group.ID); err != nil {
		return nil, err
	}
	return group, nil
}

// Join adds the user to the group. Joining a group the user already belongs
// to is a no-op.
func (s *GroupService) Join(ctx context.Context, userID, groupID int64) error {
	group, err := s.groups.Get(ctx, groupID)
	if err != nil {
		return err
	}
	if group == nil {
		return ErrGroupNotFound
	}

	member, err := s.groups.IsMember(ctx, userID, groupID)
	if err != nil {
		return err
	}
	if member {
		return nil
	}
	return s.groups.AddMember(ctx, userID, groupID)
}

// ListForUser returns the groups the user belongs to.
func (s *GroupService) ListForUser(ctx context.Context, userID int64) ([]domain.Group, error) {
	return s.groups.ListForUser(ctx, userID)
}

// List returns all groups.
func (s *GroupService) List(ctx context.Context) ([]domain.Group, error) {
	return s.groups.List(ctx)
}

// Detail returns the group, whether the user is a member, and the group's
// reports newest first. Viewing requires only that the group exists.
func (s *GroupService) Detail(ctx context.Context, userID, groupID int64) (*domain.Group, bool, []domain.Report, error) {
	group, err := s.groups.Get(ctx, groupID)
	if err != nil {
		return nil, false, nil, err
	}
	if group == nil {
		return nil, false, nil, ErrGroupNotFound
	}

	member, err := s.groups.IsMember(ctx, userID, groupID)
	if err != nil {
		return nil, false, nil, err
	}

	reports, err := s.reports.ListForGroup(ctx, groupID)
	if err != nil {
		return nil, false, nil, err
	}
	return group, member, reports, nil
}

// Delete removes the group and, by cascade, its memberships. Any member may
// delete; deletion is not restricted to the creator.
func (s *GroupService) Delete(ctx context.Context, userID, groupID int64) error {
	group, err := s.groups.Get(ctx, groupID)
	if err != nil {
		return err
	}
	if group == nil {
		return ErrGroupNotFound
	}

	member, err := s.groups.IsMember(ctx, userID, groupID)
	if err != nil {
		return err
	}
	if !member {
		return ErrNotMember
	}
	return s.groups.Delete(ctx, groupID)
}

// PostReport shares the user's latest weight into the group as an immutable
// snapshot. The weight is copied at post time; later records do not alter
// the report.
func (s *GroupService) PostReport(ctx context.Context, userID, groupID int64, comment string) error {
	group, err := s.groups.Get(ctx, groupID)
	if err != nil {
		return err
	}
	if group == nil {
		return ErrGroupNotFound
	}

	member, err := s.groups.IsMember(ctx, userID, groupID)
	if err != nil {
		return err
	}
	if !member {
		return ErrNotMember
	}

	latest, err := s.weights.LatestForUser(ctx, userID)
	if err != nil {
		return err
	}
	if latest == nil {
		return ErrNoWeightRecord
	}

	var c *string
	if comment != "" {
		c = &comment
	}
	return s.reports.Add(ctx, domain.Report{
		CreatedAt: time.Now().In(jst),
		UserID:    userID,
		GroupID:   groupID,
		Weight:    latest.Weight,
		Comment:   c,
	})
}
