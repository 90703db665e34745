package domain

import "context"

// Group is a named collection of users who can view each other's reports.
type Group struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// GroupRepository is the port for group and membership persistence.
type GroupRepository interface {
	Create(ctx context.Context, name string) (*Group, error)
	Get(ctx context.Context, id int64) (*Group, error)
	List(ctx context.Context) ([]Group, error)
	ListForUser(ctx context.Context, userID int64) ([]Group, error)
	AddMember(ctx context.Context, userID, groupID int64) error
	IsMember(ctx context.Context, userID, groupID int64) (bool, error)
	Delete(ctx context.Context, id int64) error
}
