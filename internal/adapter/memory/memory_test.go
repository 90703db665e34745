package memory

import (
	"context"
	"testing"
	"time"

	"github.com/WTomoharu/db-final-project/internal/domain"
)

func TestUserRepo(t *testing.T) {
	db := New()
	ctx := context.Background()
	users := db.UserRepo()

	u, err := users.Create(ctx, "alice", "pw1")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if u.ID == 0 {
		t.Error("expected non-zero ID")
	}

	// Duplicate username behaves like the unique constraint.
	if _, err := users.Create(ctx, "alice", "pw2"); err == nil {
		t.Error("expected duplicate username error")
	}

	got, err := users.GetByUsername(ctx, "alice")
	if err != nil {
		t.Fatalf("GetByUsername: %v", err)
	}
	if got == nil || got.Password != "pw1" {
		t.Fatalf("original user changed: %+v", got)
	}

	missing, err := users.GetByUsername(ctx, "nobody")
	if err != nil || missing != nil {
		t.Fatalf("expected (nil, nil) for absent user, got %v, %v", missing, err)
	}

	if err := users.SetGoalWeight(ctx, u.ID, 65); err != nil {
		t.Fatalf("SetGoalWeight: %v", err)
	}
	got, _ = users.GetByID(ctx, u.ID)
	if got.GoalWeight == nil || *got.GoalWeight != 65 {
		t.Errorf("expected goal weight 65, got %v", got.GoalWeight)
	}

	all, _ := users.List(ctx)
	if len(all) != 1 {
		t.Errorf("expected 1 user, got %d", len(all))
	}
}

func TestGroupRepo_DeleteCascadesMemberships(t *testing.T) {
	db := New()
	ctx := context.Background()
	groups := db.GroupRepo()

	g, err := groups.Create(ctx, "Runners")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if err := groups.AddMember(ctx, 1, g.ID); err != nil {
		t.Fatalf("AddMember: %v", err)
	}
	if err := groups.AddMember(ctx, 1, g.ID); err == nil {
		t.Error("expected duplicate membership error")
	}

	member, _ := groups.IsMember(ctx, 1, g.ID)
	if !member {
		t.Error("expected membership")
	}

	if err := groups.Delete(ctx, g.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	member, _ = groups.IsMember(ctx, 1, g.ID)
	if member {
		t.Error("expected membership to cascade on delete")
	}
	got, _ := groups.Get(ctx, g.ID)
	if got != nil {
		t.Errorf("expected group gone, got %+v", got)
	}
}

func TestWeightRepo_Latest(t *testing.T) {
	db := New()
	ctx := context.Background()
	weights := db.WeightRepo()

	latest, err := weights.LatestForUser(ctx, 1)
	if err != nil || latest != nil {
		t.Fatalf("expected (nil, nil) with no records, got %v, %v", latest, err)
	}

	base := time.Date(2026, 8, 1, 9, 0, 0, 0, time.UTC)
	_ = weights.Add(ctx, 1, 70.5, base)
	_ = weights.Add(ctx, 1, 69.8, base.Add(time.Hour))
	_ = weights.Add(ctx, 2, 90.0, base.Add(2*time.Hour))

	latest, err = weights.LatestForUser(ctx, 1)
	if err != nil {
		t.Fatalf("LatestForUser: %v", err)
	}
	if latest.Weight != 69.8 {
		t.Errorf("expected 69.8, got %f", latest.Weight)
	}

	records, _ := weights.ListForUser(ctx, 1)
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	if !records[0].CreatedAt.Before(records[1].CreatedAt) {
		t.Error("expected records oldest first")
	}
}

func TestSessionRepo(t *testing.T) {
	db := New()
	ctx := context.Background()
	sessions := db.SessionRepo()

	if err := sessions.Create(ctx, 1, "tok"); err != nil {
		t.Fatalf("Create: %v", err)
	}

	s, err := sessions.GetByToken(ctx, "tok")
	if err != nil {
		t.Fatalf("GetByToken: %v", err)
	}
	if s == nil || s.UserID != 1 {
		t.Fatalf("unexpected session: %+v", s)
	}

	if err := sessions.Delete(ctx, "tok"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	s, _ = sessions.GetByToken(ctx, "tok")
	if s != nil {
		t.Error("expected session gone after delete")
	}

	// Deleting again is a no-op.
	if err := sessions.Delete(ctx, "tok"); err != nil {
		t.Errorf("repeat delete: %v", err)
	}
}

func TestReportRepo_JoinsUsername(t *testing.T) {
	db := New()
	ctx := context.Background()

	alice, _ := db.UserRepo().Create(ctx, "alice", "pw")
	g, _ := db.GroupRepo().Create(ctx, "Runners")

	err := db.ReportRepo().Add(ctx, domain.Report{
		CreatedAt: time.Now(),
		UserID:    alice.ID,
		GroupID:   g.ID,
		Weight:    70.5,
	})
	if err != nil {
		t.Fatalf("Add: %v", err)
	}

	reports, err := db.ReportRepo().ListForGroup(ctx, g.ID)
	if err != nil {
		t.Fatalf("ListForGroup: %v", err)
	}
	if len(reports) != 1 || reports[0].Username != "alice" {
		t.Fatalf("expected joined username, got %+v", reports)
	}
}
