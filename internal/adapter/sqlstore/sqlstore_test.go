package sqlstore

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/WTomoharu/db-final-project/internal/domain"
)

// openTestDB opens a file-backed SQLite store in a temp dir.
func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := OpenSQLite(filepath.Join(t.TempDir(), "db.sqlite"))
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestOpenSQLite_Idempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "db.sqlite")

	db, err := OpenSQLite(path)
	if err != nil {
		t.Fatalf("first open: %v", err)
	}
	if _, err := NewUserRepo(db).Create(context.Background(), "alice", "pw"); err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := db.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	// Reopening runs the schema statements again and keeps existing rows.
	db, err = OpenSQLite(path)
	if err != nil {
		t.Fatalf("second open: %v", err)
	}
	defer db.Close()

	u, err := NewUserRepo(db).GetByUsername(context.Background(), "alice")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if u == nil || u.Password != "pw" {
		t.Fatalf("expected alice to survive reopen, got %+v", u)
	}
}

func TestUserRepo_CreateAndGoal(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	users := NewUserRepo(db)

	u, err := users.Create(ctx, "alice", "pw1")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if u.ID == 0 {
		t.Error("expected assigned id")
	}
	if u.InitialWeight != nil || u.GoalWeight != nil {
		t.Errorf("expected null weight columns, got %+v", u)
	}

	if _, err := users.Create(ctx, "alice", "pw2"); err == nil {
		t.Error("expected unique violation on duplicate username")
	}

	missing, err := users.GetByUsername(ctx, "nobody")
	if err != nil || missing != nil {
		t.Fatalf("expected (nil, nil) for absent user, got %v, %v", missing, err)
	}

	if err := users.SetGoalWeight(ctx, u.ID, 65.5); err != nil {
		t.Fatalf("set goal: %v", err)
	}
	got, err := users.GetByID(ctx, u.ID)
	if err != nil {
		t.Fatalf("get by id: %v", err)
	}
	if got.GoalWeight == nil || *got.GoalWeight != 65.5 {
		t.Errorf("expected goal 65.5, got %v", got.GoalWeight)
	}

	// Updating a missing row is a no-op, not an error.
	if err := users.SetGoalWeight(ctx, 999, 50); err != nil {
		t.Errorf("set goal on missing user: %v", err)
	}

	all, err := users.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(all) != 1 {
		t.Errorf("expected 1 user, got %d", len(all))
	}
}

func TestGroupRepo_MembershipAndCascade(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	users := NewUserRepo(db)
	groups := NewGroupRepo(db)

	alice, _ := users.Create(ctx, "alice", "pw")
	bob, _ := users.Create(ctx, "bob", "pw")

	g, err := groups.Create(ctx, "Runners")
	if err != nil {
		t.Fatalf("create group: %v", err)
	}

	if err := groups.AddMember(ctx, alice.ID, g.ID); err != nil {
		t.Fatalf("add member: %v", err)
	}
	if err := groups.AddMember(ctx, alice.ID, g.ID); err == nil {
		t.Error("expected composite key violation on duplicate membership")
	}
	if err := groups.AddMember(ctx, bob.ID, g.ID); err != nil {
		t.Fatalf("add second member: %v", err)
	}

	member, err := groups.IsMember(ctx, alice.ID, g.ID)
	if err != nil || !member {
		t.Fatalf("expected alice to be a member, got %v, %v", member, err)
	}

	mine, err := groups.ListForUser(ctx, alice.ID)
	if err != nil {
		t.Fatalf("list for user: %v", err)
	}
	if len(mine) != 1 || mine[0].Name != "Runners" {
		t.Fatalf("unexpected groups: %v", mine)
	}

	if err := groups.Delete(ctx, g.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	got, _ := groups.Get(ctx, g.ID)
	if got != nil {
		t.Errorf("expected group gone, got %+v", got)
	}
	member, _ = groups.IsMember(ctx, alice.ID, g.ID)
	if member {
		t.Error("expected memberships to cascade on delete")
	}
}

func TestWeightRepo_OrderingAndLatest(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	users := NewUserRepo(db)
	weights := NewWeightRepo(db)

	alice, _ := users.Create(ctx, "alice", "pw")

	latest, err := weights.LatestForUser(ctx, alice.ID)
	if err != nil || latest != nil {
		t.Fatalf("expected (nil, nil) with no records, got %v, %v", latest, err)
	}

	jst := time.FixedZone("JST", 9*60*60)
	base := time.Date(2026, 8, 1, 9, 0, 0, 123456789, jst)
	for i, w := range []float64{70.5, 69.8, 70.1} {
		if err := weights.Add(ctx, alice.ID, w, base.Add(time.Duration(i)*time.Hour)); err != nil {
			t.Fatalf("add %d: %v", i, err)
		}
	}

	records, err := weights.ListForUser(ctx, alice.ID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("expected 3 records, got %d", len(records))
	}
	for i := 1; i < len(records); i++ {
		if !records[i-1].CreatedAt.Before(records[i].CreatedAt) {
			t.Fatal("expected records oldest first")
		}
	}

	// The stored text round-trips to the same instant and offset.
	if !records[0].CreatedAt.Equal(base) {
		t.Errorf("expected %v, got %v", base, records[0].CreatedAt)
	}
	_, offset := records[0].CreatedAt.Zone()
	if offset != 9*60*60 {
		t.Errorf("expected UTC+9 offset preserved, got %d", offset)
	}

	latest, err = weights.LatestForUser(ctx, alice.ID)
	if err != nil {
		t.Fatalf("latest: %v", err)
	}
	if latest.Weight != 70.1 {
		t.Errorf("expected latest weight 70.1, got %f", latest.Weight)
	}
}

func TestReportRepo_NewestFirstWithUsername(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	users := NewUserRepo(db)
	groups := NewGroupRepo(db)
	reports := NewReportRepo(db)

	alice, _ := users.Create(ctx, "alice", "pw")
	g, _ := groups.Create(ctx, "Runners")
	other, _ := groups.Create(ctx, "Lifters")

	base := time.Date(2026, 8, 1, 9, 0, 0, 0, time.UTC)
	comment := "feeling good"
	add := func(at time.Time, weight float64, c *string, groupID int64) {
		t.Helper()
		err := reports.Add(ctx, domain.Report{
			CreatedAt: at,
			UserID:    alice.ID,
			GroupID:   groupID,
			Weight:    weight,
			Comment:   c,
		})
		if err != nil {
			t.Fatalf("add report: %v", err)
		}
	}
	add(base, 70.5, &comment, g.ID)
	add(base.Add(time.Hour), 69.8, nil, g.ID)
	add(base.Add(2*time.Hour), 80.0, nil, other.ID)

	got, err := reports.ListForGroup(ctx, g.ID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 reports for group, got %d", len(got))
	}
	if got[0].Weight != 69.8 || got[1].Weight != 70.5 {
		t.Fatalf("expected newest first, got %v", got)
	}
	if got[0].Comment != nil {
		t.Errorf("expected NULL comment, got %q", *got[0].Comment)
	}
	if got[1].Comment == nil || *got[1].Comment != "feeling good" {
		t.Errorf("unexpected comment: %v", got[1].Comment)
	}
	for _, r := range got {
		if r.Username != "alice" {
			t.Errorf("expected joined username, got %q", r.Username)
		}
	}
}

func TestSessionRepo_CRUD(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	users := NewUserRepo(db)
	sessions := NewSessionRepo(db)

	alice, _ := users.Create(ctx, "alice", "pw")

	if err := sessions.Create(ctx, alice.ID, "tok"); err != nil {
		t.Fatalf("create: %v", err)
	}

	s, err := sessions.GetByToken(ctx, "tok")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if s == nil || s.UserID != alice.ID {
		t.Fatalf("unexpected session: %+v", s)
	}
	if s.CreatedAt.IsZero() {
		t.Error("expected created_at to be set")
	}

	missing, err := sessions.GetByToken(ctx, "other")
	if err != nil || missing != nil {
		t.Fatalf("expected (nil, nil) for unknown token, got %v, %v", missing, err)
	}

	if err := sessions.Delete(ctx, "tok"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	s, _ = sessions.GetByToken(ctx, "tok")
	if s != nil {
		t.Error("expected session gone after delete")
	}
	if err := sessions.Delete(ctx, "tok"); err != nil {
		t.Errorf("repeat delete: %v", err)
	}
}

func TestTimeRoundTrip(t *testing.T) {
	jst := time.FixedZone("JST", 9*60*60)
	cases := []time.Time{
		time.Date(2026, 8, 1, 9, 0, 0, 0, time.UTC),
		time.Date(2026, 8, 1, 9, 0, 0, 5, jst),
		time.Date(2026, 12, 31, 23, 59, 59, 999999999, jst),
	}
	for _, want := range cases {
		got, err := parseTime(formatTime(want))
		if err != nil {
			t.Fatalf("parse %v: %v", want, err)
		}
		if !got.Equal(want) {
			t.Errorf("round trip changed instant: %v != %v", got, want)
		}
	}

	// Fixed-width fractional seconds keep string order chronological.
	a := formatTime(time.Date(2026, 8, 1, 9, 0, 0, 5, time.UTC))
	b := formatTime(time.Date(2026, 8, 1, 9, 0, 0, 100, time.UTC))
	if !(a < b) {
		t.Errorf("expected %q < %q", a, b)
	}
}
