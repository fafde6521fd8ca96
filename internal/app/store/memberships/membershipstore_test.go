// internal/app/store/memberships/membershipstore_test.go
package membershipstore_test

import (
	"errors"
	"testing"
	"time"

	membershipstore "github.com/crackenhq/cracken/internal/app/store/memberships"
	"github.com/crackenhq/cracken/internal/domain/models"
	"github.com/crackenhq/cracken/internal/testutil"
)

func TestAdd_AndGetRole(t *testing.T) {
	db := testutil.NewTestDB(t)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	admin := fixtures.CreateUser(ctx, "alice")
	joiner := fixtures.CreateUser(ctx, "bob")
	group := fixtures.CreateGroup(ctx, "Apartment 4B", admin)

	if err := membershipstore.Add(ctx, db, group.ID, joiner.ID, models.RoleMember, time.Now()); err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	role, err := membershipstore.GetRole(ctx, db, group.ID, joiner.ID)
	if err != nil {
		t.Fatalf("GetRole failed: %v", err)
	}
	if role != models.RoleMember {
		t.Errorf("expected role %q, got %q", models.RoleMember, role)
	}
}

func TestAdd_DuplicateMembership(t *testing.T) {
	db := testutil.NewTestDB(t)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	admin := fixtures.CreateUser(ctx, "alice")
	group := fixtures.CreateGroup(ctx, "Apartment 4B", admin)

	err := membershipstore.Add(ctx, db, group.ID, admin.ID, models.RoleMember, time.Now())
	if !errors.Is(err, membershipstore.ErrDuplicateMembership) {
		t.Fatalf("expected ErrDuplicateMembership, got %v", err)
	}
}

func TestAdd_MissingGroup(t *testing.T) {
	db := testutil.NewTestDB(t)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	u := fixtures.CreateUser(ctx, "alice")

	err := membershipstore.Add(ctx, db, 9999, u.ID, models.RoleMember, time.Now())
	if !errors.Is(err, membershipstore.ErrGroupNotFound) {
		t.Fatalf("expected ErrGroupNotFound, got %v", err)
	}
}

func TestRemove_MissingMembership(t *testing.T) {
	db := testutil.NewTestDB(t)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	admin := fixtures.CreateUser(ctx, "alice")
	group := fixtures.CreateGroup(ctx, "Apartment 4B", admin)

	err := membershipstore.Remove(ctx, db, group.ID, 9999)
	if !errors.Is(err, membershipstore.ErrMembershipNotFound) {
		t.Fatalf("expected ErrMembershipNotFound, got %v", err)
	}
}

func TestCount(t *testing.T) {
	db := testutil.NewTestDB(t)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	admin := fixtures.CreateUser(ctx, "alice")
	group := fixtures.CreateGroup(ctx, "Apartment 4B", admin)
	b := fixtures.CreateUser(ctx, "bob")
	c := fixtures.CreateUser(ctx, "carol")
	fixtures.AddMember(ctx, group.ID, b.ID, models.RoleMember, time.Now())
	fixtures.AddMember(ctx, group.ID, c.ID, models.RoleMember, time.Now())

	n, err := membershipstore.Count(ctx, db, group.ID)
	if err != nil {
		t.Fatalf("Count failed: %v", err)
	}
	if n != 3 {
		t.Errorf("expected 3 members, got %d", n)
	}
}

func TestOldestExcluding_OrdersByJoinTime(t *testing.T) {
	db := testutil.NewTestDB(t)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	admin := fixtures.CreateUser(ctx, "alice")
	group := fixtures.CreateGroup(ctx, "Apartment 4B", admin)

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	early := fixtures.CreateUser(ctx, "bob")
	late := fixtures.CreateUser(ctx, "carol")
	fixtures.AddMember(ctx, group.ID, late.ID, models.RoleMember, base.Add(2*time.Hour))
	fixtures.AddMember(ctx, group.ID, early.ID, models.RoleMember, base)

	heir, err := membershipstore.OldestExcluding(ctx, db, group.ID, admin.ID)
	if err != nil {
		t.Fatalf("OldestExcluding failed: %v", err)
	}
	if heir.UserID != early.ID {
		t.Errorf("expected earliest joiner %d, got %d", early.ID, heir.UserID)
	}
}

func TestOldestExcluding_TieBreaksOnUserID(t *testing.T) {
	db := testutil.NewTestDB(t)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	admin := fixtures.CreateUser(ctx, "alice")
	group := fixtures.CreateGroup(ctx, "Apartment 4B", admin)

	joined := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	b := fixtures.CreateUser(ctx, "bob")
	c := fixtures.CreateUser(ctx, "carol")
	fixtures.AddMember(ctx, group.ID, b.ID, models.RoleMember, joined)
	fixtures.AddMember(ctx, group.ID, c.ID, models.RoleMember, joined)

	heir, err := membershipstore.OldestExcluding(ctx, db, group.ID, admin.ID)
	if err != nil {
		t.Fatalf("OldestExcluding failed: %v", err)
	}
	if heir.UserID != b.ID {
		t.Errorf("expected lower user id %d on tie, got %d", b.ID, heir.UserID)
	}
}

func TestOldestExcluding_NoOtherMembers(t *testing.T) {
	db := testutil.NewTestDB(t)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	admin := fixtures.CreateUser(ctx, "alice")
	group := fixtures.CreateGroup(ctx, "Apartment 4B", admin)

	_, err := membershipstore.OldestExcluding(ctx, db, group.ID, admin.ID)
	if !errors.Is(err, membershipstore.ErrMembershipNotFound) {
		t.Fatalf("expected ErrMembershipNotFound, got %v", err)
	}
}

func TestListByGroup_IncludesIdentity(t *testing.T) {
	db := testutil.NewTestDB(t)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	admin := fixtures.CreateUser(ctx, "alice")
	group := fixtures.CreateGroup(ctx, "Apartment 4B", admin)
	b := fixtures.CreateUser(ctx, "bob")
	fixtures.AddMember(ctx, group.ID, b.ID, models.RoleMember, time.Now().Add(time.Minute))

	members, err := membershipstore.ListByGroup(ctx, db, group.ID)
	if err != nil {
		t.Fatalf("ListByGroup failed: %v", err)
	}
	if len(members) != 2 {
		t.Fatalf("expected 2 members, got %d", len(members))
	}
	if members[0].UserID != admin.ID || members[0].Role != models.RoleAdmin {
		t.Errorf("expected admin first, got user %d role %q", members[0].UserID, members[0].Role)
	}
	if members[1].Name != "bob" || members[1].Email == "" {
		t.Errorf("expected joined identity for second member, got %+v", members[1])
	}
}
