// internal/app/store/assignments/assignmentstore_test.go
package assignmentstore_test

import (
	"errors"
	"reflect"
	"testing"
	"time"

	assignmentstore "github.com/crackenhq/cracken/internal/app/store/assignments"
	"github.com/crackenhq/cracken/internal/domain/models"
	"github.com/crackenhq/cracken/internal/testutil"
)

func TestValidate_AllMembers(t *testing.T) {
	db := testutil.NewTestDB(t)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	admin := fixtures.CreateUser(ctx, "alice")
	member := fixtures.CreateUser(ctx, "bob")
	g := fixtures.CreateGroup(ctx, "Apartment 4B", admin)
	fixtures.AddMember(ctx, g.ID, member.ID, models.RoleMember, time.Now())

	if err := assignmentstore.Validate(ctx, db, g.ID, []int64{admin.ID, member.ID}); err != nil {
		t.Fatalf("Validate failed for member ids: %v", err)
	}
}

func TestValidate_EmptyListIsValid(t *testing.T) {
	db := testutil.NewTestDB(t)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	admin := fixtures.CreateUser(ctx, "alice")
	g := fixtures.CreateGroup(ctx, "Apartment 4B", admin)

	if err := assignmentstore.Validate(ctx, db, g.ID, nil); err != nil {
		t.Fatalf("Validate failed for empty list: %v", err)
	}
}

func TestValidate_ListsEveryOffenderSorted(t *testing.T) {
	db := testutil.NewTestDB(t)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	admin := fixtures.CreateUser(ctx, "alice")
	g := fixtures.CreateGroup(ctx, "Apartment 4B", admin)

	err := assignmentstore.Validate(ctx, db, g.ID, []int64{9002, admin.ID, 9001, 9002})
	var invalid *assignmentstore.InvalidAssigneesError
	if !errors.As(err, &invalid) {
		t.Fatalf("expected InvalidAssigneesError, got %v", err)
	}
	want := []int64{9001, 9002}
	if !reflect.DeepEqual(invalid.UserIDs, want) {
		t.Errorf("expected offenders %v, got %v", want, invalid.UserIDs)
	}
}

func TestInsert_CollapsesDuplicates(t *testing.T) {
	db := testutil.NewTestDB(t)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	admin := fixtures.CreateUser(ctx, "alice")
	g := fixtures.CreateGroup(ctx, "Apartment 4B", admin)
	task := fixtures.CreateTask(ctx, g.ID, "dishes")

	if err := assignmentstore.Insert(ctx, db, task.ID, []int64{admin.ID, admin.ID, admin.ID}, time.Now()); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}

	ids, err := assignmentstore.ListUserIDs(ctx, db, task.ID)
	if err != nil {
		t.Fatalf("ListUserIDs failed: %v", err)
	}
	if len(ids) != 1 || ids[0] != admin.ID {
		t.Errorf("expected one assignment row for %d, got %v", admin.ID, ids)
	}
}

func TestReplace_SwapsAssigneeSet(t *testing.T) {
	db := testutil.NewTestDB(t)
	fixtures := testutil.NewFixtures(t, db)
	store := assignmentstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	admin := fixtures.CreateUser(ctx, "alice")
	b := fixtures.CreateUser(ctx, "bob")
	c := fixtures.CreateUser(ctx, "carol")
	g := fixtures.CreateGroup(ctx, "Apartment 4B", admin)
	fixtures.AddMember(ctx, g.ID, b.ID, models.RoleMember, time.Now())
	fixtures.AddMember(ctx, g.ID, c.ID, models.RoleMember, time.Now())
	task := fixtures.CreateTask(ctx, g.ID, "dishes")
	fixtures.Assign(ctx, task.ID, admin.ID)

	if err := store.Replace(ctx, g.ID, task.ID, []int64{b.ID, c.ID}); err != nil {
		t.Fatalf("Replace failed: %v", err)
	}

	ids, err := assignmentstore.ListUserIDs(ctx, db, task.ID)
	if err != nil {
		t.Fatalf("ListUserIDs failed: %v", err)
	}
	want := []int64{b.ID, c.ID}
	if !reflect.DeepEqual(ids, want) {
		t.Errorf("expected assignees %v, got %v", want, ids)
	}
}

func TestReplace_SameSetTwiceIsIdempotent(t *testing.T) {
	db := testutil.NewTestDB(t)
	fixtures := testutil.NewFixtures(t, db)
	store := assignmentstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	admin := fixtures.CreateUser(ctx, "alice")
	b := fixtures.CreateUser(ctx, "bob")
	g := fixtures.CreateGroup(ctx, "Apartment 4B", admin)
	fixtures.AddMember(ctx, g.ID, b.ID, models.RoleMember, time.Now())
	task := fixtures.CreateTask(ctx, g.ID, "dishes")

	set := []int64{admin.ID, b.ID}
	if err := store.Replace(ctx, g.ID, task.ID, set); err != nil {
		t.Fatalf("first Replace failed: %v", err)
	}
	if err := store.Replace(ctx, g.ID, task.ID, set); err != nil {
		t.Fatalf("second Replace failed: %v", err)
	}

	ids, err := assignmentstore.ListUserIDs(ctx, db, task.ID)
	if err != nil {
		t.Fatalf("ListUserIDs failed: %v", err)
	}
	if !reflect.DeepEqual(ids, set) {
		t.Errorf("expected assignees %v after repeated Replace, got %v", set, ids)
	}
	if n := fixtures.CountRows(ctx, "task_assignments", "task_id = ?", task.ID); n != len(set) {
		t.Errorf("expected %d assignment rows, got %d", len(set), n)
	}
}

func TestReplace_EmptySetUnassignsEveryone(t *testing.T) {
	db := testutil.NewTestDB(t)
	fixtures := testutil.NewFixtures(t, db)
	store := assignmentstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	admin := fixtures.CreateUser(ctx, "alice")
	g := fixtures.CreateGroup(ctx, "Apartment 4B", admin)
	task := fixtures.CreateTask(ctx, g.ID, "dishes")
	fixtures.Assign(ctx, task.ID, admin.ID)

	if err := store.Replace(ctx, g.ID, task.ID, []int64{}); err != nil {
		t.Fatalf("Replace failed: %v", err)
	}

	ids, err := assignmentstore.ListUserIDs(ctx, db, task.ID)
	if err != nil {
		t.Fatalf("ListUserIDs failed: %v", err)
	}
	if len(ids) != 0 {
		t.Errorf("expected no assignees, got %v", ids)
	}
}

func TestReplace_FailedValidationLeavesRowsUntouched(t *testing.T) {
	db := testutil.NewTestDB(t)
	fixtures := testutil.NewFixtures(t, db)
	store := assignmentstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	admin := fixtures.CreateUser(ctx, "alice")
	g := fixtures.CreateGroup(ctx, "Apartment 4B", admin)
	task := fixtures.CreateTask(ctx, g.ID, "dishes")
	fixtures.Assign(ctx, task.ID, admin.ID)

	err := store.Replace(ctx, g.ID, task.ID, []int64{admin.ID, 9001})
	var invalid *assignmentstore.InvalidAssigneesError
	if !errors.As(err, &invalid) {
		t.Fatalf("expected InvalidAssigneesError, got %v", err)
	}

	ids, err := assignmentstore.ListUserIDs(ctx, db, task.ID)
	if err != nil {
		t.Fatalf("ListUserIDs failed: %v", err)
	}
	if len(ids) != 1 || ids[0] != admin.ID {
		t.Errorf("expected original assignment intact, got %v", ids)
	}
}
