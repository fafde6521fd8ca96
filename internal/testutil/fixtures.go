package testutil

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/crackenhq/cracken/internal/app/store/sqldb"
	"github.com/crackenhq/cracken/internal/domain/models"
)

// Fixtures provides helper methods for creating test data. Rows are written
// with plain SQL so fixture setup stays independent of the store packages
// under test.
type Fixtures struct {
	db *sqldb.DB
	t  *testing.T

	seq int
}

// NewFixtures creates a Fixtures instance for the given test database.
func NewFixtures(t *testing.T, db *sqldb.DB) *Fixtures {
	t.Helper()
	return &Fixtures{db: db, t: t}
}

// DB returns the underlying database for direct access in tests.
func (f *Fixtures) DB() *sqldb.DB {
	return f.db
}

// CreateUser creates a test user with a unique email derived from name.
func (f *Fixtures) CreateUser(ctx context.Context, name string) models.User {
	f.t.Helper()

	f.seq++
	email := fmt.Sprintf("%s-%d@test.example", name, f.seq)
	now := time.Now().UTC()
	res, err := f.db.ExecContext(ctx,
		"INSERT INTO users (email, hashed_password, name, created_at, updated_at) VALUES (?, ?, ?, ?, ?)",
		email, "not-a-real-hash", name, now, now,
	)
	if err != nil {
		f.t.Fatalf("creating test user %q: %v", name, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		f.t.Fatalf("creating test user %q: %v", name, err)
	}
	return models.User{ID: id, Email: email, Name: name, CreatedAt: now, UpdatedAt: now}
}

// CreateGroup creates a group with the given user as admin. The admin's
// membership row is written too, so the group satisfies the one-admin rule
// from the start.
func (f *Fixtures) CreateGroup(ctx context.Context, name string, admin models.User) models.Group {
	f.t.Helper()

	f.seq++
	code := fmt.Sprintf("TEST%04d", f.seq)
	now := time.Now().UTC()
	res, err := f.db.ExecContext(ctx,
		"INSERT INTO groups (name, invite_code, created_at, created_by) VALUES (?, ?, ?, ?)",
		name, code, now, admin.ID,
	)
	if err != nil {
		f.t.Fatalf("creating test group %q: %v", name, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		f.t.Fatalf("creating test group %q: %v", name, err)
	}
	f.AddMember(ctx, id, admin.ID, models.RoleAdmin, now)
	return models.Group{ID: id, Name: name, InviteCode: code, CreatedAt: now, CreatedBy: &admin.ID}
}

// AddMember writes a membership row directly. joinedAt is explicit so
// succession order can be controlled from tests.
func (f *Fixtures) AddMember(ctx context.Context, groupID, userID int64, role string, joinedAt time.Time) {
	f.t.Helper()

	_, err := f.db.ExecContext(ctx,
		"INSERT INTO group_members (group_id, user_id, role, joined_at) VALUES (?, ?, ?, ?)",
		groupID, userID, role, joinedAt.UTC(),
	)
	if err != nil {
		f.t.Fatalf("adding member %d to group %d: %v", userID, groupID, err)
	}
}

// CreateTask creates an active task in the group with no assignments.
func (f *Fixtures) CreateTask(ctx context.Context, groupID int64, name string) models.Task {
	f.t.Helper()

	now := time.Now().UTC()
	res, err := f.db.ExecContext(ctx,
		"INSERT INTO tasks (group_id, name, emoji, category, created_at, is_active) VALUES (?, ?, NULL, NULL, ?, 1)",
		groupID, name, now,
	)
	if err != nil {
		f.t.Fatalf("creating test task %q: %v", name, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		f.t.Fatalf("creating test task %q: %v", name, err)
	}
	return models.Task{ID: id, GroupID: groupID, Name: name, CreatedAt: now, IsActive: true}
}

// Assign writes an assignment row for the task.
func (f *Fixtures) Assign(ctx context.Context, taskID, userID int64) {
	f.t.Helper()

	_, err := f.db.ExecContext(ctx,
		"INSERT INTO task_assignments (task_id, user_id, assigned_at) VALUES (?, ?, ?)",
		taskID, userID, time.Now().UTC(),
	)
	if err != nil {
		f.t.Fatalf("assigning task %d to user %d: %v", taskID, userID, err)
	}
}

// RecordCompletion writes a completion row for the task.
func (f *Fixtures) RecordCompletion(ctx context.Context, groupID, taskID, userID int64) models.Completion {
	f.t.Helper()

	now := time.Now().UTC()
	res, err := f.db.ExecContext(ctx,
		"INSERT INTO completions (task_id, user_id, group_id, completed_at) VALUES (?, ?, ?, ?)",
		taskID, userID, groupID, now,
	)
	if err != nil {
		f.t.Fatalf("recording completion for task %d: %v", taskID, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		f.t.Fatalf("recording completion for task %d: %v", taskID, err)
	}
	return models.Completion{ID: id, TaskID: taskID, UserID: userID, GroupID: groupID, CompletedAt: now}
}

// CountRows returns the number of rows in table matching the where clause.
func (f *Fixtures) CountRows(ctx context.Context, table, where string, args ...interface{}) int {
	f.t.Helper()

	var n int
	query := "SELECT COUNT(*) FROM " + table
	if where != "" {
		query += " WHERE " + where
	}
	if err := f.db.GetContext(ctx, &n, query, args...); err != nil {
		f.t.Fatalf("counting rows in %s: %v", table, err)
	}
	return n
}
