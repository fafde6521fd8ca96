// internal/domain/models/assignment.go
package models

import "time"

// Assignment binds a task to a user. One row per (task_id, user_id).
//
// Assignees are validated against current group membership when the row is
// written. A later removal of the member leaves the row in place as history;
// it disappears only via assignment replacement or the group cascade.
type Assignment struct {
	TaskID     int64     `db:"task_id" json:"task_id"`
	UserID     int64     `db:"user_id" json:"user_id"`
	AssignedAt time.Time `db:"assigned_at" json:"assigned_at"`
}
