// internal/domain/models/completion.go
package models

import "time"

// Completion records that a user completed a task at a point in time.
// Rows are append-only: never updated, deleted only by the group cascade.
//
// GroupID is copied from the task when the completion is recorded so that
// per-group history queries don't need a join through tasks.
type Completion struct {
	ID          int64     `db:"id" json:"id"`
	TaskID      int64     `db:"task_id" json:"task_id"`
	UserID      int64     `db:"user_id" json:"user_id"`
	GroupID     int64     `db:"group_id" json:"group_id"`
	CompletedAt time.Time `db:"completed_at" json:"completed_at"`
}
