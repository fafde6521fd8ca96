// internal/domain/models/task.go
package models

import "time"

// Task is a chore owned by a group. Tasks are soft-deleted by flipping
// IsActive off; the row (and its completion history) is only physically
// removed by the group deletion cascade.
type Task struct {
	ID        int64     `db:"id" json:"id"`
	GroupID   int64     `db:"group_id" json:"group_id"`
	Name      string    `db:"name" json:"name"`
	Emoji     *string   `db:"emoji" json:"emoji"`
	Category  *string   `db:"category" json:"category"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	IsActive  bool      `db:"is_active" json:"is_active"`
}
