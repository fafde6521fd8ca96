// internal/app/store/completions/completionstore.go
package completionstore

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/crackenhq/cracken/internal/app/store/sqldb"
	"github.com/crackenhq/cracken/internal/domain/models"
)

var (
	// ErrTaskNotFound is returned when the task is absent from the group.
	ErrTaskNotFound = errors.New("task not found")

	// ErrTaskInactive is returned when recording against a soft-deleted task.
	ErrTaskInactive = errors.New("task is no longer active")
)

// Store appends and reads completion history.
type Store struct {
	db *sqldb.DB
}

func New(db *sqldb.DB) *Store {
	return &Store{db: db}
}

// Record appends a completion for the task by the user. The task must belong
// to the group and still be active; group_id is copied from the task so the
// denormalized column always matches task.group_id at recording time.
func (s *Store) Record(ctx context.Context, groupID, taskID, userID int64) (models.Completion, error) {
	var task models.Task
	err := s.db.GetContext(ctx, &task,
		"SELECT * FROM tasks WHERE id = ? AND group_id = ?", taskID, groupID)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Completion{}, ErrTaskNotFound
	}
	if err != nil {
		return models.Completion{}, err
	}
	if !task.IsActive {
		return models.Completion{}, ErrTaskInactive
	}

	now := time.Now().UTC()
	res, err := s.db.ExecContext(ctx,
		"INSERT INTO completions (task_id, user_id, group_id, completed_at) VALUES (?, ?, ?, ?)",
		taskID, userID, task.GroupID, now,
	)
	if err != nil {
		return models.Completion{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return models.Completion{}, err
	}
	return models.Completion{
		ID:          id,
		TaskID:      taskID,
		UserID:      userID,
		GroupID:     task.GroupID,
		CompletedAt: now,
	}, nil
}

// Filter narrows completion history queries. Nil fields match everything.
type Filter struct {
	UserID *int64
	TaskID *int64
}

// List returns the group's completion history, newest first. History from
// soft-deleted tasks is included; rows disappear only via the group cascade.
func (s *Store) List(ctx context.Context, groupID int64, f Filter) ([]models.Completion, error) {
	query := "SELECT * FROM completions WHERE group_id = ?"
	args := []interface{}{groupID}
	if f.UserID != nil {
		query += " AND user_id = ?"
		args = append(args, *f.UserID)
	}
	if f.TaskID != nil {
		query += " AND task_id = ?"
		args = append(args, *f.TaskID)
	}
	query += " ORDER BY completed_at DESC, id DESC"

	var completions []models.Completion
	err := s.db.SelectContext(ctx, &completions, query, args...)
	return completions, err
}
