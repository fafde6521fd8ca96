// internal/app/store/tasks/taskstore.go
package taskstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	assignmentstore "github.com/crackenhq/cracken/internal/app/store/assignments"
	membershipstore "github.com/crackenhq/cracken/internal/app/store/memberships"
	"github.com/crackenhq/cracken/internal/app/store/sqldb"
	"github.com/crackenhq/cracken/internal/domain/models"
)

// ErrTaskNotFound is returned when the task is absent from the group.
var ErrTaskNotFound = errors.New("task not found")

// Store owns task persistence and the assignment snapshot taken at creation.
type Store struct {
	db *sqldb.DB
}

func New(db *sqldb.DB) *Store {
	return &Store{db: db}
}

// CreateParams carries the task creation input. AssignedUserIDs nil means
// "assign to all current members"; an explicit empty slice means nobody.
type CreateParams struct {
	Name            string
	Emoji           *string
	Category        *string
	AssignedUserIDs []int64
}

// Create inserts the task and its initial assignment rows in one
// transaction.
//
// With no explicit assignee list, the task is assigned to every member the
// group has at creation time; that is a snapshot, not a live binding, so
// later joins and departures do not touch it. Explicit lists are validated against
// current membership and the whole creation fails if any id is not a member.
func (s *Store) Create(ctx context.Context, groupID int64, p CreateParams) (models.Task, []int64, error) {
	var (
		task      models.Task
		assignees []int64
	)
	err := s.db.RunInTx(ctx, func(tx *sqlx.Tx) error {
		if p.AssignedUserIDs == nil {
			members, err := membershipstore.ListByGroup(ctx, tx, groupID)
			if err != nil {
				return err
			}
			assignees = make([]int64, 0, len(members))
			for _, m := range members {
				assignees = append(assignees, m.UserID)
			}
		} else {
			if err := assignmentstore.Validate(ctx, tx, groupID, p.AssignedUserIDs); err != nil {
				return err
			}
			assignees = p.AssignedUserIDs
		}

		now := time.Now().UTC()
		res, err := tx.ExecContext(ctx,
			"INSERT INTO tasks (group_id, name, emoji, category, created_at, is_active) VALUES (?, ?, ?, ?, ?, 1)",
			groupID, p.Name, p.Emoji, p.Category, now,
		)
		if err != nil {
			return fmt.Errorf("inserting task: %w", err)
		}
		id, err := res.LastInsertId()
		if err != nil {
			return err
		}
		if err := assignmentstore.Insert(ctx, tx, id, assignees, now); err != nil {
			return err
		}

		task = models.Task{
			ID:        id,
			GroupID:   groupID,
			Name:      p.Name,
			Emoji:     p.Emoji,
			Category:  p.Category,
			CreatedAt: now,
			IsActive:  true,
		}
		return nil
	})
	if err != nil {
		return models.Task{}, nil, err
	}
	return task, assignees, nil
}

// GetByID returns the task scoped to the group.
func (s *Store) GetByID(ctx context.Context, groupID, taskID int64) (models.Task, error) {
	var t models.Task
	err := s.db.GetContext(ctx, &t,
		"SELECT * FROM tasks WHERE id = ? AND group_id = ?", taskID, groupID)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Task{}, ErrTaskNotFound
	}
	return t, err
}

// List returns the group's tasks, newest first. Soft-deleted tasks are
// excluded unless includeInactive is set.
func (s *Store) List(ctx context.Context, groupID int64, includeInactive bool) ([]models.Task, error) {
	query := "SELECT * FROM tasks WHERE group_id = ?"
	if !includeInactive {
		query += " AND is_active = 1"
	}
	query += " ORDER BY created_at DESC, id DESC"

	var tasks []models.Task
	err := s.db.SelectContext(ctx, &tasks, query, groupID)
	return tasks, err
}

// UpdateParams carries the partial update input; nil fields are left alone.
type UpdateParams struct {
	Name     *string
	Emoji    *string
	Category *string
}

// Update applies a partial update and returns the fresh row.
func (s *Store) Update(ctx context.Context, groupID, taskID int64, p UpdateParams) (models.Task, error) {
	t, err := s.GetByID(ctx, groupID, taskID)
	if err != nil {
		return models.Task{}, err
	}
	if p.Name != nil {
		t.Name = *p.Name
	}
	if p.Emoji != nil {
		t.Emoji = p.Emoji
	}
	if p.Category != nil {
		t.Category = p.Category
	}
	_, err = s.db.ExecContext(ctx,
		"UPDATE tasks SET name = ?, emoji = ?, category = ? WHERE id = ? AND group_id = ?",
		t.Name, t.Emoji, t.Category, taskID, groupID,
	)
	if err != nil {
		return models.Task{}, fmt.Errorf("updating task %d: %w", taskID, err)
	}
	return t, nil
}

// SoftDelete marks the task inactive. Assignments and completion history are
// untouched; only the group cascade removes them.
func (s *Store) SoftDelete(ctx context.Context, groupID, taskID int64) error {
	res, err := s.db.ExecContext(ctx,
		"UPDATE tasks SET is_active = 0 WHERE id = ? AND group_id = ?", taskID, groupID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrTaskNotFound
	}
	return nil
}
