// internal/app/store/assignments/assignmentstore.go
package assignmentstore

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/jmoiron/sqlx"

	membershipstore "github.com/crackenhq/cracken/internal/app/store/memberships"
	"github.com/crackenhq/cracken/internal/app/store/sqldb"
)

// InvalidAssigneesError reports assignee ids that are not current members of
// the task's group. UserIDs is sorted and lists every offender, so callers
// can surface the full set in one response.
type InvalidAssigneesError struct {
	UserIDs []int64
}

func (e *InvalidAssigneesError) Error() string {
	return fmt.Sprintf("users %v are not members of this group", e.UserIDs)
}

// Validate checks that every candidate id is a current member of groupID.
// It reads the membership snapshot through q so that callers inside a
// transaction validate against the same state they write.
func Validate(ctx context.Context, q sqldb.Queryer, groupID int64, userIDs []int64) error {
	if len(userIDs) == 0 {
		return nil
	}
	members, err := membershipstore.MemberIDs(ctx, q, groupID)
	if err != nil {
		return err
	}
	var invalid []int64
	seen := make(map[int64]struct{}, len(userIDs))
	for _, id := range userIDs {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		if _, ok := members[id]; !ok {
			invalid = append(invalid, id)
		}
	}
	if len(invalid) > 0 {
		sort.Slice(invalid, func(i, j int) bool { return invalid[i] < invalid[j] })
		return &InvalidAssigneesError{UserIDs: invalid}
	}
	return nil
}

// Insert writes assignment rows for the task. Duplicate ids in the input
// collapse to one row.
func Insert(ctx context.Context, q sqldb.Queryer, taskID int64, userIDs []int64, assignedAt time.Time) error {
	seen := make(map[int64]struct{}, len(userIDs))
	for _, userID := range userIDs {
		if _, dup := seen[userID]; dup {
			continue
		}
		seen[userID] = struct{}{}
		_, err := q.ExecContext(ctx,
			"INSERT INTO task_assignments (task_id, user_id, assigned_at) VALUES (?, ?, ?)",
			taskID, userID, assignedAt.UTC(),
		)
		if err != nil {
			return fmt.Errorf("inserting assignment for user %d: %w", userID, err)
		}
	}
	return nil
}

// ListUserIDs returns the ids assigned to the task, ascending.
func ListUserIDs(ctx context.Context, q sqldb.Queryer, taskID int64) ([]int64, error) {
	var ids []int64
	err := q.SelectContext(ctx, &ids,
		"SELECT user_id FROM task_assignments WHERE task_id = ? ORDER BY user_id ASC", taskID)
	return ids, err
}

// Store runs the standalone assignment operations.
type Store struct {
	db *sqldb.DB
}

func New(db *sqldb.DB) *Store {
	return &Store{db: db}
}

// Replace swaps the task's assignment set for userIDs in one transaction:
// validate against current membership, delete every existing row, insert the
// new set. An empty set is permitted and means nobody is assigned. A failed
// validation leaves the existing rows untouched.
func (s *Store) Replace(ctx context.Context, groupID, taskID int64, userIDs []int64) error {
	return s.db.RunInTx(ctx, func(tx *sqlx.Tx) error {
		if err := Validate(ctx, tx, groupID, userIDs); err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, "DELETE FROM task_assignments WHERE task_id = ?", taskID); err != nil {
			return fmt.Errorf("clearing assignments: %w", err)
		}
		return Insert(ctx, tx, taskID, userIDs, time.Now().UTC())
	})
}
