// internal/app/store/groups/groupstore.go
package groupstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	membershipstore "github.com/crackenhq/cracken/internal/app/store/memberships"
	"github.com/crackenhq/cracken/internal/app/store/sqldb"
	"github.com/crackenhq/cracken/internal/app/system/invitecode"
	"github.com/crackenhq/cracken/internal/domain/models"
)

// ErrGroupNotFound is returned when the requested group does not exist.
var ErrGroupNotFound = errors.New("group not found")

// Store owns group lifecycle: creation with a unique invite code, joining,
// member departure with admin succession, and the deletion cascade.
//
// Every multi-step flow here runs in a single transaction so a concurrent
// reader never observes a group with zero or two admins, a half-applied
// assignment set, or an emptied-but-undeleted group.
type Store struct {
	db    *sqldb.DB
	codes *invitecode.Generator
}

func New(db *sqldb.DB, codes *invitecode.Generator) *Store {
	return &Store{db: db, codes: codes}
}

// GetByID returns the group row for id.
func GetByID(ctx context.Context, q sqldb.Queryer, id int64) (models.Group, error) {
	var g models.Group
	err := q.GetContext(ctx, &g, "SELECT * FROM groups WHERE id = ?", id)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Group{}, ErrGroupNotFound
	}
	return g, err
}

// GetByInviteCode returns the group carrying the invite code.
func GetByInviteCode(ctx context.Context, q sqldb.Queryer, code string) (models.Group, error) {
	var g models.Group
	err := q.GetContext(ctx, &g, "SELECT * FROM groups WHERE invite_code = ?", code)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Group{}, ErrGroupNotFound
	}
	return g, err
}

// ListForUser returns the groups the user is a member of, oldest join first.
func ListForUser(ctx context.Context, q sqldb.Queryer, userID int64) ([]models.Group, error) {
	var groups []models.Group
	err := q.SelectContext(ctx, &groups, `
		SELECT g.* FROM groups g
		JOIN group_members gm ON gm.group_id = g.id
		WHERE gm.user_id = ?
		ORDER BY gm.joined_at ASC, g.id ASC`,
		userID,
	)
	return groups, err
}

// Create creates a group with a fresh invite code and its creator as the
// sole admin member, atomically.
//
// Each candidate code is pre-checked against existing codes; the UNIQUE
// constraint on groups.invite_code is the authoritative guard, so losing an
// insert race counts as one more collision. Pre-check collisions and insert
// races share the generator's attempt bound.
func (s *Store) Create(ctx context.Context, name string, creatorID int64) (models.Group, error) {
	for attempt := 0; attempt < s.codes.MaxAttempts(); attempt++ {
		code, err := s.codes.Generate()
		if err != nil {
			return models.Group{}, err
		}
		inUse, err := s.codeTaken(ctx, code)
		if err != nil {
			return models.Group{}, err
		}
		if inUse {
			continue
		}

		var g models.Group
		err = s.db.RunInTx(ctx, func(tx *sqlx.Tx) error {
			now := time.Now().UTC()
			res, err := tx.ExecContext(ctx,
				"INSERT INTO groups (name, invite_code, created_at, created_by) VALUES (?, ?, ?, ?)",
				name, code, now, creatorID,
			)
			if err != nil {
				return err
			}
			id, err := res.LastInsertId()
			if err != nil {
				return err
			}
			if err := membershipstore.Add(ctx, tx, id, creatorID, models.RoleAdmin, now); err != nil {
				return err
			}
			g = models.Group{
				ID:         id,
				Name:       name,
				InviteCode: code,
				CreatedAt:  now,
				CreatedBy:  &creatorID,
			}
			return nil
		})
		if sqldb.IsUniqueViolation(err, "groups.invite_code") {
			continue
		}
		if err != nil {
			return models.Group{}, fmt.Errorf("creating group: %w", err)
		}
		return g, nil
	}
	return models.Group{}, invitecode.ErrCodeSpaceExhausted
}

func (s *Store) codeTaken(ctx context.Context, code string) (bool, error) {
	var n int
	if err := s.db.GetContext(ctx, &n, "SELECT COUNT(*) FROM groups WHERE invite_code = ?", code); err != nil {
		return false, err
	}
	return n > 0, nil
}

// Join adds userID to the group identified by inviteCode with the member
// role and returns the group snapshot.
func (s *Store) Join(ctx context.Context, inviteCode string, userID int64) (models.Group, error) {
	g, err := GetByInviteCode(ctx, s.db, inviteCode)
	if err != nil {
		return models.Group{}, err
	}
	if err := membershipstore.Add(ctx, s.db, g.ID, userID, models.RoleMember, time.Now().UTC()); err != nil {
		return models.Group{}, err
	}
	return g, nil
}

// RemoveMember takes userID out of the group, running the departure state
// machine in one transaction:
//
//   - sole member         → delete the group and everything under it
//   - departing admin     → promote the longest-standing other member (ties
//     broken by user id), repoint created_by, then delete the row
//   - regular member      → delete the row
//
// The emptiness check runs before succession: with nobody left to promote,
// succession is meaningless and the group must not outlive its last member.
// Returns whether the group itself was deleted.
//
// Task assignments held by the departing member are left in place as
// history; they are cleared only by assignment replacement or the cascade.
func (s *Store) RemoveMember(ctx context.Context, groupID, userID int64) (groupDeleted bool, err error) {
	err = s.db.RunInTx(ctx, func(tx *sqlx.Tx) error {
		role, err := membershipstore.GetRole(ctx, tx, groupID, userID)
		if err != nil {
			return err
		}

		count, err := membershipstore.Count(ctx, tx, groupID)
		if err != nil {
			return err
		}
		if count == 1 {
			groupDeleted = true
			return deleteCascade(ctx, tx, groupID)
		}

		if role == models.RoleAdmin {
			heir, err := membershipstore.OldestExcluding(ctx, tx, groupID, userID)
			if err != nil {
				return err
			}
			if err := promote(ctx, tx, groupID, heir.UserID); err != nil {
				return err
			}
		}

		return membershipstore.Remove(ctx, tx, groupID, userID)
	})
	return groupDeleted, err
}

// promote makes userID the group's admin and repoints the denormalized
// created_by cache in the same statement batch. It runs before the departing
// admin's row is removed so the group is never observed without an admin.
func promote(ctx context.Context, tx *sqlx.Tx, groupID, userID int64) error {
	if _, err := tx.ExecContext(ctx,
		"UPDATE group_members SET role = ? WHERE group_id = ? AND user_id = ?",
		models.RoleAdmin, groupID, userID,
	); err != nil {
		return fmt.Errorf("promoting successor: %w", err)
	}
	if _, err := tx.ExecContext(ctx,
		"UPDATE groups SET created_by = ? WHERE id = ?",
		userID, groupID,
	); err != nil {
		return fmt.Errorf("updating group admin pointer: %w", err)
	}
	return nil
}

// Delete removes the group and everything under it in one transaction.
// Authorization (creator only) is the caller's responsibility.
func (s *Store) Delete(ctx context.Context, groupID int64) error {
	return s.db.RunInTx(ctx, func(tx *sqlx.Tx) error {
		if _, err := GetByID(ctx, tx, groupID); err != nil {
			return err
		}
		return deleteCascade(ctx, tx, groupID)
	})
}

// deleteCascade deletes the group's dependents in referential order:
// completions, then task assignments, then tasks, then memberships, then the
// group row. The schema carries no ON DELETE CASCADE; this function is the
// only deletion path for these edges.
func deleteCascade(ctx context.Context, tx *sqlx.Tx, groupID int64) error {
	steps := []struct {
		desc  string
		query string
	}{
		{"completions", "DELETE FROM completions WHERE group_id = ?"},
		{"task assignments", "DELETE FROM task_assignments WHERE task_id IN (SELECT id FROM tasks WHERE group_id = ?)"},
		{"tasks", "DELETE FROM tasks WHERE group_id = ?"},
		{"memberships", "DELETE FROM group_members WHERE group_id = ?"},
		{"group", "DELETE FROM groups WHERE id = ?"},
	}
	for _, step := range steps {
		if _, err := tx.ExecContext(ctx, step.query, groupID); err != nil {
			return fmt.Errorf("cascade deleting %s: %w", step.desc, err)
		}
	}
	return nil
}
