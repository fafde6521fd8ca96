// internal/app/store/memberships/membershipstore.go
package membershipstore

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/crackenhq/cracken/internal/app/store/sqldb"
	"github.com/crackenhq/cracken/internal/domain/models"
)

var (
	// ErrDuplicateMembership is returned when (group, user) already exists.
	ErrDuplicateMembership = errors.New("user is already a member of this group")

	// ErrMembershipNotFound is returned when (group, user) has no row.
	ErrMembershipNotFound = errors.New("membership not found")

	// ErrGroupNotFound is returned by Add when the group row is absent.
	ErrGroupNotFound = errors.New("group not found")

	errBadRole = errors.New(`role must be "admin" or "member"`)
)

// The functions below take a sqldb.Queryer so that the membership registry
// can run standalone on the pool or compose into the succession and cascade
// transactions in the groups store.

// Add creates a membership row after validating the role and the group's
// existence.
func Add(ctx context.Context, q sqldb.Queryer, groupID, userID int64, role string, joinedAt time.Time) error {
	if role != models.RoleAdmin && role != models.RoleMember {
		return errBadRole
	}

	var exists int
	if err := q.GetContext(ctx, &exists, "SELECT COUNT(*) FROM groups WHERE id = ?", groupID); err != nil {
		return err
	}
	if exists == 0 {
		return ErrGroupNotFound
	}

	_, err := q.ExecContext(ctx,
		"INSERT INTO group_members (group_id, user_id, role, joined_at) VALUES (?, ?, ?, ?)",
		groupID, userID, role, joinedAt.UTC(),
	)
	if sqldb.IsUniqueViolation(err, "group_members") {
		return ErrDuplicateMembership
	}
	return err
}

// Remove deletes the membership row for (groupID, userID).
//
// Remove performs no succession and no cascade; the departure flows in the
// groups store orchestrate those around it.
func Remove(ctx context.Context, q sqldb.Queryer, groupID, userID int64) error {
	res, err := q.ExecContext(ctx,
		"DELETE FROM group_members WHERE group_id = ? AND user_id = ?",
		groupID, userID,
	)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrMembershipNotFound
	}
	return nil
}

// GetRole returns the role held by userID in groupID.
func GetRole(ctx context.Context, q sqldb.Queryer, groupID, userID int64) (string, error) {
	var role string
	err := q.GetContext(ctx, &role,
		"SELECT role FROM group_members WHERE group_id = ? AND user_id = ?",
		groupID, userID,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrMembershipNotFound
	}
	return role, err
}

// Count returns the current member cardinality of the group.
func Count(ctx context.Context, q sqldb.Queryer, groupID int64) (int, error) {
	var n int
	err := q.GetContext(ctx, &n, "SELECT COUNT(*) FROM group_members WHERE group_id = ?", groupID)
	return n, err
}

// OldestExcluding returns the membership with the smallest joined_at among
// members other than excludedUserID. Timestamp ties break on user_id
// ascending so that admin succession is deterministic.
func OldestExcluding(ctx context.Context, q sqldb.Queryer, groupID, excludedUserID int64) (models.Membership, error) {
	var m models.Membership
	err := q.GetContext(ctx, &m, `
		SELECT group_id, user_id, role, joined_at FROM group_members
		WHERE group_id = ? AND user_id != ?
		ORDER BY joined_at ASC, user_id ASC
		LIMIT 1`,
		groupID, excludedUserID,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Membership{}, ErrMembershipNotFound
	}
	return m, err
}

// MemberIDs returns the set of user ids currently in the group.
func MemberIDs(ctx context.Context, q sqldb.Queryer, groupID int64) (map[int64]struct{}, error) {
	var ids []int64
	err := q.SelectContext(ctx, &ids, "SELECT user_id FROM group_members WHERE group_id = ?", groupID)
	if err != nil {
		return nil, err
	}
	set := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set, nil
}

// ListByGroup returns the group's members joined with their identity,
// oldest join first.
func ListByGroup(ctx context.Context, q sqldb.Queryer, groupID int64) ([]models.Member, error) {
	var members []models.Member
	err := q.SelectContext(ctx, &members, `
		SELECT u.id AS user_id, u.email, u.name, gm.role, gm.joined_at
		FROM group_members gm
		JOIN users u ON u.id = gm.user_id
		WHERE gm.group_id = ?
		ORDER BY gm.joined_at ASC, u.id ASC`,
		groupID,
	)
	return members, err
}
