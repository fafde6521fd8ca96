// internal/app/policy/grouppolicy/grouppolicy.go
package grouppolicy

import (
	"context"
	"errors"

	groupstore "github.com/crackenhq/cracken/internal/app/store/groups"
	membershipstore "github.com/crackenhq/cracken/internal/app/store/memberships"
	"github.com/crackenhq/cracken/internal/app/store/sqldb"
	"github.com/crackenhq/cracken/internal/domain/models"
)

var (
	// ErrNotMember means the caller is not in the group.
	ErrNotMember = errors.New("you are not a member of this group")

	// ErrNotAdmin means the action needs the admin role.
	ErrNotAdmin = errors.New("only group admins can perform this action")

	// ErrNotCreator means the action is reserved for the group's creator
	// (its current admin, since succession keeps created_by current).
	ErrNotCreator = errors.New("only the group creator can perform this action")
)

// RequireMember loads the group and verifies userID belongs to it. Every
// group-scoped operation passes through here first, so absent groups read as
// not-found and outsiders as forbidden before any feature logic runs.
func RequireMember(ctx context.Context, q sqldb.Queryer, groupID, userID int64) (models.Group, error) {
	g, err := groupstore.GetByID(ctx, q, groupID)
	if err != nil {
		return models.Group{}, err
	}
	if _, err := membershipstore.GetRole(ctx, q, groupID, userID); err != nil {
		if errors.Is(err, membershipstore.ErrMembershipNotFound) {
			return models.Group{}, ErrNotMember
		}
		return models.Group{}, err
	}
	return g, nil
}

// RequireAdmin verifies userID holds the admin role in the group.
func RequireAdmin(ctx context.Context, q sqldb.Queryer, groupID, userID int64) (models.Group, error) {
	g, err := groupstore.GetByID(ctx, q, groupID)
	if err != nil {
		return models.Group{}, err
	}
	role, err := membershipstore.GetRole(ctx, q, groupID, userID)
	if err != nil {
		if errors.Is(err, membershipstore.ErrMembershipNotFound) {
			return models.Group{}, ErrNotMember
		}
		return models.Group{}, err
	}
	if role != models.RoleAdmin {
		return models.Group{}, ErrNotAdmin
	}
	return g, nil
}

// RequireCreator verifies userID is the group's creator pointer.
func RequireCreator(ctx context.Context, q sqldb.Queryer, groupID, userID int64) (models.Group, error) {
	g, err := groupstore.GetByID(ctx, q, groupID)
	if err != nil {
		return models.Group{}, err
	}
	if g.CreatedBy == nil || *g.CreatedBy != userID {
		return models.Group{}, ErrNotCreator
	}
	return g, nil
}
