// internal/domain/models/group.go
package models

import "time"

// Group is a shared household. Members join by invite code.
//
// CreatedBy is a denormalized pointer to the current admin's user id. The
// authoritative "who is admin" fact lives in the memberships relation
// (role column); succession updates both in the same transaction so the two
// can never disagree.
type Group struct {
	ID         int64     `db:"id" json:"id"`
	Name       string    `db:"name" json:"name"`
	InviteCode string    `db:"invite_code" json:"invite_code"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
	CreatedBy  *int64    `db:"created_by" json:"created_by"`
}
