// internal/domain/models/membership.go
package models

import "time"

// Membership roles. Every group with at least one member has exactly one
// admin; the rest are members.
const (
	RoleAdmin  = "admin"
	RoleMember = "member"
)

// Membership is the authoritative join between users and groups.
// Exactly one row per (group_id, user_id); role is a scalar.
type Membership struct {
	GroupID  int64     `db:"group_id" json:"group_id"`
	UserID   int64     `db:"user_id" json:"user_id"`
	Role     string    `db:"role" json:"role"`
	JoinedAt time.Time `db:"joined_at" json:"joined_at"`
}

// Member is a membership row joined with the user's identity, as returned
// by member listings.
type Member struct {
	UserID   int64     `db:"user_id" json:"id"`
	Email    string    `db:"email" json:"email"`
	Name     string    `db:"name" json:"name"`
	Role     string    `db:"role" json:"role"`
	JoinedAt time.Time `db:"joined_at" json:"joined_at"`
}
