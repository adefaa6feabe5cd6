// internal/domain/models/roleassignment.go
package models

import "time"

// RoleAssignment binds a member to a role with an active/inactive status.
// At most one active assignment may exist per member; the roles store
// enforces this at write time and EnsureSchema backs it with a unique
// partial index.
type RoleAssignment struct {
	ID        string    `bson:"_id" json:"id"`
	MemberID  string    `bson:"member_id" json:"member_id"`
	Email     string    `bson:"email,omitempty" json:"email,omitempty"`
	Role      string    `bson:"role" json:"role"` // client | trainer | admin
	Status    string    `bson:"status" json:"status"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

const (
	StatusActive   = "active"
	StatusInactive = "inactive"
)
