// internal/domain/models/user.go
package models

import "time"

// User is a login account for the portals. The member_id is the stable
// identity referenced by role assignments and record ownership fields;
// it never changes even if the email does.
type User struct {
	ID           string    `bson:"_id" json:"id"`
	MemberID     string    `bson:"member_id" json:"member_id"`
	FullName     string    `bson:"full_name" json:"full_name"`
	Email        string    `bson:"email" json:"email"`
	PasswordHash string    `bson:"password_hash,omitempty" json:"-"`
	AuthMethod   string    `bson:"auth_method,omitempty" json:"auth_method,omitempty"` // password | google
	Status       string    `bson:"status,omitempty" json:"status,omitempty"`
	CreatedAt    time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt    time.Time `bson:"updated_at" json:"updated_at"`
}
