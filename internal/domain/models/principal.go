// internal/domain/models/principal.go
package models

// Role is the single active role a member holds.
type Role string

const (
	RoleClient  Role = "client"
	RoleTrainer Role = "trainer"
	RoleAdmin   Role = "admin"
)

// ValidRole reports whether s is one of the three known roles.
func ValidRole(s string) bool {
	switch Role(s) {
	case RoleClient, RoleTrainer, RoleAdmin:
		return true
	}
	return false
}

// Principal is the authenticated actor driving an access decision:
// a stable member identity plus the role resolved for this request.
// Roles are resolved fresh per request from the role-assignment
// collection and never cached across requests.
type Principal struct {
	MemberID string
	Email    string
	Role     Role
}

// IsAdmin reports whether the principal holds the admin role.
func (p Principal) IsAdmin() bool { return p.Role == RoleAdmin }

// IsClient reports whether the principal holds the client role.
func (p Principal) IsClient() bool { return p.Role == RoleClient }

// IsTrainer reports whether the principal holds the trainer role.
func (p Principal) IsTrainer() bool { return p.Role == RoleTrainer }
