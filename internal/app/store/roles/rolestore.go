// internal/app/store/roles/rolestore.go
package rolestore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/strivefit/coachhub/internal/app/store/docstore"
	"github.com/strivefit/coachhub/internal/domain/models"
)

// Collection is where role assignments live.
const Collection = "roleassignments"

// ErrMultipleActive indicates corrupted data: more than one active
// assignment for a member. The resolver fails closed when it sees this.
var ErrMultipleActive = errors.New("member has multiple active role assignments")

type Store struct {
	docs docstore.Store
}

func New(docs docstore.Store) *Store {
	return &Store{docs: docs}
}

// ActiveRole returns the member's single active role, or "" when the
// member has no active assignment (and therefore no access at all).
func (s *Store) ActiveRole(ctx context.Context, memberID string) (models.Role, error) {
	rows, err := s.docs.Find(ctx, Collection, map[string]any{
		"member_id": memberID,
		"status":    models.StatusActive,
	}, 2, 0)
	if err != nil {
		return "", err
	}
	switch len(rows) {
	case 0:
		return "", nil
	case 1:
		return models.Role(rows[0].Str("role")), nil
	default:
		return "", ErrMultipleActive
	}
}

// Assign gives the member the role, deactivating any prior active
// assignment in the same call so the one-active-role invariant is held at
// write time instead of being patched over at read time.
func (s *Store) Assign(ctx context.Context, memberID, email, role string) (models.RoleAssignment, error) {
	if !models.ValidRole(role) {
		return models.RoleAssignment{}, fmt.Errorf("unknown role %q", role)
	}

	now := time.Now().UTC()

	existing, err := s.docs.Find(ctx, Collection, map[string]any{
		"member_id": memberID,
		"status":    models.StatusActive,
	}, 0, 0)
	if err != nil {
		return models.RoleAssignment{}, err
	}
	for _, row := range existing {
		err := s.docs.Update(ctx, Collection, row.ID(), row.Version(), docstore.Document{
			"status":     models.StatusInactive,
			"updated_at": now,
		})
		if err != nil {
			return models.RoleAssignment{}, err
		}
	}

	ra := models.RoleAssignment{
		ID:        uuid.NewString(),
		MemberID:  memberID,
		Email:     email,
		Role:      role,
		Status:    models.StatusActive,
		CreatedAt: now,
		UpdatedAt: now,
	}
	err = s.docs.Insert(ctx, Collection, docstore.Document{
		"_id":        ra.ID,
		"member_id":  ra.MemberID,
		"email":      ra.Email,
		"role":       ra.Role,
		"status":     ra.Status,
		"version":    int64(1),
		"created_at": ra.CreatedAt,
		"updated_at": ra.UpdatedAt,
	})
	if err != nil {
		return models.RoleAssignment{}, err
	}
	return ra, nil
}

// Revoke deactivates the member's active assignment, if any.
func (s *Store) Revoke(ctx context.Context, memberID string) error {
	rows, err := s.docs.Find(ctx, Collection, map[string]any{
		"member_id": memberID,
		"status":    models.StatusActive,
	}, 0, 0)
	if err != nil {
		return err
	}
	now := time.Now().UTC()
	for _, row := range rows {
		err := s.docs.Update(ctx, Collection, row.ID(), row.Version(), docstore.Document{
			"status":     models.StatusInactive,
			"updated_at": now,
		})
		if err != nil {
			return err
		}
	}
	return nil
}
