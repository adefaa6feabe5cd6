// internal/app/store/roles/rolestore_test.go
package rolestore

import (
	"context"
	"errors"
	"testing"

	"github.com/strivefit/coachhub/internal/app/store/docstore"
	"github.com/strivefit/coachhub/internal/domain/models"
)

func TestActiveRoleNone(t *testing.T) {
	s := New(docstore.NewMemoryStore())
	role, err := s.ActiveRole(context.Background(), "m1")
	if err != nil {
		t.Fatalf("ActiveRole: %v", err)
	}
	if role != "" {
		t.Fatalf("role = %q, want empty", role)
	}
}

func TestAssignAndResolve(t *testing.T) {
	s := New(docstore.NewMemoryStore())
	ctx := context.Background()

	ra, err := s.Assign(ctx, "m1", "m1@example.com", "client")
	if err != nil {
		t.Fatalf("Assign: %v", err)
	}
	if ra.ID == "" || ra.Status != models.StatusActive {
		t.Fatalf("assignment = %+v", ra)
	}

	role, err := s.ActiveRole(ctx, "m1")
	if err != nil {
		t.Fatalf("ActiveRole: %v", err)
	}
	if role != models.RoleClient {
		t.Fatalf("role = %q, want client", role)
	}
}

func TestAssignRejectsUnknownRole(t *testing.T) {
	s := New(docstore.NewMemoryStore())
	if _, err := s.Assign(context.Background(), "m1", "m1@example.com", "superuser"); err == nil {
		t.Fatal("expected error for unknown role")
	}
}

func TestReassignDeactivatesPrior(t *testing.T) {
	docs := docstore.NewMemoryStore()
	s := New(docs)
	ctx := context.Background()

	if _, err := s.Assign(ctx, "m1", "m1@example.com", "client"); err != nil {
		t.Fatalf("first Assign: %v", err)
	}
	if _, err := s.Assign(ctx, "m1", "m1@example.com", "trainer"); err != nil {
		t.Fatalf("second Assign: %v", err)
	}

	role, err := s.ActiveRole(ctx, "m1")
	if err != nil {
		t.Fatalf("ActiveRole after reassign: %v", err)
	}
	if role != models.RoleTrainer {
		t.Fatalf("role = %q, want trainer", role)
	}

	// The prior assignment remains as history, just inactive.
	n, err := docs.Count(ctx, Collection, map[string]any{
		"member_id": "m1",
		"status":    models.StatusInactive,
	})
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if n != 1 {
		t.Fatalf("inactive assignments = %d, want 1", n)
	}
}

func TestActiveRoleFailsClosedOnConflict(t *testing.T) {
	docs := docstore.NewMemoryStore()
	s := New(docs)
	ctx := context.Background()

	// Corrupt the data directly: two active assignments.
	for i, role := range []string{"client", "trainer"} {
		err := docs.Insert(ctx, Collection, docstore.Document{
			"_id":       string(rune('a' + i)),
			"member_id": "m1",
			"role":      role,
			"status":    models.StatusActive,
			"version":   int64(1),
		})
		if err != nil {
			t.Fatalf("seed: %v", err)
		}
	}

	if _, err := s.ActiveRole(ctx, "m1"); !errors.Is(err, ErrMultipleActive) {
		t.Fatalf("err = %v, want ErrMultipleActive", err)
	}
}

func TestRevoke(t *testing.T) {
	s := New(docstore.NewMemoryStore())
	ctx := context.Background()

	if _, err := s.Assign(ctx, "m1", "m1@example.com", "admin"); err != nil {
		t.Fatalf("Assign: %v", err)
	}
	if err := s.Revoke(ctx, "m1"); err != nil {
		t.Fatalf("Revoke: %v", err)
	}
	role, err := s.ActiveRole(ctx, "m1")
	if err != nil {
		t.Fatalf("ActiveRole: %v", err)
	}
	if role != "" {
		t.Fatalf("role = %q after revoke, want empty", role)
	}
}
