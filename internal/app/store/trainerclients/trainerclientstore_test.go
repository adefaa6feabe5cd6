// internal/app/store/trainerclients/trainerclientstore_test.go
package trainerclientstore

import (
	"context"
	"testing"
	"time"

	"github.com/strivefit/coachhub/internal/app/store/docstore"
	"github.com/strivefit/coachhub/internal/domain/models"
)

func TestHasActiveAssignment(t *testing.T) {
	docs := docstore.NewMemoryStore()
	s := New(docs)
	ctx := context.Background()

	ok, err := s.HasActiveAssignment(ctx, "t1", "c1")
	if err != nil {
		t.Fatalf("HasActiveAssignment: %v", err)
	}
	if ok {
		t.Fatal("assignment reported before any exists")
	}

	if _, err := s.Assign(ctx, "t1", "c1"); err != nil {
		t.Fatalf("Assign: %v", err)
	}

	ok, err = s.HasActiveAssignment(ctx, "t1", "c1")
	if err != nil {
		t.Fatalf("HasActiveAssignment: %v", err)
	}
	if !ok {
		t.Fatal("assignment not found after Assign")
	}

	// The pair is directional and exact.
	for _, pair := range [][2]string{{"t1", "c2"}, {"t2", "c1"}, {"c1", "t1"}} {
		ok, err := s.HasActiveAssignment(ctx, pair[0], pair[1])
		if err != nil {
			t.Fatalf("HasActiveAssignment(%v): %v", pair, err)
		}
		if ok {
			t.Fatalf("unexpected assignment for %v", pair)
		}
	}
}

func TestInactiveAssignmentGrantsNothing(t *testing.T) {
	docs := docstore.NewMemoryStore()
	s := New(docs)
	ctx := context.Background()

	err := docs.Insert(ctx, Collection, docstore.Document{
		"_id":        "x1",
		"trainer_id": "t1",
		"client_id":  "c1",
		"status":     models.StatusInactive,
		"version":    int64(1),
		"created_at": time.Now().UTC(),
	})
	if err != nil {
		t.Fatalf("seed: %v", err)
	}

	ok, err := s.HasActiveAssignment(ctx, "t1", "c1")
	if err != nil {
		t.Fatalf("HasActiveAssignment: %v", err)
	}
	if ok {
		t.Fatal("inactive assignment granted access")
	}
}

func TestClientIDsForTrainer(t *testing.T) {
	docs := docstore.NewMemoryStore()
	s := New(docs)
	ctx := context.Background()

	for _, clientID := range []string{"c1", "c2"} {
		if _, err := s.Assign(ctx, "t1", clientID); err != nil {
			t.Fatalf("Assign(%s): %v", clientID, err)
		}
	}
	if _, err := s.Assign(ctx, "t2", "c3"); err != nil {
		t.Fatalf("Assign: %v", err)
	}

	ids, err := s.ClientIDsForTrainer(ctx, "t1")
	if err != nil {
		t.Fatalf("ClientIDsForTrainer: %v", err)
	}
	if len(ids) != 2 || ids[0] != "c1" || ids[1] != "c2" {
		t.Fatalf("ids = %v, want [c1 c2]", ids)
	}
}
