// internal/app/store/trainerclients/trainerclientstore.go
package trainerclientstore

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/strivefit/coachhub/internal/app/store/docstore"
	"github.com/strivefit/coachhub/internal/domain/models"
)

// Collection is where trainer-client assignments live. The collection is
// also in the gateway's protected set; this store is the read-only
// consultation path used by authorization.
const Collection = "trainerclientassignments"

type Store struct {
	docs docstore.Store
}

func New(docs docstore.Store) *Store {
	return &Store{docs: docs}
}

// HasActiveAssignment reports whether an active assignment links the
// trainer to the client. Existence is the sole authorization proof for
// cross-entity access.
func (s *Store) HasActiveAssignment(ctx context.Context, trainerID, clientID string) (bool, error) {
	n, err := s.docs.Count(ctx, Collection, map[string]any{
		"trainer_id": trainerID,
		"client_id":  clientID,
		"status":     models.StatusActive,
	})
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// Assign creates an active assignment linking trainer and client.
func (s *Store) Assign(ctx context.Context, trainerID, clientID string) (models.TrainerClientAssignment, error) {
	now := time.Now().UTC()
	a := models.TrainerClientAssignment{
		ID:        uuid.NewString(),
		TrainerID: trainerID,
		ClientID:  clientID,
		Status:    models.StatusActive,
		CreatedAt: now,
		UpdatedAt: now,
	}
	err := s.docs.Insert(ctx, Collection, docstore.Document{
		"_id":        a.ID,
		"trainer_id": a.TrainerID,
		"client_id":  a.ClientID,
		"status":     a.Status,
		"version":    int64(1),
		"created_at": a.CreatedAt,
		"updated_at": a.UpdatedAt,
	})
	if err != nil {
		return models.TrainerClientAssignment{}, err
	}
	return a, nil
}

// ClientIDsForTrainer returns the ids of clients actively assigned to the
// trainer.
func (s *Store) ClientIDsForTrainer(ctx context.Context, trainerID string) ([]string, error) {
	rows, err := s.docs.Find(ctx, Collection, map[string]any{
		"trainer_id": trainerID,
		"status":     models.StatusActive,
	}, 0, 0)
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.Str("client_id"))
	}
	return ids, nil
}
