// internal/testutil/fixtures.go

// Package testutil provides shared fixtures for handler and store tests.
// Everything runs against the in-memory document store; no test here
// needs a running database.
package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/strivefit/coachhub/internal/app/store/docstore"
	rolestore "github.com/strivefit/coachhub/internal/app/store/roles"
	trainerclientstore "github.com/strivefit/coachhub/internal/app/store/trainerclients"
	"github.com/strivefit/coachhub/internal/domain/models"
)

// NewStore returns a fresh in-memory document store.
func NewStore(t *testing.T) *docstore.MemoryStore {
	t.Helper()
	return docstore.NewMemoryStore()
}

// CreateMember creates a member with an active role assignment and
// returns the principal.
func CreateMember(t *testing.T, docs docstore.Store, memberID, email, role string) models.Principal {
	t.Helper()
	if _, err := rolestore.New(docs).Assign(context.Background(), memberID, email, role); err != nil {
		t.Fatalf("assign role %s to %s: %v", role, memberID, err)
	}
	return models.Principal{MemberID: memberID, Email: email, Role: models.Role(role)}
}

// CreateClient creates a member with the client role.
func CreateClient(t *testing.T, docs docstore.Store, memberID string) models.Principal {
	t.Helper()
	return CreateMember(t, docs, memberID, memberID+"@example.com", string(models.RoleClient))
}

// CreateTrainer creates a member with the trainer role.
func CreateTrainer(t *testing.T, docs docstore.Store, memberID string) models.Principal {
	t.Helper()
	return CreateMember(t, docs, memberID, memberID+"@example.com", string(models.RoleTrainer))
}

// CreateAdmin creates a member with the admin role.
func CreateAdmin(t *testing.T, docs docstore.Store, memberID string) models.Principal {
	t.Helper()
	return CreateMember(t, docs, memberID, memberID+"@example.com", string(models.RoleAdmin))
}

// LinkTrainerClient creates an active trainer-client assignment.
func LinkTrainerClient(t *testing.T, docs docstore.Store, trainerID, clientID string) {
	t.Helper()
	if _, err := trainerclientstore.New(docs).Assign(context.Background(), trainerID, clientID); err != nil {
		t.Fatalf("link trainer %s to client %s: %v", trainerID, clientID, err)
	}
}

// InsertRecord inserts a document into a collection with the stamped
// fields every gateway-created record carries, returning its id.
func InsertRecord(t *testing.T, docs docstore.Store, collection string, fields map[string]any) string {
	t.Helper()
	now := time.Now().UTC()
	doc := docstore.Document{
		"_id":        uuid.NewString(),
		"version":    int64(1),
		"created_at": now,
		"updated_at": now,
	}
	for k, v := range fields {
		doc[k] = v
	}
	if err := docs.Insert(context.Background(), collection, doc); err != nil {
		t.Fatalf("insert into %s: %v", collection, err)
	}
	return doc.ID()
}

// InsertUser inserts a user record so email lookups resolve.
func InsertUser(t *testing.T, docs docstore.Store, memberID, email string) {
	t.Helper()
	InsertRecord(t, docs, "users", map[string]any{
		"member_id": memberID,
		"email":     email,
		"full_name": memberID,
		"status":    models.StatusActive,
	})
}
