// internal/app/features/gateway/collections.go
package gateway

import (
	"errors"

	"github.com/strivefit/coachhub/internal/app/store/docstore"
	"github.com/strivefit/coachhub/internal/app/system/sanitize"
	"github.com/strivefit/coachhub/internal/domain/models"
)

// Ownership field names on stored documents. The envelope's clientId /
// trainerId map onto these; they are written only by the gateway, never
// merged from caller data.
const (
	fieldClientID  = "client_id"
	fieldTrainerID = "trainer_id"
)

// CreateHook adjusts a document during create, after ownership fields
// are stamped and before the insert. Hooks keep collection-specific
// policy out of the dispatcher itself.
type CreateHook func(p models.Principal, doc docstore.Document)

// CollectionSpec describes one protected collection: which ownership
// fields its records carry and any create-time hooks.
type CollectionSpec struct {
	Name         string
	ClientOwned  bool
	TrainerOwned bool
	createHooks  []CreateHook
}

// stampTrainerOwner forces the trainer ownership field to the acting
// trainer, regardless of what the envelope supplied. Used where a
// spoofed trainer id would grant another trainer's clients access.
func stampTrainerOwner(p models.Principal, doc docstore.Document) {
	if p.IsTrainer() {
		doc[fieldTrainerID] = p.MemberID
	}
}

// sanitizeField runs rich-text sanitation over a user-authored field.
func sanitizeField(name string) CreateHook {
	return func(_ models.Principal, doc docstore.Document) {
		if s, ok := doc[name].(string); ok {
			doc[name] = sanitize.RichText(s)
		}
	}
}

// protectedCollections enumerates every collection the gateway mediates.
// Access to anything else through the gateway is a validation error.
var protectedCollections = map[string]CollectionSpec{
	"workouts": {
		Name: "workouts", ClientOwned: true, TrainerOwned: true,
	},
	"programs": {
		Name: "programs", TrainerOwned: true,
	},
	"programdrafts": {
		Name: "programdrafts", TrainerOwned: true,
	},
	"programassignments": {
		Name: "programassignments", ClientOwned: true, TrainerOwned: true,
		createHooks: []CreateHook{stampTrainerOwner},
	},
	"trainerclientassignments": {
		Name: "trainerclientassignments", ClientOwned: true, TrainerOwned: true,
	},
	"messages": {
		Name: "messages", ClientOwned: true, TrainerOwned: true,
		createHooks: []CreateHook{sanitizeField("body")},
	},
	"clientnotes": {
		Name: "clientnotes", ClientOwned: true, TrainerOwned: true,
		createHooks: []CreateHook{sanitizeField("text")},
	},
	"checkins": {
		Name: "checkins", ClientOwned: true,
	},
	"weeklysummaries": {
		Name: "weeklysummaries", ClientOwned: true, TrainerOwned: true,
	},
	"notificationprefs": {
		Name: "notificationprefs", ClientOwned: true,
	},
	"clientprofiles": {
		Name: "clientprofiles", ClientOwned: true,
	},
	"trainerprofiles": {
		Name: "trainerprofiles", TrainerOwned: true,
	},
}

// lookupCollection returns the spec for a protected collection.
func lookupCollection(name string) (CollectionSpec, bool) {
	spec, ok := protectedCollections[name]
	return spec, ok
}

func knownCollection(value any) error {
	name, _ := value.(string)
	if _, ok := protectedCollections[name]; !ok {
		return errors.New("unknown collection")
	}
	return nil
}
