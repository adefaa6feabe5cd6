// Package accesspolicy is the policy core for the protected collections.
//
// Authorization rules, in order of precedence:
//   - Admins may perform every operation on every collection
//   - Clients may never issue the cross-entity bulk queries (getForClient,
//     getForTrainer), and may never name a clientId other than their own
//   - Trainers may never query another trainer's scope (getForTrainer),
//     and may touch a specific client's data only while an active
//     trainer-client assignment links them to that client
//   - An actor with no resolvable role is denied everything
//
// The envelope-level Authorize decision is made before dispatch. Because
// envelope fields are caller-supplied, getById/update/delete re-check
// ownership against the persisted record (CanReadRecord/MutateRecord);
// the stored ownership fields, not the envelope, are authoritative.
package accesspolicy

import (
	"context"

	"github.com/strivefit/coachhub/internal/domain/models"
)

// Operations accepted by the gateway.
const (
	OpGetAll        = "getAll"
	OpGetByID       = "getById"
	OpGetForClient  = "getForClient"
	OpGetForTrainer = "getForTrainer"
	OpCreate        = "create"
	OpUpdate        = "update"
	OpDelete        = "delete"
)

// RelationshipChecker confirms an active trainer-client assignment. It is
// a read-only consultation; implementations must not mutate.
type RelationshipChecker interface {
	HasActiveAssignment(ctx context.Context, trainerID, clientID string) (bool, error)
}

// Decision is the outcome of an authorization check. Reason is set only
// on denial and is written to be shown to callers.
type Decision struct {
	Authorized bool
	Reason     string
}

func allow() Decision { return Decision{Authorized: true} }

func deny(reason string) Decision { return Decision{Reason: reason} }

// Authorize decides whether the principal may submit the operation with
// the envelope's declared ownership ids. Record-scoped filtering and the
// record-level re-check still apply downstream; this gate only rejects
// requests that are wrong on their face.
//
// Returns an error only if the relationship lookup fails.
func Authorize(ctx context.Context, rel RelationshipChecker, p models.Principal, op, clientID, trainerID string) (Decision, error) {
	switch p.Role {
	case models.RoleAdmin:
		return allow(), nil

	case models.RoleClient:
		if op == OpGetForClient || op == OpGetForTrainer {
			return deny("Clients cannot query other clients or trainers"), nil
		}
		if clientID != "" && clientID != p.MemberID {
			return deny("Clients can only access their own records"), nil
		}
		return allow(), nil

	case models.RoleTrainer:
		if op == OpGetForTrainer && trainerID != "" && trainerID != p.MemberID {
			return deny("Trainers cannot query another trainer's records"), nil
		}
		if clientID != "" && clientID != p.MemberID {
			ok, err := rel.HasActiveAssignment(ctx, p.MemberID, clientID)
			if err != nil {
				return Decision{}, err
			}
			if !ok {
				return deny("Trainer does not have access to this client"), nil
			}
		}
		return allow(), nil

	default:
		return deny("Invalid role"), nil
	}
}

// CanReadRecord checks the persisted record's ownership fields against
// the actor. Used by getById, where the envelope carries no ownership ids
// to check up front.
func CanReadRecord(p models.Principal, clientID, trainerID string) Decision {
	switch p.Role {
	case models.RoleAdmin:
		return allow()
	case models.RoleClient:
		if clientID == p.MemberID {
			return allow()
		}
		return deny("Clients can only access their own records")
	case models.RoleTrainer:
		if trainerID == p.MemberID {
			return allow()
		}
		return deny("Trainer does not own this record")
	default:
		return deny("Invalid role")
	}
}

// MutateDecision is the outcome of a record-level mutation check. Adopt
// is set when a trainer is claiming a record with no trainer owner; the
// caller must stamp the trainer's id in the same compare-and-swap write.
type MutateDecision struct {
	Decision
	Adopt bool
}

// CanMutateRecord checks the persisted record's ownership fields for
// update. Trainers may also claim a record whose trainer_id is empty
// (one-way adoption); once stamped, the record is owned.
func CanMutateRecord(p models.Principal, clientID, trainerID string) MutateDecision {
	switch p.Role {
	case models.RoleAdmin:
		return MutateDecision{Decision: allow()}
	case models.RoleClient:
		if clientID == p.MemberID {
			return MutateDecision{Decision: allow()}
		}
		return MutateDecision{Decision: deny("Clients can only modify their own records")}
	case models.RoleTrainer:
		if trainerID == p.MemberID {
			return MutateDecision{Decision: allow()}
		}
		if trainerID == "" {
			return MutateDecision{Decision: allow(), Adopt: true}
		}
		return MutateDecision{Decision: deny("Trainer does not own this record")}
	default:
		return MutateDecision{Decision: deny("Invalid role")}
	}
}
