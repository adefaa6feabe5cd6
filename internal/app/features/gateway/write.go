// internal/app/features/gateway/write.go
package gateway

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/strivefit/coachhub/internal/app/policy/accesspolicy"
	"github.com/strivefit/coachhub/internal/app/store/docstore"
	"github.com/strivefit/coachhub/internal/app/system/apierrors"
	"github.com/strivefit/coachhub/internal/domain/models"
)

// reservedFields are stamped by the gateway and never merged from caller
// data: ownership fields are the sole basis for later access decisions,
// so they must not be writable to arbitrary values.
var reservedFields = map[string]struct{}{
	"_id":          {},
	"version":      {},
	"created_at":   {},
	"updated_at":   {},
	fieldClientID:  {},
	fieldTrainerID: {},
}

// create inserts a new record with gateway-stamped id, timestamps,
// version, and ownership fields, then runs the collection's create
// hooks.
func (h *Handler) create(ctx context.Context, p models.Principal, spec CollectionSpec, req *Request) (docstore.Document, error) {
	// The evaluator already rejected a client naming a foreign clientId;
	// the symmetric trainer check happens here because only create cares.
	if p.IsTrainer() && req.TrainerID != "" && req.TrainerID != p.MemberID {
		return nil, apierrors.Authorization("Trainers cannot create records for another trainer")
	}

	doc := docstore.Document{}
	for k, v := range req.Data {
		if _, reserved := reservedFields[k]; reserved {
			continue
		}
		doc[k] = v
	}

	if spec.ClientOwned {
		clientID := req.ClientID
		if p.IsClient() {
			clientID = p.MemberID
		}
		if clientID != "" {
			doc[fieldClientID] = clientID
		}
	}
	if spec.TrainerOwned {
		trainerID := req.TrainerID
		if p.IsTrainer() && trainerID == "" {
			trainerID = p.MemberID
		}
		if trainerID != "" {
			doc[fieldTrainerID] = trainerID
		}
	}

	for _, hook := range spec.createHooks {
		hook(p, doc)
	}

	now := time.Now().UTC()
	doc["_id"] = uuid.NewString()
	doc["version"] = int64(1)
	doc["created_at"] = now
	doc["updated_at"] = now

	if err := h.Docs.Insert(ctx, spec.Name, doc); err != nil {
		return nil, apierrors.Internal(err)
	}

	h.notifyCreated(ctx, p, spec, doc)
	return doc, nil
}

// update validates ownership against the stored record, merges the
// supplied fields, and writes with a compare-and-swap on the record
// version. A trainer updating a record with no trainer owner claims it:
// the trainer id is stamped in the same write.
func (h *Handler) update(ctx context.Context, p models.Principal, spec CollectionSpec, req *Request) (docstore.Document, error) {
	existing, err := h.Docs.Get(ctx, spec.Name, req.ItemID)
	if err != nil {
		if errors.Is(err, docstore.ErrNotFound) {
			return nil, apierrors.NotFound("record not found")
		}
		return nil, apierrors.Internal(err)
	}

	d := accesspolicy.CanMutateRecord(p, existing.Str(fieldClientID), existing.Str(fieldTrainerID))
	if !d.Authorized {
		return nil, apierrors.Authorization(d.Reason)
	}

	fields := docstore.Document{}
	for k, v := range req.Data {
		if _, reserved := reservedFields[k]; reserved {
			continue
		}
		fields[k] = v
	}
	if d.Adopt {
		fields[fieldTrainerID] = p.MemberID
	}
	fields["updated_at"] = time.Now().UTC()

	err = h.Docs.Update(ctx, spec.Name, req.ItemID, existing.Version(), fields)
	switch {
	case errors.Is(err, docstore.ErrVersionConflict):
		return nil, apierrors.Conflict("record was modified concurrently; re-read and retry")
	case errors.Is(err, docstore.ErrNotFound):
		return nil, apierrors.NotFound("record not found")
	case err != nil:
		return nil, apierrors.Internal(err)
	}

	updated, err := h.Docs.Get(ctx, spec.Name, req.ItemID)
	if err != nil {
		return nil, apierrors.Internal(err)
	}
	return updated, nil
}

// remove validates ownership the same way update does, then requires the
// admin role regardless of the ownership result: owners can mutate their
// records through this gateway but never remove them.
func (h *Handler) remove(ctx context.Context, p models.Principal, spec CollectionSpec, itemID string) error {
	existing, err := h.Docs.Get(ctx, spec.Name, itemID)
	if err != nil {
		if errors.Is(err, docstore.ErrNotFound) {
			return apierrors.NotFound("record not found")
		}
		return apierrors.Internal(err)
	}

	d := accesspolicy.CanMutateRecord(p, existing.Str(fieldClientID), existing.Str(fieldTrainerID))
	if !d.Authorized {
		return apierrors.Authorization(d.Reason)
	}
	if !p.IsAdmin() {
		return apierrors.Authorization("Only admins can delete records")
	}

	if err := h.Docs.Remove(ctx, spec.Name, itemID); err != nil {
		if errors.Is(err, docstore.ErrNotFound) {
			return apierrors.NotFound("record not found")
		}
		return apierrors.Internal(err)
	}
	return nil
}
