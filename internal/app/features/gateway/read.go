// internal/app/features/gateway/read.go
package gateway

import (
	"context"
	"errors"

	"github.com/strivefit/coachhub/internal/app/policy/accesspolicy"
	"github.com/strivefit/coachhub/internal/app/store/docstore"
	"github.com/strivefit/coachhub/internal/app/system/apierrors"
	"github.com/strivefit/coachhub/internal/domain/models"
)

// pageSize is the default number of items returned by list operations
// when the caller supplies no limit.
const pageSize = 50

// maxPageSize caps caller-supplied limits.
const maxPageSize = 200

// list runs an equality-filtered, paginated query and assembles the
// uniform list payload (items, total, hasNext, next skip).
func (h *Handler) list(ctx context.Context, collection string, filter map[string]any, opts *Options) (*ListResult, error) {
	limit := int64(pageSize)
	var skip int64
	if opts != nil {
		if opts.Limit > 0 {
			limit = opts.Limit
		}
		if opts.Skip > 0 {
			skip = opts.Skip
		}
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}

	items, err := h.Docs.Find(ctx, collection, filter, limit, skip)
	if err != nil {
		return nil, apierrors.Internal(err)
	}
	total, err := h.Docs.Count(ctx, collection, filter)
	if err != nil {
		return nil, apierrors.Internal(err)
	}
	if items == nil {
		items = []docstore.Document{}
	}

	result := &ListResult{
		Items:      items,
		TotalCount: total,
	}
	if next := skip + int64(len(items)); next < total {
		result.HasNext = true
		result.NextSkip = &next
	}
	return result, nil
}

// getAll lists the collection scoped to the actor: clients see only
// records they own via client_id, trainers via trainer_id, admins see
// everything.
func (h *Handler) getAll(ctx context.Context, p models.Principal, spec CollectionSpec, opts *Options) (*ListResult, error) {
	filter := map[string]any{}
	switch p.Role {
	case models.RoleClient:
		filter[fieldClientID] = p.MemberID
	case models.RoleTrainer:
		filter[fieldTrainerID] = p.MemberID
	}
	return h.list(ctx, spec.Name, filter, opts)
}

// getByID fetches by id, then checks the returned record's ownership
// fields against the actor. The envelope carries no ownership ids for
// this operation, so the stored record is the only thing checked.
func (h *Handler) getByID(ctx context.Context, p models.Principal, spec CollectionSpec, itemID string) (docstore.Document, error) {
	doc, err := h.Docs.Get(ctx, spec.Name, itemID)
	if err != nil {
		if errors.Is(err, docstore.ErrNotFound) {
			return nil, apierrors.NotFound("record not found")
		}
		return nil, apierrors.Internal(err)
	}

	d := accesspolicy.CanReadRecord(p, doc.Str(fieldClientID), doc.Str(fieldTrainerID))
	if !d.Authorized {
		return nil, apierrors.Authorization(d.Reason)
	}
	return doc, nil
}

// getForClient lists records in a named client's scope. Cross-entity
// access was already gated by the evaluator.
func (h *Handler) getForClient(ctx context.Context, spec CollectionSpec, clientID string, opts *Options) (*ListResult, error) {
	return h.list(ctx, spec.Name, map[string]any{fieldClientID: clientID}, opts)
}

// getForTrainer lists records in a named trainer's scope.
func (h *Handler) getForTrainer(ctx context.Context, spec CollectionSpec, trainerID string, opts *Options) (*ListResult, error) {
	return h.list(ctx, spec.Name, map[string]any{fieldTrainerID: trainerID}, opts)
}
