// internal/app/features/gateway/handler.go

// Package gateway implements the single authenticated entry point for
// the protected collections. Every request moves through the same
// states: parsed, authenticated, authorized, executed; a terminal
// failure at any state produces the uniform error envelope.
package gateway

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/strivefit/coachhub/internal/app/policy/accesspolicy"
	"github.com/strivefit/coachhub/internal/app/store/docstore"
	rolestore "github.com/strivefit/coachhub/internal/app/store/roles"
	trainerclientstore "github.com/strivefit/coachhub/internal/app/store/trainerclients"
	"github.com/strivefit/coachhub/internal/app/system/apierrors"
	"github.com/strivefit/coachhub/internal/app/system/auth"
	"github.com/strivefit/coachhub/internal/app/system/mailer"
	"github.com/strivefit/coachhub/internal/domain/models"
	"go.uber.org/zap"
)

// Handler dispatches gateway requests. It owns no state of its own: no
// session cache, no in-memory records — a pure per-request mediator over
// the injected document store.
type Handler struct {
	Docs          docstore.Store
	Roles         *rolestore.Store
	Relationships *trainerclientstore.Store
	Resolver      auth.Resolver
	Mail          *mailer.Mailer // optional; nil disables notifications
	SiteName      string
	BaseURL       string
	Log           *zap.Logger
}

// NewHandler constructs the gateway handler. The role and relationship
// stores are consultations over the same document store.
func NewHandler(docs docstore.Store, resolver auth.Resolver, mail *mailer.Mailer, siteName, baseURL string, logger *zap.Logger) *Handler {
	return &Handler{
		Docs:          docs,
		Roles:         rolestore.New(docs),
		Relationships: trainerclientstore.New(docs),
		Resolver:      resolver,
		Mail:          mail,
		SiteName:      siteName,
		BaseURL:       baseURL,
		Log:           logger,
	}
}

// Serve handles POST /api/data.
func (h *Handler) Serve(w http.ResponseWriter, r *http.Request) {
	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "malformed request body")
		return
	}
	if err := req.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	id, ok := h.Resolver.Resolve(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	role, err := h.Roles.ActiveRole(r.Context(), id.MemberID)
	if err != nil {
		if errors.Is(err, rolestore.ErrMultipleActive) {
			// Corrupted assignment data: fail closed.
			h.Log.Error("conflicting active role assignments",
				zap.String("member_id", id.MemberID))
			writeError(w, http.StatusForbidden, "Invalid role")
			return
		}
		h.fail(w, req, apierrors.Internal(err))
		return
	}
	p := models.Principal{MemberID: id.MemberID, Email: id.Email, Role: role}

	decision, err := accesspolicy.Authorize(r.Context(), h.Relationships, p, req.Operation, req.ClientID, req.TrainerID)
	if err != nil {
		h.fail(w, req, apierrors.Internal(err))
		return
	}
	if !decision.Authorized {
		h.Log.Info("gateway request denied",
			zap.String("member_id", p.MemberID),
			zap.String("role", string(p.Role)),
			zap.String("operation", req.Operation),
			zap.String("collection", req.Collection))
		writeError(w, http.StatusForbidden, decision.Reason)
		return
	}

	data, err := h.execute(r, p, &req)
	if err != nil {
		h.fail(w, req, err)
		return
	}
	writeSuccess(w, data)
}

func (h *Handler) execute(r *http.Request, p models.Principal, req *Request) (any, error) {
	spec, ok := lookupCollection(req.Collection)
	if !ok {
		// Validate already rejects unknown collections; kept for safety.
		return nil, apierrors.Validation("unknown collection")
	}

	switch req.Operation {
	case accesspolicy.OpGetAll:
		return h.getAll(r.Context(), p, spec, req.Options)
	case accesspolicy.OpGetByID:
		return h.getByID(r.Context(), p, spec, req.ItemID)
	case accesspolicy.OpGetForClient:
		return h.getForClient(r.Context(), spec, req.ClientID, req.Options)
	case accesspolicy.OpGetForTrainer:
		return h.getForTrainer(r.Context(), spec, req.TrainerID, req.Options)
	case accesspolicy.OpCreate:
		return h.create(r.Context(), p, spec, req)
	case accesspolicy.OpUpdate:
		return h.update(r.Context(), p, spec, req)
	case accesspolicy.OpDelete:
		return nil, h.remove(r.Context(), p, spec, req.ItemID)
	default:
		return nil, apierrors.Validation("unknown operation")
	}
}

// fail converts any execution error into the uniform error envelope,
// logging internal causes without leaking them.
func (h *Handler) fail(w http.ResponseWriter, req Request, err error) {
	ae := apierrors.From(err)
	if ae.Kind == apierrors.KindInternal {
		h.Log.Error("gateway operation failed",
			zap.String("operation", req.Operation),
			zap.String("collection", req.Collection),
			zap.Error(ae.Err))
	}
	writeError(w, ae.Status(), ae.Reason)
}
