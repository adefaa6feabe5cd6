// internal/app/features/gateway/envelope.go
package gateway

import (
	"encoding/json"
	"net/http"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/strivefit/coachhub/internal/app/policy/accesspolicy"
	"github.com/strivefit/coachhub/internal/app/store/docstore"
)

// Request is the envelope submitted for every gateway operation. It is
// constructed by the caller, validated structurally, consumed once, and
// never persisted.
type Request struct {
	Operation  string         `json:"operation"`
	Collection string         `json:"collection"`
	ItemID     string         `json:"itemId,omitempty"`
	ClientID   string         `json:"clientId,omitempty"`
	TrainerID  string         `json:"trainerId,omitempty"`
	Data       map[string]any `json:"data,omitempty"`
	Options    *Options       `json:"options,omitempty"`
}

// Options carries caller-supplied pagination.
type Options struct {
	Limit int64 `json:"limit,omitempty"`
	Skip  int64 `json:"skip,omitempty"`
}

// Response is the uniform envelope for every operation and every failure
// mode. Error messages are human-readable reasons; internals never leak.
type Response struct {
	Success    bool   `json:"success"`
	StatusCode int    `json:"statusCode"`
	Data       any    `json:"data,omitempty"`
	Error      string `json:"error,omitempty"`
	Timestamp  string `json:"timestamp"`
}

// ListResult is the data payload for the read operations that return
// collections of items.
type ListResult struct {
	Items      []docstore.Document `json:"items"`
	TotalCount int64               `json:"totalCount"`
	HasNext    bool                `json:"hasNext"`
	NextSkip   *int64              `json:"nextSkip"`
}

var operations = []any{
	accesspolicy.OpGetAll,
	accesspolicy.OpGetByID,
	accesspolicy.OpGetForClient,
	accesspolicy.OpGetForTrainer,
	accesspolicy.OpCreate,
	accesspolicy.OpUpdate,
	accesspolicy.OpDelete,
}

func needsItemID(op string) bool {
	switch op {
	case accesspolicy.OpGetByID, accesspolicy.OpUpdate, accesspolicy.OpDelete:
		return true
	}
	return false
}

func needsData(op string) bool {
	return op == accesspolicy.OpCreate || op == accesspolicy.OpUpdate
}

// Validate checks the envelope structurally. Authorization is not its
// concern; it only rejects requests no actor could ever submit validly.
func (req *Request) Validate() error {
	return validation.ValidateStruct(req,
		validation.Field(&req.Operation,
			validation.Required,
			validation.In(operations...).Error("unknown operation"),
		),
		validation.Field(&req.Collection,
			validation.Required,
			validation.By(knownCollection),
		),
		validation.Field(&req.ItemID,
			validation.Required.When(needsItemID(req.Operation)).Error("itemId is required for this operation"),
		),
		validation.Field(&req.Data,
			validation.Required.When(needsData(req.Operation)).Error("data is required for this operation"),
		),
		validation.Field(&req.ClientID,
			validation.Required.When(req.Operation == accesspolicy.OpGetForClient).Error("clientId is required for getForClient"),
		),
		validation.Field(&req.TrainerID,
			validation.Required.When(req.Operation == accesspolicy.OpGetForTrainer).Error("trainerId is required for getForTrainer"),
		),
	)
}

func writeResponse(w http.ResponseWriter, status int, resp Response) {
	resp.StatusCode = status
	resp.Timestamp = time.Now().UTC().Format(time.RFC3339)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(resp)
}

func writeSuccess(w http.ResponseWriter, data any) {
	writeResponse(w, http.StatusOK, Response{Success: true, Data: data})
}

func writeError(w http.ResponseWriter, status int, reason string) {
	writeResponse(w, status, Response{Success: false, Error: reason})
}
