// internal/app/features/parq/handler.go

// Package parq receives PAR-Q (Physical Activity Readiness Questionnaire)
// intake submissions. The endpoint is public: prospective clients fill it
// in before they have an account.
package parq

import (
	"encoding/json"
	"net/http"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/google/uuid"
	"github.com/strivefit/coachhub/internal/app/store/docstore"
	"github.com/strivefit/coachhub/internal/app/system/mailer"
	"github.com/strivefit/coachhub/internal/app/system/sanitize"
	"github.com/strivefit/coachhub/internal/domain/models"
	"go.uber.org/zap"
)

// Collection is where submissions land. It is deliberately not in the
// gateway's protected set; staff review happens out of band.
const Collection = "parqsubmissions"

const questionCount = 7

type Handler struct {
	Docs        docstore.Store
	Mail        *mailer.Mailer // optional
	NotifyEmail string
	SiteName    string
	Log         *zap.Logger
}

func NewHandler(docs docstore.Store, mail *mailer.Mailer, notifyEmail, siteName string, logger *zap.Logger) *Handler {
	return &Handler{Docs: docs, Mail: mail, NotifyEmail: notifyEmail, SiteName: siteName, Log: logger}
}

type submitRequest struct {
	FullName  string `json:"fullName"`
	Email     string `json:"email"`
	BirthYear int    `json:"birthYear"`
	Answers   []bool `json:"answers"`
	Details   string `json:"details"`
}

func (req *submitRequest) Validate() error {
	return validation.ValidateStruct(req,
		validation.Field(&req.FullName, validation.Required, validation.Length(1, 200)),
		validation.Field(&req.Email, validation.Required, is.Email),
		validation.Field(&req.BirthYear, validation.Required, validation.Min(1900), validation.Max(time.Now().Year())),
		validation.Field(&req.Answers, validation.Required, validation.Length(questionCount, questionCount).Error("all seven questions must be answered")),
		validation.Field(&req.Details, validation.Length(0, 4000)),
	)
}

type submitResponse struct {
	Success           bool   `json:"success"`
	ID                string `json:"id"`
	RequiresClearance bool   `json:"requiresClearance"`
}

// Submit handles POST /api/parq. Any YES answer flags the submission for
// physician clearance before programming starts.
func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	var req submitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "malformed request body")
		return
	}
	if err := req.Validate(); err != nil {
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	requiresClearance := false
	for _, yes := range req.Answers {
		if yes {
			requiresClearance = true
			break
		}
	}

	sub := models.ParQSubmission{
		ID:                uuid.NewString(),
		FullName:          sanitize.Plain(req.FullName),
		Email:             req.Email,
		BirthYear:         req.BirthYear,
		Answers:           req.Answers,
		Details:           sanitize.Plain(req.Details),
		RequiresClearance: requiresClearance,
		CreatedAt:         time.Now().UTC(),
	}
	doc := docstore.Document{
		"_id":                sub.ID,
		"full_name":          sub.FullName,
		"email":              sub.Email,
		"birth_year":         sub.BirthYear,
		"answers":            sub.Answers,
		"details":            sub.Details,
		"requires_clearance": sub.RequiresClearance,
		"version":            int64(1),
		"created_at":         sub.CreatedAt,
	}
	if err := h.Docs.Insert(r.Context(), Collection, doc); err != nil {
		h.Log.Error("parq submission insert failed", zap.Error(err))
		writeJSONError(w, http.StatusInternalServerError, "could not save submission")
		return
	}

	if h.Mail != nil && h.NotifyEmail != "" {
		msg := mailer.BuildParQNotification(mailer.ParQNotificationData{
			SiteName:          h.SiteName,
			FullName:          sub.FullName,
			Email:             sub.Email,
			RequiresClearance: sub.RequiresClearance,
		})
		msg.To = h.NotifyEmail
		h.Mail.SendAsync(msg)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(submitResponse{
		Success:           true,
		ID:                sub.ID,
		RequiresClearance: sub.RequiresClearance,
	})
}

func writeJSONError(w http.ResponseWriter, status int, reason string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{"success": false, "error": reason})
}
