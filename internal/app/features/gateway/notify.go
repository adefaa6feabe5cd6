// internal/app/features/gateway/notify.go
package gateway

import (
	"context"

	"github.com/strivefit/coachhub/internal/app/store/docstore"
	"github.com/strivefit/coachhub/internal/app/system/mailer"
	"github.com/strivefit/coachhub/internal/domain/models"
	"go.uber.org/zap"
)

const previewLength = 120

// notifyCreated sends best-effort email notifications for collections
// that warrant them. Failures are logged and never surface to the
// caller; the record is already committed.
func (h *Handler) notifyCreated(ctx context.Context, p models.Principal, spec CollectionSpec, doc docstore.Document) {
	if h.Mail == nil {
		return
	}
	if spec.Name != "messages" {
		return
	}

	// The recipient is the other party on the message.
	recipientID := doc.Str(fieldClientID)
	if p.IsClient() {
		recipientID = doc.Str(fieldTrainerID)
	}
	if recipientID == "" {
		return
	}

	users, err := h.Docs.Find(ctx, "users", map[string]any{"member_id": recipientID}, 1, 0)
	if err != nil || len(users) == 0 {
		if err != nil {
			h.Log.Warn("recipient lookup failed for message notification",
				zap.String("member_id", recipientID), zap.Error(err))
		}
		return
	}
	email := users[0].Str("email")
	if email == "" {
		return
	}

	preview := doc.Str("body")
	if len(preview) > previewLength {
		preview = preview[:previewLength] + "…"
	}

	senderName := p.Email
	if senderName == "" {
		senderName = p.MemberID
	}
	msg := mailer.BuildMessageNotification(mailer.MessageNotificationData{
		SiteName:   h.SiteName,
		SenderName: senderName,
		Preview:    preview,
		PortalURL:  h.BaseURL,
	})
	msg.To = email
	h.Mail.SendAsync(msg)
}
