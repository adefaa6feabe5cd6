// internal/app/system/mailer/templates.go
package mailer

import (
	"bytes"
	"fmt"
	"html/template"
)

// MessageNotificationData holds data for the new-message notification.
type MessageNotificationData struct {
	SiteName   string
	SenderName string
	Preview    string
	PortalURL  string
}

// BuildMessageNotification creates the email sent when a new message
// lands in someone's inbox.
func BuildMessageNotification(data MessageNotificationData) Email {
	return Email{
		Subject:  fmt.Sprintf("New message on %s", data.SiteName),
		TextBody: buildMessageText(data),
		HTMLBody: buildMessageHTML(data),
	}
}

func buildMessageText(data MessageNotificationData) string {
	var buf bytes.Buffer
	buf.WriteString(fmt.Sprintf("%s sent you a message on %s:\n\n", data.SenderName, data.SiteName))
	buf.WriteString(data.Preview + "\n\n")
	buf.WriteString("Read and reply here:\n")
	buf.WriteString(data.PortalURL + "\n")
	return buf.String()
}

func buildMessageHTML(data MessageNotificationData) string {
	tmpl := template.Must(template.New("message").Parse(messageHTMLTemplate))
	var buf bytes.Buffer
	_ = tmpl.Execute(&buf, data)
	return buf.String()
}

const messageHTMLTemplate = `<!DOCTYPE html>
<html>
<body style="margin:0;padding:24px;font-family:-apple-system,BlinkMacSystemFont,'Segoe UI',Roboto,Arial,sans-serif;background:#f3f4f6;">
  <div style="max-width:480px;margin:0 auto;background:#ffffff;border-radius:8px;padding:24px;">
    <h2 style="margin-top:0;color:#111827;">{{.SiteName}}</h2>
    <p style="color:#374151;"><strong>{{.SenderName}}</strong> sent you a message:</p>
    <blockquote style="margin:16px 0;padding:12px 16px;background:#f9fafb;border-left:3px solid #4f46e5;color:#374151;">{{.Preview}}</blockquote>
    <p><a href="{{.PortalURL}}" style="color:#4f46e5;">Read and reply</a></p>
  </div>
</body>
</html>`

// ParQNotificationData holds data for the PAR-Q intake notification sent
// to the coaching inbox.
type ParQNotificationData struct {
	SiteName          string
	FullName          string
	Email             string
	RequiresClearance bool
}

// BuildParQNotification creates the email announcing a new PAR-Q
// submission.
func BuildParQNotification(data ParQNotificationData) Email {
	subject := fmt.Sprintf("New PAR-Q submission from %s", data.FullName)
	if data.RequiresClearance {
		subject += " (physician clearance needed)"
	}
	var buf bytes.Buffer
	buf.WriteString(fmt.Sprintf("%s (%s) completed the PAR-Q on %s.\n\n", data.FullName, data.Email, data.SiteName))
	if data.RequiresClearance {
		buf.WriteString("One or more answers were YES: recommend physician clearance before programming.\n")
	} else {
		buf.WriteString("All answers were NO: cleared to start.\n")
	}
	return Email{Subject: subject, TextBody: buf.String()}
}
