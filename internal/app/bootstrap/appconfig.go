// internal/app/bootstrap/appconfig.go
package bootstrap

import "time"

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// These values come from environment variables, configuration files, or
// command-line flags (loaded in LoadConfig). WAFFLE's CoreConfig handles
// framework-level settings (ports, TLS, logging); AppConfig is everything
// specific to CoachHub.
type AppConfig struct {
	// MongoDB connection configuration
	MongoURI         string
	MongoDatabase    string
	MongoMaxPoolSize uint64
	MongoMinPoolSize uint64

	// Session management configuration
	SessionKey    string // Secret key for signing session cookies (must be strong in production)
	SessionName   string // Cookie name for sessions
	SessionDomain string // Cookie domain (blank means current host)

	// Bearer token configuration (for the portal SPAs)
	TokenKey string
	TokenTTL time.Duration

	// CORS
	CORSOrigins string // comma-separated allowed origins

	// Email/SMTP configuration
	MailSMTPHost string // SMTP server host (e.g., localhost for Mailpit)
	MailSMTPPort int
	MailSMTPUser string
	MailSMTPPass string
	MailFrom     string
	MailFromName string

	// Address that receives PAR-Q intake notifications
	ParQNotifyEmail string

	// Google OAuth configuration
	GoogleClientID     string
	GoogleClientSecret string

	// Base URL for OAuth callbacks and email links
	BaseURL string
	// Display name used in outbound email
	SiteName string
}
