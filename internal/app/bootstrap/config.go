// internal/app/bootstrap/config.go
package bootstrap

import (
	"fmt"
	"time"

	"github.com/dalemusser/waffle/config"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.uber.org/zap"
)

// appConfigKeys defines the configuration keys for CoachHub.
// These are loaded via WAFFLE's config system with support for:
//   - Config files: mongo_uri, session_name, etc.
//   - Environment variables: COACHHUB_MONGO_URI, COACHHUB_SESSION_NAME, etc.
//   - Command-line flags: --mongo_uri, --session_name, etc.
var appConfigKeys = []config.AppKey{
	{Name: "mongo_uri", Default: "mongodb://localhost:27017", Desc: "MongoDB connection URI"},
	{Name: "mongo_database", Default: "coachhub", Desc: "MongoDB database name"},
	{Name: "mongo_max_pool_size", Default: 100, Desc: "MongoDB max connection pool size"},
	{Name: "mongo_min_pool_size", Default: 10, Desc: "MongoDB min connection pool size"},

	{Name: "session_key", Default: "dev-only-change-me-please-0123456789ABCDEF", Desc: "Session signing key (must be strong in production)"},
	{Name: "session_name", Default: "coachhub-session", Desc: "Session cookie name"},
	{Name: "session_domain", Default: "", Desc: "Session cookie domain (blank means current host)"},

	{Name: "token_key", Default: "", Desc: "Bearer token signing key (falls back to session_key)"},
	{Name: "token_ttl", Default: "24h", Desc: "Bearer token lifetime (e.g., 24h, 30m)"},

	{Name: "cors_origins", Default: "http://localhost:5173", Desc: "Comma-separated allowed CORS origins"},

	// Email/SMTP configuration
	{Name: "mail_smtp_host", Default: "", Desc: "SMTP server host (blank disables outbound email)"},
	{Name: "mail_smtp_port", Default: 1025, Desc: "SMTP server port"},
	{Name: "mail_smtp_user", Default: "", Desc: "SMTP username"},
	{Name: "mail_smtp_pass", Default: "", Desc: "SMTP password"},
	{Name: "mail_from", Default: "noreply@coachhub.example", Desc: "From email address"},
	{Name: "mail_from_name", Default: "CoachHub", Desc: "From display name"},
	{Name: "parq_notify_email", Default: "", Desc: "Address that receives PAR-Q intake notifications"},

	// Google OAuth configuration
	{Name: "google_client_id", Default: "", Desc: "Google OAuth2 client ID"},
	{Name: "google_client_secret", Default: "", Desc: "Google OAuth2 client secret"},

	{Name: "base_url", Default: "http://localhost:3000", Desc: "Base URL for OAuth callbacks and email links"},
	{Name: "site_name", Default: "CoachHub", Desc: "Display name used in outbound email"},
}

// LoadConfig loads WAFFLE core config and app-specific config.
//
// WAFFLE's config.LoadWithAppConfig handles .env files, config files,
// environment variables (WAFFLE_* for core, COACHHUB_* for app), and
// command-line flags, merged with precedence flags > env > files >
// defaults.
func LoadConfig(logger *zap.Logger) (*config.CoreConfig, AppConfig, error) {
	coreCfg, appValues, err := config.LoadWithAppConfig(logger, "COACHHUB", appConfigKeys)
	if err != nil {
		return nil, AppConfig{}, err
	}

	appCfg := AppConfig{
		MongoURI:         appValues.String("mongo_uri"),
		MongoDatabase:    appValues.String("mongo_database"),
		MongoMaxPoolSize: uint64(appValues.Int("mongo_max_pool_size")),
		MongoMinPoolSize: uint64(appValues.Int("mongo_min_pool_size")),

		SessionKey:    appValues.String("session_key"),
		SessionName:   appValues.String("session_name"),
		SessionDomain: appValues.String("session_domain"),

		TokenKey: appValues.String("token_key"),
		TokenTTL: appValues.Duration("token_ttl", 24*time.Hour),

		CORSOrigins: appValues.String("cors_origins"),

		MailSMTPHost: appValues.String("mail_smtp_host"),
		MailSMTPPort: appValues.Int("mail_smtp_port"),
		MailSMTPUser: appValues.String("mail_smtp_user"),
		MailSMTPPass: appValues.String("mail_smtp_pass"),
		MailFrom:     appValues.String("mail_from"),
		MailFromName: appValues.String("mail_from_name"),

		ParQNotifyEmail: appValues.String("parq_notify_email"),

		GoogleClientID:     appValues.String("google_client_id"),
		GoogleClientSecret: appValues.String("google_client_secret"),

		BaseURL:  appValues.String("base_url"),
		SiteName: appValues.String("site_name"),
	}

	if appCfg.TokenKey == "" {
		appCfg.TokenKey = appCfg.SessionKey
	}

	return coreCfg, appCfg, nil
}

// ValidateConfig performs app-specific config validation.
//
// CoachHub validates the MongoDB URI format to catch configuration
// errors early, before attempting to connect.
func ValidateConfig(coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) error {
	if err := wafflemongo.ValidateURI(appCfg.MongoURI); err != nil {
		logger.Error("invalid MongoDB URI", zap.Error(err))
		return fmt.Errorf("invalid MongoDB URI: %w", err)
	}
	if appCfg.TokenTTL <= 0 {
		return fmt.Errorf("token_ttl must be positive")
	}
	return nil
}
