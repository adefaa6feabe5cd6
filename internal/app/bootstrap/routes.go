// internal/app/bootstrap/routes.go
package bootstrap

import (
	"context"
	"net/http"
	"strings"

	"github.com/dalemusser/waffle/config"
	"github.com/go-chi/chi/v5"
	"github.com/rs/cors"
	gatewayfeature "github.com/strivefit/coachhub/internal/app/features/gateway"
	healthfeature "github.com/strivefit/coachhub/internal/app/features/health"
	loginfeature "github.com/strivefit/coachhub/internal/app/features/login"
	parqfeature "github.com/strivefit/coachhub/internal/app/features/parq"
	"github.com/strivefit/coachhub/internal/app/store/docstore"
	"github.com/strivefit/coachhub/internal/app/system/auth"
	"github.com/strivefit/coachhub/internal/app/system/mailer"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"
)

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE
// app. WAFFLE calls this after configuration, DB connections, schema
// setup, and Startup have completed.
//
// Every store runs over the same document store built here; handlers
// never touch the Mongo driver directly.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	secure := coreCfg.Env == "prod"

	sessionMgr, err := auth.NewSessionManager(appCfg.SessionKey, appCfg.SessionName, appCfg.SessionDomain, secure, logger)
	if err != nil {
		logger.Error("session manager init failed", zap.Error(err))
		return nil, err
	}
	tokens := auth.NewTokens(appCfg.TokenKey, appCfg.TokenTTL)

	// Bearer tokens first: the portal SPAs authenticate that way and may
	// also carry a stale cookie.
	resolver := auth.MultiResolver{tokens, sessionMgr}

	var mail *mailer.Mailer
	if appCfg.MailSMTPHost != "" {
		mail = mailer.New(appCfg.MailSMTPHost, appCfg.MailSMTPPort, appCfg.MailSMTPUser, appCfg.MailSMTPPass,
			appCfg.MailFrom, appCfg.MailFromName, logger)
	}

	docs := docstore.NewMongoStore(deps.MongoDatabase)

	r := chi.NewRouter()

	healthHandler := healthfeature.NewHandler(healthfeature.PingerFunc(func(ctx context.Context) error {
		return deps.MongoClient.Ping(ctx, readpref.Primary())
	}), logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	loginHandler := loginfeature.NewHandler(docs, sessionMgr, tokens,
		appCfg.GoogleClientID, appCfg.GoogleClientSecret, appCfg.BaseURL, secure, logger)
	r.Mount("/login", loginfeature.Routes(loginHandler))
	r.Post("/logout", loginHandler.ServeLogout)

	gatewayHandler := gatewayfeature.NewHandler(docs, resolver, mail, appCfg.SiteName, appCfg.BaseURL, logger)
	r.Mount("/api/data", gatewayfeature.Routes(gatewayHandler))

	parqHandler := parqfeature.NewHandler(docs, mail, appCfg.ParQNotifyEmail, appCfg.SiteName, logger)
	r.Mount("/api/parq", parqfeature.Routes(parqHandler))

	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   strings.Split(appCfg.CORSOrigins, ","),
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Origin", "Content-Type", "Accept", "Authorization"},
		AllowCredentials: true,
	})
	return corsHandler.Handler(r), nil
}
