// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"

	accountsfeature "github.com/buzzboard/buzzboard/internal/app/features/accounts"
	clubsfeature "github.com/buzzboard/buzzboard/internal/app/features/clubs"
	commentsfeature "github.com/buzzboard/buzzboard/internal/app/features/comments"
	eventsfeature "github.com/buzzboard/buzzboard/internal/app/features/events"
	galleryfeature "github.com/buzzboard/buzzboard/internal/app/features/gallery"
	healthfeature "github.com/buzzboard/buzzboard/internal/app/features/health"
	homefeature "github.com/buzzboard/buzzboard/internal/app/features/home"
	notificationsfeature "github.com/buzzboard/buzzboard/internal/app/features/notifications"
	rsvpfeature "github.com/buzzboard/buzzboard/internal/app/features/rsvp"
	uploadfeature "github.com/buzzboard/buzzboard/internal/app/features/upload"
	volunteersfeature "github.com/buzzboard/buzzboard/internal/app/features/volunteers"
	clubstore "github.com/buzzboard/buzzboard/internal/app/store/clubs"
	commentstore "github.com/buzzboard/buzzboard/internal/app/store/comments"
	eventstore "github.com/buzzboard/buzzboard/internal/app/store/events"
	gallerystore "github.com/buzzboard/buzzboard/internal/app/store/gallery"
	notificationstore "github.com/buzzboard/buzzboard/internal/app/store/notifications"
	rsvpstore "github.com/buzzboard/buzzboard/internal/app/store/rsvps"
	userstore "github.com/buzzboard/buzzboard/internal/app/store/users"
	volunteerstore "github.com/buzzboard/buzzboard/internal/app/store/volunteers"
	"github.com/buzzboard/buzzboard/internal/app/system/auth"
	"github.com/buzzboard/buzzboard/internal/app/system/cors"
	"github.com/buzzboard/buzzboard/internal/app/system/recovery"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// BuildHandler constructs the root HTTP handler for the API.
//
// It is called after configuration, the DB connection, and schema setup
// have completed. It builds the stores, the token middleware, and every
// feature handler, then mounts the feature routers.
func BuildHandler(cfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	db := deps.MongoDatabase

	users := userstore.New(db, cfg.BcryptCost)
	clubs := clubstore.New(db)
	events := eventstore.New(db)
	rsvps := rsvpstore.New(db)
	volunteers := volunteerstore.New(db)
	comments := commentstore.New(db)
	galleries := gallerystore.New(db)
	notifications := notificationstore.New(db)

	// Tokens are verified locally; the onboarding gate re-reads the
	// account through the store so profile completion takes effect
	// without a token refresh.
	tokens := auth.NewTokenAuth(cfg.JWTSecret, cfg.JWTIssuer, users, logger)

	r := chi.NewRouter()
	r.Use(recovery.Middleware(logger, cfg.Env == "dev"))
	r.Use(cors.New(cfg.ClientURLs))

	healthHandler := healthfeature.NewHandler(deps.MongoClient, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	r.Handle("/metrics", promhttp.Handler())

	homeHandler := homefeature.NewHandler("buzzboard-api")
	r.Get("/", homeHandler.ServeRoot)

	accountsHandler := accountsfeature.NewHandler(users, cfg.JWTSecret, cfg.JWTIssuer, cfg.TokenTTL, logger)
	r.Mount("/auth", accountsfeature.Routes(accountsHandler, tokens))

	clubsHandler := clubsfeature.NewHandler(clubs, users, notifications, logger)
	r.Mount("/clubs", clubsfeature.Routes(clubsHandler, tokens))

	eventsHandler := eventsfeature.NewHandler(events, clubs, logger)
	r.Mount("/events", eventsfeature.Routes(eventsHandler, tokens))

	rsvpHandler := rsvpfeature.NewHandler(rsvps, events, logger)
	r.Mount("/rsvp", rsvpfeature.Routes(rsvpHandler, tokens))

	volunteersHandler := volunteersfeature.NewHandler(volunteers, events, clubs, logger)
	r.Mount("/volunteers", volunteersfeature.Routes(volunteersHandler, tokens))

	commentsHandler := commentsfeature.NewHandler(comments, events, logger)
	r.Mount("/comments", commentsfeature.Routes(commentsHandler, tokens))

	galleryHandler := galleryfeature.NewHandler(galleries, events, logger)
	r.Mount("/gallery", galleryfeature.Routes(galleryHandler, tokens))

	notificationsHandler := notificationsfeature.NewHandler(notifications, logger)
	r.Mount("/notifications", notificationsfeature.Routes(notificationsHandler, tokens))

	uploadHandler := uploadfeature.NewHandler(cfg.UploadDir, cfg.UploadURLPrefix, logger)
	r.Mount("/upload", uploadfeature.Routes(uploadHandler, tokens))

	// Stored uploads are public.
	fileServer := http.StripPrefix(cfg.UploadURLPrefix+"/", http.FileServer(http.Dir(cfg.UploadDir)))
	r.Get(cfg.UploadURLPrefix+"/*", fileServer.ServeHTTP)

	return r, nil
}
