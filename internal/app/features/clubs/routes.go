// internal/app/features/clubs/routes.go
package clubs

import (
	"github.com/buzzboard/buzzboard/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes mounts the club endpoints. Listing is public (a token, when
// present, unlocks the me filters). Club creation requires a token but
// not a completed profile: creating a club is how the admin path
// finishes onboarding. Everything else sits behind the onboarding gate.
func Routes(h *Handler, tokens *auth.TokenAuth) chi.Router {
	r := chi.NewRouter()

	r.With(tokens.OptionalAuth).Get("/", h.HandleList)

	r.Group(func(pr chi.Router) {
		pr.Use(tokens.RequireAuth)
		pr.Post("/", h.HandleCreate)
	})

	r.Group(func(pr chi.Router) {
		pr.Use(tokens.RequireAuth, tokens.RequireOnboarded)
		pr.Get("/me/requests", h.HandleMyRequests)
		pr.Post("/{id}/join", h.HandleJoin)
		pr.Get("/{id}/join-requests", h.HandleListJoinRequests)
		pr.Patch("/{id}/join-requests/{reqId}", h.HandleReviewJoinRequest)
		pr.Get("/{id}/members", h.HandleMembers)
	})

	return r
}
