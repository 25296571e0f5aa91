// internal/app/features/events/routes.go
package events

import (
	"github.com/buzzboard/buzzboard/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes mounts the event endpoints. Discovery is public; writes need a
// token and a completed profile.
func Routes(h *Handler, tokens *auth.TokenAuth) chi.Router {
	r := chi.NewRouter()

	r.Get("/", h.HandleList)

	r.Group(func(pr chi.Router) {
		pr.Use(tokens.RequireAuth, tokens.RequireOnboarded)
		pr.Post("/", h.HandleCreate)
		pr.Patch("/{id}", h.HandleUpdate)
		pr.Delete("/{id}", h.HandleDelete)
	})

	return r
}
