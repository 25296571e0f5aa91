// internal/app/features/rsvp/routes.go
package rsvp

import (
	"github.com/buzzboard/buzzboard/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

func Routes(h *Handler, tokens *auth.TokenAuth) chi.Router {
	r := chi.NewRouter()
	r.Use(tokens.RequireAuth, tokens.RequireOnboarded)

	r.Post("/", h.HandleUpsert)
	r.Get("/", h.HandleMine)
	r.Delete("/{eventId}", h.HandleCancel)

	return r
}
