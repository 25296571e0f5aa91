// internal/app/features/volunteers/routes.go
package volunteers

import (
	"github.com/buzzboard/buzzboard/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

func Routes(h *Handler, tokens *auth.TokenAuth) chi.Router {
	r := chi.NewRouter()
	r.Use(tokens.RequireAuth, tokens.RequireOnboarded)

	r.Post("/", h.HandleApply)
	r.Get("/", h.HandleList)
	r.Patch("/{id}", h.HandleSetStatus)

	return r
}
