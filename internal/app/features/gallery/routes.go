// internal/app/features/gallery/routes.go
package gallery

import (
	"github.com/buzzboard/buzzboard/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

func Routes(h *Handler, tokens *auth.TokenAuth) chi.Router {
	r := chi.NewRouter()

	r.Get("/", h.HandleList)

	r.Group(func(pr chi.Router) {
		pr.Use(tokens.RequireAuth, tokens.RequireOnboarded)
		pr.Post("/", h.HandleAppend)
	})

	return r
}
