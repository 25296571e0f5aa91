// internal/app/features/comments/routes.go
package comments

import (
	"github.com/buzzboard/buzzboard/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes mounts the comment endpoints. Reading a thread is public.
func Routes(h *Handler, tokens *auth.TokenAuth) chi.Router {
	r := chi.NewRouter()

	r.Get("/", h.HandleList)

	r.Group(func(pr chi.Router) {
		pr.Use(tokens.RequireAuth, tokens.RequireOnboarded)
		pr.Post("/", h.HandleCreate)
		pr.Delete("/{id}", h.HandleDelete)
	})

	return r
}
