// internal/app/features/upload/routes.go
package upload

import (
	"github.com/buzzboard/buzzboard/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

func Routes(h *Handler, tokens *auth.TokenAuth) chi.Router {
	r := chi.NewRouter()
	r.Use(tokens.RequireAuth)
	r.Use(tokens.RequireOnboarded)

	r.Post("/image", h.HandleImage)

	return r
}
