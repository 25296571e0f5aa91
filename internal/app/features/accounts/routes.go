// internal/app/features/accounts/routes.go
package accounts

import (
	"github.com/buzzboard/buzzboard/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes mounts the account endpoints. Typically: r.Mount("/auth", ...).
// The /me endpoints require a token but deliberately not a completed
// profile: they ARE the onboarding flow.
func Routes(h *Handler, tokens *auth.TokenAuth) chi.Router {
	r := chi.NewRouter()

	r.Post("/register", h.HandleRegister)
	r.Post("/login", h.HandleLogin)

	r.Group(func(pr chi.Router) {
		pr.Use(tokens.RequireAuth)
		pr.Get("/me", h.HandleMe)
		pr.Put("/me", h.HandleUpdateMe)
	})

	return r
}
