// Package home serves the API banner at the root path.
package home

import (
	"net/http"

	"github.com/buzzboard/buzzboard/internal/app/system/httpjson"
)

// Handler serves GET /.
type Handler struct {
	Service string
}

func NewHandler(service string) *Handler {
	return &Handler{Service: service}
}

// ServeRoot answers with the service name and the mounted endpoint
// roots, so hitting the bare API in a browser shows something useful.
func (h *Handler) ServeRoot(w http.ResponseWriter, r *http.Request) {
	httpjson.OK(w, map[string]any{
		"ok":      true,
		"service": h.Service,
		"endpoints": []string{
			"/auth", "/clubs", "/events", "/rsvp", "/volunteers",
			"/comments", "/gallery", "/notifications", "/upload",
			"/uploads", "/health", "/metrics",
		},
	})
}
