// internal/app/features/gateway/routes.go
package gateway

import "github.com/go-chi/chi/v5"

func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Post("/", h.Serve)
	return r
}
