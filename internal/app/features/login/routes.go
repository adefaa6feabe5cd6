// internal/app/features/login/routes.go
package login

import "github.com/go-chi/chi/v5"

func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Post("/", h.ServePassword)
	r.Get("/google", h.ServeGoogleStart)
	r.Get("/google/callback", h.ServeGoogleCallback)
	return r
}
