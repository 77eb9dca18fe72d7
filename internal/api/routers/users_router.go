package routers

import (
	"net/http"

	authhandlers "weexpense/internal/api/handlers/auth"
)

func registerUserRoutes(mux *http.ServeMux, h *authhandlers.Handler) {
	mux.HandleFunc("POST /register", h.RegisterHandler)
	mux.HandleFunc("POST /token", h.TokenHandler)
	mux.HandleFunc("POST /refresh", h.RefreshHandler)

	mux.HandleFunc("GET /users/me", h.MeHandler)
	mux.HandleFunc("PUT /users/me", h.UpdateMeHandler)
}
