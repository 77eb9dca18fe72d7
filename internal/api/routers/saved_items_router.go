package routers

import (
	"net/http"

	"weexpense/internal/api/handlers/saveditems"
)

func registerSavedItemRoutes(mux *http.ServeMux, h *saveditems.Handler) {
	mux.HandleFunc("POST /saved-items/{$}", h.CreateSavedItemHandler)
	mux.HandleFunc("GET /saved-items/{$}", h.ListSavedItemsHandler)

	mux.HandleFunc("PUT /saved-items/{id}", h.UpdateSavedItemHandler)
	mux.HandleFunc("DELETE /saved-items/{id}", h.DeleteSavedItemHandler)
}
