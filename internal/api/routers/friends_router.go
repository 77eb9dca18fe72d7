package routers

import (
	"net/http"

	"weexpense/internal/api/handlers/friends"
)

func registerFriendRoutes(mux *http.ServeMux, h *friends.Handler) {
	mux.HandleFunc("POST /friends/{$}", h.CreateFriendHandler)
	mux.HandleFunc("GET /friends/{$}", h.ListFriendsHandler)
}
