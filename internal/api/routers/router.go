package routers

import (
	"net/http"

	"weexpense/internal/api/handlers"
	authhandlers "weexpense/internal/api/handlers/auth"
	"weexpense/internal/api/handlers/expenses"
	"weexpense/internal/api/handlers/friends"
	"weexpense/internal/api/handlers/saveditems"
	"weexpense/internal/store"
)

func MainRouter(s *store.Store, authH *authhandlers.Handler, expH *expenses.Handler, frH *friends.Handler, siH *saveditems.Handler) *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /{$}", handlers.HealthHandler)
	mux.Handle("GET /db-test", handlers.DBTestHandler(s))

	registerUserRoutes(mux, authH)
	registerExpenseRoutes(mux, expH)
	registerFriendRoutes(mux, frH)
	registerSavedItemRoutes(mux, siH)

	return mux
}
