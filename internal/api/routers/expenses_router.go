package routers

import (
	"net/http"

	"weexpense/internal/api/handlers/expenses"
)

func registerExpenseRoutes(mux *http.ServeMux, h *expenses.Handler) {
	mux.HandleFunc("POST /expenses/{$}", h.CreateExpenseHandler)
	mux.HandleFunc("GET /expenses/{$}", h.ListExpensesHandler)

	mux.HandleFunc("GET /expenses/{id}", h.GetExpenseHandler)
	mux.HandleFunc("PUT /expenses/{id}", h.UpdateExpenseHandler)
	mux.HandleFunc("DELETE /expenses/{id}", h.DeleteExpenseHandler)
}
