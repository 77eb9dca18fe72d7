package handlers

import (
	"context"
	"net/http"
	"time"

	"weexpense/internal/store"
	"weexpense/pkg/utils"
)

// HealthHandler answers the unauthenticated root probe.
func HealthHandler(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSON(w, map[string]string{"message": "Expense API is running"})
}

// DBTestHandler reports whether the database answers a ping.
func DBTestHandler(s *store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		if err := s.Ping(ctx); err != nil {
			utils.Logger.Errorf("db-test ping failed: %v", err)
			utils.WriteJSON(w, map[string]string{"status": "error"})
			return
		}
		utils.WriteJSON(w, map[string]string{"status": "ok"})
	}
}
