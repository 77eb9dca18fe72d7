package utils

import (
	"encoding/json"
	"net/http"
)

// WriteJSON writes data as a 200 JSON response. Encoding failures are
// reported to the client but by then the status line is already out.
func WriteJSON(w http.ResponseWriter, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		http.Error(w, "failed to encode JSON response", http.StatusInternalServerError)
	}
}
