package saveditems

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"weexpense/internal/models"
	"weexpense/internal/store"
	"weexpense/pkg/utils"
)

type Handler struct {
	Store *store.Store
}

func (h *Handler) CreateSavedItemHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.CurrentUserID(r)
	if !ok {
		utils.WriteError(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	draft, ok := decodeSavedItem(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	item, err := h.Store.CreateSavedItem(ctx, userID, draft)
	if err != nil {
		utils.Logger.Errorf("failed to create saved item: %v", err)
		utils.WriteError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	utils.WriteJSON(w, item)
}

func (h *Handler) ListSavedItemsHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.CurrentUserID(r)
	if !ok {
		utils.WriteError(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	skip := queryInt(r, "skip", 0)
	limit := queryInt(r, "limit", 100)

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	items, err := h.Store.ListSavedItems(ctx, userID, skip, limit)
	if err != nil {
		utils.Logger.Errorf("failed to list saved items: %v", err)
		utils.WriteError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	utils.WriteJSON(w, items)
}

// UpdateSavedItemHandler overwrites the whole record; this collection does
// not use sparse patches.
func (h *Handler) UpdateSavedItemHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.CurrentUserID(r)
	if !ok {
		utils.WriteError(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	draft, ok := decodeSavedItem(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	item, err := h.Store.UpdateSavedItem(ctx, r.PathValue("id"), userID, draft)
	if err != nil {
		if err == store.ErrNotFound {
			utils.WriteError(w, "Item not found", http.StatusNotFound)
			return
		}
		utils.Logger.Errorf("failed to update saved item: %v", err)
		utils.WriteError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	utils.WriteJSON(w, item)
}

func (h *Handler) DeleteSavedItemHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.CurrentUserID(r)
	if !ok {
		utils.WriteError(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	item, err := h.Store.DeleteSavedItem(ctx, r.PathValue("id"), userID)
	if err != nil {
		if err == store.ErrNotFound {
			utils.WriteError(w, "Item not found", http.StatusNotFound)
			return
		}
		utils.Logger.Errorf("failed to delete saved item: %v", err)
		utils.WriteError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	utils.WriteJSON(w, item)
}

func decodeSavedItem(w http.ResponseWriter, r *http.Request) (models.SavedItemCreate, bool) {
	var draft models.SavedItemCreate
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&draft); err != nil {
		utils.WriteError(w, "invalid request body", http.StatusBadRequest)
		return draft, false
	}
	defer r.Body.Close()

	if draft.Name == "" {
		utils.WriteError(w, "name is required", http.StatusBadRequest)
		return draft, false
	}
	return draft, true
}

func queryInt(r *http.Request, key string, fallback int) int {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return fallback
	}
	return n
}
