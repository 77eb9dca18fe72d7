package friends

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

func (h *Handler) CreateFriendHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.CurrentUserID(r)
	if !ok {
		utils.WriteError(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	var draft models.FriendCreate
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&draft); err != nil {
		utils.WriteError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	if draft.Name == "" {
		utils.WriteError(w, "name is required", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	friend, err := h.Store.CreateFriend(ctx, userID, draft)
	if err != nil {
		utils.Logger.Errorf("failed to create friend: %v", err)
		utils.WriteError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	utils.WriteJSON(w, friend)
}

func (h *Handler) ListFriendsHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.CurrentUserID(r)
	if !ok {
		utils.WriteError(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	skip := queryInt(r, "skip", 0)
	limit := queryInt(r, "limit", 100)

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	list, err := h.Store.ListFriends(ctx, userID, skip, limit)
	if err != nil {
		utils.Logger.Errorf("failed to list friends: %v", err)
		utils.WriteError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	utils.WriteJSON(w, list)
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
