package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"weexpense/internal/auth"
	"weexpense/internal/models"
	"weexpense/internal/store"
	"weexpense/pkg/utils"
)

type Handler struct {
	Store  *store.Store
	Tokens *auth.TokenService
}

type tokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
}

// RegisterHandler creates a new account. The default display name is derived
// from the email local part; duplicate emails are rejected with a 400.
func (h *Handler) RegisterHandler(w http.ResponseWriter, r *http.Request) {
	var req models.UserCreate
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		utils.WriteError(w, "invalid or unexpected fields in body", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Email == "" || req.Password == "" {
		utils.WriteError(w, "email and password are required", http.StatusBadRequest)
		return
	}
	if len(req.Password) > 128 {
		utils.WriteError(w, "password too long", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if _, err := h.Store.GetUserByEmail(ctx, req.Email); err == nil {
		utils.WriteError(w, "Email already registered", http.StatusBadRequest)
		return
	}

	hashed, err := auth.HashPassword(req.Password)
	if err != nil {
		utils.Logger.Errorf("failed to hash password: %v", err)
		utils.WriteError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	username := defaultUsername(req.Email)

	user, err := h.Store.CreateUser(ctx, req.Email, hashed, username, "New User")
	if err != nil {
		if err == store.ErrEmailTaken {
			utils.WriteError(w, "Email already registered", http.StatusBadRequest)
			return
		}
		utils.Logger.Errorf("failed to create user: %v", err)
		utils.WriteError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	utils.WriteJSON(w, user)
}

// TokenHandler exchanges form credentials for an access/refresh token pair.
func (h *Handler) TokenHandler(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		utils.WriteError(w, "invalid form body", http.StatusBadRequest)
		return
	}

	email := strings.ToLower(strings.TrimSpace(r.PostFormValue("username")))
	password := r.PostFormValue("password")
	if email == "" || password == "" {
		utils.WriteError(w, "username and password are required", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	access, refresh, err := h.Tokens.Authenticate(ctx, email, password)
	if err != nil {
		utils.WriteError(w, "Incorrect username or password", http.StatusUnauthorized)
		return
	}

	utils.WriteJSON(w, tokenResponse{
		AccessToken:  access,
		RefreshToken: refresh,
		TokenType:    "bearer",
	})
}

// RefreshHandler trades a valid refresh token for a new access token. The
// refresh token is echoed back unchanged; there is no rotation.
func (h *Handler) RefreshHandler(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	if token == "" {
		if err := r.ParseForm(); err == nil {
			token = r.PostFormValue("token")
		}
	}
	if token == "" {
		utils.WriteError(w, "refresh token is required", http.StatusUnauthorized)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	access, err := h.Tokens.Refresh(ctx, token)
	if err != nil {
		utils.WriteError(w, "could not validate credentials", http.StatusUnauthorized)
		return
	}

	utils.WriteJSON(w, tokenResponse{
		AccessToken:  access,
		RefreshToken: token,
		TokenType:    "bearer",
	})
}

// MeHandler returns the authenticated user's profile.
func (h *Handler) MeHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.CurrentUserID(r)
	if !ok {
		utils.WriteError(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	user, err := h.Store.GetUserByID(ctx, userID)
	if err != nil {
		utils.WriteError(w, "could not validate credentials", http.StatusUnauthorized)
		return
	}

	utils.WriteJSON(w, user)
}

// UpdateMeHandler applies a sparse profile patch (username, subtitle, image).
func (h *Handler) UpdateMeHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.CurrentUserID(r)
	if !ok {
		utils.WriteError(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	var patch models.UserUpdate
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&patch); err != nil {
		utils.WriteError(w, "invalid or unexpected fields in body", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	user, err := h.Store.UpdateProfile(ctx, userID, patch)
	if err != nil {
		utils.Logger.Errorf("failed to update profile: %v", err)
		utils.WriteError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	utils.WriteJSON(w, user)
}

func defaultUsername(email string) string {
	local, _, _ := strings.Cut(email, "@")
	if local == "" {
		return "User"
	}
	return strings.ToUpper(local[:1]) + local[1:]
}
