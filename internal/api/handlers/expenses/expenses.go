package expenses

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"weexpense/internal/models"
	"weexpense/internal/notify"
	"weexpense/internal/store"
	"weexpense/pkg/utils"
)

type Handler struct {
	Store      *store.Store
	Dispatcher *notify.Dispatcher
}

// CreateExpenseHandler persists a new expense with its splits and items, then
// fires receipt notifications in the background. The response never waits on
// delivery, and delivery failures never surface to the caller.
func (h *Handler) CreateExpenseHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.CurrentUserID(r)
	if !ok {
		utils.WriteError(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	var draft models.ExpenseCreate
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&draft); err != nil {
		utils.WriteError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	if err := models.ValidateCategory(draft.Category); err != nil {
		utils.WriteError(w, "invalid category", http.StatusBadRequest)
		return
	}
	if draft.Amount.IsNegative() {
		utils.WriteError(w, "amount must not be negative", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	expense, err := h.Store.CreateExpense(ctx, userID, draft)
	if err != nil {
		utils.Logger.Errorf("failed to create expense: %v", err)
		utils.WriteError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	h.dispatchReceipts(expense)

	utils.WriteJSON(w, expense)
}

func (h *Handler) ListExpensesHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.CurrentUserID(r)
	if !ok {
		utils.WriteError(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	skip := queryInt(r, "skip", 0)
	limit := queryInt(r, "limit", 100)

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	expenses, err := h.Store.ListExpenses(ctx, userID, skip, limit)
	if err != nil {
		utils.Logger.Errorf("failed to list expenses: %v", err)
		utils.WriteError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	utils.WriteJSON(w, expenses)
}

func (h *Handler) GetExpenseHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.CurrentUserID(r)
	if !ok {
		utils.WriteError(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	expense, err := h.Store.GetExpense(ctx, r.PathValue("id"), userID)
	if err != nil {
		if err == store.ErrNotFound {
			utils.WriteError(w, "Expense not found", http.StatusNotFound)
			return
		}
		utils.Logger.Errorf("failed to get expense: %v", err)
		utils.WriteError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	utils.WriteJSON(w, expense)
}

// UpdateExpenseHandler applies a sparse patch; a present splits or items
// field replaces that child collection wholesale.
func (h *Handler) UpdateExpenseHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.CurrentUserID(r)
	if !ok {
		utils.WriteError(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	var patch models.ExpenseUpdate
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&patch); err != nil {
		utils.WriteError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	if patch.Category != nil {
		if err := models.ValidateCategory(*patch.Category); err != nil {
			utils.WriteError(w, "invalid category", http.StatusBadRequest)
			return
		}
	}
	if patch.Amount != nil && patch.Amount.IsNegative() {
		utils.WriteError(w, "amount must not be negative", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	expense, err := h.Store.UpdateExpense(ctx, r.PathValue("id"), userID, patch)
	if err != nil {
		if err == store.ErrNotFound {
			utils.WriteError(w, "Expense not found", http.StatusNotFound)
			return
		}
		utils.Logger.Errorf("failed to update expense: %v", err)
		utils.WriteError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	utils.WriteJSON(w, expense)
}

func (h *Handler) DeleteExpenseHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.CurrentUserID(r)
	if !ok {
		utils.WriteError(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	expense, err := h.Store.DeleteExpense(ctx, r.PathValue("id"), userID)
	if err != nil {
		if err == store.ErrNotFound {
			utils.WriteError(w, "Expense not found", http.StatusNotFound)
			return
		}
		utils.Logger.Errorf("failed to delete expense: %v", err)
		utils.WriteError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	utils.WriteJSON(w, expense)
}

// dispatchReceipts hands the committed expense to the notification channels.
// Runs detached: the HTTP response does not depend on the outcome.
func (h *Handler) dispatchReceipts(expense *models.Expense) {
	if expense.RecipientEmail == "" && expense.TelegramChatID == "" {
		return
	}

	summary := notify.Summary{
		ID:       expense.ID,
		Title:    expense.Title,
		Amount:   expense.Amount.StringFixed(2),
		Date:     expense.Date.Format("2006-01-02 15:04"),
		Category: expense.Category.String(),
	}
	receipt := expense.ReceiptData

	if expense.RecipientEmail != "" {
		go func(target string) {
			if err := h.Dispatcher.Deliver(notify.ChannelEmail, target, summary, receipt); err != nil {
				utils.Logger.Errorf("failed to send receipt email to %s: %v", target, err)
			}
		}(expense.RecipientEmail)
	}

	if expense.TelegramChatID != "" {
		go func(target string) {
			if err := h.Dispatcher.Deliver(notify.ChannelTelegram, target, summary, receipt); err != nil {
				utils.Logger.Errorf("failed to send telegram notification to chat %s: %v", target, err)
			}
		}(expense.TelegramChatID)
	}
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
