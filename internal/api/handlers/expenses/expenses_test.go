package expenses

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"

	"weexpense/internal/notify"
	"weexpense/internal/store"
	"weexpense/pkg/utils"
)

func newHandler(t *testing.T) (*Handler, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return &Handler{Store: store.New(db), Dispatcher: notify.NewDispatcher()}, mock
}

func authedRequest(method, target, body, userID string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	ctx := context.WithValue(req.Context(), utils.UserIDKey, userID)
	return req.WithContext(ctx)
}

func TestCreateExpenseHandlerRejectsBadCategory(t *testing.T) {
	h, mock := newHandler(t)

	body := `{"title": "Dinner", "amount": "10.00", "date": "2026-03-14T19:30:00Z", "category": "Gambling"}`
	req := authedRequest(http.MethodPost, "/expenses/", body, "user-1")
	rec := httptest.NewRecorder()
	h.CreateExpenseHandler(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Contains(t, rec.Body.String(), "invalid category")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateExpenseHandlerRejectsNegativeAmount(t *testing.T) {
	h, mock := newHandler(t)

	body := `{"title": "Dinner", "amount": "-10.00", "date": "2026-03-14T19:30:00Z", "category": "Food"}`
	req := authedRequest(http.MethodPost, "/expenses/", body, "user-1")
	rec := httptest.NewRecorder()
	h.CreateExpenseHandler(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateExpenseHandlerRejectsUnknownFields(t *testing.T) {
	h, mock := newHandler(t)

	body := `{"title": "Dinner", "amount": "10.00", "date": "2026-03-14T19:30:00Z", "category": "Food", "wallet": "x"}`
	req := authedRequest(http.MethodPost, "/expenses/", body, "user-1")
	rec := httptest.NewRecorder()
	h.CreateExpenseHandler(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetExpenseHandlerForeignIDLooksMissing(t *testing.T) {
	h, mock := newHandler(t)

	mock.ExpectQuery("SELECT id, user_id, title, amount, date, category, receipt_data, recipient_email, telegram_chat_id FROM expenses WHERE id = ? AND user_id = ?").
		WithArgs("exp-1", "intruder").
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "title", "amount", "date", "category", "receipt_data", "recipient_email", "telegram_chat_id"}))

	req := authedRequest(http.MethodGet, "/expenses/exp-1", "", "intruder")
	req.SetPathValue("id", "exp-1")
	rec := httptest.NewRecorder()
	h.GetExpenseHandler(rec, req)

	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Contains(t, rec.Body.String(), "Expense not found")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteExpenseHandlerMissingIDNotFound(t *testing.T) {
	h, mock := newHandler(t)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT id, user_id, title, amount, date, category, receipt_data, recipient_email, telegram_chat_id FROM expenses WHERE id = ? AND user_id = ?").
		WithArgs("ghost", "user-1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "title", "amount", "date", "category", "receipt_data", "recipient_email", "telegram_chat_id"}))
	mock.ExpectRollback()

	req := authedRequest(http.MethodDelete, "/expenses/ghost", "", "user-1")
	req.SetPathValue("id", "ghost")
	rec := httptest.NewRecorder()
	h.DeleteExpenseHandler(rec, req)

	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Contains(t, rec.Body.String(), "Expense not found")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestListExpensesHandlerClampsBadPagination(t *testing.T) {
	h, mock := newHandler(t)

	mock.ExpectQuery("SELECT id, user_id, title, amount, date, category, receipt_data, recipient_email, telegram_chat_id FROM expenses WHERE user_id = ? ORDER BY created_at LIMIT ? OFFSET ?").
		WithArgs("user-1", 100, 0).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "title", "amount", "date", "category", "receipt_data", "recipient_email", "telegram_chat_id"}))

	req := authedRequest(http.MethodGet, "/expenses/?skip=-3&limit=nope", "", "user-1")
	rec := httptest.NewRecorder()
	h.ListExpensesHandler(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, "[]", rec.Body.String())
	require.NoError(t, mock.ExpectationsWereMet())
}
