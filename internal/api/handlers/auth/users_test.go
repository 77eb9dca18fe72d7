package auth

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"

	"weexpense/internal/auth"
	"weexpense/internal/store"
)

const selectUserByEmail = "SELECT id, email, hashed_password, is_active, username, subtitle, profile_image_data FROM users WHERE email = ?"

var userColumns = []string{"id", "email", "hashed_password", "is_active", "username", "subtitle", "profile_image_data"}

func newHandler(t *testing.T) (*Handler, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	st := store.New(db)
	tokens := auth.NewTokenService("test-secret", 30*time.Minute, 24*time.Hour, st)
	return &Handler{Store: st, Tokens: tokens}, mock
}

func TestRegisterHandlerCreatesAccount(t *testing.T) {
	h, mock := newHandler(t)

	mock.ExpectQuery(selectUserByEmail).
		WithArgs("ama@x.com").
		WillReturnRows(sqlmock.NewRows(userColumns))
	mock.ExpectExec("INSERT INTO users (id, email, hashed_password, is_active, username, subtitle) VALUES (?, ?, ?, ?, ?, ?)").
		WithArgs(sqlmock.AnyArg(), "ama@x.com", sqlmock.AnyArg(), true, "Ama", "New User").
		WillReturnResult(sqlmock.NewResult(0, 1))

	body := `{"email": "Ama@X.com", "password": "s3cret-pw"}`
	req := httptest.NewRequest(http.MethodPost, "/register", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.RegisterHandler(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), `"ama@x.com"`)
	require.NotContains(t, rec.Body.String(), "s3cret-pw")
	require.NotContains(t, rec.Body.String(), "hashed_password")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRegisterHandlerDuplicateEmail(t *testing.T) {
	h, mock := newHandler(t)

	mock.ExpectQuery(selectUserByEmail).
		WithArgs("ama@x.com").
		WillReturnRows(sqlmock.NewRows(userColumns).
			AddRow("user-1", "ama@x.com", "salted.hash", true, "Ama", "New User", nil))

	body := `{"email": "ama@x.com", "password": "s3cret-pw"}`
	req := httptest.NewRequest(http.MethodPost, "/register", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.RegisterHandler(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Contains(t, rec.Body.String(), "Email already registered")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRegisterHandlerMissingFields(t *testing.T) {
	h, mock := newHandler(t)

	req := httptest.NewRequest(http.MethodPost, "/register", strings.NewReader(`{"email": "a@x.com"}`))
	rec := httptest.NewRecorder()
	h.RegisterHandler(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestTokenHandlerWrongPassword(t *testing.T) {
	h, mock := newHandler(t)

	hashed, err := auth.HashPassword("right-pw")
	require.NoError(t, err)

	mock.ExpectQuery(selectUserByEmail).
		WithArgs("ama@x.com").
		WillReturnRows(sqlmock.NewRows(userColumns).
			AddRow("user-1", "ama@x.com", hashed, true, "Ama", "New User", nil))

	form := url.Values{"username": {"ama@x.com"}, "password": {"wrong-pw"}}
	req := httptest.NewRequest(http.MethodPost, "/token", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	h.TokenHandler(rec, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.Contains(t, rec.Body.String(), "Incorrect username or password")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestTokenHandlerIssuesPair(t *testing.T) {
	h, mock := newHandler(t)

	hashed, err := auth.HashPassword("right-pw")
	require.NoError(t, err)

	mock.ExpectQuery(selectUserByEmail).
		WithArgs("ama@x.com").
		WillReturnRows(sqlmock.NewRows(userColumns).
			AddRow("user-1", "ama@x.com", hashed, true, "Ama", "New User", nil))

	form := url.Values{"username": {"ama@x.com"}, "password": {"right-pw"}}
	req := httptest.NewRequest(http.MethodPost, "/token", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	h.TokenHandler(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "access_token")
	require.Contains(t, rec.Body.String(), "refresh_token")
	require.Contains(t, rec.Body.String(), `"token_type":"bearer"`)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRefreshHandlerEchoesRefreshToken(t *testing.T) {
	h, mock := newHandler(t)

	refresh, err := h.Tokens.IssueRefreshToken("user-1")
	require.NoError(t, err)

	mock.ExpectQuery("SELECT id, email, hashed_password, is_active, username, subtitle, profile_image_data FROM users WHERE id = ?").
		WithArgs("user-1").
		WillReturnRows(sqlmock.NewRows(userColumns).
			AddRow("user-1", "ama@x.com", "salted.hash", true, "Ama", "New User", nil))

	req := httptest.NewRequest(http.MethodPost, "/refresh?token="+url.QueryEscape(refresh), nil)
	rec := httptest.NewRecorder()
	h.RefreshHandler(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), refresh)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDefaultUsername(t *testing.T) {
	cases := map[string]string{
		"ama@x.com":    "Ama",
		"kofi.m@y.org": "Kofi.m",
		"@weird.com":   "User",
		"single@z.io":  "Single",
	}
	for email, want := range cases {
		if got := defaultUsername(email); got != want {
			t.Errorf("defaultUsername(%q) = %q, want %q", email, got, want)
		}
	}
}
