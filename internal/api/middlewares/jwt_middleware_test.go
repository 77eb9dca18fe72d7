package middlewares

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"weexpense/internal/auth"
	"weexpense/internal/models"
	"weexpense/pkg/utils"
)

type staticUsers struct {
	user *models.User
}

func (s *staticUsers) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	if s.user != nil && s.user.Email == email {
		return s.user, nil
	}
	return nil, errors.New("record not found")
}

func (s *staticUsers) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	if s.user != nil && s.user.ID == id {
		return s.user, nil
	}
	return nil, errors.New("record not found")
}

func echoUserID() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := utils.CurrentUserID(r)
		if !ok {
			http.Error(w, "no user in context", http.StatusInternalServerError)
			return
		}
		w.Write([]byte(id))
	})
}

func TestJWTMiddlewareResolvesUser(t *testing.T) {
	users := &staticUsers{user: &models.User{ID: "user-1", Email: "a@x.com", IsActive: true}}
	tokens := auth.NewTokenService("test-secret", 30*time.Minute, 24*time.Hour, users)

	access, err := tokens.IssueAccessToken("user-1")
	if err != nil {
		t.Fatalf("IssueAccessToken failed: %v", err)
	}

	handler := JWTMiddleware(tokens)(echoUserID())
	req := httptest.NewRequest(http.MethodGet, "/expenses/", nil)
	req.Header.Set("Authorization", "Bearer "+access)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if rec.Body.String() != "user-1" {
		t.Errorf("expected user id in context, got %q", rec.Body.String())
	}
}

func TestJWTMiddlewareRejections(t *testing.T) {
	users := &staticUsers{user: &models.User{ID: "user-1", Email: "a@x.com", IsActive: true}}
	tokens := auth.NewTokenService("test-secret", 30*time.Minute, 24*time.Hour, users)
	expiring := auth.NewTokenService("test-secret", -time.Minute, 24*time.Hour, users)

	expired, err := expiring.IssueAccessToken("user-1")
	if err != nil {
		t.Fatalf("IssueAccessToken failed: %v", err)
	}
	refresh, err := tokens.IssueRefreshToken("user-1")
	if err != nil {
		t.Fatalf("IssueRefreshToken failed: %v", err)
	}

	cases := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"not a bearer scheme", "Basic dXNlcjpwdw=="},
		{"garbage token", "Bearer not-a-jwt"},
		{"expired token", "Bearer " + expired},
		{"refresh token used as access", "Bearer " + refresh},
	}

	handler := JWTMiddleware(tokens)(echoUserID())
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/expenses/", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			if rec.Code != http.StatusUnauthorized {
				t.Errorf("expected 401, got %d", rec.Code)
			}
		})
	}
}

func TestMiddlewaresExcludePaths(t *testing.T) {
	users := &staticUsers{user: &models.User{ID: "user-1", Email: "a@x.com", IsActive: true}}
	tokens := auth.NewTokenService("test-secret", 30*time.Minute, 24*time.Hour, users)

	open := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})
	handler := MiddlewaresExcludePaths(JWTMiddleware(tokens), "/register", "/token")(open)

	req := httptest.NewRequest(http.MethodPost, "/register", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("excluded path should bypass auth, got %d", rec.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/expenses/", nil)
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("non-excluded path without token should 401, got %d", rec.Code)
	}
}
