package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"weexpense/internal/models"
)

var (
	ErrInvalidToken   = errors.New("invalid token")
	ErrTokenExpired   = errors.New("token expired")
	ErrUnknownSubject = errors.New("token subject no longer exists")
)

const (
	tokenTypeAccess  = "access"
	tokenTypeRefresh = "refresh"
)

// UserLookup is the slice of the store the token service needs: resolving
// credentials at login and re-resolving subjects on refresh.
type UserLookup interface {
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByID(ctx context.Context, id string) (*models.User, error)
}

type claims struct {
	TokenType string `json:"typ"`
	jwt.RegisteredClaims
}

// TokenService issues and validates the signed access/refresh token pair.
// The signing key is process-wide configuration; rotating it invalidates
// every outstanding token, which is the accepted revocation story.
type TokenService struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
	users      UserLookup
}

func NewTokenService(secret string, accessTTL, refreshTTL time.Duration, users UserLookup) *TokenService {
	return &TokenService{
		secret:     []byte(secret),
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
		users:      users,
	}
}

func (t *TokenService) IssueAccessToken(subject string) (string, error) {
	return t.issue(subject, tokenTypeAccess, t.accessTTL)
}

func (t *TokenService) IssueRefreshToken(subject string) (string, error) {
	return t.issue(subject, tokenTypeRefresh, t.refreshTTL)
}

func (t *TokenService) issue(subject, tokenType string, ttl time.Duration) (string, error) {
	now := time.Now()
	c := &claims{
		TokenType: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, c)
	signed, err := token.SignedString(t.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

func (t *TokenService) parse(tokenString, wantType string) (*claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &claims{}, func(token *jwt.Token) (any, error) {
		return t.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrInvalidToken
	}

	c, ok := token.Claims.(*claims)
	if !ok || !token.Valid || c.Subject == "" {
		return nil, ErrInvalidToken
	}
	if c.TokenType != wantType {
		return nil, ErrInvalidToken
	}
	return c, nil
}

// Authenticate verifies the credentials and, on success, issues a fresh
// access/refresh pair for the user.
func (t *TokenService) Authenticate(ctx context.Context, email, password string) (access, refresh string, err error) {
	user, err := t.users.GetUserByEmail(ctx, email)
	if err != nil {
		return "", "", ErrInvalidCredentials
	}

	if err := VerifyPassword(password, user.HashedPassword); err != nil {
		return "", "", ErrInvalidCredentials
	}

	access, err = t.IssueAccessToken(user.ID)
	if err != nil {
		return "", "", err
	}
	refresh, err = t.IssueRefreshToken(user.ID)
	if err != nil {
		return "", "", err
	}
	return access, refresh, nil
}

// Refresh validates a refresh token and issues a new access token for its
// subject. The refresh token itself is not rotated; callers keep presenting
// the one they have.
func (t *TokenService) Refresh(ctx context.Context, refreshToken string) (string, error) {
	c, err := t.parse(refreshToken, tokenTypeRefresh)
	if err != nil {
		return "", err
	}

	user, err := t.users.GetUserByID(ctx, c.Subject)
	if err != nil {
		return "", ErrUnknownSubject
	}

	return t.IssueAccessToken(user.ID)
}

// Resolve is the authorization gate: it validates an access token and maps
// its subject back to a live user. Every failure mode collapses to an
// unauthenticated outcome for the caller.
func (t *TokenService) Resolve(ctx context.Context, accessToken string) (*models.User, error) {
	c, err := t.parse(accessToken, tokenTypeAccess)
	if err != nil {
		return nil, err
	}

	user, err := t.users.GetUserByID(ctx, c.Subject)
	if err != nil {
		return nil, ErrUnknownSubject
	}
	return user, nil
}
