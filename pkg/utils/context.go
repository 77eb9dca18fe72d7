package utils

import "net/http"

// ContextKey is a dedicated type for request context keys so handler and
// middleware packages never collide on plain strings.
type ContextKey string

const UserIDKey = ContextKey("userId")

// CurrentUserID returns the authenticated user id placed in the request
// context by the JWT middleware.
func CurrentUserID(r *http.Request) (string, bool) {
	id, ok := r.Context().Value(UserIDKey).(string)
	if !ok || id == "" {
		return "", false
	}
	return id, true
}
