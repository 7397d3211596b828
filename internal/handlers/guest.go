// internal/handlers/guest.go
package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/wildcard-games/uno-service/internal/auth"
)

// EnsureGuest resolves the caller's guest identity from the auth_token
// cookie, minting a fresh one if the cookie is missing or invalid. The same
// browser therefore keeps one player id across requests without any account
// or storage. Must run before a websocket upgrade so the Set-Cookie header
// can still go out.
func EnsureGuest(w http.ResponseWriter, r *http.Request) (uuid.UUID, error) {
	cookieHeader := r.Header.Get("Cookie")
	if strings.Contains(cookieHeader, "auth_token=") {
		token := extractCookieToken(cookieHeader, "auth_token")
		if sub, err := auth.AuthenticateJWT(token); err == nil {
			if id, parseErr := uuid.Parse(sub); parseErr == nil {
				return id, nil
			}
		}
		// fall through: invalid token gets replaced
	}

	id := uuid.New()
	token, err := auth.CreateJWT(id.String())
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to create guest token: %w", err)
	}
	http.SetCookie(w, &http.Cookie{
		Name:     "auth_token",
		Value:    token,
		HttpOnly: true,
		Path:     "/",
	})
	return id, nil
}

// extractCookieToken extracts a named cookie value from the "Cookie" header,
// or returns empty if not found.
func extractCookieToken(cookieHeader, cookieName string) string {
	parts := strings.Split(cookieHeader, cookieName+"=")
	if len(parts) < 2 {
		return ""
	}
	token := parts[1]
	if idx := strings.Index(token, ";"); idx != -1 {
		token = token[:idx]
	}
	return token
}
