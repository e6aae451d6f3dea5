// internal/handlers/guest.go
package handlers

import (
	"fmt"
	"net/http"

	"github.com/google/uuid"

	"github.com/cameo-gg/cameo/internal/auth"
)

const authCookieName = "auth_token"

// EnsureGuest returns a stable guest identity for the request. If the
// client already carries a valid guest token, its id is reused; otherwise a
// fresh id is minted and set as an HttpOnly cookie. Guests have no account:
// the id only distinguishes connections in the broadcast fabric.
//
// Must be called before the response is hijacked by a WebSocket upgrade,
// since it may write a Set-Cookie header.
func EnsureGuest(w http.ResponseWriter, r *http.Request) (uuid.UUID, error) {
	if ck, err := r.Cookie(authCookieName); err == nil {
		if sub, err := auth.AuthenticateJWT(ck.Value); err == nil {
			if id, err := uuid.Parse(sub); err == nil {
				return id, nil
			}
		}
		// Fall through and re-mint on any stale or malformed token.
	}

	id := uuid.New()
	token, err := auth.CreateJWT(id.String())
	if err != nil {
		return uuid.Nil, fmt.Errorf("create guest token: %w", err)
	}
	http.SetCookie(w, &http.Cookie{
		Name:     authCookieName,
		Value:    token,
		HttpOnly: true,
		Path:     "/",
	})
	return id, nil
}
