// Package http provides HTTP handlers for user registration and
// session login.
package http

import (
	"context"
	"net/http"

	"github.com/teamsalmon/transponder/internal/middleware"
	"github.com/teamsalmon/transponder/internal/models"
)

// AuthService defines the interface for authentication operations
// required by the HTTP handlers.
type AuthService interface {
	// Register creates a new account, deriving the role from the
	// supplied volunteer pass.
	Register(ctx context.Context, username, password, volunteerPass string) error
	// Login checks credentials and mints a session on success.
	Login(ctx context.Context, username, password string) (*models.Session, error)
	// Logout deletes the session with the given token.
	Logout(ctx context.Context, token string) error
	// UsernameAvailable reports whether the username is free.
	UsernameAvailable(ctx context.Context, username string) (bool, error)
}

// AuthHandler handles HTTP requests for registration, login, logout,
// and username availability checks.
type AuthHandler struct {
	// AuthService performs the underlying authentication operations.
	AuthService AuthService
}

// Register handles GET /_register requests.
// It expects username and password query parameters and an optional
// volunteer_pass granting the volunteer role when it matches the
// configured secret.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	username := r.URL.Query().Get("username")
	password := r.URL.Query().Get("password")
	volunteerPass := r.URL.Query().Get("volunteer_pass")

	if err := h.AuthService.Register(r.Context(), username, password, volunteerPass); err != nil {
		writeError(w, err)
		return
	}
	writeResult(w, map[string]string{"message": "User registered successfully"})
}

// Login handles GET /_login requests. On success it sets the session
// cookie carrying the minted token; the role travels with the session,
// never with the client.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	username := r.URL.Query().Get("username")
	password := r.URL.Query().Get("password")

	session, err := h.AuthService.Login(r.Context(), username, password)
	if err != nil {
		writeError(w, err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    session.Token,
		Path:     "/",
		Expires:  session.ExpiresAt,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	writeResult(w, map[string]string{"message": "Password is correct"})
}

// Logout handles GET /_logout requests, deleting the caller's session
// and clearing the cookie. Logging out without a session is a no-op.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(middleware.SessionCookie); err == nil {
		if err := h.AuthService.Logout(r.Context(), cookie.Value); err != nil {
			writeError(w, err)
			return
		}
	}

	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
	writeResult(w, map[string]string{"message": "Logged out"})
}

// CheckName handles GET /_checkname requests, answering whether the
// username is still available.
func (h *AuthHandler) CheckName(w http.ResponseWriter, r *http.Request) {
	username := r.URL.Query().Get("username")

	available, err := h.AuthService.UsernameAvailable(r.Context(), username)
	if err != nil {
		writeError(w, err)
		return
	}
	writeResult(w, available)
}
