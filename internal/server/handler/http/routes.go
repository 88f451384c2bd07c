// Package http provides HTTP routing and middleware configuration
// for the resource directory service.
package http

import (
	"net/http"

	"github.com/teamsalmon/transponder/internal/middleware"
	"go.uber.org/zap"

	"github.com/go-chi/chi/v5"
)

// NewRouter constructs and returns the HTTP handler serving the
// directory API. Every application route is a GET with query
// parameters and answers 200 with a {"result": ...} envelope;
// only unmapped routes 404.
//
// Parameters:
//
//	authHandler     - registration, login, logout, availability
//	resourceHandler - directory browse/submit/review endpoints
//	memoHandler     - dated-memo variant endpoints
//	sessions        - session store backing the cookie middleware
//	logger          - structured logger for request logging middleware
//
// Middleware chain (applied in order):
//  1. WithRequestLogging(logger)  — logs each request
//  2. WithSession(sessions)       — resolves the session cookie into context
//
// Volunteer-only routes (/_del, /_unverified, /_verify) sit behind the
// RequireVolunteer guard.
func NewRouter(
	authHandler *AuthHandler,
	resourceHandler *ResourceHandler,
	memoHandler *MemoHandler,
	sessions middleware.SessionStore,
	logger *zap.Logger,
) http.Handler {
	r := chi.NewRouter()

	// Log each request and its metadata
	r.Use(middleware.WithRequestLogging(logger))
	// Resolve the session cookie into an authenticated context
	r.Use(middleware.WithSession(sessions))

	// Account endpoints
	r.Get("/_register", authHandler.Register)
	r.Get("/_login", authHandler.Login)
	r.Get("/_logout", authHandler.Logout)
	r.Get("/_checkname", authHandler.CheckName)

	// Public directory endpoints
	r.Get("/_disp", resourceHandler.Disp)
	r.Get("/_create", resourceHandler.Create)
	r.Get("/_allcategories", resourceHandler.AllCategories)
	r.Get("/_verifiedcategories", resourceHandler.VerifiedCategories)
	r.Get("/_unverifiedcategories", resourceHandler.UnverifiedCategories)

	// Volunteer review endpoints
	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireVolunteer)
		r.Get("/_unverified", resourceHandler.Unverified)
		r.Get("/_verify", resourceHandler.Verify)
		r.Get("/_del", resourceHandler.Del)
	})

	// Dated-memo variant
	r.Route("/memo", func(r chi.Router) {
		r.Get("/_disp", memoHandler.Disp)
		r.Get("/_create", memoHandler.Create)
		r.Get("/_del", memoHandler.Del)
	})

	return r
}
