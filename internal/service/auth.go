// Package service provides authentication business logic,
// delegating persistence to an AuthRepository.
package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/teamsalmon/transponder/internal/models"
)

// AuthRepository defines the persistence operations
// required by the authentication service.
type AuthRepository interface {
	// AccountExists returns true if an account with the given username exists.
	AccountExists(ctx context.Context, username string) (bool, error)
	// FindAccount fetches the account with the given username, or
	// models.ErrUnknownUser if absent.
	FindAccount(ctx context.Context, username string) (*models.Account, error)
	// CreateAccount inserts a new account record. Returns
	// models.ErrAlreadyExists if the username is taken.
	CreateAccount(ctx context.Context, acc *models.Account) error
}

// SessionRepository defines the persistence operations for login sessions.
type SessionRepository interface {
	// Create stores a new session.
	Create(ctx context.Context, s *models.Session) error
	// Find fetches a live session by token, or models.ErrNotFound.
	Find(ctx context.Context, token string) (*models.Session, error)
	// Delete removes a session by token.
	Delete(ctx context.Context, token string) error
}

// AuthService implements registration, login, and session management
// by delegating to its repositories.
type AuthService struct {
	repo     AuthRepository
	sessions SessionRepository

	// volunteerSecret is the registration token that grants the
	// volunteer role. An empty secret grants nobody.
	volunteerSecret string
	// sessionTTL is how long a minted session stays valid.
	sessionTTL time.Duration
}

// NewAuthService constructs an AuthService using the provided
// repositories, volunteer secret, and session lifetime.
func NewAuthService(repo AuthRepository, sessions SessionRepository, volunteerSecret string, sessionTTL time.Duration) *AuthService {
	return &AuthService{
		repo:            repo,
		sessions:        sessions,
		volunteerSecret: volunteerSecret,
		sessionTTL:      sessionTTL,
	}
}

// Register creates a new account. The password is bcrypt-hashed before
// storage; the raw password is never persisted or logged. The account
// gets the volunteer role only when volunteerPass matches the
// configured secret. Returns models.ErrAlreadyExists if the username
// is taken.
func (s *AuthService) Register(ctx context.Context, username, password, volunteerPass string) error {
	if username == "" {
		return &models.ValidationError{Field: "username", Reason: "must not be blank"}
	}
	if password == "" {
		return &models.ValidationError{Field: "password", Reason: "must not be blank"}
	}

	// Friendly pre-check; the username primary key still closes the race.
	exists, err := s.repo.AccountExists(ctx, username)
	if err != nil {
		return fmt.Errorf("check username: %w", err)
	}
	if exists {
		return models.ErrAlreadyExists
	}

	role := models.RoleStandard
	if s.volunteerSecret != "" && volunteerPass == s.volunteerSecret {
		role = models.RoleVolunteer
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	return s.repo.CreateAccount(ctx, &models.Account{
		Username:     username,
		PasswordHash: string(hash),
		Role:         role,
	})
}

// Login checks the credentials and, on success, mints a session
// carrying the account's role. Returns models.ErrUnknownUser when the
// account is missing and models.ErrBadPassword when the hash
// comparison fails.
func (s *AuthService) Login(ctx context.Context, username, password string) (*models.Session, error) {
	acc, err := s.repo.FindAccount(ctx, username)
	if err != nil {
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(acc.PasswordHash), []byte(password)) != nil {
		return nil, models.ErrBadPassword
	}

	session := &models.Session{
		Token:     uuid.NewString(),
		Username:  acc.Username,
		Role:      acc.Role,
		ExpiresAt: time.Now().Add(s.sessionTTL),
	}
	if err := s.sessions.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}
	return session, nil
}

// Logout deletes the session with the given token. Unknown tokens are
// a no-op.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	return s.sessions.Delete(ctx, token)
}

// SessionByToken fetches the live session for a token, or
// models.ErrNotFound for unknown or expired tokens.
func (s *AuthService) SessionByToken(ctx context.Context, token string) (*models.Session, error) {
	return s.sessions.Find(ctx, token)
}

// UsernameAvailable reports whether the username is free to register.
func (s *AuthService) UsernameAvailable(ctx context.Context, username string) (bool, error) {
	exists, err := s.repo.AccountExists(ctx, username)
	if err != nil {
		return false, err
	}
	return !exists, nil
}
