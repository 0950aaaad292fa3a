// Package services – AuthService
//
// This file implements the AuthService, which owns account registration,
// login, logout, and session resolution. Passwords are hashed with bcrypt
// and never stored or logged in plaintext; sessions are opaque UUID tokens
// with a fixed lifetime (one week by default) that the HTTP layer carries
// in an HTTP-only cookie.
//
// Service-level errors (ErrWeakPassword, ErrEmailInUse,
// ErrInvalidCredentials, ErrSessionNotFound) are returned for predictable
// cases so handlers can map them to HTTP results consistently.
package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/douglasgmsantos/monitoramento-produtos/internal/domain"
	"github.com/douglasgmsantos/monitoramento-produtos/internal/repo"
)

// minPasswordLen mirrors the auth provider rule the registration screen
// translates for the user ("A senha deve ter pelo menos 6 caracteres").
const minPasswordLen = 6

// AuthService implements the use-cases around accounts and sessions.
type AuthService struct {
	// DB is the GORM handle used for persistence.
	DB *gorm.DB
	// SessionTTL is the lifetime of issued sessions (and of the cookie the
	// HTTP layer derives from them).
	SessionTTL time.Duration
	// BCryptCost is the hashing work factor.
	BCryptCost int
}

// NewAuthService constructs an AuthService with sane defaults: one-week
// sessions and the default bcrypt cost.
func NewAuthService(db *gorm.DB) *AuthService {
	return &AuthService{
		DB:         db,
		SessionTTL: 7 * 24 * time.Hour,
		BCryptCost: bcrypt.DefaultCost,
	}
}

// Register creates a new account with the display name, email, and
// password, mirroring the provider's create-account + set-display-name
// sequence in a single step.
//
// Validation:
//   - name must be non-empty (ErrNameRequired);
//   - email must be plausibly formed (ErrInvalidEmail);
//   - password must have at least six characters (ErrWeakPassword);
//   - email must not belong to an existing account (ErrEmailInUse).
func (s *AuthService) Register(ctx context.Context, name, email, password string) (*domain.User, error) {
	name = strings.TrimSpace(name)
	email = strings.ToLower(strings.TrimSpace(email))

	if name == "" {
		return nil, ErrNameRequired
	}
	if !plausibleEmail(email) {
		return nil, ErrInvalidEmail
	}
	if len(password) < minPasswordLen {
		return nil, ErrWeakPassword
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.BCryptCost)
	if err != nil {
		return nil, err
	}

	u, err := repo.CreateUser(ctx, s.DB, name, email, string(hash))
	if err != nil {
		// The unique index on email is the authority for duplicates; a
		// pre-check would race with concurrent registrations.
		if errors.Is(err, gorm.ErrDuplicatedKey) || isDuplicate(err) {
			return nil, ErrEmailInUse
		}
		return nil, err
	}
	return u, nil
}

// Login verifies the credentials and issues a fresh session. Unknown email
// and wrong password both yield ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.User, *domain.Session, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	u, err := repo.GetUserByEmail(ctx, s.DB, email)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, nil, ErrInvalidCredentials
		}
		return nil, nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return nil, nil, ErrInvalidCredentials
	}

	sess, err := repo.CreateSession(ctx, s.DB, u.ID, s.SessionTTL)
	if err != nil {
		return nil, nil, err
	}
	return u, sess, nil
}

// Logout destroys the session. Destroying an unknown or already-expired
// session is not an error: the caller clears its cookie either way.
func (s *AuthService) Logout(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil
	}
	return repo.DeleteSession(ctx, s.DB, sessionID)
}

// CurrentUser resolves a session id to its account. Expired or unknown
// sessions yield ErrSessionNotFound.
func (s *AuthService) CurrentUser(ctx context.Context, sessionID string) (*domain.User, error) {
	if sessionID == "" {
		return nil, ErrSessionNotFound
	}
	sess, err := repo.GetSession(ctx, s.DB, sessionID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}
	u, err := repo.GetUser(ctx, s.DB, sess.UserID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}
	return u, nil
}

// ResolveSession maps a session id to the owning user id without loading
// the account row. Used by the session middleware on every protected
// request.
func (s *AuthService) ResolveSession(ctx context.Context, sessionID string) (string, error) {
	if sessionID == "" {
		return "", ErrSessionNotFound
	}
	sess, err := repo.GetSession(ctx, s.DB, sessionID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return "", ErrSessionNotFound
		}
		return "", err
	}
	return sess.UserID, nil
}

// plausibleEmail applies the same coarse shape check the login form does:
// one "@" with a dot somewhere after it. Real validation happens when the
// address is used.
func plausibleEmail(email string) bool {
	at := strings.Index(email, "@")
	if at <= 0 || at == len(email)-1 {
		return false
	}
	if strings.Count(email, "@") != 1 {
		return false
	}
	return strings.Contains(email[at+1:], ".")
}

// isDuplicate attempts to detect unique-constraint violations across drivers
// that may not map to gorm.ErrDuplicatedKey.
func isDuplicate(err error) bool {
	// SQLite typically: "UNIQUE constraint failed"
	// Postgres typically: "duplicate key value violates unique constraint"
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "duplicate key")
}
