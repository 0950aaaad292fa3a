// Auth HTTP handlers.
//
// This file exposes the REST endpoints for the account lifecycle:
//   - POST /auth/register  (create account, start session)
//   - POST /auth/login     (start session)
//   - POST /auth/logout    (destroy session)
//   - GET  /auth/me        (current account)
//
// Handlers are transport-thin: they validate input, delegate to application
// services, and translate domain/service errors into HTTP results. The
// session travels in an HTTP-only cookie; its value is the opaque session ID
// and is never exposed in response bodies.
package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/douglasgmsantos/monitoramento-produtos/internal/domain"
	"github.com/douglasgmsantos/monitoramento-produtos/internal/http/middleware"
	"github.com/douglasgmsantos/monitoramento-produtos/internal/services"
)

//
// Service contracts (context-aware)
//

// AuthService defines the account and session operations consumed by HTTP
// handlers. Implementations must be safe for concurrent use and honor the
// provided context.
type AuthService interface {
	// Register creates an account from the signup form fields.
	Register(ctx context.Context, name, email, password string) (*domain.User, error)
	// Login verifies credentials and mints a session.
	Login(ctx context.Context, email, password string) (*domain.User, *domain.Session, error)
	// Logout destroys the session; unknown sessions are not an error.
	Logout(ctx context.Context, sessionID string) error
	// CurrentUser resolves the session to its account.
	CurrentUser(ctx context.Context, sessionID string) (*domain.User, error)
}

//
// Handler wiring
//

// Handlers groups the HTTP endpoints for accounts, products, notifications,
// and profiles. It depends on abstract service interfaces to keep transport
// concerns separate from business logic.
type Handlers struct {
	authSvc  AuthService
	prodSvc  ProductService
	notifSvc NotificationService
	profSvc  ProfileService
}

// New constructs a Handlers instance bound to the given services.
func New(auth AuthService, prod ProductService, notif NotificationService, prof ProfileService) *Handlers {
	return &Handlers{authSvc: auth, prodSvc: prod, notifSvc: notif, profSvc: prof}
}

// currentUser returns the authenticated user ID placed in the context by the
// session gate. Handlers behind the gate can rely on it being present; the
// false branch only fires when a route is mounted without the gate, which is
// a wiring bug surfaced as 401 rather than a panic.
func currentUser(c *gin.Context) (string, bool) {
	uid, ok := middleware.UserID(c)
	if !ok {
		fail(c, http.StatusUnauthorized, ErrCodeUnauthorized, "authentication required")
	}
	return uid, ok
}

// setSessionCookie installs the HTTP-only session cookie. The Secure flag is
// left off because TLS terminates at the proxy; the cookie never crosses a
// public hop in plaintext.
func setSessionCookie(c *gin.Context, s *domain.Session) {
	maxAge := int(time.Until(s.ExpiresAt).Seconds())
	if maxAge < 0 {
		maxAge = 0
	}
	c.SetCookie(middleware.SessionCookie, s.ID, maxAge, "/", "", false, true)
}

// clearSessionCookie expires the session cookie immediately.
func clearSessionCookie(c *gin.Context) {
	c.SetCookie(middleware.SessionCookie, "", -1, "/", "", false, true)
}

//
// DTOs
//

// RegisterRequest is the JSON payload of the signup form.
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest is the JSON payload of the login form.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

//
// Handlers
//

// Register creates an account and signs the user in, mirroring the signup
// flow where a successful registration lands directly on the product list.
func (h *Handlers) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "corpo JSON inválido")
		return
	}

	ctx := c.Request.Context()
	u, err := h.authSvc.Register(ctx, req.Name, req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrNameRequired):
			fail(c, http.StatusBadRequest, ErrCodeBadRequest, "Informe seu nome")
		case errors.Is(err, services.ErrInvalidEmail):
			fail(c, http.StatusBadRequest, ErrCodeBadRequest, "Informe um email válido")
		case errors.Is(err, services.ErrWeakPassword):
			fail(c, http.StatusBadRequest, ErrCodeBadRequest, "A senha deve ter pelo menos 6 caracteres")
		case errors.Is(err, services.ErrEmailInUse):
			fail(c, http.StatusConflict, ErrCodeConflict, "Este email já está em uso")
		default:
			fail(c, http.StatusInternalServerError, ErrCodeRegisterFailed, "Ocorreu um erro ao criar sua conta")
		}
		return
	}

	// Auto sign-in after signup. If minting the session fails the account
	// still exists, so answer 201 and let the client log in explicitly.
	if _, sess, err := h.authSvc.Login(ctx, req.Email, req.Password); err == nil {
		setSessionCookie(c, sess)
	} else {
		middleware.LoggerFrom(c).Warn().Err(err).Msg("post-register login failed")
	}

	ok(c, http.StatusCreated, u)
}

// Login verifies credentials and sets the session cookie.
func (h *Handlers) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "corpo JSON inválido")
		return
	}

	u, sess, err := h.authSvc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			fail(c, http.StatusUnauthorized, ErrCodeUnauthorized, "Email ou senha inválidos")
			return
		}
		fail(c, http.StatusInternalServerError, ErrCodeInternal, "Ocorreu um erro ao entrar")
		return
	}

	setSessionCookie(c, sess)
	ok(c, http.StatusOK, u)
}

// Logout clears the cookie and destroys the server-side session. Clearing
// is optimistic: the cookie goes away even when the row delete fails, so the
// browser is signed out either way and an orphaned row expires on its own.
func (h *Handlers) Logout(c *gin.Context) {
	sid, err := c.Cookie(middleware.SessionCookie)
	if err == nil && sid != "" {
		if err := h.authSvc.Logout(c.Request.Context(), sid); err != nil {
			middleware.LoggerFrom(c).Error().Err(err).Msg("session delete failed on logout")
		}
	}
	clearSessionCookie(c)
	noContent(c)
}

// Me returns the account bound to the current session. The session gate has
// already validated the cookie, so a miss here means the session expired
// between the gate and this read.
func (h *Handlers) Me(c *gin.Context) {
	sid, err := c.Cookie(middleware.SessionCookie)
	if err != nil || sid == "" {
		fail(c, http.StatusUnauthorized, ErrCodeUnauthorized, "authentication required")
		return
	}

	u, err := h.authSvc.CurrentUser(c.Request.Context(), sid)
	if err != nil {
		if errors.Is(err, services.ErrSessionNotFound) {
			clearSessionCookie(c)
			fail(c, http.StatusUnauthorized, ErrCodeUnauthorized, "authentication required")
			return
		}
		fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		return
	}

	ok(c, http.StatusOK, u)
}
