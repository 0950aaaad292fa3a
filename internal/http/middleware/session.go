// Package middleware contains shared Gin middleware used by the HTTP layer.
//
// This file implements the session gate. Authentication is cookie-based: a
// successful login sets an HTTP-only cookie holding an opaque session ID, and
// every protected route passes through RequireSession, which resolves that ID
// to a user and stores the user ID in the Gin context. Routes are partitioned
// once, at router construction: the public group (register, login, health,
// metrics) never sees the gate, and every other route is unreachable without
// a valid session. IsPublicPath is the single classifier for that partition.
package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	// SessionCookie is the name of the HTTP-only cookie carrying the session ID.
	SessionCookie = "session_id"
	// userIDKey is the Gin context key holding the authenticated user's ID.
	userIDKey = "userID"
)

// publicSuffixes are the API route suffixes reachable without a session,
// relative to the API base path.
var publicSuffixes = []string{
	"/auth/register",
	"/auth/login",
}

// publicExact are absolute paths outside the API base that are always public.
var publicExact = []string{
	"/health",
	"/metrics",
}

// SessionResolver resolves an opaque session ID to a user ID. Unknown and
// expired sessions are indistinguishable to callers: both return an error.
type SessionResolver interface {
	ResolveSession(ctx context.Context, sessionID string) (string, error)
}

// IsPublicPath reports whether the request path is reachable without a
// session. basePath is the API prefix (e.g. "/api/v1"). Everything not
// matched here requires authentication; new routes are therefore protected
// by default.
func IsPublicPath(basePath, path string) bool {
	for _, p := range publicExact {
		if path == p {
			return true
		}
	}
	for _, s := range publicSuffixes {
		if path == basePath+s {
			return true
		}
	}
	return false
}

// RequireSession returns a Gin middleware that admits only requests carrying
// a valid session cookie. On success the resolved user ID is stored in the
// context under "userID". On any failure (missing cookie, unknown or expired
// session) the request is aborted with a uniform 401 so callers cannot probe
// which part failed.
func RequireSession(resolver SessionResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		sid, err := c.Cookie(SessionCookie)
		if err != nil || strings.TrimSpace(sid) == "" {
			unauthorized(c)
			return
		}

		uid, err := resolver.ResolveSession(c.Request.Context(), sid)
		if err != nil {
			unauthorized(c)
			return
		}

		c.Set(userIDKey, uid)
		c.Next()
	}
}

// UserID returns the authenticated user's ID set by RequireSession.
func UserID(c *gin.Context) (string, bool) {
	v, ok := c.Get(userIDKey)
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok && s != ""
}

// unauthorized aborts with the standard 401 envelope. The stale cookie is
// cleared so clients stop resending a session that no longer resolves.
func unauthorized(c *gin.Context) {
	c.SetCookie(SessionCookie, "", -1, "/", "", false, true)
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"request_id": c.Writer.Header().Get(requestIDHeader),
		"code":       "unauthorized",
		"message":    "authentication required",
	})
}
