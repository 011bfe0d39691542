package middleware

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

const (
	// SessionCookie is checked before the Authorization header.
	SessionCookie = "session_token"

	ContextUserID       = "userId"
	ContextSessionToken = "sessionToken"
)

// SessionResolver turns an opaque session token into a user id. An unknown or
// expired token resolves to "" with a nil error; a non-nil error means the
// session store itself failed.
type SessionResolver interface {
	Resolve(ctx context.Context, token string) (string, error)
}

// ExtractToken pulls the session token from the cookie first, then from a
// Bearer Authorization header. Returns "" when neither is present.
func ExtractToken(r *http.Request) string {
	if cookie, err := r.Cookie(SessionCookie); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	authHeader := r.Header.Get("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}
	return ""
}

// SessionAuth gates protected routes. It resolves the request's session token
// against the session store and puts the user id in the gin context.
func SessionAuth(sessions SessionResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodOptions {
			c.Next()
			return
		}

		token := ExtractToken(c.Request)
		if token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error":   "Not authenticated",
				"message": "No session token provided",
			})
			c.Abort()
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
		defer cancel()

		userID, err := sessions.Resolve(ctx, token)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Session lookup failed"})
			c.Abort()
			return
		}
		if userID == "" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error":   "Not authenticated",
				"message": "Session is invalid or expired",
			})
			c.Abort()
			return
		}

		c.Set(ContextUserID, userID)
		c.Set(ContextSessionToken, token)
		c.Next()
	}
}
