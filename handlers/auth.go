package handlers

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"manzafir/middleware"
	"manzafir/models"
)

// identitySessionData is the identity provider's reply for a session id.
type identitySessionData struct {
	ID           string `json:"id"`
	Email        string `json:"email"`
	Name         string `json:"name"`
	Picture      string `json:"picture"`
	SessionToken string `json:"session_token"`
}

// ProcessSessionData exchanges the X-Session-ID issued by the external
// identity provider for a local 7-day session. The provider owns token
// issuance; we only persist its token with an expiry.
func (a *API) ProcessSessionData(c *gin.Context) {
	sessionID := c.GetHeader("X-Session-ID")
	if sessionID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Session ID required"})
		return
	}

	req, err := http.NewRequestWithContext(c.Request.Context(), http.MethodGet,
		a.IdentityBaseURL+"/auth/v1/env/oauth/session-data", nil)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Authentication failed"})
		return
	}
	req.Header.Set("X-Session-ID", sessionID)

	resp, err := a.httpClient().Do(req)
	if err != nil {
		log.Printf("[auth] identity provider unreachable: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Authentication failed"})
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid session"})
		return
	}

	var data identitySessionData
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		log.Printf("[auth] bad identity provider response: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Authentication failed"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	user, _, err := a.findOrCreateUser(ctx, data.Email, data.Name, data.Picture)
	if err != nil {
		log.Printf("[auth] user lookup failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Authentication failed"})
		return
	}

	expiresAt, err := a.createSession(ctx, user.ID, data.SessionToken)
	if err != nil {
		log.Printf("[auth] session create failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Authentication failed"})
		return
	}

	c.SetCookie(middleware.SessionCookie, data.SessionToken,
		int(time.Until(expiresAt).Seconds()), "/", "", true, true)

	c.JSON(http.StatusOK, gin.H{
		"user":          data,
		"session_token": data.SessionToken,
		"user_id":       user.ID,
	})
}

// Logout deletes the caller's session and clears the cookie.
func (a *API) Logout(c *gin.Context) {
	token := c.GetString(middleware.ContextSessionToken)

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	if err := a.Sessions.DeleteByToken(ctx, token); err != nil {
		log.Printf("[auth] session delete failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Logout failed"})
		return
	}

	c.SetCookie(middleware.SessionCookie, "", -1, "/", "", true, true)
	c.JSON(http.StatusOK, gin.H{"message": "Logged out successfully"})
}

// findOrCreateUser upserts the externally owned user record by email.
func (a *API) findOrCreateUser(ctx context.Context, email, name, picture string) (*models.User, bool, error) {
	user, err := a.Users.FindByEmail(ctx, email)
	if err != nil {
		return nil, false, err
	}
	if user != nil {
		return user, false, nil
	}

	created := models.User{
		ID:        uuid.NewString(),
		Email:     email,
		Name:      name,
		Picture:   picture,
		CreatedAt: time.Now().UTC(),
	}
	if err := a.Users.Insert(ctx, created); err != nil {
		return nil, false, err
	}
	return &created, true, nil
}

func (a *API) createSession(ctx context.Context, userID, token string) (time.Time, error) {
	expiresAt := time.Now().UTC().Add(sessionTTL)
	session := models.UserSession{
		ID:           uuid.NewString(),
		UserID:       userID,
		SessionToken: token,
		ExpiresAt:    expiresAt,
		CreatedAt:    time.Now().UTC(),
	}
	return expiresAt, a.Sessions.Create(ctx, session)
}
