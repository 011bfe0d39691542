package handlers

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"manzafir/middleware"
	"manzafir/models"
)

// GetProfile returns the caller's user record together with their travel
// profile; profile is null until they complete onboarding.
func (a *API) GetProfile(c *gin.Context) {
	userID := c.GetString(middleware.ContextUserID)

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	user, err := a.Users.FindByID(ctx, userID)
	if err != nil {
		log.Printf("[profile] user fetch failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch profile"})
		return
	}

	profile, err := a.Profiles.Get(ctx, userID)
	if err != nil {
		log.Printf("[profile] profile fetch failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch profile"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user":    user,
		"profile": profile,
	})
}

// UpdateProfile replaces the caller's travel profile wholesale. The user id
// always comes from the session, never from the body.
func (a *API) UpdateProfile(c *gin.Context) {
	var profile models.UserProfile
	if err := c.ShouldBindJSON(&profile); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	profile.UserID = c.GetString(middleware.ContextUserID)

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	if err := a.Profiles.Upsert(ctx, profile); err != nil {
		log.Printf("[profile] upsert failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update profile"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Profile updated successfully"})
}
