package handlers

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"manzafir/matching"
	"manzafir/middleware"
	"manzafir/models"
)

type matchActionRequest struct {
	TargetUserID       string `json:"target_user_id" binding:"required"`
	Action             string `json:"action" binding:"required,oneof=like pass"`
	CompatibilityScore int    `json:"compatibility_score"`
}

// GetPotentialMatches returns up to five candidates ranked by compatibility.
// A caller without a profile gets an empty list and a hint, not an error.
func (a *API) GetPotentialMatches(c *gin.Context) {
	userID := c.GetString(middleware.ContextUserID)

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	matches, err := a.Matcher.PotentialMatches(ctx, userID)
	if errors.Is(err, matching.ErrProfileIncomplete) {
		c.JSON(http.StatusOK, gin.H{
			"matches": []matching.ScoredCandidate{},
			"message": "Please complete your profile first",
		})
		return
	}
	if err != nil {
		log.Printf("[matches] ranking failed for %s: %v", userID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch matches"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"matches": matches})
}

// MatchAction records a like/pass and reports whether it completed a mutual
// match. The declared score is the caller's echo of a prior ranking score.
func (a *API) MatchAction(c *gin.Context) {
	var req matchActionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required fields"})
		return
	}

	userID := c.GetString(middleware.ContextUserID)

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	result, err := a.Recorder.Record(ctx, userID, req.TargetUserID, req.Action, req.CompatibilityScore)
	switch {
	case errors.Is(err, matching.ErrMissingParticipant),
		errors.Is(err, matching.ErrSelfAction),
		errors.Is(err, matching.ErrInvalidAction):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	case err != nil:
		log.Printf("[matches] record failed for %s -> %s: %v", userID, req.TargetUserID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record action"})
		return
	}

	if result.Mutual {
		a.notifyMutualMatch(userID, req.TargetUserID)
	}

	c.JSON(http.StatusOK, gin.H{
		"message":      "Action recorded",
		"mutual_match": result.Mutual,
	})
}

// notifyMutualMatch pushes a "you matched" notification to both sides,
// best effort: a lookup or delivery failure never fails the action.
func (a *API) notifyMutualMatch(actorID, targetID string) {
	if a.VAPIDPrivateKey == "" {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	actor, err := a.Users.FindByID(ctx, actorID)
	if err != nil || actor == nil {
		actor = &models.User{Name: "Someone"}
	}
	target, err := a.Users.FindByID(ctx, targetID)
	if err != nil || target == nil {
		target = &models.User{Name: "Someone"}
	}

	a.SendMatchPush(targetID, actor.Name)
	a.SendMatchPush(actorID, target.Name)
}
