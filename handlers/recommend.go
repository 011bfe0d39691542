package handlers

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"manzafir/models"
)

// GetRecommendations asks the hosted LLM for three personalized travel
// recommendations. An unparseable model reply degrades to the fixed fallback
// list inside the recommender; only a transport failure reaches the caller.
func (a *API) GetRecommendations(c *gin.Context) {
	var req models.RecommendationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 60*time.Second)
	defer cancel()

	recommendations, err := a.Recommender.Recommend(ctx, req)
	if err != nil {
		log.Printf("[recommend] llm call failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get recommendations"})
		return
	}

	c.JSON(http.StatusOK, recommendations)
}
