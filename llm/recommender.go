// Package llm calls the hosted chat-completion API that generates travel
// recommendations. The model owns the hard part; this package shapes the
// prompt, parses the reply, and falls back to a fixed list when the model
// returns something that is not JSON.
package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"manzafir/models"
)

const placeholderImageURL = "https://res.cloudinary.com/dqixczuzs/image/upload/v1/placeholder/travel_destination.jpg"

const systemPrompt = `You are a travel expert AI that provides personalized travel recommendations.
You should respond with exactly 3 travel recommendations in JSON format. Each recommendation should include:
- destination_name: Name of the destination
- description: Brief compelling description (2-3 sentences)
- highlights: List of 3-4 key attractions/activities
- estimated_cost: Cost range based on budget
- best_time_to_visit: Best time to visit

Always respond with valid JSON array format.`

// Recommender generates travel recommendations for a preference set.
type Recommender interface {
	Recommend(ctx context.Context, req models.RecommendationRequest) ([]models.TravelRecommendation, error)
}

// Config for the chat-completion client. BaseURL is optional and allows
// pointing at any OpenAI-compatible serving endpoint.
type Config struct {
	APIKey  string
	BaseURL string
	Model   string
}

type service struct {
	client *openai.Client
	model  string
}

func New(cfg Config) Recommender {
	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = cfg.BaseURL
	}
	model := cfg.Model
	if model == "" {
		model = openai.GPT4oMini
	}
	return &service{
		client: openai.NewClientWithConfig(clientConfig),
		model:  model,
	}
}

func (s *service) Recommend(ctx context.Context, req models.RecommendationRequest) ([]models.TravelRecommendation, error) {
	duration := req.Duration
	if duration == "" {
		duration = "7 days"
	}

	prompt := fmt.Sprintf(`Please provide 3 personalized travel recommendations based on these preferences:

Budget: %s
Starting Location: %s
Group Size: %d people
Travel Preference: %s
Duration: %s

Focus on destinations that match the travel preference (%s) and are suitable for the budget level (%s).
Consider the group size and starting location for practical travel planning.

Respond only with a JSON array of 3 recommendations, no additional text.`,
		req.Budget, req.StartingLocation, req.GroupSize, req.TravelPreference, duration,
		req.TravelPreference, req.Budget)

	resp, err := s.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: s.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("chat completion: empty response")
	}

	return parseRecommendations(resp.Choices[0].Message.Content), nil
}

// parseRecommendations decodes the model reply, tolerating markdown fences.
// A reply that is not a JSON array degrades to the fixed fallback list; the
// request still succeeds.
func parseRecommendations(content string) []models.TravelRecommendation {
	content = stripFences(content)

	var recs []models.TravelRecommendation
	if err := json.Unmarshal([]byte(content), &recs); err != nil || len(recs) == 0 {
		log.Printf("[llm] unparseable recommendation reply, using fallback: %v", err)
		return fallbackRecommendations()
	}

	for i := range recs {
		if recs[i].ImageURL == "" {
			recs[i].ImageURL = placeholderImageURL
		}
	}
	return recs
}

func stripFences(content string) string {
	content = strings.TrimSpace(content)
	if strings.HasPrefix(content, "```") {
		content = strings.TrimPrefix(content, "```json")
		content = strings.TrimPrefix(content, "```")
		content = strings.TrimSuffix(strings.TrimSpace(content), "```")
	}
	return strings.TrimSpace(content)
}

func fallbackRecommendations() []models.TravelRecommendation {
	return []models.TravelRecommendation{
		{
			DestinationName: "Bali, Indonesia",
			Description:     "A tropical paradise perfect for relaxation and adventure.",
			ImageURL:        "https://res.cloudinary.com/dqixczuzs/image/upload/v1/placeholder/bali.jpg",
			Highlights:      []string{"Beautiful beaches", "Ancient temples", "Rice terraces", "Volcano hiking"},
			EstimatedCost:   "$800-1200 per person",
			BestTimeToVisit: "April to October",
		},
		{
			DestinationName: "Santorini, Greece",
			Description:     "Stunning Greek island with iconic white buildings and blue domes.",
			ImageURL:        "https://res.cloudinary.com/dqixczuzs/image/upload/v1/placeholder/santorini.jpg",
			Highlights:      []string{"Sunset views", "Wine tasting", "Ancient ruins", "Beach clubs"},
			EstimatedCost:   "$1000-1500 per person",
			BestTimeToVisit: "May to October",
		},
		{
			DestinationName: "Kyoto, Japan",
			Description:     "Ancient capital with traditional temples and beautiful gardens.",
			ImageURL:        "https://res.cloudinary.com/dqixczuzs/image/upload/v1/placeholder/kyoto.jpg",
			Highlights:      []string{"Traditional temples", "Cherry blossoms", "Tea ceremonies", "Historic districts"},
			EstimatedCost:   "$900-1300 per person",
			BestTimeToVisit: "March to May, September to November",
		},
	}
}
