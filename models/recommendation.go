package models

type RecommendationRequest struct {
	Budget           string `json:"budget" binding:"required,oneof=low medium high"`
	StartingLocation string `json:"starting_location" binding:"required"`
	GroupSize        int    `json:"group_size" binding:"required,min=1"`
	TravelPreference string `json:"travel_preference" binding:"required"`
	Duration         string `json:"duration"`
}

type TravelRecommendation struct {
	DestinationName string   `json:"destination_name"`
	Description     string   `json:"description"`
	ImageURL        string   `json:"image_url"`
	Highlights      []string `json:"highlights"`
	EstimatedCost   string   `json:"estimated_cost"`
	BestTimeToVisit string   `json:"best_time_to_visit"`
}
