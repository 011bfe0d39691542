package models

// UserProfile holds the travel preferences used for compatibility scoring.
// One profile per user; updates replace the whole document (last write wins).
type UserProfile struct {
	UserID           string   `bson:"user_id" json:"user_id"`
	TravelStyle      string   `bson:"travel_style" json:"travel_style" binding:"required"`
	Interests        []string `bson:"interests" json:"interests" binding:"required"`
	BudgetPreference string   `bson:"budget_preference" json:"budget_preference" binding:"required,oneof=low medium high"`
	AgeRange         string   `bson:"age_range" json:"age_range" binding:"required"`
	Bio              string   `bson:"bio,omitempty" json:"bio,omitempty"`
}
