package models

import "time"

type User struct {
	ID          string                 `bson:"_id" json:"id"`
	Email       string                 `bson:"email" json:"email"`
	Name        string                 `bson:"name" json:"name"`
	Picture     string                 `bson:"picture,omitempty" json:"picture,omitempty"`
	Preferences map[string]interface{} `bson:"preferences,omitempty" json:"preferences,omitempty"`
	CreatedAt   time.Time              `bson:"created_at" json:"created_at"`
}

// UserSession is one row of the session store. Tokens are opaque strings
// issued by the external identity provider; a session is live while
// expires_at is in the future.
type UserSession struct {
	ID           string    `bson:"_id" json:"id"`
	UserID       string    `bson:"user_id" json:"user_id"`
	SessionToken string    `bson:"session_token" json:"session_token"`
	ExpiresAt    time.Time `bson:"expires_at" json:"expires_at"`
	CreatedAt    time.Time `bson:"created_at" json:"created_at"`
}

// DisplayInfo is the subset of a User used to enrich match results.
type DisplayInfo struct {
	Name    string `json:"name"`
	Picture string `json:"picture"`
}
