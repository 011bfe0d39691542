package models

import "time"

// Match status vocabulary. Records are written with the raw action string
// ("like"/"pass"); MatchStatusMatched is reserved and never assigned — a
// mutual match is the existence of two reversed "like" records, not a status.
const (
	MatchStatusPending = "pending"
	MatchStatusLiked   = "liked"
	MatchStatusPassed  = "passed"
	MatchStatusMatched = "matched"

	ActionLike = "like"
	ActionPass = "pass"
)

// TravelMatch is one append-only ledger entry. user1_id is the actor.
// Entries are immutable facts; repeated actions between the same pair
// accumulate multiple records.
type TravelMatch struct {
	ID                 string    `bson:"_id" json:"id"`
	User1ID            string    `bson:"user1_id" json:"user1_id"`
	User2ID            string    `bson:"user2_id" json:"user2_id"`
	CompatibilityScore int       `bson:"compatibility_score" json:"compatibility_score"`
	MatchStatus        string    `bson:"match_status" json:"match_status"`
	CreatedAt          time.Time `bson:"created_at" json:"created_at"`
}
