package store

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"manzafir/database"
	"manzafir/models"
)

// Matches is the append-only match ledger. Records are never updated or
// deleted, and there is no uniqueness constraint on the pair: concurrent or
// repeated actions both land, readers tolerate duplicates.
type Matches struct {
	coll *mongo.Collection
}

func NewMatches(db *database.DB) *Matches {
	return &Matches{coll: db.Collection("travel_matches")}
}

func (s *Matches) Append(ctx context.Context, record models.TravelMatch) (string, error) {
	if _, err := s.coll.InsertOne(ctx, record); err != nil {
		return "", err
	}
	return record.ID, nil
}

// Find is the point lookup used for mutuality detection. Returns (nil, nil)
// when no record matches.
func (s *Matches) Find(ctx context.Context, user1ID, user2ID, status string) (*models.TravelMatch, error) {
	var record models.TravelMatch
	err := s.coll.FindOne(ctx, bson.M{
		"user1_id":     user1ID,
		"user2_id":     user2ID,
		"match_status": status,
	}).Decode(&record)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// CounterpartIDs returns every user the given user already has a ledger
// record with, on either side of the pair.
func (s *Matches) CounterpartIDs(ctx context.Context, userID string) ([]string, error) {
	cursor, err := s.coll.Find(ctx, bson.M{
		"$or": []bson.M{
			{"user1_id": userID},
			{"user2_id": userID},
		},
	})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var records []models.TravelMatch
	if err := cursor.All(ctx, &records); err != nil {
		return nil, err
	}

	seen := make(map[string]struct{}, len(records))
	ids := make([]string, 0, len(records))
	for _, record := range records {
		other := record.User2ID
		if record.User1ID != userID {
			other = record.User1ID
		}
		if _, ok := seen[other]; ok {
			continue
		}
		seen[other] = struct{}{}
		ids = append(ids, other)
	}
	return ids, nil
}
