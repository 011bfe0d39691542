package store

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"manzafir/database"
	"manzafir/models"
)

type Profiles struct {
	coll *mongo.Collection
}

func NewProfiles(db *database.DB) *Profiles {
	return &Profiles{coll: db.Collection("user_profiles")}
}

// Get returns (nil, nil) when the user has not completed a profile.
func (s *Profiles) Get(ctx context.Context, userID string) (*models.UserProfile, error) {
	var profile models.UserProfile
	err := s.coll.FindOne(ctx, bson.M{"user_id": userID}).Decode(&profile)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

// Upsert replaces the whole profile document, last write wins.
func (s *Profiles) Upsert(ctx context.Context, profile models.UserProfile) error {
	_, err := s.coll.ReplaceOne(
		ctx,
		bson.M{"user_id": profile.UserID},
		profile,
		options.Replace().SetUpsert(true),
	)
	return err
}

// ListUnprocessed returns up to limit profiles whose user_id is not in
// exclude. The exclude set is the requester plus every counterpart already in
// the match ledger; the engine never sees an already-processed candidate.
func (s *Profiles) ListUnprocessed(ctx context.Context, exclude []string, limit int64) ([]models.UserProfile, error) {
	cursor, err := s.coll.Find(
		ctx,
		bson.M{"user_id": bson.M{"$nin": exclude}},
		options.Find().SetLimit(limit),
	)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var profiles []models.UserProfile
	if err := cursor.All(ctx, &profiles); err != nil {
		return nil, err
	}
	return profiles, nil
}
