package store

import (
	"context"

	"github.com/SherClockHolmes/webpush-go"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"manzafir/database"
)

// PushSubscription ties a browser push subscription to a user. One per user;
// re-subscribing replaces the previous endpoint.
type PushSubscription struct {
	UserID string               `bson:"user_id" json:"user_id"`
	Sub    webpush.Subscription `bson:"sub" json:"sub"`
}

type PushSubs struct {
	coll *mongo.Collection
}

func NewPushSubs(db *database.DB) *PushSubs {
	return &PushSubs{coll: db.Collection("push_subscriptions")}
}

func (s *PushSubs) Upsert(ctx context.Context, sub PushSubscription) error {
	_, err := s.coll.UpdateOne(
		ctx,
		bson.M{"user_id": sub.UserID},
		bson.M{"$set": sub},
		options.Update().SetUpsert(true),
	)
	return err
}

// Get returns (nil, nil) when the user has no subscription.
func (s *PushSubs) Get(ctx context.Context, userID string) (*PushSubscription, error) {
	var sub PushSubscription
	err := s.coll.FindOne(ctx, bson.M{"user_id": userID}).Decode(&sub)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &sub, nil
}

func (s *PushSubs) Delete(ctx context.Context, userID string) error {
	_, err := s.coll.DeleteOne(ctx, bson.M{"user_id": userID})
	return err
}
