package store

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"manzafir/database"
	"manzafir/models"
)

// Sessions is the session store: opaque tokens with expiry, one document per
// login. Consulted on every authenticated request.
type Sessions struct {
	coll *mongo.Collection
}

func NewSessions(db *database.DB) *Sessions {
	return &Sessions{coll: db.Collection("user_sessions")}
}

func (s *Sessions) Create(ctx context.Context, session models.UserSession) error {
	_, err := s.coll.InsertOne(ctx, session)
	return err
}

// Resolve returns the user id for a live session token, or "" when the token
// is unknown or expired. It satisfies middleware.SessionResolver.
func (s *Sessions) Resolve(ctx context.Context, token string) (string, error) {
	var session models.UserSession
	err := s.coll.FindOne(ctx, bson.M{
		"session_token": token,
		"expires_at":    bson.M{"$gt": time.Now().UTC()},
	}).Decode(&session)
	if err == mongo.ErrNoDocuments {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return session.UserID, nil
}

func (s *Sessions) DeleteByToken(ctx context.Context, token string) error {
	_, err := s.coll.DeleteOne(ctx, bson.M{"session_token": token})
	return err
}
