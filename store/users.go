package store

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"manzafir/database"
	"manzafir/models"
)

type Users struct {
	coll *mongo.Collection
}

func NewUsers(db *database.DB) *Users {
	return &Users{coll: db.Collection("users")}
}

func (s *Users) Insert(ctx context.Context, user models.User) error {
	_, err := s.coll.InsertOne(ctx, user)
	return err
}

// FindByEmail returns (nil, nil) when no user exists for the address.
func (s *Users) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := s.coll.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *Users) FindByID(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	err := s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&user)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// DisplayInfo resolves the name/picture pair used to enrich match results.
// It satisfies matching.UserDirectory.
func (s *Users) DisplayInfo(ctx context.Context, userID string) (models.DisplayInfo, error) {
	user, err := s.FindByID(ctx, userID)
	if err != nil {
		return models.DisplayInfo{}, err
	}
	if user == nil {
		return models.DisplayInfo{}, mongo.ErrNoDocuments
	}
	return models.DisplayInfo{Name: user.Name, Picture: user.Picture}, nil
}
