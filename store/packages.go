package store

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"manzafir/database"
	"manzafir/models"
)

type Packages struct {
	coll *mongo.Collection
}

func NewPackages(db *database.DB) *Packages {
	return &Packages{coll: db.Collection("travel_packages")}
}

func (s *Packages) List(ctx context.Context) ([]models.TravelPackage, error) {
	cursor, err := s.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var packages []models.TravelPackage
	if err := cursor.All(ctx, &packages); err != nil {
		return nil, err
	}
	return packages, nil
}

func (s *Packages) Insert(ctx context.Context, pkg models.TravelPackage) error {
	_, err := s.coll.InsertOne(ctx, pkg)
	return err
}

func (s *Packages) Count(ctx context.Context) (int64, error) {
	return s.coll.CountDocuments(ctx, bson.M{})
}
