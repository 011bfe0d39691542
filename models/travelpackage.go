package models

import "time"

type TravelPackage struct {
	ID           string    `bson:"_id" json:"id"`
	Name         string    `bson:"name" json:"name"`
	Description  string    `bson:"description" json:"description"`
	Destinations []string  `bson:"destinations" json:"destinations"`
	Price        float64   `bson:"price" json:"price"`
	Duration     string    `bson:"duration" json:"duration"`
	Images       []string  `bson:"images" json:"images"`
	Highlights   []string  `bson:"highlights" json:"highlights"`
	Category     string    `bson:"category" json:"category"` // beaches, mountains, historical, ...
	CreatedAt    time.Time `bson:"created_at" json:"created_at"`
}
