package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Product is a catalog document. Stock is adjusted by the order workflow;
// every other field is owned by catalog management.
type Product struct {
	ID          primitive.ObjectID `json:"_id,omitempty" bson:"_id,omitempty"`
	Name        string             `json:"name" bson:"name"`
	Price       float64            `json:"price" bson:"price"`
	Description string             `json:"description,omitempty" bson:"description,omitempty"`
	Category    string             `json:"category" bson:"category"`
	Stock       int                `json:"stock" bson:"stock"`
	ImageURL    string             `json:"image_url,omitempty" bson:"imageUrl,omitempty"`
	CreatedAt   time.Time          `json:"created_at,omitempty" bson:"createdAt,omitempty"`
}
