package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CartItem is one product/quantity pair inside a cart.
type CartItem struct {
	ProductID primitive.ObjectID `json:"product_id" bson:"productId"`
	Quantity  int                `json:"quantity" bson:"quantity"`
}

// Cart is a per-user basket document. One cart per user, created lazily on
// the first add and deleted when an order is placed from it.
type Cart struct {
	ID        primitive.ObjectID `json:"_id,omitempty" bson:"_id,omitempty"`
	UserID    primitive.ObjectID `json:"user_id" bson:"userId"`
	Items     []CartItem         `json:"items" bson:"items"`
	UpdatedAt time.Time          `json:"updated_at,omitempty" bson:"updatedAt,omitempty"`
}

// CartLine is a cart item joined with its live product record. Price and
// total reflect the catalog at read time; carts preview, orders snapshot.
type CartLine struct {
	ProductID primitive.ObjectID `json:"product_id" bson:"productId"`
	Name      string             `json:"name" bson:"name"`
	Quantity  int                `json:"quantity" bson:"quantity"`
	Price     float64            `json:"price" bson:"price"`
	Total     float64            `json:"total" bson:"total"`
}
