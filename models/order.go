package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Order statuses. There is no shipped/delivered lifecycle; a canceled order
// is removed rather than kept around.
const (
	OrderStatusPlaced = "placed"
)

// OrderLineItem is a denormalized snapshot of a cart item taken at placement
// time. It never re-reads the product, so later price changes do not affect
// placed orders.
type OrderLineItem struct {
	ProductID primitive.ObjectID `json:"product_id" bson:"productId"`
	Name      string             `json:"name" bson:"name"`
	Price     float64            `json:"price" bson:"price"`
	Quantity  int                `json:"quantity" bson:"quantity"`
	Total     float64            `json:"total" bson:"total"`
}

// Order is an immutable snapshot of a cart's contents and prices at placement.
type Order struct {
	ID          primitive.ObjectID `json:"_id,omitempty" bson:"_id,omitempty"`
	OrderNumber string             `json:"order_number" bson:"orderNumber"`
	UserID      primitive.ObjectID `json:"user_id" bson:"userId"`
	Items       []OrderLineItem    `json:"items" bson:"items"`
	TotalAmount float64            `json:"total_amount" bson:"totalAmount"`
	Status      string             `json:"status" bson:"status"`
	CreatedAt   time.Time          `json:"created_at" bson:"createdAt"`
}

// OrderEvent is the payload published to the order events topic when an
// order is placed or canceled. Best-effort; consumers must tolerate gaps.
type OrderEvent struct {
	Event       string    `json:"event"`
	OrderID     string    `json:"order_id"`
	OrderNumber string    `json:"order_number"`
	UserID      string    `json:"user_id"`
	TotalAmount float64   `json:"total_amount"`
	Timestamp   time.Time `json:"timestamp"`
}
