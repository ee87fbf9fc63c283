package repository

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/anilkoundinya7/E-Commerce/models"
)

// CartRepository defines data access for per-user carts. Mutations use
// atomic update operators so a single call cannot lose a concurrent write.
type CartRepository interface {
	Find(ctx context.Context, userID primitive.ObjectID) (*models.Cart, error)
	// IncrementItem adds qty to an existing line and reports whether the
	// cart had one for this product.
	IncrementItem(ctx context.Context, userID, productID primitive.ObjectID, qty int) (bool, error)
	// PushItem appends a new line, creating the cart document if absent.
	PushItem(ctx context.Context, userID, productID primitive.ObjectID, qty int) error
	// Lines joins cart items with their live product records.
	Lines(ctx context.Context, userID primitive.ObjectID) ([]models.CartLine, error)
	// RemoveItem pulls a line; matched reports whether a cart document
	// exists, removed whether the product was among its items.
	RemoveItem(ctx context.Context, userID, productID primitive.ObjectID) (matched, removed bool, err error)
	Delete(ctx context.Context, userID primitive.ObjectID) error
}

type MongoCartRepository struct {
	collection *mongo.Collection
}

func NewMongoCartRepository(db *mongo.Database) CartRepository {
	return &MongoCartRepository{collection: db.Collection("carts")}
}

func (r *MongoCartRepository) Find(ctx context.Context, userID primitive.ObjectID) (*models.Cart, error) {
	var cart models.Cart
	err := r.collection.FindOne(ctx, bson.M{"userId": userID}).Decode(&cart)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &cart, nil
}

func (r *MongoCartRepository) IncrementItem(ctx context.Context, userID, productID primitive.ObjectID, qty int) (bool, error) {
	res, err := r.collection.UpdateOne(ctx,
		bson.M{"userId": userID, "items.productId": productID},
		bson.M{
			"$inc": bson.M{"items.$.quantity": qty},
			"$set": bson.M{"updatedAt": time.Now().UTC()},
		},
	)
	if err != nil {
		return false, err
	}
	return res.MatchedCount == 1, nil
}

func (r *MongoCartRepository) PushItem(ctx context.Context, userID, productID primitive.ObjectID, qty int) error {
	_, err := r.collection.UpdateOne(ctx,
		bson.M{"userId": userID},
		bson.M{
			"$push": bson.M{"items": models.CartItem{ProductID: productID, Quantity: qty}},
			"$set":  bson.M{"updatedAt": time.Now().UTC()},
		},
		options.Update().SetUpsert(true),
	)
	return err
}

func (r *MongoCartRepository) Lines(ctx context.Context, userID primitive.ObjectID) ([]models.CartLine, error) {
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.D{{Key: "userId", Value: userID}}}},
		bson.D{{Key: "$unwind", Value: "$items"}},
		bson.D{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: "products"},
			{Key: "localField", Value: "items.productId"},
			{Key: "foreignField", Value: "_id"},
			{Key: "as", Value: "productDetails"},
		}}},
		bson.D{{Key: "$unwind", Value: "$productDetails"}},
		bson.D{{Key: "$project", Value: bson.D{
			{Key: "_id", Value: 0},
			{Key: "productId", Value: "$items.productId"},
			{Key: "quantity", Value: "$items.quantity"},
			{Key: "name", Value: "$productDetails.name"},
			{Key: "price", Value: "$productDetails.price"},
			{Key: "total", Value: bson.D{{Key: "$multiply", Value: bson.A{
				"$items.quantity", "$productDetails.price",
			}}}},
		}}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	lines := []models.CartLine{}
	if err := cursor.All(ctx, &lines); err != nil {
		return nil, err
	}
	return lines, nil
}

func (r *MongoCartRepository) RemoveItem(ctx context.Context, userID, productID primitive.ObjectID) (bool, bool, error) {
	res, err := r.collection.UpdateOne(ctx,
		bson.M{"userId": userID},
		bson.M{"$pull": bson.M{"items": bson.M{"productId": productID}}},
	)
	if err != nil {
		return false, false, err
	}
	return res.MatchedCount == 1, res.ModifiedCount == 1, nil
}

func (r *MongoCartRepository) Delete(ctx context.Context, userID primitive.ObjectID) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"userId": userID})
	return err
}
