package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/anilkoundinya7/E-Commerce/models"
	apperrors "github.com/anilkoundinya7/E-Commerce/pkg/errors"
	"github.com/anilkoundinya7/E-Commerce/services"
)

type orderFixture struct {
	products *mockProductRepo
	carts    *mockCartRepo
	orders   *mockOrderRepo
	producer *captureProducer
	svc      *services.OrderService
	cartSvc  *services.CartService
}

func newOrderFixture() *orderFixture {
	products := newMockProductRepo()
	carts := newMockCartRepo(products)
	orders := newMockOrderRepo()
	producer := &captureProducer{}
	locks := services.NewUserLocks()
	svc := services.NewOrderService(orders, carts, products, passthroughTx{}, locks, producer, nil, zap.NewNop())
	cartSvc := services.NewCartService(carts, locks)
	return &orderFixture{
		products: products,
		carts:    carts,
		orders:   orders,
		producer: producer,
		svc:      svc,
		cartSvc:  cartSvc,
	}
}

func TestPlaceOrder_SnapshotsCartAndDeletesIt(t *testing.T) {
	f := newOrderFixture()
	ctx := context.Background()
	userID := primitive.NewObjectID()

	productA := f.products.add("Widget", 10.0, 5)
	productB := f.products.add("Gadget", 5.0, 3)
	require.NoError(t, f.cartSvc.AddItem(ctx, userID, productA, 2))
	require.NoError(t, f.cartSvc.AddItem(ctx, userID, productB, 1))

	order, err := f.svc.PlaceOrder(ctx, userID)
	require.NoError(t, err)

	assert.Equal(t, 25.0, order.TotalAmount)
	assert.Equal(t, models.OrderStatusPlaced, order.Status)
	assert.Len(t, order.Items, 2)
	assert.NotEmpty(t, order.OrderNumber)

	// Cart document is gone, not just emptied.
	cart, err := f.carts.Find(ctx, userID)
	require.NoError(t, err)
	assert.Nil(t, cart)

	// Stock was reserved at placement.
	assert.Equal(t, 3, f.products.stock(productA))
	assert.Equal(t, 2, f.products.stock(productB))

	events := f.producer.published()
	require.Len(t, events, 1)
	assert.Equal(t, "order.placed", events[0].Event)
}

func TestPlaceOrder_TotalIgnoresLaterPriceChanges(t *testing.T) {
	f := newOrderFixture()
	ctx := context.Background()
	userID := primitive.NewObjectID()

	productA := f.products.add("Widget", 10.0, 10)
	require.NoError(t, f.cartSvc.AddItem(ctx, userID, productA, 2))

	order, err := f.svc.PlaceOrder(ctx, userID)
	require.NoError(t, err)
	require.Equal(t, 20.0, order.TotalAmount)

	// Catalog price changes must not affect the placed snapshot.
	_, err = f.products.Update(ctx, productA, bson.M{"price": 99.0})
	require.NoError(t, err)

	got, err := f.svc.GetOrder(ctx, userID, order.ID)
	require.NoError(t, err)
	assert.Equal(t, 20.0, got.TotalAmount)
	assert.Equal(t, 10.0, got.Items[0].Price)
}

func TestPlaceOrder_EmptyOrAbsentCart(t *testing.T) {
	f := newOrderFixture()
	ctx := context.Background()
	userID := primitive.NewObjectID()

	_, err := f.svc.PlaceOrder(ctx, userID)
	assert.True(t, apperrors.Is(err, apperrors.ErrEmptyCart))

	orders, err := f.svc.ListOrders(ctx, userID)
	require.NoError(t, err)
	assert.Empty(t, orders)
}

func TestPlaceOrder_MissingProductAbortsWholePlacement(t *testing.T) {
	f := newOrderFixture()
	ctx := context.Background()
	userID := primitive.NewObjectID()

	productA := f.products.add("Widget", 10.0, 5)
	ghost := primitive.NewObjectID()
	require.NoError(t, f.cartSvc.AddItem(ctx, userID, productA, 1))
	require.NoError(t, f.cartSvc.AddItem(ctx, userID, ghost, 1))

	_, err := f.svc.PlaceOrder(ctx, userID)
	assert.True(t, apperrors.Is(err, apperrors.ErrProductNotFound))

	// No partial orders, stock untouched, cart kept.
	orders, _ := f.svc.ListOrders(ctx, userID)
	assert.Empty(t, orders)
	assert.Equal(t, 5, f.products.stock(productA))
	cart, _ := f.carts.Find(ctx, userID)
	assert.NotNil(t, cart)
}

func TestPlaceOrder_InsufficientStock(t *testing.T) {
	f := newOrderFixture()
	ctx := context.Background()
	userID := primitive.NewObjectID()

	productA := f.products.add("Widget", 10.0, 1)
	require.NoError(t, f.cartSvc.AddItem(ctx, userID, productA, 2))

	_, err := f.svc.PlaceOrder(ctx, userID)
	assert.True(t, apperrors.Is(err, apperrors.ErrInsufficientStock))

	var appErr *apperrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 400, appErr.Code)

	orders, _ := f.svc.ListOrders(ctx, userID)
	assert.Empty(t, orders)
}

func TestCancelOrder_RestoresStockAndRemovesOrder(t *testing.T) {
	f := newOrderFixture()
	ctx := context.Background()
	userID := primitive.NewObjectID()

	productA := f.products.add("Widget", 10.0, 5)
	productB := f.products.add("Gadget", 5.0, 3)
	require.NoError(t, f.cartSvc.AddItem(ctx, userID, productA, 2))
	require.NoError(t, f.cartSvc.AddItem(ctx, userID, productB, 1))

	order, err := f.svc.PlaceOrder(ctx, userID)
	require.NoError(t, err)
	require.Equal(t, 3, f.products.stock(productA))
	require.Equal(t, 2, f.products.stock(productB))

	canceled, err := f.svc.CancelOrder(ctx, userID, order.ID)
	require.NoError(t, err)
	assert.Equal(t, order.ID, canceled.ID)

	// Each line's quantity is back on the shelf.
	assert.Equal(t, 5, f.products.stock(productA))
	assert.Equal(t, 3, f.products.stock(productB))

	// The order is gone.
	_, err = f.svc.GetOrder(ctx, userID, order.ID)
	assert.True(t, apperrors.Is(err, apperrors.ErrNotFound))

	// A second cancellation finds nothing.
	_, err = f.svc.CancelOrder(ctx, userID, order.ID)
	assert.True(t, apperrors.Is(err, apperrors.ErrNotFound))

	events := f.producer.published()
	require.Len(t, events, 2)
	assert.Equal(t, "order.canceled", events[1].Event)
}

func TestCancelOrder_MissingProductDoesNotBlockCancellation(t *testing.T) {
	products := newMockProductRepo()
	carts := newMockCartRepo(products)
	orders := newMockOrderRepo()
	locks := services.NewUserLocks()
	core, logs := observer.New(zap.WarnLevel)
	svc := services.NewOrderService(orders, carts, products, passthroughTx{}, locks, &captureProducer{}, nil, zap.New(core))
	cartSvc := services.NewCartService(carts, locks)
	ctx := context.Background()
	userID := primitive.NewObjectID()

	productA := products.add("Widget", 10.0, 5)
	productB := products.add("Gadget", 5.0, 3)
	require.NoError(t, cartSvc.AddItem(ctx, userID, productA, 2))
	require.NoError(t, cartSvc.AddItem(ctx, userID, productB, 1))

	order, err := svc.PlaceOrder(ctx, userID)
	require.NoError(t, err)

	// Product B leaves the catalog between placement and cancellation.
	deleted, err := products.Delete(ctx, productB)
	require.NoError(t, err)
	require.EqualValues(t, 1, deleted)

	_, err = svc.CancelOrder(ctx, userID, order.ID)
	require.NoError(t, err)

	// The surviving line gets its stock back and the order is gone.
	assert.Equal(t, 5, products.stock(productA))
	_, err = svc.GetOrder(ctx, userID, order.ID)
	assert.True(t, apperrors.Is(err, apperrors.ErrNotFound))

	entries := logs.FilterMessage("stock restore skipped, product missing").All()
	require.Len(t, entries, 1)
	assert.Equal(t, productB.Hex(), entries[0].ContextMap()["product_id"])
}

func TestGetOrder_ScopedToOwner(t *testing.T) {
	f := newOrderFixture()
	ctx := context.Background()
	owner := primitive.NewObjectID()
	other := primitive.NewObjectID()

	productA := f.products.add("Widget", 10.0, 5)
	require.NoError(t, f.cartSvc.AddItem(ctx, owner, productA, 1))
	order, err := f.svc.PlaceOrder(ctx, owner)
	require.NoError(t, err)

	// Another user cannot see or cancel it.
	_, err = f.svc.GetOrder(ctx, other, order.ID)
	assert.True(t, apperrors.Is(err, apperrors.ErrNotFound))
	_, err = f.svc.CancelOrder(ctx, other, order.ID)
	assert.True(t, apperrors.Is(err, apperrors.ErrNotFound))

	// The owner still can.
	got, err := f.svc.GetOrder(ctx, owner, order.ID)
	require.NoError(t, err)
	assert.Equal(t, order.ID, got.ID)
}

func TestListOrders_NewestFirst(t *testing.T) {
	f := newOrderFixture()
	ctx := context.Background()
	userID := primitive.NewObjectID()
	productA := f.products.add("Widget", 10.0, 100)

	var placed []primitive.ObjectID
	for i := 0; i < 3; i++ {
		require.NoError(t, f.cartSvc.AddItem(ctx, userID, productA, 1))
		order, err := f.svc.PlaceOrder(ctx, userID)
		require.NoError(t, err)
		placed = append(placed, order.ID)
		time.Sleep(time.Millisecond)
	}

	orders, err := f.svc.ListOrders(ctx, userID)
	require.NoError(t, err)
	require.Len(t, orders, 3)
	for i := 1; i < len(orders); i++ {
		assert.False(t, orders[i-1].CreatedAt.Before(orders[i].CreatedAt))
	}
	assert.Equal(t, placed[2], orders[0].ID)
}
