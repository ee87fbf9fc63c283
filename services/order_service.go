package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/anilkoundinya7/E-Commerce/database"
	"github.com/anilkoundinya7/E-Commerce/models"
	apperrors "github.com/anilkoundinya7/E-Commerce/pkg/errors"
	"github.com/anilkoundinya7/E-Commerce/repository"
)

// EventPublisher publishes order lifecycle events. Publishing is best-effort;
// a failure is logged and never fails the request.
type EventPublisher interface {
	PublishOrderEvent(ctx context.Context, event models.OrderEvent) error
}

// OrderService is the cart-to-order workflow: it freezes a cart into an
// immutable order snapshot, reserves stock at placement, and releases it on
// cancellation. Both multi-document transitions run inside a transaction.
type OrderService struct {
	orders   repository.OrderRepository
	carts    repository.CartRepository
	products repository.ProductRepository
	tx       database.TxRunner
	locks    *UserLocks
	producer EventPublisher
	cache    *CacheManager
	log      *zap.Logger
}

func NewOrderService(
	orders repository.OrderRepository,
	carts repository.CartRepository,
	products repository.ProductRepository,
	tx database.TxRunner,
	locks *UserLocks,
	producer EventPublisher,
	cache *CacheManager,
	log *zap.Logger,
) *OrderService {
	return &OrderService{
		orders:   orders,
		carts:    carts,
		products: products,
		tx:       tx,
		locks:    locks,
		producer: producer,
		cache:    cache,
		log:      log,
	}
}

// PlaceOrder turns the user's cart into an order. Line items snapshot the
// product's current name and price; the order total never changes after
// this point. Stock is decremented per line with an availability guard, the
// order is inserted, and the cart document is deleted, all in one
// transaction. A missing product aborts the whole placement.
func (s *OrderService) PlaceOrder(ctx context.Context, userID primitive.ObjectID) (*models.Order, error) {
	unlock := s.locks.Lock(userID)
	defer unlock()

	cart, err := s.carts.Find(ctx, userID)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrStoreUnavailable, err)
	}
	if cart == nil || len(cart.Items) == 0 {
		return nil, apperrors.ErrEmptyCart
	}

	items := make([]models.OrderLineItem, 0, len(cart.Items))
	var total float64
	for _, item := range cart.Items {
		product, err := s.products.FindByID(ctx, item.ProductID)
		if err != nil {
			return nil, apperrors.Wrap(apperrors.ErrStoreUnavailable, err)
		}
		if product == nil {
			return nil, apperrors.ErrProductNotFound
		}
		line := models.OrderLineItem{
			ProductID: item.ProductID,
			Name:      product.Name,
			Price:     product.Price,
			Quantity:  item.Quantity,
			Total:     product.Price * float64(item.Quantity),
		}
		items = append(items, line)
		total += line.Total
	}

	order := &models.Order{
		OrderNumber: newOrderNumber(),
		UserID:      userID,
		Items:       items,
		TotalAmount: total,
		Status:      models.OrderStatusPlaced,
		CreatedAt:   time.Now().UTC(),
	}

	err = s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		for _, line := range items {
			ok, err := s.products.DecrementStock(ctx, line.ProductID, line.Quantity)
			if err != nil {
				return err
			}
			if !ok {
				return apperrors.WithMessage(apperrors.ErrInsufficientStock,
					fmt.Sprintf("Insufficient stock for %s", line.Name))
			}
		}

		id, err := s.orders.Insert(ctx, order)
		if err != nil {
			return err
		}
		order.ID = id

		return s.carts.Delete(ctx, userID)
	})
	if err != nil {
		return nil, asAppError(err)
	}

	s.publish(ctx, "order.placed", order)
	s.invalidateCatalog(ctx, items)
	return order, nil
}

// ListOrders returns the user's orders, newest first.
func (s *OrderService) ListOrders(ctx context.Context, userID primitive.ObjectID) ([]models.Order, error) {
	orders, err := s.orders.FindByUserID(ctx, userID)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrStoreUnavailable, err)
	}
	return orders, nil
}

// GetOrder returns one order scoped to the requesting user. An order owned
// by someone else is indistinguishable from an absent one.
func (s *OrderService) GetOrder(ctx context.Context, userID, orderID primitive.ObjectID) (*models.Order, error) {
	order, err := s.orders.FindByIDAndUserID(ctx, orderID, userID)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrStoreUnavailable, err)
	}
	if order == nil {
		return nil, apperrors.WithMessage(apperrors.ErrNotFound, "Order not found")
	}
	return order, nil
}

// CancelOrder restores each line's quantity to the product's stock and
// removes the order record, atomically. Canceling an already-canceled order
// fails with NotFound because the record is gone.
func (s *OrderService) CancelOrder(ctx context.Context, userID, orderID primitive.ObjectID) (*models.Order, error) {
	unlock := s.locks.Lock(userID)
	defer unlock()

	order, err := s.orders.FindByIDAndUserID(ctx, orderID, userID)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrStoreUnavailable, err)
	}
	if order == nil {
		return nil, apperrors.WithMessage(apperrors.ErrNotFound, "Order not found")
	}

	err = s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		for _, line := range order.Items {
			matched, err := s.products.AdjustStock(ctx, line.ProductID, line.Quantity)
			if err != nil {
				return err
			}
			// The product may have been deleted since placement; the
			// cancellation still proceeds for the remaining lines.
			if !matched {
				s.log.Warn("stock restore skipped, product missing",
					zap.String("product_id", line.ProductID.Hex()),
					zap.Int("quantity", line.Quantity))
			}
		}

		deleted, err := s.orders.Delete(ctx, orderID)
		if err != nil {
			return err
		}
		if deleted == 0 {
			return apperrors.WithMessage(apperrors.ErrNotFound, "Order not found")
		}
		return nil
	})
	if err != nil {
		return nil, asAppError(err)
	}

	s.publish(ctx, "order.canceled", order)
	s.invalidateCatalog(ctx, order.Items)
	return order, nil
}

func (s *OrderService) publish(ctx context.Context, event string, order *models.Order) {
	if s.producer == nil {
		return
	}
	evt := models.OrderEvent{
		Event:       event,
		OrderID:     order.ID.Hex(),
		OrderNumber: order.OrderNumber,
		UserID:      order.UserID.Hex(),
		TotalAmount: order.TotalAmount,
		Timestamp:   time.Now().UTC(),
	}
	if err := s.producer.PublishOrderEvent(ctx, evt); err != nil {
		s.log.Warn("order event publish failed",
			zap.String("event", event),
			zap.String("order_id", evt.OrderID),
			zap.Error(err))
	}
}

// Stock changed, so cached product reads are stale.
func (s *OrderService) invalidateCatalog(ctx context.Context, items []models.OrderLineItem) {
	for _, line := range items {
		s.cache.InvalidateProduct(ctx, line.ProductID.Hex())
	}
	s.cache.InvalidateLists(ctx)
}

func asAppError(err error) error {
	var appErr *apperrors.Error
	if errors.As(err, &appErr) {
		return appErr
	}
	return apperrors.Wrap(apperrors.ErrStoreUnavailable, err)
}

func newOrderNumber() string {
	return "ORD-" + uuid.NewString()
}
