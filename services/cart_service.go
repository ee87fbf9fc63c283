package services

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/anilkoundinya7/E-Commerce/models"
	apperrors "github.com/anilkoundinya7/E-Commerce/pkg/errors"
	"github.com/anilkoundinya7/E-Commerce/repository"
)

// CartService manages per-user carts. Writes for one user are serialized
// through UserLocks on top of the repository's atomic update operators.
type CartService struct {
	carts repository.CartRepository
	locks *UserLocks
}

func NewCartService(carts repository.CartRepository, locks *UserLocks) *CartService {
	return &CartService{carts: carts, locks: locks}
}

// AddItem upserts a line into the user's cart. An existing line for the
// product accumulates quantity; otherwise a new line is appended, creating
// the cart document if this is the user's first add.
func (s *CartService) AddItem(ctx context.Context, userID, productID primitive.ObjectID, quantity int) error {
	if productID.IsZero() || quantity <= 0 {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "Valid product ID and quantity are required")
	}

	unlock := s.locks.Lock(userID)
	defer unlock()

	matched, err := s.carts.IncrementItem(ctx, userID, productID, quantity)
	if err != nil {
		return apperrors.Wrap(apperrors.ErrStoreUnavailable, err)
	}
	if matched {
		return nil
	}

	if err := s.carts.PushItem(ctx, userID, productID, quantity); err != nil {
		return apperrors.Wrap(apperrors.ErrStoreUnavailable, err)
	}
	return nil
}

// GetCart returns the cart joined with live product records. Totals reflect
// current catalog prices, not the frozen prices a later order will carry.
// A user without a cart gets an empty sequence, not an error.
func (s *CartService) GetCart(ctx context.Context, userID primitive.ObjectID) ([]models.CartLine, error) {
	lines, err := s.carts.Lines(ctx, userID)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrStoreUnavailable, err)
	}
	return lines, nil
}

// RemoveItem pulls one product's line from the cart.
func (s *CartService) RemoveItem(ctx context.Context, userID, productID primitive.ObjectID) error {
	unlock := s.locks.Lock(userID)
	defer unlock()

	matched, removed, err := s.carts.RemoveItem(ctx, userID, productID)
	if err != nil {
		return apperrors.Wrap(apperrors.ErrStoreUnavailable, err)
	}
	if !matched {
		return apperrors.WithMessage(apperrors.ErrNotFound, "Cart not found for this user")
	}
	if !removed {
		return apperrors.WithMessage(apperrors.ErrNotFound, "Product not found in cart")
	}
	return nil
}
