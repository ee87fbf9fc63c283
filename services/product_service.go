package services

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/anilkoundinya7/E-Commerce/models"
	apperrors "github.com/anilkoundinya7/E-Commerce/pkg/errors"
	"github.com/anilkoundinya7/E-Commerce/repository"
)

// ProductService handles catalog management. Reads go through the Redis
// cache when one is configured; every write invalidates it.
type ProductService struct {
	products repository.ProductRepository
	cache    *CacheManager
}

func NewProductService(products repository.ProductRepository, cache *CacheManager) *ProductService {
	return &ProductService{products: products, cache: cache}
}

// ProductInput carries the fields accepted on product creation.
type ProductInput struct {
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
	Stock       int     `json:"stock"`
	ImageURL    string  `json:"image_url"`
}

// Create inserts a new catalog product. Name and a non-negative price are
// required; category defaults to "General".
func (s *ProductService) Create(ctx context.Context, in ProductInput) (primitive.ObjectID, error) {
	if in.Name == "" || in.Price < 0 {
		return primitive.NilObjectID, apperrors.WithMessage(apperrors.ErrInvalidInput, "Name and price are required")
	}
	if in.Stock < 0 {
		return primitive.NilObjectID, apperrors.WithMessage(apperrors.ErrInvalidInput, "Stock cannot be negative")
	}
	if in.Category == "" {
		in.Category = "General"
	}

	id, err := s.products.Insert(ctx, &models.Product{
		Name:        in.Name,
		Price:       in.Price,
		Description: in.Description,
		Category:    in.Category,
		Stock:       in.Stock,
		ImageURL:    in.ImageURL,
		CreatedAt:   time.Now().UTC(),
	})
	if err != nil {
		return primitive.NilObjectID, apperrors.Wrap(apperrors.ErrStoreUnavailable, err)
	}

	s.cache.InvalidateLists(ctx)
	return id, nil
}

// List returns all catalog products.
func (s *ProductService) List(ctx context.Context) ([]models.Product, error) {
	if products, ok := s.cache.GetProductList(ctx); ok {
		return products, nil
	}

	products, err := s.products.FindAll(ctx)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrStoreUnavailable, err)
	}

	s.cache.SetProductListAsync(products)
	return products, nil
}

// Get returns one product by id.
func (s *ProductService) Get(ctx context.Context, id primitive.ObjectID) (*models.Product, error) {
	if product, ok := s.cache.GetProduct(ctx, id.Hex()); ok {
		return product, nil
	}

	product, err := s.products.FindByID(ctx, id)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrStoreUnavailable, err)
	}
	if product == nil {
		return nil, apperrors.WithMessage(apperrors.ErrNotFound, "Product not found")
	}

	s.cache.SetProductAsync(id.Hex(), product)
	return product, nil
}

// ProductUpdate carries mutable catalog fields; nil means unchanged.
type ProductUpdate struct {
	Name        *string  `json:"name"`
	Price       *float64 `json:"price"`
	Description *string  `json:"description"`
	Category    *string  `json:"category"`
	Stock       *int     `json:"stock"`
	ImageURL    *string  `json:"image_url"`
}

// Update applies the provided fields to a product.
func (s *ProductService) Update(ctx context.Context, id primitive.ObjectID, upd ProductUpdate) error {
	updates := bson.M{}
	if upd.Name != nil {
		updates["name"] = *upd.Name
	}
	if upd.Price != nil {
		if *upd.Price < 0 {
			return apperrors.WithMessage(apperrors.ErrInvalidInput, "Price cannot be negative")
		}
		updates["price"] = *upd.Price
	}
	if upd.Description != nil {
		updates["description"] = *upd.Description
	}
	if upd.Category != nil {
		updates["category"] = *upd.Category
	}
	if upd.Stock != nil {
		if *upd.Stock < 0 {
			return apperrors.WithMessage(apperrors.ErrInvalidInput, "Stock cannot be negative")
		}
		updates["stock"] = *upd.Stock
	}
	if upd.ImageURL != nil {
		updates["imageUrl"] = *upd.ImageURL
	}
	if len(updates) == 0 {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "No fields to update")
	}

	matched, err := s.products.Update(ctx, id, updates)
	if err != nil {
		return apperrors.Wrap(apperrors.ErrStoreUnavailable, err)
	}
	if matched == 0 {
		return apperrors.WithMessage(apperrors.ErrNotFound, "Product not found")
	}

	s.cache.InvalidateProduct(ctx, id.Hex())
	s.cache.InvalidateLists(ctx)
	return nil
}

// Delete removes a product from the catalog.
func (s *ProductService) Delete(ctx context.Context, id primitive.ObjectID) error {
	deleted, err := s.products.Delete(ctx, id)
	if err != nil {
		return apperrors.Wrap(apperrors.ErrStoreUnavailable, err)
	}
	if deleted == 0 {
		return apperrors.WithMessage(apperrors.ErrNotFound, "Product not found or already deleted")
	}

	s.cache.InvalidateProduct(ctx, id.Hex())
	s.cache.InvalidateLists(ctx)
	return nil
}

// SetImage records the stored image location on the product.
func (s *ProductService) SetImage(ctx context.Context, id primitive.ObjectID, imageURL string) error {
	url := imageURL
	return s.Update(ctx, id, ProductUpdate{ImageURL: &url})
}
