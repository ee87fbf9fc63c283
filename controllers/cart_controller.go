package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/anilkoundinya7/E-Commerce/middleware"
	apperrors "github.com/anilkoundinya7/E-Commerce/pkg/errors"
	"github.com/anilkoundinya7/E-Commerce/services"
)

type CartController struct {
	svc *services.CartService
}

func NewCartController(svc *services.CartService) *CartController {
	return &CartController{svc: svc}
}

type addItemRequest struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

// AddItem adds a product to the caller's cart, accumulating quantity when
// the product is already there.
func (cc *CartController) AddItem(c *gin.Context) {
	identity, ok := middleware.GetIdentity(c)
	if !ok {
		apperrors.Respond(c, apperrors.ErrUnauthorized)
		return
	}

	var req addItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.Respond(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "Valid product ID and quantity are required"))
		return
	}

	productID, err := primitive.ObjectIDFromHex(req.ProductID)
	if err != nil {
		apperrors.Respond(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "Valid product ID and quantity are required"))
		return
	}

	if err := cc.svc.AddItem(c.Request.Context(), identity.UserID, productID, req.Quantity); err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Product added to cart successfully"})
}

// GetCart returns the caller's cart lines joined with live product data.
func (cc *CartController) GetCart(c *gin.Context) {
	identity, ok := middleware.GetIdentity(c)
	if !ok {
		apperrors.Respond(c, apperrors.ErrUnauthorized)
		return
	}

	lines, err := cc.svc.GetCart(c.Request.Context(), identity.UserID)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, lines)
}

// RemoveItem removes one product's line from the caller's cart.
func (cc *CartController) RemoveItem(c *gin.Context) {
	identity, ok := middleware.GetIdentity(c)
	if !ok {
		apperrors.Respond(c, apperrors.ErrUnauthorized)
		return
	}

	productID, err := primitive.ObjectIDFromHex(c.Param("productId"))
	if err != nil {
		apperrors.Respond(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid product ID."))
		return
	}

	if err := cc.svc.RemoveItem(c.Request.Context(), identity.UserID, productID); err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Product removed from cart."})
}
