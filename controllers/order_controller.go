package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/anilkoundinya7/E-Commerce/middleware"
	apperrors "github.com/anilkoundinya7/E-Commerce/pkg/errors"
	"github.com/anilkoundinya7/E-Commerce/services"
)

type OrderController struct {
	svc *services.OrderService
}

func NewOrderController(svc *services.OrderService) *OrderController {
	return &OrderController{svc: svc}
}

// Place creates an order from the caller's cart and deletes the cart.
func (oc *OrderController) Place(c *gin.Context) {
	identity, ok := middleware.GetIdentity(c)
	if !ok {
		apperrors.Respond(c, apperrors.ErrUnauthorized)
		return
	}

	order, err := oc.svc.PlaceOrder(c.Request.Context(), identity.UserID)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":     "Order placed successfully",
		"orderId":     order.ID.Hex(),
		"orderNumber": order.OrderNumber,
	})
}

// List returns the caller's orders, newest first.
func (oc *OrderController) List(c *gin.Context) {
	identity, ok := middleware.GetIdentity(c)
	if !ok {
		apperrors.Respond(c, apperrors.ErrUnauthorized)
		return
	}

	orders, err := oc.svc.ListOrders(c.Request.Context(), identity.UserID)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, orders)
}

// Get returns one of the caller's orders.
func (oc *OrderController) Get(c *gin.Context) {
	identity, ok := middleware.GetIdentity(c)
	if !ok {
		apperrors.Respond(c, apperrors.ErrUnauthorized)
		return
	}

	orderID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		apperrors.Respond(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid order ID"))
		return
	}

	order, err := oc.svc.GetOrder(c.Request.Context(), identity.UserID, orderID)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

type cancelRequest struct {
	OrderID string `json:"orderId"`
}

// Cancel restores stock for each line and removes the order.
func (oc *OrderController) Cancel(c *gin.Context) {
	identity, ok := middleware.GetIdentity(c)
	if !ok {
		apperrors.Respond(c, apperrors.ErrUnauthorized)
		return
	}

	var req cancelRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.OrderID == "" {
		apperrors.Respond(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "Order ID is required"))
		return
	}

	orderID, err := primitive.ObjectIDFromHex(req.OrderID)
	if err != nil {
		apperrors.Respond(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid order ID"))
		return
	}

	order, err := oc.svc.CancelOrder(c.Request.Context(), identity.UserID, orderID)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Order canceled successfully",
		"orderId": order.ID.Hex(),
	})
}
