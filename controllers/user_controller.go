package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/anilkoundinya7/E-Commerce/middleware"
	apperrors "github.com/anilkoundinya7/E-Commerce/pkg/errors"
	"github.com/anilkoundinya7/E-Commerce/services"
)

type UserController struct {
	svc *services.UserService
}

func NewUserController(svc *services.UserService) *UserController {
	return &UserController{svc: svc}
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Register creates a new account.
func (uc *UserController) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.Respond(c, apperrors.ErrInvalidInput)
		return
	}

	id, err := uc.svc.Register(c.Request.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "User registered successfully", "userId": id.Hex()})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login verifies credentials and returns a JWT.
func (uc *UserController) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.Respond(c, apperrors.ErrInvalidInput)
		return
	}

	token, err := uc.svc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token})
}

// Me returns the authenticated user's own record.
func (uc *UserController) Me(c *gin.Context) {
	identity, ok := middleware.GetIdentity(c)
	if !ok {
		apperrors.Respond(c, apperrors.ErrUnauthorized)
		return
	}

	user, err := uc.svc.Get(c.Request.Context(), identity.UserID)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// GetByID returns a user by id, password excluded.
func (uc *UserController) GetByID(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		apperrors.Respond(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid user ID"))
		return
	}

	user, err := uc.svc.Get(c.Request.Context(), id)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// Update applies account changes, re-hashing any supplied password.
// Non-admins may only update their own record.
func (uc *UserController) Update(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		apperrors.Respond(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid user ID"))
		return
	}
	if !uc.mayManage(c, id) {
		return
	}

	var upd services.UserUpdate
	if err := c.ShouldBindJSON(&upd); err != nil {
		apperrors.Respond(c, apperrors.ErrInvalidInput)
		return
	}

	if err := uc.svc.Update(c.Request.Context(), id, upd); err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "User updated successfully"})
}

// Delete removes an account. Non-admins may only delete their own record.
func (uc *UserController) Delete(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		apperrors.Respond(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid user ID"))
		return
	}
	if !uc.mayManage(c, id) {
		return
	}

	if err := uc.svc.Delete(c.Request.Context(), id); err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "User deleted successfully"})
}

// mayManage reports whether the caller may modify the given account and
// writes the error response when not.
func (uc *UserController) mayManage(c *gin.Context, id primitive.ObjectID) bool {
	identity, ok := middleware.GetIdentity(c)
	if !ok {
		apperrors.Respond(c, apperrors.ErrUnauthorized)
		return false
	}
	if !identity.IsAdmin && identity.UserID != id {
		apperrors.Respond(c, apperrors.ErrForbidden)
		return false
	}
	return true
}
