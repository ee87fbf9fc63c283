package controllers

import (
	"fmt"
	"net/http"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	apperrors "github.com/anilkoundinya7/E-Commerce/pkg/errors"
	"github.com/anilkoundinya7/E-Commerce/services"
)

// maxImageSize caps uploaded product images at 5 MiB.
const maxImageSize = 5 << 20

type ProductController struct {
	svc       *services.ProductService
	uploadDir string
}

func NewProductController(svc *services.ProductService, uploadDir string) *ProductController {
	return &ProductController{svc: svc, uploadDir: uploadDir}
}

// Create adds a product to the catalog.
func (pc *ProductController) Create(c *gin.Context) {
	var in services.ProductInput
	if err := c.ShouldBindJSON(&in); err != nil {
		apperrors.Respond(c, apperrors.ErrInvalidInput)
		return
	}

	id, err := pc.svc.Create(c.Request.Context(), in)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Product created", "productId": id.Hex()})
}

// List returns the whole catalog.
func (pc *ProductController) List(c *gin.Context) {
	products, err := pc.svc.List(c.Request.Context())
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, products)
}

// Get returns one product.
func (pc *ProductController) Get(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		apperrors.Respond(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid product ID."))
		return
	}

	product, err := pc.svc.Get(c.Request.Context(), id)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, product)
}

// Update applies catalog changes to a product.
func (pc *ProductController) Update(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		apperrors.Respond(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid product ID."))
		return
	}

	var upd services.ProductUpdate
	if err := c.ShouldBindJSON(&upd); err != nil {
		apperrors.Respond(c, apperrors.ErrInvalidInput)
		return
	}

	if err := pc.svc.Update(c.Request.Context(), id, upd); err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Product updated successfully"})
}

// Delete removes a product.
func (pc *ProductController) Delete(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		apperrors.Respond(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid product ID."))
		return
	}

	if err := pc.svc.Delete(c.Request.Context(), id); err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Product deleted successfully"})
}

// UploadImage stores a product image on disk and records its URL.
func (pc *ProductController) UploadImage(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		apperrors.Respond(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid product ID."))
		return
	}

	file, err := c.FormFile("image")
	if err != nil {
		apperrors.Respond(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "Image file is required"))
		return
	}
	if file.Size > maxImageSize {
		apperrors.Respond(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "Image exceeds the 5MB limit"))
		return
	}

	filename := fmt.Sprintf("%d-%s", time.Now().UnixNano(), filepath.Base(file.Filename))
	dst := filepath.Join(pc.uploadDir, filename)
	if err := c.SaveUploadedFile(file, dst); err != nil {
		apperrors.Respond(c, apperrors.Wrap(apperrors.ErrInternalServer, err))
		return
	}

	imageURL := "/uploads/" + filename
	if err := pc.svc.SetImage(c.Request.Context(), id, imageURL); err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Product image updated", "image_url": imageURL})
}
