package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/anilkoundinya7/E-Commerce/controllers"
	"github.com/anilkoundinya7/E-Commerce/middleware"
	"github.com/anilkoundinya7/E-Commerce/services"
)

// Register wires every resource group onto the engine. Cart and order routes
// require authentication; catalog mutations additionally require admin.
func Register(
	r *gin.Engine,
	tokens *services.TokenService,
	users *controllers.UserController,
	products *controllers.ProductController,
	carts *controllers.CartController,
	orders *controllers.OrderController,
) {
	protect := middleware.Protect(tokens)

	userGroup := r.Group("/api/users")
	{
		userGroup.POST("/register", middleware.RateLimit(), users.Register)
		userGroup.POST("/login", middleware.RateLimit(), users.Login)
		userGroup.GET("/me", protect, users.Me)
		userGroup.GET("/:id", protect, users.GetByID)
		userGroup.PUT("/:id", protect, users.Update)
		userGroup.DELETE("/:id", protect, users.Delete)
	}

	productGroup := r.Group("/api/products")
	{
		productGroup.GET("", products.List)
		productGroup.GET("/:id", products.Get)
		productGroup.POST("", protect, middleware.AdminOnly(), products.Create)
		productGroup.PUT("/:id", protect, middleware.AdminOnly(), products.Update)
		productGroup.DELETE("/:id", protect, middleware.AdminOnly(), products.Delete)
		productGroup.POST("/:id/image", protect, middleware.AdminOnly(), products.UploadImage)
	}

	cartGroup := r.Group("/api/cart", protect)
	{
		cartGroup.POST("/add", carts.AddItem)
		cartGroup.GET("", carts.GetCart)
		cartGroup.DELETE("/remove/:productId", carts.RemoveItem)
	}

	orderGroup := r.Group("/api/orders", protect)
	{
		orderGroup.POST("/place", orders.Place)
		orderGroup.GET("", orders.List)
		orderGroup.GET("/:id", orders.Get)
		orderGroup.POST("/cancel", orders.Cancel)
	}
}
