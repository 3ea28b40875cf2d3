// internal/interfaces/http/routes/routes.go
package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/your-org/storefront-api/internal/config"
	"github.com/your-org/storefront-api/internal/domain/cart"
	"github.com/your-org/storefront-api/internal/domain/product"
	"github.com/your-org/storefront-api/internal/domain/user"
	"github.com/your-org/storefront-api/internal/interfaces/http/handlers"
	"github.com/your-org/storefront-api/internal/interfaces/http/middleware"
	"github.com/your-org/storefront-api/internal/pkg/storage"
	"gorm.io/gorm"
)

// SetupRoutes wires services, handlers and route groups. The cart service is
// built first because the product service depends on it for keeping carts
// consistent across price updates and deletions.
func SetupRoutes(api *gin.RouterGroup, db *gorm.DB, cfg *config.Config) {
	// Services
	cartService := cart.NewService(db, cfg)
	imageStore := storage.NewLocalStore(cfg)
	productService := product.NewService(db, cfg, cartService, imageStore)
	categoryService := product.NewCategoryService(db, cfg)
	userService := user.NewService(db, cfg)
	addressService := user.NewAddressService(db, cfg)

	// Handlers
	authHandler := handlers.NewAuthHandler(userService, cfg)
	addressHandler := handlers.NewAddressHandler(addressService, cfg)
	cartHandler := handlers.NewCartHandler(cartService, cfg)
	productHandler := handlers.NewProductHandler(productService, cfg)
	categoryHandler := handlers.NewCategoryHandler(categoryService, cfg)

	authRequired := middleware.AuthMiddleware(cfg)
	adminRequired := middleware.AdminMiddleware()

	// Authentication
	auth := api.Group("/auth")
	{
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)
		auth.GET("/profile", authRequired, authHandler.Profile)
	}

	// Public catalog
	public := api.Group("/public")
	{
		public.GET("/products", productHandler.GetAllProducts)
		public.GET("/categories/:categoryId/products", productHandler.SearchByCategory)
		public.GET("/products/keyword/:keyword", productHandler.SearchByKeyword)
		public.GET("/categories", categoryHandler.GetCategories)
	}

	// Address book
	addresses := api.Group("/addresses", authRequired)
	{
		addresses.POST("", addressHandler.CreateAddress)
		addresses.GET("", adminRequired, addressHandler.GetAllAddresses)
		addresses.GET("/:addressId", addressHandler.GetAddressByID)
		addresses.PUT("/:addressId", addressHandler.UpdateAddress)
		addresses.DELETE("/:addressId", addressHandler.DeleteAddress)
	}
	api.GET("/users/addresses", authRequired, addressHandler.GetUserAddresses)

	// Cart
	carts := api.Group("/carts", authRequired)
	{
		carts.POST("/products/:productId/quantity/:quantity", cartHandler.AddProductToCart)
		carts.GET("", adminRequired, cartHandler.GetAllCarts)
		carts.GET("/users/cart", cartHandler.GetUserCart)
		carts.DELETE("/:cartId/product/:productId", adminRequired, cartHandler.DeleteProductFromCart)
	}
	api.PUT("/cart/products/:productId/quantity/:operation", authRequired, cartHandler.UpdateProductQuantity)

	// Product management
	api.PUT("/products/:productId", authRequired, adminRequired, productHandler.UpdateProduct)
	api.PUT("/products/:productId/image", authRequired, adminRequired, productHandler.UpdateProductImage)

	// Admin
	admin := api.Group("/admin", authRequired, adminRequired)
	{
		admin.POST("/categories/:categoryId/product", productHandler.AddProduct)
		admin.DELETE("/products/:productId", productHandler.DeleteProduct)

		admin.POST("/categories", categoryHandler.CreateCategory)
		admin.PUT("/categories/:categoryId", categoryHandler.UpdateCategory)
		admin.DELETE("/categories/:categoryId", categoryHandler.DeleteCategory)
	}
}
