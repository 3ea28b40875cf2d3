// internal/interfaces/http/handlers/cart.go
package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/your-org/storefront-api/internal/config"
	"github.com/your-org/storefront-api/internal/domain/cart"
	"github.com/your-org/storefront-api/internal/interfaces/http/middleware"
)

// CartHandler handles cart endpoints
type CartHandler struct {
	cartService *cart.Service
	config      *config.Config
}

// NewCartHandler creates a new cart handler
func NewCartHandler(cartService *cart.Service, cfg *config.Config) *CartHandler {
	return &CartHandler{
		cartService: cartService,
		config:      cfg,
	}
}

// AddProductToCart handles POST /carts/products/:productId/quantity/:quantity
func (h *CartHandler) AddProductToCart(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "Authentication required",
		})
		return
	}

	productID, err := parseUintParam(c, "productId")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid product ID",
		})
		return
	}

	quantity, err := strconv.Atoi(c.Param("quantity"))
	if err != nil || quantity <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid quantity",
		})
		return
	}

	cartDTO, err := h.cartService.AddProductToCart(userID, productID, quantity)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Product added to cart successfully",
		"data":    cartDTO,
	})
}

// GetAllCarts handles GET /carts
func (h *CartHandler) GetAllCarts(c *gin.Context) {
	carts, err := h.cartService.GetAllCarts()
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Carts retrieved successfully",
		"data":    carts,
	})
}

// GetUserCart handles GET /carts/users/cart
func (h *CartHandler) GetUserCart(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "Authentication required",
		})
		return
	}

	cartDTO, err := h.cartService.GetUserCart(userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Cart retrieved successfully",
		"data":    cartDTO,
	})
}

// UpdateProductQuantity handles PUT /cart/products/:productId/quantity/:operation.
// The operation "delete" decrements the line by one, anything else increments
// it by one.
func (h *CartHandler) UpdateProductQuantity(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "Authentication required",
		})
		return
	}

	productID, err := parseUintParam(c, "productId")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid product ID",
		})
		return
	}

	delta := 1
	if strings.EqualFold(c.Param("operation"), "delete") {
		delta = -1
	}

	cartDTO, err := h.cartService.UpdateProductQuantityInCart(userID, productID, delta)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Cart updated successfully",
		"data":    cartDTO,
	})
}

// DeleteProductFromCart handles DELETE /carts/:cartId/product/:productId
func (h *CartHandler) DeleteProductFromCart(c *gin.Context) {
	cartID, err := parseUintParam(c, "cartId")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid cart ID",
		})
		return
	}

	productID, err := parseUintParam(c, "productId")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid product ID",
		})
		return
	}

	message, err := h.cartService.DeleteProductFromCart(cartID, productID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": message,
	})
}
