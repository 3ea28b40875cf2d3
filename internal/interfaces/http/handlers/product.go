// internal/interfaces/http/handlers/product.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/your-org/storefront-api/internal/config"
	"github.com/your-org/storefront-api/internal/domain/product"
	"github.com/your-org/storefront-api/internal/interfaces/http/middleware"
)

// ProductHandler handles product endpoints
type ProductHandler struct {
	productService *product.Service
	config         *config.Config
}

// NewProductHandler creates a new product handler
func NewProductHandler(productService *product.Service, cfg *config.Config) *ProductHandler {
	return &ProductHandler{
		productService: productService,
		config:         cfg,
	}
}

// AddProduct handles POST /admin/categories/:categoryId/product
func (h *ProductHandler) AddProduct(c *gin.Context) {
	categoryID, err := parseUintParam(c, "categoryId")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid category ID",
		})
		return
	}

	sellerID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "Authentication required",
		})
		return
	}

	var req product.ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	created, err := h.productService.AddProduct(categoryID, sellerID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Product created successfully",
		"data":    created,
	})
}

// GetAllProducts handles GET /public/products
func (h *ProductHandler) GetAllProducts(c *gin.Context) {
	page, ok := bindPageRequest(c)
	if !ok {
		return
	}

	result, err := h.productService.GetAllProducts(page)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Products retrieved successfully",
		"data":    result,
	})
}

// SearchByCategory handles GET /public/categories/:categoryId/products
func (h *ProductHandler) SearchByCategory(c *gin.Context) {
	categoryID, err := parseUintParam(c, "categoryId")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid category ID",
		})
		return
	}

	page, ok := bindPageRequest(c)
	if !ok {
		return
	}

	result, err := h.productService.SearchByCategory(categoryID, page)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Products retrieved successfully",
		"data":    result,
	})
}

// SearchByKeyword handles GET /public/products/keyword/:keyword
func (h *ProductHandler) SearchByKeyword(c *gin.Context) {
	keyword := c.Param("keyword")

	page, ok := bindPageRequest(c)
	if !ok {
		return
	}

	result, err := h.productService.SearchByKeyword(keyword, page)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Products retrieved successfully",
		"data":    result,
	})
}

// UpdateProduct handles PUT /products/:productId
func (h *ProductHandler) UpdateProduct(c *gin.Context) {
	productID, err := parseUintParam(c, "productId")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid product ID",
		})
		return
	}

	var req product.ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	updated, err := h.productService.UpdateProduct(productID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Product updated successfully",
		"data":    updated,
	})
}

// DeleteProduct handles DELETE /admin/products/:productId
func (h *ProductHandler) DeleteProduct(c *gin.Context) {
	productID, err := parseUintParam(c, "productId")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid product ID",
		})
		return
	}

	message, err := h.productService.DeleteProduct(productID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": message,
	})
}

// UpdateProductImage handles PUT /products/:productId/image
func (h *ProductHandler) UpdateProductImage(c *gin.Context) {
	productID, err := parseUintParam(c, "productId")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid product ID",
		})
		return
	}

	file, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Image file is required",
		})
		return
	}

	updated, err := h.productService.UpdateProductImage(productID, file)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Product image updated successfully",
		"data":    updated,
	})
}

// bindPageRequest binds pagination query parameters, writing the error
// response itself on failure
func bindPageRequest(c *gin.Context) (*product.PageRequest, bool) {
	var page product.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid pagination parameters",
			"details": err.Error(),
		})
		return nil, false
	}
	return &page, true
}
