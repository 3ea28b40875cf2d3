// internal/interfaces/http/handlers/category.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/your-org/storefront-api/internal/config"
	"github.com/your-org/storefront-api/internal/domain/product"
)

// CategoryHandler handles category endpoints
type CategoryHandler struct {
	categoryService *product.CategoryService
	config          *config.Config
}

// NewCategoryHandler creates a new category handler
func NewCategoryHandler(categoryService *product.CategoryService, cfg *config.Config) *CategoryHandler {
	return &CategoryHandler{
		categoryService: categoryService,
		config:          cfg,
	}
}

// CreateCategory handles POST /admin/categories
func (h *CategoryHandler) CreateCategory(c *gin.Context) {
	var req product.CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	created, err := h.categoryService.CreateCategory(&req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Category created successfully",
		"data":    created,
	})
}

// GetCategories handles GET /public/categories
func (h *CategoryHandler) GetCategories(c *gin.Context) {
	var page product.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid pagination parameters",
			"details": err.Error(),
		})
		return
	}

	result, err := h.categoryService.GetCategories(&page)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Categories retrieved successfully",
		"data":    result,
	})
}

// UpdateCategory handles PUT /admin/categories/:categoryId
func (h *CategoryHandler) UpdateCategory(c *gin.Context) {
	categoryID, err := parseUintParam(c, "categoryId")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid category ID",
		})
		return
	}

	var req product.CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	updated, err := h.categoryService.UpdateCategory(categoryID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Category updated successfully",
		"data":    updated,
	})
}

// DeleteCategory handles DELETE /admin/categories/:categoryId
func (h *CategoryHandler) DeleteCategory(c *gin.Context) {
	categoryID, err := parseUintParam(c, "categoryId")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid category ID",
		})
		return
	}

	message, err := h.categoryService.DeleteCategory(categoryID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": message,
	})
}
