// internal/interfaces/http/handlers/auth.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/your-org/storefront-api/internal/config"
	"github.com/your-org/storefront-api/internal/domain/user"
	"github.com/your-org/storefront-api/internal/interfaces/http/middleware"
)

// AuthHandler handles authentication endpoints
type AuthHandler struct {
	userService *user.Service
	config      *config.Config
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(userService *user.Service, cfg *config.Config) *AuthHandler {
	return &AuthHandler{
		userService: userService,
		config:      cfg,
	}
}

// Register handles POST /auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req user.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	created, err := h.userService.Register(&req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "User registered successfully",
		"data":    created,
	})
}

// Login handles POST /auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req user.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	result, err := h.userService.Login(&req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Login successful",
		"data":    result,
	})
}

// Profile handles GET /auth/profile
func (h *AuthHandler) Profile(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "Authentication required",
		})
		return
	}

	account, err := h.userService.GetByID(userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Profile retrieved successfully",
		"data": gin.H{
			"id":       account.ID,
			"username": account.Username,
			"email":    account.Email,
			"is_admin": account.IsAdmin,
		},
	})
}
