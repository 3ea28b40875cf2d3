// internal/interfaces/http/handlers/address.go
package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/your-org/storefront-api/internal/config"
	"github.com/your-org/storefront-api/internal/domain/user"
	"github.com/your-org/storefront-api/internal/interfaces/http/middleware"
)

// AddressHandler handles address book endpoints
type AddressHandler struct {
	addressService *user.AddressService
	config         *config.Config
}

// NewAddressHandler creates a new address handler
func NewAddressHandler(addressService *user.AddressService, cfg *config.Config) *AddressHandler {
	return &AddressHandler{
		addressService: addressService,
		config:         cfg,
	}
}

// CreateAddress handles POST /addresses
func (h *AddressHandler) CreateAddress(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "Authentication required",
		})
		return
	}

	var req user.AddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	created, err := h.addressService.CreateAddress(userID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Address created successfully",
		"data":    created,
	})
}

// GetAllAddresses handles GET /addresses
func (h *AddressHandler) GetAllAddresses(c *gin.Context) {
	addresses, err := h.addressService.GetAllAddresses()
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Addresses retrieved successfully",
		"data":    addresses,
	})
}

// GetAddressByID handles GET /addresses/:addressId
func (h *AddressHandler) GetAddressByID(c *gin.Context) {
	addressID, err := parseUintParam(c, "addressId")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid address ID",
		})
		return
	}

	address, err := h.addressService.GetAddressByID(addressID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Address retrieved successfully",
		"data":    address,
	})
}

// GetUserAddresses handles GET /users/addresses
func (h *AddressHandler) GetUserAddresses(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "Authentication required",
		})
		return
	}

	addresses, err := h.addressService.GetUserAddresses(userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Addresses retrieved successfully",
		"data":    addresses,
	})
}

// UpdateAddress handles PUT /addresses/:addressId
func (h *AddressHandler) UpdateAddress(c *gin.Context) {
	addressID, err := parseUintParam(c, "addressId")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid address ID",
		})
		return
	}

	var req user.AddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	updated, err := h.addressService.UpdateAddress(addressID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Address updated successfully",
		"data":    updated,
	})
}

// DeleteAddress handles DELETE /addresses/:addressId
func (h *AddressHandler) DeleteAddress(c *gin.Context) {
	addressID, err := parseUintParam(c, "addressId")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid address ID",
		})
		return
	}

	message, err := h.addressService.DeleteAddress(addressID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": message,
	})
}

// parseUintParam parses a path parameter as an unsigned integer
func parseUintParam(c *gin.Context, name string) (uint, error) {
	value, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(value), nil
}
