// internal/interfaces/http/handlers/respond.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/your-org/storefront-api/internal/pkg/errs"
)

// respondError maps a service error to the right HTTP status. Missing
// resources map to 404, domain-rule violations to 400, everything else is an
// opaque 500.
func respondError(c *gin.Context, err error) {
	switch {
	case errs.IsNotFound(err):
		c.JSON(http.StatusNotFound, gin.H{
			"error": err.Error(),
		})
	case errs.IsDomain(err):
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
		})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
	}
}
