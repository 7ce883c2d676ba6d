package http

import (
	"errors"
	"net/http"

	"artmarket/internal/entity"
	"artmarket/pkg/logger"

	"github.com/gin-gonic/gin"
)

// respondError maps the usecase error kinds onto HTTP statuses. A
// duplicate-order conflict additionally carries the existing order id
// so clients can resume payment on it.
func respondError(c *gin.Context, log *logger.Logger, err error) {
	var existsErr *entity.OrderExistsError
	if errors.As(err, &existsErr) {
		c.JSON(http.StatusConflict, gin.H{
			"error":             "order already exists for this artwork",
			"existing_order_id": existsErr.OrderID,
		})
		return
	}

	switch {
	case errors.Is(err, entity.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, entity.ErrUnauthorized):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, entity.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, entity.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		log.Error("Internal error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
