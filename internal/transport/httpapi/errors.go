package httpapi

import (
	"errors"
	"log"
	"net/http"
	"retail-orders/internal/domain"
	"time"

	"github.com/gin-gonic/gin"
)

type errorResponse struct {
	Status    int       `json:"status"`
	Code      string    `json:"code"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

// writeError maps core failures to distinct HTTP responses: not-found,
// business-rule violations and internal errors stay distinguishable.
func writeError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	code := "INTERNAL_ERROR"
	message := "unexpected error"

	switch {
	case errors.Is(err, domain.ErrProductNotFound):
		status, code, message = http.StatusNotFound, "PRODUCT_NOT_FOUND", err.Error()
	case errors.Is(err, domain.ErrOrderNotFound):
		status, code, message = http.StatusNotFound, "ORDER_NOT_FOUND", err.Error()
	case errors.Is(err, domain.ErrInsufficientStock):
		status, code, message = http.StatusBadRequest, "INSUFFICIENT_STOCK", err.Error()
	case errors.Is(err, domain.ErrPaymentFailed):
		status, code, message = http.StatusBadRequest, "PAYMENT_FAILED", err.Error()
	case errors.Is(err, domain.ErrInvalidTransition):
		status, code, message = http.StatusConflict, "INVALID_TRANSITION", err.Error()
	case errors.Is(err, domain.ErrNotCancellable):
		status, code, message = http.StatusConflict, "ORDER_NOT_CANCELLABLE", err.Error()
	default:
		log.Printf("[http] internal error: %v", err)
	}

	c.JSON(status, errorResponse{
		Status:    status,
		Code:      code,
		Message:   message,
		Timestamp: time.Now(),
	})
}

func writeValidationError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, errorResponse{
		Status:    http.StatusBadRequest,
		Code:      "INVALID_INPUT",
		Message:   err.Error(),
		Timestamp: time.Now(),
	})
}
