package handler

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/yourusername/auth-api/internal/pkg/errors"
	"github.com/yourusername/auth-api/internal/service"
)

// respondError translates a domain error to the wire shape
// {status: "error", message, details?}. Unexpected errors become a generic
// 500 so internals never leak to clients.
func respondError(c *gin.Context, err error) {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		body := gin.H{"status": "error", "message": appErr.Message}
		if len(appErr.Details) > 0 {
			body["details"] = appErr.Details
		}
		log.Printf("[Handler] %s %s - %s", c.Request.Method, c.Request.URL.Path, appErr.Message)
		c.JSON(appErr.Status, body)
		return
	}

	switch {
	case errors.Is(err, service.ErrInvalidOTP):
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Incorrect OTP, please try again"})
	case errors.Is(err, service.ErrOTPExpired):
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "OTP has expired or was never requested"})
	case errors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"status": "error", "message": "Resource not found"})
	default:
		log.Printf("[Handler] unexpected error on %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "An unexpected error occurred"})
	}
}
