package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yourusername/auth-api/internal/service"
)

// UserHandler handles user profile requests.
type UserHandler struct {
	userService *service.UserService
}

// NewUserHandler creates the user handler.
func NewUserHandler(userService *service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// GetMe handles GET /api/users/me for the authenticated user.
func (h *UserHandler) GetMe(c *gin.Context) {
	userID, exists := c.Get("userID")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"status": "error", "message": "Unauthorized"})
		return
	}

	user, err := h.userService.GetByID(userID.(uint))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user})
}
