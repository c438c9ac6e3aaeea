package handler

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yourusername/auth-api/internal/service"
)

// AuthHandler handles registration and OTP verification requests.
type AuthHandler struct {
	registrationService *service.RegistrationService
}

// NewAuthHandler creates the auth handler.
func NewAuthHandler(registrationService *service.RegistrationService) *AuthHandler {
	return &AuthHandler{registrationService: registrationService}
}

// RegisterRequest is the OTP request payload. Field rules are enforced by the
// domain validator so all violations can be collected in one response.
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// VerifyRequest is the OTP verification payload. The registration fields are
// resubmitted because no user record exists until the code is verified.
type VerifyRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	OTP      string `json:"otp"`
}

// Register handles POST /api/auth/register: it starts the OTP issuance
// workflow for a new identity.
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Invalid request body"})
		return
	}

	if err := h.registrationService.RequestOTP(c.Request.Context(), req.Name, req.Email, req.Password); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "OTP sent successfully"})
}

// Verify handles POST /api/auth/verify: it checks the submitted code and
// materializes the account on success.
func (h *AuthHandler) Verify(c *gin.Context) {
	var req VerifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Invalid request body"})
		return
	}

	user, token, err := h.registrationService.VerifyOTP(c.Request.Context(), req.Name, req.Email, req.Password, req.OTP)
	if err != nil {
		respondError(c, err)
		return
	}

	log.Printf("[AuthHandler] user ID=%d (%s) registered successfully", user.ID, user.Email)
	c.JSON(http.StatusCreated, gin.H{
		"message":     "User registered successfully",
		"user":        user,
		"accessToken": token,
	})
}
