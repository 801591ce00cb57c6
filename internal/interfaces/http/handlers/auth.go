// internal/interfaces/http/handlers/auth.go
package handlers

import (
	"net/http"

	"github.com/cryai2821/pizza-wale-fe/internal/domain/identity"
	"github.com/cryai2821/pizza-wale-fe/internal/interfaces/http/middleware"
	"github.com/cryai2821/pizza-wale-fe/internal/pkg/auth"
	"github.com/gin-gonic/gin"
)

// AuthHandler handles phone + OTP login
type AuthHandler struct {
	identityService *identity.Service
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(identityService *identity.Service) *AuthHandler {
	return &AuthHandler{identityService: identityService}
}

// SendOTPRequest starts a login
type SendOTPRequest struct {
	Phone string `json:"phone" binding:"required"`
}

// VerifyOTPRequest completes a login
type VerifyOTPRequest struct {
	Phone string `json:"phone" binding:"required"`
	OTP   string `json:"otp" binding:"required"`
}

// SendOTP handles POST /auth/otp/send
func (h *AuthHandler) SendOTP(c *gin.Context) {
	var req SendOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	phone, err := h.identityService.SendOTP(c.Request.Context(), req.Phone)
	if err != nil {
		respondError(c, err, "Failed to send OTP")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "OTP sent successfully",
		"data": gin.H{
			"phone": phone,
		},
	})
}

// VerifyOTP handles POST /auth/otp/verify
func (h *AuthHandler) VerifyOTP(c *gin.Context) {
	var req VerifyOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	id, err := h.identityService.VerifyOTP(c.Request.Context(), middleware.GetSessionID(c), req.Phone, req.OTP)
	if err != nil {
		respondError(c, err, "Invalid OTP")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Login successful",
		"data":    identityView(id),
	})
}

// Me handles GET /auth/me
func (h *AuthHandler) Me(c *gin.Context) {
	id, err := h.identityService.Current(c.Request.Context(), middleware.GetSessionID(c))
	if err != nil {
		respondError(c, err, "Failed to load session")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Session retrieved successfully",
		"data":    identityView(id),
	})
}

// Logout handles POST /auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	if err := h.identityService.Logout(c.Request.Context(), middleware.GetSessionID(c)); err != nil {
		respondError(c, err, "Failed to logout")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Logged out successfully",
	})
}

// identityView never exposes the access token to the browser
func identityView(id *identity.Identity) gin.H {
	view := gin.H{
		"user":             id.User,
		"is_authenticated": id.Authenticated,
	}
	if exp, ok := auth.ExpiresAt(id.Token); ok && id.Authenticated {
		view["expires_at"] = exp
	}
	return view
}
