// internal/interfaces/http/handlers/checkout.go
package handlers

import (
	"net/http"

	"github.com/cryai2821/pizza-wale-fe/internal/config"
	"github.com/cryai2821/pizza-wale-fe/internal/domain/order"
	"github.com/cryai2821/pizza-wale-fe/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
)

// CheckoutHandler handles order placement
type CheckoutHandler struct {
	orderService *order.Service
	config       *config.Config
}

// NewCheckoutHandler creates a new checkout handler
func NewCheckoutHandler(orderService *order.Service, cfg *config.Config) *CheckoutHandler {
	return &CheckoutHandler{
		orderService: orderService,
		config:       cfg,
	}
}

// PlaceOrder handles POST /checkout. The cart is cleared only when the
// order was accepted, so a failed attempt can simply be retried.
func (h *CheckoutHandler) PlaceOrder(c *gin.Context) {
	token := middleware.GetTokenFromContext(c)

	placed, err := h.orderService.Checkout(c.Request.Context(), middleware.GetSessionID(c), token)
	if err != nil {
		respondError(c, err, "Failed to place order. Please try again.")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Order placed successfully",
		"data":    orderView(placed, h.config.Shop.Name),
	})
}
