// internal/interfaces/http/handlers/order.go
package handlers

import (
	"fmt"
	"net/http"

	"github.com/cryai2821/pizza-wale-fe/internal/config"
	"github.com/cryai2821/pizza-wale-fe/internal/domain/order"
	"github.com/cryai2821/pizza-wale-fe/internal/interfaces/http/middleware"
	"github.com/cryai2821/pizza-wale-fe/internal/pkg/money"
	"github.com/cryai2821/pizza-wale-fe/internal/pkg/pdf"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// OrderHandler handles order history, detail and receipts
type OrderHandler struct {
	orderService *order.Service
	pdfService   *pdf.Service
	config       *config.Config
	logger       *logrus.Logger
}

// NewOrderHandler creates a new order handler
func NewOrderHandler(orderService *order.Service, pdfService *pdf.Service, cfg *config.Config, logger *logrus.Logger) *OrderHandler {
	return &OrderHandler{
		orderService: orderService,
		pdfService:   pdfService,
		config:       cfg,
		logger:       logger,
	}
}

// GetOrders handles GET /orders
func (h *OrderHandler) GetOrders(c *gin.Context) {
	orders, err := h.orderService.MyOrders(c.Request.Context(), middleware.GetTokenFromContext(c))
	if err != nil {
		respondError(c, err, "Failed to retrieve orders")
		return
	}

	views := make([]gin.H, len(orders))
	for i := range orders {
		views[i] = orderView(&orders[i], h.config.Shop.Name)
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Orders retrieved successfully",
		"data":    views,
	})
}

// GetOrder handles GET /orders/:id
func (h *OrderHandler) GetOrder(c *gin.Context) {
	o, err := h.orderService.Get(c.Request.Context(), middleware.GetTokenFromContext(c), c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to retrieve order")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Order retrieved successfully",
		"data":    orderView(o, h.config.Shop.Name),
	})
}

// GetReceipt handles GET /orders/:id/receipt
func (h *OrderHandler) GetReceipt(c *gin.Context) {
	o, err := h.orderService.Get(c.Request.Context(), middleware.GetTokenFromContext(c), c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to retrieve order")
		return
	}

	buf, err := h.pdfService.GenerateReceipt(o)
	if err != nil {
		h.logger.WithFields(logrus.Fields{
			"order_id": o.ID,
			"error":    err.Error(),
		}).Error("Failed to generate receipt")

		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to generate receipt",
		})
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=receipt-%s.pdf", o.ShortID))
	c.Data(http.StatusOK, "application/pdf", buf.Bytes())
}

// orderView decorates an order with what the order pages display
func orderView(o *order.Order, defaultShop string) gin.H {
	return gin.H{
		"order":         o,
		"shop_name":     o.ShopName(defaultShop),
		"display_total": money.Format(o.TotalAmount),
		"steps":         o.Steps(),
		"progress":      o.Progress(),
	}
}
