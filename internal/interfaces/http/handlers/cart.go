// internal/interfaces/http/handlers/cart.go
package handlers

import (
	"net/http"

	"github.com/cryai2821/pizza-wale-fe/internal/domain/cart"
	"github.com/cryai2821/pizza-wale-fe/internal/domain/menu"
	"github.com/cryai2821/pizza-wale-fe/internal/interfaces/http/middleware"
	"github.com/cryai2821/pizza-wale-fe/internal/pkg/money"
	"github.com/gin-gonic/gin"
)

// CartHandler handles cart endpoints
type CartHandler struct {
	cartService *cart.Service
	menuService *menu.Service
}

// NewCartHandler creates a new cart handler
func NewCartHandler(cartService *cart.Service, menuService *menu.Service) *CartHandler {
	return &CartHandler{
		cartService: cartService,
		menuService: menuService,
	}
}

// AddItemRequest adds a product with its chosen options. Without
// option_ids the product's default selection is used.
type AddItemRequest struct {
	ProductID string   `json:"product_id" binding:"required"`
	OptionIDs []string `json:"option_ids"`
	Quantity  int      `json:"quantity"`
}

// LineRequest addresses an existing line
type LineRequest struct {
	ProductID string   `json:"product_id" binding:"required"`
	OptionIDs []string `json:"option_ids"`
}

// UpdateLineRequest sets a line's quantity; 0 removes it
type UpdateLineRequest struct {
	ProductID string   `json:"product_id" binding:"required"`
	OptionIDs []string `json:"option_ids"`
	Quantity  int      `json:"quantity" binding:"min=0"`
}

// GetCart handles GET /cart
func (h *CartHandler) GetCart(c *gin.Context) {
	ct, err := h.cartService.Get(c.Request.Context(), middleware.GetSessionID(c))
	if err != nil {
		respondError(c, err, "Failed to retrieve cart")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Cart retrieved successfully",
		"data":    cartView(ct),
	})
}

// AddItem handles POST /cart/items
func (h *CartHandler) AddItem(c *gin.Context) {
	var req AddItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}

	catalog := h.menuService.GetMenu(c.Request.Context())
	product, ok := catalog.Product(req.ProductID)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Product not found",
		})
		return
	}

	selection := menu.DefaultSelection(product)
	if req.OptionIDs != nil {
		var err error
		selection, err = menu.SelectionFromIDs(product, req.OptionIDs)
		if err != nil {
			respondError(c, err, "Invalid selection")
			return
		}
	}

	line, err := menu.BuildLine(product, selection, req.Quantity)
	if err != nil {
		respondError(c, err, "Failed to add item")
		return
	}

	ct, err := h.cartService.AddItem(c.Request.Context(), middleware.GetSessionID(c), line)
	if err != nil {
		respondError(c, err, "Failed to add item")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Item added to cart successfully",
		"data":    cartView(ct),
	})
}

// UpdateItem handles PUT /cart/items
func (h *CartHandler) UpdateItem(c *gin.Context) {
	var req UpdateLineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	ct, err := h.cartService.SetLineQuantity(c.Request.Context(), middleware.GetSessionID(c), req.ProductID, req.OptionIDs, req.Quantity)
	if err != nil {
		respondError(c, err, "Failed to update cart")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Cart item updated successfully",
		"data":    cartView(ct),
	})
}

// RemoveItem handles DELETE /cart/items
func (h *CartHandler) RemoveItem(c *gin.Context) {
	var req LineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	ct, err := h.cartService.RemoveLine(c.Request.Context(), middleware.GetSessionID(c), req.ProductID, req.OptionIDs)
	if err != nil {
		respondError(c, err, "Failed to update cart")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Item removed from cart successfully",
		"data":    cartView(ct),
	})
}

// DecrementProduct handles POST /cart/products/:id/decrement
func (h *CartHandler) DecrementProduct(c *gin.Context) {
	ct, err := h.cartService.DecrementProduct(c.Request.Context(), middleware.GetSessionID(c), c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to update cart")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Cart item updated successfully",
		"data":    cartView(ct),
	})
}

// ToggleCart handles POST /cart/toggle
func (h *CartHandler) ToggleCart(c *gin.Context) {
	ct, err := h.cartService.Toggle(c.Request.Context(), middleware.GetSessionID(c))
	if err != nil {
		respondError(c, err, "Failed to update cart")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Cart toggled",
		"data":    cartView(ct),
	})
}

// ClearCart handles DELETE /cart
func (h *CartHandler) ClearCart(c *gin.Context) {
	ct, err := h.cartService.ClearCart(c.Request.Context(), middleware.GetSessionID(c))
	if err != nil {
		respondError(c, err, "Failed to clear cart")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Cart cleared successfully",
		"data":    cartView(ct),
	})
}

type lineView struct {
	cart.Line
	LineTotal        string `json:"line_total"`
	DisplayUnitPrice string `json:"display_unit_price"`
	DisplayLineTotal string `json:"display_line_total"`
}

func cartView(ct *cart.Cart) gin.H {
	lines := make([]lineView, len(ct.Items))
	for i, line := range ct.Items {
		total := line.LineTotal()
		lines[i] = lineView{
			Line:             line,
			LineTotal:        total.String(),
			DisplayUnitPrice: money.Format(line.UnitPrice),
			DisplayLineTotal: money.Format(total),
		}
	}

	totals := ct.Totals()
	return gin.H{
		"items":         lines,
		"open":          ct.Open,
		"totals":        totals,
		"display_total": money.Format(totals.TotalAmount),
	}
}
