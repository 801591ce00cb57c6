// internal/interfaces/http/handlers/menu.go
package handlers

import (
	"net/http"
	"strings"

	"github.com/cryai2821/pizza-wale-fe/internal/domain/menu"
	"github.com/cryai2821/pizza-wale-fe/internal/pkg/money"
	"github.com/gin-gonic/gin"
)

// MenuHandler handles catalog endpoints
type MenuHandler struct {
	menuService *menu.Service
}

// NewMenuHandler creates a new menu handler
func NewMenuHandler(menuService *menu.Service) *MenuHandler {
	return &MenuHandler{menuService: menuService}
}

// GetMenu handles GET /menu
func (h *MenuHandler) GetMenu(c *gin.Context) {
	catalog := h.menuService.GetMenu(c.Request.Context())

	products := catalog.Products
	if category := c.Query("category"); category != "" {
		products = catalog.ProductsInCategory(category)
	}
	if products == nil {
		products = []menu.Product{}
	}

	categories := catalog.Categories
	if categories == nil {
		categories = []menu.Category{}
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Menu retrieved successfully",
		"data": gin.H{
			"categories": categories,
			"products":   products,
		},
	})
}

// CustomizeProduct handles GET /menu/products/:id/customize. Without
// ?options it previews the default selection; with ?options=a,b it prices
// the given choices.
func (h *MenuHandler) CustomizeProduct(c *gin.Context) {
	catalog := h.menuService.GetMenu(c.Request.Context())

	product, ok := catalog.Product(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Product not found",
		})
		return
	}

	selection := menu.DefaultSelection(product)
	if raw := c.Query("options"); raw != "" {
		var err error
		selection, err = menu.SelectionFromIDs(product, strings.Split(raw, ","))
		if err != nil {
			respondError(c, err, "Invalid selection")
			return
		}
	}

	unitPrice := selection.UnitPrice(product)
	complete := selection.Validate(product) == nil

	c.JSON(http.StatusOK, gin.H{
		"message": "Product retrieved successfully",
		"data": gin.H{
			"product":       product,
			"customizable":  product.Customizable(),
			"selection":     selection,
			"options":       selection.Options(product),
			"unit_price":    unitPrice,
			"display_price": money.Format(unitPrice),
			"complete":      complete,
		},
	})
}
