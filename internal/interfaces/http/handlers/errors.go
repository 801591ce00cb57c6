// internal/interfaces/http/handlers/errors.go
package handlers

import (
	"errors"
	"net/http"

	"github.com/cryai2821/pizza-wale-fe/internal/domain/cart"
	"github.com/cryai2821/pizza-wale-fe/internal/domain/identity"
	"github.com/cryai2821/pizza-wale-fe/internal/domain/menu"
	"github.com/cryai2821/pizza-wale-fe/internal/domain/order"
	"github.com/cryai2821/pizza-wale-fe/internal/infrastructure/commerce"
	"github.com/gin-gonic/gin"
)

// respondError maps a domain or commerce API error onto the JSON error
// envelope. fallback is shown when the commerce API gave no message.
func respondError(c *gin.Context, err error, fallback string) {
	var apiErr *commerce.APIError

	switch {
	case identity.IsValidation(err), menu.IsValidation(err):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, cart.ErrInvalidQuantity), errors.Is(err, order.ErrEmptyCart):
		c.JSON(http.StatusBadRequest, gin.H{"error": capitalize(err.Error())})
	case errors.Is(err, cart.ErrProductNotInCart):
		c.JSON(http.StatusNotFound, gin.H{"error": capitalize(err.Error())})
	case errors.Is(err, order.ErrNotAuthenticated), commerce.IsUnauthorized(err):
		c.JSON(http.StatusUnauthorized, gin.H{"error": commerce.Message(err, "Authentication required")})
	case commerce.IsNotFound(err):
		c.JSON(http.StatusNotFound, gin.H{"error": commerce.Message(err, "Not found")})
	case errors.As(err, &apiErr):
		status := http.StatusBadGateway
		if apiErr.StatusCode >= 400 && apiErr.StatusCode < 500 {
			status = apiErr.StatusCode
		}
		c.JSON(status, gin.H{"error": commerce.Message(err, fallback)})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": fallback})
	}
}

// bindError answers a malformed request body
func bindError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{
		"error":   "Invalid request data",
		"details": err.Error(),
	})
}

func capitalize(s string) string {
	if s == "" || s[0] < 'a' || s[0] > 'z' {
		return s
	}
	return string(s[0]-'a'+'A') + s[1:]
}
