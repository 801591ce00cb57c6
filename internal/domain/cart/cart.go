// internal/domain/cart/cart.go
package cart

import (
	"slices"

	"github.com/shopspring/decimal"
)

// Cart holds the selected lines of one shopper. It is a plain state
// container: persistence happens in Service, not here.
type Cart struct {
	Items []Line `json:"items"`

	// Open is the drawer flag. UI state only, never persisted.
	Open bool `json:"-"`

	identity Identity
}

// New creates an empty cart using the given line identity
func New(identity Identity) *Cart {
	return &Cart{
		Items:    []Line{},
		identity: identity,
	}
}

// Identity returns the line identity the cart merges with
func (c *Cart) Identity() Identity {
	return c.identity
}

// Add merges line into an existing line with the same identity by summing
// quantities, or appends it. Adding always opens the drawer.
func (c *Cart) Add(line Line) {
	c.Open = true

	if idx := c.find(line.ProductID, line.SelectedOptions); idx >= 0 {
		c.Items[idx].Quantity += line.Quantity
		return
	}

	line.SelectedOptions = append([]SelectedOption(nil), line.SelectedOptions...)
	c.Items = append(c.Items, line)
}

// Remove deletes the matching line; no-op when nothing matches
func (c *Cart) Remove(productID string, options []SelectedOption) {
	idx := c.find(productID, options)
	if idx < 0 {
		return
	}
	c.Items = append(c.Items[:idx], c.Items[idx+1:]...)
}

// UpdateQuantity sets the matching line's quantity verbatim. Callers remove
// the line instead of setting a quantity below 1.
func (c *Cart) UpdateQuantity(productID string, options []SelectedOption, quantity int) {
	if idx := c.find(productID, options); idx >= 0 {
		c.Items[idx].Quantity = quantity
	}
}

// DecrementLatest lowers the quantity of the most recently added line of a
// product, removing it when it would drop below 1. Returns false when the
// product is not in the cart.
func (c *Cart) DecrementLatest(productID string) bool {
	for i := len(c.Items) - 1; i >= 0; i-- {
		if c.Items[i].ProductID != productID {
			continue
		}
		if c.Items[i].Quantity > 1 {
			c.Items[i].Quantity--
		} else {
			c.Items = append(c.Items[:i], c.Items[i+1:]...)
		}
		return true
	}
	return false
}

// Clear empties the line list
func (c *Cart) Clear() {
	c.Items = []Line{}
}

// Toggle flips the drawer flag
func (c *Cart) Toggle() {
	c.Open = !c.Open
}

// LineByOptionIDs finds a line from product and option ids alone, comparing
// the ids the way the cart's identity does
func (c *Cart) LineByOptionIDs(productID string, optionIDs []string) (Line, bool) {
	probe := make([]SelectedOption, len(optionIDs))
	for i, id := range optionIDs {
		probe[i] = SelectedOption{OptionID: id}
	}
	want := CanonicalKey(productID, probe)

	for _, line := range c.Items {
		if line.ProductID != productID || len(line.SelectedOptions) != len(optionIDs) {
			continue
		}
		if c.identity == Ordered {
			if slices.Equal(line.OptionIDs(), optionIDs) {
				return line, true
			}
			continue
		}
		if CanonicalKey(line.ProductID, line.SelectedOptions) == want {
			return line, true
		}
	}
	return Line{}, false
}

// Total is the sum over lines of unit price times quantity
func (c *Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, line := range c.Items {
		total = total.Add(line.LineTotal())
	}
	return total
}

// ItemCount is the sum of quantities across all lines
func (c *Cart) ItemCount() int {
	count := 0
	for _, line := range c.Items {
		count += line.Quantity
	}
	return count
}

// QuantityOf sums quantities of every line of a product, whatever its options
func (c *Cart) QuantityOf(productID string) int {
	count := 0
	for _, line := range c.Items {
		if line.ProductID == productID {
			count += line.Quantity
		}
	}
	return count
}

// IsEmpty reports whether the cart has no lines
func (c *Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

// Totals calculates the cart summary
func (c *Cart) Totals() Totals {
	subTotal := c.Total()
	return Totals{
		ItemCount:     len(c.Items),
		TotalQuantity: c.ItemCount(),
		SubTotal:      subTotal,
		TaxAmount:     decimal.Zero,
		TotalAmount:   subTotal,
	}
}

func (c *Cart) find(productID string, options []SelectedOption) int {
	for i, line := range c.Items {
		if c.identity.Same(line.ProductID, line.SelectedOptions, productID, options) {
			return i
		}
	}
	return -1
}
