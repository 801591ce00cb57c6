// internal/domain/cart/entity.go
package cart

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"
)

// SelectedOption is a chosen product option, copied out of the catalog so a
// cart line can be rendered without re-fetching the menu
type SelectedOption struct {
	OptionID  string          `json:"option_id"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	GroupName string          `json:"group_name,omitempty"`
}

// Line is one distinct product + option selection in the cart
type Line struct {
	ProductID       string           `json:"product_id"`
	Name            string           `json:"name"`
	BasePrice       decimal.Decimal  `json:"base_price"`
	Quantity        int              `json:"quantity"`
	SelectedOptions []SelectedOption `json:"selected_options"`
	UnitPrice       decimal.Decimal  `json:"unit_price"` // base + options, per unit
}

// NewLine builds a line with its per-unit price precomputed
func NewLine(productID, name string, basePrice decimal.Decimal, quantity int, options []SelectedOption) Line {
	unit := basePrice
	for _, opt := range options {
		unit = unit.Add(opt.Price)
	}

	return Line{
		ProductID:       productID,
		Name:            name,
		BasePrice:       basePrice,
		Quantity:        quantity,
		SelectedOptions: append([]SelectedOption(nil), options...),
		UnitPrice:       unit,
	}
}

// LineTotal returns unit price times quantity
func (l Line) LineTotal() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// OptionIDs returns the selected option ids in selection order
func (l Line) OptionIDs() []string {
	ids := make([]string, len(l.SelectedOptions))
	for i, opt := range l.SelectedOptions {
		ids[i] = opt.OptionID
	}
	return ids
}

// Identity decides when two lines describe the same product + selection
type Identity int

const (
	// Canonical ignores the order in which options were selected
	Canonical Identity = iota
	// Ordered compares option lists element by element, in order
	Ordered
)

// ParseIdentity maps a config value to an Identity. Unknown values fall back
// to Canonical.
func ParseIdentity(s string) Identity {
	if strings.EqualFold(s, "ordered") {
		return Ordered
	}
	return Canonical
}

// String implements fmt.Stringer
func (i Identity) String() string {
	if i == Ordered {
		return "ordered"
	}
	return "canonical"
}

// Same reports whether (productA, optsA) and (productB, optsB) are one line
func (i Identity) Same(productA string, optsA []SelectedOption, productB string, optsB []SelectedOption) bool {
	if productA != productB || len(optsA) != len(optsB) {
		return false
	}

	if i == Ordered {
		for idx := range optsA {
			if !sameOption(optsA[idx], optsB[idx]) {
				return false
			}
		}
		return true
	}

	return CanonicalKey(productA, optsA) == CanonicalKey(productB, optsB)
}

// CanonicalKey renders product id plus sorted option ids, e.g. "p1|o1,o3"
func CanonicalKey(productID string, options []SelectedOption) string {
	ids := make([]string, len(options))
	for i, opt := range options {
		ids[i] = opt.OptionID
	}
	sort.Strings(ids)
	return productID + "|" + strings.Join(ids, ",")
}

func sameOption(a, b SelectedOption) bool {
	return a.OptionID == b.OptionID &&
		a.Name == b.Name &&
		a.GroupName == b.GroupName &&
		a.Price.Equal(b.Price)
}

// Totals represents calculated cart totals
type Totals struct {
	ItemCount     int             `json:"item_count"`     // Number of distinct lines
	TotalQuantity int             `json:"total_quantity"` // Sum of all quantities
	SubTotal      decimal.Decimal `json:"sub_total"`
	TaxAmount     decimal.Decimal `json:"tax_amount"` // Taxes & fees are included in menu prices
	TotalAmount   decimal.Decimal `json:"total_amount"`
}
