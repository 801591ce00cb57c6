// internal/domain/menu/selection.go
package menu

import (
	"errors"
	"strings"

	"github.com/cryai2821/pizza-wale-fe/internal/domain/cart"
	"github.com/shopspring/decimal"
)

// ValidationError is a selection problem caught before anything is added
type ValidationError struct {
	message string
}

func (e ValidationError) Error() string { return e.message }

// IsValidation reports whether err is a ValidationError
func IsValidation(err error) bool {
	var v ValidationError
	return errors.As(err, &v)
}

var (
	ErrRequiredOptions    = ValidationError{message: "Please select all required options"}
	ErrProductUnavailable = ValidationError{message: "This item is currently unavailable"}
	ErrUnknownOption      = ValidationError{message: "Selected option is not available for this item"}
	ErrTooManyOptions     = ValidationError{message: "Too many options selected"}
	ErrInvalidQuantity    = ValidationError{message: "Quantity must be at least 1"}
)

// Selection maps an option group id to the chosen option ids, in the order
// they were chosen
type Selection map[string][]string

// DefaultSelection pre-selects every exclusive group: the option whose name
// contains "regular", otherwise the first one
func DefaultSelection(p Product) Selection {
	sel := Selection{}
	for _, group := range p.Groups() {
		if !group.Exclusive() || len(group.Options) == 0 {
			continue
		}

		chosen := group.Options[0]
		for _, opt := range group.Options {
			if strings.Contains(strings.ToLower(opt.Name), "regular") {
				chosen = opt
				break
			}
		}
		sel[group.ID] = []string{chosen.ID}
	}
	return sel
}

// Toggle applies one click on an option. Single-choice groups replace the
// current choice; multi-select groups toggle, refusing to go past the max.
// Returns false when the click was refused.
func (s Selection) Toggle(group OptionGroup, optionID string) bool {
	current := s[group.ID]

	if group.MaxSelection == 1 {
		s[group.ID] = []string{optionID}
		return true
	}

	for i, id := range current {
		if id == optionID {
			s[group.ID] = append(current[:i:i], current[i+1:]...)
			return true
		}
	}

	if len(current) >= group.MaxSelection {
		return false
	}
	s[group.ID] = append(current, optionID)
	return true
}

// SelectionFromIDs assigns each option id to the product group that owns it.
// Ids are applied in the given order with Toggle semantics, except that
// overflowing a group's max is an error rather than ignored.
func SelectionFromIDs(p Product, optionIDs []string) (Selection, error) {
	sel := Selection{}

	for _, optID := range optionIDs {
		group, ok := groupOf(p, optID)
		if !ok {
			return nil, ErrUnknownOption
		}
		if !sel.Toggle(group, optID) {
			return nil, ErrTooManyOptions
		}
	}
	return sel, nil
}

// Validate checks every group has at least its minimum number of choices
func (s Selection) Validate(p Product) error {
	for _, group := range p.Groups() {
		if len(s[group.ID]) < group.MinSelection {
			return ErrRequiredOptions
		}
	}
	return nil
}

// Options flattens the selection in group order, then selection order
func (s Selection) Options(p Product) []cart.SelectedOption {
	var flat []cart.SelectedOption
	for _, group := range p.Groups() {
		for _, optID := range s[group.ID] {
			opt, ok := group.Option(optID)
			if !ok {
				continue
			}
			flat = append(flat, cart.SelectedOption{
				OptionID:  opt.ID,
				Name:      opt.Name,
				Price:     opt.Price,
				GroupName: group.Name,
			})
		}
	}
	return flat
}

// UnitPrice is the base price plus the price of every selected option
func (s Selection) UnitPrice(p Product) decimal.Decimal {
	unit := p.BasePrice
	for _, opt := range s.Options(p) {
		unit = unit.Add(opt.Price)
	}
	return unit
}

// BuildLine validates the selection and turns it into a cart line
func BuildLine(p Product, sel Selection, quantity int) (cart.Line, error) {
	if !p.IsAvailable {
		return cart.Line{}, ErrProductUnavailable
	}
	if quantity < 1 {
		return cart.Line{}, ErrInvalidQuantity
	}
	if err := sel.Validate(p); err != nil {
		return cart.Line{}, err
	}

	return cart.NewLine(p.ID, p.Name, p.BasePrice, quantity, sel.Options(p)), nil
}

func groupOf(p Product, optionID string) (OptionGroup, bool) {
	for _, group := range p.Groups() {
		if _, ok := group.Option(optionID); ok {
			return group, true
		}
	}
	return OptionGroup{}, false
}
