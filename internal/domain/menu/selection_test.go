package menu

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultSelectionPrefersRegular(t *testing.T) {
	p1, _ := loadFixture(t).Product("p1")

	sel := DefaultSelection(p1)
	assert.Equal(t, []string{"o-regular"}, sel["g-size"])
	assert.NotContains(t, sel, "g-top")
}

func TestDefaultSelectionFallsBackToFirst(t *testing.T) {
	p := Product{ID: "p", OptionConfigs: []OptionConfig{{OptionGroup: OptionGroup{
		ID: "crust", MinSelection: 1, MaxSelection: 1,
		Options: []Option{{ID: "thin", Name: "Thin"}, {ID: "pan", Name: "Pan"}},
	}}}}

	assert.Equal(t, []string{"thin"}, DefaultSelection(p)["crust"])
}

func TestToggleExclusiveReplaces(t *testing.T) {
	p1, _ := loadFixture(t).Product("p1")
	size := p1.OptionConfigs[0].OptionGroup

	sel := DefaultSelection(p1)
	assert.True(t, sel.Toggle(size, "o-large"))
	assert.Equal(t, []string{"o-large"}, sel["g-size"])
}

func TestToggleMultiSelectRespectsMax(t *testing.T) {
	p1, _ := loadFixture(t).Product("p1")
	toppings := p1.OptionConfigs[1].OptionGroup

	sel := Selection{}
	assert.True(t, sel.Toggle(toppings, "o-cheese"))
	assert.True(t, sel.Toggle(toppings, "o-olive"))
	assert.False(t, sel.Toggle(toppings, "o-jalapeno"))
	assert.Equal(t, []string{"o-cheese", "o-olive"}, sel["g-top"])

	assert.True(t, sel.Toggle(toppings, "o-cheese"))
	assert.Equal(t, []string{"o-olive"}, sel["g-top"])
}

func TestBuildLineFlattensInGroupOrder(t *testing.T) {
	p1, _ := loadFixture(t).Product("p1")

	sel, err := SelectionFromIDs(p1, []string{"o-olive", "o-large", "o-cheese"})
	require.NoError(t, err)

	line, err := BuildLine(p1, sel, 2)
	require.NoError(t, err)

	assert.Equal(t, []string{"o-large", "o-olive", "o-cheese"}, line.OptionIDs())
	assert.Equal(t, "Size", line.SelectedOptions[0].GroupName)
	// 199 + 150 + 30 + 40
	assert.True(t, line.UnitPrice.Equal(decimal.NewFromInt(419)), "unit %s", line.UnitPrice)
	assert.True(t, line.LineTotal().Equal(decimal.NewFromInt(838)))
	assert.True(t, sel.UnitPrice(p1).Equal(line.UnitPrice))
}

func TestBuildLineRequiresGroups(t *testing.T) {
	p1, _ := loadFixture(t).Product("p1")

	_, err := BuildLine(p1, Selection{}, 1)
	assert.ErrorIs(t, err, ErrRequiredOptions)
	assert.True(t, IsValidation(err))
}

func TestBuildLineRejectsUnavailable(t *testing.T) {
	p3, _ := loadFixture(t).Product("p3")

	_, err := BuildLine(p3, Selection{}, 1)
	assert.ErrorIs(t, err, ErrProductUnavailable)
}

func TestBuildLineRejectsZeroQuantity(t *testing.T) {
	p2, _ := loadFixture(t).Product("p2")

	_, err := BuildLine(p2, Selection{}, 0)
	assert.ErrorIs(t, err, ErrInvalidQuantity)
}

func TestSelectionFromIDsErrors(t *testing.T) {
	p1, _ := loadFixture(t).Product("p1")

	_, err := SelectionFromIDs(p1, []string{"nope"})
	assert.ErrorIs(t, err, ErrUnknownOption)

	_, err = SelectionFromIDs(p1, []string{"o-cheese", "o-olive", "o-jalapeno"})
	assert.ErrorIs(t, err, ErrTooManyOptions)
}
