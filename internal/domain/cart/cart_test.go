package cart

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rupees(v int64) decimal.Decimal {
	return decimal.NewFromInt(v)
}

var (
	extraCheese = SelectedOption{OptionID: "o1", Name: "Extra Cheese", Price: rupees(50), GroupName: "Toppings"}
	olives      = SelectedOption{OptionID: "o2", Name: "Olives", Price: rupees(30), GroupName: "Toppings"}
)

func TestAddMergesIdenticalLines(t *testing.T) {
	c := New(Canonical)

	c.Add(NewLine("p1", "Margherita", rupees(200), 1, nil))
	assert.True(t, c.Total().Equal(rupees(200)))

	c.Add(NewLine("p1", "Margherita", rupees(200), 2, nil))

	require.Len(t, c.Items, 1)
	assert.Equal(t, 3, c.Items[0].Quantity)
	assert.True(t, c.Total().Equal(rupees(600)), "total %s", c.Total())
}

func TestAddWithOptionsAndOverallTotal(t *testing.T) {
	c := New(Canonical)
	c.Add(NewLine("p1", "Margherita", rupees(200), 3, nil))

	c.Add(NewLine("p2", "Farmhouse", rupees(300), 2, []SelectedOption{extraCheese}))

	line, ok := c.LineByOptionIDs("p2", []string{extraCheese.OptionID})
	require.True(t, ok)
	assert.True(t, line.UnitPrice.Equal(rupees(350)))
	assert.True(t, line.LineTotal().Equal(rupees(700)))
	assert.True(t, c.Total().Equal(rupees(1300)))
	assert.Equal(t, 5, c.ItemCount())
}

func TestAddDistinctLinesPreservesOrder(t *testing.T) {
	c := New(Canonical)

	c.Add(NewLine("p1", "A", rupees(100), 1, nil))
	c.Add(NewLine("p1", "A", rupees(100), 1, []SelectedOption{extraCheese}))
	c.Add(NewLine("p2", "B", rupees(150), 1, nil))
	c.Add(NewLine("p1", "A", rupees(100), 1, []SelectedOption{extraCheese, olives}))

	require.Len(t, c.Items, 4)
	assert.Equal(t, "p1", c.Items[0].ProductID)
	assert.Empty(t, c.Items[0].SelectedOptions)
	assert.Equal(t, []string{"o1"}, c.Items[1].OptionIDs())
	assert.Equal(t, "p2", c.Items[2].ProductID)
	assert.Equal(t, []string{"o1", "o2"}, c.Items[3].OptionIDs())
}

func TestAddOpensDrawer(t *testing.T) {
	c := New(Canonical)
	assert.False(t, c.Open)

	c.Add(NewLine("p1", "A", rupees(100), 1, nil))
	assert.True(t, c.Open)

	c.Toggle()
	assert.False(t, c.Open)
}

func TestQuantityChangeMovesTotalByUnitPrice(t *testing.T) {
	c := New(Canonical)
	c.Add(NewLine("p1", "A", rupees(200), 1, nil))
	c.Add(NewLine("p2", "B", rupees(300), 2, []SelectedOption{extraCheese}))

	before := c.Total()
	c.UpdateQuantity("p2", []SelectedOption{extraCheese}, 5)
	after := c.Total()

	assert.True(t, after.Sub(before).Equal(rupees(350).Mul(rupees(3))))
}

func TestUpdateQuantityIsVerbatim(t *testing.T) {
	c := New(Canonical)
	c.Add(NewLine("p1", "A", rupees(200), 2, nil))

	c.UpdateQuantity("p1", nil, 0)
	require.Len(t, c.Items, 1)
	assert.Equal(t, 0, c.Items[0].Quantity)

	c.UpdateQuantity("missing", nil, 4)
	assert.Equal(t, 0, c.Items[0].Quantity)
}

func TestRemoveThenAddStartsFresh(t *testing.T) {
	c := New(Canonical)
	c.Add(NewLine("p1", "A", rupees(200), 4, nil))

	c.Remove("p1", nil)
	assert.True(t, c.IsEmpty())

	c.Add(NewLine("p1", "A", rupees(200), 1, nil))
	require.Len(t, c.Items, 1)
	assert.Equal(t, 1, c.Items[0].Quantity)
}

func TestRemoveMissingIsNoop(t *testing.T) {
	c := New(Canonical)
	c.Add(NewLine("p1", "A", rupees(200), 1, nil))

	c.Remove("p1", []SelectedOption{extraCheese})
	assert.Len(t, c.Items, 1)
}

func TestClear(t *testing.T) {
	c := New(Canonical)
	c.Add(NewLine("p1", "A", rupees(200), 1, nil))
	c.Add(NewLine("p2", "B", rupees(200), 1, nil))

	c.Clear()
	assert.True(t, c.IsEmpty())
	assert.True(t, c.Total().IsZero())
}

func TestCanonicalIdentityIgnoresOptionOrder(t *testing.T) {
	c := New(Canonical)
	c.Add(NewLine("p1", "A", rupees(100), 1, []SelectedOption{extraCheese, olives}))
	c.Add(NewLine("p1", "A", rupees(100), 2, []SelectedOption{olives, extraCheese}))

	require.Len(t, c.Items, 1)
	assert.Equal(t, 3, c.Items[0].Quantity)
}

func TestOrderedIdentityDuplicatesOnReorder(t *testing.T) {
	c := New(Ordered)
	c.Add(NewLine("p1", "A", rupees(100), 1, []SelectedOption{extraCheese, olives}))
	c.Add(NewLine("p1", "A", rupees(100), 2, []SelectedOption{olives, extraCheese}))

	require.Len(t, c.Items, 2)

	c.Add(NewLine("p1", "A", rupees(100), 1, []SelectedOption{olives, extraCheese}))
	require.Len(t, c.Items, 2)
	assert.Equal(t, 3, c.Items[1].Quantity)
}

func TestOrderedIdentityComparesValues(t *testing.T) {
	repriced := extraCheese
	repriced.Price = rupees(60)

	assert.True(t, Ordered.Same("p1", []SelectedOption{extraCheese}, "p1", []SelectedOption{extraCheese}))
	assert.False(t, Ordered.Same("p1", []SelectedOption{extraCheese}, "p1", []SelectedOption{repriced}))
	assert.True(t, Canonical.Same("p1", []SelectedOption{extraCheese}, "p1", []SelectedOption{repriced}))
}

func TestCanonicalKey(t *testing.T) {
	assert.Equal(t, "p1|o1,o2", CanonicalKey("p1", []SelectedOption{olives, extraCheese}))
	assert.Equal(t, "p1|", CanonicalKey("p1", nil))
}

func TestParseIdentity(t *testing.T) {
	assert.Equal(t, Ordered, ParseIdentity("ORDERED"))
	assert.Equal(t, Canonical, ParseIdentity("canonical"))
	assert.Equal(t, Canonical, ParseIdentity(""))
	assert.Equal(t, "ordered", Ordered.String())
}

func TestDecrementLatest(t *testing.T) {
	c := New(Canonical)
	c.Add(NewLine("p1", "A", rupees(100), 2, nil))
	c.Add(NewLine("p1", "A", rupees(100), 1, []SelectedOption{extraCheese}))

	assert.Equal(t, 3, c.QuantityOf("p1"))

	require.True(t, c.DecrementLatest("p1"))
	require.Len(t, c.Items, 1)
	assert.Equal(t, 2, c.Items[0].Quantity)

	require.True(t, c.DecrementLatest("p1"))
	assert.Equal(t, 1, c.Items[0].Quantity)

	assert.False(t, c.DecrementLatest("p9"))
}

func TestAddCopiesOptions(t *testing.T) {
	c := New(Canonical)
	opts := []SelectedOption{extraCheese}
	c.Add(NewLine("p1", "A", rupees(100), 1, opts))

	opts[0].Name = "changed"
	assert.Equal(t, "Extra Cheese", c.Items[0].SelectedOptions[0].Name)
}

func TestTotals(t *testing.T) {
	c := New(Canonical)
	c.Add(NewLine("p1", "A", rupees(200), 3, nil))
	c.Add(NewLine("p2", "B", rupees(300), 2, []SelectedOption{extraCheese}))

	totals := c.Totals()
	assert.Equal(t, 2, totals.ItemCount)
	assert.Equal(t, 5, totals.TotalQuantity)
	assert.True(t, totals.SubTotal.Equal(rupees(1300)))
	assert.True(t, totals.TotalAmount.Equal(rupees(1300)))
	assert.True(t, totals.TaxAmount.IsZero())
}

func TestLineByOptionIDs(t *testing.T) {
	c := New(Canonical)
	c.Add(NewLine("p1", "A", rupees(100), 1, []SelectedOption{extraCheese, olives}))

	line, ok := c.LineByOptionIDs("p1", []string{"o2", "o1"})
	require.True(t, ok)
	assert.Equal(t, []string{"o1", "o2"}, line.OptionIDs())

	_, ok = c.LineByOptionIDs("p1", []string{"o1"})
	assert.False(t, ok)

	ordered := New(Ordered)
	ordered.Add(NewLine("p1", "A", rupees(100), 1, []SelectedOption{extraCheese, olives}))
	_, ok = ordered.LineByOptionIDs("p1", []string{"o2", "o1"})
	assert.False(t, ok)
	_, ok = ordered.LineByOptionIDs("p1", []string{"o1", "o2"})
	assert.True(t, ok)
}
