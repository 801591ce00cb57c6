package order

import (
	"encoding/json"
	"testing"

	"github.com/cryai2821/pizza-wale-fe/internal/domain/cart"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCreateOrderRequestSendsNoPrices(t *testing.T) {
	lines := []cart.Line{
		cart.NewLine("p1", "Margherita", decimal.NewFromInt(200), 3, nil),
		cart.NewLine("p2", "Farmhouse", decimal.NewFromInt(300), 2, []cart.SelectedOption{
			{OptionID: "o1", Name: "Extra Cheese", Price: decimal.NewFromInt(50)},
		}),
	}

	req := NewCreateOrderRequest("shop-1", lines)

	data, err := json.Marshal(req)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"shopId": "shop-1",
		"items": [
			{"productId": "p1", "quantity": 3, "options": []},
			{"productId": "p2", "quantity": 2, "options": [{"optionId": "o1"}]}
		]
	}`, string(data))
}

func TestOrderDecodesCommercePayload(t *testing.T) {
	payload := `{
		"id": "ord-1",
		"shortId": "PW-1042",
		"status": "CONFIRMED",
		"createdAt": "2026-01-01T10:00:00Z",
		"updatedAt": "2026-01-01T10:01:00Z",
		"totalAmount": "700.00",
		"shopId": "shop-1",
		"shop": {"id": "shop-1", "name": "Pizza Wale Store"},
		"guestPhone": "+919999999999",
		"items": [{
			"id": "it-1", "productId": "p2", "quantity": 2, "price": 350,
			"product": {"id": "p2", "name": "Farmhouse"},
			"selectedOptions": [{"id": "so-1", "price": "50", "option": {"id": "o1", "name": "Extra Cheese"}}]
		}]
	}`

	var o Order
	require.NoError(t, json.Unmarshal([]byte(payload), &o))

	assert.Equal(t, OrderStatusConfirmed, o.Status)
	assert.True(t, o.TotalAmount.Equal(decimal.NewFromInt(700)))
	require.Len(t, o.Items, 1)
	assert.Equal(t, "Farmhouse", o.Items[0].Name())
	assert.True(t, o.Items[0].LineTotal().Equal(decimal.NewFromInt(700)))
	assert.Equal(t, "Extra Cheese", o.Items[0].SelectedOptions[0].Name())
	assert.Equal(t, "Pizza Wale Store", o.ShopName("fallback"))
}

func TestItemNameFallback(t *testing.T) {
	assert.Equal(t, "Product", Item{}.Name())
	assert.Equal(t, "Pizza Wale Store", Order{}.ShopName("Pizza Wale Store"))
}

func TestStatusValidity(t *testing.T) {
	assert.True(t, OrderStatusPreparing.IsValid())
	assert.False(t, OrderStatus("SHIPPED").IsValid())
	assert.False(t, OrderStatus("preparing").IsValid())
	assert.True(t, OrderStatusCancelled.IsTerminal())
	assert.False(t, OrderStatusReady.IsTerminal())
}

func TestSteps(t *testing.T) {
	o := Order{Status: OrderStatusPreparing}

	steps := o.Steps()
	require.Len(t, steps, 5)
	assert.True(t, steps[0].Active)
	assert.True(t, steps[2].Active)
	assert.True(t, steps[2].Current)
	assert.False(t, steps[3].Active)
	assert.InDelta(t, 0.5, o.Progress(), 1e-9)

	assert.InDelta(t, 1.0, Order{Status: OrderStatusCompleted}.Progress(), 1e-9)
	assert.Nil(t, Order{Status: OrderStatusCancelled}.Steps())
	assert.Zero(t, Order{Status: OrderStatusCancelled}.Progress())
}
