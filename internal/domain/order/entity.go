// internal/domain/order/entity.go
package order

import (
	"time"

	"github.com/cryai2821/pizza-wale-fe/internal/domain/cart"
	"github.com/shopspring/decimal"
)

// OrderStatus represents the order status
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "PENDING"
	OrderStatusConfirmed OrderStatus = "CONFIRMED"
	OrderStatusPreparing OrderStatus = "PREPARING"
	OrderStatusReady     OrderStatus = "READY"
	OrderStatusCompleted OrderStatus = "COMPLETED"
	OrderStatusCancelled OrderStatus = "CANCELLED"
)

// progression is the happy path shown in the status stepper
var progression = []struct {
	status OrderStatus
	label  string
}{
	{OrderStatusPending, "Pending"},
	{OrderStatusConfirmed, "Confirmed"},
	{OrderStatusPreparing, "Preparing"},
	{OrderStatusReady, "Ready"},
	{OrderStatusCompleted, "Completed"},
}

// IsValid reports whether the status is one of the known statuses
func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusPending, OrderStatusConfirmed, OrderStatusPreparing,
		OrderStatusReady, OrderStatusCompleted, OrderStatusCancelled:
		return true
	}
	return false
}

// IsTerminal reports whether no further status change is expected
func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusCompleted || s == OrderStatusCancelled
}

// ShopRef is the shop an order was placed with
type ShopRef struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Address string `json:"address,omitempty"`
}

// ProductRef is the product an order line refers to
type ProductRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// OptionRef names a purchased option
type OptionRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// ItemOption is an option actually purchased on an order line
type ItemOption struct {
	ID       string          `json:"id"`
	OptionID string          `json:"optionId,omitempty"`
	Price    decimal.Decimal `json:"price"`
	Option   *OptionRef      `json:"option,omitempty"`
}

// Name returns the option's display name
func (o ItemOption) Name() string {
	if o.Option != nil {
		return o.Option.Name
	}
	return ""
}

// Item is one line of an order
type Item struct {
	ID              string          `json:"id"`
	ProductID       string          `json:"productId"`
	Product         *ProductRef     `json:"product,omitempty"`
	Quantity        int             `json:"quantity"`
	Price           decimal.Decimal `json:"price"`
	SelectedOptions []ItemOption    `json:"selectedOptions"`
}

// Name returns the product name, or a generic label when it is missing
func (i Item) Name() string {
	if i.Product != nil && i.Product.Name != "" {
		return i.Product.Name
	}
	return "Product"
}

// LineTotal returns unit price times quantity
func (i Item) LineTotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Order represents an order as returned by the commerce API
type Order struct {
	ID          string          `json:"id"`
	ShortID     string          `json:"shortId"`
	Status      OrderStatus     `json:"status"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
	ShopID      string          `json:"shopId"`
	Shop        *ShopRef        `json:"shop,omitempty"`
	GuestPhone  string          `json:"guestPhone,omitempty"`
	Items       []Item          `json:"items"`
}

// ShopName returns the shop name, falling back to the given default
func (o Order) ShopName(fallback string) string {
	if o.Shop != nil && o.Shop.Name != "" {
		return o.Shop.Name
	}
	return fallback
}

// Step is one stage of the status stepper
type Step struct {
	Status  OrderStatus `json:"status"`
	Label   string      `json:"label"`
	Active  bool        `json:"active"`
	Current bool        `json:"current"`
}

// Steps returns the stepper for the order. Cancelled orders have no steps.
func (o Order) Steps() []Step {
	if o.Status == OrderStatusCancelled {
		return nil
	}

	current := o.stepIndex()
	steps := make([]Step, len(progression))
	for i, p := range progression {
		steps[i] = Step{
			Status:  p.status,
			Label:   p.label,
			Active:  i <= current,
			Current: i == current,
		}
	}
	return steps
}

// Progress is the completed fraction of the stepper, 0 to 1
func (o Order) Progress() float64 {
	idx := o.stepIndex()
	if idx < 0 {
		return 0
	}
	return float64(idx) / float64(len(progression)-1)
}

func (o Order) stepIndex() int {
	for i, p := range progression {
		if p.status == o.Status {
			return i
		}
	}
	return -1
}

// OptionSelection identifies one chosen option in an order request
type OptionSelection struct {
	OptionID string `json:"optionId"`
}

// CreateOrderItem is one requested line. Prices are never sent.
type CreateOrderItem struct {
	ProductID string            `json:"productId"`
	Quantity  int               `json:"quantity"`
	Options   []OptionSelection `json:"options"`
}

// CreateOrderRequest represents the order creation payload
type CreateOrderRequest struct {
	ShopID string            `json:"shopId"`
	Items  []CreateOrderItem `json:"items"`
}

// NewCreateOrderRequest translates cart lines into an order request
func NewCreateOrderRequest(shopID string, lines []cart.Line) CreateOrderRequest {
	items := make([]CreateOrderItem, len(lines))
	for i, line := range lines {
		options := make([]OptionSelection, len(line.SelectedOptions))
		for j, opt := range line.SelectedOptions {
			options[j] = OptionSelection{OptionID: opt.OptionID}
		}
		items[i] = CreateOrderItem{
			ProductID: line.ProductID,
			Quantity:  line.Quantity,
			Options:   options,
		}
	}

	return CreateOrderRequest{ShopID: shopID, Items: items}
}
