package order

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/cryai2821/pizza-wale-fe/internal/config"
	"github.com/cryai2821/pizza-wale-fe/internal/domain/cart"
	"github.com/cryai2821/pizza-wale-fe/internal/infrastructure/state"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeGateway struct {
	createErr error
	requests  []CreateOrderRequest
	tokens    []string
	orders    []Order
}

func (f *fakeGateway) CreateOrder(ctx context.Context, token string, req CreateOrderRequest) (*Order, error) {
	f.tokens = append(f.tokens, token)
	f.requests = append(f.requests, req)
	if f.createErr != nil {
		return nil, f.createErr
	}
	return &Order{ID: "ord-1", ShortID: "PW-1", Status: OrderStatusPending, ShopID: req.ShopID}, nil
}

func (f *fakeGateway) MyOrders(ctx context.Context, token string) ([]Order, error) {
	f.tokens = append(f.tokens, token)
	return f.orders, nil
}

func (f *fakeGateway) GetOrder(ctx context.Context, token, orderID string) (*Order, error) {
	f.tokens = append(f.tokens, token)
	return &Order{ID: orderID}, nil
}

// flakyStore fails the next failPuts writes, then delegates
type flakyStore struct {
	state.Store
	failPuts int
}

func (f *flakyStore) Put(ctx context.Context, sessionID, kind string, payload []byte) error {
	if f.failPuts > 0 {
		f.failPuts--
		return errors.New("redis down")
	}
	return f.Store.Put(ctx, sessionID, kind, payload)
}

func setupOrderService(t *testing.T, gw *fakeGateway) (*Service, *cart.Service) {
	t.Helper()
	svc, carts, _ := setupOrderServiceWithStore(t, gw)
	return svc, carts
}

func setupOrderServiceWithStore(t *testing.T, gw *fakeGateway) (*Service, *cart.Service, *flakyStore) {
	t.Helper()

	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)

	store := &flakyStore{Store: state.NewRedisStore(client, "storefront", time.Hour)}
	carts := cart.NewService(store, state.NewSessionLocks(), cart.Canonical, time.Hour, logger)
	cfg := &config.Config{Shop: config.ShopConfig{ID: "shop-1"}}

	return NewService(gw, carts, cfg, logger), carts, store
}

func fillCart(t *testing.T, carts *cart.Service) {
	t.Helper()
	ctx := context.Background()

	_, err := carts.AddItem(ctx, "s1", cart.NewLine("p1", "Margherita", decimal.NewFromInt(200), 3, nil))
	require.NoError(t, err)
	_, err = carts.AddItem(ctx, "s1", cart.NewLine("p2", "Farmhouse", decimal.NewFromInt(300), 2, []cart.SelectedOption{
		{OptionID: "o1", Name: "Extra Cheese", Price: decimal.NewFromInt(50)},
	}))
	require.NoError(t, err)
}

func TestCheckoutClearsCartOnSuccess(t *testing.T) {
	gw := &fakeGateway{}
	svc, carts := setupOrderService(t, gw)
	fillCart(t, carts)
	ctx := context.Background()

	placed, err := svc.Checkout(ctx, "s1", "tok")
	require.NoError(t, err)
	assert.Equal(t, "ord-1", placed.ID)

	require.Len(t, gw.requests, 1)
	req := gw.requests[0]
	assert.Equal(t, "shop-1", req.ShopID)
	require.Len(t, req.Items, 2)
	assert.Equal(t, []OptionSelection{{OptionID: "o1"}}, req.Items[1].Options)
	assert.Equal(t, []string{"tok"}, gw.tokens)

	c, err := carts.Get(ctx, "s1")
	require.NoError(t, err)
	assert.True(t, c.IsEmpty())
}

func TestCheckoutPreservesCartOnFailure(t *testing.T) {
	gw := &fakeGateway{createErr: errors.New("shop closed")}
	svc, carts := setupOrderService(t, gw)
	fillCart(t, carts)
	ctx := context.Background()

	_, err := svc.Checkout(ctx, "s1", "tok")
	require.EqualError(t, err, "shop closed")

	c, err := carts.Get(ctx, "s1")
	require.NoError(t, err)
	require.Len(t, c.Items, 2)
	assert.True(t, c.Total().Equal(decimal.NewFromInt(1300)))
}

func TestCheckoutSucceedsWhenCartSaveFails(t *testing.T) {
	gw := &fakeGateway{}
	svc, carts, store := setupOrderServiceWithStore(t, gw)
	fillCart(t, carts)
	ctx := context.Background()

	store.failPuts = 1

	placed, err := svc.Checkout(ctx, "s1", "tok")
	require.NoError(t, err)
	assert.Equal(t, "ord-1", placed.ID)

	c, err := carts.Get(ctx, "s1")
	require.NoError(t, err)
	assert.True(t, c.IsEmpty(), "cart is cleared on the retry")

	_, err = svc.Checkout(ctx, "s1", "tok")
	assert.ErrorIs(t, err, ErrEmptyCart)
	assert.Len(t, gw.requests, 1, "one cart places one order")
}

func TestCheckoutReportsOrderWhenCartCannotBeCleared(t *testing.T) {
	gw := &fakeGateway{}
	svc, carts, store := setupOrderServiceWithStore(t, gw)
	fillCart(t, carts)

	store.failPuts = 2

	placed, err := svc.Checkout(context.Background(), "s1", "tok")
	require.NoError(t, err)
	assert.Equal(t, "ord-1", placed.ID)
	assert.Len(t, gw.requests, 1)
}

func TestCheckoutRejectsEmptyCart(t *testing.T) {
	gw := &fakeGateway{}
	svc, _ := setupOrderService(t, gw)

	_, err := svc.Checkout(context.Background(), "s1", "tok")
	assert.ErrorIs(t, err, ErrEmptyCart)
	assert.Empty(t, gw.requests)
}

func TestCheckoutRequiresToken(t *testing.T) {
	gw := &fakeGateway{}
	svc, carts := setupOrderService(t, gw)
	fillCart(t, carts)

	_, err := svc.Checkout(context.Background(), "s1", "")
	assert.ErrorIs(t, err, ErrNotAuthenticated)
	assert.Empty(t, gw.requests)
}

func TestCheckoutSurvivesCancelledCaller(t *testing.T) {
	gw := &fakeGateway{}
	svc, carts := setupOrderService(t, gw)
	fillCart(t, carts)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	placed, err := svc.Checkout(ctx, "s1", "tok")
	require.NoError(t, err)
	assert.Equal(t, "ord-1", placed.ID)
}

func TestMyOrdersNeverNil(t *testing.T) {
	gw := &fakeGateway{}
	svc, _ := setupOrderService(t, gw)

	orders, err := svc.MyOrders(context.Background(), "tok")
	require.NoError(t, err)
	assert.NotNil(t, orders)
	assert.Empty(t, orders)
}

func TestGetPassesToken(t *testing.T) {
	gw := &fakeGateway{}
	svc, _ := setupOrderService(t, gw)

	o, err := svc.Get(context.Background(), "tok-2", "ord-9")
	require.NoError(t, err)
	assert.Equal(t, "ord-9", o.ID)
	assert.Equal(t, []string{"tok-2"}, gw.tokens)

	_, err = svc.Get(context.Background(), "", "ord-9")
	assert.ErrorIs(t, err, ErrNotAuthenticated)
}
