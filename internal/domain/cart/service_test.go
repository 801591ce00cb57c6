package cart

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/cryai2821/pizza-wale-fe/internal/infrastructure/state"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupService(t *testing.T) (*Service, *state.RedisStore, *miniredis.Miniredis) {
	t.Helper()

	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)

	store := state.NewRedisStore(client, "storefront", time.Hour)
	return NewService(store, state.NewSessionLocks(), Canonical, time.Hour, logger), store, mr
}

func TestServicePersistsAcrossInstances(t *testing.T) {
	svc, store, _ := setupService(t)
	ctx := context.Background()

	_, err := svc.AddItem(ctx, "s1", NewLine("p1", "Margherita", rupees(200), 2, nil))
	require.NoError(t, err)

	restarted := NewService(store, state.NewSessionLocks(), Canonical, time.Hour, logrus.New())
	c, err := restarted.Get(ctx, "s1")
	require.NoError(t, err)

	require.Len(t, c.Items, 1)
	assert.Equal(t, 2, c.Items[0].Quantity)
	assert.True(t, c.Items[0].UnitPrice.Equal(rupees(200)))
	assert.False(t, c.Open, "drawer flag must not survive a restart")
}

func TestServiceDoesNotPersistDrawerFlag(t *testing.T) {
	svc, _, mr := setupService(t)
	ctx := context.Background()

	c, err := svc.AddItem(ctx, "s1", NewLine("p1", "A", rupees(200), 1, nil))
	require.NoError(t, err)
	assert.True(t, c.Open)

	raw, err := mr.Get("storefront:s1:cart")
	require.NoError(t, err)
	assert.NotContains(t, raw, "open")
	assert.NotContains(t, raw, "Open")

	c, err = svc.Toggle(ctx, "s1")
	require.NoError(t, err)
	assert.False(t, c.Open)

	c, err = svc.Get(ctx, "s1")
	require.NoError(t, err)
	assert.False(t, c.Open)
	assert.Len(t, c.Items, 1)
}

func TestServiceSessionsAreIsolated(t *testing.T) {
	svc, _, _ := setupService(t)
	ctx := context.Background()

	_, err := svc.AddItem(ctx, "s1", NewLine("p1", "A", rupees(200), 1, nil))
	require.NoError(t, err)

	c, err := svc.Get(ctx, "s2")
	require.NoError(t, err)
	assert.True(t, c.IsEmpty())
}

func TestServiceRejectsZeroQuantity(t *testing.T) {
	svc, _, _ := setupService(t)

	_, err := svc.AddItem(context.Background(), "s1", NewLine("p1", "A", rupees(200), 0, nil))
	assert.ErrorIs(t, err, ErrInvalidQuantity)
}

func TestServiceDecrementUnknownProduct(t *testing.T) {
	svc, _, _ := setupService(t)

	_, err := svc.DecrementProduct(context.Background(), "s1", "p1")
	assert.ErrorIs(t, err, ErrProductNotInCart)
}

func TestServiceClearKeepsOtherState(t *testing.T) {
	svc, store, mr := setupService(t)
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "s1", state.KindIdentity, []byte(`{"authenticated":true}`)))
	_, err := svc.AddItem(ctx, "s1", NewLine("p1", "A", rupees(200), 1, nil))
	require.NoError(t, err)

	c, err := svc.ClearCart(ctx, "s1")
	require.NoError(t, err)
	assert.True(t, c.IsEmpty())
	assert.True(t, mr.Exists("storefront:s1:auth"))
}

func TestServiceRecoversFromCorruptCart(t *testing.T) {
	svc, _, mr := setupService(t)
	require.NoError(t, mr.Set("storefront:s1:cart", "{not json"))

	c, err := svc.Get(context.Background(), "s1")
	require.NoError(t, err)
	assert.True(t, c.IsEmpty())
}

func TestServiceConcurrentAddsAllApply(t *testing.T) {
	svc, _, _ := setupService(t)
	ctx := context.Background()

	done := make(chan error)
	for i := 0; i < 10; i++ {
		go func() {
			_, err := svc.AddItem(ctx, "s1", NewLine("p1", "A", rupees(100), 1, nil))
			done <- err
		}()
	}
	for i := 0; i < 10; i++ {
		require.NoError(t, <-done)
	}

	c, err := svc.Get(ctx, "s1")
	require.NoError(t, err)
	require.Len(t, c.Items, 1)
	assert.Equal(t, 10, c.Items[0].Quantity)
}

func TestServiceSetLineQuantityByIDs(t *testing.T) {
	svc, _, _ := setupService(t)
	ctx := context.Background()

	_, err := svc.AddItem(ctx, "s1", NewLine("p1", "A", rupees(100), 1, []SelectedOption{extraCheese, olives}))
	require.NoError(t, err)

	c, err := svc.SetLineQuantity(ctx, "s1", "p1", []string{"o2", "o1"}, 4)
	require.NoError(t, err)
	assert.Equal(t, 4, c.ItemCount())
	assert.True(t, c.Total().Equal(rupees(720)))

	c, err = svc.SetLineQuantity(ctx, "s1", "p1", []string{"o1", "o2"}, 0)
	require.NoError(t, err)
	assert.True(t, c.IsEmpty())

	_, err = svc.SetLineQuantity(ctx, "s1", "p1", nil, 2)
	assert.ErrorIs(t, err, ErrProductNotInCart)
}

func TestServiceRemoveLineByIDs(t *testing.T) {
	svc, _, _ := setupService(t)
	ctx := context.Background()

	_, err := svc.AddItem(ctx, "s1", NewLine("p1", "A", rupees(100), 1, nil))
	require.NoError(t, err)
	_, err = svc.AddItem(ctx, "s1", NewLine("p1", "A", rupees(100), 1, []SelectedOption{olives}))
	require.NoError(t, err)

	c, err := svc.RemoveLine(ctx, "s1", "p1", []string{"o2"})
	require.NoError(t, err)
	require.Len(t, c.Items, 1)
	assert.Empty(t, c.Items[0].SelectedOptions)

	_, err = svc.RemoveLine(ctx, "s1", "p9", nil)
	assert.ErrorIs(t, err, ErrProductNotInCart)
}

func TestServiceForgetsDrawerOfExpiredSession(t *testing.T) {
	svc, _, _ := setupService(t)
	ctx := context.Background()

	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	svc.drawers.now = func() time.Time { return now }

	for _, sid := range []string{"s1", "s2", "s3"} {
		c, err := svc.AddItem(ctx, sid, NewLine("p1", "A", rupees(100), 1, nil))
		require.NoError(t, err)
		require.True(t, c.Open)
	}
	assert.Equal(t, 3, svc.drawers.Len())

	_, err := svc.Toggle(ctx, "s3")
	require.NoError(t, err)
	assert.Equal(t, 2, svc.drawers.Len(), "closed drawers are not kept")

	now = now.Add(2 * time.Hour)

	c, err := svc.Get(ctx, "s1")
	require.NoError(t, err)
	assert.False(t, c.Open)

	_, err = svc.AddItem(ctx, "s4", NewLine("p1", "A", rupees(100), 1, nil))
	require.NoError(t, err)
	assert.Equal(t, 1, svc.drawers.Len(), "idle sessions are swept")
}
