package state

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRedisStore(t *testing.T) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()

	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	return NewRedisStore(client, "storefront", time.Hour), mr
}

func TestRedisStorePutGet(t *testing.T) {
	store, mr := setupRedisStore(t)
	ctx := context.Background()

	_, found, err := store.Get(ctx, "s1", KindCart)
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, store.Put(ctx, "s1", KindCart, []byte(`{"items":[]}`)))

	data, found, err := store.Get(ctx, "s1", KindCart)
	require.NoError(t, err)
	assert.True(t, found)
	assert.JSONEq(t, `{"items":[]}`, string(data))

	assert.True(t, mr.Exists("storefront:s1:cart"))
	assert.Equal(t, time.Hour, mr.TTL("storefront:s1:cart"))
}

func TestRedisStoreKindsAreIndependent(t *testing.T) {
	store, mr := setupRedisStore(t)
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "s1", KindCart, []byte(`cart`)))
	require.NoError(t, store.Put(ctx, "s1", KindIdentity, []byte(`auth`)))

	require.NoError(t, store.Delete(ctx, "s1", KindIdentity))

	assert.False(t, mr.Exists("storefront:s1:auth"))
	data, found, err := store.Get(ctx, "s1", KindCart)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "cart", string(data))
}

func TestRedisStoreExpires(t *testing.T) {
	store, mr := setupRedisStore(t)
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "s1", KindCart, []byte(`cart`)))
	mr.FastForward(2 * time.Hour)

	_, found, err := store.Get(ctx, "s1", KindCart)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestRedisStoreRequiresSession(t *testing.T) {
	store, _ := setupRedisStore(t)
	ctx := context.Background()

	_, _, err := store.Get(ctx, "", KindCart)
	assert.ErrorIs(t, err, ErrNoSession)
	assert.ErrorIs(t, store.Put(ctx, "", KindCart, nil), ErrNoSession)
	assert.ErrorIs(t, store.Delete(ctx, "", KindCart), ErrNoSession)
}

func TestRedisStoreReportsConnectionErrors(t *testing.T) {
	store, mr := setupRedisStore(t)
	mr.Close()

	_, _, err := store.Get(context.Background(), "s1", KindCart)
	assert.Error(t, err)
}

func TestSessionLocksSerializeAndRelease(t *testing.T) {
	locks := NewSessionLocks()

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		counter int
		maxSeen int
		inside  int
	)

	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock := locks.Lock("s1")
			defer unlock()

			mu.Lock()
			inside++
			if inside > maxSeen {
				maxSeen = inside
			}
			mu.Unlock()

			counter++

			mu.Lock()
			inside--
			mu.Unlock()
		}()
	}
	wg.Wait()

	assert.Equal(t, 20, counter)
	assert.Equal(t, 1, maxSeen)
	assert.Empty(t, locks.locks)
}

func TestSessionLocksIndependentSessions(t *testing.T) {
	locks := NewSessionLocks()

	unlockA := locks.Lock("a")
	done := make(chan struct{})
	go func() {
		unlock := locks.Lock("b")
		unlock()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("lock for session b blocked on session a")
	}
	unlockA()
}
