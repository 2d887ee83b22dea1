package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/railzwaylabs/swagshop/internal/cart/repository"
	"github.com/railzwaylabs/swagshop/internal/config"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func setup(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	s, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(s.Close)

	rdb := redis.NewClient(&redis.Options{Addr: s.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return s, rdb
}

func testConfig() config.Config {
	cfg := config.Config{}
	cfg.Shop.CartTTL = time.Hour
	return cfg
}

func TestAddIncrementsQuantity(t *testing.T) {
	_, rdb := setup(t)
	store := repository.NewRedisStore(rdb, testConfig(), zap.NewNop())
	ctx := context.Background()

	cart, err := store.Add(ctx, "sess-1", "tshirt")
	require.NoError(t, err)
	assert.Equal(t, int64(1), cart.Quantity("tshirt"))

	cart, err = store.Add(ctx, "sess-1", "cup")
	require.NoError(t, err)
	cart, err = store.Add(ctx, "sess-1", "cup")
	require.NoError(t, err)

	assert.Equal(t, int64(1), cart.Quantity("tshirt"))
	assert.Equal(t, int64(2), cart.Quantity("cup"))
}

func TestCartsAreScopedPerSession(t *testing.T) {
	_, rdb := setup(t)
	store := repository.NewRedisStore(rdb, testConfig(), zap.NewNop())
	ctx := context.Background()

	_, err := store.Add(ctx, "sess-a", "tshirt")
	require.NoError(t, err)

	cart, err := store.Get(ctx, "sess-b")
	require.NoError(t, err)
	assert.True(t, cart.IsEmpty())
}

func TestGetEmptyCart(t *testing.T) {
	_, rdb := setup(t)
	store := repository.NewRedisStore(rdb, testConfig(), zap.NewNop())

	cart, err := store.Get(context.Background(), "sess-1")
	require.NoError(t, err)
	assert.NotNil(t, cart)
	assert.True(t, cart.IsEmpty())
}

func TestResetEmptiesCart(t *testing.T) {
	_, rdb := setup(t)
	store := repository.NewRedisStore(rdb, testConfig(), zap.NewNop())
	ctx := context.Background()

	_, err := store.Add(ctx, "sess-1", "tshirt")
	require.NoError(t, err)
	require.NoError(t, store.Reset(ctx, "sess-1"))

	cart, err := store.Get(ctx, "sess-1")
	require.NoError(t, err)
	assert.True(t, cart.IsEmpty())
}

func TestGetPrunesInvalidEntries(t *testing.T) {
	s, rdb := setup(t)
	store := repository.NewRedisStore(rdb, testConfig(), zap.NewNop())
	ctx := context.Background()

	s.HSet("cart:sess-1", "tshirt", "2")
	s.HSet("cart:sess-1", "cup", "0")
	s.HSet("cart:sess-1", "mug", "not-a-number")

	cart, err := store.Get(ctx, "sess-1")
	require.NoError(t, err)
	assert.Equal(t, int64(2), cart.Quantity("tshirt"))
	assert.Zero(t, cart.Quantity("cup"))
	assert.Zero(t, cart.Quantity("mug"))

	// Pruned from the backing hash, not just filtered from the view.
	exists, err := rdb.HExists(ctx, "cart:sess-1", "cup").Result()
	require.NoError(t, err)
	assert.False(t, exists)
	exists, err = rdb.HExists(ctx, "cart:sess-1", "mug").Result()
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestAddRefreshesTTL(t *testing.T) {
	s, rdb := setup(t)
	store := repository.NewRedisStore(rdb, testConfig(), zap.NewNop())
	ctx := context.Background()

	_, err := store.Add(ctx, "sess-1", "tshirt")
	require.NoError(t, err)

	ttl := s.TTL("cart:sess-1")
	assert.Equal(t, time.Hour, ttl)
}
