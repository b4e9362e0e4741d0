package storage

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestRedis creates a miniredis server and returns a Redis store on top of it
func setupTestRedis(t *testing.T) (*Redis, *miniredis.Miniredis, func()) {
	mr := miniredis.RunT(t)

	client := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})

	store := NewRedis(client, "storefront")

	cleanup := func() {
		client.Close()
		mr.Close()
	}

	return store, mr, cleanup
}

func TestRedisGet_Success(t *testing.T) {
	store, mr, cleanup := setupTestRedis(t)
	defer cleanup()

	mr.Set("storefront:cart", `[{"id":7}]`)

	got, err := store.Get(context.Background(), "cart")
	require.NoError(t, err)
	assert.Equal(t, `[{"id":7}]`, string(got))
}

func TestRedisGet_Missing(t *testing.T) {
	store, _, cleanup := setupTestRedis(t)
	defer cleanup()

	got, err := store.Get(context.Background(), "nonexistent")
	assert.ErrorIs(t, err, ErrKeyNotFound)
	assert.Nil(t, got)
}

func TestRedisSet_RoundTrip(t *testing.T) {
	store, mr, cleanup := setupTestRedis(t)
	defer cleanup()

	ctx := context.Background()
	require.NoError(t, store.Set(ctx, "access_token", []byte("tok-123")))

	v, err := mr.Get("storefront:access_token")
	require.NoError(t, err)
	assert.Equal(t, "tok-123", v)

	got, err := store.Get(ctx, "access_token")
	require.NoError(t, err)
	assert.Equal(t, "tok-123", string(got))
}

func TestRedisDelete(t *testing.T) {
	store, _, cleanup := setupTestRedis(t)
	defer cleanup()

	ctx := context.Background()
	require.NoError(t, store.Set(ctx, "cart", []byte("[]")))
	require.NoError(t, store.Delete(ctx, "cart"))

	_, err := store.Get(ctx, "cart")
	assert.ErrorIs(t, err, ErrKeyNotFound)
}

func TestRedisDelete_MissingIsNoop(t *testing.T) {
	store, _, cleanup := setupTestRedis(t)
	defer cleanup()

	assert.NoError(t, store.Delete(context.Background(), "nonexistent"))
}
