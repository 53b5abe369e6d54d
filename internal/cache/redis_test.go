package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bookvault/bookvault/internal/config"
	"github.com/bookvault/bookvault/internal/models"
)

func setupTestCache(t *testing.T) *Cache {
	mr, err := miniredis.Run()
	require.NoError(t, err)

	t.Cleanup(func() { mr.Close() })

	cfg := config.RedisConnection{
		AddressRedis: mr.Addr(),
		Password:     "",
		DB:           0,
		User:         "",
	}

	cache, err := InitServer(context.Background(), cfg)
	require.NoError(t, err)
	return cache
}

func TestSetAndGet(t *testing.T) {
	cache := setupTestCache(t)
	ctx := context.Background()

	expected := []*models.Book{
		{ID: 1, Title: "Dune", Author: "Frank Herbert", Price: 9.99, StockQuantity: 4},
		{ID: 2, Title: "Hyperion", Author: "Dan Simmons", Price: 7.99, StockQuantity: 2},
	}
	err := cache.Set(ctx, "books:list", expected, time.Minute)
	require.NoError(t, err)

	var actual []*models.Book
	found, err := cache.Get(ctx, "books:list", &actual)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, expected, actual)
}

func TestGetNotFound(t *testing.T) {
	cache := setupTestCache(t)

	var out []*models.Book
	found, err := cache.Get(context.Background(), "no_such_key", &out)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestInvalidate(t *testing.T) {
	cache := setupTestCache(t)
	ctx := context.Background()

	err := cache.Set(ctx, "books:list", "value", time.Minute)
	require.NoError(t, err)

	err = cache.Invalidate(ctx, "books:list")
	require.NoError(t, err)

	var out string
	found, err := cache.Get(ctx, "books:list", &out)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestGetInvalidJSON(t *testing.T) {
	cache := setupTestCache(t)
	ctx := context.Background()

	err := cache.DB.Set(ctx, "bad", []byte("not-json"), time.Minute).Err()
	require.NoError(t, err)

	var out []*models.Book
	found, err := cache.Get(ctx, "bad", &out)
	require.Error(t, err)
	assert.False(t, found)
}
