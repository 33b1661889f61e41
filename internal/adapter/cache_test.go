package adapter

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-storefront/internal/config"
	"github.com/MKhiriev/go-storefront/internal/logger"
	"github.com/MKhiriev/go-storefront/models"
)

func sampleResponse() *models.Response {
	return &models.Response{
		Success:    true,
		Data:       json.RawMessage(`{"id":"p1"}`),
		StatusCode: 200,
		Timestamp:  time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
		TraceID:    "trace-1",
	}
}

func TestMemoryCache_ExpiresAfterTTL(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache()

	require.NoError(t, c.Set(ctx, "k", sampleResponse(), 100*time.Millisecond))

	_, ok, err := c.Get(ctx, "k")
	require.NoError(t, err)
	require.True(t, ok)

	time.Sleep(150 * time.Millisecond)

	_, ok, err = c.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Zero(t, c.Len(), "expired entry is dropped on read")
}

func TestMemoryCache_Sweep(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	c := NewMemoryCache()
	c.now = func() time.Time { return now }

	require.NoError(t, c.Set(ctx, "short", sampleResponse(), time.Second))
	require.NoError(t, c.Set(ctx, "long", sampleResponse(), time.Hour))

	now = now.Add(time.Minute)

	removed, err := c.Sweep(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, removed)
	assert.Equal(t, 1, c.Len())

	_, ok, _ := c.Get(ctx, "long")
	assert.True(t, ok)
}

func TestMemoryCache_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache()

	orig := sampleResponse()
	require.NoError(t, c.Set(ctx, "k", orig, time.Minute))
	orig.Data[2] = 'X'

	got, ok, _ := c.Get(ctx, "k")
	require.True(t, ok)
	got.TraceID = "mutated"

	again, _, _ := c.Get(ctx, "k")
	assert.Equal(t, "trace-1", again.TraceID)
	assert.JSONEq(t, `{"id":"p1"}`, string(again.Data))
}

func TestMemoryCache_DeleteClearAndZeroTTL(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache()

	require.NoError(t, c.Set(ctx, "zero", sampleResponse(), 0))
	assert.Zero(t, c.Len())

	require.NoError(t, c.Set(ctx, "a", sampleResponse(), time.Minute))
	require.NoError(t, c.Set(ctx, "b", sampleResponse(), time.Minute))
	require.NoError(t, c.Delete(ctx, "a"))
	assert.Equal(t, 1, c.Len())

	require.NoError(t, c.Clear(ctx))
	assert.Zero(t, c.Len())
}

func TestNewCache(t *testing.T) {
	ctx := context.Background()

	c, err := NewCache(ctx, config.Cache{Disabled: true}, logger.Nop())
	require.NoError(t, err)
	assert.Nil(t, c)

	c, err = NewCache(ctx, config.Cache{Backend: config.CacheBackendMemory}, logger.Nop())
	require.NoError(t, err)
	assert.IsType(t, &MemoryCache{}, c)

	_, err = NewCache(ctx, config.Cache{Backend: "disk"}, logger.Nop())
	assert.Error(t, err)
}

func TestCacheKey(t *testing.T) {
	a := cacheKey(&Request{Method: "GET", URL: "/p"})
	b := cacheKey(&Request{Method: "POST", URL: "/p"})
	c := cacheKey(&Request{Method: "POST", URL: "/p", Body: map[string]int{"x": 1}})
	d := cacheKey(&Request{Method: "POST", URL: "/p", Body: map[string]int{"x": 2}})

	assert.Equal(t, "GET /p", a)
	assert.NotEqual(t, a, b)
	assert.NotEqual(t, b, c)
	assert.NotEqual(t, c, d)
	assert.Equal(t, c, cacheKey(&Request{Method: "POST", URL: "/p", Body: map[string]int{"x": 1}}))
}
