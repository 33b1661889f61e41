package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-storefront/internal/adapter"
	"github.com/MKhiriev/go-storefront/internal/config"
	"github.com/MKhiriev/go-storefront/internal/logger"
	"github.com/MKhiriev/go-storefront/internal/store"
	"github.com/MKhiriev/go-storefront/models"
)

func testConfig(baseURL, dsn string) *config.StructuredConfig {
	return &config.StructuredConfig{
		App: config.App{CSRFToken: "csrf-1"},
		API: config.API{
			BaseURL:           baseURL,
			RequestTimeout:    time.Second,
			MaxAttempts:       1,
			InitialDelay:      time.Millisecond,
			BackoffMultiplier: 2,
			MaxDelay:          time.Millisecond,
		},
		Cache:   config.Cache{Backend: config.CacheBackendMemory, TTL: time.Minute},
		Storage: config.Storage{DB: config.DB{DSN: dsn}},
		UI:      config.UI{ToastDuration: time.Second},
		Workers: config.Workers{
			CacheSweepInterval:   10 * time.Millisecond,
			ConnectivityInterval: 10 * time.Millisecond,
		},
	}
}

func TestNewApp_Errors(t *testing.T) {
	ctx := context.Background()

	_, err := NewApp(ctx, nil, logger.Nop())
	assert.Error(t, err)

	cfg := testConfig("http://localhost", store.MemoryDSN)
	cfg.Cache.Backend = "memcached"
	_, err = NewApp(ctx, cfg, logger.Nop())
	assert.Error(t, err)

	cfg = testConfig("http://localhost", store.MemoryDSN)
	cfg.App.LogLevel = "loud"
	_, err = NewApp(ctx, cfg, logger.Nop())
	assert.Error(t, err)
}

func TestApp_RunProbesAndFlushes(t *testing.T) {
	var health, waitlist atomic.Int32
	var authHeader, csrfHeader atomic.Value

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/health":
			health.Add(1)
			w.WriteHeader(http.StatusOK)
		case "/api/waitlist":
			waitlist.Add(1)
			authHeader.Store(r.Header.Get(adapter.HeaderAuthorization))
			csrfHeader.Store(r.Header.Get(adapter.HeaderCSRFToken))
			w.WriteHeader(http.StatusCreated)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	dsn := filepath.Join(t.TempDir(), "state.db")
	cfg := testConfig(srv.URL, dsn)

	app, err := NewApp(context.Background(), cfg, logger.Nop())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- app.Run(ctx) }()

	require.Eventually(t, func() bool { return health.Load() >= 2 }, 2*time.Second, 5*time.Millisecond)
	assert.True(t, app.Stores().App.IsOnline())

	stores := app.Stores()
	stores.User.SignIn(ctx, models.User{ID: "u1"}, models.Session{Token: "tok"})
	_, err = stores.Cart.AddItem(ctx, models.AddItemRequest{
		ProductID: "P1",
		Size:      "M",
		Price:     decimal.NewFromInt(25),
		Quantity:  3,
	})
	require.NoError(t, err)
	require.NoError(t, stores.Waitlist.AddEntry(ctx, models.WaitlistEntry{Email: "a@example.com", Name: "Ann"}))

	assert.Equal(t, int32(1), waitlist.Load())
	assert.Equal(t, "Bearer tok", authHeader.Load())
	assert.Equal(t, "csrf-1", csrfHeader.Load())

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after cancel")
	}

	restarted, err := NewApp(context.Background(), cfg, logger.Nop())
	require.NoError(t, err)
	require.NoError(t, restarted.Stores().Restore(context.Background()))

	snap := restarted.Stores().Cart.Snapshot()
	assert.Equal(t, 3, snap.TotalItems)
	assert.Equal(t, "75.00", snap.TotalPrice.StringFixed(2))
	assert.Equal(t, 1, restarted.Stores().Waitlist.State().SubmissionCount)
	assert.True(t, restarted.Stores().User.IsAuthenticated())
	require.NoError(t, restarted.storages.Close())
}

func TestApp_RunRecordsFailures(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	app, err := NewApp(context.Background(), testConfig(srv.URL, store.MemoryDSN), logger.Nop())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- app.Run(ctx) }()

	require.Eventually(t, func() bool { return !app.Stores().App.IsOnline() }, 2*time.Second, 5*time.Millisecond)
	require.Eventually(t, func() bool { return len(app.Stores().Monitoring.Errors()) > 0 }, time.Second, 5*time.Millisecond)
	assert.Equal(t, 503, app.Stores().Monitoring.Errors()[0].StatusCode)

	cancel()
	require.NoError(t, <-done)
}
