package client

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/MKhiriev/go-storefront/internal/adapter"
	"github.com/MKhiriev/go-storefront/internal/config"
	"github.com/MKhiriev/go-storefront/internal/logger"
	"github.com/MKhiriev/go-storefront/internal/state"
	"github.com/MKhiriev/go-storefront/internal/store"
	"github.com/MKhiriev/go-storefront/internal/utils"
	"github.com/MKhiriev/go-storefront/internal/workers"
)

// App owns every long-lived component of the storefront client.
type App struct {
	cfg      *config.StructuredConfig
	storages *store.Storages
	cache    adapter.Cache
	api      adapter.StorefrontAPI
	client   *adapter.Client
	stores   *state.Stores
	workers  *workers.Workers
	logger   *logger.Logger
}

var _ Client = (*App)(nil)

// NewApp builds the application from cfg. Resources opened before a failure
// are released.
func NewApp(ctx context.Context, cfg *config.StructuredConfig, log *logger.Logger) (*App, error) {
	if cfg == nil {
		return nil, errors.New("config is nil")
	}
	if err := logger.SetLevel(cfg.App.LogLevel); err != nil {
		return nil, err
	}

	storages, err := store.NewStorages(ctx, cfg.Storage, log)
	if err != nil {
		return nil, fmt.Errorf("create storages: %w", err)
	}

	cache, err := adapter.NewCache(ctx, cfg.Cache, log)
	if err != nil {
		_ = storages.Close()
		return nil, fmt.Errorf("create response cache: %w", err)
	}

	apiClient := adapter.NewClient(cfg.API, cache, cfg.Cache, log.GetChildLogger())
	api := adapter.NewStorefrontAPI(apiClient)

	stores, err := state.NewStores(state.Deps{
		Repo:   storages.StateRepository,
		API:    api,
		Config: cfg,
		IDs:    utils.NewUUIDGenerator(),
		Logger: log,
	})
	if err != nil {
		closeCache(cache)
		_ = storages.Close()
		return nil, fmt.Errorf("create stores: %w", err)
	}

	apiClient.UseRequest(
		adapter.AuthInterceptor(stores.User.Token),
		adapter.CSRFInterceptor(cfg.App.CSRFToken),
	)
	apiClient.UseError(stores.Monitoring.ErrorInterceptor())
	apiClient.Observe(stores.Monitoring.Observer())

	jobs := []workers.Worker{
		workers.NewConnectivityProbe(api, stores.App, cfg.Workers.ConnectivityInterval, log.GetChildLogger()),
	}
	if cache != nil {
		jobs = append(jobs, workers.NewCacheSweeper(cache, cfg.Workers.CacheSweepInterval, log.GetChildLogger()))
	}

	return &App{
		cfg:      cfg,
		storages: storages,
		cache:    cache,
		api:      api,
		client:   apiClient,
		stores:   stores,
		workers:  workers.NewWorkers(jobs...),
		logger:   log,
	}, nil
}

// Stores returns the state container.
func (a *App) Stores() *state.Stores {
	return a.stores
}

// API returns the typed storefront endpoints.
func (a *App) API() adapter.StorefrontAPI {
	return a.api
}

// Run restores persisted state, starts the background workers and blocks
// until ctx is done. On exit it stops the workers, flushes state and closes
// every resource.
func (a *App) Run(ctx context.Context) error {
	ctx = a.logger.WithContext(ctx)

	if err := a.stores.Restore(ctx); err != nil {
		// stores that failed to load start empty
		a.logger.Err(err).Str("func", "App.Run").Msg("failed to restore state")
	}

	a.workers.Start(ctx)
	a.logger.Info().Str("func", "App.Run").Str("base_url", a.cfg.API.BaseURL).Msg("storefront client started")

	<-ctx.Done()
	a.logger.Info().Str("func", "App.Run").Msg("shutting down")

	a.workers.Stop()
	a.stores.Close()

	// ctx is cancelled, persistence gets a fresh one
	flushErr := a.stores.Flush(context.WithoutCancel(ctx))
	if flushErr != nil {
		a.logger.Err(flushErr).Str("func", "App.Run").Msg("failed to flush state")
	}

	closeCache(a.cache)
	if err := a.storages.Close(); err != nil {
		return errors.Join(flushErr, fmt.Errorf("close storages: %w", err))
	}
	return flushErr
}

func closeCache(c adapter.Cache) {
	if closer, ok := c.(io.Closer); ok {
		_ = closer.Close()
	}
}
