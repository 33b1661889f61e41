// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package state

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-storefront/internal/config"
	"github.com/MKhiriev/go-storefront/internal/logger"
	"github.com/MKhiriev/go-storefront/internal/store"
)

// Deps are the collaborators shared by all stores.
type Deps struct {
	// Repo persists cart, user and waitlist state. Nil disables persistence.
	Repo store.StateRepository
	// API submits waitlist entries.
	API WaitlistSubmitter
	// Config supplies UI timings and feature flags.
	Config *config.StructuredConfig
	// IDs generates cart line and toast ids.
	IDs    IDGenerator
	Logger *logger.Logger
}

// Stores is the container of every client-side store.
type Stores struct {
	Cart       *CartStore
	User       *UserStore
	UI         *UIStore
	Waitlist   *WaitlistStore
	App        *AppStore
	Monitoring *MonitoringStore
}

// NewStores builds a fresh set of stores. Persisted state is not loaded
// until [Stores.Restore] is called.
func NewStores(deps Deps) (*Stores, error) {
	if deps.Config == nil {
		return nil, errors.New("stores: config is nil")
	}
	if deps.API == nil {
		return nil, errors.New("stores: waitlist submitter is nil")
	}
	if deps.IDs == nil {
		return nil, errors.New("stores: id generator is nil")
	}

	log := deps.Logger
	if log == nil {
		log = logger.Nop()
	}

	cfg := deps.Config
	return &Stores{
		Cart:       NewCartStore(deps.Repo, deps.IDs, log.GetChildLogger()),
		User:       NewUserStore(deps.Repo, log.GetChildLogger()),
		UI:         NewUIStore(cfg.UI.ToastDuration, deps.IDs),
		Waitlist:   NewWaitlistStore(deps.API, deps.Repo, log.GetChildLogger()),
		App:        NewAppStore(cfg.App.FeatureFlags, cfg.UI.ResizeDebounce),
		Monitoring: NewMonitoringStore(DefaultMaxErrorReports, log.GetChildLogger()),
	}, nil
}

// Restore loads cart, user and waitlist state. A store that fails to load
// keeps its empty state; the failures are joined into the returned error.
func (s *Stores) Restore(ctx context.Context) error {
	return errors.Join(
		wrap("cart", s.Cart.Restore(ctx)),
		wrap("user", s.User.Restore(ctx)),
		wrap("waitlist", s.Waitlist.Restore(ctx)),
	)
}

// Flush writes cart, user and waitlist state.
func (s *Stores) Flush(ctx context.Context) error {
	return errors.Join(
		wrap("cart", s.Cart.Flush(ctx)),
		wrap("user", s.User.Flush(ctx)),
		wrap("waitlist", s.Waitlist.Flush(ctx)),
	)
}

// Close stops pending timers.
func (s *Stores) Close() {
	s.UI.Close()
	s.App.Close()
}

func wrap(name string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", name, err)
}
