// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"net/url"
)

// validate checks that the final merged [StructuredConfig] satisfies all
// application invariants before it is used at startup.
func (cfg *StructuredConfig) validate() error {
	if err := cfg.API.validate(); err != nil {
		return err
	}

	switch cfg.Cache.Backend {
	case CacheBackendMemory:
	case CacheBackendRedis:
		if cfg.Cache.RedisAddress == "" {
			return fmt.Errorf("%w: redis backend requires an address", ErrInvalidCacheConfigs)
		}
	default:
		return fmt.Errorf("%w: unknown backend %q", ErrInvalidCacheConfigs, cfg.Cache.Backend)
	}
	if cfg.Cache.TTL <= 0 {
		return fmt.Errorf("%w: ttl must be positive", ErrInvalidCacheConfigs)
	}

	if cfg.Storage.DB.DSN == "" {
		return ErrInvalidStorageConfigs
	}

	if cfg.UI.ToastDuration <= 0 || cfg.UI.ResizeDebounce < 0 {
		return ErrInvalidUIConfigs
	}

	if cfg.Workers.CacheSweepInterval <= 0 || cfg.Workers.ConnectivityInterval <= 0 {
		return ErrInvalidWorkerConfigs
	}

	return nil
}

func (a API) validate() error {
	u, err := url.Parse(a.BaseURL)
	if a.BaseURL == "" || err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("%w: base url %q", ErrInvalidAPIConfigs, a.BaseURL)
	}

	if a.RequestTimeout <= 0 || a.MaxAttempts < 1 {
		return fmt.Errorf("%w: timeout and attempts must be positive", ErrInvalidAPIConfigs)
	}

	if a.InitialDelay < 0 || a.BackoffMultiplier < 1 || a.MaxDelay < a.InitialDelay {
		return fmt.Errorf("%w: invalid backoff", ErrInvalidAPIConfigs)
	}

	return nil
}
