package config

import "time"

// Default values applied before any other source.
const (
	DefaultBaseURL              = "http://localhost:8080"
	DefaultRequestTimeout       = 10 * time.Second
	DefaultMaxAttempts          = 3
	DefaultInitialDelay         = time.Second
	DefaultBackoffMultiplier    = 2.0
	DefaultMaxDelay             = 10 * time.Second
	DefaultCacheBackend         = CacheBackendMemory
	DefaultCacheTTL             = 5 * time.Minute
	DefaultDSN                  = "storefront.db"
	DefaultToastDuration        = 5 * time.Second
	DefaultResizeDebounce       = 150 * time.Millisecond
	DefaultCacheSweepInterval   = time.Minute
	DefaultConnectivityInterval = 30 * time.Second
)

// Supported cache backends.
const (
	CacheBackendMemory = "memory"
	CacheBackendRedis  = "redis"
)

func defaultConfig() *StructuredConfig {
	return &StructuredConfig{
		App: App{
			Environment: "development",
		},
		API: API{
			BaseURL:           DefaultBaseURL,
			RequestTimeout:    DefaultRequestTimeout,
			MaxAttempts:       DefaultMaxAttempts,
			InitialDelay:      DefaultInitialDelay,
			BackoffMultiplier: DefaultBackoffMultiplier,
			MaxDelay:          DefaultMaxDelay,
		},
		Cache: Cache{
			Backend: DefaultCacheBackend,
			TTL:     DefaultCacheTTL,
		},
		Storage: Storage{DB: DB{DSN: DefaultDSN}},
		UI: UI{
			ToastDuration:  DefaultToastDuration,
			ResizeDebounce: DefaultResizeDebounce,
		},
		Workers: Workers{
			CacheSweepInterval:   DefaultCacheSweepInterval,
			ConnectivityInterval: DefaultConnectivityInterval,
		},
	}
}
