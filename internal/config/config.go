// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"os"
	"time"
)

// StructuredConfig is the top-level configuration container for the
// storefront client. It aggregates all sub-configurations and is populated by
// merging defaults, environment variables, command-line flags, and an
// optional JSON file.
//
// Struct tags:
//   - envPrefix: prefix applied to all nested env tag lookups (caarlos0/env).
//   - env      : direct environment variable name for scalar fields.
type StructuredConfig struct {
	// App holds application-level settings: environment, log level, feature
	// flags and the CSRF token forwarded on mutating requests.
	App App `envPrefix:"APP_"`

	// API holds the storefront API client settings: base URL, timeout and
	// retry policy.
	API API `envPrefix:"API_"`

	// Cache holds the response cache settings.
	Cache Cache `envPrefix:"CACHE_"`

	// Storage holds the persistence backend used to mirror store state.
	Storage Storage `envPrefix:"STORAGE_"`

	// UI holds timings of the ephemeral UI state.
	UI UI `envPrefix:"UI_"`

	// Workers holds intervals of the background jobs.
	Workers Workers `envPrefix:"WORKERS_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`
}

// App holds application-level configuration values.
type App struct {
	// Environment is a free-form deployment label ("development", "production").
	// Env: APP_ENVIRONMENT
	Environment string `env:"ENVIRONMENT"`

	// LogLevel is a zerolog level name. Empty keeps debug.
	// Env: APP_LOG_LEVEL
	LogLevel string `env:"LOG_LEVEL"`

	// FeatureFlags is the static toggle map exposed by the app store,
	// e.g. "waitlist:true,reviews:false".
	// Env: APP_FEATURE_FLAGS
	FeatureFlags map[string]bool `env:"FEATURE_FLAGS"`

	// CSRFToken is sent in the X-CSRF-Token header of mutating requests.
	// Env: APP_CSRF_TOKEN
	CSRFToken string `env:"CSRF_TOKEN"`
}

// API holds the API client settings.
type API struct {
	// BaseURL is the storefront API origin (e.g. "https://shop.example.com").
	// Env: API_BASE_URL
	BaseURL string `env:"BASE_URL"`

	// RequestTimeout bounds a single request attempt.
	// Env: API_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`

	// MaxAttempts is the total number of attempts, first one included.
	// Env: API_MAX_ATTEMPTS
	MaxAttempts int `env:"MAX_ATTEMPTS"`

	// InitialDelay is the wait before the second attempt.
	// Env: API_INITIAL_DELAY
	InitialDelay time.Duration `env:"INITIAL_DELAY"`

	// BackoffMultiplier grows the delay between attempts.
	// Env: API_BACKOFF_MULTIPLIER
	BackoffMultiplier float64 `env:"BACKOFF_MULTIPLIER"`

	// MaxDelay caps a single backoff wait.
	// Env: API_MAX_DELAY
	MaxDelay time.Duration `env:"MAX_DELAY"`
}

// Cache holds the response cache settings.
type Cache struct {
	// Disabled switches response caching off for every request.
	// Env: CACHE_DISABLED
	Disabled bool `env:"DISABLED"`

	// Backend is "memory" or "redis".
	// Env: CACHE_BACKEND
	Backend string `env:"BACKEND"`

	// TTL is the default time-to-live of a cached response.
	// Env: CACHE_TTL
	TTL time.Duration `env:"TTL"`

	// RedisAddress is the host:port of the Redis server when Backend is "redis".
	// Env: CACHE_REDIS_ADDRESS
	RedisAddress string `env:"REDIS_ADDRESS"`

	// RedisPassword is the optional Redis AUTH password.
	// Env: CACHE_REDIS_PASSWORD
	RedisPassword string `env:"REDIS_PASSWORD"`

	// RedisDB selects the Redis logical database.
	// Env: CACHE_REDIS_DB
	RedisDB int `env:"REDIS_DB"`
}

// Storage groups the persistence backend settings.
type Storage struct {
	// DB holds the state database settings.
	DB DB `envPrefix:"DB_"`
}

// DB holds the state database connection settings.
type DB struct {
	// DSN selects the backend: "postgres://..." uses PostgreSQL, ":memory:"
	// keeps state in process, anything else is a SQLite file path.
	// Env: STORAGE_DB_DSN
	DSN string `env:"DSN"`
}

// UI holds timings of the ephemeral UI state.
type UI struct {
	// ToastDuration is the lifetime of a toast without explicit duration.
	// Env: UI_TOAST_DURATION
	ToastDuration time.Duration `env:"TOAST_DURATION"`

	// ResizeDebounce is the quiet period before a viewport change
	// reclassifies the device.
	// Env: UI_RESIZE_DEBOUNCE
	ResizeDebounce time.Duration `env:"RESIZE_DEBOUNCE"`
}

// Workers holds intervals of the background jobs.
type Workers struct {
	// CacheSweepInterval is how often expired cache entries are purged.
	// Env: WORKERS_CACHE_SWEEP_INTERVAL
	CacheSweepInterval time.Duration `env:"CACHE_SWEEP_INTERVAL"`

	// ConnectivityInterval is how often the API health endpoint is probed.
	// Env: WORKERS_CONNECTIVITY_INTERVAL
	ConnectivityInterval time.Duration `env:"CONNECTIVITY_INTERVAL"`
}

// GetStructuredConfig loads, merges, and validates the application
// configuration from all available sources in the following priority order
// (last source wins for non-zero fields):
//  1. Built-in defaults
//  2. Environment variables
//  3. Command-line flags (os.Args)
//  4. JSON file (path resolved from sources 2 and 3)
//
// Returns a fully populated *StructuredConfig or an error if any source
// fails to load or the final config fails validation.
func GetStructuredConfig() (*StructuredConfig, error) {
	return newConfigBuilder().
		withDefaults().
		withEnv().
		withFlags(os.Args[1:]).
		withJSON().
		build()
}
