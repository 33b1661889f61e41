package config

import "errors"

// Validation errors returned by [StructuredConfig.validate] when required
// configuration groups are incomplete or invalid.
var (
	// ErrInvalidAPIConfigs indicates invalid API client settings
	// (for example, missing base URL or zero attempts).
	ErrInvalidAPIConfigs = errors.New("invalid api configuration")
	// ErrInvalidCacheConfigs indicates an unknown cache backend or a redis
	// backend without address.
	ErrInvalidCacheConfigs = errors.New("invalid cache configuration")
	// ErrInvalidStorageConfigs indicates an empty state database DSN.
	ErrInvalidStorageConfigs = errors.New("invalid storage configuration")
	// ErrInvalidUIConfigs indicates non-positive UI timings.
	ErrInvalidUIConfigs = errors.New("invalid ui configuration")
	// ErrInvalidWorkerConfigs indicates non-positive worker intervals.
	ErrInvalidWorkerConfigs = errors.New("invalid worker configuration")
)
