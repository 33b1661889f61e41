package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ── newConfigBuilder ──────────────────────────────────────────────────────────

// TestNewConfigBuilder_InitialState verifies that a freshly created builder
// has no error and an empty configs slice.
func TestNewConfigBuilder_InitialState(t *testing.T) {
	b := newConfigBuilder()
	require.NotNil(t, b)
	assert.NoError(t, b.err)
	assert.Empty(t, b.configs)
}

// ── build ─────────────────────────────────────────────────────────────────────

// TestBuild_DefaultsAreValid verifies that the built-in defaults alone pass
// validation.
func TestBuild_DefaultsAreValid(t *testing.T) {
	cfg, err := newConfigBuilder().withDefaults().build()

	require.NoError(t, err)
	assert.Equal(t, DefaultBaseURL, cfg.API.BaseURL)
	assert.Equal(t, DefaultMaxAttempts, cfg.API.MaxAttempts)
	assert.Equal(t, CacheBackendMemory, cfg.Cache.Backend)
}

// TestBuild_EmptyBuilderFailsValidation verifies that a zero config is
// rejected.
func TestBuild_EmptyBuilderFailsValidation(t *testing.T) {
	cfg, err := newConfigBuilder().build()

	assert.Nil(t, cfg)
	assert.ErrorIs(t, err, ErrInvalidAPIConfigs)
}

// TestBuild_PropagatesBuilderError verifies that a pre-set b.err is wrapped
// and returned, with nil config.
func TestBuild_PropagatesBuilderError(t *testing.T) {
	b := newConfigBuilder()
	b.err = assert.AnError

	cfg, err := b.build()
	assert.Nil(t, cfg)
	require.Error(t, err)
	assert.ErrorIs(t, err, assert.AnError)
}

// TestBuild_LaterSourceWins verifies that a non-zero field of a later source
// overrides the earlier one while zero fields keep the earlier value.
func TestBuild_LaterSourceWins(t *testing.T) {
	b := newConfigBuilder().withDefaults()
	b.configs = append(b.configs, &StructuredConfig{
		API: API{BaseURL: "https://shop.example.com", MaxAttempts: 5},
	})

	cfg, err := b.build()
	require.NoError(t, err)
	assert.Equal(t, "https://shop.example.com", cfg.API.BaseURL)
	assert.Equal(t, 5, cfg.API.MaxAttempts)
	assert.Equal(t, DefaultRequestTimeout, cfg.API.RequestTimeout)
}

// TestBuild_MergesFeatureFlags verifies map merging across sources.
func TestBuild_MergesFeatureFlags(t *testing.T) {
	b := newConfigBuilder().withDefaults()
	b.configs = append(b.configs,
		&StructuredConfig{App: App{FeatureFlags: map[string]bool{"waitlist": true}}},
		&StructuredConfig{App: App{FeatureFlags: map[string]bool{"reviews": true}}},
	)

	cfg, err := b.build()
	require.NoError(t, err)
	assert.Equal(t, map[string]bool{"waitlist": true, "reviews": true}, cfg.App.FeatureFlags)
}

// ── withFlags / withJSON ──────────────────────────────────────────────────────

func TestWithFlags_Error(t *testing.T) {
	b := newConfigBuilder().withFlags([]string{"-nope"})

	assert.Error(t, b.err)
	assert.Empty(t, b.configs)
}

func TestWithJSON_NoPath(t *testing.T) {
	b := newConfigBuilder().withDefaults().withJSON()

	assert.NoError(t, b.err)
	assert.Len(t, b.configs, 1)
}

func TestWithJSON_PathFromFlags(t *testing.T) {
	p := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(p, []byte(`{"api": {"max_attempts": 7}}`), 0o600))

	cfg, err := newConfigBuilder().
		withDefaults().
		withFlags([]string{"-c", p, "-max-attempts", "2"}).
		withJSON().
		build()

	require.NoError(t, err)
	assert.Equal(t, 7, cfg.API.MaxAttempts, "json is applied last")
}

func TestWithJSON_MissingFile(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs, &StructuredConfig{JSONFilePath: "/does/not/exist.json"})

	b.withJSON()

	assert.Error(t, b.err)
}

// ── validate ──────────────────────────────────────────────────────────────────

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *StructuredConfig)
		wantErr error
	}{
		{name: "defaults", mutate: func(*StructuredConfig) {}},
		{name: "relative base url", mutate: func(c *StructuredConfig) { c.API.BaseURL = "localhost" }, wantErr: ErrInvalidAPIConfigs},
		{name: "zero attempts", mutate: func(c *StructuredConfig) { c.API.MaxAttempts = 0 }, wantErr: ErrInvalidAPIConfigs},
		{name: "multiplier below one", mutate: func(c *StructuredConfig) { c.API.BackoffMultiplier = 0.5 }, wantErr: ErrInvalidAPIConfigs},
		{name: "max delay below initial", mutate: func(c *StructuredConfig) { c.API.MaxDelay = time.Millisecond }, wantErr: ErrInvalidAPIConfigs},
		{name: "unknown cache backend", mutate: func(c *StructuredConfig) { c.Cache.Backend = "disk" }, wantErr: ErrInvalidCacheConfigs},
		{name: "redis without address", mutate: func(c *StructuredConfig) { c.Cache.Backend = CacheBackendRedis }, wantErr: ErrInvalidCacheConfigs},
		{name: "redis with address", mutate: func(c *StructuredConfig) {
			c.Cache.Backend = CacheBackendRedis
			c.Cache.RedisAddress = "localhost:6379"
		}},
		{name: "empty dsn", mutate: func(c *StructuredConfig) { c.Storage.DB.DSN = "" }, wantErr: ErrInvalidStorageConfigs},
		{name: "zero toast duration", mutate: func(c *StructuredConfig) { c.UI.ToastDuration = 0 }, wantErr: ErrInvalidUIConfigs},
		{name: "zero sweep interval", mutate: func(c *StructuredConfig) { c.Workers.CacheSweepInterval = 0 }, wantErr: ErrInvalidWorkerConfigs},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaultConfig()
			tt.mutate(cfg)

			err := cfg.validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
