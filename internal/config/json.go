package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// StructuredJSONConfig is the on-disk JSON layout of the configuration file.
type StructuredJSONConfig struct {
	App struct {
		Environment  string          `json:"environment"`
		LogLevel     string          `json:"log_level"`
		FeatureFlags map[string]bool `json:"feature_flags"`
		CSRFToken    string          `json:"csrf_token"`
	} `json:"app"`

	API struct {
		BaseURL           string   `json:"base_url"`
		RequestTimeout    Duration `json:"request_timeout"`
		MaxAttempts       int      `json:"max_attempts"`
		InitialDelay      Duration `json:"initial_delay"`
		BackoffMultiplier float64  `json:"backoff_multiplier"`
		MaxDelay          Duration `json:"max_delay"`
	} `json:"api"`

	Cache struct {
		Disabled      bool     `json:"disabled"`
		Backend       string   `json:"backend"`
		TTL           Duration `json:"ttl"`
		RedisAddress  string   `json:"redis_address"`
		RedisPassword string   `json:"redis_password"`
		RedisDB       int      `json:"redis_db"`
	} `json:"cache"`

	Storage struct {
		DB struct {
			DSN string `json:"dsn"`
		} `json:"db"`
	} `json:"storage"`

	UI struct {
		ToastDuration  Duration `json:"toast_duration"`
		ResizeDebounce Duration `json:"resize_debounce"`
	} `json:"ui"`

	Workers struct {
		CacheSweepInterval   Duration `json:"cache_sweep_interval"`
		ConnectivityInterval Duration `json:"connectivity_interval"`
	} `json:"workers"`
}

func parseJSON(jsonFilePath string) (*StructuredConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var jsonCfg StructuredJSONConfig
	if err := json.NewDecoder(jsonFile).Decode(&jsonCfg); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	cfg := &StructuredConfig{
		App: App{
			Environment:  jsonCfg.App.Environment,
			LogLevel:     jsonCfg.App.LogLevel,
			FeatureFlags: jsonCfg.App.FeatureFlags,
			CSRFToken:    jsonCfg.App.CSRFToken,
		},
		API: API{
			BaseURL:           jsonCfg.API.BaseURL,
			RequestTimeout:    time.Duration(jsonCfg.API.RequestTimeout),
			MaxAttempts:       jsonCfg.API.MaxAttempts,
			InitialDelay:      time.Duration(jsonCfg.API.InitialDelay),
			BackoffMultiplier: jsonCfg.API.BackoffMultiplier,
			MaxDelay:          time.Duration(jsonCfg.API.MaxDelay),
		},
		Cache: Cache{
			Disabled:      jsonCfg.Cache.Disabled,
			Backend:       jsonCfg.Cache.Backend,
			TTL:           time.Duration(jsonCfg.Cache.TTL),
			RedisAddress:  jsonCfg.Cache.RedisAddress,
			RedisPassword: jsonCfg.Cache.RedisPassword,
			RedisDB:       jsonCfg.Cache.RedisDB,
		},
		Storage: Storage{DB: DB{DSN: jsonCfg.Storage.DB.DSN}},
		UI: UI{
			ToastDuration:  time.Duration(jsonCfg.UI.ToastDuration),
			ResizeDebounce: time.Duration(jsonCfg.UI.ResizeDebounce),
		},
		Workers: Workers{
			CacheSweepInterval:   time.Duration(jsonCfg.Workers.CacheSweepInterval),
			ConnectivityInterval: time.Duration(jsonCfg.Workers.ConnectivityInterval),
		},
	}

	return cfg, nil
}

// Duration is a wrapper around time.Duration that supports JSON unmarshaling
// from strings like "1h", "30s" as well as from nanosecond numbers.
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return fmt.Errorf("invalid duration: %s", string(b))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
