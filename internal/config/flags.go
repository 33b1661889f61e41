package config

import (
	"flag"
	"fmt"
	"io"
	"time"
)

// parseFlags parses command-line configuration flags from args.
//
// Flags:
//
//	-api-url storefront API base URL
//	-request-timeout per-attempt timeout (e.g. "10s")
//	-max-attempts total attempts per request
//	-no-cache disable response caching
//	-cache-backend memory|redis
//	-cache-ttl default cache TTL (e.g. "5m")
//	-redis-address redis host:port
//	-d state database DSN
//	-log-level zerolog level name
//	-c/-config json file path with configs
func parseFlags(args []string) (*StructuredConfig, error) {
	fs := flag.NewFlagSet("storefront", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var (
		apiURL         string
		requestTimeout time.Duration
		maxAttempts    int
		noCache        bool
		cacheBackend   string
		cacheTTL       time.Duration
		redisAddress   string
		databaseDSN    string
		logLevel       string
		jsonConfigPath string
	)

	fs.StringVar(&apiURL, "api-url", "", "Storefront API base URL")
	fs.DurationVar(&requestTimeout, "request-timeout", 0, "Request timeout (e.g., 10s)")
	fs.IntVar(&maxAttempts, "max-attempts", 0, "Total attempts per request")
	fs.BoolVar(&noCache, "no-cache", false, "Disable response caching")
	fs.StringVar(&cacheBackend, "cache-backend", "", "Cache backend: memory or redis")
	fs.DurationVar(&cacheTTL, "cache-ttl", 0, "Default cache TTL (e.g., 5m)")
	fs.StringVar(&redisAddress, "redis-address", "", "Redis address host:port")
	fs.StringVar(&databaseDSN, "d", "", "State database DSN")
	fs.StringVar(&logLevel, "log-level", "", "Log level")
	fs.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	fs.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("error parsing flags: %w", err)
	}

	return &StructuredConfig{
		App: App{LogLevel: logLevel},
		API: API{
			BaseURL:        apiURL,
			RequestTimeout: requestTimeout,
			MaxAttempts:    maxAttempts,
		},
		Cache: Cache{
			Disabled:     noCache,
			Backend:      cacheBackend,
			TTL:          cacheTTL,
			RedisAddress: redisAddress,
		},
		Storage:      Storage{DB: DB{DSN: databaseDSN}},
		JSONFilePath: jsonConfigPath,
	}, nil
}
