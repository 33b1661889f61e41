package workers

import (
	"context"
	"time"

	"github.com/MKhiriev/go-storefront/internal/logger"
)

// DefaultSweepInterval is used when the configured interval is not positive.
const DefaultSweepInterval = time.Minute

// NewCacheSweeper returns a worker that purges expired response cache
// entries every interval.
func NewCacheSweeper(cache Sweeper, interval time.Duration, log *logger.Logger) Worker {
	if interval <= 0 {
		interval = DefaultSweepInterval
	}

	return newTickerJob(interval, false, func(ctx context.Context) {
		removed, err := cache.Sweep(ctx)
		if err != nil {
			log.Err(err).Str("func", "cacheSweeper").Msg("cache sweep failed")
			return
		}
		if removed > 0 {
			log.Debug().Str("func", "cacheSweeper").Int("removed", removed).Msg("expired cache entries purged")
		}
	})
}
