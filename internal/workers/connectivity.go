package workers

import (
	"context"
	"time"

	"github.com/MKhiriev/go-storefront/internal/logger"
)

// DefaultProbeInterval is used when the configured interval is not positive.
const DefaultProbeInterval = 30 * time.Second

// NewConnectivityProbe returns a worker that checks the API health endpoint
// on start and every interval, publishing the result to sink.
func NewConnectivityProbe(api HealthChecker, sink ConnectivitySink, interval time.Duration, log *logger.Logger) Worker {
	if interval <= 0 {
		interval = DefaultProbeInterval
	}

	return newTickerJob(interval, true, func(ctx context.Context) {
		err := api.Health(ctx)
		if ctx.Err() != nil {
			// shutting down, the probe result means nothing
			return
		}
		if err != nil {
			log.Warn().Err(err).Str("func", "connectivityProbe").Msg("storefront API unreachable")
			sink.SetOnline(false)
			return
		}
		sink.SetOnline(true)
	})
}
