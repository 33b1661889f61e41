package adapter

import (
	"math"
	"time"

	"github.com/sethvargo/go-retry"

	"github.com/MKhiriev/go-storefront/internal/config"
)

// RetryPolicy describes how many times and how far apart attempts run.
type RetryPolicy struct {
	MaxAttempts  int
	InitialDelay time.Duration
	Multiplier   float64
	MaxDelay     time.Duration
}

// NewRetryPolicy builds a policy from the API configuration.
func NewRetryPolicy(cfg config.API) RetryPolicy {
	return RetryPolicy{
		MaxAttempts:  cfg.MaxAttempts,
		InitialDelay: cfg.InitialDelay,
		Multiplier:   cfg.BackoffMultiplier,
		MaxDelay:     cfg.MaxDelay,
	}
}

// Delay returns the wait after the given failed attempt (1-based):
// InitialDelay × Multiplier^(attempt-1), capped by MaxDelay.
func (p RetryPolicy) Delay(attempt int) time.Duration {
	if attempt < 1 {
		attempt = 1
	}
	multiplier := p.Multiplier
	if multiplier < 1 {
		multiplier = 1
	}

	d := float64(p.InitialDelay) * math.Pow(multiplier, float64(attempt-1))
	if p.MaxDelay > 0 && d > float64(p.MaxDelay) {
		return p.MaxDelay
	}
	return time.Duration(d)
}

// backoff returns a fresh go-retry backoff allowing maxAttempts-1 retries.
func (p RetryPolicy) backoff(maxAttempts int) retry.Backoff {
	if maxAttempts < 1 {
		maxAttempts = 1
	}

	attempt := 0
	next := retry.BackoffFunc(func() (time.Duration, bool) {
		attempt++
		return p.Delay(attempt), false
	})

	return retry.WithMaxRetries(uint64(maxAttempts-1), next)
}
