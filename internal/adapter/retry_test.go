package adapter

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/MKhiriev/go-storefront/internal/config"
)

func TestRetryPolicy_Delay(t *testing.T) {
	p := NewRetryPolicy(config.API{
		MaxAttempts:       5,
		InitialDelay:      time.Second,
		BackoffMultiplier: 2,
		MaxDelay:          10 * time.Second,
	})

	tests := []struct {
		attempt int
		want    time.Duration
	}{
		{attempt: 0, want: time.Second},
		{attempt: 1, want: time.Second},
		{attempt: 2, want: 2 * time.Second},
		{attempt: 3, want: 4 * time.Second},
		{attempt: 4, want: 8 * time.Second},
		{attempt: 5, want: 10 * time.Second},
		{attempt: 10, want: 10 * time.Second},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, p.Delay(tt.attempt), "attempt %d", tt.attempt)
	}
}

func TestRetryPolicy_Backoff(t *testing.T) {
	p := RetryPolicy{InitialDelay: 10 * time.Millisecond, Multiplier: 3, MaxDelay: time.Second}

	b := p.backoff(3)

	d, stop := b.Next()
	assert.False(t, stop)
	assert.Equal(t, 10*time.Millisecond, d)

	d, stop = b.Next()
	assert.False(t, stop)
	assert.Equal(t, 30*time.Millisecond, d)

	_, stop = b.Next()
	assert.True(t, stop, "three attempts allow two retries")
}

func TestRetryPolicy_SingleAttempt(t *testing.T) {
	b := RetryPolicy{InitialDelay: time.Millisecond, Multiplier: 2}.backoff(0)

	_, stop := b.Next()
	assert.True(t, stop)
}
