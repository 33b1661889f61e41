package adapter

import (
	"context"
	"time"

	"github.com/MKhiriev/go-storefront/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/adapter_mock.go -package=mock

// Cache stores successful API responses for a limited time.
//
// Get reports a miss with ok == false and a nil error; expired entries are
// misses. Sweep purges expired entries and returns how many were removed.
type Cache interface {
	Get(ctx context.Context, key string) (resp *models.Response, ok bool, err error)
	Set(ctx context.Context, key string, resp *models.Response, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Clear(ctx context.Context) error
	Sweep(ctx context.Context) (int, error)
}

// StorefrontAPI is the typed view of the storefront endpoints consumed by the
// stores and background workers.
type StorefrontAPI interface {
	// SubmitWaitlist posts a waitlist signup. Never cached.
	SubmitWaitlist(ctx context.Context, entry models.WaitlistEntry) error

	// ListProducts returns the product listing matching q.
	ListProducts(ctx context.Context, q models.ProductQuery) ([]models.Product, error)

	// GetProduct returns a single product by id.
	GetProduct(ctx context.Context, id string) (models.Product, error)

	// Health probes the API with a single uncached attempt.
	Health(ctx context.Context) error
}
