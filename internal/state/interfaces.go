package state

import (
	"context"

	"github.com/MKhiriev/go-storefront/models"
)

// IDGenerator produces unique identifiers for cart lines and toasts.
type IDGenerator interface {
	Generate() string
}

// WaitlistSubmitter sends a waitlist entry to the backend.
type WaitlistSubmitter interface {
	SubmitWaitlist(ctx context.Context, entry models.WaitlistEntry) error
}
