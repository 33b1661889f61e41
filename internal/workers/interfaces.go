// Package workers runs the storefront's periodic background jobs.
// It defines the Worker interface and a Workers aggregate that starts and
// stops every job together.
package workers

import "context"

// Worker is a background job.
//
// Start launches the job and returns immediately; the job runs until ctx is
// cancelled or Stop is called. Stop blocks until the job has exited and is a
// no-op when the job is not running.
type Worker interface {
	Start(ctx context.Context)
	Stop()
}

// Sweeper purges expired entries and returns how many were removed.
type Sweeper interface {
	Sweep(ctx context.Context) (int, error)
}

// HealthChecker probes the storefront API.
type HealthChecker interface {
	Health(ctx context.Context) error
}

// ConnectivitySink receives the probed connectivity state.
type ConnectivitySink interface {
	SetOnline(online bool)
}
