package models

import "time"

// DeviceClass is the coarse device category used for layout decisions.
type DeviceClass string

const (
	DeviceMobile  DeviceClass = "mobile"
	DeviceTablet  DeviceClass = "tablet"
	DeviceDesktop DeviceClass = "desktop"
)

// PerformanceMetric is a passively collected timing sample (milliseconds).
type PerformanceMetric struct {
	Name       string    `json:"name"`
	Value      float64   `json:"value"`
	RecordedAt time.Time `json:"recorded_at"`
}

// ErrorReport is a captured client-side failure kept by the monitoring store.
type ErrorReport struct {
	Code       string    `json:"code"`
	Message    string    `json:"message"`
	StatusCode int       `json:"status_code"`
	TraceID    string    `json:"trace_id,omitempty"`
	Context    string    `json:"context,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

// RequestStats aggregates API calls per endpoint.
type RequestStats struct {
	Count         int           `json:"count"`
	Failures      int           `json:"failures"`
	TotalDuration time.Duration `json:"total_duration"`
}

// AverageDuration returns the mean request duration, or zero when empty.
func (r RequestStats) AverageDuration() time.Duration {
	if r.Count == 0 {
		return 0
	}
	return r.TotalDuration / time.Duration(r.Count)
}
