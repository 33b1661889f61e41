package state

import (
	"context"
	"errors"
	"maps"
	"net/url"
	"slices"
	"sync"
	"time"

	"github.com/MKhiriev/go-storefront/internal/adapter"
	"github.com/MKhiriev/go-storefront/internal/logger"
	"github.com/MKhiriev/go-storefront/internal/utils"
	"github.com/MKhiriev/go-storefront/models"
)

// DefaultMaxErrorReports is the size of the error ring used by
// [NewMonitoringStore] when given a non-positive capacity.
const DefaultMaxErrorReports = 50

const errorLogInterval = time.Second

// MonitoringStore keeps recent API failures and per-endpoint request
// statistics.
type MonitoringStore struct {
	mu       sync.Mutex
	reports  []models.ErrorReport
	capacity int
	stats    map[string]models.RequestStats

	logThrottle *utils.Throttler
	now         func() time.Time
	logger      *logger.Logger
}

func NewMonitoringStore(capacity int, log *logger.Logger) *MonitoringStore {
	if capacity <= 0 {
		capacity = DefaultMaxErrorReports
	}
	return &MonitoringStore{
		capacity:    capacity,
		stats:       make(map[string]models.RequestStats),
		logThrottle: utils.NewThrottler(errorLogInterval),
		now:         time.Now,
		logger:      log,
	}
}

// ReportError stores r, evicting the oldest report when the ring is full.
func (s *MonitoringStore) ReportError(r models.ErrorReport) {
	if r.OccurredAt.IsZero() {
		r.OccurredAt = s.now()
	}

	s.mu.Lock()
	s.reports = append(s.reports, r)
	if over := len(s.reports) - s.capacity; over > 0 {
		s.reports = slices.Delete(s.reports, 0, over)
	}
	s.mu.Unlock()

	s.logThrottle.Do(func() {
		s.logger.Warn().
			Str("code", r.Code).
			Int("status", r.StatusCode).
			Str("trace_id", r.TraceID).
			Str("context", r.Context).
			Msg(r.Message)
	})
}

// Errors returns the stored reports, oldest first.
func (s *MonitoringStore) Errors() []models.ErrorReport {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.reports)
}

// Clear drops all reports and request statistics.
func (s *MonitoringStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.reports = nil
	clear(s.stats)
}

// RecordRequest adds one call to endpoint's statistics.
func (s *MonitoringStore) RecordRequest(endpoint string, elapsed time.Duration, failed bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := s.stats[endpoint]
	st.Count++
	st.TotalDuration += elapsed
	if failed {
		st.Failures++
	}
	s.stats[endpoint] = st
}

// RequestStats returns a copy of the per-endpoint statistics.
func (s *MonitoringStore) RequestStats() map[string]models.RequestStats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return maps.Clone(s.stats)
}

// ErrorInterceptor reports every failed attempt and leaves the error
// unchanged.
func (s *MonitoringStore) ErrorInterceptor() adapter.ErrorInterceptor {
	return func(_ context.Context, req *adapter.Request, err *adapter.APIError) *adapter.APIError {
		s.ReportError(models.ErrorReport{
			Code:       err.Code,
			Message:    err.Message,
			StatusCode: err.StatusCode,
			TraceID:    err.TraceID,
			Context:    req.Method + " " + endpoint(req.URL),
		})
		return nil
	}
}

// Observer feeds request statistics keyed by "METHOD path".
func (s *MonitoringStore) Observer() adapter.Observer {
	return func(_ context.Context, req *adapter.Request, _ *models.Response, err error, elapsed time.Duration) {
		var apiErr *adapter.APIError
		failed := err != nil && !(errors.As(err, &apiErr) && apiErr.Code == adapter.CodeCanceled)
		s.RecordRequest(req.Method+" "+endpoint(req.URL), elapsed, failed)
	}
}

// endpoint strips scheme, host and query from raw.
func endpoint(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.Path == "" {
		return raw
	}
	return u.Path
}
