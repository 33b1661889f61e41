package state

import (
	"maps"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/MKhiriev/go-storefront/internal/utils"
	"github.com/MKhiriev/go-storefront/models"
)

// Device width breakpoints in CSS pixels.
const (
	TabletMinWidth  = 768
	DesktopMinWidth = 1024
)

// maxMetrics bounds the performance metric buffer.
const maxMetrics = 100

// Viewport is the last observed window size and user agent.
type Viewport struct {
	Width     int
	UserAgent string
}

// AppStore tracks connectivity, device class, feature flags and passive
// performance metrics.
type AppStore struct {
	mu       sync.RWMutex
	online   bool
	device   models.DeviceClass
	viewport Viewport
	features map[string]bool
	metrics  []models.PerformanceMetric

	resize *utils.Debouncer
	now    func() time.Time
}

// NewAppStore returns an online desktop app store. features is copied.
func NewAppStore(features map[string]bool, resizeDebounce time.Duration) *AppStore {
	f := make(map[string]bool, len(features))
	maps.Copy(f, features)

	return &AppStore{
		online:   true,
		device:   models.DeviceDesktop,
		features: f,
		resize:   utils.NewDebouncer(resizeDebounce),
		now:      time.Now,
	}
}

func (s *AppStore) SetOnline(online bool) {
	s.mu.Lock()
	s.online = online
	s.mu.Unlock()
}

func (s *AppStore) IsOnline() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.online
}

// ObserveViewport records a resize. The device class is recomputed once no
// new resize has arrived for the debounce period.
func (s *AppStore) ObserveViewport(width int, userAgent string) {
	s.resize.Trigger(func() {
		device := ClassifyDevice(width, userAgent)

		s.mu.Lock()
		s.viewport = Viewport{Width: width, UserAgent: userAgent}
		s.device = device
		s.mu.Unlock()
	})
}

func (s *AppStore) Device() models.DeviceClass {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.device
}

func (s *AppStore) Viewport() Viewport {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.viewport
}

// FeatureEnabled reports whether flag name is on. Unknown flags are off.
func (s *AppStore) FeatureEnabled(name string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.features[name]
}

func (s *AppStore) SetFeature(name string, enabled bool) {
	s.mu.Lock()
	s.features[name] = enabled
	s.mu.Unlock()
}

// Features returns a copy of the flag map.
func (s *AppStore) Features() map[string]bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return maps.Clone(s.features)
}

// RecordMetric appends a timing sample, dropping the oldest one past the
// buffer limit.
func (s *AppStore) RecordMetric(name string, value float64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.metrics = append(s.metrics, models.PerformanceMetric{
		Name:       name,
		Value:      value,
		RecordedAt: s.now(),
	})
	if over := len(s.metrics) - maxMetrics; over > 0 {
		s.metrics = slices.Delete(s.metrics, 0, over)
	}
}

func (s *AppStore) Metrics() []models.PerformanceMetric {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.metrics)
}

// Close cancels a pending viewport update.
func (s *AppStore) Close() {
	s.resize.Cancel()
}

var (
	tabletTokens = []string{"ipad", "tablet", "kindle", "silk", "playbook"}
	mobileTokens = []string{"iphone", "ipod", "mobile", "blackberry", "iemobile", "opera mini"}
)

// ClassifyDevice derives the device class from the user agent first and
// falls back to the viewport width.
func ClassifyDevice(width int, userAgent string) models.DeviceClass {
	ua := strings.ToLower(userAgent)

	if ua != "" {
		android := strings.Contains(ua, "android")
		if containsAny(ua, tabletTokens) || (android && !strings.Contains(ua, "mobile")) {
			return models.DeviceTablet
		}
		if android || containsAny(ua, mobileTokens) {
			return models.DeviceMobile
		}
	}

	switch {
	case width <= 0:
		return models.DeviceDesktop
	case width < TabletMinWidth:
		return models.DeviceMobile
	case width < DesktopMinWidth:
		return models.DeviceTablet
	default:
		return models.DeviceDesktop
	}
}

func containsAny(s string, tokens []string) bool {
	return slices.ContainsFunc(tokens, func(t string) bool {
		return strings.Contains(s, t)
	})
}
