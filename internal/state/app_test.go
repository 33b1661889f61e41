package state

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-storefront/models"
)

func TestClassifyDevice(t *testing.T) {
	tests := []struct {
		name  string
		width int
		ua    string
		want  models.DeviceClass
	}{
		{name: "iphone on wide viewport", width: 1200, ua: "Mozilla/5.0 (iPhone; CPU iPhone OS 17_0 like Mac OS X)", want: models.DeviceMobile},
		{name: "android phone", width: 412, ua: "Mozilla/5.0 (Linux; Android 14; Pixel 8) Mobile Safari/537.36", want: models.DeviceMobile},
		{name: "android tablet", width: 1280, ua: "Mozilla/5.0 (Linux; Android 13; SM-X700) Safari/537.36", want: models.DeviceTablet},
		{name: "ipad", width: 1366, ua: "Mozilla/5.0 (iPad; CPU OS 16_0 like Mac OS X)", want: models.DeviceTablet},
		{name: "desktop ua narrow window", width: 600, ua: "Mozilla/5.0 (X11; Linux x86_64) Firefox/128.0", want: models.DeviceMobile},
		{name: "width 767", width: 767, want: models.DeviceMobile},
		{name: "width 768", width: 768, want: models.DeviceTablet},
		{name: "width 1023", width: 1023, want: models.DeviceTablet},
		{name: "width 1024", width: 1024, want: models.DeviceDesktop},
		{name: "unknown", width: 0, want: models.DeviceDesktop},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifyDevice(tt.width, tt.ua))
		})
	}
}

func TestAppStore_ObserveViewportDebounced(t *testing.T) {
	app := NewAppStore(nil, 30*time.Millisecond)
	defer app.Close()

	app.ObserveViewport(500, "")
	app.ObserveViewport(900, "")
	assert.Equal(t, models.DeviceDesktop, app.Device())

	require.Eventually(t, func() bool {
		return app.Device() == models.DeviceTablet
	}, time.Second, 5*time.Millisecond)
	assert.Equal(t, 900, app.Viewport().Width)
}

func TestAppStore_ObserveViewportImmediate(t *testing.T) {
	app := NewAppStore(nil, 0)
	app.ObserveViewport(320, "")
	assert.Equal(t, models.DeviceMobile, app.Device())
}

func TestAppStore_OnlineAndFeatures(t *testing.T) {
	flags := map[string]bool{"waitlist": true}
	app := NewAppStore(flags, 0)

	assert.True(t, app.IsOnline())
	app.SetOnline(false)
	assert.False(t, app.IsOnline())

	assert.True(t, app.FeatureEnabled("waitlist"))
	assert.False(t, app.FeatureEnabled("reviews"))

	app.SetFeature("reviews", true)
	assert.True(t, app.FeatureEnabled("reviews"))

	// the caller's map is not shared
	flags["waitlist"] = false
	assert.True(t, app.FeatureEnabled("waitlist"))
	assert.Equal(t, map[string]bool{"waitlist": true, "reviews": true}, app.Features())
}

func TestAppStore_MetricsBounded(t *testing.T) {
	app := NewAppStore(nil, 0)

	for i := 0; i < maxMetrics+10; i++ {
		app.RecordMetric("fcp", float64(i))
	}

	metrics := app.Metrics()
	require.Len(t, metrics, maxMetrics)
	assert.Equal(t, float64(10), metrics[0].Value)
	assert.Equal(t, float64(maxMetrics+9), metrics[len(metrics)-1].Value)
}
