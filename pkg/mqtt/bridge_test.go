package mqtt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeviceTrackerObserveAmbient(t *testing.T) {
	tracker := NewDeviceTracker()

	obs := tracker.ObserveAmbient(&AmbientReading{DeviceID: "panel-01", Timestamp: 1700000100, Lux: 420})

	assert.Equal(t, int64(1700000100), obs.Timestamp)
	assert.Equal(t, 420, obs.AmbientLight)
	assert.False(t, obs.IsManualAdjustment)

	last := tracker.LastAmbient("panel-01")
	require.NotNil(t, last)
	assert.Equal(t, 420, last.Lux)
	assert.Nil(t, tracker.LastAmbient("panel-02"))
}

func TestDeviceTrackerObserveManualWithAmbient(t *testing.T) {
	tracker := NewDeviceTracker()

	obs, ok := tracker.ObserveManual(&ManualAdjustment{
		DeviceID:     "panel-01",
		Timestamp:    1700000200,
		Brightness:   70,
		AmbientLight: 500,
	})

	require.True(t, ok)
	assert.Equal(t, 500, obs.AmbientLight)
	assert.Equal(t, 70, obs.ScreenBrightness)
	assert.True(t, obs.IsManualAdjustment)
}

func TestDeviceTrackerObserveManualFallsBackToLastReading(t *testing.T) {
	tracker := NewDeviceTracker()
	tracker.ObserveAmbient(&AmbientReading{DeviceID: "panel-01", Timestamp: 1700000100, Lux: 420})

	obs, ok := tracker.ObserveManual(&ManualAdjustment{
		DeviceID:     "panel-01",
		Timestamp:    1700000200,
		Brightness:   70,
		AmbientLight: -1,
	})

	require.True(t, ok)
	assert.Equal(t, 420, obs.AmbientLight)
}

func TestDeviceTrackerObserveManualUnknownDevice(t *testing.T) {
	tracker := NewDeviceTracker()

	_, ok := tracker.ObserveManual(&ManualAdjustment{
		DeviceID:     "panel-99",
		Timestamp:    1700000200,
		Brightness:   70,
		AmbientLight: -1,
	})
	assert.False(t, ok)
}

func TestExtractDeviceID(t *testing.T) {
	assert.Equal(t, "panel-01", extractDeviceID("sensor/panel-01/illuminance"))
	assert.Equal(t, "panel-02", extractDeviceID("display/panel-02/manual"))
	assert.Equal(t, "", extractDeviceID("illuminance"))
}
