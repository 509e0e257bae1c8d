package mqtt

import (
	"sync"

	"github.com/beelight/beelight/pkg/model"
)

// DeviceTracker keeps the last ambient reading per device so that manual
// adjustments whose payload carries no ambient value can still be turned into
// complete observations.
type DeviceTracker struct {
	mu          sync.RWMutex
	lastAmbient map[string]*AmbientReading
}

// NewDeviceTracker creates an empty tracker.
func NewDeviceTracker() *DeviceTracker {
	return &DeviceTracker{
		lastAmbient: make(map[string]*AmbientReading),
	}
}

// ObserveAmbient records a reading and returns the non-manual observation it
// maps to.
func (t *DeviceTracker) ObserveAmbient(r *AmbientReading) model.Observation {
	t.mu.Lock()
	t.lastAmbient[r.DeviceID] = r
	t.mu.Unlock()

	return model.Observation{
		Timestamp:          r.Timestamp,
		AmbientLight:       r.Lux,
		ScreenBrightness:   0,
		IsManualAdjustment: false,
	}
}

// ObserveManual turns a manual adjustment into an observation. When the
// adjustment carries no ambient value, the device's last reading is used; if
// the device has never reported a reading, ok is false and the event is not
// usable for training.
func (t *DeviceTracker) ObserveManual(a *ManualAdjustment) (model.Observation, bool) {
	ambient := a.AmbientLight
	if ambient < 0 {
		t.mu.RLock()
		last := t.lastAmbient[a.DeviceID]
		t.mu.RUnlock()
		if last == nil {
			return model.Observation{}, false
		}
		ambient = last.Lux
	}

	return model.Observation{
		Timestamp:          a.Timestamp,
		AmbientLight:       ambient,
		ScreenBrightness:   a.Brightness,
		IsManualAdjustment: true,
	}, true
}

// LastAmbient returns the most recent reading for a device, or nil.
func (t *DeviceTracker) LastAmbient(deviceID string) *AmbientReading {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.lastAmbient[deviceID]
}
