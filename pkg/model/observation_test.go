package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func localTS(hour int) int64 {
	return time.Date(2026, time.March, 10, hour, 30, 0, 0, time.Local).Unix()
}

func TestObservationAge(t *testing.T) {
	obs := Observation{Timestamp: 1000}

	assert.Equal(t, int64(500), obs.Age(1500))
	assert.Equal(t, int64(0), obs.Age(1000))
	assert.Equal(t, int64(0), obs.Age(500), "future observations clamp to zero")
}

func TestObservationTime(t *testing.T) {
	ts := localTS(9)
	obs := Observation{Timestamp: ts}
	assert.Equal(t, ts, obs.Time().Unix())
}

func TestTimeFeaturesDayBoundaries(t *testing.T) {
	cases := []struct {
		hour  int
		isDay bool
	}{
		{0, false},
		{5, false},
		{6, true}, // day starts at 06:00 inclusive
		{12, true},
		{17, true},
		{18, false}, // and ends at 18:00 exclusive
		{23, false},
	}
	for _, tc := range cases {
		f := TimeFeaturesFromTimestamp(localTS(tc.hour))
		assert.Equal(t, tc.hour, f.Hour, "hour %d", tc.hour)
		assert.Equal(t, tc.isDay, f.IsDay, "hour %d", tc.hour)
	}
}
