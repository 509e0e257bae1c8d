package model

import "time"

// Observation represents a single sensor/user sample: the ambient light level
// and screen brightness at a point in time, plus whether the brightness was
// set by the user. Observations are immutable once created.
type Observation struct {
	Timestamp          int64 `json:"timestamp"` // unix seconds
	AmbientLight       int   `json:"ambient_light"`
	ScreenBrightness   int   `json:"screen_brightness"` // percent, 0-100
	IsManualAdjustment bool  `json:"is_manual_adjustment"`
}

// Time returns the observation timestamp as a time.Time in the local zone.
func (o *Observation) Time() time.Time {
	return time.Unix(o.Timestamp, 0)
}

// Age returns the elapsed seconds between now and the observation, clamped
// to zero for observations stamped in the future.
func (o *Observation) Age(now int64) int64 {
	age := now - o.Timestamp
	if age < 0 {
		return 0
	}
	return age
}

// TimeFeatures are derived time-of-day features used for sample weighting.
type TimeFeatures struct {
	Hour  int  `json:"hour"` // 0-23, local time
	IsDay bool `json:"is_day"`
}

// TimeFeaturesFromTimestamp derives time features from a unix timestamp.
// Daytime is 06:00 (inclusive) to 18:00 (exclusive) local time.
func TimeFeaturesFromTimestamp(ts int64) TimeFeatures {
	hour := time.Unix(ts, 0).Hour()
	return TimeFeatures{
		Hour:  hour,
		IsDay: hour >= 6 && hour < 18,
	}
}
