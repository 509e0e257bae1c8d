package report

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/beelight/beelight/pkg/model"
)

func TestSummarizeEmpty(t *testing.T) {
	s := Summarize(nil)
	assert.Zero(t, s.Count)
	assert.Equal(t, "no observations", s.String())
}

func TestSummarize(t *testing.T) {
	history := []model.Observation{
		{Timestamp: 1, AmbientLight: 100, ScreenBrightness: 30, IsManualAdjustment: true},
		{Timestamp: 2, AmbientLight: 300, ScreenBrightness: 55},
		{Timestamp: 3, AmbientLight: 200, ScreenBrightness: 50, IsManualAdjustment: true},
		{Timestamp: 4, AmbientLight: 400, ScreenBrightness: 80, IsManualAdjustment: true},
	}

	s := Summarize(history)

	assert.Equal(t, 4, s.Count)
	assert.Equal(t, 3, s.ManualCount)
	assert.InDelta(t, 250.0, s.MeanAmbient, 1e-9)
	assert.Equal(t, 100, s.MinAmbient)
	assert.Equal(t, 400, s.MaxAmbient)
	assert.Greater(t, s.StdDevAmbient, 0.0)
	assert.InDelta(t, (30.0+50.0+80.0)/3, s.MeanManualBrightness, 1e-9)

	// Empirical quantiles over [100, 200, 300, 400].
	assert.InDelta(t, 100.0, s.AmbientP10, 1e-9)
	assert.InDelta(t, 200.0, s.AmbientP50, 1e-9)
	assert.InDelta(t, 400.0, s.AmbientP90, 1e-9)
}

func TestSummaryString(t *testing.T) {
	s := Summarize([]model.Observation{
		{Timestamp: 1, AmbientLight: 100, ScreenBrightness: 30, IsManualAdjustment: true},
		{Timestamp: 2, AmbientLight: 300, ScreenBrightness: 70, IsManualAdjustment: true},
	})

	out := s.String()
	assert.True(t, strings.HasPrefix(out, "observations: 2 (2 manual)"))
	assert.Contains(t, out, "min=100 max=300")
	assert.Contains(t, out, "manual brightness: mean=50.0")
}
