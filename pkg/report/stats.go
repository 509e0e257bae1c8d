package report

import (
	"fmt"
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/beelight/beelight/pkg/model"
)

// Summary describes the empirical distribution of a history batch. It is
// printed by the backfill tool and embedded in chart subtitles.
type Summary struct {
	Count       int
	ManualCount int

	MeanAmbient   float64
	StdDevAmbient float64
	MinAmbient    int
	MaxAmbient    int
	AmbientP10    float64
	AmbientP50    float64
	AmbientP90    float64

	MeanManualBrightness float64
}

// Summarize computes distribution statistics over a history batch. A nil or
// empty batch yields a zero Summary.
func Summarize(history []model.Observation) Summary {
	if len(history) == 0 {
		return Summary{}
	}

	ambient := make([]float64, len(history))
	var (
		manualCount   int
		brightnessSum float64
	)
	for i, obs := range history {
		ambient[i] = float64(obs.AmbientLight)
		if obs.IsManualAdjustment {
			manualCount++
			brightnessSum += float64(obs.ScreenBrightness)
		}
	}
	sort.Float64s(ambient)

	s := Summary{
		Count:         len(history),
		ManualCount:   manualCount,
		MeanAmbient:   stat.Mean(ambient, nil),
		StdDevAmbient: stat.StdDev(ambient, nil),
		MinAmbient:    int(ambient[0]),
		MaxAmbient:    int(ambient[len(ambient)-1]),
		AmbientP10:    stat.Quantile(0.1, stat.Empirical, ambient, nil),
		AmbientP50:    stat.Quantile(0.5, stat.Empirical, ambient, nil),
		AmbientP90:    stat.Quantile(0.9, stat.Empirical, ambient, nil),
	}
	if manualCount > 0 {
		s.MeanManualBrightness = brightnessSum / float64(manualCount)
	}
	return s
}

// String renders the summary as a short multi-line report.
func (s Summary) String() string {
	if s.Count == 0 {
		return "no observations"
	}
	return fmt.Sprintf(
		"observations: %d (%d manual)\n"+
			"ambient: mean=%.1f stddev=%.1f min=%d max=%d p10=%.0f p50=%.0f p90=%.0f\n"+
			"manual brightness: mean=%.1f",
		s.Count, s.ManualCount,
		s.MeanAmbient, s.StdDevAmbient, s.MinAmbient, s.MaxAmbient,
		s.AmbientP10, s.AmbientP50, s.AmbientP90,
		s.MeanManualBrightness,
	)
}
