package brightness

import (
	"errors"
	"sort"

	"github.com/beelight/beelight/pkg/model"
)

// ErrInvalidConfig is returned by NewModel for unusable construction
// parameters. It is the model's only fatal error; every later operation is
// total over the model's current state.
var ErrInvalidConfig = errors.New("brightness: invalid model configuration")

// DefaultMaxAgeSeconds is how long a sample stays relevant: one week.
const DefaultMaxAgeSeconds = 7 * 24 * 3600

const (
	smoothingCapacity = 3

	// Outlier rejection thresholds relative to the last known point.
	outlierBrightnessDelta = 80
	outlierAmbientDelta    = 1200

	// Relative position band at each bin edge where neighbor interpolation
	// applies.
	interpolationBand = 0.2

	// Prediction adjustment factors.
	nightFactor = 0.8
	idleFactor  = 0.9

	// Weighting similarities for mismatched day phase and inactive state.
	offPhaseSimilarity = 0.2
	idleSimilarity     = 0.5
)

// Config holds model construction parameters. The three weight coefficients
// are independent additive contributions and need not sum to 1.
type Config struct {
	MinAmbient     int
	MaxAmbient     int
	BinCount       int
	BinCapacity    int // samples retained per bin, DefaultBinCapacity if 0
	TimeWeight     float64
	RecencyWeight  float64
	ActivityWeight float64
}

// DefaultConfig returns the stock parameters: a 0-2000 ambient domain split
// into 10 bins with a 0.3/0.4/0.3 time/recency/activity blend.
func DefaultConfig() Config {
	return Config{
		MinAmbient:     0,
		MaxAmbient:     2000,
		BinCount:       10,
		BinCapacity:    DefaultBinCapacity,
		TimeWeight:     0.3,
		RecencyWeight:  0.4,
		ActivityWeight: 0.3,
	}
}

// Model predicts a target screen brightness from ambient light, time of day
// and user activity, refining itself from manual brightness adjustments. It
// partitions the ambient domain into adaptive bins and aggregates weighted
// samples per bin.
//
// The model is not safe for concurrent use: Predict mutates the smoothing
// window, so hosts embedding it in a multi-goroutine process must serialize
// all calls on one instance (a single mutex or owner goroutine).
type Model struct {
	bins []*AdaptiveBin

	timeWeight     float64
	recencyWeight  float64
	activityWeight float64
	maxAgeSeconds  int64

	smoothing *smoothingWindow
}

// NewModel builds a model with bin boundaries dividing the ambient domain
// into equal-width ranges. The last bin absorbs the integer-division
// remainder so the bins jointly cover [MinAmbient, MaxAmbient].
func NewModel(cfg Config) (*Model, error) {
	if cfg.BinCount <= 0 {
		return nil, ErrInvalidConfig
	}
	if cfg.MinAmbient >= cfg.MaxAmbient {
		return nil, ErrInvalidConfig
	}

	m := &Model{
		bins:           make([]*AdaptiveBin, 0, cfg.BinCount),
		timeWeight:     cfg.TimeWeight,
		recencyWeight:  cfg.RecencyWeight,
		activityWeight: cfg.ActivityWeight,
		maxAgeSeconds:  DefaultMaxAgeSeconds,
		smoothing:      newSmoothingWindow(smoothingCapacity),
	}

	binSize := (cfg.MaxAmbient - cfg.MinAmbient) / cfg.BinCount
	for i := 0; i < cfg.BinCount; i++ {
		min := cfg.MinAmbient + i*binSize
		max := min + binSize
		if i == cfg.BinCount-1 {
			max = cfg.MaxAmbient
		}
		m.bins = append(m.bins, NewAdaptiveBin(min, max, cfg.BinCapacity))
	}

	return m, nil
}

// Bins exposes the model's bins in ascending order. Callers must not mutate
// them; the accessor exists for reporting and charting.
func (m *Model) Bins() []*AdaptiveBin {
	return m.bins
}

// MaxAgeSeconds returns the sample retention horizon.
func (m *Model) MaxAgeSeconds() int64 {
	return m.maxAgeSeconds
}

// findBin returns the index of the bin containing the ambient value. Ranges
// are half-open except the last bin, which is closed above. The second
// return value is false when the value falls outside every bin.
func (m *Model) findBin(ambient int) (int, bool) {
	for i, b := range m.bins {
		last := i == len(m.bins)-1
		if (ambient >= b.Min && ambient < b.Max) || (last && ambient >= b.Min) {
			return i, true
		}
	}
	return 0, false
}

// lastKnownPoint reconstructs an approximate most-recent observation by
// scanning all bins for the newest sample. Bins do not retain exact ambient
// values, so the ambient light is approximated by the containing bin's
// midpoint. Returns false when no bin holds any sample.
func (m *Model) lastKnownPoint() (model.Observation, bool) {
	var (
		found  bool
		latest model.Observation
	)
	for _, b := range m.bins {
		s, ok := b.newest()
		if !ok {
			continue
		}
		if !found || s.Timestamp > latest.Timestamp {
			latest = model.Observation{
				Timestamp:          s.Timestamp,
				AmbientLight:       b.Midpoint(),
				ScreenBrightness:   s.Brightness,
				IsManualAdjustment: true,
			}
			found = true
		}
	}
	return latest, found
}

// isOutlier reports whether the new observation jumps implausibly far from
// the last known point. With no prior point nothing is an outlier.
func isOutlier(obs, last model.Observation) bool {
	brightnessDiff := obs.ScreenBrightness - last.ScreenBrightness
	if brightnessDiff < 0 {
		brightnessDiff = -brightnessDiff
	}
	ambientDiff := obs.AmbientLight - last.AmbientLight
	if ambientDiff < 0 {
		ambientDiff = -ambientDiff
	}
	return brightnessDiff > outlierBrightnessDelta || ambientDiff > outlierAmbientDelta
}

// calculateWeight blends three independently scaled relevance signals: time-
// of-day phase match, recency decay over the retention horizon, and activity
// state. The result is a relative weight, not a probability, and may exceed 1.
func (m *Model) calculateWeight(current, point model.TimeFeatures, ageSeconds int64, isActive bool) float64 {
	timeSimilarity := offPhaseSimilarity
	if current.IsDay == point.IsDay {
		timeSimilarity = 1.0
	}

	ageFactor := 1.0 - float64(ageSeconds)/float64(m.maxAgeSeconds)
	if ageFactor < 0 {
		ageFactor = 0
	}

	activitySimilarity := idleSimilarity
	if isActive {
		activitySimilarity = 1.0
	}

	return m.timeWeight*timeSimilarity +
		m.recencyWeight*ageFactor +
		m.activityWeight*activitySimilarity
}

// Train feeds a single observation into the model. Only manual adjustments
// are ground truth; automatic brightness changes are ignored. Observations
// rejected as outliers or falling outside the binned domain are logged and
// skipped, never fatal.
func (m *Model) Train(obs model.Observation, now int64, isActive bool) {
	if !obs.IsManualAdjustment {
		return
	}

	if last, ok := m.lastKnownPoint(); ok && isOutlier(obs, last) {
		Logf("brightness: skipping outlier observation ambient=%d brightness=%d", obs.AmbientLight, obs.ScreenBrightness)
		return
	}

	current := model.TimeFeaturesFromTimestamp(now)
	point := model.TimeFeaturesFromTimestamp(obs.Timestamp)
	weight := m.calculateWeight(current, point, obs.Age(now), isActive)

	idx, ok := m.findBin(obs.AmbientLight)
	if !ok {
		Logf("brightness: ambient value %d outside binned domain, not trained", obs.AmbientLight)
		return
	}
	m.bins[idx].Update(obs.ScreenBrightness, weight, obs.Timestamp)
}

// Rebin recomputes bin boundaries from the empirical distribution of ambient
// light in the history. With fewer than twice as many observations as bins
// the call is a logged no-op. Degenerate non-last ranges are repaired by
// extending the upper bound to the next sorted value when possible; a range
// still degenerate after repair is warned about and left with the assigned
// boundaries.
func (m *Model) Rebin(history []model.Observation) {
	if len(history) < len(m.bins)*2 {
		Logf("brightness: %d observations is not enough history to rebin %d bins", len(history), len(m.bins))
		return
	}

	ambient := make([]int, len(history))
	for i, obs := range history {
		ambient[i] = obs.AmbientLight
	}
	sort.Ints(ambient)

	binCount := len(m.bins)
	total := len(ambient)

	for i, b := range m.bins {
		startIdx := (i * total) / binCount
		endIdx := ((i+1)*total)/binCount - 1
		if endIdx > total-1 {
			endIdx = total - 1
		}
		if startIdx >= total || endIdx < 0 || startIdx > endIdx {
			Logf("brightness: no valid index range for bin %d (%d-%d), boundaries unchanged", i, startIdx, endIdx)
			continue
		}

		b.Min = ambient[startIdx]
		if i == binCount-1 {
			b.Max = ambient[total-1]
		} else {
			b.Max = ambient[endIdx]
		}

		if b.Min >= b.Max && i < binCount-1 {
			if endIdx+1 < total {
				b.Max = ambient[endIdx+1]
			}
			if b.Min >= b.Max {
				Logf("brightness: bin %d range degenerate after rebin (%d-%d)", i, b.Min, b.Max)
			}
		}
	}
}

// nearestNeighborAverage searches outward from the given bin index for the
// closest bin with usable data, checking the lower neighbor before the upper
// one at each offset. Returns false when no bin in the model has data.
func (m *Model) nearestNeighborAverage(idx int) (float64, bool) {
	for offset := 1; offset < len(m.bins); offset++ {
		if prev := idx - offset; prev >= 0 {
			if avg, ok := m.bins[prev].WeightedAverage(); ok {
				return avg, true
			}
		}
		if next := idx + offset; next < len(m.bins) {
			if avg, ok := m.bins[next].WeightedAverage(); ok {
				return avg, true
			}
		}
	}
	return 0, false
}

// Predict returns the target brightness for the given ambient level, clamped
// to [0, 100]. The second return value is false when the ambient value falls
// outside the binned domain or no bin in the model holds data.
//
// Predict is stateful: each call pushes its result through the smoothing
// window, so two identical consecutive calls can return different values.
func (m *Model) Predict(ambient int, now int64, isActive bool) (float64, bool) {
	idx, ok := m.findBin(ambient)
	if !ok {
		Logf("brightness: ambient value %d outside binned domain, no prediction", ambient)
		return 0, false
	}
	mainBin := m.bins[idx]

	prediction, ok := mainBin.WeightedAverage()
	if !ok {
		prediction, ok = m.nearestNeighborAverage(idx)
		if !ok {
			return 0, false
		}
	}

	features := model.TimeFeaturesFromTimestamp(now)
	dayFactor := nightFactor
	if features.IsDay {
		dayFactor = 1.0
	}
	activityFactor := idleFactor
	if isActive {
		activityFactor = 1.0
	}

	adjusted := prediction * dayFactor * activityFactor

	// Boundary interpolation against the neighboring bin when the ambient
	// value sits in the outer 20% of the main bin.
	binRange := float64(mainBin.Max - mainBin.Min)
	position := 0.5
	if binRange > 0 {
		position = float64(ambient-mainBin.Min) / binRange
	}

	var (
		neighborPrediction  float64
		neighborOK          bool
		interpolationWeight float64
	)
	if position < interpolationBand && idx > 0 {
		if avg, ok := m.bins[idx-1].WeightedAverage(); ok {
			neighborPrediction = avg * dayFactor * activityFactor
			neighborOK = true
			interpolationWeight = (interpolationBand - position) / interpolationBand
		}
	} else if position > 1.0-interpolationBand && idx < len(m.bins)-1 {
		if avg, ok := m.bins[idx+1].WeightedAverage(); ok {
			neighborPrediction = avg * dayFactor * activityFactor
			neighborOK = true
			interpolationWeight = (position - (1.0 - interpolationBand)) / interpolationBand
		}
	}
	if neighborOK && interpolationWeight > 0 && interpolationWeight <= 1.0 {
		adjusted = adjusted*(1.0-interpolationWeight) + neighborPrediction*interpolationWeight
	}

	m.smoothing.Push(adjusted)
	smoothed := m.smoothing.Mean()

	if smoothed < 0 {
		smoothed = 0
	}
	if smoothed > 100 {
		smoothed = 100
	}
	return smoothed, true
}

// Cleanup drops samples older than the retention horizon from every bin.
func (m *Model) Cleanup(now int64) {
	for _, b := range m.bins {
		b.Cleanup(now, m.maxAgeSeconds)
	}
}

// LoadHistorical warm-starts the model from a history batch: boundaries are
// recomputed from the batch, then every observation is trained in ascending
// timestamp order.
//
// Each observation is trained against its own timestamp as "now" with the
// active flag forced on, which pins the recency term at its maximum for all
// historical data. That matches the behavior this model was ported from and
// is kept as-is, quirk included.
func (m *Model) LoadHistorical(history []model.Observation, now int64, isActive bool) {
	_ = now
	_ = isActive

	m.Rebin(history)

	sorted := make([]model.Observation, len(history))
	copy(sorted, history)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Timestamp < sorted[j].Timestamp
	})

	for _, obs := range sorted {
		m.Train(obs, obs.Timestamp, true)
	}
}
