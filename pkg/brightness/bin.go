package brightness

// DefaultBinCapacity is the maximum number of weighted samples retained per bin.
const DefaultBinCapacity = 50

// WeightedSample is a brightness value tagged with a relevance weight and the
// timestamp of the observation it came from. Samples are owned exclusively by
// one AdaptiveBin.
type WeightedSample struct {
	Brightness int
	Weight     float64
	Timestamp  int64
}

// AdaptiveBin covers one contiguous sub-range of the ambient-light domain and
// aggregates the weighted brightness samples that fell into it. The range is
// [Min, Max); the model treats the last bin's upper bound as inclusive.
type AdaptiveBin struct {
	Min int
	Max int

	samples     []WeightedSample
	totalWeight float64
	capacity    int
}

// NewAdaptiveBin creates a bin for the range [min, max) with the given sample
// capacity. A capacity <= 0 falls back to DefaultBinCapacity.
func NewAdaptiveBin(min, max, capacity int) *AdaptiveBin {
	if capacity <= 0 {
		capacity = DefaultBinCapacity
	}
	return &AdaptiveBin{
		Min:      min,
		Max:      max,
		samples:  make([]WeightedSample, 0, capacity),
		capacity: capacity,
	}
}

// Update appends a sample to the bin. When the bin exceeds its capacity, the
// sample with the minimum weight is evicted; ties evict the oldest of the
// equal-weight samples (first in insertion order). Update always succeeds.
func (b *AdaptiveBin) Update(brightness int, weight float64, timestamp int64) {
	b.samples = append(b.samples, WeightedSample{
		Brightness: brightness,
		Weight:     weight,
		Timestamp:  timestamp,
	})
	b.totalWeight += weight

	if len(b.samples) <= b.capacity {
		return
	}

	minIdx := 0
	minWeight := b.samples[0].Weight
	for i, s := range b.samples {
		if s.Weight < minWeight {
			minWeight = s.Weight
			minIdx = i
		}
	}

	b.totalWeight -= b.samples[minIdx].Weight
	b.samples = append(b.samples[:minIdx], b.samples[minIdx+1:]...)
}

// WeightedAverage returns the weight-weighted mean brightness of the current
// samples. The second return value is false when the bin holds no usable data
// (no samples or zero total weight).
func (b *AdaptiveBin) WeightedAverage() (float64, bool) {
	if len(b.samples) == 0 || b.totalWeight == 0 {
		return 0, false
	}

	var sum float64
	for _, s := range b.samples {
		sum += float64(s.Brightness) * s.Weight
	}
	return sum / b.totalWeight, true
}

// Cleanup removes every sample older than maxAge seconds relative to now and
// recomputes the total weight from the survivors.
func (b *AdaptiveBin) Cleanup(now, maxAge int64) {
	kept := b.samples[:0]
	var weight float64
	for _, s := range b.samples {
		if now-s.Timestamp <= maxAge {
			kept = append(kept, s)
			weight += s.Weight
		}
	}
	b.samples = kept
	b.totalWeight = weight
}

// Size returns the current number of samples in the bin.
func (b *AdaptiveBin) Size() int {
	return len(b.samples)
}

// TotalWeight returns the sum of weights over the bin's current samples.
func (b *AdaptiveBin) TotalWeight() float64 {
	return b.totalWeight
}

// Midpoint returns the center of the bin's ambient range. It is used to
// approximate the ambient light of retained samples, which do not carry their
// exact ambient value.
func (b *AdaptiveBin) Midpoint() int {
	return (b.Min + b.Max) / 2
}

// newest returns the most recently stamped sample, or false when empty.
func (b *AdaptiveBin) newest() (WeightedSample, bool) {
	if len(b.samples) == 0 {
		return WeightedSample{}, false
	}
	latest := b.samples[0]
	for _, s := range b.samples[1:] {
		if s.Timestamp > latest.Timestamp {
			latest = s
		}
	}
	return latest, true
}
