package brightness

// smoothingWindow is a fixed-capacity ring buffer over recent prediction
// values. Pushing into a full window overwrites the oldest entry. It carries
// no locking: the owning Model is single-owner (see Model).
type smoothingWindow struct {
	data     []float64
	capacity int
	size     int
	head     int // next write position
}

func newSmoothingWindow(capacity int) *smoothingWindow {
	return &smoothingWindow{
		data:     make([]float64, capacity),
		capacity: capacity,
	}
}

// Push adds a value, evicting the oldest when full.
func (w *smoothingWindow) Push(v float64) {
	w.data[w.head] = v
	w.head = (w.head + 1) % w.capacity
	if w.size < w.capacity {
		w.size++
	}
}

// Mean returns the arithmetic mean of the current contents, or zero when the
// window is empty.
func (w *smoothingWindow) Mean() float64 {
	if w.size == 0 {
		return 0
	}
	var sum float64
	start := 0
	if w.size == w.capacity {
		start = w.head
	}
	for i := 0; i < w.size; i++ {
		sum += w.data[(start+i)%w.capacity]
	}
	return sum / float64(w.size)
}

// Size returns the current number of entries.
func (w *smoothingWindow) Size() int {
	return w.size
}

// Clear empties the window.
func (w *smoothingWindow) Clear() {
	w.size = 0
	w.head = 0
}
