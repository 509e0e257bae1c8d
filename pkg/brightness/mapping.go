package brightness

import "math"

// NonlinearMap applies a sigmoid mapping of an ambient-light value into the
// (0, 1) range, flattening the sensor's wide dynamic range. It is not part of
// the train or predict paths; bin lookup works on raw ambient values. The
// mapping is kept as a standalone utility for callers that want a compressed
// ambient scale.
func NonlinearMap(ambient int) float64 {
	exponent := -float64(ambient) / 300.0
	if exponent > 700 {
		exponent = 700
	}
	if exponent < -700 {
		exponent = -700
	}
	return 1.0 / (1.0 + math.Exp(exponent))
}
