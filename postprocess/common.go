package postprocess

import "math"

// clamp restricts the value val to be within the range min and max.  NaN
// is mapped to min
func clamp(val, min, max float32) float32 {

	if math.IsNaN(float64(val)) || val < min {
		return min
	}

	if val > max {
		return max
	}

	return val
}
