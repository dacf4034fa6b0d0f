package systems

import "math"

// clampFloat clamps v to [minVal, maxVal].
func clampFloat(v, minVal, maxVal float32) float32 {
	if v < minVal {
		return minVal
	}
	if v > maxVal {
		return maxVal
	}
	return v
}

func absf(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}

// nonNegative maps negative and NaN values to zero.
func nonNegative(x float32) float32 {
	if x > 0 {
		return x
	}
	return 0
}

func sqrtf(x float32) float32 {
	return float32(math.Sqrt(float64(x)))
}
