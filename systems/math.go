package systems

import "math"

// clamp restricts v to [minVal, maxVal].
func clamp(v, minVal, maxVal float64) float64 {
	if v < minVal {
		return minVal
	}
	if v > maxVal {
		return maxVal
	}
	return v
}

// sign returns -1, 0 or 1.
func sign(v float64) float64 {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}

// NormalizeAngle wraps an angle to [-Pi, Pi].
func NormalizeAngle(angle float64) float64 {
	angle = math.Mod(angle, 2*math.Pi)
	if angle > math.Pi {
		angle -= 2 * math.Pi
	} else if angle < -math.Pi {
		angle += 2 * math.Pi
	}
	return angle
}

// ClampDT bounds a frame time to (0, maxDT]. Non-positive and NaN frame
// times yield 0, which callers treat as "skip this tick".
func ClampDT(dt, maxDT float64) float64 {
	if !(dt > 0) {
		return 0
	}
	return math.Min(dt, maxDT)
}
