// Package utils contains small math helpers shared across the module.
package utils

import "math"

func DegToRad(degrees float64) float64 {
	return degrees * math.Pi / 180
}

func RadToDeg(radians float64) float64 {
	return radians * 180 / math.Pi
}

// Math.pow( x, 2 ) is slow, this is faster
func Square(n float64) float64 {
	return n * n
}

// Clamp returns value bounded to [min, max].
func Clamp(value, min, max float64) float64 {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}

// Float64AlmostEqual compares two float64s within the given epsilon.
func Float64AlmostEqual(v, other, epsilon float64) bool {
	return math.Abs(v-other) <= epsilon
}
