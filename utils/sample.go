// SPDX-License-Identifier: EPL-2.0

// Package utils holds sample-level helpers shared by the codecs and the
// resampler.
package utils

import "math"

// CubicInterpolate evaluates a Catmull-Rom spline through y0..y3 at x,
// the fractional position between y1 and y2 (0 <= x <= 1).
func CubicInterpolate(y0, y1, y2, y3, x float32) float32 {
	a0 := -0.5*y0 + 1.5*y1 - 1.5*y2 + 0.5*y3
	a1 := y0 - 2.5*y1 + 2*y2 - 0.5*y3
	a2 := -0.5*y0 + 0.5*y2

	return ((a0*x+a1)*x+a2)*x + y1
}

// Clamp limits x to [-1, 1].
func Clamp(x float32) float32 {
	return min(max(x, -1), 1)
}

// FullScale is the magnitude of the most negative signed integer sample at
// bitDepth, i.e. 2^(bitDepth-1).
func FullScale(bitDepth int) float32 {
	return float32(int64(1) << (bitDepth - 1))
}

// PCMToFloat maps a signed integer sample to [-1, 1).
func PCMToFloat(v, bitDepth int) float32 {
	return float32(v) / FullScale(bitDepth)
}

// FloatToPCM maps x back to a signed integer sample, rounding to nearest.
// PCMToFloat followed by FloatToPCM returns the original value.
func FloatToPCM(x float32, bitDepth int) int {
	scale := float64(FullScale(bitDepth))
	v := math.Round(float64(x) * scale)
	return int(min(max(v, -scale), scale-1))
}
