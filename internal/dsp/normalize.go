// ABOUTME: Peak normalization
// ABOUTME: Scales interleaved samples so the absolute peak hits a target level
package dsp

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// NormalizePeak scales buf in place so its peak absolute value equals
// target. A silent buffer (peak of exactly zero) is left unscaled.
func NormalizePeak(buf []float64, target float64) {
	if len(buf) == 0 {
		return
	}
	peak := floats.Norm(buf, math.Inf(1))
	if peak == 0 {
		return
	}
	floats.Scale(target/peak, buf)
}

// Peak returns the maximum absolute sample value in buf.
func Peak(buf []float64) float64 {
	if len(buf) == 0 {
		return 0
	}
	return floats.Norm(buf, math.Inf(1))
}
