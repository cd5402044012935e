// ABOUTME: Zero-phase Butterworth filtering
// ABOUTME: Biquad cascade design plus forward-backward application per channel
package dsp

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// biquad is one second-order IIR section, normalized so a0 == 1.
type biquad struct {
	b0, b1, b2 float64
	a1, a2     float64
}

// filterKind selects the biquad prototype.
type filterKind int

const (
	kindLowpass filterKind = iota
	kindHighpass
)

// ValidateCutoff checks that a cutoff frequency is usable at the given
// sample rate: strictly positive and below Nyquist. name labels the
// offending flag in the error message.
func ValidateCutoff(cutoff float64, rate int, name string) error {
	nyquist := float64(rate) / 2
	if cutoff <= 0 {
		return fmt.Errorf("%s cutoff must be positive, got %g", name, cutoff)
	}
	if cutoff >= nyquist {
		return fmt.Errorf("%s cutoff (%g Hz) must be less than Nyquist (%g Hz)", name, cutoff, nyquist)
	}
	return nil
}

// validateOrder rejects orders the biquad cascade cannot realize.
func validateOrder(order int) error {
	if order < 2 || order%2 != 0 {
		return fmt.Errorf("filter order must be even and at least 2, got %d", order)
	}
	return nil
}

// design builds an order-N Butterworth cascade of N/2 biquads. Section Q
// values follow the Butterworth pole pairing: Q_k = 1/(2 sin((2k-1)π/2N)).
func design(kind filterKind, cutoff float64, rate, order int) []biquad {
	sections := make([]biquad, 0, order/2)
	omega := 2 * math.Pi * cutoff / float64(rate)
	sinW := math.Sin(omega)
	cosW := math.Cos(omega)

	for k := 1; k <= order/2; k++ {
		q := 1 / (2 * math.Sin(float64(2*k-1)*math.Pi/float64(2*order)))
		alpha := sinW / (2 * q)
		a0 := 1 + alpha

		var s biquad
		switch kind {
		case kindLowpass:
			s.b0 = (1 - cosW) / 2 / a0
			s.b1 = (1 - cosW) / a0
			s.b2 = (1 - cosW) / 2 / a0
		case kindHighpass:
			s.b0 = (1 + cosW) / 2 / a0
			s.b1 = -(1 + cosW) / a0
			s.b2 = (1 + cosW) / 2 / a0
		}
		s.a1 = -2 * cosW / a0
		s.a2 = (1 - alpha) / a0
		sections = append(sections, s)
	}
	return sections
}

// process runs one section over x in place, transposed direct form II.
func (s *biquad) process(x []float64) {
	var z1, z2 float64
	for i, v := range x {
		y := s.b0*v + z1
		z1 = s.b1*v - s.a1*y + z2
		z2 = s.b2*v - s.a2*y
		x[i] = y
	}
}

// filtfilt applies the cascade forward and then backward over x, giving
// zero phase shift and squared magnitude response.
func filtfilt(sections []biquad, x []float64) {
	for i := range sections {
		s := sections[i]
		s.process(x)
	}
	floats.Reverse(x)
	for i := range sections {
		s := sections[i]
		s.process(x)
	}
	floats.Reverse(x)
}

// applyPerChannel deinterleaves buf, runs filtfilt on each channel, and
// writes the result back in place.
func applyPerChannel(sections []biquad, buf []float64, channels int) {
	if channels <= 1 {
		filtfilt(sections, buf)
		return
	}
	frames := len(buf) / channels
	scratch := make([]float64, frames)
	for ch := 0; ch < channels; ch++ {
		for i := 0; i < frames; i++ {
			scratch[i] = buf[i*channels+ch]
		}
		filtfilt(sections, scratch)
		for i := 0; i < frames; i++ {
			buf[i*channels+ch] = scratch[i]
		}
	}
}

// Lowpass applies a zero-phase Butterworth lowpass to interleaved samples.
func Lowpass(buf []float64, channels int, cutoff float64, rate, order int) error {
	if err := ValidateCutoff(cutoff, rate, "lowpass"); err != nil {
		return err
	}
	if err := validateOrder(order); err != nil {
		return err
	}
	applyPerChannel(design(kindLowpass, cutoff, rate, order), buf, channels)
	return nil
}

// Highpass applies a zero-phase Butterworth highpass to interleaved samples.
func Highpass(buf []float64, channels int, cutoff float64, rate, order int) error {
	if err := ValidateCutoff(cutoff, rate, "highpass"); err != nil {
		return err
	}
	if err := validateOrder(order); err != nil {
		return err
	}
	applyPerChannel(design(kindHighpass, cutoff, rate, order), buf, channels)
	return nil
}

// Bandpass applies a zero-phase bandpass realized as a highpass at low
// cascaded with a lowpass at high.
func Bandpass(buf []float64, channels int, low, high float64, rate, order int) error {
	if err := ValidateCutoff(low, rate, "bandpass low"); err != nil {
		return err
	}
	if err := ValidateCutoff(high, rate, "bandpass high"); err != nil {
		return err
	}
	if low >= high {
		return fmt.Errorf("bandpass low (%g Hz) must be less than high (%g Hz)", low, high)
	}
	if err := validateOrder(order); err != nil {
		return err
	}
	sections := design(kindHighpass, low, rate, order)
	sections = append(sections, design(kindLowpass, high, rate, order)...)
	applyPerChannel(sections, buf, channels)
	return nil
}
