// ABOUTME: A/B buffer pair construction and validation
// ABOUTME: Loads two WAV sources into equal-length interleaved sample buffers
package audio

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/abaudio/abplay-go/internal/dsp"
	"github.com/abaudio/abplay-go/internal/wavio"
)

var (
	// ErrRateMismatch reports that the two sources have different sample rates.
	ErrRateMismatch = errors.New("sample rates differ")

	// ErrChannelMismatch reports that the two sources have different channel counts.
	ErrChannelMismatch = errors.New("channel counts differ")

	// ErrEmptyWindow reports that the comparison window has no frames.
	ErrEmptyWindow = errors.New("comparison window is empty")
)

// NormalizeTarget is the peak amplitude both buffers are scaled to when
// normalization is requested.
const NormalizeTarget = 0.95

// BufferPair holds the two renderings being compared. Both buffers have
// identical frame count, channel count and sample rate. The pair is
// immutable once constructed and is read without synchronization by the
// render callback.
type BufferPair struct {
	A, B       []float64 // interleaved samples
	Frames     int
	Channels   int
	SampleRate int
	NameA      string
	NameB      string
}

// Load reads, validates and pairs two WAV sources. The shorter source
// defines the comparison window: both buffers are truncated to
// min(framesA, framesB). With normalize set, each buffer is independently
// peak-normalized to NormalizeTarget.
func Load(pathA, pathB string, normalize bool) (*BufferPair, error) {
	clipA, err := wavio.Read(pathA)
	if err != nil {
		return nil, fmt.Errorf("file A: %w", err)
	}
	clipB, err := wavio.Read(pathB)
	if err != nil {
		return nil, fmt.Errorf("file B: %w", err)
	}

	if clipA.SampleRate != clipB.SampleRate {
		return nil, fmt.Errorf("%w (A=%d Hz, B=%d Hz)",
			ErrRateMismatch, clipA.SampleRate, clipB.SampleRate)
	}
	if clipA.Channels != clipB.Channels {
		return nil, fmt.Errorf("%w (A=%d, B=%d)",
			ErrChannelMismatch, clipA.Channels, clipB.Channels)
	}

	frames := clipA.Frames()
	if clipB.Frames() < frames {
		frames = clipB.Frames()
	}
	if frames == 0 {
		// The transport and render callback assume a non-empty buffer.
		return nil, fmt.Errorf("%w (A=%d frames, B=%d frames)",
			ErrEmptyWindow, clipA.Frames(), clipB.Frames())
	}

	channels := clipA.Channels
	bufA := clipA.Samples[:frames*channels]
	bufB := clipB.Samples[:frames*channels]

	if normalize {
		dsp.NormalizePeak(bufA, NormalizeTarget)
		dsp.NormalizePeak(bufB, NormalizeTarget)
	}

	return &BufferPair{
		A:          bufA,
		B:          bufB,
		Frames:     frames,
		Channels:   channels,
		SampleRate: clipA.SampleRate,
		NameA:      filepath.Base(pathA),
		NameB:      filepath.Base(pathB),
	}, nil
}

// Buffer returns buffer 0 (A) or 1 (B).
func (p *BufferPair) Buffer(i int) []float64 {
	if i == 0 {
		return p.A
	}
	return p.B
}

// Duration returns the comparison window length in seconds.
func (p *BufferPair) Duration() float64 {
	if p.SampleRate == 0 {
		return 0
	}
	return float64(p.Frames) / float64(p.SampleRate)
}
