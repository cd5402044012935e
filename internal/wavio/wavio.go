// ABOUTME: WAV file reading and writing via go-audio
// ABOUTME: Converts between PCM WAV files and interleaved float64 samples
package wavio

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// Clip holds decoded audio as interleaved float64 samples in [-1, 1].
type Clip struct {
	Samples    []float64
	SampleRate int
	Channels   int
}

// Frames returns the number of frames (samples per channel).
func (c *Clip) Frames() int {
	if c.Channels == 0 {
		return 0
	}
	return len(c.Samples) / c.Channels
}

// Read decodes a PCM WAV file into interleaved float64 samples.
func Read(path string) (*Clip, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	decoder := wav.NewDecoder(f)
	if !decoder.IsValidFile() {
		return nil, fmt.Errorf("invalid WAV file: %s", path)
	}

	buf, err := decoder.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}

	bitDepth := int(decoder.BitDepth)
	if bitDepth == 0 {
		bitDepth = 16
	}
	scale := 1.0 / float64(int(1)<<(bitDepth-1))

	// 8-bit WAV is unsigned (0..255); deeper depths are signed.
	bias := 0.0
	if bitDepth == 8 {
		bias = 128
	}

	samples := make([]float64, len(buf.Data))
	for i, s := range buf.Data {
		samples[i] = (float64(s) - bias) * scale
	}

	return &Clip{
		Samples:    samples,
		SampleRate: buf.Format.SampleRate,
		Channels:   buf.Format.NumChannels,
	}, nil
}

// Write encodes interleaved float64 samples as a 16-bit PCM WAV file.
// Samples are clamped to [-1, 1] before quantization. Parent directories
// are created as needed.
func Write(path string, clip *Clip) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}

	enc := wav.NewEncoder(f, clip.SampleRate, 16, clip.Channels, 1)

	buf := &audio.IntBuffer{
		Format: &audio.Format{
			SampleRate:  clip.SampleRate,
			NumChannels: clip.Channels,
		},
		SourceBitDepth: 16,
		Data:           make([]int, len(clip.Samples)),
	}
	for i, s := range clip.Samples {
		if s > 1.0 {
			s = 1.0
		}
		if s < -1.0 {
			s = -1.0
		}
		buf.Data[i] = int(s * 32767)
	}

	if err := enc.Write(buf); err != nil {
		_ = enc.Close()
		_ = f.Close()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := enc.Close(); err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to finalize %s: %w", path, err)
	}
	return f.Close()
}
