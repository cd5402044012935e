// ABOUTME: Offline WAV filter CLI
// ABOUTME: Applies zero-phase Butterworth filters and writes the result
package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/abaudio/abplay-go/internal/dsp"
	"github.com/abaudio/abplay-go/internal/wavio"
)

var (
	inPath    = flag.String("in", "", "Input WAV file path")
	outPath   = flag.String("out", "", "Output WAV file path")
	highpass  = flag.Float64("highpass", 0, "Highpass filter cutoff frequency in Hz")
	lowpass   = flag.Float64("lowpass", 0, "Lowpass filter cutoff frequency in Hz")
	bandpass  = flag.String("bandpass", "", "Bandpass filter cutoffs in Hz as LOW,HIGH")
	order     = flag.Int("order", 4, "Filter order (even)")
	normalize = flag.Bool("normalize", false, "Apply peak normalization to 0.95")
)

func main() {
	flag.Parse()

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	if *inPath == "" || *outPath == "" {
		fmt.Fprintln(os.Stderr, "Usage: filter-wav -in input.wav -out output.wav [filters]")
		fmt.Fprintln(os.Stderr, "\nExamples:")
		fmt.Fprintln(os.Stderr, "  filter-wav -in test.wav -out hp.wav -highpass 120")
		fmt.Fprintln(os.Stderr, "  filter-wav -in test.wav -out phone.wav -highpass 300 -lowpass 3400 -normalize")
		fmt.Fprintln(os.Stderr, "  filter-wav -in test.wav -out band.wav -bandpass 500,2000")
		return fmt.Errorf("input and output paths are required")
	}

	clip, err := wavio.Read(*inPath)
	if err != nil {
		return err
	}

	fmt.Printf("Loading: %s\n", *inPath)
	fmt.Printf("  Sample rate: %d Hz, Channels: %d, Duration: %.2fs\n",
		clip.SampleRate, clip.Channels,
		float64(clip.Frames())/float64(clip.SampleRate))

	var applied []string

	// Filters apply in a fixed order: highpass, bandpass, lowpass.
	if *highpass > 0 {
		fmt.Printf("Applying highpass at %g Hz...\n", *highpass)
		if err := dsp.Highpass(clip.Samples, clip.Channels, *highpass, clip.SampleRate, *order); err != nil {
			return err
		}
		applied = append(applied, fmt.Sprintf("highpass(%gHz)", *highpass))
	}

	if *bandpass != "" {
		low, high, err := parseBandpass(*bandpass)
		if err != nil {
			return err
		}
		fmt.Printf("Applying bandpass %g-%g Hz...\n", low, high)
		if err := dsp.Bandpass(clip.Samples, clip.Channels, low, high, clip.SampleRate, *order); err != nil {
			return err
		}
		applied = append(applied, fmt.Sprintf("bandpass(%g-%gHz)", low, high))
	}

	if *lowpass > 0 {
		fmt.Printf("Applying lowpass at %g Hz...\n", *lowpass)
		if err := dsp.Lowpass(clip.Samples, clip.Channels, *lowpass, clip.SampleRate, *order); err != nil {
			return err
		}
		applied = append(applied, fmt.Sprintf("lowpass(%gHz)", *lowpass))
	}

	if *normalize {
		fmt.Println("Normalizing peak level...")
		dsp.NormalizePeak(clip.Samples, 0.95)
		applied = append(applied, "normalize")
	}

	if err := wavio.Write(*outPath, clip); err != nil {
		return err
	}

	fmt.Printf("Saved: %s\n", *outPath)
	if len(applied) > 0 {
		fmt.Printf("Filters: %s\n", strings.Join(applied, " -> "))
	} else {
		fmt.Println("No filters applied (passthrough copy)")
	}

	return nil
}

// parseBandpass splits a LOW,HIGH cutoff pair.
func parseBandpass(s string) (low, high float64, err error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("bandpass must be LOW,HIGH, got %q", s)
	}
	low, err = strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid bandpass low cutoff %q", parts[0])
	}
	high, err = strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid bandpass high cutoff %q", parts[1])
	}
	return low, high, nil
}
