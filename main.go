// ABOUTME: Entry point for the A/B comparison player
// ABOUTME: Loads the two renderings, opens the audio device and runs the TUI
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/abaudio/abplay-go/internal/audio"
	"github.com/abaudio/abplay-go/internal/engine"
	"github.com/abaudio/abplay-go/internal/transport"
	"github.com/abaudio/abplay-go/internal/ui"
	"github.com/abaudio/abplay-go/internal/version"
)

var (
	pathA     = flag.String("a", "", "WAV file A (usually the original)")
	pathB     = flag.String("b", "", "WAV file B (usually the filtered rendering)")
	normalize = flag.Bool("normalize", false, "Peak-normalize both files to 0.95")
	logFile   = flag.String("log-file", "abplay.log", "Log file path")
	noTUI     = flag.Bool("no-tui", false, "Disable TUI, log status to stdout instead")
)

func main() {
	flag.Parse()

	if *pathA == "" || *pathB == "" {
		fmt.Fprintln(os.Stderr, "Usage: abplay -a original.wav -b filtered.wav [-normalize]")
		flag.PrintDefaults()
		os.Exit(1)
	}

	// Set up logging. The TUI owns the terminal, so logs go to a file;
	// in -no-tui mode they stream to stdout as well.
	f, err := os.OpenFile(*logFile, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0666)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening log file: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = f.Close() }()

	if *noTUI {
		log.SetOutput(io.MultiWriter(os.Stdout, f))
	} else {
		log.SetOutput(f)
	}

	log.Printf("%s %s starting", version.Product, version.Version)

	pair, err := audio.Load(*pathA, *pathB, *normalize)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	log.Printf("Loaded A: %s, B: %s", pair.NameA, pair.NameB)
	log.Printf("Sample rate: %d Hz, channels: %d, duration: %.1fs",
		pair.SampleRate, pair.Channels, pair.Duration())
	if *normalize {
		log.Printf("Normalized both buffers to peak %.2f", audio.NormalizeTarget)
	}

	state := transport.New(pair.Frames, pair.SampleRate)
	renderer := engine.NewRenderer(pair, state)

	device, err := engine.Open(renderer, pair.SampleRate, pair.Channels)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Audio error: %v\n", err)
		os.Exit(1)
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	if *noTUI {
		runHeadless(state, pair, sigChan)
	} else {
		runTUI(state, pair, sigChan)
	}

	// Give the render side one block period to observe quit, then tear
	// the stream down. Close blocks until the device is released.
	select {
	case <-device.Done():
	case <-time.After(time.Second):
	}
	device.Close()

	fmt.Println("Done.")
}

// runTUI runs the interactive control loop until quit.
func runTUI(state *transport.State, pair *audio.BufferPair, sigChan chan os.Signal) {
	prog, quitChan := ui.Run(state, pair)

	go func() {
		select {
		case <-sigChan:
			log.Printf("Shutdown signal received")
			state.RequestQuit()
			prog.Quit()
		case <-quitChan:
			log.Printf("Quit requested from TUI")
		}
	}()

	if _, err := prog.Run(); err != nil {
		log.Printf("TUI error: %v", err)
		state.RequestQuit()
	}
}

// runHeadless plays without a TUI: playback starts immediately and a
// status line is logged every second until the signal arrives or the
// stream auto-pauses at the end.
func runHeadless(state *transport.State, pair *audio.BufferPair, sigChan chan os.Signal) {
	state.SetPaused(false)

	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-sigChan:
			log.Printf("Shutdown signal received")
			state.RequestQuit()
			return
		case <-ticker.C:
			active, paused, pos := state.Snapshot()
			label := "A"
			if active == 1 {
				label = "B"
			}
			if paused {
				// End of stream: the render side paused and rewound.
				state.RequestQuit()
				return
			}
			log.Printf("[%s] %6.1fs / %.1fs", label,
				float64(pos)/float64(pair.SampleRate), pair.Duration())
		}
	}
}
