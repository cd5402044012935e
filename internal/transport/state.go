// ABOUTME: Shared playback transport state
// ABOUTME: Single-mutex state mutated by the UI loop and the render callback
package transport

import "sync"

// State is the playback transport shared between the control loop and the
// audio render callback. One mutex guards all four fields; every access,
// including single-field reads, takes the lock so that multi-field
// snapshots stay consistent with the other side's mutations.
type State struct {
	mu     sync.Mutex
	active int // 0 = A, 1 = B
	paused bool
	pos    int // frame index into the buffer pair
	quit   bool

	frames     int
	sampleRate int
}

// New creates a transport bound to a buffer pair's dimensions.
// Playback starts paused at position zero.
func New(frames, sampleRate int) *State {
	return &State{
		paused:     true,
		frames:     frames,
		sampleRate: sampleRate,
	}
}

// Snapshot returns active, paused and position as one consistent read.
func (s *State) Snapshot() (active int, paused bool, pos int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active, s.paused, s.pos
}

// Toggle switches the audible buffer. Position is left untouched so both
// renderings are heard at the same instant.
func (s *State) Toggle() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.active = 1 - s.active
}

// TogglePause flips the paused flag.
func (s *State) TogglePause() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.paused = !s.paused
}

// SetPaused sets the paused flag.
func (s *State) SetPaused(paused bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.paused = paused
}

// SeekBy moves the position by the given number of seconds, negative for
// backward. The result is clamped to [0, frames-1]; seeks never wrap.
func (s *State) SeekBy(seconds int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pos = clamp(s.pos+seconds*s.sampleRate, 0, s.frames-1)
}

// RequestQuit asks both loops to stop. Cooperative: the render callback
// observes it within one block, the control loop within one poll tick.
func (s *State) RequestQuit() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.quit = true
}

// QuitRequested reports whether quit has been requested.
func (s *State) QuitRequested() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.quit
}

// Frames returns the comparison window length in frames.
func (s *State) Frames() int { return s.frames }

// SampleRate returns the bound sample rate in Hz.
func (s *State) SampleRate() int { return s.sampleRate }

// Render runs fn with the transport locked, passing the current quit,
// paused, active and position values. fn returns the number of frames it
// consumed and whether the end of the buffer was reached; on end of
// stream the transport auto-pauses and rewinds to the start. fn must be
// O(frames) at most: it runs on the audio device's real-time thread.
func (s *State) Render(fn func(quit, paused bool, active, pos int) (advance int, exhausted bool)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	advance, exhausted := fn(s.quit, s.paused, s.active, s.pos)
	s.pos += advance
	if exhausted {
		s.paused = true
		s.pos = 0
	}
}

func clamp(v, lo, hi int) int {
	if hi < lo {
		hi = lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
