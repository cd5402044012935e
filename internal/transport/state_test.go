// ABOUTME: Tests for transport state
// ABOUTME: Covers toggle position preservation, seek clamping and quit
package transport

import (
	"sync"
	"testing"
)

func TestNewStartsPausedAtZero(t *testing.T) {
	s := New(48000, 48000)

	active, paused, pos := s.Snapshot()
	if active != 0 {
		t.Errorf("expected active 0, got %d", active)
	}
	if !paused {
		t.Error("expected playback to start paused")
	}
	if pos != 0 {
		t.Errorf("expected position 0, got %d", pos)
	}
}

func TestTogglePreservesPosition(t *testing.T) {
	s := New(48000, 48000)
	s.SeekBy(1) // clamps to the last valid frame
	_, _, before := s.Snapshot()

	for i := 0; i < 5; i++ {
		s.Toggle()
		active, _, pos := s.Snapshot()
		if pos != before {
			t.Fatalf("toggle %d moved position from %d to %d", i, before, pos)
		}
		want := (i + 1) % 2
		if active != want {
			t.Fatalf("toggle %d: expected active %d, got %d", i, want, active)
		}
	}
}

func TestSeekClampsAtStart(t *testing.T) {
	s := New(48000, 48000)
	s.SeekBy(-5)

	_, _, pos := s.Snapshot()
	if pos != 0 {
		t.Errorf("expected seek before start to clamp to 0, got %d", pos)
	}
}

func TestSeekClampsAtEnd(t *testing.T) {
	s := New(48000, 48000)
	s.SeekBy(1)

	// One second forward from zero is exactly frameCount, which is past
	// the last valid index.
	_, _, pos := s.Snapshot()
	if pos != 47999 {
		t.Errorf("expected seek to clamp to 47999, got %d", pos)
	}

	s.SeekBy(100)
	_, _, pos = s.Snapshot()
	if pos != 47999 {
		t.Errorf("expected repeated seek to stay clamped at 47999, got %d", pos)
	}
}

func TestSeekZeroFramesStaysAtZero(t *testing.T) {
	// An empty window is rejected at load time, but seeks must still
	// keep the position invariant if one is ever constructed.
	s := New(0, 48000)

	s.SeekBy(1)
	if _, _, pos := s.Snapshot(); pos != 0 {
		t.Errorf("expected position pinned at 0 for empty window, got %d", pos)
	}

	s.SeekBy(-1)
	if _, _, pos := s.Snapshot(); pos != 0 {
		t.Errorf("expected position pinned at 0 for empty window, got %d", pos)
	}
}

func TestSeekBackward(t *testing.T) {
	s := New(480000, 48000)
	s.SeekBy(5)
	s.SeekBy(-1)

	_, _, pos := s.Snapshot()
	if pos != 4*48000 {
		t.Errorf("expected position %d, got %d", 4*48000, pos)
	}
}

func TestTogglePause(t *testing.T) {
	s := New(48000, 48000)

	s.TogglePause()
	if _, paused, _ := s.Snapshot(); paused {
		t.Error("expected paused false after first toggle")
	}

	s.TogglePause()
	if _, paused, _ := s.Snapshot(); !paused {
		t.Error("expected paused true after second toggle")
	}
}

func TestQuitFlag(t *testing.T) {
	s := New(48000, 48000)

	if s.QuitRequested() {
		t.Error("quit should not be set initially")
	}

	s.RequestQuit()
	if !s.QuitRequested() {
		t.Error("quit should be set after RequestQuit")
	}
}

func TestRenderAdvancesPosition(t *testing.T) {
	s := New(48000, 48000)
	s.SetPaused(false)

	s.Render(func(quit, paused bool, active, pos int) (int, bool) {
		if quit || paused {
			t.Fatal("unexpected quit/paused inside render")
		}
		return 1024, false
	})

	_, _, pos := s.Snapshot()
	if pos != 1024 {
		t.Errorf("expected position 1024, got %d", pos)
	}
}

func TestRenderExhaustedPausesAndRewinds(t *testing.T) {
	s := New(48000, 48000)
	s.SetPaused(false)
	s.SeekBy(1) // clamps to 47999

	s.Render(func(quit, paused bool, active, pos int) (int, bool) {
		return 1, true
	})

	_, paused, pos := s.Snapshot()
	if !paused {
		t.Error("expected auto-pause at end of stream")
	}
	if pos != 0 {
		t.Errorf("expected rewind to 0, got %d", pos)
	}
}

func TestConcurrentMutations(t *testing.T) {
	s := New(480000, 48000)
	s.SetPaused(false)

	var wg sync.WaitGroup
	wg.Add(2)

	// Control side: toggles and seeks.
	go func() {
		defer wg.Done()
		for i := 0; i < 1000; i++ {
			s.Toggle()
			s.SeekBy(1)
			s.SeekBy(-1)
		}
	}()

	// Render side: advances.
	go func() {
		defer wg.Done()
		for i := 0; i < 1000; i++ {
			s.Render(func(quit, paused bool, active, pos int) (int, bool) {
				n := 256
				if pos+n > s.Frames() {
					return s.Frames() - pos, true
				}
				return n, false
			})
		}
	}()

	wg.Wait()

	_, _, pos := s.Snapshot()
	if pos < 0 || pos > s.Frames() {
		t.Errorf("position %d escaped [0, %d]", pos, s.Frames())
	}
}
