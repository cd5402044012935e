// ABOUTME: Real-time render callback over the transport state
// ABOUTME: Fills fixed-size output blocks from the active comparison buffer
package engine

import (
	"github.com/abaudio/abplay-go/internal/audio"
	"github.com/abaudio/abplay-go/internal/transport"
)

// DefaultBlockFrames is the block size requested from the renderer per
// device callback.
const DefaultBlockFrames = 1024

// Renderer produces output blocks for the audio device. Everything it
// touches per block is either immutable (the buffer pair) or read under
// the transport lock, and it never allocates: it is safe to call from the
// device's real-time thread.
type Renderer struct {
	pair  *audio.BufferPair
	state *transport.State
}

// NewRenderer binds a renderer to a buffer pair and its transport.
func NewRenderer(pair *audio.BufferPair, state *transport.State) *Renderer {
	return &Renderer{pair: pair, state: state}
}

// RenderBlock fills dst, which must hold a whole number of frames of
// interleaved samples, and reports whether the stream should stop.
//
// Quit requested: dst is untouched and stop is true. Paused: dst is
// silence. Otherwise samples are copied from the active buffer at the
// current position and the position advances; if the buffer runs out
// mid-block the tail is zeroed and the transport auto-pauses and rewinds
// to the start.
func (r *Renderer) RenderBlock(dst []float64) (stop bool) {
	channels := r.pair.Channels
	frames := len(dst) / channels

	r.state.Render(func(quit, paused bool, active, pos int) (advance int, exhausted bool) {
		if quit {
			stop = true
			return 0, false
		}
		if paused {
			zero(dst)
			return 0, false
		}

		n := r.pair.Frames - pos
		if n > frames {
			n = frames
		}
		buf := r.pair.Buffer(active)
		copy(dst[:n*channels], buf[pos*channels:(pos+n)*channels])

		if n < frames {
			zero(dst[n*channels:])
			return n, true
		}
		return n, false
	})

	return stop
}

func zero(s []float64) {
	for i := range s {
		s[i] = 0
	}
}
