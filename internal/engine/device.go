// ABOUTME: Audio device wrapper around oto
// ABOUTME: Drives the renderer from the device's streaming read callback
package engine

import (
	"encoding/binary"
	"fmt"
	"io"
	"log"
	"math"
	"sync"

	"github.com/ebitengine/oto/v3"
)

const bytesPerSample = 4 // float32 little-endian

// Device owns the platform audio output stream. The stream pulls blocks
// from a Renderer on the device's own real-time thread; once the renderer
// signals stop the stream ends and Done is closed.
type Device struct {
	otoCtx *oto.Context
	player *oto.Player
	stream *deviceStream
}

// Open creates the output stream for the renderer's format and starts
// playback. Failure to open the platform device is fatal to the caller.
func Open(r *Renderer, sampleRate, channels int) (*Device, error) {
	op := &oto.NewContextOptions{
		SampleRate:   sampleRate,
		ChannelCount: channels,
		Format:       oto.FormatFloat32LE,
	}

	ctx, readyChan, err := oto.NewContext(op)
	if err != nil {
		return nil, fmt.Errorf("failed to open audio device: %w", err)
	}
	<-readyChan

	s := &deviceStream{
		renderer: r,
		channels: channels,
		block:    make([]float64, DefaultBlockFrames*channels),
		done:     make(chan struct{}),
	}

	player := ctx.NewPlayer(s)
	player.SetBufferSize(DefaultBlockFrames * channels * bytesPerSample * 2)
	player.Play()

	log.Printf("Audio output started: %dHz, %d channels, %d-frame blocks",
		sampleRate, channels, DefaultBlockFrames)

	return &Device{otoCtx: ctx, player: player, stream: s}, nil
}

// Done is closed once the render side has observed quit and stopped the
// stream.
func (d *Device) Done() <-chan struct{} {
	return d.stream.done
}

// Close tears the stream down. Blocks until the player has released the
// device.
func (d *Device) Close() {
	if d.player != nil {
		_ = d.player.Close()
		d.player = nil
	}
	if d.otoCtx != nil {
		_ = d.otoCtx.Suspend()
	}
	log.Printf("Audio output stopped")
}

// deviceStream adapts the renderer to the io.Reader the device pulls
// from. Read runs on the audio thread: it renders at most one block per
// call into a preallocated buffer and encodes it as float32 LE in place.
type deviceStream struct {
	renderer *Renderer
	channels int
	block    []float64
	done     chan struct{}
	doneOnce sync.Once
}

func (s *deviceStream) Read(buf []byte) (int, error) {
	bytesPerFrame := s.channels * bytesPerSample
	frames := len(buf) / bytesPerFrame
	if frames == 0 {
		return 0, nil
	}
	if frames > DefaultBlockFrames {
		frames = DefaultBlockFrames
	}

	block := s.block[:frames*s.channels]
	if stop := s.renderer.RenderBlock(block); stop {
		s.doneOnce.Do(func() { close(s.done) })
		return 0, io.EOF
	}

	for i, v := range block {
		binary.LittleEndian.PutUint32(buf[i*bytesPerSample:], math.Float32bits(float32(v)))
	}
	return frames * bytesPerFrame, nil
}
