//go:build !headless

// audio_oto.go - oto v3 audio output for the SPU's interleaved stereo ring

package main

import (
	"sync"

	"github.com/ebitengine/oto/v3"
)

const spuSampleRate = 44100

// audioRing is a thread-safe queue of signed 16-bit stereo samples
// (encoded the way the SPU's GetAudio ring stores them: interleaved
// left/right uint16 words holding an int16 bit pattern). The
// presentation loop pushes a frame's worth of samples once per
// RunFrame call; oto's player goroutine drains them at the host
// audio clock's own pace, independent of the video frame rate.
type audioRing struct {
	mu      sync.Mutex
	samples []int16
}

func (r *audioRing) push(words []uint16) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, w := range words {
		r.samples = append(r.samples, int16(w))
	}
	// Bound the ring so a stalled audio thread can't grow this
	// unboundedly; drop the oldest samples rather than the newest.
	const maxBuffered = spuSampleRate * 2 // 1s stereo
	if excess := len(r.samples) - maxBuffered; excess > 0 {
		r.samples = r.samples[excess:]
	}
}

// read pops one sample, or returns silence if the ring is empty.
func (r *audioRing) read() int16 {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.samples) == 0 {
		return 0
	}
	s := r.samples[0]
	r.samples = r.samples[1:]
	return s
}

// otoPlayer wraps an oto.Context/Player pair fed by an audioRing.
type otoPlayer struct {
	ctx    *oto.Context
	player *oto.Player
	ring   *audioRing

	mu      sync.Mutex
	started bool
}

func newOtoPlayer() (*otoPlayer, *audioRing, error) {
	ring := &audioRing{}
	ctx, ready, err := oto.NewContext(&oto.NewContextOptions{
		SampleRate:   spuSampleRate,
		ChannelCount: 2,
		Format:       oto.FormatSignedInt16LE,
		BufferSize:   0,
	})
	if err != nil {
		return nil, nil, err
	}
	<-ready

	op := &otoPlayer{ctx: ctx, ring: ring}
	op.player = ctx.NewPlayer(op)
	return op, ring, nil
}

// Read implements io.Reader for oto's player: it drains interleaved
// signed 16-bit little-endian stereo samples from the ring.
func (op *otoPlayer) Read(p []byte) (int, error) {
	for i := 0; i+1 < len(p); i += 2 {
		s := op.ring.read()
		p[i] = byte(uint16(s))
		p[i+1] = byte(uint16(s) >> 8)
	}
	return len(p), nil
}

func (op *otoPlayer) Start() {
	op.mu.Lock()
	defer op.mu.Unlock()
	if !op.started {
		op.player.Play()
		op.started = true
	}
}

func (op *otoPlayer) Close() {
	op.mu.Lock()
	defer op.mu.Unlock()
	if op.started {
		op.player.Close()
		op.started = false
	}
}
