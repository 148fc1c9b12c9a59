// Package stub provides a host-side IR transmitter that records what it
// would have emitted.
package stub

import (
	"sync"
	"time"

	"go.tigermatt.uk/yamato"
)

// FrameGap is the idle time placed before each frame when it is looped back
// as a capture.
const FrameGap = 20 * time.Millisecond

// Transmitter implements yamato.Transmitter. A Space(0) call ends a frame.
type Transmitter struct {
	mu      sync.Mutex
	carrier int
	current []time.Duration
	frames  [][]time.Duration
}

func New() *Transmitter { return &Transmitter{} }

func (t *Transmitter) EnableCarrier(khz int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.carrier = khz
}

func (t *Transmitter) Mark(d time.Duration) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.current = append(t.current, d)
}

func (t *Transmitter) Space(d time.Duration) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if d == 0 {
		if len(t.current) > 0 {
			t.frames = append(t.frames, t.current)
		}
		t.current = nil
		return
	}
	t.current = append(t.current, d)
}

// Carrier returns the last carrier frequency requested, in kHz.
func (t *Transmitter) Carrier() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.carrier
}

// Frames returns a copy of every completed frame's timings.
func (t *Transmitter) Frames() [][]time.Duration {
	t.mu.Lock()
	defer t.mu.Unlock()

	out := make([][]time.Duration, len(t.frames))
	for i, f := range t.frames {
		out[i] = append([]time.Duration(nil), f...)
	}
	return out
}

// Capture returns frame i as the receiver would have captured it.
func (t *Transmitter) Capture(i int, tick time.Duration) (yamato.Capture, bool) {
	frames := t.Frames()
	if i < 0 || i >= len(frames) {
		return yamato.Capture{}, false
	}
	return yamato.NewCapture(tick, FrameGap, frames[i]), true
}

func (t *Transmitter) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.current = nil
	t.frames = nil
}
