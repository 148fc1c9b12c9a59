package yamato

import (
	"fmt"
	"math"
	"time"
)

// RawTick is the default duration of one capture buffer unit.
const RawTick = 2 * time.Microsecond

// Capture is a received sequence of alternating durations, as recorded by the
// platform's IR capture driver. Buffer[0] is the gap preceding the frame,
// Buffer[1] the first mark.
type Capture struct {
	Buffer []uint16
	Tick   time.Duration // zero means RawTick
}

func (c Capture) tick() time.Duration {
	if c.Tick <= 0 {
		return RawTick
	}
	return c.Tick
}

// Durations converts the buffer to durations, leading gap included.
func (c Capture) Durations() []time.Duration {
	out := make([]time.Duration, len(c.Buffer))
	for i, raw := range c.Buffer {
		out[i] = time.Duration(raw) * c.tick()
	}
	return out
}

// NewCapture quantises a gap plus mark/space sequence into a capture with the
// given tick. Durations beyond the buffer range saturate.
func NewCapture(tick, gap time.Duration, timings []time.Duration) Capture {
	if tick <= 0 {
		tick = RawTick
	}

	c := Capture{Buffer: make([]uint16, 0, len(timings)+1), Tick: tick}
	for _, d := range append([]time.Duration{gap}, timings...) {
		ticks := (d + tick/2) / tick
		if ticks > math.MaxUint16 {
			ticks = math.MaxUint16
		}
		c.Buffer = append(c.Buffer, uint16(ticks))
	}
	return c
}

// Matcher decides whether a measured duration is close enough to an
// expected mark or space.
type Matcher interface {
	MatchMark(measured, d time.Duration) bool
	MatchSpace(measured, d time.Duration) bool
}

// Tolerance is the receiver's percentage matcher. Demodulating receivers
// stretch marks and shrink spaces, so marks are compared against d+MarkExcess
// and spaces against d-MarkExcess.
type Tolerance struct {
	Percent    int
	MarkExcess time.Duration
}

// DefaultTolerance is 25% with a 50us mark excess.
var DefaultTolerance = Tolerance{
	Percent:    25,
	MarkExcess: 50 * time.Microsecond,
}

// MatchMark reports whether measured is within tolerance of mark d.
func (t Tolerance) MatchMark(measured, d time.Duration) bool {
	return t.match(measured, d+t.MarkExcess)
}

// MatchSpace reports whether measured is within tolerance of space d.
func (t Tolerance) MatchSpace(measured, d time.Duration) bool {
	return t.match(measured, d-t.MarkExcess)
}

func (t Tolerance) match(measured, d time.Duration) bool {
	low, high := t.window(d)
	return measured >= low && measured <= high
}

func (t Tolerance) window(d time.Duration) (low, high time.Duration) {
	pct := time.Duration(t.Percent)
	return d * (100 - pct) / 100, d * (100 + pct) / 100
}

// Validate rejects tolerances under which a single space could match both a
// one and a zero bit.
func (t Tolerance) Validate() error {
	if t.Percent <= 0 || t.Percent >= 100 {
		return fmt.Errorf("tolerance %d%% out of range 1-99", t.Percent)
	}
	if t.MarkExcess < 0 || t.MarkExcess >= ZeroSpace {
		return fmt.Errorf("mark excess %s out of range", t.MarkExcess)
	}

	_, zeroHigh := t.window(ZeroSpace - t.MarkExcess)
	oneLow, _ := t.window(OneSpace - t.MarkExcess)
	if zeroHigh >= oneLow {
		return fmt.Errorf("tolerance %d%%: zero space window (up to %s) overlaps one space window (from %s)",
			t.Percent, zeroHigh, oneLow)
	}

	return nil
}
