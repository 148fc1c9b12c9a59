package yamato

import (
	"errors"
	"fmt"
	"testing"
	"time"

	qt "github.com/frankban/quicktest"
)

// powerOn is the payload after switching the unit on from its defaults.
var powerOn = Payload{0x23, 0xCB, 0x26, 0x01, 0x00, 0x24, 0x05, 0x07, 0x38, 0x00, 0x00, 0x0F, 0x04, 0x90}

func captureOf(p Payload) Capture {
	return NewCapture(RawTick, 20*time.Millisecond, Timings(p))
}

func TestTimings(t *testing.T) {
	c := qt.New(t)

	ts := Timings(powerOn)
	c.Assert(ts, qt.HasLen, 2+2*FrameBits+1)
	c.Assert(ts[0], qt.Equals, HeaderMark)
	c.Assert(ts[1], qt.Equals, HeaderSpace)
	c.Assert(ts[len(ts)-1], qt.Equals, FooterMark)

	// 0x23 = 0010 0011, MSB first
	want := []time.Duration{ZeroSpace, ZeroSpace, OneSpace, ZeroSpace, ZeroSpace, ZeroSpace, OneSpace, OneSpace}
	for i, space := range want {
		c.Assert(ts[2+2*i], qt.Equals, BitMark)
		c.Assert(ts[3+2*i], qt.Equals, space, qt.Commentf("bit %d", i))
	}
}

type recordingTx struct {
	carrier int
	marks   int
	spaces  []time.Duration
}

func (r *recordingTx) EnableCarrier(khz int) { r.carrier = khz }
func (r *recordingTx) Mark(time.Duration)    { r.marks++ }
func (r *recordingTx) Space(d time.Duration) { r.spaces = append(r.spaces, d) }

func TestSendEndsWithLEDOff(t *testing.T) {
	c := qt.New(t)

	var tx recordingTx
	Send(&tx, powerOn)

	c.Assert(tx.carrier, qt.Equals, CarrierKHz)
	c.Assert(tx.marks, qt.Equals, 1+FrameBits+1)
	c.Assert(tx.spaces, qt.HasLen, 1+FrameBits+1)
	c.Assert(tx.spaces[len(tx.spaces)-1], qt.Equals, time.Duration(0))
}

func TestDecodeRoundTrip(t *testing.T) {
	c := qt.New(t)

	for _, p := range []Payload{
		powerOn,
		{0x23, 0xCB, 0x26, 0x01, 0x00, 0x20, 0x05, 0x07, 0x38, 0x00, 0x00, 0x0F, 0x00, 0x88},
		func() Payload {
			p := Payload{0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF}
			p.seal()
			return p
		}(),
	} {
		c.Run(FormatPayload(p), func(c *qt.C) {
			got, err := Decode(captureOf(p), nil)
			c.Assert(err, qt.IsNil)
			c.Assert(got, qt.Equals, p)
		})
	}
}

func TestDecodeWithReceiverJitter(t *testing.T) {
	c := qt.New(t)

	// stretch marks and shrink spaces the way a demodulating receiver does
	ts := Timings(powerOn)
	for i := range ts {
		if i%2 == 0 {
			ts[i] += 80 * time.Microsecond
		} else {
			ts[i] -= 80 * time.Microsecond
		}
	}

	got, err := Decode(NewCapture(RawTick, 20*time.Millisecond, ts), DefaultTolerance)
	c.Assert(err, qt.IsNil)
	c.Assert(got, qt.Equals, powerOn)
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name    string
		capture func() Capture
		want    error
	}{
		{
			name: "empty",
			capture: func() Capture {
				return Capture{}
			},
			want: ErrInsufficientData,
		},
		{
			name: "one entry short",
			capture: func() Capture {
				c := captureOf(powerOn)
				c.Buffer = c.Buffer[:MinCaptureLength-1]
				return c
			},
			want: ErrInsufficientData,
		},
		{
			name: "header mark",
			capture: func() Capture {
				c := captureOf(powerOn)
				c.Buffer[1] = 1000
				return c
			},
			want: ErrHeaderMismatch,
		},
		{
			name: "header space",
			capture: func() Capture {
				c := captureOf(powerOn)
				c.Buffer[2] = 250
				return c
			},
			want: ErrHeaderMismatch,
		},
		{
			name: "bit mark",
			capture: func() Capture {
				c := captureOf(powerOn)
				c.Buffer[3] = 1000
				return c
			},
			want: ErrBitCellMismatch,
		},
		{
			name: "space between zero and one",
			capture: func() Capture {
				c := captureOf(powerOn)
				c.Buffer[4] = 350
				return c
			},
			want: ErrBitCellMismatch,
		},
		{
			name: "corrupt checksum",
			capture: func() Capture {
				p := powerOn
				p[ChecksumIndex]++
				return captureOf(p)
			},
			want: ErrChecksumMismatch,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(tt.capture(), nil)
			if !errors.Is(err, tt.want) {
				t.Errorf("Decode() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestDecodeErrorDetail(t *testing.T) {
	c := qt.New(t)

	capture := captureOf(powerOn)
	capture.Buffer[4] = 350
	_, err := Decode(capture, nil)

	var bce *BitCellError
	c.Assert(errors.As(err, &bce), qt.IsTrue)
	c.Assert(*bce, qt.Equals, BitCellError{Bit: 0, Offset: 4})

	p := powerOn
	p[ChecksumIndex]++
	_, err = Decode(captureOf(p), nil)

	var ce *ChecksumError
	c.Assert(errors.As(err, &ce), qt.IsTrue)
	c.Assert(*ce, qt.Equals, ChecksumError{Expected: 0x90, Actual: 0x91})
}

func TestToleranceValidate(t *testing.T) {
	tests := []struct {
		tol     Tolerance
		wantErr bool
	}{
		{DefaultTolerance, false},
		{Tolerance{Percent: 37, MarkExcess: 50 * time.Microsecond}, false},
		{Tolerance{Percent: 40, MarkExcess: 50 * time.Microsecond}, true},
		{Tolerance{Percent: 0}, true},
		{Tolerance{Percent: 25, MarkExcess: ZeroSpace}, true},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%d%%/%s", tt.tol.Percent, tt.tol.MarkExcess), func(t *testing.T) {
			err := tt.tol.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestToleranceMatch(t *testing.T) {
	c := qt.New(t)

	us := time.Microsecond
	tol := DefaultTolerance
	c.Assert(tol.MatchSpace(500*us, ZeroSpace), qt.IsTrue)
	c.Assert(tol.MatchSpace(500*us, OneSpace), qt.IsFalse)
	c.Assert(tol.MatchSpace(1100*us, OneSpace), qt.IsTrue)
	c.Assert(tol.MatchSpace(1100*us, ZeroSpace), qt.IsFalse)
	c.Assert(tol.MatchMark(600*us, BitMark), qt.IsTrue)
	c.Assert(tol.MatchMark(3800*us, HeaderMark), qt.IsTrue)
	c.Assert(tol.MatchMark(600*us, HeaderMark), qt.IsFalse)
}

func TestDecodeUsesCaptureTick(t *testing.T) {
	for _, tick := range []time.Duration{time.Microsecond, 4 * time.Microsecond, 50 * time.Microsecond} {
		t.Run(tick.String(), func(t *testing.T) {
			got, err := Decode(NewCapture(tick, 20*time.Millisecond, Timings(powerOn)), nil)
			if err != nil {
				t.Fatalf("Decode() err=%v", err)
			}
			if got != powerOn {
				t.Errorf("Decode() = %s, want %s", FormatPayload(got), FormatPayload(powerOn))
			}
		})
	}
}

// looseMatcher accepts any space, so every space matches both a one and a
// zero.
type looseMatcher struct{}

func (looseMatcher) MatchMark(measured, d time.Duration) bool {
	return DefaultTolerance.MatchMark(measured, d)
}

func (looseMatcher) MatchSpace(time.Duration, time.Duration) bool {
	return true
}

func TestDecodeRejectsAmbiguousSpace(t *testing.T) {
	c := qt.New(t)

	_, err := Decode(captureOf(powerOn), looseMatcher{})
	c.Assert(err, qt.ErrorIs, ErrBitCellMismatch)

	var bce *BitCellError
	c.Assert(errors.As(err, &bce), qt.IsTrue)
	c.Assert(*bce, qt.Equals, BitCellError{Bit: 0, Offset: 4})
}

func TestNewCaptureSaturates(t *testing.T) {
	c := qt.New(t)

	capture := NewCapture(RawTick, time.Second, []time.Duration{3 * time.Microsecond})
	c.Assert(capture.Buffer, qt.DeepEquals, []uint16{0xFFFF, 2})
	c.Assert(capture.Durations()[1], qt.Equals, 4*time.Microsecond)
}
