package yamato

import (
	"time"
)

// Yamato frame timings. The frame is a 3.8ms/1.4ms header, 112 pulse-distance
// bits sent MSB first and a single trailing bit mark.
const (
	CarrierKHz = 38

	HeaderMark  = 3800 * time.Microsecond
	HeaderSpace = 1400 * time.Microsecond
	BitMark     = 600 * time.Microsecond
	OneSpace    = 1100 * time.Microsecond
	ZeroSpace   = 500 * time.Microsecond
	FooterMark  = BitMark

	PayloadLength = 14
	FrameBits     = PayloadLength * 8

	// MinCaptureLength counts the leading gap, header pair, bit cells and
	// footer mark of a captured frame.
	MinCaptureLength = 2*FrameBits + 4

	TagIndex      = PayloadLength - 2
	ChecksumIndex = PayloadLength - 1
)

// Payload is the logical 14 byte Yamato frame.
type Payload [PayloadLength]byte

// Prefix is the constant start of every payload.
var Prefix = [5]byte{0x23, 0xCB, 0x26, 0x01, 0x00}

// Transmitter is the IR carrier generator. Mark emits a modulated pulse,
// Space keeps the LED off for the given duration.
type Transmitter interface {
	EnableCarrier(khz int)
	Mark(d time.Duration)
	Space(d time.Duration)
}

// Sender transmits one complete frame.
type Sender interface {
	Send(p Payload) error
}

// Timings returns the on-air sequence for p, alternating mark and space and
// starting with the header mark. The final entry is the footer mark.
func Timings(p Payload) []time.Duration {
	out := make([]time.Duration, 0, 2+2*FrameBits+1)
	out = append(out, HeaderMark, HeaderSpace)

	for _, b := range p {
		for i := 7; i >= 0; i-- {
			if b&(1<<i) != 0 {
				out = append(out, BitMark, OneSpace)
			} else {
				out = append(out, BitMark, ZeroSpace)
			}
		}
	}

	return append(out, FooterMark)
}

// Send emits p on tx and leaves the LED off.
func Send(tx Transmitter, p Payload) {
	tx.EnableCarrier(CarrierKHz)

	for i, d := range Timings(p) {
		if i%2 == 0 {
			tx.Mark(d)
		} else {
			tx.Space(d)
		}
	}

	tx.Space(0)
}

type pulseSender struct {
	tx Transmitter
}

// NewPulseSender returns a Sender that drives tx directly.
func NewPulseSender(tx Transmitter) Sender {
	return &pulseSender{tx: tx}
}

func (s *pulseSender) Send(p Payload) error {
	Send(s.tx, p)
	return nil
}

// Decode reassembles a payload from a captured mark/space sequence. The
// first buffer entry is the gap before the frame and is skipped. A nil
// matcher uses DefaultTolerance.
func Decode(c Capture, m Matcher) (Payload, error) {
	var p Payload

	if m == nil {
		m = DefaultTolerance
	}

	if len(c.Buffer) < MinCaptureLength {
		return p, ErrInsufficientData
	}
	ds := c.Durations()

	offset := 1
	if !m.MatchMark(ds[offset], HeaderMark) {
		return p, ErrHeaderMismatch
	}
	offset++

	if !m.MatchSpace(ds[offset], HeaderSpace) {
		return p, ErrHeaderMismatch
	}
	offset++

	for bit := 0; bit < FrameBits; bit++ {
		if !m.MatchMark(ds[offset], BitMark) {
			return p, &BitCellError{Bit: bit, Offset: offset, Mark: true}
		}
		offset++

		// exactly one of the two spaces must match
		one, zero := m.MatchSpace(ds[offset], OneSpace), m.MatchSpace(ds[offset], ZeroSpace)
		if one == zero {
			return p, &BitCellError{Bit: bit, Offset: offset}
		}
		if one {
			p[bit/8] |= 1 << (7 - bit%8)
		}
		offset++
	}

	if sum := Checksum(p); p[ChecksumIndex] != sum {
		return p, &ChecksumError{Expected: sum, Actual: p[ChecksumIndex]}
	}

	return p, nil
}
