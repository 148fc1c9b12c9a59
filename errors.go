package yamato

import (
	"errors"
	"fmt"
)

var (
	ErrUnknownProperty = errors.New("unknown property")
	ErrUnknownLabel    = errors.New("unknown label")

	ErrInsufficientData = errors.New("capture too short for a frame")
	ErrHeaderMismatch   = errors.New("header mark/space mismatch")
	ErrBitCellMismatch  = errors.New("bit cell mismatch")
	ErrChecksumMismatch = errors.New("checksum mismatch")
)

// BitCellError reports the first bit cell that could not be read as a one or
// a zero.
type BitCellError struct {
	Bit    int // 0..111, MSB of byte 0 first
	Offset int // index into Capture.Buffer
	Mark   bool
}

func (e *BitCellError) Error() string {
	part := "space"
	if e.Mark {
		part = "mark"
	}
	return fmt.Sprintf("%s: bit %d (%s at offset %d)", ErrBitCellMismatch, e.Bit, part, e.Offset)
}

func (e *BitCellError) Unwrap() error { return ErrBitCellMismatch }

// ChecksumError reports a decoded frame whose checksum byte does not match
// the sum of its other bytes.
type ChecksumError struct {
	Expected byte
	Actual   byte
}

func (e *ChecksumError) Error() string {
	return fmt.Sprintf("%s: expected 0x%02X, got 0x%02X", ErrChecksumMismatch, e.Expected, e.Actual)
}

func (e *ChecksumError) Unwrap() error { return ErrChecksumMismatch }
