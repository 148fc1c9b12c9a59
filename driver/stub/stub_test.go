package stub

import (
	"testing"
	"time"

	"go.tigermatt.uk/yamato"
)

func TestFramesSplitOnLEDOff(t *testing.T) {
	tx := New()

	tx.Mark(100 * time.Microsecond)
	tx.Space(200 * time.Microsecond)
	tx.Mark(300 * time.Microsecond)
	tx.Space(0)
	tx.Space(0) // idle, no frame
	tx.Mark(400 * time.Microsecond)
	tx.Space(0)

	frames := tx.Frames()
	if len(frames) != 2 {
		t.Fatalf("got %d frames, want 2", len(frames))
	}
	if len(frames[0]) != 3 || frames[0][2] != 300*time.Microsecond {
		t.Errorf("frame 0 = %v", frames[0])
	}
	if len(frames[1]) != 1 {
		t.Errorf("frame 1 = %v", frames[1])
	}

	tx.Reset()
	if n := len(tx.Frames()); n != 0 {
		t.Errorf("after Reset got %d frames", n)
	}
}

func TestCaptureLoopback(t *testing.T) {
	tx := New()
	p := yamato.Payload{0x23, 0xCB, 0x26, 0x01, 0x00, 0x24, 0x05, 0x07, 0x38, 0x00, 0x00, 0x0F, 0x04, 0x90}
	yamato.Send(tx, p)

	if tx.Carrier() != yamato.CarrierKHz {
		t.Errorf("Carrier() = %d, want %d", tx.Carrier(), yamato.CarrierKHz)
	}

	c, ok := tx.Capture(0, 0)
	if !ok {
		t.Fatalf("Capture(0) missing")
	}
	if len(c.Buffer) != yamato.MinCaptureLength {
		t.Errorf("capture has %d entries, want %d", len(c.Buffer), yamato.MinCaptureLength)
	}

	got, err := yamato.Decode(c, nil)
	if err != nil {
		t.Fatalf("Decode() = %v", err)
	}
	if got != p {
		t.Errorf("Decode() = % 02X, want % 02X", got[:], p[:])
	}

	coarse, _ := tx.Capture(0, 100*time.Microsecond)
	if got, err := yamato.Decode(coarse, nil); err != nil || got != p {
		t.Errorf("Decode(100us capture) = % 02X, %v", got[:], err)
	}

	if _, ok := tx.Capture(1, 0); ok {
		t.Errorf("Capture(1) returned a frame that was never sent")
	}
}
