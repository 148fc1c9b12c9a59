// Package serialbridge talks to an IR bridge attached over a serial port.
// Frames go out as one line of microsecond timings, captures come back as
// lines parsed by yamato.Sniffer.
package serialbridge

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"go.bug.st/serial"
	"go.tigermatt.uk/yamato"
)

// TimingLinePrefix marks a frame to be transmitted by the bridge.
const TimingLinePrefix = "S"

// Open opens device in 8N1 mode.
func Open(device string, baud int) (serial.Port, error) {
	port, err := serial.Open(device, &serial.Mode{
		BaudRate: baud,
		DataBits: 8,
		Parity:   serial.NoParity,
		StopBits: serial.OneStopBit,
	})
	if err != nil {
		return nil, fmt.Errorf("while opening serial port %s: %w", device, err)
	}
	return port, nil
}

// Sender implements yamato.Sender over the bridge.
type Sender struct {
	Port io.Writer
}

func (s *Sender) Send(p yamato.Payload) error {
	line := FormatTimings(yamato.Timings(p)) + "\n"
	if _, err := io.WriteString(s.Port, line); err != nil {
		return fmt.Errorf("writing frame to bridge: %w", err)
	}
	return nil
}

// FormatTimings renders timings as a bridge line, in whole microseconds.
func FormatTimings(ts []time.Duration) string {
	var sb strings.Builder
	sb.WriteString(TimingLinePrefix)
	for _, d := range ts {
		sb.WriteByte(' ')
		sb.WriteString(strconv.FormatInt(d.Microseconds(), 10))
	}
	return sb.String()
}
