package yamato

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"
)

// CaptureLinePrefix marks a capture line sent by the receive bridge. The rest
// of the line is the raw buffer in decimal ticks, gap first.
const CaptureLinePrefix = "R"

// Sniffer reads capture lines from a receive bridge, typically a serial
// port, and hands each parsed capture to OnCapture.
type Sniffer struct {
	Port      io.Reader
	Tick      time.Duration
	OnCapture func(Capture)
}

func (s *Sniffer) Consume(ctx context.Context) error {
	sc := bufio.NewScanner(s.Port)
	sc.Buffer(make([]byte, 4096), 64*1024)

	for sc.Scan() {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		c, ok, err := ParseCaptureLine(sc.Text())
		if err != nil {
			return err
		}
		if !ok {
			continue
		}

		c.Tick = s.Tick
		s.OnCapture(c)
	}

	if err := sc.Err(); err != nil {
		return fmt.Errorf("reading from capture port: %w", err)
	}

	return nil
}

// ParseCaptureLine parses one bridge line. ok is false for lines that are not
// captures, such as bridge boot chatter.
func ParseCaptureLine(line string) (c Capture, ok bool, err error) {
	fields := strings.Fields(line)
	if len(fields) == 0 || fields[0] != CaptureLinePrefix {
		return c, false, nil
	}

	c.Buffer = make([]uint16, 0, len(fields)-1)
	for _, f := range fields[1:] {
		v, err := strconv.ParseUint(f, 10, 16)
		if err != nil {
			return Capture{}, false, fmt.Errorf("parsing capture entry %q: %w", f, err)
		}
		c.Buffer = append(c.Buffer, uint16(v))
	}

	return c, true, nil
}

// FormatCaptureLine is the inverse of ParseCaptureLine.
func FormatCaptureLine(c Capture) string {
	var sb strings.Builder
	sb.WriteString(CaptureLinePrefix)
	for _, v := range c.Buffer {
		sb.WriteByte(' ')
		sb.WriteString(strconv.FormatUint(uint64(v), 10))
	}
	return sb.String()
}
