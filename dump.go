package yamato

import (
	"fmt"
	"strings"
)

// louverByte is shown in binary as well, since fan speed and vertical
// position share it.
const louverByte = 8

// FormatPayload renders p as space separated hex bytes.
func FormatPayload(p Payload) string {
	return fmt.Sprintf("% 02X", p[:])
}

// FormatDiff renders cur byte by byte, flagging with '*' every byte that
// differs from prev.
func FormatDiff(prev, cur Payload) string {
	var sb strings.Builder
	for i, b := range cur {
		if i > 0 {
			sb.WriteString(" | ")
		}
		fmt.Fprintf(&sb, "%d:", i)
		if prev[i] != b {
			sb.WriteByte('*')
		}
		if i == louverByte {
			fmt.Fprintf(&sb, "%08b ", b)
		}
		fmt.Fprintf(&sb, "%02X", b)
	}
	return sb.String()
}
