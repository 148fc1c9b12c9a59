package yamato

// Command tags as sent by the handheld remote. The remote names win where a
// property tag shares the value.
var remoteTags = map[byte]string{
	0x18: "vertical",
	0x1C: "horizontal",
	0x08: "operation",
	0x24: "sleep",
	0x10: "temp_down",
	0x14: "temp_up",
	0x04: "on/off",
	0x0C: "fanspeed",
}

// Interpret names the command that produced p, based on its tag byte.
func Interpret(p Payload) (string, bool) {
	tag := p[TagIndex]
	if name, ok := remoteTags[tag]; ok {
		return name, true
	}
	for _, prop := range AllProperties() {
		if prop.Tag() == tag {
			return prop.String(), true
		}
	}
	return "", false
}
