package yamato

import "fmt"

// Property identifies one HVAC setting carried in the payload.
type Property int

const (
	PowerState Property = iota
	OperationMode
	Temperature
	FanSpeed
	VerticalPosition
	HorizontalPosition

	numProperties
)

// A label is one named value of a property. Aliases are accepted by Set but
// never reported by Get or Labels.
type label struct {
	name    string
	value   byte
	aliases []string
}

type descriptor struct {
	name   string
	tag    byte
	index  int
	mask   byte
	labels []label
	def    string
}

var descriptors = [numProperties]descriptor{
	PowerState: {
		name: "powerState", tag: 0x04, index: 5, mask: 0x24, def: "off",
		labels: []label{
			{name: "off", value: 0x20, aliases: []string{"OFF"}},
			{name: "on", value: 0x24, aliases: []string{"ON"}},
		},
	},
	OperationMode: {
		name: "operationMode", tag: 0x09, index: 6, mask: 0x0F, def: "off",
		labels: []label{
			{name: "off", value: 0x05},
			{name: "AUTO", value: 0x08},
			{name: "FAN", value: 0x07},
			{name: "COOL", value: 0x03},
			{name: "HEAT", value: 0x01},
			{name: "DEHUMIDIFY", value: 0x02},
		},
	},
	Temperature: {
		name: "temperature", tag: 0x10, index: 7, mask: 0x0F, def: "24",
		labels: temperatureLabels(16, 31),
	},
	FanSpeed: {
		name: "fanSpeed", tag: 0x0D, index: 8, mask: 0x07, def: "AUTO",
		labels: []label{
			{name: "AUTO", value: 0x00},
			{name: "LOW", value: 0x02},
			{name: "MID", value: 0x03},
			{name: "HIGH", value: 0x05},
			{name: "TURBO", value: 0x07},
		},
	},
	VerticalPosition: {
		name: "verticalPosition", tag: 0x19, index: 8, mask: 0x38, def: "SWING",
		labels: []label{
			{name: "SWING", value: 0x38},
			{name: "UP", value: 0x08},
			{name: "MIDUP", value: 0x10},
			{name: "MID", value: 0x18},
			{name: "MIDDOWN", value: 0x20},
			{name: "DOWN", value: 0x28},
		},
	},
	HorizontalPosition: {
		name: "horizontalPosition", tag: 0x1D, index: 11, mask: 0x0F, def: "SWING",
		labels: []label{
			{name: "SWING", value: 0x0F},
			{name: "LEFT", value: 0x01},
			{name: "MIDLEFT", value: 0x02},
			{name: "MID", value: 0x03},
			{name: "MIDRIGHT", value: 0x04},
			{name: "RIGHT", value: 0x05},
		},
	},
}

// Defaults are applied in this order when a controller is built.
var defaultOrder = []Property{
	OperationMode,
	Temperature,
	FanSpeed,
	VerticalPosition,
	HorizontalPosition,
	PowerState,
}

// Temperatures count down from 0x0F at the lowest setpoint.
func temperatureLabels(lo, hi int) []label {
	out := make([]label, 0, hi-lo+1)
	for t := lo; t <= hi; t++ {
		out = append(out, label{
			name:    fmt.Sprint(t),
			value:   byte(0x0F - (t - lo)),
			aliases: []string{fmt.Sprintf("%d.0", t)},
		})
	}
	return out
}

// AllProperties lists properties in payload order.
func AllProperties() []Property {
	out := make([]Property, numProperties)
	for i := range out {
		out[i] = Property(i)
	}
	return out
}

// ParseProperty maps a property name to its identifier.
func ParseProperty(name string) (Property, error) {
	for i := range descriptors {
		if descriptors[i].name == name {
			return Property(i), nil
		}
	}
	return 0, fmt.Errorf("%w %q", ErrUnknownProperty, name)
}

func (p Property) valid() bool { return p >= 0 && p < numProperties }

func (p Property) String() string {
	if !p.valid() {
		return fmt.Sprintf("Property(%d)", int(p))
	}
	return descriptors[p].name
}

// Tag is the command tag written to the payload when p is set.
func (p Property) Tag() byte { return descriptors[p].tag }

// Index is the payload byte p lives in.
func (p Property) Index() int { return descriptors[p].index }

// Mask selects the bits of Index owned by p.
func (p Property) Mask() byte { return descriptors[p].mask }

// Default is the label applied at construction.
func (p Property) Default() string { return descriptors[p].def }

// Labels returns the canonical labels of p in table order.
func (p Property) Labels() []string {
	if !p.valid() {
		return nil
	}
	ls := descriptors[p].labels
	out := make([]string, len(ls))
	for i, l := range ls {
		out[i] = l.name
	}
	return out
}

// Value resolves a label or alias to its masked value.
func (p Property) Value(name string) (byte, bool) {
	if !p.valid() {
		return 0, false
	}
	for _, l := range descriptors[p].labels {
		if l.name == name {
			return l.value, true
		}
		for _, a := range l.aliases {
			if a == name {
				return l.value, true
			}
		}
	}
	return 0, false
}

// Decode returns the label held by p in payload, or "" if the masked bits
// match no label.
func (p Property) Decode(payload Payload) string {
	if !p.valid() {
		return ""
	}
	d := &descriptors[p]
	v := payload[d.index] & d.mask
	for _, l := range d.labels {
		if l.value == v {
			return l.name
		}
	}
	return ""
}

// apply writes the value of label into payload under p's mask. The tag and
// checksum bytes are left alone.
func (p Property) apply(payload *Payload, name string) error {
	v, ok := p.Value(name)
	if !ok {
		return fmt.Errorf("%w %q for %s", ErrUnknownLabel, name, p)
	}
	d := &descriptors[p]
	payload[d.index] = payload[d.index]&^d.mask | v
	return nil
}
