package yamato

import (
	"fmt"
	"io"
	"log"
	"sync"
)

// Frame is a decoded payload together with the command it announces.
type Frame struct {
	Payload Payload
	Action  string
}

// Controller owns the live payload and transmits one frame for every
// successful Set.
type Controller struct {
	sender  Sender
	log     *log.Logger
	matcher Matcher

	mu      sync.Mutex
	payload Payload

	lastRx Payload
}

type Option func(*Controller)

// WithLogger sends diagnostic traces to l. Without it traces are dropped.
func WithLogger(l *log.Logger) Option {
	return func(c *Controller) {
		if l != nil {
			c.log = l
		}
	}
}

// WithMatcher sets the matcher used by Receive.
func WithMatcher(m Matcher) Option {
	return func(c *Controller) {
		if m != nil {
			c.matcher = m
		}
	}
}

// New builds a controller holding the default settings. Defaults are not
// transmitted.
func New(sender Sender, opts ...Option) *Controller {
	if sender == nil {
		panic("yamato: sender cannot be nil")
	}

	c := &Controller{
		sender:  sender,
		log:     log.New(io.Discard, "", 0),
		matcher: DefaultTolerance,
	}
	for _, opt := range opts {
		opt(c)
	}

	copy(c.payload[:], Prefix[:])
	for _, p := range defaultOrder {
		if err := p.apply(&c.payload, p.Default()); err != nil {
			panic(err)
		}
	}
	c.payload.seal()

	return c
}

// Properties returns the property names in payload order.
func (c *Controller) Properties() []string {
	out := make([]string, 0, numProperties)
	for _, p := range AllProperties() {
		out = append(out, p.String())
	}
	return out
}

// Labels returns the labels accepted for the named property.
func (c *Controller) Labels(name string) ([]string, error) {
	p, err := ParseProperty(name)
	if err != nil {
		return nil, err
	}
	return p.Labels(), nil
}

// Get returns the current label of the named property. The label is empty if
// the payload bits match no known label.
func (c *Controller) Get(name string) (string, error) {
	p, err := ParseProperty(name)
	if err != nil {
		return "", err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	return p.Decode(c.payload), nil
}

// Set changes the named property and transmits the resulting frame. On an
// unknown property or label nothing is changed or sent.
func (c *Controller) Set(name, label string) error {
	p, err := ParseProperty(name)
	if err != nil {
		return err
	}
	return c.SetProperty(p, label)
}

// SetProperty is Set for an already parsed property.
func (c *Controller) SetProperty(p Property, label string) error {
	if !p.valid() {
		return fmt.Errorf("%w %s", ErrUnknownProperty, p)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	next := c.payload
	if err := p.apply(&next, label); err != nil {
		return err
	}
	next[TagIndex] = p.Tag()
	next.seal()
	c.payload = next

	c.log.Printf("set %s=%s: %s", p, label, FormatPayload(next))

	if err := c.sender.Send(next); err != nil {
		return fmt.Errorf("sending %s=%s: %w", p, label, err)
	}

	return nil
}

// Payload returns a copy of the live payload.
func (c *Controller) Payload() Payload {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.payload
}

// DumpState returns the payload as hex and traces it.
func (c *Controller) DumpState() string {
	s := FormatPayload(c.Payload())
	c.log.Printf("dumpState  %s", s)
	return s
}

// Receive decodes a captured frame and names the command it carries. It
// does not change the controller's own state.
func (c *Controller) Receive(capture Capture) (Frame, error) {
	p, err := Decode(capture, c.matcher)
	if err != nil {
		return Frame{}, fmt.Errorf("decoding capture: %w", err)
	}

	c.mu.Lock()
	prev := c.lastRx
	c.lastRx = p
	c.mu.Unlock()

	c.log.Printf("BYTES: %s", FormatDiff(prev, p))

	f := Frame{Payload: p}
	if action, ok := Interpret(p); ok {
		f.Action = action
		c.log.Println(action)
	}

	return f, nil
}
