//go:build tinygo

package pwm

import (
	"fmt"
	"machine"
	"time"

	"go.tigermatt.uk/yamato"
)

// PWM is the subset of a TinyGo PWM peripheral used for the carrier.
type PWM interface {
	Configure(config machine.PWMConfig) error
	Channel(pin machine.Pin) (channel uint8, err error)
	Top() uint32
	Set(channel uint8, value uint32)
}

type Config struct {
	// Pin is the GPIO pin connected to the IR LED.
	Pin machine.Pin
	// PWM generates the carrier on Pin.
	PWM PWM
	// DutyCycle of the carrier in percent. Zero means 33%.
	DutyCycle int
}

// Transmitter implements yamato.Transmitter.
type Transmitter struct {
	pwm  PWM
	ch   uint8
	duty int
	err  error
}

func New(cfg Config) (*Transmitter, error) {
	if cfg.DutyCycle < 1 || cfg.DutyCycle > 100 {
		cfg.DutyCycle = 33
	}

	if err := cfg.PWM.Configure(machine.PWMConfig{Period: uint64(1e6) / yamato.CarrierKHz}); err != nil {
		return nil, err
	}
	ch, err := cfg.PWM.Channel(cfg.Pin)
	if err != nil {
		return nil, err
	}
	cfg.PWM.Set(ch, 0)

	return &Transmitter{pwm: cfg.PWM, ch: ch, duty: cfg.DutyCycle}, nil
}

// EnableCarrier switches the carrier to khz. If the peripheral rejects the
// new period the previous one stays in effect and the failure is kept for Err.
func (t *Transmitter) EnableCarrier(khz int) {
	t.err = nil
	if err := t.pwm.Configure(machine.PWMConfig{Period: 1e6 / uint64(khz)}); err != nil {
		t.err = fmt.Errorf("setting %d kHz carrier: %w", khz, err)
	}
	t.pwm.Set(t.ch, 0)
}

// Err returns the error from the last EnableCarrier call, if any.
func (t *Transmitter) Err() error {
	return t.err
}

func (t *Transmitter) Mark(d time.Duration) {
	t.pwm.Set(t.ch, t.pwm.Top()*uint32(t.duty)/100)
	time.Sleep(d)
	t.pwm.Set(t.ch, 0)
}

// Space waits with the LED off. Mark always leaves the LED off, so a zero
// space only terminates the frame.
func (t *Transmitter) Space(d time.Duration) {
	if d > 0 {
		time.Sleep(d)
	}
}
