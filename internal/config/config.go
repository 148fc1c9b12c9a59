// internal/config/config.go
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"go.tigermatt.uk/yamato"
)

type Config struct {
	Transmit TransmitConfig `yaml:"transmit"`
	Receive  ReceiveConfig  `yaml:"receive"`
	Log      LogConfig      `yaml:"log"`
}

// ---- TRANSMIT ----

// TransmitConfig selects the IR bridge used for sending.
// An empty device means frames are only recorded by the stub transmitter.
type TransmitConfig struct {
	Device string `yaml:"device"`
	Baud   int    `yaml:"baud"`
}

// ---- RECEIVE ----

type ReceiveConfig struct {
	Device           string `yaml:"device"`
	Baud             int    `yaml:"baud"`
	TolerancePercent int    `yaml:"tolerance_percent"`
	TickUs           int    `yaml:"tick_us"`
	MarkExcessUs     *int   `yaml:"mark_excess_us"` // nil => default
}

// ---- LOG ----

type LogConfig struct {
	Trace bool `yaml:"trace"`
}

// Load reads and parses a YAML config file. It does not validate.
func Load(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	return &cfg, nil
}

// Tolerance builds the receive matcher. Zero fields fall back to
// yamato.DefaultTolerance.
func (r ReceiveConfig) Tolerance() yamato.Tolerance {
	t := yamato.DefaultTolerance

	if r.TolerancePercent != 0 {
		t.Percent = r.TolerancePercent
	}
	if r.MarkExcessUs != nil {
		t.MarkExcess = time.Duration(*r.MarkExcessUs) * time.Microsecond
	}

	return t
}

// Tick is the duration of one raw unit reported by the receiver.
func (r ReceiveConfig) Tick() time.Duration {
	if r.TickUs == 0 {
		return yamato.RawTick
	}
	return time.Duration(r.TickUs) * time.Microsecond
}
