// internal/config/validate.go
package config

import (
	"fmt"
)

// Validate checks configuration correctness.
// It performs declarative validation only.
// It MUST NOT mutate configuration.
func Validate(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("config is nil")
	}

	// ------------------------------------------------------------
	// SERIAL PORTS
	// ------------------------------------------------------------

	if cfg.Transmit.Baud < 0 {
		return fmt.Errorf("transmit: baud must be >= 0, got %d", cfg.Transmit.Baud)
	}
	if cfg.Receive.Baud < 0 {
		return fmt.Errorf("receive: baud must be >= 0, got %d", cfg.Receive.Baud)
	}

	// ------------------------------------------------------------
	// RECEIVE MATCHER
	// ------------------------------------------------------------

	if cfg.Receive.TickUs < 0 {
		return fmt.Errorf("receive: tick_us must be >= 0, got %d", cfg.Receive.TickUs)
	}

	// one/zero space windows must not overlap
	if err := cfg.Receive.Tolerance().Validate(); err != nil {
		return fmt.Errorf("receive: %w", err)
	}

	return nil
}
