// internal/config/normalize.go
package config

// DefaultBaud is used for any serial port without an explicit baud rate.
const DefaultBaud = 115200

// Normalize applies post-validation normalization.
// It is allowed to mutate configuration.
// It MUST be called only after Validate().
func Normalize(cfg *Config) {
	if cfg == nil {
		return
	}

	if cfg.Transmit.Device != "" && cfg.Transmit.Baud == 0 {
		cfg.Transmit.Baud = DefaultBaud
	}
	if cfg.Receive.Device != "" && cfg.Receive.Baud == 0 {
		cfg.Receive.Baud = DefaultBaud
	}
}
