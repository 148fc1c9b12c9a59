// Package pwm drives an IR LED from a TinyGo PWM peripheral. It is only
// built for TinyGo targets; host builds use driver/stub or
// driver/serialbridge instead.
package pwm
