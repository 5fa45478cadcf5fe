package utils

import (
	"errors"
	"fmt"
)

// ConfigError marks a user configuration problem: malformed flag values,
// unusable environment defaults, broken project config files. The CLI
// prints these as usage errors instead of internal failures.
type ConfigError struct {
	msg string
}

func (e *ConfigError) Error() string {
	return e.msg
}

// Configf builds a ConfigError the way fmt.Errorf builds an error.
func Configf(format string, args ...any) error {
	return &ConfigError{msg: fmt.Sprintf(format, args...)}
}

// IsConfigError reports whether err is (or wraps) a ConfigError.
func IsConfigError(err error) bool {
	var ce *ConfigError
	return errors.As(err, &ce)
}
