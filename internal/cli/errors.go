package cli

import "errors"

// CLI-specific sentinel errors.
// These are usage/setup errors that don't belong to domain packages.

var (
	// ErrInvalidOption indicates a global flag has an unsupported value.
	ErrInvalidOption = errors.New("invalid option")

	// ErrUnknownConfigKey indicates a config key that recsplit does not know.
	ErrUnknownConfigKey = errors.New("unknown config key")

	// ErrInvalidConfigValue indicates a value that does not fit its config key.
	ErrInvalidConfigValue = errors.New("invalid config value")
)
