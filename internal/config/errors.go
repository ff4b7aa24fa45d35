package config

import "errors"

// ErrInvalidKey indicates a key that cannot be stored in the key=value file.
var ErrInvalidKey = errors.New("invalid config key")

// ErrInvalidValue indicates a value that cannot be stored in the key=value file.
var ErrInvalidValue = errors.New("invalid config value")
