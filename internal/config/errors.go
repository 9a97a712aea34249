package config

import "errors"

// ErrInvalidConfig is returned when configuration fails Validate.
var ErrInvalidConfig = errors.New("config: invalid configuration")
