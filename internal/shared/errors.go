package shared

import "fmt"

var (
	ErrNotImplemented = fmt.Errorf("not implemented")

	// Configuration errors
	ErrMissingConfig = fmt.Errorf("configuration not found")
	ErrInvalidConfig = fmt.Errorf("invalid configuration")

	// Song text errors
	ErrInvalidFormat     = fmt.Errorf("invalid song format")
	ErrUnknownInstrument = fmt.Errorf("unknown instrument")
	ErrUnknownChord      = fmt.Errorf("unknown chord shape")
	ErrSongNotFound      = fmt.Errorf("song not found")

	// Service errors
	ErrServiceUnavailable = fmt.Errorf("service unavailable")

	// Input validation errors
	ErrInvalidInput    = fmt.Errorf("invalid input")
	ErrMissingArgument = fmt.Errorf("missing required argument")
	ErrInvalidArgument = fmt.Errorf("invalid argument")
	ErrInvalidFlag     = fmt.Errorf("invalid flag value")
)
