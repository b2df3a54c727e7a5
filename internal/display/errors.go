package display

import "errors"

var (
	// ErrNotFound is returned when no display has the requested name.
	ErrNotFound = errors.New("display not found")
	// ErrUnsupported is returned when the display lacks the needed protocol.
	ErrUnsupported = errors.New("operation not supported by display")
	// ErrRejected is returned for parameters that fail validation before any
	// device call.
	ErrRejected = errors.New("requested value rejected")
	// ErrUnsupportedPlatform is returned when the hardware backend is
	// requested on a host it cannot run on.
	ErrUnsupportedPlatform = errors.New("hardware backend requires Windows")
)
