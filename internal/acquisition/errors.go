package acquisition

import "errors"

// Sentinel errors for the acquisition loop.
var (
	// ErrBusUnavailable indicates the bus could not be opened. Nothing can be
	// measured without it, so Run gives up.
	ErrBusUnavailable = errors.New("acquisition: bus unavailable")

	// ErrAlreadyRunning indicates Run was called more than once.
	ErrAlreadyRunning = errors.New("acquisition: loop already started")
)
