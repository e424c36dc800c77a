package i2c

import "errors"

// Sentinel errors for bus operations.
var (
	// ErrBusOpen indicates the host drivers or the named bus could not be
	// initialised.
	ErrBusOpen = errors.New("i2c: bus open failed")

	// ErrClosed indicates the bus was used after Close.
	ErrClosed = errors.New("i2c: bus closed")
)
