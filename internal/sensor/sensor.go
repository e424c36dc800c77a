package sensor

import "context"

// Sensor is the capability the acquisition loop drives.
//
// Calls are made from a single goroutine and never overlap. Every method
// blocks until the bus transaction and any required settle delay finish.
type Sensor interface {
	// Name is a short stable identifier used in logs and metrics (e.g. "sfa3x").
	Name() string

	// Kind reports which Reading type Read returns.
	Kind() Kind

	// Init resets the device, waits for it to settle and applies its
	// configuration.
	Init(ctx context.Context) error

	// Start begins continuous measurement.
	Start(ctx context.Context) error

	// Read returns the current measurement. On error no Reading is returned.
	Read(ctx context.Context) (Reading, error)

	// Stop ends continuous measurement.
	Stop(ctx context.Context) error
}
