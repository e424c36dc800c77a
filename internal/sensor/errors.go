package sensor

import "errors"

// Sentinel errors shared by sensor drivers.
//
// Drivers wrap these with context:
//
//	if errors.Is(err, sensor.ErrNotReady) {
//	    // no new sample this cycle
//	}
var (
	// ErrNotReady indicates the device has no new measurement available.
	ErrNotReady = errors.New("sensor: measurement not ready")

	// ErrCRC indicates a received word failed its checksum.
	ErrCRC = errors.New("sensor: crc mismatch")

	// ErrBus indicates the underlying bus transaction failed.
	ErrBus = errors.New("sensor: bus transaction failed")
)
