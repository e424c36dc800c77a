package tsdb

import "errors"

// Sentinel errors for InfluxDB 1.x operations.
//
// These errors can be checked using errors.Is() for specific handling:
//
//	if errors.Is(err, tsdb.ErrWriteFailed) {
//	    // payload was not stored
//	}
var (
	// ErrNotConnected indicates the client has been closed.
	ErrNotConnected = errors.New("tsdb: not connected")

	// ErrConnectionFailed indicates the server did not answer a ping.
	ErrConnectionFailed = errors.New("tsdb: connection failed")

	// ErrWriteFailed indicates a write was refused, timed out or answered
	// with a non-2xx status.
	ErrWriteFailed = errors.New("tsdb: write failed")
)
