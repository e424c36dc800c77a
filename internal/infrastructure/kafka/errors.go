package kafka

import "errors"

// Domain-specific errors for Kafka operations.
var (
	// ErrNotConnected is returned when submitting on a closed producer.
	ErrNotConnected = errors.New("kafka: producer closed")

	// ErrWriteFailed is returned when the broker does not accept a record.
	ErrWriteFailed = errors.New("kafka: write failed")
)
