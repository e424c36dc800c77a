package acquisition

import (
	"time"

	"github.com/Meapy011/Boimebubble/internal/sensor"
)

// SensorResult is the outcome of one sensor's read in a cycle.
type SensorResult struct {
	Sensor  string
	Kind    sensor.Kind
	Reading sensor.Reading // nil when Err is set
	Err     error
	Dropped bool // formatted but did not fit in the payload
}

// OK reports whether the read succeeded.
func (r SensorResult) OK() bool {
	return r.Err == nil
}

// CycleReport summarises one completed cycle.
type CycleReport struct {
	Seq          uint64
	StartedAt    time.Time
	Duration     time.Duration
	Results      []SensorResult
	Lines        int
	Dropped      int
	PayloadBytes int
	Dispatched   bool
	DispatchErr  error
}

// Succeeded returns the number of sensors that produced a reading.
func (r CycleReport) Succeeded() int {
	n := 0
	for _, res := range r.Results {
		if res.OK() {
			n++
		}
	}
	return n
}
