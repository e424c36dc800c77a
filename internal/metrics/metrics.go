// Package metrics exposes Prometheus instrumentation for the acquisition
// loop. Collectors are registered on the default registry at init; the
// status server serves them on /metrics.
package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/Meapy011/Boimebubble/internal/acquisition"
	"github.com/Meapy011/Boimebubble/internal/lineproto"
	"github.com/Meapy011/Boimebubble/internal/sensor"
)

// Outcome label values.
const (
	OutcomeOK    = "ok"
	OutcomeError = "error"
)

// Cycles counts completed acquisition cycles.
var Cycles = promauto.NewCounter(
	prometheus.CounterOpts{
		Name: "boimebubble_cycles_total",
		Help: "Completed acquisition cycles",
	},
)

// SensorReads counts read attempts per sensor and outcome.
var SensorReads = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "boimebubble_sensor_reads_total",
		Help: "Sensor read attempts by outcome",
	},
	[]string{"sensor", "outcome"},
)

// SensorInitFailures counts sensors that failed to initialise or start.
var SensorInitFailures = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "boimebubble_sensor_init_failures_total",
		Help: "Sensors that failed reset or start-up",
	},
	[]string{"sensor"},
)

// LinesDropped counts readings that did not fit in the payload.
var LinesDropped = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "boimebubble_lines_dropped_total",
		Help: "Formatted lines rejected by the payload capacity bound",
	},
	[]string{"sensor"},
)

// Dispatches counts payload submissions by outcome.
var Dispatches = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "boimebubble_dispatches_total",
		Help: "Payload submissions to the ingestion endpoint by outcome",
	},
	[]string{"outcome"},
)

// PayloadBytes is the size of submitted payloads.
var PayloadBytes = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Name:    "boimebubble_payload_bytes",
		Help:    "Size of submitted line-protocol payloads",
		Buckets: []float64{64, 128, 256, 384, 512, 768, 1024},
	},
)

// CycleDuration is the time from the first read to the end of submit.
var CycleDuration = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Name:    "boimebubble_cycle_duration_seconds",
		Help:    "Time spent reading sensors and submitting one cycle",
		Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
	},
)

// LoopState is 1 for the loop's current state and 0 for the others.
var LoopState = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Name: "boimebubble_loop_state",
		Help: "Current acquisition loop state",
	},
	[]string{"state"},
)

// Measurement holds the latest value of every field, keyed the same way as
// the line-protocol payload.
var Measurement = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Name: "boimebubble_measurement",
		Help: "Latest value per measurement and field",
	},
	[]string{"measurement", "field"},
)

// Observer feeds loop events into the collectors.
type Observer struct {
	acquisition.NopObserver
}

// NewObserver returns an Observer.
func NewObserver() *Observer {
	return &Observer{}
}

// StateChanged implements acquisition.Observer.
func (o *Observer) StateChanged(s acquisition.State) {
	for _, st := range acquisition.States {
		v := 0.0
		if st == s {
			v = 1
		}
		LoopState.WithLabelValues(string(st)).Set(v)
	}
}

// SensorInitialized implements acquisition.Observer.
func (o *Observer) SensorInitialized(name string, err error) {
	if err != nil {
		SensorInitFailures.WithLabelValues(name).Inc()
	}
}

// ReadingTaken implements acquisition.Observer.
func (o *Observer) ReadingTaken(_ string, r sensor.Reading) {
	line := lineproto.Format(r)
	for _, f := range line.Fields() {
		v, err := strconv.ParseFloat(f.Value, 64)
		if err != nil {
			continue
		}
		Measurement.WithLabelValues(line.Measurement(), f.Key).Set(v)
	}
}

// CycleFinished implements acquisition.Observer.
func (o *Observer) CycleFinished(report acquisition.CycleReport) {
	Cycles.Inc()
	CycleDuration.Observe(report.Duration.Seconds())

	for _, res := range report.Results {
		outcome := OutcomeOK
		if !res.OK() {
			outcome = OutcomeError
		}
		SensorReads.WithLabelValues(res.Sensor, outcome).Inc()
		if res.Dropped {
			LinesDropped.WithLabelValues(res.Sensor).Inc()
		}
	}

	if report.Dispatched {
		outcome := OutcomeOK
		if report.DispatchErr != nil {
			outcome = OutcomeError
		}
		Dispatches.WithLabelValues(outcome).Inc()
		PayloadBytes.Observe(float64(report.PayloadBytes))
	}
}

