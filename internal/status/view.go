package status

import (
	"math"
	"strconv"
	"time"

	"github.com/Meapy011/Boimebubble/internal/acquisition"
	"github.com/Meapy011/Boimebubble/internal/lineproto"
)

// CycleView is the JSON form of a cycle report.
type CycleView struct {
	Seq          uint64       `json:"seq"`
	StartedAt    time.Time    `json:"started_at"`
	DurationMS   int64        `json:"duration_ms"`
	Lines        int          `json:"lines"`
	Dropped      int          `json:"dropped"`
	PayloadBytes int          `json:"payload_bytes"`
	Dispatched   bool         `json:"dispatched"`
	DispatchErr  string       `json:"dispatch_error,omitempty"`
	Sensors      []SensorView `json:"sensors"`
}

// SensorView is one sensor's part of a cycle.
//
// Fields holds the values as written on the wire. Non-finite values become
// null because JSON has no NaN.
type SensorView struct {
	Sensor      string              `json:"sensor"`
	Measurement string              `json:"measurement"`
	OK          bool                `json:"ok"`
	Error       string              `json:"error,omitempty"`
	Dropped     bool                `json:"dropped,omitempty"`
	Line        string              `json:"line,omitempty"`
	Fields      map[string]*float64 `json:"fields,omitempty"`
}

// NewCycleView converts a report for JSON encoding.
func NewCycleView(report acquisition.CycleReport) CycleView {
	v := CycleView{
		Seq:          report.Seq,
		StartedAt:    report.StartedAt.UTC(),
		DurationMS:   report.Duration.Milliseconds(),
		Lines:        report.Lines,
		Dropped:      report.Dropped,
		PayloadBytes: report.PayloadBytes,
		Dispatched:   report.Dispatched,
		Sensors:      make([]SensorView, 0, len(report.Results)),
	}
	if report.DispatchErr != nil {
		v.DispatchErr = report.DispatchErr.Error()
	}

	for _, res := range report.Results {
		sv := SensorView{
			Sensor:      res.Sensor,
			Measurement: string(res.Kind),
			OK:          res.OK(),
			Dropped:     res.Dropped,
		}
		if res.Err != nil {
			sv.Error = res.Err.Error()
		}
		if res.Reading != nil {
			line := lineproto.Format(res.Reading)
			sv.Line = line.String()
			sv.Fields = make(map[string]*float64, len(line.Fields()))
			for _, f := range line.Fields() {
				sv.Fields[f.Key] = finite(f.Value)
			}
		}
		v.Sensors = append(v.Sensors, sv)
	}

	return v
}

// finite parses a rendered field value, returning nil for nan/inf.
func finite(s string) *float64 {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	return &f
}
