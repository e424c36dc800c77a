// Package console prints the human-readable readout of the acquisition loop.
//
// The output is for an operator watching a terminal. It is not parsed by
// anything and may change between releases.
package console

import (
	"fmt"
	"io"
	"math"
	"time"

	"github.com/Meapy011/Boimebubble/internal/acquisition"
	"github.com/Meapy011/Boimebubble/internal/sensor"
)

const timestampLayout = "2006-01-02 15:04:05"

// Printer writes the countdown, per-cycle header and one line per reading.
// It implements acquisition.Observer.
type Printer struct {
	acquisition.NopObserver
	w io.Writer
}

// New returns a Printer writing to w.
func New(w io.Writer) *Printer {
	return &Printer{w: w}
}

// WarmupStarted prints the start-up banner.
func (p *Printer) WarmupStarted(ticks int) {
	fmt.Fprintf(p.w, "Sensors initialized. Starting in %d seconds...\n", ticks)
}

// WarmupTick overwrites the countdown line in place.
func (p *Printer) WarmupTick(remaining int) {
	fmt.Fprintf(p.w, "\rStarting in %2d seconds... ", remaining)
}

// StateChanged announces the first cycle.
func (p *Printer) StateChanged(s acquisition.State) {
	if s == acquisition.StateRunning {
		fmt.Fprint(p.w, "\rStarting multi-sensor measurement loop!\n")
	}
}

// CycleStarted prints the timestamp header.
func (p *Printer) CycleStarted(_ uint64, at time.Time) {
	fmt.Fprintf(p.w, "\n--- %s ---\n", at.Format(timestampLayout))
}

// ReadingTaken prints one reading.
func (p *Printer) ReadingTaken(_ string, r sensor.Reading) {
	fmt.Fprintln(p.w, FormatReading(r))
}

// FormatReading renders r as a single console line without a newline.
func FormatReading(r sensor.Reading) string {
	switch v := r.(type) {
	case sensor.Formaldehyde:
		return fmt.Sprintf("SFA3X -> HCHO: %.2f ppb, %s, Hum: %.2f %%",
			v.HCHO, temperature(v.Temperature), v.Humidity)
	case sensor.CarbonDioxide:
		return fmt.Sprintf("SCD30 -> CO2: %.2f ppm, %s, Hum: %.2f %%",
			v.CO2, temperature(v.Temperature), v.Humidity)
	case sensor.ParticulateA:
		return fmt.Sprintf("SEN44 -> PM1.0: %d, PM2.5: %d, PM4.0: %d, PM10: %d, VOC: %.2f, %s, Hum: %.2f %%",
			v.PM1, v.PM2_5, v.PM4, v.PM10, v.VOC, temperature(v.Temperature), v.Humidity)
	case sensor.ParticulateB:
		return fmt.Sprintf("SEN5X -> PM1.0: %.2f, PM2.5: %.2f, PM4.0: %.2f, PM10: %.2f, VOC: %.2f, NOx: %.2f, %s, Hum: %.2f %%",
			v.PM1, v.PM2_5, v.PM4, v.PM10, v.VOC, v.NOx, temperature(v.Temperature), v.Humidity)
	case sensor.ParticulateCombo:
		return fmt.Sprintf("SEN66 -> PM1.0: %.2f, PM2.5: %.2f, PM4.0: %.2f, PM10: %.2f, VOC: %.2f, NOx: %.2f, CO2: %d, %s, Hum: %.2f %%",
			v.PM1, v.PM2_5, v.PM4, v.PM10, v.VOC, v.NOx, v.CO2, temperature(v.Temperature), v.Humidity)
	default:
		return fmt.Sprintf("%s -> %+v", r.Kind(), r)
	}
}

// temperature renders a Celsius value with its Fahrenheit equivalent.
func temperature(c float32) string {
	if math.IsNaN(float64(c)) {
		return "Temp: NaN"
	}
	return fmt.Sprintf("Temp: %.2f °C (%.2f °F)", c, CelsiusToFahrenheit(c))
}

// CelsiusToFahrenheit converts c to °F.
func CelsiusToFahrenheit(c float32) float32 {
	return c*9/5 + 32
}
