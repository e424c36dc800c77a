package console

import (
	"bytes"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/Meapy011/Boimebubble/internal/acquisition"
	"github.com/Meapy011/Boimebubble/internal/sensor"
)

func TestFormatReading(t *testing.T) {
	nan := float32(math.NaN())

	tests := []struct {
		name    string
		reading sensor.Reading
		want    string
	}{
		{
			name:    "formaldehyde",
			reading: sensor.Formaldehyde{HCHO: 12.34, Temperature: 21.5, Humidity: 40.2},
			want:    "SFA3X -> HCHO: 12.34 ppb, Temp: 21.50 °C (70.70 °F), Hum: 40.20 %",
		},
		{
			name:    "carbon dioxide",
			reading: sensor.CarbonDioxide{CO2: 415.5, Temperature: 20, Humidity: 38.75},
			want:    "SCD30 -> CO2: 415.50 ppm, Temp: 20.00 °C (68.00 °F), Hum: 38.75 %",
		},
		{
			name: "particulate a",
			reading: sensor.ParticulateA{
				PM1: 3, PM2_5: 5, PM4: 6, PM10: 7, VOC: 100.5, Humidity: 45.5, Temperature: 0,
			},
			want: "SEN44 -> PM1.0: 3, PM2.5: 5, PM4.0: 6, PM10: 7, VOC: 100.50, Temp: 0.00 °C (32.00 °F), Hum: 45.50 %",
		},
		{
			name: "particulate b with nan",
			reading: sensor.ParticulateB{
				PM1: 1.5, PM2_5: 2.5, PM4: 3.5, PM10: 4, VOC: nan, NOx: 1, Humidity: 45.5, Temperature: nan,
			},
			want: "SEN5X -> PM1.0: 1.50, PM2.5: 2.50, PM4.0: 3.50, PM10: 4.00, VOC: NaN, NOx: 1.00, Temp: NaN, Hum: 45.50 %",
		},
		{
			name: "combo",
			reading: sensor.ParticulateCombo{
				PM1: 1.5, PM2_5: 2.5, PM4: 3.5, PM10: 4, VOC: 100, NOx: 1, Humidity: 45.5, Temperature: -10, CO2: 612,
			},
			want: "SEN66 -> PM1.0: 1.50, PM2.5: 2.50, PM4.0: 3.50, PM10: 4.00, VOC: 100.00, NOx: 1.00, CO2: 612, Temp: -10.00 °C (14.00 °F), Hum: 45.50 %",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatReading(tt.reading); got != tt.want {
				t.Errorf("FormatReading() =\n  %q\nwant\n  %q", got, tt.want)
			}
		})
	}
}

func TestCelsiusToFahrenheit(t *testing.T) {
	tests := []struct {
		c, f float32
	}{
		{0, 32},
		{100, 212},
		{-40, -40},
		{37, 98.6},
	}
	for _, tt := range tests {
		got := CelsiusToFahrenheit(tt.c)
		if math.Abs(float64(got-tt.f)) > 0.001 {
			t.Errorf("CelsiusToFahrenheit(%v) = %v, want %v", tt.c, got, tt.f)
		}
	}
}

func TestPrinter_Countdown(t *testing.T) {
	var buf bytes.Buffer
	p := New(&buf)

	p.WarmupStarted(3)
	p.WarmupTick(3)
	p.WarmupTick(2)
	p.WarmupTick(1)
	p.StateChanged(acquisition.StateRunning)

	want := "Sensors initialized. Starting in 3 seconds...\n" +
		"\rStarting in  3 seconds... " +
		"\rStarting in  2 seconds... " +
		"\rStarting in  1 seconds... " +
		"\rStarting multi-sensor measurement loop!\n"
	if got := buf.String(); got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
}

func TestPrinter_IgnoresOtherStates(t *testing.T) {
	var buf bytes.Buffer
	p := New(&buf)

	p.StateChanged(acquisition.StateDraining)
	p.StateChanged(acquisition.StateStopped)

	if buf.Len() != 0 {
		t.Errorf("unexpected output %q", buf.String())
	}
}

func TestPrinter_Cycle(t *testing.T) {
	var buf bytes.Buffer
	p := New(&buf)
	at := time.Date(2026, 3, 1, 9, 5, 7, 0, time.UTC)

	p.CycleStarted(1, at)
	p.ReadingTaken("sfa3x", sensor.Formaldehyde{HCHO: 12.34, Temperature: 21.5, Humidity: 40.2})
	p.ReadingTaken("scd30", sensor.CarbonDioxide{CO2: 415.5, Temperature: 20, Humidity: 38.75})

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	want := []string{
		"",
		"--- 2026-03-01 09:05:07 ---",
		"SFA3X -> HCHO: 12.34 ppb, Temp: 21.50 °C (70.70 °F), Hum: 40.20 %",
		"SCD30 -> CO2: 415.50 ppm, Temp: 20.00 °C (68.00 °F), Hum: 38.75 %",
	}
	if len(lines) != len(want) {
		t.Fatalf("got %d lines %q, want %d", len(lines), lines, len(want))
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Errorf("line %d = %q, want %q", i, lines[i], want[i])
		}
	}
}
