package sensirion

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/Meapy011/Boimebubble/internal/sensor"
)

const (
	scd30CmdStartPeriodic uint16 = 0x0010
	scd30CmdRead          uint16 = 0x0300

	// The SCD30 needs at least 3 ms between a write and the following read.
	scd30CommandDelay = 3 * time.Millisecond
	scd30Settle       = 2 * time.Second
	scd30PollInterval = 100 * time.Millisecond

	// DefaultSCD30ReadyTimeout bounds how long Read waits for a new sample.
	DefaultSCD30ReadyTimeout = 3 * time.Second
)

// SCD30 drives the SCD30 NDIR CO2 sensor.
//
// The device produces a sample every two seconds. Read polls the data-ready
// flag and gives up after the ready timeout.
type SCD30 struct {
	dev             device
	ambientPressure uint16
	readyTimeout    time.Duration
}

// NewSCD30 returns a driver for the SCD30 at addr.
//
// ambientPressure is in mbar; 0 disables pressure compensation. A
// non-positive readyTimeout selects DefaultSCD30ReadyTimeout.
func NewSCD30(bus Bus, addr, ambientPressure uint16, readyTimeout time.Duration) *SCD30 {
	if readyTimeout <= 0 {
		readyTimeout = DefaultSCD30ReadyTimeout
	}
	return &SCD30{
		dev:             device{bus: bus, addr: addr},
		ambientPressure: ambientPressure,
		readyTimeout:    readyTimeout,
	}
}

// Name implements sensor.Sensor.
func (s *SCD30) Name() string { return "scd30" }

// Kind implements sensor.Sensor.
func (s *SCD30) Kind() sensor.Kind { return sensor.KindCarbonDioxide }

// Init stops any running measurement, soft-resets the device and waits
// two seconds for it to reboot.
func (s *SCD30) Init(ctx context.Context) error {
	// A device that was never started may NACK the stop.
	_ = s.dev.send(ctx, cmdStopMeasurement, scd30CommandDelay)

	if err := s.dev.send(ctx, cmdDeviceReset, scd30CommandDelay); err != nil {
		return err
	}
	return s.dev.bus.Sleep(ctx, scd30Settle)
}

// Start begins periodic measurement with the configured ambient pressure.
func (s *SCD30) Start(ctx context.Context) error {
	return s.dev.send(ctx, scd30CmdStartPeriodic, scd30CommandDelay, s.ambientPressure)
}

// Read waits for a new sample and returns CO2 in ppm, temperature and
// humidity.
func (s *SCD30) Read(ctx context.Context) (sensor.Reading, error) {
	if err := s.waitReady(ctx); err != nil {
		return nil, err
	}

	w, err := s.dev.query(ctx, scd30CmdRead, scd30CommandDelay, 6)
	if err != nil {
		return nil, err
	}
	return sensor.CarbonDioxide{
		CO2:         wordsToFloat(w[0], w[1]),
		Temperature: wordsToFloat(w[2], w[3]),
		Humidity:    wordsToFloat(w[4], w[5]),
	}, nil
}

// waitReady polls the data-ready flag until it is set or the ready timeout
// has been spent sleeping.
func (s *SCD30) waitReady(ctx context.Context) error {
	attempts := int(s.readyTimeout/scd30PollInterval) + 1
	for i := 0; i < attempts; i++ {
		w, err := s.dev.query(ctx, cmdDataReady, scd30CommandDelay, 1)
		if err != nil {
			return err
		}
		if w[0] == 1 {
			return nil
		}
		if i < attempts-1 {
			if err := s.dev.bus.Sleep(ctx, scd30PollInterval); err != nil {
				return err
			}
		}
	}
	return fmt.Errorf("%w: scd30 after %s", sensor.ErrNotReady, s.readyTimeout)
}

// Stop ends periodic measurement.
func (s *SCD30) Stop(ctx context.Context) error {
	return s.dev.send(ctx, cmdStopMeasurement, scd30CommandDelay)
}

// wordsToFloat joins two big-endian words into an IEEE-754 float32.
func wordsToFloat(hi, lo uint16) float32 {
	return math.Float32frombits(uint32(hi)<<16 | uint32(lo))
}
