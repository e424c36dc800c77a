package sensirion

import (
	"context"
	"time"

	"github.com/Meapy011/Boimebubble/internal/sensor"
)

const (
	sfa3xCmdStart uint16 = 0x0006
	sfa3xCmdRead  uint16 = 0x0327

	sfa3xResetDelay = 100 * time.Millisecond
	sfa3xSettle     = time.Second
	sfa3xStartDelay = time.Millisecond
	sfa3xStopDelay  = 50 * time.Millisecond
	sfa3xReadDelay  = 5 * time.Millisecond
)

// SFA3x drives the SFA30 formaldehyde sensor.
type SFA3x struct {
	dev device
}

// NewSFA3x returns a driver for the SFA3x at addr.
func NewSFA3x(bus Bus, addr uint16) *SFA3x {
	return &SFA3x{dev: device{bus: bus, addr: addr}}
}

// Name implements sensor.Sensor.
func (s *SFA3x) Name() string { return "sfa3x" }

// Kind implements sensor.Sensor.
func (s *SFA3x) Kind() sensor.Kind { return sensor.KindFormaldehyde }

// Init resets the device and waits one second for it to come back.
func (s *SFA3x) Init(ctx context.Context) error {
	if err := s.dev.send(ctx, cmdDeviceReset, sfa3xResetDelay); err != nil {
		return err
	}
	return s.dev.bus.Sleep(ctx, sfa3xSettle)
}

// Start begins continuous measurement.
func (s *SFA3x) Start(ctx context.Context) error {
	return s.dev.send(ctx, sfa3xCmdStart, sfa3xStartDelay)
}

// Read returns formaldehyde in ppb, humidity and temperature.
func (s *SFA3x) Read(ctx context.Context) (sensor.Reading, error) {
	w, err := s.dev.query(ctx, sfa3xCmdRead, sfa3xReadDelay, 3)
	if err != nil {
		return nil, err
	}
	return sensor.Formaldehyde{
		HCHO:        scaled(w[0], 5),
		Humidity:    scaled(w[1], 100),
		Temperature: scaled(w[2], 200),
	}, nil
}

// Stop ends continuous measurement.
func (s *SFA3x) Stop(ctx context.Context) error {
	return s.dev.send(ctx, cmdStopMeasurement, sfa3xStopDelay)
}
