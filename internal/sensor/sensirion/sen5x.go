package sensirion

import (
	"context"
	"time"

	"github.com/Meapy011/Boimebubble/internal/sensor"
)

const (
	sen5xCmdTemperatureOffset uint16 = 0x60B2
	sen5xCmdStart             uint16 = 0x0021
	sen5xCmdRead              uint16 = 0x03C4

	sen5xResetDelay  = 200 * time.Millisecond
	sen5xSettle      = time.Second
	sen5xConfigDelay = 20 * time.Millisecond
	sen5xStartDelay  = 50 * time.Millisecond
	sen5xStopDelay   = 200 * time.Millisecond
	sen5xReadDelay   = 20 * time.Millisecond
)

// SEN5x drives the SEN50/54/55 environmental node.
type SEN5x struct {
	dev               device
	temperatureOffset float32
}

// NewSEN5x returns a driver for the SEN5x at addr. temperatureOffset in °C
// is written to the device during Init.
func NewSEN5x(bus Bus, addr uint16, temperatureOffset float32) *SEN5x {
	return &SEN5x{
		dev:               device{bus: bus, addr: addr},
		temperatureOffset: temperatureOffset,
	}
}

// Name implements sensor.Sensor.
func (s *SEN5x) Name() string { return "sen5x" }

// Kind implements sensor.Sensor.
func (s *SEN5x) Kind() sensor.Kind { return sensor.KindParticulateB }

// Init resets the device, waits one second and sets the temperature offset
// with zero slope and time constant.
func (s *SEN5x) Init(ctx context.Context) error {
	if err := s.dev.send(ctx, cmdDeviceReset, sen5xResetDelay); err != nil {
		return err
	}
	if err := s.dev.bus.Sleep(ctx, sen5xSettle); err != nil {
		return err
	}
	offset := uint16(int16(s.temperatureOffset * 200))
	return s.dev.send(ctx, sen5xCmdTemperatureOffset, sen5xConfigDelay, offset, 0, 0)
}

// Start begins continuous measurement.
func (s *SEN5x) Start(ctx context.Context) error {
	return s.dev.send(ctx, sen5xCmdStart, sen5xStartDelay)
}

// Read returns mass concentrations in µg/m³, humidity, temperature, and
// VOC and NOx indices. Channels the device reports as unknown are NaN.
func (s *SEN5x) Read(ctx context.Context) (sensor.Reading, error) {
	w, err := s.dev.query(ctx, sen5xCmdRead, sen5xReadDelay, 8)
	if err != nil {
		return nil, err
	}
	return sensor.ParticulateB{
		PM1:         unsignedOrNaN(w[0], 10),
		PM2_5:       unsignedOrNaN(w[1], 10),
		PM4:         unsignedOrNaN(w[2], 10),
		PM10:        unsignedOrNaN(w[3], 10),
		Humidity:    scaledOrNaN(w[4], 100),
		Temperature: scaledOrNaN(w[5], 200),
		VOC:         scaledOrNaN(w[6], 10),
		NOx:         scaledOrNaN(w[7], 10),
	}, nil
}

// Stop ends continuous measurement.
func (s *SEN5x) Stop(ctx context.Context) error {
	return s.dev.send(ctx, cmdStopMeasurement, sen5xStopDelay)
}
