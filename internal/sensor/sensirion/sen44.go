package sensirion

import (
	"context"
	"time"

	"github.com/Meapy011/Boimebubble/internal/sensor"
)

const (
	sen44CmdStart uint16 = 0x0021
	sen44CmdRead  uint16 = 0x0374

	sen44ResetDelay = 100 * time.Millisecond
	sen44StartDelay = time.Millisecond
	sen44StopDelay  = time.Millisecond
	sen44ReadDelay  = time.Millisecond
)

// SEN44 drives the SEN44 particulate, VOC, humidity and temperature node.
type SEN44 struct {
	dev device
}

// NewSEN44 returns a driver for the SEN44 at addr.
func NewSEN44(bus Bus, addr uint16) *SEN44 {
	return &SEN44{dev: device{bus: bus, addr: addr}}
}

// Name implements sensor.Sensor.
func (s *SEN44) Name() string { return "sen44" }

// Kind implements sensor.Sensor.
func (s *SEN44) Kind() sensor.Kind { return sensor.KindParticulateA }

// Init resets the device. It needs no extra settle time.
func (s *SEN44) Init(ctx context.Context) error {
	return s.dev.send(ctx, cmdDeviceReset, sen44ResetDelay)
}

// Start begins continuous measurement.
func (s *SEN44) Start(ctx context.Context) error {
	return s.dev.send(ctx, sen44CmdStart, sen44StartDelay)
}

// Read returns mass concentrations in µg/m³ with VOC index, humidity and
// temperature.
func (s *SEN44) Read(ctx context.Context) (sensor.Reading, error) {
	w, err := s.dev.query(ctx, sen44CmdRead, sen44ReadDelay, 7)
	if err != nil {
		return nil, err
	}
	return sensor.ParticulateA{
		PM1:         w[0],
		PM2_5:       w[1],
		PM4:         w[2],
		PM10:        w[3],
		VOC:         scaled(w[4], 10),
		Humidity:    scaled(w[5], 100),
		Temperature: scaled(w[6], 200),
	}, nil
}

// Stop ends continuous measurement.
func (s *SEN44) Stop(ctx context.Context) error {
	return s.dev.send(ctx, cmdStopMeasurement, sen44StopDelay)
}
