package sensirion

import (
	"context"
	"time"

	"github.com/Meapy011/Boimebubble/internal/sensor"
)

const (
	sen66CmdStart uint16 = 0x0021
	sen66CmdRead  uint16 = 0x0300

	sen66ResetDelay = 1200 * time.Millisecond
	sen66StartDelay = 50 * time.Millisecond
	sen66StopDelay  = time.Second
	sen66ReadDelay  = 20 * time.Millisecond
)

// SEN66 drives the SEN66 particulate, gas and CO2 node.
type SEN66 struct {
	dev device
}

// NewSEN66 returns a driver for the SEN66 at addr.
func NewSEN66(bus Bus, addr uint16) *SEN66 {
	return &SEN66{dev: device{bus: bus, addr: addr}}
}

// Name implements sensor.Sensor.
func (s *SEN66) Name() string { return "sen66" }

// Kind implements sensor.Sensor.
func (s *SEN66) Kind() sensor.Kind { return sensor.KindParticulateCombo }

// Init resets the device. The reset delay of 1.2 s covers the reboot.
func (s *SEN66) Init(ctx context.Context) error {
	return s.dev.send(ctx, cmdDeviceReset, sen66ResetDelay)
}

// Start begins continuous measurement.
func (s *SEN66) Start(ctx context.Context) error {
	return s.dev.send(ctx, sen66CmdStart, sen66StartDelay)
}

// Read returns mass concentrations, humidity, temperature, VOC and NOx
// indices, and CO2 in ppm.
func (s *SEN66) Read(ctx context.Context) (sensor.Reading, error) {
	w, err := s.dev.query(ctx, sen66CmdRead, sen66ReadDelay, 9)
	if err != nil {
		return nil, err
	}
	return sensor.ParticulateCombo{
		PM1:         unsignedOrNaN(w[0], 10),
		PM2_5:       unsignedOrNaN(w[1], 10),
		PM4:         unsignedOrNaN(w[2], 10),
		PM10:        unsignedOrNaN(w[3], 10),
		Humidity:    scaledOrNaN(w[4], 100),
		Temperature: scaledOrNaN(w[5], 200),
		VOC:         scaledOrNaN(w[6], 10),
		NOx:         scaledOrNaN(w[7], 10),
		CO2:         w[8],
	}, nil
}

// Stop ends continuous measurement.
func (s *SEN66) Stop(ctx context.Context) error {
	return s.dev.send(ctx, cmdStopMeasurement, sen66StopDelay)
}
