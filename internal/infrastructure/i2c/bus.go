package i2c

import (
	"context"
	"fmt"
	"time"

	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/host/v3"

	"github.com/Meapy011/Boimebubble/internal/infrastructure/config"
)

// Bus is an open I2C bus.
type Bus struct {
	bus  i2c.BusCloser
	name string
}

// Open initialises the host drivers and opens the configured bus.
//
// Parameters:
//   - cfg: Bus configuration from config.yaml
//
// Returns:
//   - *Bus: Open bus, owned by the caller
//   - error: ErrBusOpen wrapping the driver error
func Open(cfg config.BusConfig) (*Bus, error) {
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("%w: host init: %w", ErrBusOpen, err)
	}

	b, err := i2creg.Open(cfg.Name)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %w", ErrBusOpen, cfg.Name, err)
	}

	if cfg.SpeedKHz > 0 {
		if err := b.SetSpeed(physic.Frequency(cfg.SpeedKHz) * physic.KiloHertz); err != nil {
			_ = b.Close()
			return nil, fmt.Errorf("%w: set speed %d kHz: %w", ErrBusOpen, cfg.SpeedKHz, err)
		}
	}

	return newBus(b), nil
}

func newBus(b i2c.BusCloser) *Bus {
	return &Bus{bus: b, name: b.String()}
}

// Name returns the driver's name for the bus.
func (b *Bus) Name() string {
	return b.name
}

// Tx writes w and then reads len(r) bytes from the device at addr in a
// single transaction.
func (b *Bus) Tx(addr uint16, w, r []byte) error {
	if b.bus == nil {
		return ErrClosed
	}
	return b.bus.Tx(addr, w, r)
}

// Sleep blocks for d. It returns early with the context's error if ctx is
// cancelled first.
func (b *Bus) Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close releases the bus. It is safe to call more than once.
func (b *Bus) Close() error {
	if b == nil || b.bus == nil {
		return nil
	}
	err := b.bus.Close()
	b.bus = nil
	return err
}
