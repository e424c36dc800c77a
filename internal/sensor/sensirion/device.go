package sensirion

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/Meapy011/Boimebubble/internal/sensor"
)

// Bus is the subset of the I2C transport the drivers need.
type Bus interface {
	// Tx writes w then reads len(r) bytes from the device at addr.
	// Either slice may be empty.
	Tx(addr uint16, w, r []byte) error

	// Sleep blocks for d or until ctx is done.
	Sleep(ctx context.Context, d time.Duration) error
}

const wordSize = 3 // two data bytes plus crc

// device addresses one sensor on the bus.
type device struct {
	bus  Bus
	addr uint16
}

// send writes cmd followed by args, then waits delay.
func (d device) send(ctx context.Context, cmd uint16, delay time.Duration, args ...uint16) error {
	buf := make([]byte, 2, 2+len(args)*wordSize)
	buf[0] = byte(cmd >> 8)
	buf[1] = byte(cmd)
	for _, a := range args {
		w := []byte{byte(a >> 8), byte(a)}
		buf = append(buf, w[0], w[1], crc8(w))
	}

	if err := d.bus.Tx(d.addr, buf, nil); err != nil {
		return fmt.Errorf("%w: command 0x%04X: %w", sensor.ErrBus, cmd, err)
	}
	if delay > 0 {
		return d.bus.Sleep(ctx, delay)
	}
	return nil
}

// query writes cmd, waits delay and reads n checksummed words.
func (d device) query(ctx context.Context, cmd uint16, delay time.Duration, n int) ([]uint16, error) {
	if err := d.send(ctx, cmd, delay); err != nil {
		return nil, err
	}

	raw := make([]byte, n*wordSize)
	if err := d.bus.Tx(d.addr, nil, raw); err != nil {
		return nil, fmt.Errorf("%w: read 0x%04X: %w", sensor.ErrBus, cmd, err)
	}

	words := make([]uint16, n)
	for i := range words {
		chunk := raw[i*wordSize : (i+1)*wordSize]
		if crc8(chunk[:2]) != chunk[2] {
			return nil, fmt.Errorf("%w: command 0x%04X word %d", sensor.ErrCRC, cmd, i)
		}
		words[i] = uint16(chunk[0])<<8 | uint16(chunk[1])
	}
	return words, nil
}

// scaled converts a signed raw word to a physical value.
func scaled(w uint16, div float32) float32 {
	return float32(int16(w)) / div
}

// scaledOrNaN is scaled with the device's "unknown" marker mapped to NaN.
func scaledOrNaN(w uint16, div float32) float32 {
	if w == 0x7FFF {
		return float32(math.NaN())
	}
	return scaled(w, div)
}

// unsignedOrNaN converts an unsigned raw word, mapping 0xFFFF to NaN.
func unsignedOrNaN(w uint16, div float32) float32 {
	if w == 0xFFFF {
		return float32(math.NaN())
	}
	return float32(w) / div
}
