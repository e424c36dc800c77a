package sensirion

import (
	"context"
	"errors"
	"time"
)

var errNACK = errors.New("i2c: nack")

// fakeBus answers read transactions with scripted words keyed by the last
// command written.
type fakeBus struct {
	writes    [][]byte
	sleeps    []time.Duration
	responses map[uint16][][]uint16
	failCmd   map[uint16]bool
	badCRC    bool
	lastCmd   uint16
}

func newFakeBus() *fakeBus {
	return &fakeBus{
		responses: make(map[uint16][][]uint16),
		failCmd:   make(map[uint16]bool),
	}
}

// respond queues a response for cmd. The last queued response repeats.
func (b *fakeBus) respond(cmd uint16, words ...uint16) {
	b.responses[cmd] = append(b.responses[cmd], words)
}

func (b *fakeBus) Tx(_ uint16, w, r []byte) error {
	if len(w) >= 2 {
		b.writes = append(b.writes, append([]byte(nil), w...))
		b.lastCmd = uint16(w[0])<<8 | uint16(w[1])
		if b.failCmd[b.lastCmd] {
			return errNACK
		}
	}
	if len(r) == 0 {
		return nil
	}

	queue := b.responses[b.lastCmd]
	if len(queue) == 0 {
		return errNACK
	}
	words := queue[0]
	if len(queue) > 1 {
		b.responses[b.lastCmd] = queue[1:]
	}
	for i, word := range words {
		if (i+1)*wordSize > len(r) {
			break
		}
		chunk := []byte{byte(word >> 8), byte(word)}
		crc := crc8(chunk)
		if b.badCRC {
			crc ^= 0xFF
		}
		copy(r[i*wordSize:], []byte{chunk[0], chunk[1], crc})
	}
	return nil
}

func (b *fakeBus) Sleep(_ context.Context, d time.Duration) error {
	b.sleeps = append(b.sleeps, d)
	return nil
}

// commands returns the command word of every write in order.
func (b *fakeBus) commands() []uint16 {
	cmds := make([]uint16, 0, len(b.writes))
	for _, w := range b.writes {
		cmds = append(cmds, uint16(w[0])<<8|uint16(w[1]))
	}
	return cmds
}

func (b *fakeBus) slept() time.Duration {
	var total time.Duration
	for _, d := range b.sleeps {
		total += d
	}
	return total
}
