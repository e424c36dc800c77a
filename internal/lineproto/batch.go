package lineproto

import (
	"bytes"
	"fmt"
)

// Batch accumulates the lines of one acquisition cycle.
//
// The payload never grows past its capacity, counting one byte of headroom
// the same way a fixed C string buffer reserves its terminator. A line that
// would not fit is rejected whole.
type Batch struct {
	buf      bytes.Buffer
	capacity int
	count    int
}

// NewBatch returns an empty batch bounded to capacity bytes.
func NewBatch(capacity int) *Batch {
	b := &Batch{capacity: capacity}
	if capacity > 0 {
		b.buf.Grow(capacity)
	}
	return b
}

// Append adds l followed by a newline.
//
// Returns ErrCapacityExceeded, leaving the batch unchanged, when the line
// does not fit.
func (b *Batch) Append(l Line) error {
	text := l.String()
	need := b.buf.Len() + len(text) + 1
	if need >= b.capacity {
		return fmt.Errorf("%w: %s needs %d bytes, %d of %d used",
			ErrCapacityExceeded, l.measurement, len(text)+1, b.buf.Len(), b.capacity)
	}

	b.buf.WriteString(text)
	b.buf.WriteByte('\n')
	b.count++
	return nil
}

// IsEmpty reports whether no line has been appended.
func (b *Batch) IsEmpty() bool {
	return b.count == 0
}

// Bytes returns the payload. The slice aliases the batch and is only valid
// until the next Append.
func (b *Batch) Bytes() []byte {
	return b.buf.Bytes()
}

// Len returns the payload size in bytes.
func (b *Batch) Len() int {
	return b.buf.Len()
}

// Count returns the number of lines in the batch.
func (b *Batch) Count() int {
	return b.count
}

// Capacity returns the byte bound the batch was created with.
func (b *Batch) Capacity() int {
	return b.capacity
}
