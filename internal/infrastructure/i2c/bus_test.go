package i2c

import (
	"context"
	"errors"
	"testing"
	"time"

	"periph.io/x/conn/v3/physic"
)

type fakeBusCloser struct {
	txAddr uint16
	txW    []byte
	closed int
}

func (f *fakeBusCloser) String() string { return "fake-i2c" }

func (f *fakeBusCloser) Tx(addr uint16, w, r []byte) error {
	f.txAddr = addr
	f.txW = w
	for i := range r {
		r[i] = 0xAA
	}
	return nil
}

func (f *fakeBusCloser) SetSpeed(physic.Frequency) error { return nil }

func (f *fakeBusCloser) Close() error {
	f.closed++
	return nil
}

func TestBus_Tx(t *testing.T) {
	fake := &fakeBusCloser{}
	b := newBus(fake)

	r := make([]byte, 3)
	if err := b.Tx(0x5D, []byte{0x03, 0x27}, r); err != nil {
		t.Fatalf("Tx() error = %v", err)
	}
	if fake.txAddr != 0x5D {
		t.Errorf("Tx addr = %#x, want 0x5d", fake.txAddr)
	}
	if r[2] != 0xAA {
		t.Errorf("Tx read buffer not filled: %X", r)
	}
	if b.Name() != "fake-i2c" {
		t.Errorf("Name() = %q, want %q", b.Name(), "fake-i2c")
	}
}

func TestBus_CloseIdempotent(t *testing.T) {
	fake := &fakeBusCloser{}
	b := newBus(fake)

	if err := b.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if err := b.Close(); err != nil {
		t.Fatalf("second Close() error = %v", err)
	}
	if fake.closed != 1 {
		t.Errorf("underlying Close called %d times, want 1", fake.closed)
	}
	if err := b.Tx(0x61, []byte{0x01}, nil); !errors.Is(err, ErrClosed) {
		t.Errorf("Tx() after Close error = %v, want ErrClosed", err)
	}
}

func TestBus_Sleep(t *testing.T) {
	b := newBus(&fakeBusCloser{})

	start := time.Now()
	if err := b.Sleep(context.Background(), 20*time.Millisecond); err != nil {
		t.Fatalf("Sleep() error = %v", err)
	}
	if elapsed := time.Since(start); elapsed < 20*time.Millisecond {
		t.Errorf("Sleep() returned after %v, want at least 20ms", elapsed)
	}
}

func TestBus_SleepCancelled(t *testing.T) {
	b := newBus(&fakeBusCloser{})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	start := time.Now()
	err := b.Sleep(ctx, time.Minute)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Sleep() error = %v, want context.Canceled", err)
	}
	if time.Since(start) > time.Second {
		t.Error("Sleep() ignored cancellation")
	}
}
