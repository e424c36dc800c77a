package acquisition

import (
	"context"
	"time"

	"github.com/Meapy011/Boimebubble/internal/sensor"
)

// Bus is the transport the loop owns. Sensors borrow it for Tx.
type Bus interface {
	Tx(addr uint16, w, r []byte) error
	Sleep(ctx context.Context, d time.Duration) error
	Close() error
}

// Dispatcher submits one cycle's payload to the time-series store.
//
// Submit blocks until the write completes or fails. It is called at most
// once per cycle and never with an empty payload.
type Dispatcher interface {
	Submit(ctx context.Context, payload []byte) error
}

// Observer receives progress events from the loop goroutine.
//
// Methods must return promptly. Embed NopObserver to implement a subset.
type Observer interface {
	StateChanged(s State)
	SensorInitialized(name string, err error)
	WarmupStarted(ticks int)
	WarmupTick(remaining int)
	CycleStarted(seq uint64, at time.Time)
	ReadingTaken(name string, r sensor.Reading)
	CycleFinished(report CycleReport)
}

// NopObserver implements Observer with no-ops.
type NopObserver struct{}

func (NopObserver) StateChanged(State)                  {}
func (NopObserver) SensorInitialized(string, error)     {}
func (NopObserver) WarmupStarted(int)                   {}
func (NopObserver) WarmupTick(int)                      {}
func (NopObserver) CycleStarted(uint64, time.Time)      {}
func (NopObserver) ReadingTaken(string, sensor.Reading) {}
func (NopObserver) CycleFinished(CycleReport)           {}

// Logger defines the logging interface for the loop.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// noopLogger is a logger that does nothing.
type noopLogger struct{}

func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}
