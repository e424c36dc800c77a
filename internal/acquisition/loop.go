package acquisition

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/Meapy011/Boimebubble/internal/lineproto"
	"github.com/Meapy011/Boimebubble/internal/sensor"
)

// warmupTick is the length of one warm-up countdown step.
const warmupTick = time.Second

// Config holds the loop's timing and sizing.
type Config struct {
	// Interval is the sleep at the start of every cycle.
	Interval time.Duration

	// WarmupTicks is the number of one-second countdown steps between
	// sensor start-up and the first cycle.
	WarmupTicks int

	// PayloadCapacity bounds one cycle's payload in bytes.
	PayloadCapacity int
}

// Deps holds the loop's collaborators.
type Deps struct {
	// OpenBus opens the transport. An error aborts Run.
	OpenBus func(ctx context.Context) (Bus, error)

	// Sensors builds the sensors on the open bus. Order is significant: it
	// is the order of initialisation, reads, payload lines and shutdown.
	Sensors func(bus Bus) []sensor.Sensor

	// Dispatcher receives each non-empty payload.
	Dispatcher Dispatcher

	// Observers are notified of progress. May be empty.
	Observers []Observer

	// Logger for diagnostics. May be nil.
	Logger Logger
}

// Loop runs the acquisition cycle.
//
// Thread Safety: Run must be called once, from one goroutine. RequestStop
// and State are safe to call from any goroutine.
type Loop struct {
	cfg        Config
	openBus    func(ctx context.Context) (Bus, error)
	buildSet   func(bus Bus) []sensor.Sensor
	dispatcher Dispatcher
	observers  []Observer
	logger     Logger

	running atomic.Bool
	started atomic.Bool
	state   atomic.Value // State
	seq     uint64

	now func() time.Time
}

// New creates a loop. The run flag starts set; RequestStop clears it.
func New(cfg Config, deps Deps) *Loop {
	if cfg.Interval <= 0 {
		cfg.Interval = time.Second
	}
	if cfg.WarmupTicks < 0 {
		cfg.WarmupTicks = 0
	}
	if cfg.PayloadCapacity <= 0 {
		cfg.PayloadCapacity = 1024
	}

	logger := deps.Logger
	if logger == nil {
		logger = noopLogger{}
	}

	l := &Loop{
		cfg:        cfg,
		openBus:    deps.OpenBus,
		buildSet:   deps.Sensors,
		dispatcher: deps.Dispatcher,
		observers:  deps.Observers,
		logger:     logger,
		now:        time.Now,
	}
	l.running.Store(true)
	l.state.Store(StateInitializing)
	return l
}

// RequestStop asks the loop to finish. The cycle in progress completes,
// including its submit, before the sensors are stopped.
func (l *Loop) RequestStop() {
	l.running.Store(false)
}

// State returns the current lifecycle phase.
func (l *Loop) State() State {
	return l.state.Load().(State)
}

// Run executes the full lifecycle and returns once the loop has stopped.
//
// Returns:
//   - error: ErrBusUnavailable if the bus cannot be opened,
//     ErrAlreadyRunning on a second call, nil after a clean shutdown
func (l *Loop) Run(ctx context.Context) error {
	if !l.started.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}

	// Shutdown is driven by RequestStop, never by cancellation, so a
	// signal cannot interrupt a cycle halfway through its submit.
	opCtx := context.WithoutCancel(ctx)

	l.setState(StateInitializing)
	bus, err := l.openBus(opCtx)
	if err != nil {
		l.setState(StateStopped)
		return fmt.Errorf("%w: %w", ErrBusUnavailable, err)
	}
	defer func() {
		if err := bus.Close(); err != nil {
			l.logger.Warn("error closing bus", "error", err)
		}
	}()

	sensors := l.buildSet(bus)
	l.initialize(opCtx, sensors)

	l.setState(StateWarmingUp)
	l.warmup(opCtx, bus)

	l.setState(StateRunning)
	for l.running.Load() {
		l.cycle(opCtx, bus, sensors)
	}

	l.setState(StateDraining)
	l.drain(opCtx, sensors)

	l.setState(StateStopped)
	return nil
}

// initialize brings up each sensor. Failures are logged and the sensor is
// still polled, since a device that missed its reset often recovers.
func (l *Loop) initialize(ctx context.Context, sensors []sensor.Sensor) {
	for _, s := range sensors {
		initErr := s.Init(ctx)
		if initErr != nil {
			l.logger.Warn("sensor init failed", "sensor", s.Name(), "error", initErr)
		}
		startErr := s.Start(ctx)
		if startErr != nil {
			l.logger.Warn("sensor start failed", "sensor", s.Name(), "error", startErr)
		}

		err := errors.Join(initErr, startErr)
		if err == nil {
			l.logger.Debug("sensor initialized", "sensor", s.Name(), "kind", s.Kind())
		}
		for _, o := range l.observers {
			o.SensorInitialized(s.Name(), err)
		}
	}
}

// warmup counts down before the first cycle. A stop request ends it early.
func (l *Loop) warmup(ctx context.Context, bus Bus) {
	for _, o := range l.observers {
		o.WarmupStarted(l.cfg.WarmupTicks)
	}
	for remaining := l.cfg.WarmupTicks; remaining > 0; remaining-- {
		if !l.running.Load() {
			l.logger.Info("stop requested during warm-up")
			return
		}
		for _, o := range l.observers {
			o.WarmupTick(remaining)
		}
		_ = bus.Sleep(ctx, warmupTick)
	}
}

// cycle performs one sleep-read-format-dispatch pass.
func (l *Loop) cycle(ctx context.Context, bus Bus, sensors []sensor.Sensor) {
	_ = bus.Sleep(ctx, l.cfg.Interval)

	l.seq++
	report := CycleReport{
		Seq:       l.seq,
		StartedAt: l.now(),
		Results:   make([]SensorResult, 0, len(sensors)),
	}
	for _, o := range l.observers {
		o.CycleStarted(report.Seq, report.StartedAt)
	}

	batch := lineproto.NewBatch(l.cfg.PayloadCapacity)
	for _, s := range sensors {
		res := SensorResult{Sensor: s.Name(), Kind: s.Kind()}

		r, err := s.Read(ctx)
		if err != nil {
			l.logger.Debug("sensor read failed", "sensor", s.Name(), "error", err)
			res.Err = err
			report.Results = append(report.Results, res)
			continue
		}
		res.Reading = r
		for _, o := range l.observers {
			o.ReadingTaken(s.Name(), r)
		}

		if err := batch.Append(lineproto.Format(r)); err != nil {
			l.logger.Warn("line dropped", "sensor", s.Name(), "error", err)
			res.Dropped = true
			report.Dropped++
		}
		report.Results = append(report.Results, res)
	}

	report.Lines = batch.Count()
	report.PayloadBytes = batch.Len()

	if !batch.IsEmpty() {
		report.Dispatched = true
		if err := l.dispatcher.Submit(ctx, batch.Bytes()); err != nil {
			report.DispatchErr = err
			l.logger.Error("ingestion write failed",
				"error", err,
				"lines", report.Lines,
				"bytes", report.PayloadBytes,
			)
		}
	}

	report.Duration = l.now().Sub(report.StartedAt)
	for _, o := range l.observers {
		o.CycleFinished(report)
	}
}

// drain stops every sensor in order, ignoring individual failures.
func (l *Loop) drain(ctx context.Context, sensors []sensor.Sensor) {
	for _, s := range sensors {
		if err := s.Stop(ctx); err != nil {
			l.logger.Warn("sensor stop failed", "sensor", s.Name(), "error", err)
		}
	}
}

func (l *Loop) setState(s State) {
	l.state.Store(s)
	for _, o := range l.observers {
		o.StateChanged(s)
	}
}
