// Package acquisition runs the poll-format-dispatch cycle that drives the
// daemon.
//
// # Lifecycle
//
//	Initializing -> WarmingUp -> Running -> Draining -> Stopped
//
// Initializing opens the bus and brings up each sensor in a fixed order.
// A bus that cannot be opened ends Run with an error; a sensor that fails
// to come up is logged and polled anyway. WarmingUp counts down a fixed
// number of one-second ticks while the sensors stabilise. Running repeats
// the cycle until RequestStop is called. Draining stops every sensor.
//
// # The cycle
//
// Each cycle sleeps one interval, reads every sensor in order, formats the
// successful readings into one line-protocol batch and, if the batch is not
// empty, submits it exactly once. A failed read never affects the other
// sensors; a failed submit is logged and the payload discarded.
//
// # Shutdown
//
// RequestStop only clears a flag that is checked before each cycle, so the
// cycle in flight always finishes, including its submit. Operations inside
// the loop run on a context detached from Run's context for the same
// reason.
//
// # Usage
//
//	loop := acquisition.New(acquisition.Config{
//	    Interval:        time.Second,
//	    WarmupTicks:     10,
//	    PayloadCapacity: 1024,
//	}, acquisition.Deps{
//	    OpenBus:    openBus,
//	    Sensors:    buildSensors,
//	    Dispatcher: writer,
//	    Logger:     log,
//	})
//	go func() { <-ctx.Done(); loop.RequestStop() }()
//	err := loop.Run(ctx)
package acquisition
