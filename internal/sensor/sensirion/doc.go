// Package sensirion implements drivers for the Sensirion sensors on the
// acquisition bus: SFA3x, SCD30, SEN44, SEN5x and SEN66.
//
// # Framing
//
// All five devices share the same I2C framing. A command is a big-endian
// 16-bit word. Arguments and responses are big-endian 16-bit words, each
// followed by a CRC-8 byte (polynomial 0x31, init 0xFF). Responses are
// fetched with a separate read transaction after a command-specific delay.
//
// # Usage
//
//	bus, _ := i2c.Open(ctx, "")
//	sfa := sensirion.NewSFA3x(bus, 0x5D)
//	if err := sfa.Init(ctx); err != nil {
//	    log.Warn("sfa3x init failed", "error", err)
//	}
//	_ = sfa.Start(ctx)
//	r, err := sfa.Read(ctx)
//
// Drivers are not safe for concurrent use. The acquisition loop owns the bus
// and calls them from one goroutine.
package sensirion
