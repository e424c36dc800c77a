// Package i2c provides the I2C bus transport for the sensor drivers.
//
// It wraps periph.io's host drivers and bus registry. The acquisition loop
// owns the single Bus for the life of the process; drivers only borrow it
// for Tx and Sleep.
//
// # Configuration
//
//	bus:
//	  name: ""          # "" = first bus found, or "/dev/i2c-1", "1", ...
//	  speed_khz: 0      # 0 = leave the kernel's clock setting alone
//
// # Usage
//
//	bus, err := i2c.Open(cfg.Bus)
//	if err != nil {
//	    return err // no bus, nothing to measure
//	}
//	defer bus.Close()
//
// Bus is not safe for concurrent use.
package i2c
