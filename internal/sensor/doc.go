// Package sensor defines the capability every environmental sensor driver
// exposes to the acquisition loop, and the closed set of readings those
// drivers produce.
//
// # Readings
//
// A Reading is one of five concrete types, one per sensor kind:
//
//	Formaldehyde      formaldehyde-sensor       (SFA3x)
//	CarbonDioxide     co2-sensor                (SCD30)
//	ParticulateA      particulate-sensor-a      (SEN44)
//	ParticulateB      particulate-sensor-b      (SEN5x)
//	ParticulateCombo  particulate-combo-sensor  (SEN66)
//
// The set is closed: Reading carries an unexported marker method so only
// this package can add kinds. Consumers type-switch on the concrete value.
//
// # Lifecycle
//
// A Sensor is initialized and started once, read once per cycle, and
// stopped once on shutdown. A failed Read carries no partial data.
package sensor
