package sensirion

// Commands shared by several devices.
const (
	cmdDeviceReset     uint16 = 0xD304
	cmdStopMeasurement uint16 = 0x0104
	cmdDataReady       uint16 = 0x0202
)
