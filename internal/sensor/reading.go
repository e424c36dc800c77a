package sensor

// Kind names a sensor kind. It doubles as the measurement name written to
// the time-series store, so the values must never change.
type Kind string

// Sensor kinds.
const (
	KindFormaldehyde     Kind = "formaldehyde-sensor"
	KindCarbonDioxide    Kind = "co2-sensor"
	KindParticulateA     Kind = "particulate-sensor-a"
	KindParticulateB     Kind = "particulate-sensor-b"
	KindParticulateCombo Kind = "particulate-combo-sensor"
)

// Reading is a single successful measurement from one sensor.
//
// Implementations: Formaldehyde, CarbonDioxide, ParticulateA, ParticulateB,
// ParticulateCombo.
type Reading interface {
	Kind() Kind
	isReading()
}

// Formaldehyde is a reading from the SFA3x formaldehyde sensor.
type Formaldehyde struct {
	HCHO        float32 `json:"hcho"`        // ppb
	Humidity    float32 `json:"humidity"`    // %RH
	Temperature float32 `json:"temperature"` // °C
}

// CarbonDioxide is a reading from the SCD30 CO2 sensor.
type CarbonDioxide struct {
	CO2         float32 `json:"co2"`         // ppm
	Temperature float32 `json:"temperature"` // °C
	Humidity    float32 `json:"humidity"`    // %RH
}

// ParticulateA is a reading from the SEN44 environmental node.
//
// Mass concentrations are whole µg/m³ as reported by the device.
type ParticulateA struct {
	PM1         uint16  `json:"pm1"`
	PM2_5       uint16  `json:"pm2_5"`
	PM4         uint16  `json:"pm4"`
	PM10        uint16  `json:"pm10"`
	VOC         float32 `json:"voc"`
	Humidity    float32 `json:"humidity"`
	Temperature float32 `json:"temperature"`
}

// ParticulateB is a reading from the SEN5x environmental node.
//
// Values the device marks as unavailable are NaN.
type ParticulateB struct {
	PM1         float32 `json:"pm1"`
	PM2_5       float32 `json:"pm2_5"`
	PM4         float32 `json:"pm4"`
	PM10        float32 `json:"pm10"`
	VOC         float32 `json:"voc"`
	NOx         float32 `json:"nox"`
	Humidity    float32 `json:"humidity"`
	Temperature float32 `json:"temperature"`
}

// ParticulateCombo is a reading from the SEN66 node, which adds CO2 to the
// particulate and gas channels.
type ParticulateCombo struct {
	PM1         float32 `json:"pm1"`
	PM2_5       float32 `json:"pm2_5"`
	PM4         float32 `json:"pm4"`
	PM10        float32 `json:"pm10"`
	VOC         float32 `json:"voc"`
	NOx         float32 `json:"nox"`
	Humidity    float32 `json:"humidity"`
	Temperature float32 `json:"temperature"`
	CO2         uint16  `json:"co2"` // ppm
}

func (Formaldehyde) Kind() Kind     { return KindFormaldehyde }
func (CarbonDioxide) Kind() Kind    { return KindCarbonDioxide }
func (ParticulateA) Kind() Kind     { return KindParticulateA }
func (ParticulateB) Kind() Kind     { return KindParticulateB }
func (ParticulateCombo) Kind() Kind { return KindParticulateCombo }

func (Formaldehyde) isReading()     {}
func (CarbonDioxide) isReading()    {}
func (ParticulateA) isReading()     {}
func (ParticulateB) isReading()     {}
func (ParticulateCombo) isReading() {}
