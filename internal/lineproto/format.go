package lineproto

import (
	"math"
	"strconv"
	"strings"

	"github.com/Meapy011/Boimebubble/internal/sensor"
)

// Field is one rendered key=value pair.
type Field struct {
	Key   string
	Value string
}

// Line is a single formatted record. The zero value is not useful; build
// lines with Format.
type Line struct {
	measurement string
	fields      []Field
}

// Measurement returns the line's measurement name.
func (l Line) Measurement() string {
	return l.measurement
}

// Fields returns a copy of the line's fields in wire order.
func (l Line) Fields() []Field {
	return append([]Field(nil), l.fields...)
}

// String renders the line without a trailing newline.
func (l Line) String() string {
	var b strings.Builder
	b.WriteString(escapeMeasurement(l.measurement))
	for i, f := range l.fields {
		if i == 0 {
			b.WriteByte(' ')
		} else {
			b.WriteByte(',')
		}
		b.WriteString(escapeKey(f.Key))
		b.WriteByte('=')
		b.WriteString(f.Value)
	}
	return b.String()
}

// Len is the rendered length in bytes, excluding the newline.
func (l Line) Len() int {
	return len(l.String())
}

// Format converts a reading into its line. Field names and order are fixed
// per sensor kind; the same reading always yields the same bytes.
func Format(r sensor.Reading) Line {
	l := Line{measurement: string(r.Kind())}

	switch v := r.(type) {
	case sensor.Formaldehyde:
		l.fields = []Field{
			floatField("hcho", v.HCHO),
			floatField("temperature", v.Temperature),
			floatField("humidity", v.Humidity),
		}
	case sensor.CarbonDioxide:
		l.fields = []Field{
			floatField("co2", v.CO2),
			floatField("temperature", v.Temperature),
			floatField("humidity", v.Humidity),
		}
	case sensor.ParticulateA:
		l.fields = []Field{
			floatField("pm1", float32(v.PM1)),
			floatField("pm2_5", float32(v.PM2_5)),
			floatField("pm4", float32(v.PM4)),
			floatField("pm10", float32(v.PM10)),
			floatField("voc", v.VOC),
			floatField("temperature", v.Temperature),
			floatField("humidity", v.Humidity),
		}
	case sensor.ParticulateB:
		l.fields = []Field{
			floatField("pm1", v.PM1),
			floatField("pm2_5", v.PM2_5),
			floatField("pm4", v.PM4),
			floatField("pm10", v.PM10),
			floatField("voc", v.VOC),
			floatField("nox", v.NOx),
			floatField("temperature", v.Temperature),
			floatField("humidity", v.Humidity),
		}
	case sensor.ParticulateCombo:
		l.fields = []Field{
			floatField("pm1", v.PM1),
			floatField("pm2_5", v.PM2_5),
			floatField("pm4", v.PM4),
			floatField("pm10", v.PM10),
			floatField("voc", v.VOC),
			floatField("nox", v.NOx),
			{Key: "co2", Value: strconv.FormatUint(uint64(v.CO2), 10)},
			floatField("temperature", v.Temperature),
			floatField("humidity", v.Humidity),
		}
	}

	return l
}

func floatField(key string, v float32) Field {
	return Field{Key: key, Value: FormatFloat(v)}
}

// FormatFloat renders v with two fixed decimals. Non-finite values become
// "nan", "inf" or "-inf".
func FormatFloat(v float32) string {
	f := float64(v)
	switch {
	case math.IsNaN(f):
		return "nan"
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	}
	return strconv.FormatFloat(f, 'f', 2, 64)
}

// escapeKey escapes special characters in field keys.
// Newlines are stripped to prevent line protocol injection.
func escapeKey(s string) string {
	s = strings.ReplaceAll(s, "\n", "")
	s = strings.ReplaceAll(s, "\r", "")
	s = strings.ReplaceAll(s, " ", "\\ ")
	s = strings.ReplaceAll(s, ",", "\\,")
	s = strings.ReplaceAll(s, "=", "\\=")
	return s
}

// escapeMeasurement escapes special characters in measurement names.
func escapeMeasurement(s string) string {
	s = strings.ReplaceAll(s, "\n", "")
	s = strings.ReplaceAll(s, "\r", "")
	s = strings.ReplaceAll(s, " ", "\\ ")
	s = strings.ReplaceAll(s, ",", "\\,")
	return s
}
