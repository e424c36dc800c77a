package acquisition

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/Meapy011/Boimebubble/internal/sensor"
)

var errFake = errors.New("fake failure")

// eventLog records calls across fakes so tests can check ordering.
type eventLog struct {
	mu     sync.Mutex
	events []string
}

func (e *eventLog) add(format string, args ...any) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.events = append(e.events, fmt.Sprintf(format, args...))
}

func (e *eventLog) all() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]string(nil), e.events...)
}

type fakeBus struct {
	log    *eventLog
	sleeps []time.Duration
	closed bool
}

func (b *fakeBus) Tx(uint16, []byte, []byte) error { return nil }

func (b *fakeBus) Sleep(_ context.Context, d time.Duration) error {
	b.sleeps = append(b.sleeps, d)
	return nil
}

func (b *fakeBus) Close() error {
	b.closed = true
	b.log.add("bus.Close")
	return nil
}

type fakeSensor struct {
	name    string
	kind    sensor.Kind
	reading sensor.Reading
	log     *eventLog

	failInit bool
	failRead bool
	failStop bool
	onRead   func()
	reads    int
}

func (s *fakeSensor) Name() string      { return s.name }
func (s *fakeSensor) Kind() sensor.Kind { return s.kind }

func (s *fakeSensor) Init(context.Context) error {
	s.log.add("%s.Init", s.name)
	if s.failInit {
		return errFake
	}
	return nil
}

func (s *fakeSensor) Start(context.Context) error {
	s.log.add("%s.Start", s.name)
	return nil
}

func (s *fakeSensor) Read(context.Context) (sensor.Reading, error) {
	s.reads++
	s.log.add("%s.Read", s.name)
	if s.onRead != nil {
		s.onRead()
	}
	if s.failRead {
		return nil, errFake
	}
	return s.reading, nil
}

func (s *fakeSensor) Stop(context.Context) error {
	s.log.add("%s.Stop", s.name)
	if s.failStop {
		return errFake
	}
	return nil
}

// fiveSensors returns one fake per sensor kind in bus order.
func fiveSensors(log *eventLog) []*fakeSensor {
	return []*fakeSensor{
		{name: "sfa3x", kind: sensor.KindFormaldehyde, log: log,
			reading: sensor.Formaldehyde{HCHO: 12.34, Temperature: 21.5, Humidity: 40.2}},
		{name: "scd30", kind: sensor.KindCarbonDioxide, log: log,
			reading: sensor.CarbonDioxide{CO2: 415.5, Temperature: 22.25, Humidity: 38.75}},
		{name: "sen44", kind: sensor.KindParticulateA, log: log,
			reading: sensor.ParticulateA{PM1: 3, PM2_5: 5, PM4: 6, PM10: 7, VOC: 100.5, Humidity: 45.5, Temperature: 22}},
		{name: "sen5x", kind: sensor.KindParticulateB, log: log,
			reading: sensor.ParticulateB{PM1: 1.2, PM2_5: 2.5, PM4: 3.1, PM10: 4, VOC: 100, NOx: 1, Humidity: 45.5, Temperature: 22}},
		{name: "sen66", kind: sensor.KindParticulateCombo, log: log,
			reading: sensor.ParticulateCombo{PM1: 1.2, PM2_5: 2.5, PM4: 3.1, PM10: 4, VOC: 100, NOx: 1, Humidity: 45.5, Temperature: 22, CO2: 612}},
	}
}

var fiveLines = []string{
	"formaldehyde-sensor hcho=12.34,temperature=21.50,humidity=40.20",
	"co2-sensor co2=415.50,temperature=22.25,humidity=38.75",
	"particulate-sensor-a pm1=3.00,pm2_5=5.00,pm4=6.00,pm10=7.00,voc=100.50,temperature=22.00,humidity=45.50",
	"particulate-sensor-b pm1=1.20,pm2_5=2.50,pm4=3.10,pm10=4.00,voc=100.00,nox=1.00,temperature=22.00,humidity=45.50",
	"particulate-combo-sensor pm1=1.20,pm2_5=2.50,pm4=3.10,pm10=4.00,voc=100.00,nox=1.00,co2=612,temperature=22.00,humidity=45.50",
}

type fakeDispatcher struct {
	log      *eventLog
	payloads []string
	err      error
}

func (d *fakeDispatcher) Submit(_ context.Context, payload []byte) error {
	d.payloads = append(d.payloads, string(payload))
	if d.log != nil {
		d.log.add("dispatch")
	}
	return d.err
}

// recorder captures observer events. stopAfter > 0 calls stop once that
// many cycles have finished.
type recorder struct {
	NopObserver
	states    []State
	inits     map[string]error
	ticks     []int
	warmup    int
	reports   []CycleReport
	readings  []string
	stopAfter int
	stop      func()
}

func (r *recorder) StateChanged(s State) { r.states = append(r.states, s) }

func (r *recorder) SensorInitialized(name string, err error) {
	if r.inits == nil {
		r.inits = make(map[string]error)
	}
	r.inits[name] = err
}

func (r *recorder) WarmupStarted(ticks int) { r.warmup = ticks }
func (r *recorder) WarmupTick(n int)        { r.ticks = append(r.ticks, n) }

func (r *recorder) ReadingTaken(name string, _ sensor.Reading) {
	r.readings = append(r.readings, name)
}

func (r *recorder) CycleFinished(report CycleReport) {
	r.reports = append(r.reports, report)
	if r.stopAfter > 0 && len(r.reports) >= r.stopAfter && r.stop != nil {
		r.stop()
	}
}

type harness struct {
	log        *eventLog
	bus        *fakeBus
	sensors    []*fakeSensor
	dispatcher *fakeDispatcher
	rec        *recorder
	loop       *Loop
}

func newHarness(cfg Config, cycles int) *harness {
	log := &eventLog{}
	h := &harness{
		log:        log,
		bus:        &fakeBus{log: log},
		sensors:    fiveSensors(log),
		dispatcher: &fakeDispatcher{log: log},
		rec:        &recorder{stopAfter: cycles},
	}
	h.loop = New(cfg, Deps{
		OpenBus: func(context.Context) (Bus, error) { return h.bus, nil },
		Sensors: func(Bus) []sensor.Sensor {
			out := make([]sensor.Sensor, len(h.sensors))
			for i, s := range h.sensors {
				out[i] = s
			}
			return out
		},
		Dispatcher: h.dispatcher,
		Observers:  []Observer{h.rec},
	})
	h.rec.stop = h.loop.RequestStop
	return h
}

func defaultConfig() Config {
	return Config{Interval: time.Second, WarmupTicks: 10, PayloadCapacity: 1024}
}
