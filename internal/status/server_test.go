package status

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/Meapy011/Boimebubble/internal/acquisition"
	"github.com/Meapy011/Boimebubble/internal/infrastructure/config"
	"github.com/Meapy011/Boimebubble/internal/infrastructure/logging"
	"github.com/Meapy011/Boimebubble/internal/sensor"
)

type fakeIngest struct {
	err error
}

func (f fakeIngest) Name() string                        { return "fake" }
func (f fakeIngest) HealthCheck(_ context.Context) error { return f.err }

func testLogger() *logging.Logger {
	return logging.NewWithWriter(config.LoggingConfig{Level: "error", Format: "text"}, "test", io.Discard)
}

// testServer creates a Server without a listener; requests go through the router.
func testServer(t *testing.T, ingest HealthChecker) *Server {
	t.Helper()

	srv, err := New(Deps{
		Config:  config.StatusConfig{Enabled: true, Host: "127.0.0.1", Port: 0},
		Logger:  testLogger(),
		Ingest:  ingest,
		Version: "test",
	})
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	return srv
}

func get(t *testing.T, h http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func sampleReport() acquisition.CycleReport {
	return acquisition.CycleReport{
		Seq:       7,
		StartedAt: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
		Duration:  1500 * time.Millisecond,
		Results: []acquisition.SensorResult{
			{
				Sensor:  "scd30",
				Kind:    sensor.KindCarbonDioxide,
				Reading: sensor.CarbonDioxide{CO2: 415.2, Temperature: 21.3, Humidity: float32(math.NaN())},
			},
			{
				Sensor: "sfa3x",
				Kind:   sensor.KindFormaldehyde,
				Err:    errors.New("crc mismatch"),
			},
		},
		Lines:        1,
		PayloadBytes: 56,
		Dispatched:   true,
	}
}

func TestNew_RequiresLogger(t *testing.T) {
	if _, err := New(Deps{}); err == nil {
		t.Error("New() without logger: expected error")
	}
}

func TestHealth_NoIngest(t *testing.T) {
	srv := testServer(t, nil)
	rec := get(t, srv.buildRouter(), "/api/v1/health")

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body["status"] != "ok" {
		t.Errorf("status = %v, want ok", body["status"])
	}
	if body["state"] != string(acquisition.StateInitializing) {
		t.Errorf("state = %v, want %s", body["state"], acquisition.StateInitializing)
	}
	if _, ok := body["ingest"]; ok {
		t.Error("ingest section present without a transport")
	}
}

func TestHealth_IngestDegraded(t *testing.T) {
	srv := testServer(t, fakeIngest{err: errors.New("connection refused")})
	srv.StateChanged(acquisition.StateRunning)

	rec := get(t, srv.buildRouter(), "/api/v1/health")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var body struct {
		Status string `json:"status"`
		State  string `json:"state"`
		Ingest struct {
			Transport string `json:"transport"`
			Healthy   bool   `json:"healthy"`
			Error     string `json:"error"`
		} `json:"ingest"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Status != "degraded" {
		t.Errorf("status = %q, want degraded", body.Status)
	}
	if body.State != string(acquisition.StateRunning) {
		t.Errorf("state = %q, want running", body.State)
	}
	if body.Ingest.Transport != "fake" || body.Ingest.Healthy {
		t.Errorf("ingest = %+v, want unhealthy fake", body.Ingest)
	}
	if !strings.Contains(body.Ingest.Error, "connection refused") {
		t.Errorf("ingest.error = %q", body.Ingest.Error)
	}
}

func TestLatest(t *testing.T) {
	srv := testServer(t, nil)
	router := srv.buildRouter()

	if rec := get(t, router, "/api/v1/latest"); rec.Code != http.StatusNotFound {
		t.Fatalf("before first cycle: status = %d, want 404", rec.Code)
	}

	srv.CycleFinished(sampleReport())

	rec := get(t, router, "/api/v1/latest")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var view CycleView
	if err := json.Unmarshal(rec.Body.Bytes(), &view); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if view.Seq != 7 || view.DurationMS != 1500 || !view.Dispatched {
		t.Errorf("view = %+v", view)
	}
	if len(view.Sensors) != 2 {
		t.Fatalf("sensors = %d, want 2", len(view.Sensors))
	}

	co2 := view.Sensors[0]
	if co2.Measurement != "co2-sensor" || !co2.OK {
		t.Errorf("co2 sensor view = %+v", co2)
	}
	if co2.Fields["co2"] == nil || *co2.Fields["co2"] != 415.2 {
		t.Errorf("co2 field = %v, want 415.2", co2.Fields["co2"])
	}
	if co2.Fields["humidity"] != nil {
		t.Errorf("NaN humidity = %v, want null", *co2.Fields["humidity"])
	}
	if co2.Line != "co2-sensor co2=415.20,temperature=21.30,humidity=nan" {
		t.Errorf("line = %q", co2.Line)
	}

	sfa := view.Sensors[1]
	if sfa.OK || sfa.Error != "crc mismatch" || sfa.Fields != nil {
		t.Errorf("failed sensor view = %+v", sfa)
	}
}

func TestRequestIDHeader(t *testing.T) {
	srv := testServer(t, nil)
	router := srv.buildRouter()

	rec := get(t, router, "/api/v1/health")
	if rec.Header().Get("X-Request-ID") == "" {
		t.Error("X-Request-ID not generated")
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/health", nil)
	req.Header.Set("X-Request-ID", "abc123")
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if got := rec.Header().Get("X-Request-ID"); got != "abc123" {
		t.Errorf("X-Request-ID = %q, want abc123", got)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	srv := testServer(t, nil)
	rec := get(t, srv.buildRouter(), "/metrics")

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "go_goroutines") {
		t.Error("/metrics does not expose the default registry")
	}
}

func TestRecoveryMiddleware(t *testing.T) {
	srv := testServer(t, nil)
	h := srv.recoveryMiddleware(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))

	rec := get(t, h, "/")
	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", rec.Code)
	}
}

func TestStartClose(t *testing.T) {
	srv := testServer(t, nil)

	if err := srv.Start(context.Background()); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	if srv.Addr() == "" {
		t.Fatal("Addr() empty after Start")
	}

	resp, err := http.Get(fmt.Sprintf("http://%s/api/v1/health", srv.Addr()))
	if err != nil {
		t.Fatalf("GET health: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want 200", resp.StatusCode)
	}

	if err := srv.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}
}

func TestCloseWithoutStart(t *testing.T) {
	srv := testServer(t, nil)
	if err := srv.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}
}

func TestWebSocket_StreamsCycles(t *testing.T) {
	srv := testServer(t, nil)
	ts := httptest.NewServer(srv.buildRouter())
	defer ts.Close()

	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/api/v1/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	deadline := time.Now().Add(2 * time.Second)
	for srv.hub.ClientCount() == 0 {
		if time.Now().After(deadline) {
			t.Fatal("client never registered")
		}
		time.Sleep(10 * time.Millisecond)
	}

	srv.CycleFinished(sampleReport())

	//nolint:errcheck // test deadline
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var msg struct {
		Type      string    `json:"type"`
		EventType string    `json:"event_type"`
		Payload   CycleView `json:"payload"`
	}
	if err := conn.ReadJSON(&msg); err != nil {
		t.Fatalf("read: %v", err)
	}
	if msg.Type != WSTypeEvent || msg.EventType != ChannelCycle {
		t.Errorf("message = %s/%s, want event/cycle", msg.Type, msg.EventType)
	}
	if msg.Payload.Seq != 7 {
		t.Errorf("payload seq = %d, want 7", msg.Payload.Seq)
	}
}

func TestWebSocket_Unsubscribe(t *testing.T) {
	srv := testServer(t, nil)
	ts := httptest.NewServer(srv.buildRouter())
	defer ts.Close()

	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/api/v1/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	err = conn.WriteJSON(WSMessage{
		Type:    WSTypeUnsubscribe,
		ID:      "1",
		Payload: WSSubscribePayload{Channels: []string{ChannelState}},
	})
	if err != nil {
		t.Fatalf("write: %v", err)
	}

	//nolint:errcheck // test deadline
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var ack WSMessage
	if err := conn.ReadJSON(&ack); err != nil {
		t.Fatalf("read ack: %v", err)
	}
	if ack.Type != WSTypeResponse || ack.ID != "1" {
		t.Fatalf("ack = %+v", ack)
	}

	// The state event is filtered; the cycle event is the next thing read.
	srv.StateChanged(acquisition.StateRunning)
	srv.CycleFinished(sampleReport())

	var next WSMessage
	if err := conn.ReadJSON(&next); err != nil {
		t.Fatalf("read: %v", err)
	}
	if next.EventType != ChannelCycle {
		t.Errorf("event_type = %q, want %q", next.EventType, ChannelCycle)
	}
}

func TestStatusWriter_Hijack(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		var rw http.ResponseWriter = sw
		hj, ok := rw.(http.Hijacker)
		if !ok {
			t.Error("statusWriter does not implement http.Hijacker")
			return
		}
		conn, buf, err := hj.Hijack()
		if err != nil {
			t.Errorf("Hijack() error: %v", err)
			return
		}
		defer conn.Close()
		//nolint:errcheck // test response
		buf.WriteString("HTTP/1.1 200 OK\r\nContent-Length: 2\r\nConnection: close\r\n\r\nok")
		//nolint:errcheck // test response
		buf.Flush()
	}))
	defer ts.Close()

	resp, err := http.Get(ts.URL)
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	if string(body) != "ok" {
		t.Errorf("body = %q, want ok", body)
	}
}
