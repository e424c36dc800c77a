package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Meapy011/Boimebubble/internal/acquisition"
	"github.com/Meapy011/Boimebubble/internal/infrastructure/config"
	"github.com/Meapy011/Boimebubble/internal/infrastructure/i2c"
	"github.com/Meapy011/Boimebubble/internal/infrastructure/logging"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}
	return path
}

// TestRun_InvalidConfig verifies run fails with invalid config path.
func TestRun_InvalidConfig(t *testing.T) {
	t.Setenv("BOIMEBUBBLE_CONFIG", "/nonexistent/path/config.yaml")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := run(ctx); err == nil {
		t.Fatal("run() should fail with invalid config path")
	}
}

// TestRun_BusUnavailable verifies a missing bus aborts before the loop.
func TestRun_BusUnavailable(t *testing.T) {
	t.Setenv("BOIMEBUBBLE_CONFIG", writeConfig(t, `
bus:
  name: "no-such-i2c-bus"
acquisition:
  console: false
logging:
  level: error
`))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	err := run(ctx)
	if !errors.Is(err, acquisition.ErrBusUnavailable) {
		t.Fatalf("run() error = %v, want ErrBusUnavailable", err)
	}
	if !errors.Is(err, i2c.ErrBusOpen) {
		t.Errorf("run() error = %v, want it to wrap i2c.ErrBusOpen", err)
	}
}

// TestRun_StatusPortInUse verifies a status bind failure does not stop
// acquisition; run only fails later on the missing bus.
func TestRun_StatusPortInUse(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	defer ln.Close()
	port := ln.Addr().(*net.TCPAddr).Port

	t.Setenv("BOIMEBUBBLE_CONFIG", writeConfig(t, fmt.Sprintf(`
bus:
  name: "no-such-i2c-bus"
acquisition:
  console: false
status:
  enabled: true
  host: "127.0.0.1"
  port: %d
logging:
  level: error
`, port)))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := run(ctx); !errors.Is(err, acquisition.ErrBusUnavailable) {
		t.Fatalf("run() error = %v, want ErrBusUnavailable", err)
	}
}

func TestGetConfigPath(t *testing.T) {
	t.Setenv("BOIMEBUBBLE_CONFIG", "/etc/boimebubble/config.yaml")
	if got := getConfigPath(); got != "/etc/boimebubble/config.yaml" {
		t.Errorf("getConfigPath() = %q, want env value", got)
	}

	t.Setenv("BOIMEBUBBLE_CONFIG", "")
	// The test runs in cmd/boimebubble, where configs/config.yaml does not exist.
	if got := getConfigPath(); got != "" {
		t.Errorf("getConfigPath() = %q, want empty for built-in defaults", got)
	}
}

func TestBuildSensors_FixedOrder(t *testing.T) {
	cfg := config.Default()
	sensors := buildSensors(cfg.Sensors)(nil)

	want := []string{"sfa3x", "scd30", "sen44", "sen5x", "sen66"}
	if len(sensors) != len(want) {
		t.Fatalf("got %d sensors, want %d", len(sensors), len(want))
	}
	for i, s := range sensors {
		if s.Name() != want[i] {
			t.Errorf("sensor[%d] = %q, want %q", i, s.Name(), want[i])
		}
	}
}

func TestNewTransport(t *testing.T) {
	tests := []struct {
		transport string
		mutate    func(c *config.Config)
	}{
		{config.TransportInfluxDBV1, func(*config.Config) {}},
		{config.TransportInfluxDBV2, func(c *config.Config) { c.Ingest.InfluxDBV2.Bucket = "sensors" }},
		{config.TransportKafka, func(c *config.Config) { c.Ingest.Kafka.Brokers = []string{"127.0.0.1:9092"} }},
	}

	for _, tt := range tests {
		t.Run(tt.transport, func(t *testing.T) {
			cfg := config.Default()
			cfg.Ingest.Transport = tt.transport
			tt.mutate(cfg)

			tr, err := newTransport(cfg, nil)
			if err != nil {
				t.Fatalf("newTransport() error = %v", err)
			}
			defer tr.Close()

			if tr.Name() != tt.transport {
				t.Errorf("Name() = %q, want %q", tr.Name(), tt.transport)
			}
		})
	}
}

func TestNewTransport_Unknown(t *testing.T) {
	cfg := config.Default()
	cfg.Ingest.Transport = "carrier-pigeon"

	if _, err := newTransport(cfg, nil); err == nil {
		t.Error("newTransport() expected error for unknown transport")
	}
}

func TestNewTransport_MQTTBrokerDown(t *testing.T) {
	cfg := config.Default()
	cfg.Ingest.Transport = config.TransportMQTT
	cfg.Ingest.MQTT.Broker.Host = "127.0.0.1"
	cfg.Ingest.MQTT.Broker.Port = 1

	log := logging.NewWithWriter(config.LoggingConfig{Level: "error", Format: "text"}, "test", io.Discard)
	tr, err := newTransport(cfg, log)
	if err != nil {
		t.Fatalf("newTransport() error = %v, want a client that retries in background", err)
	}
	defer tr.Close()

	if tr.Name() != config.TransportMQTT {
		t.Errorf("Name() = %q, want %q", tr.Name(), config.TransportMQTT)
	}
	if err := tr.HealthCheck(context.Background()); err == nil {
		t.Error("HealthCheck() = nil with no broker")
	}
}
