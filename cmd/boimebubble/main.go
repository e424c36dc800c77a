// Boimebubble - multi-sensor air quality acquisition daemon
//
// This is the main entry point. The daemon polls five Sensirion sensors on
// one I2C bus once per interval, prints a readout to stdout and submits each
// cycle as an InfluxDB line-protocol payload to the configured transport.
//
// Configuration is optional: with no file the daemon runs on the built-in
// defaults. Set BOIMEBUBBLE_CONFIG to point at a YAML file.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"

	"github.com/Meapy011/Boimebubble/internal/acquisition"
	"github.com/Meapy011/Boimebubble/internal/console"
	"github.com/Meapy011/Boimebubble/internal/infrastructure/config"
	"github.com/Meapy011/Boimebubble/internal/infrastructure/i2c"
	"github.com/Meapy011/Boimebubble/internal/infrastructure/influxdb"
	"github.com/Meapy011/Boimebubble/internal/infrastructure/kafka"
	"github.com/Meapy011/Boimebubble/internal/infrastructure/logging"
	"github.com/Meapy011/Boimebubble/internal/infrastructure/mqtt"
	"github.com/Meapy011/Boimebubble/internal/infrastructure/tsdb"
	"github.com/Meapy011/Boimebubble/internal/metrics"
	"github.com/Meapy011/Boimebubble/internal/sensor"
	"github.com/Meapy011/Boimebubble/internal/sensor/sensirion"
	"github.com/Meapy011/Boimebubble/internal/status"
)

// Version information - set at build time via ldflags
// Example: go build -ldflags "-X main.version=1.0.0 -X main.commit=abc123"
var (
	version = "dev"     // Semantic version (e.g., "1.0.0")
	commit  = "unknown" // Git commit hash
	date    = "unknown" // Build date
)

// Default configuration file path, used only when it exists.
const defaultConfigPath = "configs/config.yaml"

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// transport is what every ingest client offers.
type transport interface {
	acquisition.Dispatcher
	status.HealthChecker
	Close() error
}

// run is the actual application logic, separated from main for testability.
//
// Parameters:
//   - ctx: Cancelled on SIGINT/SIGTERM; cancellation requests a stop after
//     the current cycle
//
// Returns:
//   - error: nil on clean shutdown, or error describing failure
func run(ctx context.Context) error {
	log := logging.Default()

	configPath := getConfigPath()
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	log = logging.New(cfg.Logging, version).With("run_id", uuid.NewString())
	log.Info("starting boimebubble",
		"version", version,
		"commit", commit,
		"build_date", date,
		"device", cfg.Device.Name,
		"config", configPathLabel(configPath),
	)

	ingest, err := newTransport(cfg, log)
	if err != nil {
		return fmt.Errorf("creating %s transport: %w", cfg.Ingest.Transport, err)
	}
	defer func() {
		if closeErr := ingest.Close(); closeErr != nil {
			log.Error("error closing transport", "transport", ingest.Name(), "error", closeErr)
		}
	}()
	log.Info("ingest transport ready", "transport", ingest.Name())

	observers := []acquisition.Observer{metrics.NewObserver()}
	if cfg.Acquisition.Console {
		observers = append(observers, console.New(os.Stdout))
	}

	if cfg.Status.Enabled {
		srv, srvErr := status.New(status.Deps{
			Config:  cfg.Status,
			Logger:  log.With("component", "status"),
			Ingest:  ingest,
			Version: version,
		})
		if srvErr != nil {
			return fmt.Errorf("creating status server: %w", srvErr)
		}
		// Acquisition does not depend on the status surface.
		if startErr := srv.Start(ctx); startErr != nil {
			log.Warn("status server disabled", "error", startErr)
		} else {
			defer func() {
				if closeErr := srv.Close(); closeErr != nil {
					log.Error("error closing status server", "error", closeErr)
				}
			}()
			observers = append(observers, srv)
		}
	}

	loop := acquisition.New(
		acquisition.Config{
			Interval:        cfg.Acquisition.Interval,
			WarmupTicks:     cfg.Acquisition.WarmupTicks,
			PayloadCapacity: cfg.Acquisition.PayloadCapacity,
		},
		acquisition.Deps{
			OpenBus:    openBus(cfg.Bus),
			Sensors:    buildSensors(cfg.Sensors),
			Dispatcher: ingest,
			Observers:  observers,
			Logger:     log.With("component", "acquisition"),
		},
	)

	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			log.Info("shutdown requested, finishing current cycle")
			loop.RequestStop()
		case <-done:
		}
	}()

	if err := loop.Run(ctx); err != nil {
		return fmt.Errorf("acquisition: %w", err)
	}

	log.Info("boimebubble stopped")
	return nil
}

// getConfigPath returns the configuration file path.
// BOIMEBUBBLE_CONFIG wins; otherwise the default path is used if the file
// exists, and "" (built-in defaults) if it does not.
func getConfigPath() string {
	if path := os.Getenv("BOIMEBUBBLE_CONFIG"); path != "" {
		return path
	}
	if _, err := os.Stat(defaultConfigPath); err == nil {
		return defaultConfigPath
	}
	return ""
}

func configPathLabel(path string) string {
	if path == "" {
		return "built-in defaults"
	}
	return path
}

// openBus adapts i2c.Open to the loop's OpenBus hook.
func openBus(cfg config.BusConfig) func(context.Context) (acquisition.Bus, error) {
	return func(context.Context) (acquisition.Bus, error) {
		bus, err := i2c.Open(cfg)
		if err != nil {
			return nil, err
		}
		return bus, nil
	}
}

// buildSensors returns the fixed sensor set in polling order.
func buildSensors(cfg config.SensorsConfig) func(acquisition.Bus) []sensor.Sensor {
	return func(bus acquisition.Bus) []sensor.Sensor {
		return []sensor.Sensor{
			sensirion.NewSFA3x(bus, cfg.SFA3x.Address),
			sensirion.NewSCD30(bus, cfg.SCD30.Address, cfg.SCD30.AmbientPressure, cfg.SCD30.ReadyTimeout),
			sensirion.NewSEN44(bus, cfg.SEN44.Address),
			sensirion.NewSEN5x(bus, cfg.SEN5x.Address, cfg.SEN5x.TemperatureOffset),
			sensirion.NewSEN66(bus, cfg.SEN66.Address),
		}
	}
}

// newTransport builds the client selected by ingest.transport.
func newTransport(cfg *config.Config, log *logging.Logger) (transport, error) {
	switch cfg.Ingest.Transport {
	case config.TransportInfluxDBV1:
		return tsdb.New(cfg.Ingest.InfluxDBV1), nil
	case config.TransportInfluxDBV2:
		return influxdb.New(cfg.Ingest.InfluxDBV2), nil
	case config.TransportMQTT:
		client, err := mqtt.Connect(cfg.Ingest.MQTT, log.With("component", "mqtt"))
		if err != nil {
			return nil, err
		}
		return client, nil
	case config.TransportKafka:
		return kafka.New(cfg.Ingest.Kafka, cfg.Device.Name), nil
	}
	return nil, errors.New("unknown transport " + cfg.Ingest.Transport)
}
