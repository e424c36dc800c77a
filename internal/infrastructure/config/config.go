package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Transport names accepted by ingest.transport.
const (
	TransportInfluxDBV1 = "influxdb-v1"
	TransportInfluxDBV2 = "influxdb-v2"
	TransportMQTT       = "mqtt"
	TransportKafka      = "kafka"
)

// Config is the root configuration structure for the acquisition daemon.
// Every field has a default, so the daemon runs without any file at all.
type Config struct {
	Device      DeviceConfig      `yaml:"device"`
	Bus         BusConfig         `yaml:"bus"`
	Sensors     SensorsConfig     `yaml:"sensors"`
	Acquisition AcquisitionConfig `yaml:"acquisition"`
	Ingest      IngestConfig      `yaml:"ingest"`
	Logging     LoggingConfig     `yaml:"logging"`
	Status      StatusConfig      `yaml:"status"`
}

// DeviceConfig identifies this installation in logs and broker client IDs.
type DeviceConfig struct {
	Name string `yaml:"name"`
}

// BusConfig selects the I2C bus the sensors hang off.
type BusConfig struct {
	// Name is passed to periph's i2creg.Open. Empty selects the first bus found.
	Name string `yaml:"name"`

	// SpeedKHz sets the bus clock. Zero keeps the driver's current speed.
	SpeedKHz int `yaml:"speed_khz"`
}

// SensorsConfig holds per-sensor wiring. There is no way to switch a
// sensor off: all five are always polled.
type SensorsConfig struct {
	SFA3x SensorAddressConfig `yaml:"sfa3x"`
	SCD30 SCD30Config         `yaml:"scd30"`
	SEN44 SensorAddressConfig `yaml:"sen44"`
	SEN5x SEN5xConfig         `yaml:"sen5x"`
	SEN66 SensorAddressConfig `yaml:"sen66"`
}

// SensorAddressConfig is the 7-bit I2C address of a sensor.
type SensorAddressConfig struct {
	Address uint16 `yaml:"address"`
}

// SCD30Config contains SCD30 CO2 sensor settings.
type SCD30Config struct {
	Address uint16 `yaml:"address"`
	// AmbientPressure in mbar for pressure compensation; 0 disables it.
	AmbientPressure uint16 `yaml:"ambient_pressure"`
	// ReadyTimeout bounds the data-ready poll of a single read.
	ReadyTimeout time.Duration `yaml:"ready_timeout"`
}

// SEN5xConfig contains SEN5x particulate sensor settings.
type SEN5xConfig struct {
	Address           uint16  `yaml:"address"`
	TemperatureOffset float32 `yaml:"temperature_offset"`
}

// AcquisitionConfig controls the polling cadence.
type AcquisitionConfig struct {
	Interval        time.Duration `yaml:"interval"`
	WarmupTicks     int           `yaml:"warmup_ticks"`
	PayloadCapacity int           `yaml:"payload_capacity"`
	// Console enables the human-readable readout on stdout.
	Console bool `yaml:"console"`
}

// IngestConfig selects and configures the ingestion transport.
type IngestConfig struct {
	Transport  string           `yaml:"transport"`
	InfluxDBV1 InfluxDBV1Config `yaml:"influxdb_v1"`
	InfluxDBV2 InfluxDBV2Config `yaml:"influxdb_v2"`
	MQTT       MQTTConfig       `yaml:"mqtt"`
	Kafka      KafkaConfig      `yaml:"kafka"`
}

// InfluxDBV1Config contains InfluxDB 1.x /write endpoint settings.
type InfluxDBV1Config struct {
	URL      string        `yaml:"url"`
	Database string        `yaml:"database"`
	Timeout  time.Duration `yaml:"timeout"`
}

// InfluxDBV2Config contains InfluxDB 2.x connection settings.
type InfluxDBV2Config struct {
	URL     string        `yaml:"url"`
	Token   string        `yaml:"token"`
	Org     string        `yaml:"org"`
	Bucket  string        `yaml:"bucket"`
	Timeout time.Duration `yaml:"timeout"`
}

// MQTTConfig contains MQTT broker connection settings.
type MQTTConfig struct {
	Broker    MQTTBrokerConfig    `yaml:"broker"`
	Auth      MQTTAuthConfig      `yaml:"auth"`
	QoS       int                 `yaml:"qos"`
	Reconnect MQTTReconnectConfig `yaml:"reconnect"`

	// TopicPrefix roots the telemetry and status topics
	// (<prefix>/telemetry, <prefix>/status).
	TopicPrefix string `yaml:"topic_prefix"`
}

// MQTTBrokerConfig contains MQTT broker connection details.
type MQTTBrokerConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	TLS      bool   `yaml:"tls"`
	ClientID string `yaml:"client_id"`
}

// MQTTAuthConfig contains MQTT authentication credentials.
type MQTTAuthConfig struct {
	Username string `yaml:"username"`
	Password string `yaml:"password"`
}

// MQTTReconnectConfig contains MQTT reconnection settings.
type MQTTReconnectConfig struct {
	InitialDelay int `yaml:"initial_delay"`
	MaxDelay     int `yaml:"max_delay"`
}

// KafkaConfig contains Kafka producer settings.
type KafkaConfig struct {
	Brokers []string      `yaml:"brokers"`
	Topic   string        `yaml:"topic"`
	Timeout time.Duration `yaml:"timeout"`
}

// LoggingConfig contains logging settings.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	Output string `yaml:"output"`
}

// StatusConfig contains the read-only status server settings.
type StatusConfig struct {
	Enabled bool   `yaml:"enabled"`
	Host    string `yaml:"host"`
	Port    int    `yaml:"port"`
}

// Load builds the configuration.
//
// The loading order is:
//  1. Default values (hardcoded)
//  2. YAML file values, when path is not empty
//  3. A .env file in the working directory, if present
//  4. Environment variables (override file values)
//
// Environment variables follow the pattern: BOIMEBUBBLE_SECTION_KEY
// For example: BOIMEBUBBLE_INFLUXDB_URL, BOIMEBUBBLE_LOG_LEVEL
//
// Parameters:
//   - path: Path to the YAML configuration file, or "" for defaults only
//
// Returns:
//   - *Config: Loaded and validated configuration
//   - error: If the file cannot be read, parsed, or validation fails
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}

		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	// A missing .env is the normal case on a deployed device.
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("loading .env: %w", err)
	}

	if err := applyEnvOverrides(cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// Default returns the built-in configuration. It reproduces the fixed
// behaviour of the device: five Sensirion sensors on the first I2C bus,
// one cycle per second and an InfluxDB 1.x database named "sensors" on
// the local host.
func Default() *Config {
	return &Config{
		Device: DeviceConfig{
			Name: "boimebubble",
		},
		Sensors: SensorsConfig{
			SFA3x: SensorAddressConfig{Address: 0x5D},
			SCD30: SCD30Config{
				Address:      0x61,
				ReadyTimeout: 3 * time.Second,
			},
			SEN44: SensorAddressConfig{Address: 0x69},
			SEN5x: SEN5xConfig{Address: 0x69},
			SEN66: SensorAddressConfig{Address: 0x6B},
		},
		Acquisition: AcquisitionConfig{
			Interval:        time.Second,
			WarmupTicks:     10,
			PayloadCapacity: 1024,
			Console:         true,
		},
		Ingest: IngestConfig{
			Transport: TransportInfluxDBV1,
			InfluxDBV1: InfluxDBV1Config{
				URL:      "http://127.0.0.1:8086",
				Database: "sensors",
				Timeout:  5 * time.Second,
			},
			InfluxDBV2: InfluxDBV2Config{
				URL:     "http://127.0.0.1:8086",
				Timeout: 5 * time.Second,
			},
			MQTT: MQTTConfig{
				Broker: MQTTBrokerConfig{
					Host:     "localhost",
					Port:     1883,
					ClientID: "boimebubble",
				},
				QoS: 1,
				Reconnect: MQTTReconnectConfig{
					InitialDelay: 1,
					MaxDelay:     60,
				},
				TopicPrefix: "boimebubble",
			},
			Kafka: KafkaConfig{
				Topic:   "boimebubble.telemetry",
				Timeout: 5 * time.Second,
			},
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
			Output: "stderr",
		},
		Status: StatusConfig{
			Host: "127.0.0.1",
			Port: 9100,
		},
	}
}

// applyEnvOverrides applies environment variable overrides to the configuration.
// Environment variables follow the pattern: BOIMEBUBBLE_SECTION_KEY
func applyEnvOverrides(cfg *Config) error {
	// Bus
	if v := os.Getenv("BOIMEBUBBLE_BUS_NAME"); v != "" {
		cfg.Bus.Name = v
	}

	// Ingest
	if v := os.Getenv("BOIMEBUBBLE_INGEST_TRANSPORT"); v != "" {
		cfg.Ingest.Transport = v
	}
	if v := os.Getenv("BOIMEBUBBLE_INFLUXDB_URL"); v != "" {
		cfg.Ingest.InfluxDBV1.URL = v
		cfg.Ingest.InfluxDBV2.URL = v
	}
	if v := os.Getenv("BOIMEBUBBLE_INFLUXDB_DATABASE"); v != "" {
		cfg.Ingest.InfluxDBV1.Database = v
	}
	if v := os.Getenv("BOIMEBUBBLE_INFLUXDB_TOKEN"); v != "" {
		cfg.Ingest.InfluxDBV2.Token = v
	}
	if v := os.Getenv("BOIMEBUBBLE_MQTT_HOST"); v != "" {
		cfg.Ingest.MQTT.Broker.Host = v
	}
	if v := os.Getenv("BOIMEBUBBLE_MQTT_USERNAME"); v != "" {
		cfg.Ingest.MQTT.Auth.Username = v
	}
	if v := os.Getenv("BOIMEBUBBLE_MQTT_PASSWORD"); v != "" {
		cfg.Ingest.MQTT.Auth.Password = v
	}
	if v := os.Getenv("BOIMEBUBBLE_KAFKA_BROKERS"); v != "" {
		cfg.Ingest.Kafka.Brokers = strings.Split(v, ",")
	}

	// Status
	if v := os.Getenv("BOIMEBUBBLE_STATUS_PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("BOIMEBUBBLE_STATUS_PORT: %w", err)
		}
		cfg.Status.Port = port
	}

	// Logging
	if v := os.Getenv("BOIMEBUBBLE_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}

	return nil
}

// Validate checks the configuration for errors.
//
// Returns:
//   - error: Description of every validation failure, or nil if valid
func (c *Config) Validate() error {
	var errs []string

	// Acquisition
	if c.Acquisition.Interval <= 0 {
		errs = append(errs, "acquisition.interval must be positive")
	}
	if c.Acquisition.WarmupTicks < 0 {
		errs = append(errs, "acquisition.warmup_ticks must not be negative")
	}
	if c.Acquisition.PayloadCapacity <= 0 {
		errs = append(errs, "acquisition.payload_capacity must be positive")
	}

	if c.Bus.SpeedKHz < 0 {
		errs = append(errs, "bus.speed_khz must not be negative")
	}

	// Sensors
	addresses := []struct {
		name string
		addr uint16
	}{
		{"sfa3x", c.Sensors.SFA3x.Address},
		{"scd30", c.Sensors.SCD30.Address},
		{"sen44", c.Sensors.SEN44.Address},
		{"sen5x", c.Sensors.SEN5x.Address},
		{"sen66", c.Sensors.SEN66.Address},
	}
	for _, a := range addresses {
		if a.addr == 0 || a.addr > 0x7F {
			errs = append(errs, fmt.Sprintf("sensors.%s.address must be a 7-bit I2C address", a.name))
		}
	}

	// Ingest
	switch c.Ingest.Transport {
	case TransportInfluxDBV1:
		if c.Ingest.InfluxDBV1.URL == "" {
			errs = append(errs, "ingest.influxdb_v1.url is required")
		}
		if c.Ingest.InfluxDBV1.Database == "" {
			errs = append(errs, "ingest.influxdb_v1.database is required")
		}
	case TransportInfluxDBV2:
		if c.Ingest.InfluxDBV2.URL == "" {
			errs = append(errs, "ingest.influxdb_v2.url is required")
		}
		if c.Ingest.InfluxDBV2.Bucket == "" {
			errs = append(errs, "ingest.influxdb_v2.bucket is required")
		}
	case TransportMQTT:
		if c.Ingest.MQTT.QoS < 0 || c.Ingest.MQTT.QoS > 2 {
			errs = append(errs, "ingest.mqtt.qos must be 0, 1, or 2")
		}
		if c.Ingest.MQTT.TopicPrefix == "" {
			errs = append(errs, "ingest.mqtt.topic_prefix is required")
		}
	case TransportKafka:
		if len(c.Ingest.Kafka.Brokers) == 0 {
			errs = append(errs, "ingest.kafka.brokers is required")
		}
		if c.Ingest.Kafka.Topic == "" {
			errs = append(errs, "ingest.kafka.topic is required")
		}
	default:
		errs = append(errs, fmt.Sprintf("ingest.transport %q is not one of %s, %s, %s, %s",
			c.Ingest.Transport, TransportInfluxDBV1, TransportInfluxDBV2, TransportMQTT, TransportKafka))
	}

	// Status
	if c.Status.Enabled && (c.Status.Port < 1 || c.Status.Port > 65535) {
		errs = append(errs, "status.port must be between 1 and 65535")
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration errors: %s", strings.Join(errs, "; "))
	}

	return nil
}
