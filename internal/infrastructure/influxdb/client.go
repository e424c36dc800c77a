package influxdb

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api"

	"github.com/Meapy011/Boimebubble/internal/infrastructure/config"
)

// Default timeouts for InfluxDB operations.
const (
	defaultRequestTimeout = 5 * time.Second
	defaultPingTimeout    = 5 * time.Second
)

// Client submits payloads to an InfluxDB 2.x bucket.
//
// Thread Safety:
//   - All methods are safe for concurrent use from multiple goroutines.
type Client struct {
	client   influxdb2.Client
	writeAPI api.WriteAPIBlocking

	// connected tracks current connection state.
	connected bool
	mu        sync.RWMutex
}

// New creates a client with token authentication. The server is not
// contacted until the first Submit or HealthCheck.
//
// Parameters:
//   - cfg: InfluxDB 2.x configuration from config.yaml
//
// Returns:
//   - *Client: Client ready for Submit
func New(cfg config.InfluxDBV2Config) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultRequestTimeout
	}
	seconds := uint(timeout.Round(time.Second) / time.Second)
	if seconds == 0 {
		seconds = 1
	}

	client := influxdb2.NewClientWithOptions(
		cfg.URL,
		cfg.Token,
		influxdb2.DefaultOptions().SetHTTPRequestTimeout(seconds),
	)

	return &Client{
		client:    client,
		writeAPI:  client.WriteAPIBlocking(cfg.Org, cfg.Bucket),
		connected: true,
	}
}

// Submit writes one payload of newline-separated lines.
//
// Parameters:
//   - ctx: Context for cancellation
//   - payload: Line protocol, one record per line
//
// Returns:
//   - error: ErrNotConnected after Close, ErrWriteFailed if the server
//     rejects the write or cannot be reached
func (c *Client) Submit(ctx context.Context, payload []byte) error {
	if !c.IsConnected() {
		return ErrNotConnected
	}

	lines := strings.Split(strings.TrimRight(string(payload), "\n"), "\n")
	if err := c.writeAPI.WriteRecord(ctx, lines...); err != nil {
		return fmt.Errorf("%w: %w", ErrWriteFailed, err)
	}
	return nil
}

// Close shuts down the underlying client.
//
// Returns:
//   - error: nil (InfluxDB client Close doesn't return errors)
func (c *Client) Close() error {
	if c == nil || c.client == nil {
		return nil
	}

	c.mu.Lock()
	wasConnected := c.connected
	c.connected = false
	c.mu.Unlock()

	if wasConnected {
		c.client.Close()
	}
	return nil
}

// HealthCheck verifies the InfluxDB server is reachable and healthy.
//
// Parameters:
//   - ctx: Context for timeout/cancellation
//
// Returns:
//   - error: nil if healthy, error describing the issue otherwise
func (c *Client) HealthCheck(ctx context.Context) error {
	if !c.IsConnected() {
		return ErrNotConnected
	}

	checkCtx, cancel := context.WithTimeout(ctx, defaultPingTimeout)
	defer cancel()

	healthy, err := c.client.Ping(checkCtx)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrConnectionFailed, err)
	}
	if !healthy {
		return fmt.Errorf("%w: server not healthy", ErrConnectionFailed)
	}

	return nil
}

// IsConnected reports whether Close has not yet been called.
func (c *Client) IsConnected() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.connected
}

// Name identifies the transport in logs.
func (c *Client) Name() string {
	return config.TransportInfluxDBV2
}
