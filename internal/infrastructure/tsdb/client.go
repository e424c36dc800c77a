package tsdb

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/Meapy011/Boimebubble/internal/infrastructure/config"
)

// Default timeouts for InfluxDB operations.
const (
	defaultWriteTimeout  = 5 * time.Second
	defaultHealthTimeout = 5 * time.Second
)

// maxErrorBody caps how much of an error response is quoted in an error.
const maxErrorBody = 256

// Client posts payloads to an InfluxDB 1.x /write endpoint.
//
// Thread Safety: All methods are safe for concurrent use from multiple goroutines.
type Client struct {
	url      string
	database string
	http     *resty.Client

	closed bool
	mu     sync.RWMutex
}

// New creates a client. It does not contact the server: a store that is down
// at start-up only costs the cycles that run while it stays down.
//
// Parameters:
//   - cfg: InfluxDB 1.x configuration from config.yaml
//
// Returns:
//   - *Client: Client ready for Submit
func New(cfg config.InfluxDBV1Config) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultWriteTimeout
	}

	return &Client{
		url:      strings.TrimRight(cfg.URL, "/"),
		database: cfg.Database,
		http: resty.New().
			SetTimeout(timeout).
			SetRetryCount(0),
	}
}

// Submit writes one payload.
//
// Parameters:
//   - ctx: Context for cancellation
//   - payload: Newline-separated line protocol
//
// Returns:
//   - error: ErrNotConnected after Close, ErrWriteFailed on transport error
//     or non-2xx status
func (c *Client) Submit(ctx context.Context, payload []byte) error {
	c.mu.RLock()
	closed := c.closed
	c.mu.RUnlock()
	if closed {
		return ErrNotConnected
	}

	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParam("db", c.database).
		SetHeader("Content-Type", "text/plain; charset=utf-8").
		SetBody(payload).
		Post(c.url + "/write")
	if err != nil {
		return fmt.Errorf("%w: %w", ErrWriteFailed, err)
	}

	if resp.StatusCode() < http.StatusOK || resp.StatusCode() >= http.StatusMultipleChoices {
		body := strings.TrimSpace(resp.String())
		if len(body) > maxErrorBody {
			body = body[:maxErrorBody]
		}
		return fmt.Errorf("%w: HTTP %d: %s", ErrWriteFailed, resp.StatusCode(), body)
	}

	return nil
}

// HealthCheck pings the server.
//
// Parameters:
//   - ctx: Context for timeout/cancellation
//
// Returns:
//   - error: nil if healthy, ErrConnectionFailed otherwise
func (c *Client) HealthCheck(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, defaultHealthTimeout)
	defer cancel()

	resp, err := c.http.R().SetContext(ctx).Get(c.url + "/ping")
	if err != nil {
		return fmt.Errorf("%w: %w", ErrConnectionFailed, err)
	}
	if resp.StatusCode() != http.StatusNoContent && resp.StatusCode() != http.StatusOK {
		return fmt.Errorf("%w: ping status %d", ErrConnectionFailed, resp.StatusCode())
	}

	return nil
}

// Close marks the client closed. Further Submit calls fail.
//
// Returns:
//   - error: nil (there is no persistent connection to tear down)
func (c *Client) Close() error {
	if c == nil {
		return nil
	}

	c.mu.Lock()
	c.closed = true
	c.mu.Unlock()

	c.http.GetClient().CloseIdleConnections()
	return nil
}

// Name identifies the transport in logs.
func (c *Client) Name() string {
	return config.TransportInfluxDBV1
}
