package kafka

import (
	"context"
	"fmt"
	"net"
	"sync"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/Meapy011/Boimebubble/internal/infrastructure/config"
)

const (
	defaultWriteTimeout = 5 * time.Second
	dialTimeout         = 3 * time.Second
)

// messageWriter is the part of *kafka.Writer the producer uses.
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Producer writes one record per cycle.
//
// Thread Safety: All methods are safe for concurrent use from multiple goroutines.
type Producer struct {
	writer  messageWriter
	brokers []string
	topic   string
	key     []byte
	now     func() time.Time

	closed bool
	mu     sync.RWMutex
}

// New creates a producer. Like the other transports it does not dial the
// brokers up front.
//
// Parameters:
//   - cfg: Kafka configuration from config.yaml
//   - key: Record key, normally the device name
func New(cfg config.KafkaConfig, key string) *Producer {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultWriteTimeout
	}

	w := &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers...),
		Topic:        cfg.Topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireOne,
		MaxAttempts:  1,
		BatchSize:    1,
		WriteTimeout: timeout,
		ReadTimeout:  timeout,
		Transport: &kafka.Transport{
			Dial: (&net.Dialer{Timeout: dialTimeout}).DialContext,
		},
	}

	return newProducer(w, cfg, key)
}

func newProducer(w messageWriter, cfg config.KafkaConfig, key string) *Producer {
	return &Producer{
		writer:  w,
		brokers: cfg.Brokers,
		topic:   cfg.Topic,
		key:     []byte(key),
		now:     time.Now,
	}
}

// Submit writes payload as a single record.
//
// Returns:
//   - error: ErrNotConnected after Close, ErrWriteFailed otherwise
func (p *Producer) Submit(ctx context.Context, payload []byte) error {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed {
		return ErrNotConnected
	}

	msg := kafka.Message{
		Key:   p.key,
		Value: payload,
		Time:  p.now(),
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("%w: topic %s: %w", ErrWriteFailed, p.topic, err)
	}

	return nil
}

// HealthCheck dials the first reachable broker.
//
// Returns:
//   - error: nil if any broker accepts a connection
func (p *Producer) HealthCheck(ctx context.Context) error {
	var lastErr error
	for _, broker := range p.brokers {
		conn, err := kafka.DialContext(ctx, "tcp", broker)
		if err != nil {
			lastErr = err
			continue
		}
		_ = conn.Close()
		return nil
	}
	if lastErr == nil {
		lastErr = fmt.Errorf("no brokers configured")
	}
	return fmt.Errorf("kafka health check: %w", lastErr)
}

// Close flushes and closes the writer. It is safe to call more than once.
func (p *Producer) Close() error {
	if p == nil {
		return nil
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return nil
	}
	p.closed = true

	return p.writer.Close()
}

// Name identifies the transport in logs.
func (p *Producer) Name() string {
	return config.TransportKafka
}
