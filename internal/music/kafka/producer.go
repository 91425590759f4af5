// Package kafka publishes playback events to a Kafka topic.
package kafka

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
	kafkago "github.com/segmentio/kafka-go"
)

// Message is one key/value pair to publish.
type Message struct {
	Key   string
	Value []byte
}

// ProducerConfig configures a Producer.
type ProducerConfig struct {
	Brokers      []string
	Topic        string
	MaxRetries   int           // defaults to 3
	RetryBackoff time.Duration // defaults to 100ms
	WriteTimeout time.Duration // defaults to 10s
	BatchSize    int           // defaults to 100
	Logger       zerolog.Logger
}

func validateConfig(cfg *ProducerConfig) error {
	if len(cfg.Brokers) == 0 {
		return fmt.Errorf("brokers list is empty")
	}
	if cfg.Topic == "" {
		return fmt.Errorf("topic is empty")
	}
	if cfg.MaxRetries < 0 {
		return fmt.Errorf("max retries must not be negative")
	}
	return nil
}

func setDefaults(cfg *ProducerConfig) {
	if cfg.MaxRetries == 0 {
		cfg.MaxRetries = 3
	}
	if cfg.RetryBackoff == 0 {
		cfg.RetryBackoff = 100 * time.Millisecond
	}
	if cfg.WriteTimeout == 0 {
		cfg.WriteTimeout = 10 * time.Second
	}
	if cfg.BatchSize == 0 {
		cfg.BatchSize = 100
	}
}

// Producer wraps a kafka-go writer with validation and lifecycle tracking.
type Producer struct {
	writer *kafkago.Writer
	config ProducerConfig
	closed atomic.Bool
}

// NewProducer validates the config and builds a Producer. The connection is
// established lazily by the underlying writer.
func NewProducer(cfg ProducerConfig) (*Producer, error) {
	if err := validateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("invalid producer config: %w", err)
	}
	setDefaults(&cfg)

	writer := &kafkago.Writer{
		Addr:         kafkago.TCP(cfg.Brokers...),
		Topic:        cfg.Topic,
		Balancer:     &kafkago.LeastBytes{},
		MaxAttempts:  cfg.MaxRetries,
		WriteTimeout: cfg.WriteTimeout,
		BatchSize:    cfg.BatchSize,
	}

	return &Producer{writer: writer, config: cfg}, nil
}

// Publish writes a single message.
func (p *Producer) Publish(ctx context.Context, key string, value []byte) error {
	if p.closed.Load() {
		return fmt.Errorf("producer is closed")
	}
	err := p.writer.WriteMessages(ctx, kafkago.Message{
		Key:   []byte(key),
		Value: value,
	})
	if err != nil {
		return fmt.Errorf("kafka publish: %w", err)
	}
	return nil
}

// PublishBatch writes several messages in one call. An empty batch is a no-op.
func (p *Producer) PublishBatch(ctx context.Context, messages []Message) error {
	if p.closed.Load() {
		return fmt.Errorf("producer is closed")
	}
	if len(messages) == 0 {
		return nil
	}
	batch := make([]kafkago.Message, 0, len(messages))
	for _, m := range messages {
		batch = append(batch, kafkago.Message{Key: []byte(m.Key), Value: m.Value})
	}
	if err := p.writer.WriteMessages(ctx, batch...); err != nil {
		return fmt.Errorf("kafka publish batch: %w", err)
	}
	return nil
}

// HealthCheck verifies the producer is still usable.
func (p *Producer) HealthCheck(ctx context.Context) error {
	if p.closed.Load() {
		return fmt.Errorf("producer is closed")
	}
	return nil
}

// Close shuts the writer down. Closing twice is an error.
func (p *Producer) Close() error {
	if p.closed.Swap(true) {
		return fmt.Errorf("producer is already closed")
	}
	p.config.Logger.Info().Str("topic", p.config.Topic).Msg("closing kafka producer")
	return p.writer.Close()
}
