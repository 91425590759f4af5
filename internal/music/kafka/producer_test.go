package kafka

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validProducerConfig() ProducerConfig {
	return ProducerConfig{
		Brokers: []string{"localhost:9092"},
		Topic:   "playback-events",
	}
}

func TestValidateConfig(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*ProducerConfig)
		wantErr string
	}{
		{
			name:   "valid",
			mutate: func(cfg *ProducerConfig) {},
		},
		{
			name:    "no brokers",
			mutate:  func(cfg *ProducerConfig) { cfg.Brokers = nil },
			wantErr: "brokers list is empty",
		},
		{
			name:    "empty topic",
			mutate:  func(cfg *ProducerConfig) { cfg.Topic = "" },
			wantErr: "topic is empty",
		},
		{
			name:    "negative retries",
			mutate:  func(cfg *ProducerConfig) { cfg.MaxRetries = -1 },
			wantErr: "max retries must not be negative",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validProducerConfig()
			tt.mutate(&cfg)
			err := validateConfig(&cfg)
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				assert.EqualError(t, err, tt.wantErr)
			}
		})
	}
}

func TestSetDefaults(t *testing.T) {
	cfg := validProducerConfig()
	setDefaults(&cfg)

	assert.Equal(t, 3, cfg.MaxRetries)
	assert.Equal(t, 100*time.Millisecond, cfg.RetryBackoff)
	assert.Equal(t, 10*time.Second, cfg.WriteTimeout)
	assert.Equal(t, 100, cfg.BatchSize)
}

func TestSetDefaults_KeepsExplicitValues(t *testing.T) {
	cfg := validProducerConfig()
	cfg.MaxRetries = 7
	cfg.WriteTimeout = time.Second
	setDefaults(&cfg)

	assert.Equal(t, 7, cfg.MaxRetries)
	assert.Equal(t, time.Second, cfg.WriteTimeout)
}

func TestNewProducer_InvalidConfig(t *testing.T) {
	_, err := NewProducer(ProducerConfig{Topic: "playback-events"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid producer config")
}

func TestProducer_ClosedLifecycle(t *testing.T) {
	p, err := NewProducer(validProducerConfig())
	require.NoError(t, err)

	require.NoError(t, p.HealthCheck(context.Background()))
	require.NoError(t, p.Close())

	assert.EqualError(t, p.Publish(context.Background(), "k", []byte("v")), "producer is closed")
	assert.EqualError(t, p.PublishBatch(context.Background(), []Message{{Key: "k"}}), "producer is closed")
	assert.EqualError(t, p.HealthCheck(context.Background()), "producer is closed")
	assert.EqualError(t, p.Close(), "producer is already closed")
}

func TestPublishBatch_EmptyIsNoOp(t *testing.T) {
	p, err := NewProducer(validProducerConfig())
	require.NoError(t, err)
	defer p.Close()

	// No broker connection is made for an empty batch.
	assert.NoError(t, p.PublishBatch(context.Background(), nil))
}
