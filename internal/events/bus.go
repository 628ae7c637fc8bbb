// MatTailor - Material Recommendation and Trade-off Analysis Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mattailor

package events

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/tomtom215/mattailor/internal/logging"
	"github.com/tomtom215/mattailor/internal/metrics"
)

// ErrClosed is returned by Publish after Close.
var ErrClosed = errors.New("event bus closed")

// Config controls the in-process bus.
type Config struct {
	// BufferSize is the per-subscriber output channel buffer.
	BufferSize int64

	// CloseTimeout bounds how long the router waits for in-flight handlers.
	CloseTimeout time.Duration
}

// DefaultConfig returns the settings used when none are configured.
func DefaultConfig() Config {
	return Config{
		BufferSize:   256,
		CloseTimeout: 10 * time.Second,
	}
}

// Validate checks the configuration.
func (c *Config) Validate() error {
	if c.BufferSize < 0 {
		return fmt.Errorf("buffer size must not be negative")
	}
	if c.CloseTimeout <= 0 {
		return fmt.Errorf("close timeout must be positive")
	}
	return nil
}

// Bus is an in-process watermill GoChannel pub/sub. Events published
// before any subscriber exists are dropped.
type Bus struct {
	cfg    Config
	pubsub *gochannel.GoChannel
	wmLog  watermill.LoggerAdapter
	logger zerolog.Logger
	closed atomic.Bool
}

// NewBus creates the bus.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewBus(cfg Config, logger zerolog.Logger) (*Bus, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid events config: %w", err)
	}
	logger = logger.With().Str("component", "events").Logger()
	wmLog := logging.NewWatermillAdapter(logger)

	return &Bus{
		cfg: cfg,
		pubsub: gochannel.NewGoChannel(gochannel.Config{
			OutputChannelBuffer: cfg.BufferSize,
		}, wmLog),
		wmLog:  wmLog,
		logger: logger,
	}, nil
}

// Publish encodes payload as JSON and publishes it on topic. The request ID
// from ctx travels in the message metadata.
func (b *Bus) Publish(ctx context.Context, topic string, payload any) error {
	err := b.publish(ctx, topic, payload)
	metrics.RecordEventPublished(topic, err)
	if err != nil {
		b.logger.Warn().Err(err).Str("topic", topic).Msg("Failed to publish event")
	}
	return err
}

func (b *Bus) publish(ctx context.Context, topic string, payload any) error {
	if b.closed.Load() {
		return ErrClosed
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode %s event: %w", topic, err)
	}

	msg := message.NewMessage(uuid.New().String(), data)
	msg.Metadata.Set(MetadataTopic, topic)
	msg.Metadata.Set(MetadataOccurredAt, time.Now().UTC().Format(time.RFC3339Nano))
	if requestID := logging.RequestIDFromContext(ctx); requestID != "" {
		msg.Metadata.Set(MetadataRequestID, requestID)
	}

	if err := b.pubsub.Publish(topic, msg); err != nil {
		return fmt.Errorf("publish %s: %w", topic, err)
	}
	return nil
}

// Subscriber exposes the subscribing side for the router.
func (b *Bus) Subscriber() message.Subscriber {
	return b.pubsub
}

// Close stops delivery to all subscribers.
func (b *Bus) Close() error {
	if !b.closed.CompareAndSwap(false, true) {
		return nil
	}
	return b.pubsub.Close()
}
