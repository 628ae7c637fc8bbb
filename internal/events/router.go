// MatTailor - Material Recommendation and Trade-off Analysis Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mattailor

package events

import (
	"context"
	"fmt"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/message/router/middleware"
)

// Router runs consumers against the bus. Handlers get panic recovery and a
// short retry before the message is dropped.
type Router struct {
	router *message.Router
	bus    *Bus
}

// NewRouter creates a router bound to bus.
func NewRouter(bus *Bus) (*Router, error) {
	wmRouter, err := message.NewRouter(message.RouterConfig{
		CloseTimeout: bus.cfg.CloseTimeout,
	}, bus.wmLog)
	if err != nil {
		return nil, fmt.Errorf("create watermill router: %w", err)
	}

	wmRouter.AddMiddleware(middleware.Recoverer)
	retry := middleware.Retry{
		MaxRetries:      2,
		InitialInterval: 10 * time.Millisecond,
		MaxInterval:     100 * time.Millisecond,
		Multiplier:      2,
		Logger:          bus.wmLog,
	}
	wmRouter.AddMiddleware(retry.Middleware)

	return &Router{router: wmRouter, bus: bus}, nil
}

// AddConsumer subscribes handler to topic.
func (r *Router) AddConsumer(name, topic string, handler message.NoPublishHandlerFunc) {
	r.router.AddConsumerHandler(name, topic, r.bus.Subscriber(), handler)
}

// AddAudit subscribes the audit log to every topic.
func (r *Router) AddAudit(audit *AuditLog) {
	for _, topic := range AllTopics {
		r.AddConsumer("audit."+topic, topic, audit.Handle)
	}
}

// Run blocks until ctx is canceled or Close is called.
func (r *Router) Run(ctx context.Context) error {
	return r.router.Run(ctx)
}

// Running is closed once all handlers are subscribed.
func (r *Router) Running() <-chan struct{} {
	return r.router.Running()
}

// Close stops the router, waiting up to the configured close timeout.
func (r *Router) Close() error {
	return r.router.Close()
}
