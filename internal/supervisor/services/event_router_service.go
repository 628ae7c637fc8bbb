// MatTailor - Material Recommendation and Trade-off Analysis Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mattailor

package services

import (
	"context"
	"fmt"

	"github.com/thejerf/suture/v4"
)

// EventRouter is the lifecycle of events.Router.
type EventRouter interface {
	Run(ctx context.Context) error
	Close() error
}

// EventRouterService runs the domain event router under supervision.
//
// A watermill router cannot be run twice, so an unexpected exit is
// reported with suture.ErrDoNotRestart and the event layer stays down.
type EventRouterService struct {
	router EventRouter
	name   string
}

// NewEventRouterService wraps router.
func NewEventRouterService(router EventRouter) *EventRouterService {
	return &EventRouterService{router: router, name: "event-router"}
}

// Serve implements suture.Service.
func (s *EventRouterService) Serve(ctx context.Context) error {
	err := s.router.Run(ctx)
	if ctx.Err() != nil {
		return ctx.Err()
	}
	if err != nil {
		return fmt.Errorf("event router stopped: %w: %w", err, suture.ErrDoNotRestart)
	}
	return fmt.Errorf("event router stopped: %w", suture.ErrDoNotRestart)
}

// String names the service in supervisor logs.
func (s *EventRouterService) String() string {
	return s.name
}
