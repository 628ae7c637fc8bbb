// MatTailor - Material Recommendation and Trade-off Analysis Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mattailor

/*
Package events carries domain events between the API and in-process
consumers over a watermill GoChannel pub/sub.

The API publishes one event per completed recommendation, trade-off
analysis, simulation, plan and feedback. Payloads are JSON; the request ID
and publish time travel as message metadata.

	bus, _ := events.NewBus(events.DefaultConfig(), logger)
	router, _ := events.NewRouter(bus)
	audit := events.NewAuditLog(events.DefaultAuditCapacity, logger)
	router.AddAudit(audit)
	go router.Run(ctx)
	<-router.Running()

	_ = bus.Publish(ctx, events.TopicTradeoff, events.TradeoffCompleted{...})

Publishing never blocks on consumers. Events published while no router is
running are dropped, and a failed publish never fails the HTTP request that
triggered it. When events are disabled the API uses NopPublisher.
*/
package events
