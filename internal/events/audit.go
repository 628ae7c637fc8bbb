// MatTailor - Material Recommendation and Trade-off Analysis Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mattailor

package events

import (
	"sync"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/tomtom215/mattailor/internal/metrics"
)

// DefaultAuditCapacity is the number of entries the audit log keeps.
const DefaultAuditCapacity = 500

// AuditLog consumes every topic, logs each event and keeps the most recent
// entries in a ring buffer for the events endpoint.
type AuditLog struct {
	mu       sync.RWMutex
	entries  []AuditEntry
	next     int
	full     bool
	counts   map[string]int64
	logger   zerolog.Logger
	capacity int
}

// NewAuditLog keeps up to capacity entries.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewAuditLog(capacity int, logger zerolog.Logger) *AuditLog {
	if capacity < 1 {
		capacity = DefaultAuditCapacity
	}
	return &AuditLog{
		entries:  make([]AuditEntry, capacity),
		counts:   make(map[string]int64),
		logger:   logger.With().Str("component", "audit").Logger(),
		capacity: capacity,
	}
}

// Handle is the watermill consumer. A payload that is not a JSON object is
// logged and acked; GoChannel redelivers nacked messages without limit.
func (a *AuditLog) Handle(msg *message.Message) error {
	entry := AuditEntry{
		ID:        msg.UUID,
		Topic:     msg.Metadata.Get(MetadataTopic),
		RequestID: msg.Metadata.Get(MetadataRequestID),
	}
	if entry.Topic == "" {
		entry.Topic = message.SubscribeTopicFromCtx(msg.Context())
	}
	if ts, err := time.Parse(time.RFC3339Nano, msg.Metadata.Get(MetadataOccurredAt)); err == nil {
		entry.OccurredAt = ts
	} else {
		entry.OccurredAt = time.Now().UTC()
	}
	if err := json.Unmarshal(msg.Payload, &entry.Payload); err != nil {
		a.logger.Warn().Err(err).
			Str("event_id", msg.UUID).
			Str("topic", entry.Topic).
			Msg("Dropping undecodable event")
		return nil
	}

	a.mu.Lock()
	a.entries[a.next] = entry
	a.next = (a.next + 1) % a.capacity
	if a.next == 0 {
		a.full = true
	}
	a.counts[entry.Topic]++
	a.mu.Unlock()

	metrics.RecordEventConsumed(entry.Topic)
	a.logger.Info().
		Str("event_id", entry.ID).
		Str("topic", entry.Topic).
		Str("request_id", entry.RequestID).
		Msg("Event recorded")
	return nil
}

// Recent returns up to n entries, newest first.
func (a *AuditLog) Recent(n int) []AuditEntry {
	a.mu.RLock()
	defer a.mu.RUnlock()

	size := a.next
	if a.full {
		size = a.capacity
	}
	n = min(max(n, 0), size)

	out := make([]AuditEntry, 0, n)
	for i := 1; i <= n; i++ {
		out = append(out, a.entries[(a.next-i+a.capacity)%a.capacity])
	}
	return out
}

// Counts returns the number of events consumed per topic.
func (a *AuditLog) Counts() map[string]int64 {
	a.mu.RLock()
	defer a.mu.RUnlock()

	out := make(map[string]int64, len(a.counts))
	for k, v := range a.counts {
		out[k] = v
	}
	return out
}
