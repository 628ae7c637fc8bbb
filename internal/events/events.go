// MatTailor - Material Recommendation and Trade-off Analysis Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mattailor

package events

import (
	"context"
	"time"
)

// Topics published by the API layer.
const (
	TopicRecommendation = "mattailor.recommendation.completed"
	TopicTradeoff       = "mattailor.tradeoff.completed"
	TopicSimulation     = "mattailor.simulation.completed"
	TopicPlan           = "mattailor.plan.created"
	TopicFeedback       = "mattailor.plan.feedback"
)

// AllTopics lists every topic the audit consumer subscribes to.
var AllTopics = []string{
	TopicRecommendation,
	TopicTradeoff,
	TopicSimulation,
	TopicPlan,
	TopicFeedback,
}

// Message metadata keys.
const (
	MetadataTopic      = "topic"
	MetadataRequestID  = "request_id"
	MetadataOccurredAt = "occurred_at"
)

// RecommendationCompleted is published after every successful recommendation.
type RecommendationCompleted struct {
	Fingerprint      string   `json:"fingerprint"`
	Cached           bool     `json:"cached"`
	Results          int      `json:"results"`
	TopMaterials     []string `json:"top_materials"`
	ProcessingTimeMS float64  `json:"processing_time_ms"`
	NLPUsed          bool     `json:"nlp_used"`
}

// TradeoffCompleted is published after a trade-off analysis.
type TradeoffCompleted struct {
	AnalysisID  string   `json:"analysis_id"`
	Materials   []string `json:"materials"`
	BestOverall string   `json:"best_overall"`
	Method      string   `json:"method"`
	Confidence  float64  `json:"confidence"`
}

// SimulationCompleted is published after a simulation request.
type SimulationCompleted struct {
	MaterialID string `json:"material_id"`
	Properties int    `json:"properties"`
}

// PlanCreated is published when the planner opens a session.
type PlanCreated struct {
	SessionID  string   `json:"session_id"`
	Objectives []string `json:"objectives"`
	Strategy   []string `json:"categories"`
}

// FeedbackReceived is published when a session receives feedback.
type FeedbackReceived struct {
	SessionID string  `json:"session_id"`
	Rating    float64 `json:"rating"`
}

// Publisher is what the API layer depends on. Publishing is fire and forget;
// a failed publish is logged and counted but never fails the request.
type Publisher interface {
	Publish(ctx context.Context, topic string, payload any) error
}

// NopPublisher discards events. It is used when events are disabled.
type NopPublisher struct{}

// Publish implements Publisher.
func (NopPublisher) Publish(context.Context, string, any) error { return nil }

// AuditEntry is one consumed event as kept by the audit consumer.
type AuditEntry struct {
	ID         string         `json:"id"`
	Topic      string         `json:"topic"`
	RequestID  string         `json:"request_id,omitempty"`
	OccurredAt time.Time      `json:"occurred_at"`
	Payload    map[string]any `json:"payload"`
}
