// MatTailor - Material Recommendation and Trade-off Analysis Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mattailor

package api

import (
	"github.com/tomtom215/mattailor/internal/models"
	"github.com/tomtom215/mattailor/internal/simulation"
)

// ParseRequest is the body of POST /api/v1/parse.
type ParseRequest struct {
	Query string `json:"query" validate:"required,max=2000"`
}

// AlternativesRequest is the optional body of
// POST /api/v1/materials/{id}/alternatives.
type AlternativesRequest struct {
	Requirements models.Requirements `json:"requirements"`
}

// TradeoffRequest is the body of POST /api/v1/tradeoff and
// POST /api/v1/tradeoff/sensitivity.
type TradeoffRequest struct {
	MaterialIDs []string           `json:"material_ids" validate:"required,min=1,max=50,dive,required"`
	Criteria    []string           `json:"criteria" validate:"required,min=1,max=20,dive,required"`
	Weights     map[string]float64 `json:"weights,omitempty"`
	Method      string             `json:"method,omitempty" validate:"omitempty,oneof=weighted_sum weighted_sum+dominance"`
}

// SimulateRequest is the body of POST /api/v1/simulate.
type SimulateRequest struct {
	Composition map[string]float64    `json:"composition" validate:"required,min=1,dive,gte=0"`
	Conditions  simulation.Conditions `json:"conditions"`
}

// PlanRequest is the body of POST /api/v1/plan.
type PlanRequest struct {
	Objectives  []string           `json:"objectives" validate:"required,min=1,max=20,dive,required"`
	Constraints map[string]float64 `json:"constraints,omitempty"`
}

// FeedbackResponse acknowledges stored plan feedback.
type FeedbackResponse struct {
	SessionID string `json:"session_id"`
	Recorded  bool   `json:"recorded"`
}

// SimulationResponse carries predicted properties.
type SimulationResponse struct {
	MaterialID string             `json:"material_id,omitempty"`
	Properties map[string]float64 `json:"properties"`
}

// MaterialListResponse is one page of the catalog.
type MaterialListResponse struct {
	Materials []*models.Material `json:"materials"`
	Total     int                `json:"total"`
	Offset    int                `json:"offset"`
	Limit     int                `json:"limit"`
}

// CategoryInfo describes one material category.
type CategoryInfo struct {
	Name  models.Category `json:"name"`
	Count int             `json:"count"`
}
