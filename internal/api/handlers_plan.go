// MatTailor - Material Recommendation and Trade-off Analysis Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mattailor

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/mattailor/internal/events"
	"github.com/tomtom215/mattailor/internal/planner"
)

func (h *Handler) planningEnabled(w http.ResponseWriter, r *http.Request) bool {
	if !h.cfg.Features.EnableRLPlanning || h.planner == nil {
		respondFeatureDisabled(w, r, "rl_planning")
		return false
	}
	return true
}

// Plan handles POST /api/v1/plan.
func (h *Handler) Plan(w http.ResponseWriter, r *http.Request) {
	if !h.planningEnabled(w, r) {
		return
	}
	var req PlanRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	plan, err := h.planner.Plan(r.Context(), req.Objectives, req.Constraints)
	if err != nil {
		respondInternal(w, r, "Planning failed", err)
		return
	}

	categories := make([]string, len(plan.RecommendedStrategy.MaterialCategories))
	for i, c := range plan.RecommendedStrategy.MaterialCategories {
		categories[i] = string(c)
	}
	h.publish(r.Context(), events.TopicPlan, events.PlanCreated{
		SessionID:  plan.SessionID,
		Objectives: plan.ObjectivesAnalyzed,
		Strategy:   categories,
	})
	respondSuccess(w, r, plan)
}

// PlanStatus handles GET /api/v1/plan/status.
func (h *Handler) PlanStatus(w http.ResponseWriter, r *http.Request) {
	if !h.planningEnabled(w, r) {
		return
	}
	respondSuccess(w, r, h.planner.Status())
}

// PlanSession handles GET /api/v1/plan/{session}.
func (h *Handler) PlanSession(w http.ResponseWriter, r *http.Request) {
	if !h.planningEnabled(w, r) {
		return
	}
	id := chi.URLParam(r, "session")
	plan, fb, err := h.planner.Session(id)
	if err != nil {
		respondNotFound(w, r, "Planning session not found", map[string]interface{}{"session_id": id})
		return
	}
	respondSuccess(w, r, struct {
		Plan     *planner.Plan     `json:"plan"`
		Feedback *planner.Feedback `json:"feedback"`
	}{plan, fb})
}

// PlanFeedback handles POST /api/v1/plan/{session}/feedback.
func (h *Handler) PlanFeedback(w http.ResponseWriter, r *http.Request) {
	if !h.planningEnabled(w, r) {
		return
	}
	var fb planner.Feedback
	if !decodeJSON(w, r, &fb) {
		return
	}

	id := chi.URLParam(r, "session")
	if !h.planner.Feedback(id, fb) {
		respondNotFound(w, r, "Planning session not found", map[string]interface{}{"session_id": id})
		return
	}
	h.publish(r.Context(), events.TopicFeedback, events.FeedbackReceived{SessionID: id, Rating: fb.Rating})
	respondSuccess(w, r, FeedbackResponse{SessionID: id, Recorded: true})
}
