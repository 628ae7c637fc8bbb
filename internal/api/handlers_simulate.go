// MatTailor - Material Recommendation and Trade-off Analysis Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mattailor

package api

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/mattailor/internal/catalog"
	"github.com/tomtom215/mattailor/internal/events"
	"github.com/tomtom215/mattailor/internal/simulation"
)

func (h *Handler) simulationEnabled(w http.ResponseWriter, r *http.Request) bool {
	if !h.cfg.Features.EnableMLPrediction || h.simulator == nil {
		respondFeatureDisabled(w, r, "ml_prediction")
		return false
	}
	return true
}

// SimulateCustom handles POST /api/v1/simulate. Simulation failures yield
// an empty property map, matching recommendation behaviour.
func (h *Handler) SimulateCustom(w http.ResponseWriter, r *http.Request) {
	if !h.simulationEnabled(w, r) {
		return
	}
	var req SimulateRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	props := h.simulator.SimulateCustom(r.Context(), req.Composition, req.Conditions)
	h.publish(r.Context(), events.TopicSimulation, events.SimulationCompleted{
		MaterialID: "custom",
		Properties: len(props),
	})
	respondSuccess(w, r, SimulationResponse{Properties: props})
}

// SimulateMaterial handles POST /api/v1/simulate/{id}, predicting the
// properties of a catalog material from its composition. Unlike the
// recommendation path, failures are reported to the client.
func (h *Handler) SimulateMaterial(w http.ResponseWriter, r *http.Request) {
	if !h.simulationEnabled(w, r) {
		return
	}
	id := chi.URLParam(r, "id")
	m, err := h.catalog.MaterialByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			respondNotFound(w, r, "Material not found", map[string]interface{}{"material_id": id})
			return
		}
		respondInternal(w, r, "Failed to load material", err)
		return
	}

	props, err := h.simulator.Predict(r.Context(), m)
	switch {
	case err == nil:
	case errors.Is(err, simulation.ErrRateLimited):
		respondError(w, r, http.StatusTooManyRequests, ErrCodeRateLimited, "Simulation rate limit exceeded", nil, nil)
		return
	case errors.Is(err, simulation.ErrBreakerOpen):
		respondError(w, r, http.StatusServiceUnavailable, ErrCodeUnavailable, "Simulation temporarily unavailable", nil, err)
		return
	case errors.Is(err, simulation.ErrNoComposition), errors.Is(err, simulation.ErrNoNeighbours):
		respondError(w, r, http.StatusUnprocessableEntity, ErrCodeUnprocessable, err.Error(),
			map[string]interface{}{"material_id": id}, nil)
		return
	default:
		respondInternal(w, r, "Simulation failed", err)
		return
	}

	h.publish(r.Context(), events.TopicSimulation, events.SimulationCompleted{
		MaterialID: m.ID,
		Properties: len(props),
	})
	respondSuccess(w, r, SimulationResponse{MaterialID: m.ID, Properties: props})
}
