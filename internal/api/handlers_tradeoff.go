// MatTailor - Material Recommendation and Trade-off Analysis Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mattailor

package api

import (
	"errors"
	"net/http"

	"github.com/tomtom215/mattailor/internal/events"
	"github.com/tomtom215/mattailor/internal/tradeoff"
)

// Tradeoff handles POST /api/v1/tradeoff.
func (h *Handler) Tradeoff(w http.ResponseWriter, r *http.Request) {
	var req TradeoffRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	analysis, err := h.analyzer.Analyze(r.Context(), req.MaterialIDs, req.Criteria, req.options())
	if err != nil {
		h.respondTradeoffError(w, r, err)
		return
	}

	ids := make([]string, len(analysis.Materials))
	for i, m := range analysis.Materials {
		ids[i] = m.MaterialID
	}
	h.publish(r.Context(), events.TopicTradeoff, events.TradeoffCompleted{
		AnalysisID:  analysis.AnalysisID,
		Materials:   ids,
		BestOverall: analysis.BestOverall,
		Method:      analysis.AnalysisMethod,
		Confidence:  analysis.ConfidenceScore,
	})
	respondSuccess(w, r, analysis)
}

// Sensitivity handles POST /api/v1/tradeoff/sensitivity.
func (h *Handler) Sensitivity(w http.ResponseWriter, r *http.Request) {
	var req TradeoffRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	result, err := h.analyzer.AnalyzeSensitivity(r.Context(), req.MaterialIDs, req.Criteria, req.options())
	if err != nil {
		h.respondTradeoffError(w, r, err)
		return
	}
	respondSuccess(w, r, result)
}

func (req *TradeoffRequest) options() tradeoff.Options {
	return tradeoff.Options{Weights: req.Weights, Method: req.Method}
}

func (h *Handler) respondTradeoffError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, tradeoff.ErrNoMaterials),
		errors.Is(err, tradeoff.ErrNoCriteria),
		errors.Is(err, tradeoff.ErrInvalidWeights),
		errors.Is(err, tradeoff.ErrUnknownMethod):
		respondError(w, r, http.StatusBadRequest, ErrCodeValidation, err.Error(), nil, nil)
	default:
		respondInternal(w, r, "Trade-off analysis failed", err)
	}
}
