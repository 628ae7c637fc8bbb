// MatTailor - Material Recommendation and Trade-off Analysis Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mattailor

package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/tomtom215/mattailor/internal/events"
	"github.com/tomtom215/mattailor/internal/models"
)

// topMaterialsInEvent caps the ids carried by a recommendation event.
const topMaterialsInEvent = 5

// Recommend handles POST /api/v1/recommend. Omitted fields take the
// MaterialQuery defaults.
func (h *Handler) Recommend(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	query := models.NewMaterialQuery()
	if !decodeJSON(w, r, &query) {
		return
	}

	result, outcome, err := h.recommender.RecommendWithOutcome(r.Context(), query)
	if err != nil {
		if errors.Is(err, models.ErrUnknownCategory) || errors.Is(err, models.ErrUnknownDomain) {
			respondError(w, r, http.StatusBadRequest, ErrCodeValidation, err.Error(), nil, nil)
			return
		}
		respondInternal(w, r, "Recommendation failed", err)
		return
	}

	meta := models.Metadata{Cached: outcome.Cached}
	if !outcome.Cached {
		meta.QueryTimeMS = time.Since(start).Milliseconds()
	}

	top := make([]string, 0, topMaterialsInEvent)
	for i, m := range result.Materials {
		if i == topMaterialsInEvent {
			break
		}
		top = append(top, m.ID)
	}
	h.publish(r.Context(), events.TopicRecommendation, events.RecommendationCompleted{
		Fingerprint:      outcome.Fingerprint,
		Cached:           outcome.Cached,
		Results:          result.TotalResults,
		TopMaterials:     top,
		ProcessingTimeMS: result.ProcessingTimeMS,
		NLPUsed:          outcome.Enhanced,
	})

	respondSuccessWithMeta(w, r, http.StatusOK, result, meta)
}

// Parse handles POST /api/v1/parse, returning what the NLP processor
// extracts from free text without running a recommendation.
func (h *Handler) Parse(w http.ResponseWriter, r *http.Request) {
	if !h.cfg.Features.EnableNLPProcessing || h.nlp == nil {
		respondFeatureDisabled(w, r, "nlp_processing")
		return
	}
	var req ParseRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	extraction, err := h.nlp.Parse(req.Query)
	if err != nil {
		respondError(w, r, http.StatusBadRequest, ErrCodeInvalidRequest, err.Error(), nil, nil)
		return
	}
	respondSuccess(w, r, extraction)
}
