// MatTailor - Material Recommendation and Trade-off Analysis Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mattailor

package api

import (
	"errors"
	"net/http"
	"sort"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/mattailor/internal/catalog"
	"github.com/tomtom215/mattailor/internal/models"
)

const (
	defaultPageSize = 50
	maxPageSize     = 200
)

// reserved query parameters of the list endpoint; every other key is a
// catalog filter such as density__lte=3.
var listParams = map[string]bool{"category": true, "offset": true, "limit": true}

// parseCategoryParam returns nil for an absent category and writes a
// validation error for an unknown one.
func parseCategoryParam(w http.ResponseWriter, r *http.Request) (*models.Category, bool) {
	raw := getStringParam(r, "category")
	if raw == nil {
		return nil, true
	}
	c, err := models.ParseCategory(*raw)
	if err != nil {
		respondError(w, r, http.StatusBadRequest, ErrCodeValidation, err.Error(),
			map[string]interface{}{"field": "category"}, nil)
		return nil, false
	}
	return &c, true
}

// ListMaterials handles GET /api/v1/materials.
func (h *Handler) ListMaterials(w http.ResponseWriter, r *http.Request) {
	category, ok := parseCategoryParam(w, r)
	if !ok {
		return
	}
	offset := getIntParam(r, "offset", 0)
	if offset < 0 {
		offset = 0
	}
	limit := getIntParam(r, "limit", defaultPageSize)
	if limit < 1 || limit > maxPageSize {
		limit = defaultPageSize
	}

	filters, err := queryFilters(r)
	if err != nil {
		respondError(w, r, http.StatusBadRequest, ErrCodeValidation, err.Error(), nil, nil)
		return
	}

	var (
		page  []*models.Material
		total int
	)
	if len(filters) == 0 {
		page, total, err = h.catalog.ListMaterials(r.Context(), category, offset, limit)
	} else {
		if category != nil {
			filters = append(filters, catalog.Eq(catalog.FieldCategory, string(*category)))
		}
		page, total, err = h.filteredPage(r, filters, offset, limit)
	}
	if err != nil {
		respondInternal(w, r, "Failed to list materials", err)
		return
	}

	respondSuccess(w, r, MaterialListResponse{
		Materials: page,
		Total:     total,
		Offset:    offset,
		Limit:     limit,
	})
}

func (h *Handler) filteredPage(r *http.Request, filters []catalog.Filter, offset, limit int) ([]*models.Material, int, error) {
	all, err := h.catalog.QueryMaterials(r.Context(), filters...)
	if err != nil {
		return nil, 0, err
	}
	total := len(all)
	if offset >= total {
		return []*models.Material{}, total, nil
	}
	end := min(offset+limit, total)
	return all[offset:end], total, nil
}

// queryFilters turns non-reserved query parameters into catalog filters.
// Keys are sorted so error messages are stable.
func queryFilters(r *http.Request) ([]catalog.Filter, error) {
	q := r.URL.Query()
	keys := make([]string, 0, len(q))
	for k := range q {
		if !listParams[k] {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)

	filters := make([]catalog.Filter, 0, len(keys))
	for _, k := range keys {
		flt, err := catalog.ParseFilter(k, q.Get(k))
		if err != nil {
			return nil, err
		}
		filters = append(filters, flt)
	}
	return filters, nil
}

// SearchMaterials handles GET /api/v1/materials/search?q=...
func (h *Handler) SearchMaterials(w http.ResponseWriter, r *http.Request) {
	q := getStringParam(r, "q")
	if q == nil {
		respondError(w, r, http.StatusBadRequest, ErrCodeValidation, "q is required",
			map[string]interface{}{"field": "q"}, nil)
		return
	}
	category, ok := parseCategoryParam(w, r)
	if !ok {
		return
	}
	limit := getIntParam(r, "limit", catalog.DefaultSearchLimit)
	if limit < 1 || limit > maxPageSize {
		limit = catalog.DefaultSearchLimit
	}

	results, err := h.recommender.Search(r.Context(), *q, category, limit)
	if err != nil {
		respondInternal(w, r, "Search failed", err)
		return
	}
	respondSuccess(w, r, results)
}

// SuggestMaterials handles GET /api/v1/materials/suggest: name autocomplete
// over q, capped by limit.
func (h *Handler) SuggestMaterials(w http.ResponseWriter, r *http.Request) {
	prefix := getStringParam(r, "q")
	if prefix == nil {
		respondError(w, r, http.StatusBadRequest, ErrCodeValidation, "q is required",
			map[string]interface{}{"field": "q"}, nil)
		return
	}
	limit := getIntParam(r, "limit", catalog.DefaultSuggestLimit)
	if limit < 1 || limit > maxPageSize {
		limit = catalog.DefaultSuggestLimit
	}

	suggestions, err := h.catalog.Suggest(r.Context(), *prefix, limit)
	if err != nil {
		respondInternal(w, r, "Suggest failed", err)
		return
	}
	respondSuccess(w, r, suggestions)
}

// GetMaterial handles GET /api/v1/materials/{id}.
func (h *Handler) GetMaterial(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	m, err := h.recommender.MaterialByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			respondNotFound(w, r, "Material not found", map[string]interface{}{"material_id": id})
			return
		}
		respondInternal(w, r, "Failed to load material", err)
		return
	}
	respondSuccess(w, r, m)
}

// Alternatives handles POST /api/v1/materials/{id}/alternatives. An unknown
// material yields an empty list, not 404.
func (h *Handler) Alternatives(w http.ResponseWriter, r *http.Request) {
	var req AlternativesRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	alts, err := h.recommender.FindAlternatives(r.Context(), chi.URLParam(r, "id"), req.Requirements)
	if err != nil {
		respondInternal(w, r, "Failed to find alternatives", err)
		return
	}
	respondSuccess(w, r, alts)
}

// Suppliers handles GET /api/v1/materials/{id}/suppliers with optional
// region and max_minimum_order parameters.
func (h *Handler) Suppliers(w http.ResponseWriter, r *http.Request) {
	suppliers, err := h.recommender.Suppliers(r.Context(), chi.URLParam(r, "id"),
		getStringParam(r, "region"), getFloatParam(r, "max_minimum_order"))
	if err != nil {
		respondInternal(w, r, "Failed to find suppliers", err)
		return
	}
	respondSuccess(w, r, suppliers)
}
