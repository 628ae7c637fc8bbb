// MatTailor - Material Recommendation and Trade-off Analysis Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mattailor

// Package validation validates API request structs with go-playground/validator.
//
// A single validator instance is shared; it caches struct metadata and is
// safe for concurrent use. Errors report JSON field names, and two custom
// tags check the closed enums:
//
//	material_category   metal, polymer, ceramic, composite, semiconductor, biomaterial
//	application_domain  aerospace, automotive, ... marine
//
// Typical handler use:
//
//	q := models.NewMaterialQuery()
//	if err := decode(r, &q); err != nil { ... }
//	if verr := validation.ValidateStruct(&q); verr != nil {
//	    apiErr := verr.ToAPIError()
//	    respondError(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, apiErr.Details)
//	    return
//	}
package validation
