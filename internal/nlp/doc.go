// MatTailor - Material Recommendation and Trade-off Analysis Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mattailor

// Package nlp turns free-text material queries into structured requirements.
//
// Extraction is rule based: unit patterns (MPa, °C, g/cm³, $ and €) bound
// numeric requirements, qualitative words imply defaults ("strong" means
// tensile strength of at least 500 MPa, "lightweight" a density of at most
// 3 g/cm³), and keyword lists select the application domain and material
// categories. Keyword tests are plain substring matches on the lowercased
// query.
//
// Processor.ProcessQuery never fails. When nothing is extracted, or the
// context is already done, the base query is returned unchanged.
package nlp
