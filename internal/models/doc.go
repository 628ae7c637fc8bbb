// MatTailor - Material Recommendation and Trade-off Analysis Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mattailor

/*
Package models defines the data structures shared by every MatTailor package.

Key Components:

  - Material: catalog entry with ~25 optional physical, economic and
    environmental attributes (nil means unknown, never zero)
  - Supplier: read-only reference data linking vendors to material IDs
  - Requirements: sparse optional bounds over the material attribute space
  - MaterialQuery: Requirements plus result-shaping options
  - MaterialScore / RecommendationResult: scorer and recommender output
  - TradeoffAnalysis / SensitivityAnalysis: multi-criteria comparison output
  - APIResponse: standardized HTTP envelope

Closed Enums:

Category and ApplicationDomain are string types with a fixed value set.
ParseCategory and ParseDomain reject anything else with ErrUnknownCategory and
ErrUnknownDomain so that unknown values never reach the scorer.

Thread Safety:

Materials are immutable after the catalog loads. Use Material.Clone before
attaching derived data such as simulated properties.
*/
package models
