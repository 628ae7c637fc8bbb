// MatTailor - Material Recommendation and Trade-off Analysis Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mattailor

// Package tradeoff compares a fixed list of materials across named criteria.
//
// Criterion names are free-form. Exact attribute names ("cost_per_kg") are
// used as-is and loose names ("cost", "weight", "yield strength") resolve by
// keyword. Unresolvable criteria and unknown material ids contribute zero.
//
// Raw values are normalized as value/100 clamped to [0,1] whatever the
// criterion direction, and the weighted score is the weight-averaged
// normalized value. Weights default to equal.
//
// Two Pareto modes exist:
//
//   - models.MethodWeightedSum reports the top three ranked materials
//   - models.MethodDominance reports the non-dominated set, using each
//     criterion's direction (cost, density and lead time are minimized)
//
// Sensitivity re-ranks an analysis with each weight doubled in turn.
package tradeoff
