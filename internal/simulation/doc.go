// MatTailor - Material Recommendation and Trade-off Analysis Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mattailor

// Package simulation estimates material properties the catalog does not
// record.
//
// The estimator is a nearest-neighbour blend: compositions are normalized
// to fractions, the overlap with every reference material is the sum of
// shared fractions, and each property is the overlap-weighted mean over the
// closest neighbours that report it. The confidence for a property is the
// summed overlap of contributing neighbours divided by the neighbour count,
// clamped to [0.1, 1].
//
// Results are deterministic for a given catalog. A rate.Limiter and a
// gobreaker circuit breaker guard every request; callers of the public
// Simulate methods see an empty map instead of an error.
package simulation
