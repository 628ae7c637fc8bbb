// MatTailor - Material Recommendation and Trade-off Analysis Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mattailor

// Package recommend orchestrates material recommendation.
//
// # Pipeline
//
// A call to Recommender.Recommend runs these steps:
//
//  1. Optional natural language enhancement through a QueryEnhancer
//  2. Fingerprint of the enhanced query and a ResultCache lookup
//  3. Translation of requirements into catalog filters (BuildFilters)
//  4. Parallel scoring of every candidate, bounded by Config.Workers and
//     Config.Timeout
//  5. Threshold, stable descending sort, truncation to max_results
//  6. Summary metadata: best performer, most cost effective, most
//     sustainable, confidence and data completeness
//  7. Optional simulated properties on copies of the final materials
//
// Ties keep catalog order, so a fixed catalog always yields the same ranking.
// TotalResults counts every candidate above the threshold, before truncation.
//
// # Filter Translation
//
// Only tensile strength, density, operating temperature, cost,
// sustainability and lead time become hard filters; every other bound only
// affects scoring. Both operating temperature bounds become a lower bound on
// melting point (min+50, max+100), and the max bound takes precedence.
// Absent catalog values never fail a filter.
//
// # Usage
//
//	cat, _ := catalog.LoadDefault()
//	rec, err := recommend.New(nil, cat, scoring.NewScorer(),
//	    cache.NewMemoryCache(cache.DefaultCapacity, time.Hour), logging.Logger())
//	if err != nil {
//	    return err
//	}
//	result, err := rec.Recommend(ctx, query)
package recommend
