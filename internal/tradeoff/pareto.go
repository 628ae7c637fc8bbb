// MatTailor - Material Recommendation and Trade-off Analysis Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mattailor

package tradeoff

import "github.com/tomtom215/mattailor/internal/models"

// paretoFrontier returns the ids of rows no other row dominates, in rank
// order. oriented holds per-criterion values where higher is better and
// missing data is -Inf.
// O(n^2) dominance check; analyses compare a handful of materials.
func paretoFrontier(rows []models.MaterialComparison, oriented map[string][]float64) []string {
	out := make([]string, 0, len(rows))
	for i := range rows {
		dominated := false
		for j := range rows {
			if i == j {
				continue
			}
			if dominates(oriented[rows[j].MaterialID], oriented[rows[i].MaterialID]) {
				dominated = true
				break
			}
		}
		if !dominated {
			out = append(out, rows[i].MaterialID)
		}
	}
	return out
}

// dominates reports whether a is at least as good as b everywhere and
// strictly better somewhere.
func dominates(a, b []float64) bool {
	strictly := false
	for i := range a {
		if a[i] < b[i] {
			return false
		}
		if a[i] > b[i] {
			strictly = true
		}
	}
	return strictly
}
