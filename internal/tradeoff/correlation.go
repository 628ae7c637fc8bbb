// MatTailor - Material Recommendation and Trade-off Analysis Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mattailor

package tradeoff

import (
	"math"

	"github.com/tomtom215/mattailor/internal/models"
)

// Correlations returns the Pearson coefficient of raw values for every
// unordered pair of criteria, keyed "a_vs_b" in criteria order. Pairs whose
// coefficient is undefined report 0. Fewer than two rows yield an empty map.
func Correlations(rows []models.MaterialComparison, names []string) map[string]float64 {
	out := make(map[string]float64)
	if len(rows) < 2 {
		return out
	}

	series := make([][]float64, len(names))
	for i, n := range names {
		series[i] = make([]float64, len(rows))
		for j, r := range rows {
			series[i][j] = r.CriteriaValues[n]
		}
	}

	for i := 0; i < len(names); i++ {
		for j := i + 1; j < len(names); j++ {
			out[names[i]+"_vs_"+names[j]] = Pearson(series[i], series[j])
		}
	}
	return out
}

// Pearson returns the correlation coefficient of x and y, or 0 when it is
// undefined (mismatched lengths, fewer than two points, a constant series).
func Pearson(x, y []float64) float64 {
	n := len(x)
	if n < 2 || n != len(y) {
		return 0
	}

	var mx, my float64
	for i := range x {
		mx += x[i]
		my += y[i]
	}
	mx /= float64(n)
	my /= float64(n)

	var cov, vx, vy float64
	for i := range x {
		dx, dy := x[i]-mx, y[i]-my
		cov += dx * dy
		vx += dx * dx
		vy += dy * dy
	}
	if vx == 0 || vy == 0 {
		return 0
	}
	r := cov / math.Sqrt(vx*vy)
	if math.IsNaN(r) || math.IsInf(r, 0) {
		return 0
	}
	return math.Max(-1, math.Min(1, r))
}
