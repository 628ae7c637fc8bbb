// MatTailor - Material Recommendation and Trade-off Analysis Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mattailor

package tradeoff

import (
	"context"
	"slices"

	"github.com/tomtom215/mattailor/internal/models"
)

// Sensitivity re-ranks an analysis once per criterion with that criterion's
// weight doubled and the weights renormalized.
//
// StabilityScore is the fraction of variations whose full ranking equals the
// base ranking. A criterion is critical when its variation changes the
// top-ranked material.
func Sensitivity(a *models.TradeoffAnalysis) (*models.SensitivityAnalysis, error) {
	if a == nil || len(a.Materials) == 0 {
		return nil, ErrNoMaterials
	}
	if len(a.Criteria) == 0 {
		return nil, ErrNoCriteria
	}

	names := make([]string, len(a.Criteria))
	base := make([]float64, len(a.Criteria))
	for i, c := range a.Criteria {
		names[i] = c.Name
		base[i] = c.Weight
	}

	baseRanking := make([]string, len(a.Materials))
	for i, m := range a.Materials {
		baseRanking[i] = m.MaterialID
	}

	out := &models.SensitivityAnalysis{
		BaseRanking:      baseRanking,
		WeightVariations: make(map[string][]string, len(names)),
		CriticalCriteria: []string{},
	}

	stable := 0
	for i, name := range names {
		varied := slices.Clone(base)
		varied[i] *= 2
		weights, err := normalizeWeights(names, weightMap(names, varied))
		if err != nil {
			return nil, err
		}

		rows := slices.Clone(a.Materials)
		rankRows(rows, names, weights)

		ranking := make([]string, len(rows))
		for j, r := range rows {
			ranking[j] = r.MaterialID
		}
		out.WeightVariations[name] = ranking

		if slices.Equal(ranking, baseRanking) {
			stable++
		}
		if ranking[0] != baseRanking[0] {
			out.CriticalCriteria = append(out.CriticalCriteria, name)
		}
	}
	out.StabilityScore = float64(stable) / float64(len(names))

	return out, nil
}

// AnalyzeSensitivity runs Analyze and then Sensitivity on its result.
func (a *Analyzer) AnalyzeSensitivity(ctx context.Context, materialIDs, criteria []string, opts Options) (*models.SensitivityAnalysis, error) {
	analysis, err := a.Analyze(ctx, materialIDs, criteria, opts)
	if err != nil {
		return nil, err
	}
	return Sensitivity(analysis)
}

func weightMap(names []string, weights []float64) map[string]float64 {
	m := make(map[string]float64, len(names))
	for i, n := range names {
		m[n] = weights[i]
	}
	return m
}
