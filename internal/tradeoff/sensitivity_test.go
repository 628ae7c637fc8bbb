// MatTailor - Material Recommendation and Trade-off Analysis Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mattailor

package tradeoff

import (
	"errors"
	"math"
	"slices"
	"testing"

	"github.com/tomtom215/mattailor/internal/models"
)

func twoMaterialAnalysis() *models.TradeoffAnalysis {
	return &models.TradeoffAnalysis{
		Materials: []models.MaterialComparison{
			{MaterialID: "a", NormalizedScores: map[string]float64{"x": 1.0, "y": 0.0}, WeightedScore: 0.5, Rank: 1},
			{MaterialID: "b", NormalizedScores: map[string]float64{"x": 0.3, "y": 0.6}, WeightedScore: 0.45, Rank: 2},
		},
		Criteria: []models.TradeoffCriteria{
			{Name: "x", Weight: 0.5},
			{Name: "y", Weight: 0.5},
		},
	}
}

func TestSensitivity(t *testing.T) {
	t.Parallel()
	base := twoMaterialAnalysis()

	s, err := Sensitivity(base)
	if err != nil {
		t.Fatalf("Sensitivity() error = %v", err)
	}
	if !slices.Equal(s.BaseRanking, []string{"a", "b"}) {
		t.Errorf("BaseRanking = %v", s.BaseRanking)
	}
	if !slices.Equal(s.WeightVariations["x"], []string{"a", "b"}) {
		t.Errorf("x variation = %v, want [a b]", s.WeightVariations["x"])
	}
	if !slices.Equal(s.WeightVariations["y"], []string{"b", "a"}) {
		t.Errorf("y variation = %v, want [b a]", s.WeightVariations["y"])
	}
	if math.Abs(s.StabilityScore-0.5) > 1e-9 {
		t.Errorf("StabilityScore = %v, want 0.5", s.StabilityScore)
	}
	if !slices.Equal(s.CriticalCriteria, []string{"y"}) {
		t.Errorf("CriticalCriteria = %v, want [y]", s.CriticalCriteria)
	}

	// The input analysis is left untouched.
	if base.Materials[0].MaterialID != "a" || base.Materials[0].WeightedScore != 0.5 {
		t.Errorf("input analysis was modified: %+v", base.Materials[0])
	}
}

func TestSensitivity_Errors(t *testing.T) {
	t.Parallel()
	if _, err := Sensitivity(nil); !errors.Is(err, ErrNoMaterials) {
		t.Errorf("Sensitivity(nil) error = %v", err)
	}
	a := twoMaterialAnalysis()
	a.Criteria = nil
	if _, err := Sensitivity(a); !errors.Is(err, ErrNoCriteria) {
		t.Errorf("Sensitivity(no criteria) error = %v", err)
	}
}

func TestAnalyzeSensitivity(t *testing.T) {
	t.Parallel()
	a := newAnalyzer(t)

	s, err := a.AnalyzeSensitivity(t.Context(), []string{"steel_316l", "peek"}, []string{"tensile_strength", "cost"}, Options{})
	if err != nil {
		t.Fatalf("AnalyzeSensitivity() error = %v", err)
	}
	if len(s.WeightVariations) != 2 {
		t.Errorf("len(WeightVariations) = %d, want 2", len(s.WeightVariations))
	}
	if s.StabilityScore < 0 || s.StabilityScore > 1 {
		t.Errorf("StabilityScore = %v", s.StabilityScore)
	}
}

func TestPearson(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		x, y []float64
		want float64
	}{
		{"perfect positive", []float64{1, 2, 3}, []float64{2, 4, 6}, 1},
		{"perfect negative", []float64{1, 2, 3}, []float64{3, 2, 1}, -1},
		{"constant", []float64{1, 1, 1}, []float64{1, 2, 3}, 0},
		{"single point", []float64{1}, []float64{1}, 0},
		{"length mismatch", []float64{1, 2}, []float64{1}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := Pearson(tt.x, tt.y); math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("Pearson() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestParetoFrontier(t *testing.T) {
	t.Parallel()
	rows := []models.MaterialComparison{{MaterialID: "a"}, {MaterialID: "b"}, {MaterialID: "c"}, {MaterialID: "d"}}
	oriented := map[string][]float64{
		"a": {3, 1},
		"b": {1, 3},
		"c": {1, 1},
		"d": {3, 1},
	}
	// c is dominated; a and d are equal and do not dominate each other.
	got := paretoFrontier(rows, oriented)
	if !slices.Equal(got, []string{"a", "b", "d"}) {
		t.Errorf("paretoFrontier() = %v, want [a b d]", got)
	}
}
