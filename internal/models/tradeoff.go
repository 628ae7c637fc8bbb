// MatTailor - Material Recommendation and Trade-off Analysis Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mattailor

package models

import "time"

// Criterion directions.
const (
	DirectionMaximize = "maximize"
	DirectionMinimize = "minimize"
)

// Trade-off analysis methods.
const (
	MethodWeightedSum = "weighted_sum"
	MethodDominance   = "weighted_sum+dominance"
)

// TradeoffCriteria describes one comparison axis.
type TradeoffCriteria struct {
	Name      string  `json:"name"`
	Weight    float64 `json:"weight"`
	Direction string  `json:"direction"`
	Unit      *string `json:"unit"`
}

// MaterialComparison is one material's row in a TradeoffAnalysis.
type MaterialComparison struct {
	MaterialID       string             `json:"material_id"`
	MaterialName     string             `json:"material_name"`
	CriteriaValues   map[string]float64 `json:"criteria_values"`
	NormalizedScores map[string]float64 `json:"normalized_scores"`
	WeightedScore    float64            `json:"weighted_score"`
	Rank             int                `json:"rank"`
}

// TradeoffAnalysis is a ranked snapshot over a fixed material list and
// criterion list. It is rebuilt on every call.
type TradeoffAnalysis struct {
	AnalysisID string               `json:"analysis_id"`
	Materials  []MaterialComparison `json:"materials"`
	Criteria   []TradeoffCriteria   `json:"criteria"`

	BestOverall   string   `json:"best_overall"`
	ParetoOptimal []string `json:"pareto_optimal"`

	StrongestCorrelations map[string]float64 `json:"strongest_correlations"`
	RecommendationSummary string             `json:"recommendation_summary"`

	CreatedAt       time.Time `json:"created_at"`
	AnalysisMethod  string    `json:"analysis_method"`
	ConfidenceScore float64   `json:"confidence_score"`
}

// SensitivityAnalysis reports how stable a trade-off ranking is when
// individual criterion weights change.
type SensitivityAnalysis struct {
	BaseRanking      []string            `json:"base_ranking"`
	WeightVariations map[string][]string `json:"weight_variations"`
	StabilityScore   float64             `json:"stability_score"`
	CriticalCriteria []string            `json:"critical_criteria"`
}
