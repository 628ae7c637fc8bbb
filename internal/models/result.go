// MatTailor - Material Recommendation and Trade-off Analysis Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mattailor

package models

// MaterialScore is the evaluation of one material against one requirements set.
// Every value lies in [0,1]. The four match components are diagnostic only and
// do not enter OverallScore.
type MaterialScore struct {
	PerformanceScore    float64 `json:"performance_score"`
	CostScore           float64 `json:"cost_score"`
	SustainabilityScore float64 `json:"sustainability_score"`
	AvailabilityScore   float64 `json:"availability_score"`
	OverallScore        float64 `json:"overall_score"`

	MechanicalMatch    float64 `json:"mechanical_match"`
	ThermalMatch       float64 `json:"thermal_match"`
	ElectricalMatch    float64 `json:"electrical_match"`
	EnvironmentalMatch float64 `json:"environmental_match"`
}

// QuerySummary is the human-readable digest of a MaterialQuery.
type QuerySummary struct {
	ApplicationDomain *ApplicationDomain `json:"application_domain"`
	KeyRequirements   []string           `json:"key_requirements"`
	Constraints       []string           `json:"constraints"`
	Preferences       []string           `json:"preferences"`
}

// RecommendationResult is the ranked answer to a MaterialQuery. Materials and
// Scores are parallel slices ordered best first.
type RecommendationResult struct {
	Materials        []*Material     `json:"materials"`
	Scores           []MaterialScore `json:"scores"`
	QuerySummary     QuerySummary    `json:"query_summary"`
	TotalResults     int             `json:"total_results"`
	ProcessingTimeMS float64         `json:"processing_time_ms"`

	BestPerformance   *string `json:"best_performance"`
	MostCostEffective *string `json:"most_cost_effective"`
	MostSustainable   *string `json:"most_sustainable"`

	ConfidenceLevel  float64 `json:"confidence_level"`
	DataCompleteness float64 `json:"data_completeness"`
	SimulationUsed   bool    `json:"simulation_used"`
}
