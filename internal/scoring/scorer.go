// MatTailor - Material Recommendation and Trade-off Analysis Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mattailor

package scoring

import (
	"errors"
	"fmt"
	"math"

	"github.com/rs/zerolog"

	"github.com/tomtom215/mattailor/internal/logging"
	"github.com/tomtom215/mattailor/internal/metrics"
	"github.com/tomtom215/mattailor/internal/models"
)

var (
	// ErrNilMaterial is returned when Score is called without a material.
	ErrNilMaterial = errors.New("nil material")

	// ErrNonFinite is returned when a sub-score evaluates to NaN or Inf,
	// typically from a zero or negative bound.
	ErrNonFinite = errors.New("non-finite score")
)

// Fixed engine weights for the overall score.
const (
	WeightPerformance    = 0.4
	WeightCost           = 0.25
	WeightSustainability = 0.2
	WeightAvailability   = 0.15
)

// Reference points for unbounded scoring.
const (
	referenceCostPerKg     = 100.0
	referenceLeadTimeDays  = 60.0
	thermalSafetyMargin    = 100.0
	neutralScore           = 0.5
	minOperatingTempScore  = 0.8
	degradedDimensionScore = 0.1
)

// Degraded is returned in place of a score that could not be computed.
var Degraded = models.MaterialScore{
	PerformanceScore:    degradedDimensionScore,
	CostScore:           degradedDimensionScore,
	SustainabilityScore: degradedDimensionScore,
	AvailabilityScore:   degradedDimensionScore,
	OverallScore:        degradedDimensionScore,
}

// Scorer evaluates materials against requirements. It holds no mutable
// state and is safe for concurrent use.
type Scorer struct {
	logger zerolog.Logger
}

// NewScorer creates a Scorer.
func NewScorer() *Scorer {
	return &Scorer{logger: logging.WithComponent("scoring")}
}

// Score computes the full MaterialScore for m against r. Missing data never
// produces an error; only arithmetic failures do.
func (s *Scorer) Score(m *models.Material, r *models.Requirements) (models.MaterialScore, error) {
	if m == nil {
		return models.MaterialScore{}, ErrNilMaterial
	}
	if r == nil {
		r = &models.Requirements{}
	}

	mech := mechanicalMatch(m, r)
	thermal := thermalMatch(m, r)
	elec := electricalMatch(m, r)
	env := environmentalMatch(m, r)

	score := models.MaterialScore{
		PerformanceScore:    performanceScore(mech, thermal, elec),
		CostScore:           costScore(m, r),
		SustainabilityScore: sustainabilityScore(m, r),
		AvailabilityScore:   availabilityScore(m, r),
		MechanicalMatch:     mech,
		ThermalMatch:        thermal,
		ElectricalMatch:     elec,
		EnvironmentalMatch:  env,
	}

	for name, v := range map[string]float64{
		"performance":    score.PerformanceScore,
		"cost":           score.CostScore,
		"sustainability": score.SustainabilityScore,
		"availability":   score.AvailabilityScore,
		"mechanical":     mech,
		"thermal":        thermal,
		"electrical":     elec,
		"environmental":  env,
	} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return models.MaterialScore{}, fmt.Errorf("%w: %s score for %s", ErrNonFinite, name, m.ID)
		}
	}

	score.PerformanceScore = clamp01(score.PerformanceScore)
	score.CostScore = clamp01(score.CostScore)
	score.SustainabilityScore = clamp01(score.SustainabilityScore)
	score.AvailabilityScore = clamp01(score.AvailabilityScore)
	score.MechanicalMatch = clamp01(score.MechanicalMatch)
	score.ThermalMatch = clamp01(score.ThermalMatch)
	score.ElectricalMatch = clamp01(score.ElectricalMatch)
	score.EnvironmentalMatch = clamp01(score.EnvironmentalMatch)

	score.OverallScore = clamp01(
		score.PerformanceScore*WeightPerformance +
			score.CostScore*WeightCost +
			score.SustainabilityScore*WeightSustainability +
			score.AvailabilityScore*WeightAvailability,
	)

	return score, nil
}

// ScoreOrDegraded returns Score's result, or the Degraded sentinel when
// scoring fails. The failure is logged and counted.
func (s *Scorer) ScoreOrDegraded(m *models.Material, r *models.Requirements) models.MaterialScore {
	score, err := s.Score(m, r)
	if err != nil {
		id := ""
		if m != nil {
			id = m.ID
		}
		s.logger.Error().Err(err).Str("material_id", id).Msg("Scoring failed, using degraded score")
		metrics.RecordScoringFailure()
		return Degraded
	}
	return score
}

// truthy reports whether p is set and non-zero. Zero bounds and zero
// material values are treated as absent throughout the scorer.
func truthy(p *float64) bool {
	return p != nil && *p != 0
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}

func mean(vals []float64) float64 {
	sum := 0.0
	for _, v := range vals {
		sum += v
	}
	return sum / float64(len(vals))
}

func performanceScore(components ...float64) float64 {
	var valid []float64
	for _, c := range components {
		if c > 0 {
			valid = append(valid, c)
		}
	}
	if len(valid) == 0 {
		return neutralScore
	}
	return mean(valid)
}

func costScore(m *models.Material, r *models.Requirements) float64 {
	if !truthy(m.CostPerKg) {
		return neutralScore
	}
	cost := *m.CostPerKg

	if truthy(r.MaxCostPerKg) {
		bound := *r.MaxCostPerKg
		if cost <= bound {
			return math.Max(0.2, 1.0-(cost/bound)*0.8)
		}
		return math.Max(0.1, bound/cost)
	}
	return math.Max(0.3, 1.0-math.Min(1.0, cost/referenceCostPerKg)*0.7)
}

func sustainabilityScore(m *models.Material, r *models.Requirements) float64 {
	var scores []float64

	if truthy(m.SustainabilityScore) {
		scores = append(scores, *m.SustainabilityScore/10.0)
	}
	if truthy(m.Recyclability) {
		scores = append(scores, *m.Recyclability/10.0)
	}
	if truthy(m.CarbonFootprint) {
		// 1 kg CO2/kg is good, 10 is poor.
		scores = append(scores, math.Max(0.1, 1.0-(*m.CarbonFootprint-1.0)/9.0))
	}
	if truthy(r.MinSustainabilityScore) && truthy(m.SustainabilityScore) {
		if *m.SustainabilityScore >= *r.MinSustainabilityScore {
			scores = append(scores, 1.0)
		} else {
			scores = append(scores, 0.3)
		}
	}

	if len(scores) == 0 {
		return neutralScore
	}
	return mean(scores)
}

func availabilityScore(m *models.Material, r *models.Requirements) float64 {
	var scores []float64

	if truthy(m.AvailabilityScore) {
		scores = append(scores, *m.AvailabilityScore/10.0)
	}
	if m.LeadTimeDays != nil && *m.LeadTimeDays != 0 {
		lead := float64(*m.LeadTimeDays)
		if r.MaxLeadTimeDays != nil && *r.MaxLeadTimeDays != 0 {
			bound := float64(*r.MaxLeadTimeDays)
			if lead <= bound {
				scores = append(scores, 1.0-(lead/bound)*0.5)
			} else {
				scores = append(scores, 0.2)
			}
		} else {
			scores = append(scores, math.Max(0.3, 1.0-(lead/referenceLeadTimeDays)*0.6))
		}
	}
	if truthy(m.ManufacturingComplexity) {
		scores = append(scores, 1.0-(*m.ManufacturingComplexity/10.0)*0.4)
	}

	if len(scores) == 0 {
		return neutralScore
	}
	return mean(scores)
}

// rangeCheck appends the property range score when the material value is
// known and at least one bound is set.
func rangeCheck(scores []float64, value, lo, hi *float64) []float64 {
	if truthy(value) && (truthy(lo) || truthy(hi)) {
		return append(scores, PropertyRangeScore(*value, lo, hi))
	}
	return scores
}

func mechanicalMatch(m *models.Material, r *models.Requirements) float64 {
	var scores []float64
	scores = rangeCheck(scores, m.TensileStrength, r.MinTensileStrength, r.MaxTensileStrength)
	scores = rangeCheck(scores, m.YieldStrength, r.MinYieldStrength, r.MaxYieldStrength)
	scores = rangeCheck(scores, m.Density, r.MinDensity, r.MaxDensity)
	scores = rangeCheck(scores, m.ElasticModulus, r.MinElasticModulus, r.MaxElasticModulus)
	if len(scores) == 0 {
		return 0
	}
	return mean(scores)
}

func thermalMatch(m *models.Material, r *models.Requirements) float64 {
	var scores []float64

	if truthy(m.MeltingPoint) && (truthy(r.MinOperatingTemp) || truthy(r.MaxOperatingTemp)) {
		if truthy(r.MaxOperatingTemp) {
			scores = append(scores, MeltingMarginScore(*m.MeltingPoint, *r.MaxOperatingTemp))
		}
		if truthy(r.MinOperatingTemp) {
			// Low-temperature failure is not modelled.
			scores = append(scores, minOperatingTempScore)
		}
	}
	scores = rangeCheck(scores, m.ThermalConductivity, r.MinThermalConductivity, r.MaxThermalConductivity)

	if len(scores) == 0 {
		return 0
	}
	return mean(scores)
}

func electricalMatch(m *models.Material, r *models.Requirements) float64 {
	var scores []float64
	scores = rangeCheck(scores, m.ElectricalConductivity, r.MinElectricalConductivity, r.MaxElectricalConductivity)
	scores = rangeCheck(scores, m.DielectricConstant, r.MinDielectricConstant, r.MaxDielectricConstant)
	if len(scores) == 0 {
		return 0
	}
	return mean(scores)
}

func environmentalMatch(m *models.Material, r *models.Requirements) float64 {
	var scores []float64

	if truthy(m.CorrosionResistance) && truthy(r.MinCorrosionResistance) {
		scores = append(scores, CorrosionScore(*m.CorrosionResistance, *r.MinCorrosionResistance))
	}
	if truthy(m.ChemicalStability) {
		scores = append(scores, *m.ChemicalStability/10.0)
	}

	if len(scores) == 0 {
		return 0
	}
	return mean(scores)
}

// PropertyRangeScore scores value against optional bounds: 1.0 inside the
// range, a ratio floored at 0.1 outside it, 0.5 with no bounds.
func PropertyRangeScore(value float64, lo, hi *float64) float64 {
	switch {
	case lo != nil && hi != nil:
		switch {
		case value >= *lo && value <= *hi:
			return 1.0
		case value < *lo:
			return math.Max(0.1, value / *lo)
		default:
			return math.Max(0.1, *hi/value)
		}
	case lo != nil:
		if value >= *lo {
			return 1.0
		}
		return math.Max(0.1, value / *lo)
	case hi != nil:
		if value <= *hi {
			return 1.0
		}
		return math.Max(0.1, *hi/value)
	default:
		return neutralScore
	}
}

// MeltingMarginScore applies the thermal safety margin: 1.0 when the melting
// point clears the maximum operating temperature by the margin, 0.7 when it
// clears it without the margin, 0.1 otherwise.
func MeltingMarginScore(meltingPoint, maxOperatingTemp float64) float64 {
	switch {
	case meltingPoint >= maxOperatingTemp+thermalSafetyMargin:
		return 1.0
	case meltingPoint >= maxOperatingTemp:
		return 0.7
	default:
		return 0.1
	}
}

// CorrosionScore is 1.0 at or above the required rating, otherwise the
// linear ratio floored at 0.1.
func CorrosionScore(rating, minRequired float64) float64 {
	if rating >= minRequired {
		return 1.0
	}
	return math.Max(0.1, rating/minRequired)
}
