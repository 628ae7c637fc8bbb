// MatTailor - Material Recommendation and Trade-off Analysis Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mattailor

package models

import "fmt"

// Requirements is a sparse set of optional bounds over the material attribute
// space. A nil bound is unconstrained, not zero.
type Requirements struct {
	// Mechanical
	MinTensileStrength *float64 `json:"min_tensile_strength,omitempty" validate:"omitempty,gte=0"`
	MaxTensileStrength *float64 `json:"max_tensile_strength,omitempty" validate:"omitempty,gte=0"`
	MinYieldStrength   *float64 `json:"min_yield_strength,omitempty" validate:"omitempty,gte=0"`
	MaxYieldStrength   *float64 `json:"max_yield_strength,omitempty" validate:"omitempty,gte=0"`
	MinElasticModulus  *float64 `json:"min_elastic_modulus,omitempty" validate:"omitempty,gte=0"`
	MaxElasticModulus  *float64 `json:"max_elastic_modulus,omitempty" validate:"omitempty,gte=0"`
	MinHardness        *float64 `json:"min_hardness,omitempty" validate:"omitempty,gte=0"`
	MaxHardness        *float64 `json:"max_hardness,omitempty" validate:"omitempty,gte=0"`
	MinDensity         *float64 `json:"min_density,omitempty" validate:"omitempty,gte=0"`
	MaxDensity         *float64 `json:"max_density,omitempty" validate:"omitempty,gte=0"`

	// Thermal, °C. Operating temperatures may be negative.
	MinOperatingTemp       *float64 `json:"min_operating_temp,omitempty"`
	MaxOperatingTemp       *float64 `json:"max_operating_temp,omitempty"`
	MinThermalConductivity *float64 `json:"min_thermal_conductivity,omitempty" validate:"omitempty,gte=0"`
	MaxThermalConductivity *float64 `json:"max_thermal_conductivity,omitempty" validate:"omitempty,gte=0"`

	// Electrical
	MinElectricalConductivity *float64 `json:"min_electrical_conductivity,omitempty" validate:"omitempty,gte=0"`
	MaxElectricalConductivity *float64 `json:"max_electrical_conductivity,omitempty" validate:"omitempty,gte=0"`
	MinDielectricConstant     *float64 `json:"min_dielectric_constant,omitempty" validate:"omitempty,gte=0"`
	MaxDielectricConstant     *float64 `json:"max_dielectric_constant,omitempty" validate:"omitempty,gte=0"`

	// Environment
	MinCorrosionResistance *float64    `json:"min_corrosion_resistance,omitempty" validate:"omitempty,gte=0,lte=10"`
	TemperatureRange       *[2]float64 `json:"temperature_range,omitempty"`
	HumidityExposure       *bool       `json:"humidity_exposure,omitempty"`
	UVExposure             *bool       `json:"uv_exposure,omitempty"`

	// Economic
	MaxCostPerKg   *float64 `json:"max_cost_per_kg,omitempty" validate:"omitempty,gte=0"`
	BudgetTotal    *float64 `json:"budget_total,omitempty" validate:"omitempty,gte=0"`
	QuantityNeeded *float64 `json:"quantity_needed,omitempty" validate:"omitempty,gte=0"`

	// Sustainability
	MinSustainabilityScore *float64 `json:"min_sustainability_score,omitempty" validate:"omitempty,gte=0,lte=10"`
	MinRecyclability       *float64 `json:"min_recyclability,omitempty" validate:"omitempty,gte=0,lte=10"`
	MaxCarbonFootprint     *float64 `json:"max_carbon_footprint,omitempty" validate:"omitempty,gte=0"`

	// Availability
	MaxLeadTimeDays      *int     `json:"max_lead_time_days,omitempty" validate:"omitempty,gte=0"`
	MinAvailabilityScore *float64 `json:"min_availability_score,omitempty" validate:"omitempty,gte=0,lte=10"`
	PreferredSuppliers   []string `json:"preferred_suppliers,omitempty"`
	GeographicRegion     *string  `json:"geographic_region,omitempty"`
}

// Merge returns a copy of r where every non-nil field of override replaces
// the corresponding field of r.
//
//nolint:gocyclo // one branch per field
func (r Requirements) Merge(override Requirements) Requirements {
	out := r
	setF := func(dst **float64, src *float64) {
		if src != nil {
			v := *src
			*dst = &v
		}
	}
	setF(&out.MinTensileStrength, override.MinTensileStrength)
	setF(&out.MaxTensileStrength, override.MaxTensileStrength)
	setF(&out.MinYieldStrength, override.MinYieldStrength)
	setF(&out.MaxYieldStrength, override.MaxYieldStrength)
	setF(&out.MinElasticModulus, override.MinElasticModulus)
	setF(&out.MaxElasticModulus, override.MaxElasticModulus)
	setF(&out.MinHardness, override.MinHardness)
	setF(&out.MaxHardness, override.MaxHardness)
	setF(&out.MinDensity, override.MinDensity)
	setF(&out.MaxDensity, override.MaxDensity)
	setF(&out.MinOperatingTemp, override.MinOperatingTemp)
	setF(&out.MaxOperatingTemp, override.MaxOperatingTemp)
	setF(&out.MinThermalConductivity, override.MinThermalConductivity)
	setF(&out.MaxThermalConductivity, override.MaxThermalConductivity)
	setF(&out.MinElectricalConductivity, override.MinElectricalConductivity)
	setF(&out.MaxElectricalConductivity, override.MaxElectricalConductivity)
	setF(&out.MinDielectricConstant, override.MinDielectricConstant)
	setF(&out.MaxDielectricConstant, override.MaxDielectricConstant)
	setF(&out.MinCorrosionResistance, override.MinCorrosionResistance)
	setF(&out.MaxCostPerKg, override.MaxCostPerKg)
	setF(&out.BudgetTotal, override.BudgetTotal)
	setF(&out.QuantityNeeded, override.QuantityNeeded)
	setF(&out.MinSustainabilityScore, override.MinSustainabilityScore)
	setF(&out.MinRecyclability, override.MinRecyclability)
	setF(&out.MaxCarbonFootprint, override.MaxCarbonFootprint)
	setF(&out.MinAvailabilityScore, override.MinAvailabilityScore)

	if override.TemperatureRange != nil {
		tr := *override.TemperatureRange
		out.TemperatureRange = &tr
	}
	if override.HumidityExposure != nil {
		b := *override.HumidityExposure
		out.HumidityExposure = &b
	}
	if override.UVExposure != nil {
		b := *override.UVExposure
		out.UVExposure = &b
	}
	if override.MaxLeadTimeDays != nil {
		d := *override.MaxLeadTimeDays
		out.MaxLeadTimeDays = &d
	}
	if override.PreferredSuppliers != nil {
		out.PreferredSuppliers = append([]string(nil), override.PreferredSuppliers...)
	}
	if override.GeographicRegion != nil {
		g := *override.GeographicRegion
		out.GeographicRegion = &g
	}
	return out
}

// Query defaults applied by NewMaterialQuery and by request decoding.
const (
	DefaultMaxResults          = 20
	DefaultSortBy              = "performance_score"
	DefaultConfidenceThreshold = 0.7
)

// MaterialQuery wraps Requirements with result-shaping options. It is treated
// as immutable once built; enhancement steps return a new value.
type MaterialQuery struct {
	Requirements         Requirements       `json:"requirements"`
	ApplicationDomain    *ApplicationDomain `json:"application_domain,omitempty" validate:"omitempty,application_domain"`
	PreferredCategories  []Category         `json:"preferred_categories,omitempty" validate:"omitempty,dive,material_category"`
	ExcludeCategories    []Category         `json:"exclude_categories,omitempty" validate:"omitempty,dive,material_category"`
	NaturalLanguageQuery *string            `json:"natural_language_query,omitempty" validate:"omitempty,max=2000"`

	MaxResults          int     `json:"max_results" validate:"gte=1,lte=100"`
	SortBy              string  `json:"sort_by,omitempty"`
	IncludeAlternatives bool    `json:"include_alternatives"`
	EnableMLPrediction  bool    `json:"enable_ml_prediction"`
	EnableSimulation    bool    `json:"enable_simulation"`
	ConfidenceThreshold float64 `json:"confidence_threshold" validate:"gte=0,lte=1"`
}

// NewMaterialQuery returns a query carrying the documented defaults.
func NewMaterialQuery() MaterialQuery {
	return MaterialQuery{
		MaxResults:          DefaultMaxResults,
		SortBy:              DefaultSortBy,
		IncludeAlternatives: true,
		EnableMLPrediction:  true,
		EnableSimulation:    true,
		ConfidenceThreshold: DefaultConfidenceThreshold,
	}
}

// Clone returns a deep copy of q.
func (q MaterialQuery) Clone() MaterialQuery {
	out := q
	out.Requirements = Requirements{}.Merge(q.Requirements)
	if q.ApplicationDomain != nil {
		d := *q.ApplicationDomain
		out.ApplicationDomain = &d
	}
	if q.PreferredCategories != nil {
		out.PreferredCategories = append([]Category(nil), q.PreferredCategories...)
	}
	if q.ExcludeCategories != nil {
		out.ExcludeCategories = append([]Category(nil), q.ExcludeCategories...)
	}
	if q.NaturalLanguageQuery != nil {
		s := *q.NaturalLanguageQuery
		out.NaturalLanguageQuery = &s
	}
	return out
}

// CheckEnums rejects category and domain values outside their closed sets.
func (q MaterialQuery) CheckEnums() error {
	for _, c := range q.PreferredCategories {
		if !c.Valid() {
			return fmt.Errorf("preferred_categories: %w: %q", ErrUnknownCategory, string(c))
		}
	}
	for _, c := range q.ExcludeCategories {
		if !c.Valid() {
			return fmt.Errorf("exclude_categories: %w: %q", ErrUnknownCategory, string(c))
		}
	}
	if q.ApplicationDomain != nil {
		if _, err := ParseDomain(string(*q.ApplicationDomain)); err != nil {
			return fmt.Errorf("application_domain: %w", err)
		}
	}
	return nil
}
