// MatTailor - Material Recommendation and Trade-off Analysis Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mattailor

package models

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrUnknownCategory is returned when a category string is outside the closed set.
var ErrUnknownCategory = errors.New("unknown material category")

// ErrUnknownDomain is returned when an application domain string is outside the closed set.
var ErrUnknownDomain = errors.New("unknown application domain")

// Category is the closed set of material classes.
type Category string

const (
	CategoryMetal         Category = "metal"
	CategoryPolymer       Category = "polymer"
	CategoryCeramic       Category = "ceramic"
	CategoryComposite     Category = "composite"
	CategorySemiconductor Category = "semiconductor"
	CategoryBiomaterial   Category = "biomaterial"
)

// AllCategories lists every category in declaration order.
var AllCategories = []Category{
	CategoryMetal,
	CategoryPolymer,
	CategoryCeramic,
	CategoryComposite,
	CategorySemiconductor,
	CategoryBiomaterial,
}

// ParseCategory converts s into a Category. Matching is case-insensitive and
// surrounding whitespace is ignored.
func ParseCategory(s string) (Category, error) {
	c := Category(strings.ToLower(strings.TrimSpace(s)))
	if !c.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownCategory, s)
	}
	return c, nil
}

// ParseCategories parses every element of ss, failing on the first unknown value.
func ParseCategories(ss []string) ([]Category, error) {
	if len(ss) == 0 {
		return nil, nil
	}
	out := make([]Category, 0, len(ss))
	for _, s := range ss {
		c, err := ParseCategory(s)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool {
	for _, known := range AllCategories {
		if c == known {
			return true
		}
	}
	return false
}

// ApplicationDomain is the closed set of target industries.
type ApplicationDomain string

const (
	DomainAerospace    ApplicationDomain = "aerospace"
	DomainAutomotive   ApplicationDomain = "automotive"
	DomainConstruction ApplicationDomain = "construction"
	DomainElectronics  ApplicationDomain = "electronics"
	DomainMedical      ApplicationDomain = "medical"
	DomainPackaging    ApplicationDomain = "packaging"
	DomainEnergy       ApplicationDomain = "energy"
	DomainMarine       ApplicationDomain = "marine"
)

// AllDomains lists every application domain in declaration order.
var AllDomains = []ApplicationDomain{
	DomainAerospace,
	DomainAutomotive,
	DomainConstruction,
	DomainElectronics,
	DomainMedical,
	DomainPackaging,
	DomainEnergy,
	DomainMarine,
}

// ParseDomain converts s into an ApplicationDomain.
func ParseDomain(s string) (ApplicationDomain, error) {
	d := ApplicationDomain(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range AllDomains {
		if d == known {
			return d, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownDomain, s)
}

// Material is a catalog entry. Every physical, economic and environmental
// attribute is optional: a nil pointer means "unknown", never zero.
//
// Materials are created once when the catalog loads and are never mutated
// afterwards. Callers that need to attach derived data (simulated properties)
// must work on a copy obtained from Clone.
type Material struct {
	ID          string             `json:"id" yaml:"id"`
	Name        string             `json:"name" yaml:"name"`
	Category    Category           `json:"category" yaml:"category"`
	Composition map[string]float64 `json:"composition" yaml:"composition"`

	// Mechanical
	TensileStrength *float64 `json:"tensile_strength" yaml:"tensile_strength"` // MPa
	YieldStrength   *float64 `json:"yield_strength" yaml:"yield_strength"`     // MPa
	ElasticModulus  *float64 `json:"elastic_modulus" yaml:"elastic_modulus"`   // GPa
	Hardness        *float64 `json:"hardness" yaml:"hardness"`                 // HV
	Density         *float64 `json:"density" yaml:"density"`                   // g/cm³
	FatigueLimit    *float64 `json:"fatigue_limit" yaml:"fatigue_limit"`       // MPa

	// Thermal
	MeltingPoint        *float64 `json:"melting_point" yaml:"melting_point"`               // °C
	ThermalConductivity *float64 `json:"thermal_conductivity" yaml:"thermal_conductivity"` // W/m·K
	ThermalExpansion    *float64 `json:"thermal_expansion" yaml:"thermal_expansion"`       // 1/K
	SpecificHeat        *float64 `json:"specific_heat" yaml:"specific_heat"`               // J/kg·K

	// Electrical
	ElectricalConductivity *float64 `json:"electrical_conductivity" yaml:"electrical_conductivity"` // S/m
	DielectricConstant     *float64 `json:"dielectric_constant" yaml:"dielectric_constant"`

	// Chemical, ratings on a 1-10 scale
	CorrosionResistance *float64 `json:"corrosion_resistance" yaml:"corrosion_resistance"`
	ChemicalStability   *float64 `json:"chemical_stability" yaml:"chemical_stability"`

	// Economic and environmental
	CostPerKg           *float64 `json:"cost_per_kg" yaml:"cost_per_kg"` // USD
	SustainabilityScore *float64 `json:"sustainability_score" yaml:"sustainability_score"`
	Recyclability       *float64 `json:"recyclability" yaml:"recyclability"`
	CarbonFootprint     *float64 `json:"carbon_footprint" yaml:"carbon_footprint"` // kg CO2/kg

	// Availability and manufacturing
	AvailabilityScore       *float64 `json:"availability_score" yaml:"availability_score"`
	ManufacturingComplexity *float64 `json:"manufacturing_complexity" yaml:"manufacturing_complexity"`
	LeadTimeDays            *int     `json:"lead_time_days" yaml:"lead_time_days"`

	SimulatedProperties map[string]float64 `json:"simulated_properties" yaml:"simulated_properties,omitempty"`
	ConfidenceScores    map[string]float64 `json:"confidence_scores" yaml:"confidence_scores,omitempty"`

	DataSource  *string    `json:"data_source" yaml:"data_source"`
	LastUpdated *time.Time `json:"last_updated" yaml:"last_updated,omitempty"`
}

// CompletenessSlots is the number of non-identity attributes counted by
// Completeness. Composition always counts as present.
const CompletenessSlots = 26

// Completeness returns how many of the CompletenessSlots attributes are set.
func (m *Material) Completeness() int {
	filled := 1 // composition
	for _, p := range []*float64{
		m.TensileStrength, m.YieldStrength, m.ElasticModulus, m.Hardness, m.Density, m.FatigueLimit,
		m.MeltingPoint, m.ThermalConductivity, m.ThermalExpansion, m.SpecificHeat,
		m.ElectricalConductivity, m.DielectricConstant,
		m.CorrosionResistance, m.ChemicalStability,
		m.CostPerKg, m.SustainabilityScore, m.Recyclability, m.CarbonFootprint,
		m.AvailabilityScore, m.ManufacturingComplexity,
	} {
		if p != nil {
			filled++
		}
	}
	if m.LeadTimeDays != nil {
		filled++
	}
	if m.SimulatedProperties != nil {
		filled++
	}
	if m.ConfidenceScores != nil {
		filled++
	}
	if m.DataSource != nil {
		filled++
	}
	if m.LastUpdated != nil {
		filled++
	}
	return filled
}

// Clone returns a copy of m whose maps can be modified without affecting m.
// Pointer fields are shared; they are never written through.
func (m *Material) Clone() *Material {
	c := *m
	c.Composition = cloneFloatMap(m.Composition)
	c.SimulatedProperties = cloneFloatMap(m.SimulatedProperties)
	c.ConfidenceScores = cloneFloatMap(m.ConfidenceScores)
	return &c
}

func cloneFloatMap(in map[string]float64) map[string]float64 {
	if in == nil {
		return nil
	}
	out := make(map[string]float64, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}

// Supplier is read-only reference data describing who sells which materials.
type Supplier struct {
	ID             string             `json:"id" yaml:"id"`
	Name           string             `json:"name" yaml:"name"`
	Location       string             `json:"location" yaml:"location"`
	ContactInfo    map[string]string  `json:"contact_info" yaml:"contact_info"`
	Materials      []string           `json:"materials" yaml:"materials"`
	PriceRange     map[string]float64 `json:"price_range" yaml:"price_range"`
	MinimumOrder   float64            `json:"minimum_order" yaml:"minimum_order"`
	LeadTimeDays   int                `json:"lead_time_days" yaml:"lead_time_days"`
	QualityRating  float64            `json:"quality_rating" yaml:"quality_rating"`
	Certifications []string           `json:"certifications" yaml:"certifications"`
}

// Float returns a pointer to v. Used to build optional attributes inline.
func Float(v float64) *float64 { return &v }

// Int returns a pointer to v.
func Int(v int) *int { return &v }

// String returns a pointer to v.
func String(v string) *string { return &v }
