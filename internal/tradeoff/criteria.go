// MatTailor - Material Recommendation and Trade-off Analysis Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mattailor

package tradeoff

import (
	"strings"

	"github.com/tomtom215/mattailor/internal/catalog"
	"github.com/tomtom215/mattailor/internal/models"
)

// criterion binds a free-form criterion name to a material attribute.
type criterion struct {
	name      string
	field     catalog.Field
	resolved  bool
	direction string
	unit      string
}

// keywordFields resolves loose criterion names. Order matters: the first
// matching keyword wins, so "yield strength" resolves before "strength".
var keywordFields = []struct {
	keyword string
	field   catalog.Field
}{
	{"yield", catalog.FieldYieldStrength},
	{"fatigue", catalog.FieldFatigueLimit},
	{"tensile", catalog.FieldTensileStrength},
	{"strength", catalog.FieldTensileStrength},
	{"modulus", catalog.FieldElasticModulus},
	{"stiff", catalog.FieldElasticModulus},
	{"hardness", catalog.FieldHardness},
	{"density", catalog.FieldDensity},
	{"weight", catalog.FieldDensity},
	{"melting", catalog.FieldMeltingPoint},
	{"temperature", catalog.FieldMeltingPoint},
	{"expansion", catalog.FieldThermalExpansion},
	{"thermal", catalog.FieldThermalConductivity},
	{"dielectric", catalog.FieldDielectricConstant},
	{"electrical", catalog.FieldElectricalConductivity},
	{"conductivity", catalog.FieldElectricalConductivity},
	{"corrosion", catalog.FieldCorrosionResistance},
	{"chemical", catalog.FieldChemicalStability},
	{"cost", catalog.FieldCostPerKg},
	{"price", catalog.FieldCostPerKg},
	{"sustainab", catalog.FieldSustainabilityScore},
	{"recycl", catalog.FieldRecyclability},
	{"carbon", catalog.FieldCarbonFootprint},
	{"emission", catalog.FieldCarbonFootprint},
	{"availability", catalog.FieldAvailabilityScore},
	{"complexity", catalog.FieldManufacturingComplexity},
	{"manufactur", catalog.FieldManufacturingComplexity},
	{"lead", catalog.FieldLeadTimeDays},
}

// Lower is better for these attributes.
var minimized = map[catalog.Field]bool{
	catalog.FieldCostPerKg:               true,
	catalog.FieldDensity:                 true,
	catalog.FieldCarbonFootprint:         true,
	catalog.FieldManufacturingComplexity: true,
	catalog.FieldLeadTimeDays:            true,
	catalog.FieldThermalExpansion:        true,
}

var units = map[catalog.Field]string{
	catalog.FieldTensileStrength:        "MPa",
	catalog.FieldYieldStrength:          "MPa",
	catalog.FieldFatigueLimit:           "MPa",
	catalog.FieldElasticModulus:         "GPa",
	catalog.FieldHardness:               "HV",
	catalog.FieldDensity:                "g/cm³",
	catalog.FieldMeltingPoint:           "°C",
	catalog.FieldThermalConductivity:    "W/m·K",
	catalog.FieldThermalExpansion:       "1/K",
	catalog.FieldSpecificHeat:           "J/kg·K",
	catalog.FieldElectricalConductivity: "S/m",
	catalog.FieldCostPerKg:              "USD/kg",
	catalog.FieldCarbonFootprint:        "kg CO2/kg",
	catalog.FieldLeadTimeDays:           "days",
}

// resolveCriterion maps name to an attribute. Exact attribute names win over
// keywords. Unresolved criteria still take part in the analysis with value 0.
func resolveCriterion(name string) criterion {
	c := criterion{name: name, direction: models.DirectionMaximize}

	key := strings.ToLower(strings.TrimSpace(name))
	if f, err := catalog.ParseField(strings.ReplaceAll(key, " ", "_")); err == nil && f.Numeric() {
		c.field, c.resolved = f, true
	} else {
		for _, kf := range keywordFields {
			if strings.Contains(key, kf.keyword) {
				c.field, c.resolved = kf.field, true
				break
			}
		}
	}

	if c.resolved {
		if minimized[c.field] {
			c.direction = models.DirectionMinimize
		}
		c.unit = units[c.field]
	}
	return c
}

// value returns the raw criterion value for m, 0 when unknown.
func (c criterion) value(m *models.Material) (float64, bool) {
	if m == nil || !c.resolved {
		return 0, false
	}
	return catalog.NumericValue(m, c.field)
}

func (c criterion) toModel(weight float64) models.TradeoffCriteria {
	out := models.TradeoffCriteria{
		Name:      c.name,
		Weight:    weight,
		Direction: c.direction,
	}
	if c.unit != "" {
		u := c.unit
		out.Unit = &u
	}
	return out
}
