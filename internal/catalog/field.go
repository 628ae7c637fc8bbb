// MatTailor - Material Recommendation and Trade-off Analysis Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mattailor

package catalog

import (
	"fmt"

	"github.com/tomtom215/mattailor/internal/models"
)

// Field identifies a filterable attribute of a Material or Supplier.
type Field int

const (
	FieldUnknown Field = iota

	// Shared
	FieldID
	FieldName
	FieldLeadTimeDays

	// Material
	FieldCategory
	FieldComposition
	FieldTensileStrength
	FieldYieldStrength
	FieldElasticModulus
	FieldHardness
	FieldDensity
	FieldFatigueLimit
	FieldMeltingPoint
	FieldThermalConductivity
	FieldThermalExpansion
	FieldSpecificHeat
	FieldElectricalConductivity
	FieldDielectricConstant
	FieldCorrosionResistance
	FieldChemicalStability
	FieldCostPerKg
	FieldSustainabilityScore
	FieldRecyclability
	FieldCarbonFootprint
	FieldAvailabilityScore
	FieldManufacturingComplexity
	FieldDataSource

	// Requested by callers but carried by neither record type; filters on it
	// are always skipped.
	FieldGeographicRegion

	// Supplier
	FieldLocation
	FieldMaterials
	FieldMinimumOrder
	FieldQualityRating
	FieldCertifications
)

type valueKind uint8

const (
	kindNumber valueKind = iota + 1
	kindString
	kindList
)

type fieldInfo struct {
	name string
	kind valueKind
}

var fieldTable = map[Field]fieldInfo{
	FieldID:                      {"id", kindString},
	FieldName:                    {"name", kindString},
	FieldLeadTimeDays:            {"lead_time_days", kindNumber},
	FieldCategory:                {"category", kindString},
	FieldComposition:             {"composition", kindList},
	FieldTensileStrength:         {"tensile_strength", kindNumber},
	FieldYieldStrength:           {"yield_strength", kindNumber},
	FieldElasticModulus:          {"elastic_modulus", kindNumber},
	FieldHardness:                {"hardness", kindNumber},
	FieldDensity:                 {"density", kindNumber},
	FieldFatigueLimit:            {"fatigue_limit", kindNumber},
	FieldMeltingPoint:            {"melting_point", kindNumber},
	FieldThermalConductivity:     {"thermal_conductivity", kindNumber},
	FieldThermalExpansion:        {"thermal_expansion", kindNumber},
	FieldSpecificHeat:            {"specific_heat", kindNumber},
	FieldElectricalConductivity:  {"electrical_conductivity", kindNumber},
	FieldDielectricConstant:      {"dielectric_constant", kindNumber},
	FieldCorrosionResistance:     {"corrosion_resistance", kindNumber},
	FieldChemicalStability:       {"chemical_stability", kindNumber},
	FieldCostPerKg:               {"cost_per_kg", kindNumber},
	FieldSustainabilityScore:     {"sustainability_score", kindNumber},
	FieldRecyclability:           {"recyclability", kindNumber},
	FieldCarbonFootprint:         {"carbon_footprint", kindNumber},
	FieldAvailabilityScore:       {"availability_score", kindNumber},
	FieldManufacturingComplexity: {"manufacturing_complexity", kindNumber},
	FieldDataSource:              {"data_source", kindString},
	FieldGeographicRegion:        {"geographic_region", kindString},
	FieldLocation:                {"location", kindString},
	FieldMaterials:               {"materials", kindList},
	FieldMinimumOrder:            {"minimum_order", kindNumber},
	FieldQualityRating:           {"quality_rating", kindNumber},
	FieldCertifications:          {"certifications", kindList},
}

var fieldsByName = func() map[string]Field {
	m := make(map[string]Field, len(fieldTable))
	for f, info := range fieldTable {
		m[info.name] = f
	}
	return m
}()

// ParseField resolves a snake_case attribute name.
func ParseField(name string) (Field, error) {
	f, ok := fieldsByName[name]
	if !ok {
		return FieldUnknown, fmt.Errorf("%w: %q", ErrUnknownField, name)
	}
	return f, nil
}

// String returns the snake_case attribute name.
func (f Field) String() string {
	if info, ok := fieldTable[f]; ok {
		return info.name
	}
	return fmt.Sprintf("Field(%d)", int(f))
}

func (f Field) kind() valueKind {
	return fieldTable[f].kind
}

// Numeric reports whether f holds a number.
func (f Field) Numeric() bool {
	return f.kind() == kindNumber
}

// value is the dynamically typed content of a field on one record.
type value struct {
	kind valueKind
	num  float64
	str  string
	list []string
}

func numberValue(p *float64) (value, bool) {
	if p == nil {
		return value{}, false
	}
	return value{kind: kindNumber, num: *p}, true
}

func stringValue(s string) (value, bool) {
	return value{kind: kindString, str: s}, true
}

// materialValue returns the value of f on m. ok is false when the attribute
// is unknown on m or does not exist on materials at all.
//
//nolint:gocyclo // flat accessor table
func materialValue(m *models.Material, f Field) (value, bool) {
	switch f {
	case FieldID:
		return stringValue(m.ID)
	case FieldName:
		return stringValue(m.Name)
	case FieldCategory:
		return stringValue(string(m.Category))
	case FieldComposition:
		keys := make([]string, 0, len(m.Composition))
		for k := range m.Composition {
			keys = append(keys, k)
		}
		return value{kind: kindList, list: keys}, true
	case FieldTensileStrength:
		return numberValue(m.TensileStrength)
	case FieldYieldStrength:
		return numberValue(m.YieldStrength)
	case FieldElasticModulus:
		return numberValue(m.ElasticModulus)
	case FieldHardness:
		return numberValue(m.Hardness)
	case FieldDensity:
		return numberValue(m.Density)
	case FieldFatigueLimit:
		return numberValue(m.FatigueLimit)
	case FieldMeltingPoint:
		return numberValue(m.MeltingPoint)
	case FieldThermalConductivity:
		return numberValue(m.ThermalConductivity)
	case FieldThermalExpansion:
		return numberValue(m.ThermalExpansion)
	case FieldSpecificHeat:
		return numberValue(m.SpecificHeat)
	case FieldElectricalConductivity:
		return numberValue(m.ElectricalConductivity)
	case FieldDielectricConstant:
		return numberValue(m.DielectricConstant)
	case FieldCorrosionResistance:
		return numberValue(m.CorrosionResistance)
	case FieldChemicalStability:
		return numberValue(m.ChemicalStability)
	case FieldCostPerKg:
		return numberValue(m.CostPerKg)
	case FieldSustainabilityScore:
		return numberValue(m.SustainabilityScore)
	case FieldRecyclability:
		return numberValue(m.Recyclability)
	case FieldCarbonFootprint:
		return numberValue(m.CarbonFootprint)
	case FieldAvailabilityScore:
		return numberValue(m.AvailabilityScore)
	case FieldManufacturingComplexity:
		return numberValue(m.ManufacturingComplexity)
	case FieldLeadTimeDays:
		if m.LeadTimeDays == nil {
			return value{}, false
		}
		return value{kind: kindNumber, num: float64(*m.LeadTimeDays)}, true
	case FieldDataSource:
		if m.DataSource == nil {
			return value{}, false
		}
		return stringValue(*m.DataSource)
	default:
		return value{}, false
	}
}

// NumericValue returns the numeric attribute f of m, if present.
func NumericValue(m *models.Material, f Field) (float64, bool) {
	if f.kind() != kindNumber {
		return 0, false
	}
	v, ok := materialValue(m, f)
	if !ok {
		return 0, false
	}
	return v.num, true
}

func supplierValue(s *models.Supplier, f Field) (value, bool) {
	switch f {
	case FieldID:
		return stringValue(s.ID)
	case FieldName:
		return stringValue(s.Name)
	case FieldLocation:
		return stringValue(s.Location)
	case FieldMaterials:
		return value{kind: kindList, list: s.Materials}, true
	case FieldCertifications:
		return value{kind: kindList, list: s.Certifications}, true
	case FieldMinimumOrder:
		return value{kind: kindNumber, num: s.MinimumOrder}, true
	case FieldLeadTimeDays:
		return value{kind: kindNumber, num: float64(s.LeadTimeDays)}, true
	case FieldQualityRating:
		return value{kind: kindNumber, num: s.QualityRating}, true
	default:
		return value{}, false
	}
}
