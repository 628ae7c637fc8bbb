// MatTailor - Material Recommendation and Trade-off Analysis Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mattailor

package catalog

import (
	"math"

	"github.com/tomtom215/mattailor/internal/models"
)

// Similarity weights for the category term.
const (
	SameCategorySimilarity      = 1.0
	DifferentCategorySimilarity = 0.3
)

var similarityFields = []Field{
	FieldTensileStrength,
	FieldYieldStrength,
	FieldElasticModulus,
	FieldDensity,
	FieldThermalConductivity,
	FieldElectricalConductivity,
	FieldCostPerKg,
}

// Similarity is the mean of min/max ratios over the comparison properties
// present on both materials, plus one category term. With no shared
// properties the result is the category term alone.
func Similarity(a, b *models.Material) float64 {
	sum, n := 0.0, 0
	for _, f := range similarityFields {
		va, okA := NumericValue(a, f)
		vb, okB := NumericValue(b, f)
		if !okA || !okB {
			continue
		}
		hi, lo := math.Max(va, vb), math.Min(va, vb)
		if hi > 0 {
			sum += lo / hi
			n++
		}
	}

	if a.Category == b.Category {
		sum += SameCategorySimilarity
	} else {
		sum += DifferentCategorySimilarity
	}
	n++

	return sum / float64(n)
}
