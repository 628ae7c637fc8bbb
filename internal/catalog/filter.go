// MatTailor - Material Recommendation and Trade-off Analysis Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mattailor

package catalog

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/tomtom215/mattailor/internal/models"
)

// Operator is a filter comparison.
type Operator string

const (
	OpEq        Operator = "eq"
	OpGte       Operator = "gte"
	OpLte       Operator = "lte"
	OpGt        Operator = "gt"
	OpLt        Operator = "lt"
	OpIn        Operator = "in"
	OpNotIn     Operator = "not_in"
	OpIContains Operator = "icontains"
	OpContains  Operator = "contains"
)

// Filter is a single predicate over one Field. Exactly one operand is used,
// selected by Op and the field's type: Number for numeric comparisons, Set
// for in/not_in, Text otherwise.
//
// A filter on an attribute that is unknown for a given record is not
// applied to that record: absent data never excludes a material.
type Filter struct {
	Field  Field
	Op     Operator
	Number float64
	Text   string
	Set    []string
}

// Eq matches string fields equal to s.
func Eq(f Field, s string) Filter { return Filter{Field: f, Op: OpEq, Text: s} }

// EqNumber matches numeric fields equal to v.
func EqNumber(f Field, v float64) Filter { return Filter{Field: f, Op: OpEq, Number: v} }

// Gte matches numeric fields >= v.
func Gte(f Field, v float64) Filter { return Filter{Field: f, Op: OpGte, Number: v} }

// Lte matches numeric fields <= v.
func Lte(f Field, v float64) Filter { return Filter{Field: f, Op: OpLte, Number: v} }

// Gt matches numeric fields > v.
func Gt(f Field, v float64) Filter { return Filter{Field: f, Op: OpGt, Number: v} }

// Lt matches numeric fields < v.
func Lt(f Field, v float64) Filter { return Filter{Field: f, Op: OpLt, Number: v} }

// In matches string fields whose value is one of vals.
func In(f Field, vals ...string) Filter { return Filter{Field: f, Op: OpIn, Set: vals} }

// NotIn matches string fields whose value is none of vals.
func NotIn(f Field, vals ...string) Filter { return Filter{Field: f, Op: OpNotIn, Set: vals} }

// Contains matches string fields containing s, or list fields holding s.
func Contains(f Field, s string) Filter { return Filter{Field: f, Op: OpContains, Text: s} }

// IContains is the case-insensitive substring form of Contains. On list
// fields any element may match.
func IContains(f Field, s string) Filter { return Filter{Field: f, Op: OpIContains, Text: s} }

// String renders the filter in field__operator form.
func (flt Filter) String() string {
	key := flt.Field.String()
	if flt.Op != OpEq {
		key += "__" + string(flt.Op)
	}
	switch {
	case flt.Op == OpIn || flt.Op == OpNotIn:
		return key + "=" + strings.Join(flt.Set, ",")
	case flt.Field.kind() == kindNumber:
		return key + "=" + strconv.FormatFloat(flt.Number, 'g', -1, 64)
	default:
		return key + "=" + flt.Text
	}
}

// Validate reports whether the operator is meaningful for the field's type.
func (flt Filter) Validate() error {
	info, ok := fieldTable[flt.Field]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownField, flt.Field)
	}
	switch flt.Op {
	case OpGte, OpLte, OpGt, OpLt:
		if info.kind != kindNumber {
			return fmt.Errorf("%w: %s does not support %s", ErrInvalidFilter, info.name, flt.Op)
		}
	case OpEq:
		if info.kind == kindList {
			return fmt.Errorf("%w: %s does not support %s", ErrInvalidFilter, info.name, flt.Op)
		}
	case OpIn, OpNotIn:
		if info.kind != kindString {
			return fmt.Errorf("%w: %s does not support %s", ErrInvalidFilter, info.name, flt.Op)
		}
	case OpContains, OpIContains:
		if info.kind == kindNumber {
			return fmt.Errorf("%w: %s does not support %s", ErrInvalidFilter, info.name, flt.Op)
		}
	default:
		return fmt.Errorf("%w: unknown operator %q", ErrInvalidFilter, flt.Op)
	}
	return nil
}

func (flt Filter) match(v value) bool {
	switch flt.Op {
	case OpEq:
		if v.kind == kindNumber {
			return v.num == flt.Number
		}
		return v.str == flt.Text
	case OpGte:
		return v.num >= flt.Number
	case OpLte:
		return v.num <= flt.Number
	case OpGt:
		return v.num > flt.Number
	case OpLt:
		return v.num < flt.Number
	case OpIn:
		return slices.Contains(flt.Set, v.str)
	case OpNotIn:
		return !slices.Contains(flt.Set, v.str)
	case OpContains:
		if v.kind == kindList {
			return slices.Contains(v.list, flt.Text)
		}
		return strings.Contains(v.str, flt.Text)
	case OpIContains:
		needle := strings.ToLower(flt.Text)
		if v.kind == kindList {
			for _, item := range v.list {
				if strings.Contains(strings.ToLower(item), needle) {
					return true
				}
			}
			return false
		}
		return strings.Contains(strings.ToLower(v.str), needle)
	}
	return false
}

// ParseFilter builds a Filter from a "field" or "field__operator" key and a
// raw string operand, as found in URL query parameters. Set operands are
// comma separated.
func ParseFilter(key, raw string) (Filter, error) {
	name, op := key, OpEq
	if i := strings.Index(key, "__"); i >= 0 {
		name, op = key[:i], Operator(key[i+2:])
	}
	f, err := ParseField(name)
	if err != nil {
		return Filter{}, err
	}

	flt := Filter{Field: f, Op: op}
	switch {
	case op == OpIn || op == OpNotIn:
		for _, part := range strings.Split(raw, ",") {
			if p := strings.TrimSpace(part); p != "" {
				flt.Set = append(flt.Set, p)
			}
		}
	case f.kind() == kindNumber:
		n, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err != nil {
			return Filter{}, fmt.Errorf("%w: %s expects a number, got %q", ErrInvalidFilter, name, raw)
		}
		flt.Number = n
	default:
		flt.Text = raw
	}

	if err := flt.Validate(); err != nil {
		return Filter{}, err
	}
	return flt, nil
}

func validateAll(filters []Filter) error {
	for _, flt := range filters {
		if err := flt.Validate(); err != nil {
			return err
		}
	}
	return nil
}

func materialMatches(m *models.Material, filters []Filter) bool {
	for _, flt := range filters {
		v, ok := materialValue(m, flt.Field)
		if !ok {
			continue
		}
		if !flt.match(v) {
			return false
		}
	}
	return true
}

func supplierMatches(s *models.Supplier, filters []Filter) bool {
	for _, flt := range filters {
		v, ok := supplierValue(s, flt.Field)
		if !ok {
			continue
		}
		if !flt.match(v) {
			return false
		}
	}
	return true
}
