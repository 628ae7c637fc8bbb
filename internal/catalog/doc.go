// MatTailor - Material Recommendation and Trade-off Analysis Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mattailor

/*
Package catalog holds the read-only materials and suppliers reference data and
answers predicate, text and similarity queries over it.

Filters:

Every filterable attribute is a Field constant mapped to a typed accessor, so
filters are checked when built rather than resolved by name at match time.
The operator set is eq, gte, lte, gt, lt, in, not_in, icontains and contains.
ParseFilter accepts the "field__operator" form used in URL query strings:

	flt, err := catalog.ParseFilter("density__lte", "3")
	materials, err := cat.QueryMaterials(ctx, flt)

A filter whose attribute is unknown on a record is skipped for that record,
so missing data never excludes a material. A filter on an attribute that
materials do not carry at all (geographic_region) is skipped for every record.

Ordering:

All queries iterate in catalog insertion order. Text search truncation and
similarity tie-breaks are therefore deterministic for a fixed catalog.

Seed Data:

LoadDefault decodes the embedded seed.yaml reference dataset with
gopkg.in/yaml.v3. LoadFile reads an operator-supplied replacement.
*/
package catalog
