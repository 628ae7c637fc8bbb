// MatTailor - Material Recommendation and Trade-off Analysis Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mattailor

package main

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/goccy/go-json"

	"github.com/tomtom215/mattailor/internal/models"
)

// parseFloatMap converts key=value flag pairs to numbers.
func parseFloatMap(flag string, raw map[string]string) (map[string]float64, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	out := make(map[string]float64, len(raw))
	for k, v := range raw {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, fmt.Errorf("--%s %s=%q: not a number", flag, k, v)
		}
		out[k] = f
	}
	return out, nil
}

// parseRequirements maps key=value pairs onto Requirements using the JSON
// field names. Values are read as numbers, then booleans, then strings.
func parseRequirements(raw map[string]string) (models.Requirements, error) {
	var req models.Requirements
	if len(raw) == 0 {
		return req, nil
	}
	fields := make(map[string]any, len(raw))
	for k, v := range raw {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			fields[k] = f
		} else if b, err := strconv.ParseBool(v); err == nil {
			fields[k] = b
		} else {
			fields[k] = v
		}
	}
	body, err := json.Marshal(fields)
	if err != nil {
		return req, err
	}
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		return req, fmt.Errorf("invalid --require: %w", err)
	}
	return req, nil
}

func parseCategories(values []string) ([]models.Category, error) {
	if len(values) == 0 {
		return nil, nil
	}
	out := make([]models.Category, 0, len(values))
	for _, v := range values {
		c := models.Category(v)
		if !c.Valid() {
			return nil, fmt.Errorf("%w: %q", models.ErrUnknownCategory, v)
		}
		out = append(out, c)
	}
	return out, nil
}
