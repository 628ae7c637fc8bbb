// MatTailor - Material Recommendation and Trade-off Analysis Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mattailor

package validation

import (
	"strings"
	"testing"

	"github.com/tomtom215/mattailor/internal/models"
)

func TestGetValidator_Singleton(t *testing.T) {
	v1 := GetValidator()
	v2 := GetValidator()
	if v1 == nil || v1 != v2 {
		t.Error("GetValidator() should return one shared instance")
	}
}

type sampleRequest struct {
	IDs    []string `json:"material_ids" validate:"required,min=2,max=3,dive,required"`
	Name   string   `json:"name" validate:"omitempty,max=5"`
	Weight float64  `json:"weight" validate:"gte=0,lte=1"`
	Hidden string   `json:"-" validate:"omitempty,max=1"`
	Plain  int      `validate:"min=1"`
}

func TestValidateStruct_Sample(t *testing.T) {
	tests := []struct {
		name      string
		req       sampleRequest
		wantField string
		wantMsg   string
	}{
		{
			name: "valid",
			req:  sampleRequest{IDs: []string{"a", "b"}, Weight: 0.5, Plain: 1},
		},
		{
			name:      "too few ids",
			req:       sampleRequest{IDs: []string{"a"}, Plain: 1},
			wantField: "material_ids",
			wantMsg:   "material_ids must be at least 2 items",
		},
		{
			name:      "string too long",
			req:       sampleRequest{IDs: []string{"a", "b"}, Name: "toolong", Plain: 1},
			wantField: "name",
			wantMsg:   "name must be at most 5 characters",
		},
		{
			name:      "weight above range",
			req:       sampleRequest{IDs: []string{"a", "b"}, Weight: 2, Plain: 1},
			wantField: "weight",
			wantMsg:   "weight must be less than or equal to 1",
		},
		{
			name:      "field without json tag keeps go name",
			req:       sampleRequest{IDs: []string{"a", "b"}},
			wantField: "Plain",
			wantMsg:   "Plain must be at least 1",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateStruct(&tt.req)
			if tt.wantField == "" {
				if err != nil {
					t.Fatalf("ValidateStruct() error = %v", err)
				}
				return
			}
			if err == nil {
				t.Fatal("ValidateStruct() expected an error")
			}
			errs := err.Errors()
			if len(errs) != 1 {
				t.Fatalf("got %d errors: %v", len(errs), err)
			}
			if errs[0].Field() != tt.wantField {
				t.Errorf("Field() = %q, want %q", errs[0].Field(), tt.wantField)
			}
			if errs[0].Error() != tt.wantMsg {
				t.Errorf("message = %q, want %q", errs[0].Error(), tt.wantMsg)
			}
		})
	}
}

func TestValidateStruct_MaterialQuery(t *testing.T) {
	valid := models.NewMaterialQuery()
	valid.PreferredCategories = []models.Category{models.CategoryMetal}
	d := models.DomainMarine
	valid.ApplicationDomain = &d
	if err := ValidateStruct(&valid); err != nil {
		t.Fatalf("valid query rejected: %v", err)
	}

	bad := models.NewMaterialQuery()
	bad.PreferredCategories = []models.Category{"unobtainium"}
	bad.Requirements.MinCorrosionResistance = models.Float(11)
	err := ValidateStruct(&bad)
	if err == nil {
		t.Fatal("expected validation errors")
	}

	var sawCategory, sawCorrosion bool
	for _, e := range err.Errors() {
		switch {
		case e.Tag() == "material_category":
			sawCategory = true
			if !strings.HasPrefix(e.Field(), "preferred_categories") {
				t.Errorf("category field = %q", e.Field())
			}
		case e.Field() == "min_corrosion_resistance":
			sawCorrosion = true
			if e.Param() != "10" {
				t.Errorf("Param() = %q, want 10", e.Param())
			}
		}
	}
	if !sawCategory || !sawCorrosion {
		t.Errorf("errors = %v, want category and corrosion failures", err)
	}

	api := err.ToAPIError()
	if api.Code != CodeValidation {
		t.Errorf("Code = %q", api.Code)
	}
	if _, ok := api.Details["fields"]; !ok {
		t.Errorf("multi-error details = %v, want fields list", api.Details)
	}
}

func TestValidateStruct_Domain(t *testing.T) {
	q := models.NewMaterialQuery()
	d := models.ApplicationDomain("Marine")
	q.ApplicationDomain = &d
	err := ValidateStruct(&q)
	if err == nil {
		t.Fatal("mixed-case domain should be rejected")
	}
	api := err.ToAPIError()
	if api.Details["field"] != "application_domain" || api.Details["tag"] != "application_domain" {
		t.Errorf("Details = %v", api.Details)
	}
	if !strings.Contains(api.Message, "aerospace") {
		t.Errorf("Message = %q", api.Message)
	}
}

func TestRequestValidationError_Empty(t *testing.T) {
	ve := &RequestValidationError{}
	if ve.Error() != "validation failed" {
		t.Errorf("Error() = %q", ve.Error())
	}
	if api := ve.ToAPIError(); api.Code != CodeValidation || api.Message != "Validation failed" {
		t.Errorf("ToAPIError() = %+v", api)
	}
}
