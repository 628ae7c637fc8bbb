// MatTailor - Material Recommendation and Trade-off Analysis Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mattailor

package main

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/goccy/go-json"

	"github.com/tomtom215/mattailor/internal/catalog"
	"github.com/tomtom215/mattailor/internal/models"
	"github.com/tomtom215/mattailor/internal/planner"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("CONFIG_PATH", "")
	cmd := newRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func runJSON(t *testing.T, v any, args ...string) {
	t.Helper()
	out, err := run(t, append(args, "--json")...)
	if err != nil {
		t.Fatalf("matctl %v: %v", args, err)
	}
	if err := json.Unmarshal([]byte(out), v); err != nil {
		t.Fatalf("matctl %v: bad JSON %q: %v", args, out, err)
	}
}

func TestRootCmd_Subcommands(t *testing.T) {
	want := []string{"recommend", "parse", "search", "suggest", "material", "alternatives", "suppliers",
		"categories", "tradeoff", "simulate", "plan", "serve"}
	root := newRootCmd()
	for _, name := range want {
		cmd, _, err := root.Find([]string{name})
		if err != nil || cmd.Name() != name {
			t.Errorf("subcommand %q missing", name)
		}
	}
}

func TestCategories(t *testing.T) {
	var stats catalog.Stats
	runJSON(t, &stats, "categories")
	if stats.Materials != 21 || stats.ByCategory[models.CategoryMetal] != 8 {
		t.Errorf("stats = %+v", stats)
	}

	out, err := run(t, "categories")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "semiconductor") {
		t.Errorf("table output missing categories:\n%s", out)
	}
}

func TestMaterial(t *testing.T) {
	out, err := run(t, "material", "steel_316l")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "Stainless Steel 316L") || !strings.Contains(out, "Cr") {
		t.Errorf("output = %s", out)
	}

	if _, err := run(t, "material", "unobtainium"); err == nil {
		t.Error("unknown material should fail")
	}
}

func TestSearchAndAlternatives(t *testing.T) {
	var found []*models.Material
	runJSON(t, &found, "search", "steel", "--category", "metal")
	if len(found) == 0 {
		t.Fatal("search steel returned nothing")
	}
	for _, m := range found {
		if m.Category != models.CategoryMetal {
			t.Errorf("%s has category %s", m.ID, m.Category)
		}
	}

	var alts []*models.Material
	runJSON(t, &alts, "alternatives", "does_not_exist")
	if len(alts) != 0 {
		t.Errorf("alternatives for unknown id = %d, want 0", len(alts))
	}

	if _, err := run(t, "search", "steel", "--category", "wood"); err == nil {
		t.Error("unknown category should fail")
	}
}

func TestSuggest(t *testing.T) {
	var ss []catalog.Suggestion
	runJSON(t, &ss, "suggest", "titan")
	if len(ss) != 2 || ss[1].ID != "titanium_grade5" {
		t.Errorf("suggestions = %+v", ss)
	}
}

func TestSuppliers(t *testing.T) {
	var ss []*models.Supplier
	runJSON(t, &ss, "suppliers", "steel_316l")
	if len(ss) != 1 || ss[0].ID != "supplier_1" {
		t.Errorf("suppliers = %+v", ss)
	}

	runJSON(t, &ss, "suppliers", "steel_316l", "--region", "Germany")
	if len(ss) != 0 {
		t.Errorf("suppliers in Germany = %d, want 0", len(ss))
	}
}

func TestRecommend(t *testing.T) {
	var res models.RecommendationResult
	runJSON(t, &res, "recommend", "--require", "max_density=3", "--max-results", "5")
	if len(res.Materials) == 0 || len(res.Materials) > 5 {
		t.Errorf("got %d materials", len(res.Materials))
	}

	out, err := run(t, "recommend", "--category", "metal", "--max-results", "3")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "Overall") {
		t.Errorf("table output = %s", out)
	}
}

func TestRecommend_BadInput(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"unknown field", []string{"--require", "max_sparkle=3"}},
		{"unknown category", []string{"--category", "wood"}},
		{"unknown domain", []string{"--domain", "space_elevators"}},
		{"too many results", []string{"--max-results", "500"}},
		{"negative bound", []string{"--require", "max_density=-1"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := run(t, append([]string{"recommend"}, tt.args...)...); err == nil {
				t.Error("expected an error")
			}
		})
	}
}

func TestTradeoff(t *testing.T) {
	var a models.TradeoffAnalysis
	runJSON(t, &a, "tradeoff", "steel_316l", "aluminum_6061", "titanium_grade5",
		"--criteria", "density,cost_per_kg", "--weight", "cost_per_kg=2")
	if len(a.Materials) != 3 || a.BestOverall == "" {
		t.Errorf("analysis = %+v", a)
	}

	var s models.SensitivityAnalysis
	runJSON(t, &s, "tradeoff", "steel_316l", "aluminum_6061", "--criteria", "density,cost_per_kg", "--sensitivity")
	if len(s.BaseRanking) != 2 {
		t.Errorf("BaseRanking = %v", s.BaseRanking)
	}

	if _, err := run(t, "tradeoff", "steel_316l"); err == nil {
		t.Error("missing --criteria should fail")
	}
	if _, err := run(t, "tradeoff", "steel_316l", "--criteria", "density", "--weight", "density=heavy"); err == nil {
		t.Error("non-numeric weight should fail")
	}
}

func TestSimulate(t *testing.T) {
	var props map[string]float64
	runJSON(t, &props, "simulate", "--composition", "Fe=70", "--composition", "Cr=18", "--composition", "Ni=12")
	if props == nil {
		t.Error("custom simulation should return a map")
	}

	tests := []struct {
		name string
		args []string
	}{
		{"nothing to simulate", nil},
		{"id and composition", []string{"steel_316l", "--composition", "Fe=1"}},
		{"humidity out of range", []string{"--composition", "Fe=1", "--humidity", "150"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := run(t, append([]string{"simulate"}, tt.args...)...); err == nil {
				t.Error("expected an error")
			}
		})
	}
}

func TestPlan(t *testing.T) {
	var p planner.Plan
	runJSON(t, &p, "plan", "--objective", "lightweight", "--objective", "low cost", "--constraint", "max_cost=50")
	if !strings.HasPrefix(p.SessionID, "rl_session_") || len(p.ObjectivesAnalyzed) != 2 {
		t.Errorf("plan = %+v", p)
	}

	t.Setenv("ENABLE_RL_PLANNING", "false")
	if _, err := run(t, "plan", "--objective", "lightweight"); err == nil {
		t.Error("plan should fail when planning is disabled")
	}
}

func TestParse(t *testing.T) {
	var ex struct {
		CleanedQuery string `json:"cleaned_query"`
	}
	runJSON(t, &ex, "parse", "lightweight", "corrosion", "resistant", "aerospace", "bracket")
	if ex.CleanedQuery == "" {
		t.Error("cleaned_query should be set")
	}
}

func TestParseRequirements(t *testing.T) {
	req, err := parseRequirements(map[string]string{
		"max_density":        "3.5",
		"max_lead_time_days": "14",
		"humidity_exposure":  "true",
		"geographic_region":  "Europe",
	})
	if err != nil {
		t.Fatalf("parseRequirements() error = %v", err)
	}
	if req.MaxDensity == nil || *req.MaxDensity != 3.5 {
		t.Errorf("MaxDensity = %v", req.MaxDensity)
	}
	if req.MaxLeadTimeDays == nil || *req.MaxLeadTimeDays != 14 {
		t.Errorf("MaxLeadTimeDays = %v", req.MaxLeadTimeDays)
	}
	if req.HumidityExposure == nil || !*req.HumidityExposure {
		t.Errorf("HumidityExposure = %v", req.HumidityExposure)
	}
	if req.GeographicRegion == nil || *req.GeographicRegion != "Europe" {
		t.Errorf("GeographicRegion = %v", req.GeographicRegion)
	}

	if _, err := parseRequirements(map[string]string{"max_density": "light"}); err == nil {
		t.Error("string for a numeric field should fail")
	}
}
