// MatTailor - Material Recommendation and Trade-off Analysis Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mattailor

package planner

import (
	"context"
	"errors"
	"fmt"
	"math"
	"reflect"
	"slices"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"

	"github.com/tomtom215/mattailor/internal/metrics"
	"github.com/tomtom215/mattailor/internal/models"
)

func newPlanner(maxSessions int) *Planner {
	p := New(maxSessions, zerolog.Nop())
	fixed := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	p.now = func() time.Time { return fixed }
	return p
}

func TestPlan(t *testing.T) {
	t.Parallel()
	p := newPlanner(0)

	plan, err := p.Plan(context.Background(),
		[]string{"High strength", "low cost"},
		map[string]float64{"budget_per_kg": 15, "strength_requirement": 700})
	if err != nil {
		t.Fatalf("Plan() error = %v", err)
	}

	if plan.SessionID != "rl_session_0" {
		t.Errorf("SessionID = %q, want rl_session_0", plan.SessionID)
	}
	if plan.Status != "completed" || plan.ConfidenceScore != 0.75 {
		t.Errorf("Status/Confidence = %q/%v", plan.Status, plan.ConfidenceScore)
	}
	s := plan.RecommendedStrategy
	if s.PrimaryObjective != "High strength" {
		t.Errorf("PrimaryObjective = %q", s.PrimaryObjective)
	}
	wantCats := []models.Category{models.CategoryMetal, models.CategoryComposite, models.CategoryPolymer}
	if !slices.Equal(s.MaterialCategories, wantCats) {
		t.Errorf("MaterialCategories = %v, want %v", s.MaterialCategories, wantCats)
	}
	wantTargets := map[string]float64{"min_tensile_strength": 700, "max_cost_per_kg": 15}
	if !reflect.DeepEqual(s.PropertyTargets, wantTargets) {
		t.Errorf("PropertyTargets = %v, want %v", s.PropertyTargets, wantTargets)
	}
	if !slices.Equal(s.RiskFactors, []string{"Very tight budget may limit material options"}) {
		t.Errorf("RiskFactors = %v", s.RiskFactors)
	}
	if got := plan.ExpectedPerformance["overall_score"]; math.Abs(got-(0.875+0.8)/2) > 1e-9 {
		t.Errorf("overall_score = %v", got)
	}
	if len(plan.AlternativeStrategies) != 3 || len(plan.NextSteps) != 3 {
		t.Errorf("alternatives = %d, next steps = %d", len(plan.AlternativeStrategies), len(plan.NextSteps))
	}

	second, err := p.Plan(context.Background(), nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	if second.SessionID != "rl_session_1" {
		t.Errorf("second SessionID = %q", second.SessionID)
	}
	if second.RecommendedStrategy.PrimaryObjective != "performance" {
		t.Errorf("default PrimaryObjective = %q", second.RecommendedStrategy.PrimaryObjective)
	}
}

func TestPlan_CanceledContext(t *testing.T) {
	t.Parallel()
	p := newPlanner(0)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := p.Plan(ctx, []string{"cost"}, nil); !errors.Is(err, context.Canceled) {
		t.Errorf("Plan() error = %v, want context.Canceled", err)
	}
	if st := p.Status(); st.TrainingSessions != 0 {
		t.Errorf("TrainingSessions = %d, want 0", st.TrainingSessions)
	}
}

func TestFeedback(t *testing.T) {
	t.Parallel()
	p := newPlanner(0)
	plan, err := p.Plan(context.Background(), []string{"weight"}, nil)
	if err != nil {
		t.Fatal(err)
	}

	before := testutil.ToFloat64(metrics.PlannerFeedback.WithLabelValues(metrics.ResultSuccess))
	if !p.Feedback(plan.SessionID, Feedback{Rating: 4, Comments: "good", WouldRecommend: true}) {
		t.Fatal("Feedback() = false for a known session")
	}
	if got := testutil.ToFloat64(metrics.PlannerFeedback.WithLabelValues(metrics.ResultSuccess)) - before; got < 1 {
		t.Errorf("success counter delta = %v", got)
	}
	if p.Feedback("rl_session_99", Feedback{Rating: 1}) {
		t.Error("Feedback() = true for an unknown session")
	}

	_, fb, err := p.Session(plan.SessionID)
	if err != nil {
		t.Fatalf("Session() error = %v", err)
	}
	if fb == nil || fb.Rating != 4 || fb.ReceivedAt.IsZero() {
		t.Errorf("stored feedback = %+v", fb)
	}
	if _, _, err := p.Session("missing"); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("Session(missing) error = %v", err)
	}

	st := p.Status()
	if st.TrainingSessions != 1 || st.FeedbackReceived != 1 || st.IsTrained {
		t.Errorf("Status() = %+v", st)
	}
	if st.ModelVersion != ModelVersion {
		t.Errorf("ModelVersion = %q", st.ModelVersion)
	}
}

func TestPlan_EvictsOldestSession(t *testing.T) {
	t.Parallel()
	p := newPlanner(2)
	for i := 0; i < 3; i++ {
		if _, err := p.Plan(context.Background(), []string{"cost"}, nil); err != nil {
			t.Fatal(err)
		}
	}
	if p.Feedback("rl_session_0", Feedback{}) {
		t.Error("evicted session accepted feedback")
	}
	if !p.Feedback("rl_session_2", Feedback{}) {
		t.Error("latest session rejected feedback")
	}
	if st := p.Status(); st.TrainingSessions != 2 {
		t.Errorf("TrainingSessions = %d, want 2", st.TrainingSessions)
	}
}

func TestPlan_Concurrent(t *testing.T) {
	t.Parallel()
	p := newPlanner(0)

	var wg sync.WaitGroup
	ids := make([]string, 20)
	for i := range ids {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			plan, err := p.Plan(context.Background(), []string{"strength"}, nil)
			if err != nil {
				t.Error(err)
				return
			}
			ids[i] = plan.SessionID
		}(i)
	}
	wg.Wait()

	slices.Sort(ids)
	if len(slices.Compact(ids)) != 20 {
		t.Errorf("session ids are not unique: %v", ids)
	}
	for i := 0; i < 20; i++ {
		if !p.Feedback(fmt.Sprintf("rl_session_%d", i), Feedback{}) {
			t.Errorf("rl_session_%d missing", i)
		}
	}
}

func TestSuggestCategories(t *testing.T) {
	t.Parallel()
	tests := []struct {
		objectives []string
		want       []models.Category
	}{
		{nil, []models.Category{models.CategoryComposite}},
		{[]string{"elegance"}, []models.Category{models.CategoryComposite}},
		{[]string{"Sustainability"}, []models.Category{models.CategoryBiomaterial, models.CategoryPolymer}},
		{[]string{"temperature", "electrical"}, []models.Category{models.CategoryCeramic, models.CategoryMetal, models.CategorySemiconductor}},
	}
	for _, tt := range tests {
		if got := SuggestCategories(tt.objectives); !slices.Equal(got, tt.want) {
			t.Errorf("SuggestCategories(%v) = %v, want %v", tt.objectives, got, tt.want)
		}
	}
}

func TestPropertyTargets(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name        string
		objectives  []string
		constraints map[string]float64
		want        map[string]float64
	}{
		{"defaults", []string{"lightweight", "temperature range"}, nil,
			map[string]float64{"max_density": 3, "min_operating_temp": -50, "max_operating_temp": 200}},
		{"first keyword wins", []string{"strength to weight"}, nil,
			map[string]float64{"min_tensile_strength": 500}},
		{"constraint override", []string{"electrical"}, map[string]float64{"min_conductivity": 5e7},
			map[string]float64{"min_electrical_conductivity": 5e7}},
		{"unrecognized", []string{"beauty"}, nil, map[string]float64{}},
	}
	for _, tt := range tests {
		if got := PropertyTargets(tt.objectives, tt.constraints); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("%s: PropertyTargets() = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestRiskFactors(t *testing.T) {
	t.Parallel()
	if got := RiskFactors(nil); len(got) != 0 {
		t.Errorf("RiskFactors(nil) = %v", got)
	}
	got := RiskFactors(map[string]float64{"budget_per_kg": 20, "max_temp": 600, "min_strength": 1200, "lead_time": 10})
	want := []string{
		"High temperature requirements limit material selection",
		"High strength requirements may increase cost and weight",
		"Short lead time may limit supplier options",
	}
	if !slices.Equal(got, want) {
		t.Errorf("RiskFactors() = %v, want %v", got, want)
	}
}

func TestExpectedPerformance(t *testing.T) {
	t.Parallel()
	if got := ExpectedPerformance(nil); !reflect.DeepEqual(got, map[string]float64{"overall_score": 0.8}) {
		t.Errorf("ExpectedPerformance(nil) = %v", got)
	}
	got := ExpectedPerformance([]string{"sustainability"})
	if got["sustainability_score"] != 0.725 || got["overall_score"] != 0.725 {
		t.Errorf("ExpectedPerformance() = %v", got)
	}
}
