// MatTailor - Material Recommendation and Trade-off Analysis Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mattailor

package recommend

import (
	"context"
	"errors"
	"math"
	"slices"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/mattailor/internal/cache"
	"github.com/tomtom215/mattailor/internal/catalog"
	"github.com/tomtom215/mattailor/internal/models"
	"github.com/tomtom215/mattailor/internal/scoring"
)

// failingSource wraps a catalog and fails material queries on demand.
type failingSource struct {
	*catalog.Catalog
	err error
}

func (f *failingSource) QueryMaterials(ctx context.Context, filters ...catalog.Filter) ([]*models.Material, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.Catalog.QueryMaterials(ctx, filters...)
}

// slowScorer delays every call.
type slowScorer struct {
	delay time.Duration
	calls atomic.Int32
}

func (s *slowScorer) ScoreOrDegraded(*models.Material, *models.Requirements) models.MaterialScore {
	s.calls.Add(1)
	time.Sleep(s.delay)
	return scoring.Degraded
}

// fakeEnhancer restricts the query to one category.
type fakeEnhancer struct {
	category models.Category
	calls    atomic.Int32
}

func (f *fakeEnhancer) ProcessQuery(_ context.Context, _ string, base models.MaterialQuery) models.MaterialQuery {
	f.calls.Add(1)
	out := base.Clone()
	out.PreferredCategories = []models.Category{f.category}
	return out
}

// identityEnhancer recognises nothing and returns the base query.
type identityEnhancer struct {
	calls atomic.Int32
}

func (f *identityEnhancer) ProcessQuery(_ context.Context, _ string, base models.MaterialQuery) models.MaterialQuery {
	f.calls.Add(1)
	return base
}

type fakeSimulator struct {
	out map[string]float64
}

func (f *fakeSimulator) SimulateProperties(context.Context, *models.Material, *models.Requirements) map[string]float64 {
	return f.out
}

func loadCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	c, err := catalog.LoadDefault()
	if err != nil {
		t.Fatalf("LoadDefault() error = %v", err)
	}
	return c
}

func newRecommender(t *testing.T, cfg *Config, src Source, rc cache.ResultCache) *Recommender {
	t.Helper()
	r, err := New(cfg, src, scoring.NewScorer(), rc, zerolog.Nop())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return r
}

func materialIDs(ms []*models.Material) []string {
	out := make([]string, len(ms))
	for i, m := range ms {
		out[i] = m.ID
	}
	return out
}

func steelQuery() models.MaterialQuery {
	q := models.NewMaterialQuery()
	q.EnableSimulation = false
	q.Requirements.MinTensileStrength = models.Float(500)
	q.Requirements.MaxCostPerKg = models.Float(10)
	return q
}

func TestNew_Validation(t *testing.T) {
	t.Parallel()
	c := loadCatalog(t)

	if _, err := New(&Config{}, c, scoring.NewScorer(), nil, zerolog.Nop()); err == nil {
		t.Error("New() with zero config should fail validation")
	}
	if _, err := New(nil, nil, scoring.NewScorer(), nil, zerolog.Nop()); !errors.Is(err, ErrCatalogUnavailable) {
		t.Errorf("New() with nil source error = %v, want ErrCatalogUnavailable", err)
	}
	if _, err := New(nil, c, nil, nil, zerolog.Nop()); err == nil {
		t.Error("New() with nil scorer should fail")
	}
}

func TestRecommend_Steel316LScenario(t *testing.T) {
	t.Parallel()
	r := newRecommender(t, nil, loadCatalog(t), nil)

	res, err := r.Recommend(t.Context(), steelQuery())
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}

	idx := slices.Index(materialIDs(res.Materials), "steel_316l")
	if idx < 0 {
		t.Fatalf("steel_316l not in results %v", materialIDs(res.Materials))
	}
	sc := res.Scores[idx]
	if sc.OverallScore <= 0.1 {
		t.Errorf("OverallScore = %v, want > 0.1", sc.OverallScore)
	}
	if math.Abs(sc.MechanicalMatch-1.0) > 1e-9 {
		t.Errorf("MechanicalMatch = %v, want 1.0", sc.MechanicalMatch)
	}

	for _, m := range res.Materials {
		if *m.TensileStrength < 500 || *m.CostPerKg > 10 {
			t.Errorf("%s violates the hard filters", m.ID)
		}
	}
	for i := 1; i < len(res.Scores); i++ {
		if res.Scores[i].OverallScore > res.Scores[i-1].OverallScore {
			t.Errorf("scores not descending at %d", i)
		}
	}

	if res.BestPerformance == nil || *res.BestPerformance != res.Materials[0].ID {
		t.Errorf("BestPerformance = %v, want %s", res.BestPerformance, res.Materials[0].ID)
	}
	if res.MostCostEffective == nil || res.MostSustainable == nil {
		t.Error("MostCostEffective and MostSustainable should be set")
	}
	if res.TotalResults != len(res.Materials) {
		t.Errorf("TotalResults = %d, want %d", res.TotalResults, len(res.Materials))
	}
	if res.DataCompleteness <= 0 || res.DataCompleteness > 1 {
		t.Errorf("DataCompleteness = %v, want (0,1]", res.DataCompleteness)
	}

	wantSummary := models.QuerySummary{
		KeyRequirements: []string{"Tensile strength ≥ 500.0 MPa"},
		Constraints:     []string{"Cost ≤ $10.0/kg"},
		Preferences:     []string{},
	}
	if !slices.Equal(res.QuerySummary.KeyRequirements, wantSummary.KeyRequirements) ||
		!slices.Equal(res.QuerySummary.Constraints, wantSummary.Constraints) ||
		len(res.QuerySummary.Preferences) != 0 {
		t.Errorf("QuerySummary = %+v, want %+v", res.QuerySummary, wantSummary)
	}
}

func TestRecommend_CostBelowCatalog(t *testing.T) {
	t.Parallel()
	r := newRecommender(t, nil, loadCatalog(t), nil)

	q := models.NewMaterialQuery()
	q.Requirements.MaxCostPerKg = models.Float(1.0)

	res, err := r.Recommend(t.Context(), q)
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}
	if res.TotalResults != 0 || len(res.Materials) != 0 {
		t.Errorf("got %d results (%d returned), want 0", res.TotalResults, len(res.Materials))
	}
	if res.BestPerformance != nil || res.MostCostEffective != nil || res.MostSustainable != nil {
		t.Error("summary ids should be nil for an empty result")
	}
	if res.ConfidenceLevel != 0 || res.DataCompleteness != 0 {
		t.Errorf("ConfidenceLevel = %v, DataCompleteness = %v, want 0, 0", res.ConfidenceLevel, res.DataCompleteness)
	}
}

func TestRecommend_TruncatesButCountsAll(t *testing.T) {
	t.Parallel()
	r := newRecommender(t, nil, loadCatalog(t), nil)

	q := models.NewMaterialQuery()
	q.MaxResults = 2
	res, err := r.Recommend(t.Context(), q)
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}
	if len(res.Materials) != 2 || len(res.Scores) != 2 {
		t.Fatalf("returned %d materials, want 2", len(res.Materials))
	}
	if res.TotalResults != 21 {
		t.Errorf("TotalResults = %d, want 21 (whole catalog above the threshold)", res.TotalResults)
	}
}

func TestRecommend_CachedResultIsIdentical(t *testing.T) {
	t.Parallel()
	r := newRecommender(t, nil, loadCatalog(t), cache.NewMemoryCache(16, time.Hour))

	first, err := r.Recommend(t.Context(), steelQuery())
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}
	second, err := r.Recommend(t.Context(), steelQuery())
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}
	if first != second {
		t.Error("second call should return the cached result")
	}

	m := r.Metrics()
	if m.Requests != 2 || m.CacheHits != 1 || m.CacheMisses != 1 || m.Errors != 0 {
		t.Errorf("Metrics() = %+v", m)
	}

	if err := r.ClearCache(t.Context()); err != nil {
		t.Fatalf("ClearCache() error = %v", err)
	}
	third, err := r.Recommend(t.Context(), steelQuery())
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}
	if third == first {
		t.Error("result after ClearCache should be recomputed")
	}
}

func TestRecommendWithOutcome(t *testing.T) {
	t.Parallel()
	r := newRecommender(t, nil, loadCatalog(t), cache.NewMemoryCache(16, time.Hour))
	r.SetEnhancer(&fakeEnhancer{category: models.CategoryMetal})

	q := steelQuery()
	q.NaturalLanguageQuery = models.String("strong steel")

	_, first, err := r.RecommendWithOutcome(t.Context(), q)
	if err != nil {
		t.Fatalf("RecommendWithOutcome() error = %v", err)
	}
	if first.Cached || !first.Enhanced || first.Fingerprint == "" {
		t.Errorf("first outcome = %+v", first)
	}

	_, second, err := r.RecommendWithOutcome(t.Context(), q)
	if err != nil {
		t.Fatalf("RecommendWithOutcome() error = %v", err)
	}
	if !second.Cached || second.Fingerprint != first.Fingerprint {
		t.Errorf("second outcome = %+v, want cached with fingerprint %s", second, first.Fingerprint)
	}

	_, plain, err := r.RecommendWithOutcome(t.Context(), steelQuery())
	if err != nil {
		t.Fatalf("RecommendWithOutcome() error = %v", err)
	}
	if plain.Enhanced {
		t.Error("query without natural language text should not be enhanced")
	}
}

func TestRecommend_Deterministic(t *testing.T) {
	t.Parallel()
	c := loadCatalog(t)
	cfg := DefaultConfig()
	cfg.Workers = 8

	q := models.NewMaterialQuery()
	q.EnableSimulation = false
	q.Requirements.MaxOperatingTemp = models.Float(300)

	var want []string
	for i := 0; i < 5; i++ {
		r := newRecommender(t, cfg, c, nil)
		res, err := r.Recommend(t.Context(), q)
		if err != nil {
			t.Fatalf("Recommend() error = %v", err)
		}
		got := materialIDs(res.Materials)
		if want == nil {
			want = got
			continue
		}
		if !slices.Equal(got, want) {
			t.Fatalf("run %d order = %v, want %v", i, got, want)
		}
	}
}

func TestRecommend_SourceFailure(t *testing.T) {
	t.Parallel()
	src := &failingSource{Catalog: loadCatalog(t), err: errors.New("connection refused")}
	r := newRecommender(t, nil, src, nil)

	_, err := r.Recommend(t.Context(), steelQuery())
	if !errors.Is(err, ErrCatalogUnavailable) {
		t.Fatalf("Recommend() error = %v, want ErrCatalogUnavailable", err)
	}
	if r.Metrics().Errors != 1 {
		t.Errorf("Errors = %d, want 1", r.Metrics().Errors)
	}
}

func TestRecommend_ScoringTimeout(t *testing.T) {
	t.Parallel()
	cfg := DefaultConfig()
	cfg.Workers = 1
	cfg.Timeout = 5 * time.Millisecond

	sc := &slowScorer{delay: 20 * time.Millisecond}
	r, err := New(cfg, loadCatalog(t), sc, nil, zerolog.Nop())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	_, err = r.Recommend(t.Context(), models.NewMaterialQuery())
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("Recommend() error = %v, want deadline exceeded", err)
	}
	if n := sc.calls.Load(); n >= 21 {
		t.Errorf("scorer called %d times, want scoring to stop early", n)
	}
}

func TestRecommend_RejectsUnknownCategory(t *testing.T) {
	t.Parallel()
	r := newRecommender(t, nil, loadCatalog(t), nil)

	q := models.NewMaterialQuery()
	q.PreferredCategories = []models.Category{"unobtainium"}
	if _, err := r.Recommend(t.Context(), q); !errors.Is(err, models.ErrUnknownCategory) {
		t.Errorf("Recommend() error = %v, want ErrUnknownCategory", err)
	}
}

func TestRecommend_EnhancesNaturalLanguageQuery(t *testing.T) {
	t.Parallel()
	rc := cache.NewMemoryCache(16, time.Hour)
	r := newRecommender(t, nil, loadCatalog(t), rc)
	enh := &fakeEnhancer{category: models.CategoryPolymer}
	r.SetEnhancer(enh)

	q := models.NewMaterialQuery()
	q.NaturalLanguageQuery = models.String("something light and cheap")
	res, err := r.Recommend(t.Context(), q)
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}
	if enh.calls.Load() != 1 {
		t.Errorf("enhancer called %d times, want 1", enh.calls.Load())
	}
	if len(res.Materials) == 0 {
		t.Fatal("expected polymer results")
	}
	for _, m := range res.Materials {
		if m.Category != models.CategoryPolymer {
			t.Errorf("%s has category %s, want polymer", m.ID, m.Category)
		}
	}

	// The enhanced query is the cache key.
	enhanced := enh.ProcessQuery(t.Context(), "", q)
	enhanced.MaxResults = q.MaxResults
	key, err := Fingerprint(enhanced)
	if err != nil {
		t.Fatalf("Fingerprint() error = %v", err)
	}
	if _, ok := rc.Get(t.Context(), key); !ok {
		t.Error("result should be cached under the enhanced query fingerprint")
	}
}

func TestRecommend_SkipsEnhancerWhenDisabled(t *testing.T) {
	t.Parallel()
	cfg := DefaultConfig()
	cfg.EnableNLP = false
	r := newRecommender(t, cfg, loadCatalog(t), nil)
	enh := &fakeEnhancer{category: models.CategoryPolymer}
	r.SetEnhancer(enh)

	q := models.NewMaterialQuery()
	q.NaturalLanguageQuery = models.String("polymer")
	if _, err := r.Recommend(t.Context(), q); err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}
	if enh.calls.Load() != 0 {
		t.Error("enhancer should not run when NLP is disabled")
	}
}

func TestRecommend_AttachesSimulatedProperties(t *testing.T) {
	t.Parallel()
	c := loadCatalog(t)
	r := newRecommender(t, nil, c, nil)
	r.SetSimulator(&fakeSimulator{out: map[string]float64{
		"hardness":                    210,
		"hardness_confidence":         0.8,
		"tensile_strength":            1,
		"tensile_strength_confidence": 0.9,
		"not_a_property":              3,
	}})

	q := steelQuery()
	q.EnableSimulation = true
	res, err := r.Recommend(t.Context(), q)
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}
	if !res.SimulationUsed {
		t.Error("SimulationUsed should follow the query flag")
	}

	idx := slices.Index(materialIDs(res.Materials), "steel_316l")
	if idx < 0 {
		t.Fatal("steel_316l missing")
	}
	got := res.Materials[idx]
	if got.SimulatedProperties["hardness"] != 210 || got.ConfidenceScores["hardness"] != 0.8 {
		t.Errorf("simulated = %v, confidence = %v", got.SimulatedProperties, got.ConfidenceScores)
	}
	if _, ok := got.SimulatedProperties["tensile_strength"]; ok {
		t.Error("known catalog properties must not be simulated")
	}
	if _, ok := got.SimulatedProperties["not_a_property"]; ok {
		t.Error("unknown property names must be dropped")
	}

	orig, err := c.MaterialByID(t.Context(), "steel_316l")
	if err != nil {
		t.Fatalf("MaterialByID() error = %v", err)
	}
	if orig.SimulatedProperties != nil {
		t.Error("catalog record was mutated")
	}
}

func TestRecommend_SummaryIgnoresSimulatedValues(t *testing.T) {
	t.Parallel()
	c := loadCatalog(t)
	sim := &fakeSimulator{out: map[string]float64{
		"fatigue_limit":            240,
		"fatigue_limit_confidence": 0.7,
		"hardness":                 210,
		"hardness_confidence":      0.8,
	}}

	plain := newRecommender(t, nil, c, nil)
	withSim := newRecommender(t, nil, c, nil)
	withSim.SetSimulator(sim)

	q := steelQuery()
	q.EnableSimulation = true
	off, err := plain.Recommend(t.Context(), q)
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}
	on, err := withSim.Recommend(t.Context(), q)
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}

	if !slices.Equal(materialIDs(off.Materials), materialIDs(on.Materials)) {
		t.Fatalf("rankings differ: %v vs %v", materialIDs(off.Materials), materialIDs(on.Materials))
	}
	attached := false
	for _, m := range on.Materials {
		if len(m.SimulatedProperties) > 0 {
			attached = true
		}
	}
	if !attached {
		t.Fatal("simulated properties were not attached")
	}
	if on.DataCompleteness != off.DataCompleteness {
		t.Errorf("DataCompleteness with simulation = %v, without = %v", on.DataCompleteness, off.DataCompleteness)
	}
	if on.DataCompleteness != Completeness(off.Materials) {
		t.Errorf("DataCompleteness = %v, want completeness of catalog records %v", on.DataCompleteness, Completeness(off.Materials))
	}
	if on.ConfidenceLevel != off.ConfidenceLevel {
		t.Errorf("ConfidenceLevel with simulation = %v, without = %v", on.ConfidenceLevel, off.ConfidenceLevel)
	}
}

func TestRecommendWithOutcome_UnchangedQueryIsNotEnhanced(t *testing.T) {
	t.Parallel()
	r := newRecommender(t, nil, loadCatalog(t), nil)
	enh := &identityEnhancer{}
	r.SetEnhancer(enh)

	q := steelQuery()
	q.NaturalLanguageQuery = models.String("zzz qqq")
	_, outcome, err := r.RecommendWithOutcome(t.Context(), q)
	if err != nil {
		t.Fatalf("RecommendWithOutcome() error = %v", err)
	}
	if enh.calls.Load() != 1 {
		t.Fatalf("enhancer called %d times, want 1", enh.calls.Load())
	}
	if outcome.Enhanced {
		t.Error("a query the enhancer returned unchanged should not count as enhanced")
	}
}

func TestBuildFilters_OperatingTemperature(t *testing.T) {
	t.Parallel()

	// Both bounds produce melting_point >= x. When both are set the max
	// bound wins. This mirrors the reference behaviour and is kept as-is.
	tests := []struct {
		name     string
		min, max *float64
		want     []catalog.Filter
	}{
		{"none", nil, nil, nil},
		{"min only", models.Float(100), nil, []catalog.Filter{catalog.Gte(catalog.FieldMeltingPoint, 150)}},
		{"max only", nil, models.Float(200), []catalog.Filter{catalog.Gte(catalog.FieldMeltingPoint, 300)}},
		{"both", models.Float(100), models.Float(200), []catalog.Filter{catalog.Gte(catalog.FieldMeltingPoint, 300)}},
		{"zero min is unset", models.Float(0), nil, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			q := models.NewMaterialQuery()
			q.Requirements.MinOperatingTemp = tt.min
			q.Requirements.MaxOperatingTemp = tt.max
			got := BuildFilters(q)
			if len(got) != len(tt.want) {
				t.Fatalf("BuildFilters() = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i].String() != tt.want[i].String() {
					t.Errorf("filter %d = %s, want %s", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestBuildFilters_Full(t *testing.T) {
	t.Parallel()
	q := models.NewMaterialQuery()
	q.PreferredCategories = []models.Category{models.CategoryMetal, models.CategoryCeramic}
	q.ExcludeCategories = []models.Category{models.CategoryPolymer}
	q.Requirements = models.Requirements{
		MinTensileStrength:     models.Float(100),
		MaxTensileStrength:     models.Float(900),
		MinDensity:             models.Float(1),
		MaxDensity:             models.Float(5),
		MaxCostPerKg:           models.Float(20),
		MinSustainabilityScore: models.Float(6),
		MaxLeadTimeDays:        models.Int(30),
		GeographicRegion:       models.String("Europe"),
		MinYieldStrength:       models.Float(50), // scored, never filtered
	}

	got := BuildFilters(q)
	want := []catalog.Filter{
		catalog.In(catalog.FieldCategory, "metal", "ceramic"),
		catalog.NotIn(catalog.FieldCategory, "polymer"),
		catalog.Gte(catalog.FieldTensileStrength, 100),
		catalog.Lte(catalog.FieldTensileStrength, 900),
		catalog.Gte(catalog.FieldDensity, 1),
		catalog.Lte(catalog.FieldDensity, 5),
		catalog.Lte(catalog.FieldCostPerKg, 20),
		catalog.Gte(catalog.FieldSustainabilityScore, 6),
		catalog.Lte(catalog.FieldLeadTimeDays, 30),
		catalog.Eq(catalog.FieldGeographicRegion, "Europe"),
	}
	if len(got) != len(want) {
		t.Fatalf("BuildFilters() returned %d filters, want %d: %v", len(got), len(want), got)
	}
	for i := range want {
		if got[i].String() != want[i].String() {
			t.Errorf("filter %d = %s, want %s", i, got[i], want[i])
		}
	}
}

func TestFingerprint(t *testing.T) {
	t.Parallel()
	a, err := Fingerprint(steelQuery())
	if err != nil {
		t.Fatalf("Fingerprint() error = %v", err)
	}
	b, _ := Fingerprint(steelQuery())
	if a != b {
		t.Error("equal queries should share a fingerprint")
	}
	if len(a) != 64 {
		t.Errorf("len(fingerprint) = %d, want 64", len(a))
	}

	q := steelQuery()
	q.Requirements.MaxCostPerKg = models.Float(11)
	c, _ := Fingerprint(q)
	if c == a {
		t.Error("different queries should not share a fingerprint")
	}
}

func TestConfidence(t *testing.T) {
	t.Parallel()
	mk := func(vals ...float64) []models.MaterialScore {
		out := make([]models.MaterialScore, len(vals))
		for i, v := range vals {
			out[i].OverallScore = v
		}
		return out
	}
	tests := []struct {
		name   string
		scores []models.MaterialScore
		want   float64
	}{
		{"empty", nil, 0},
		{"single", mk(0.8), 0.5},
		{"spread", mk(0.2, 0.6), 0.9},
		{"equal", mk(0.4, 0.4, 0.4), 0.5},
		{"clamped", mk(0, 1), 1.0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := Confidence(tt.scores); math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("Confidence() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCompleteness(t *testing.T) {
	t.Parallel()
	bare := &models.Material{ID: "x", Name: "X", Category: models.CategoryMetal}
	if got, want := Completeness([]*models.Material{bare}), 1.0/float64(models.CompletenessSlots); math.Abs(got-want) > 1e-9 {
		t.Errorf("Completeness(bare) = %v, want %v", got, want)
	}
	if Completeness(nil) != 0 {
		t.Error("Completeness(nil) should be 0")
	}
}

func TestSummarize_Sustainability(t *testing.T) {
	t.Parallel()
	q := models.NewMaterialQuery()
	d := models.DomainMarine
	q.ApplicationDomain = &d
	q.Requirements.MinSustainabilityScore = models.Float(7.5)

	s := Summarize(q)
	if s.ApplicationDomain == nil || *s.ApplicationDomain != models.DomainMarine {
		t.Errorf("ApplicationDomain = %v, want marine", s.ApplicationDomain)
	}
	if !slices.Equal(s.Preferences, []string{"Sustainability score ≥ 7.5"}) {
		t.Errorf("Preferences = %v", s.Preferences)
	}
	if len(s.KeyRequirements) != 0 || len(s.Constraints) != 0 {
		t.Errorf("unexpected entries: %+v", s)
	}
}

func TestFindAlternatives(t *testing.T) {
	t.Parallel()
	r := newRecommender(t, nil, loadCatalog(t), nil)

	alts, err := r.FindAlternatives(t.Context(), "steel_316l", models.Requirements{})
	if err != nil {
		t.Fatalf("FindAlternatives() error = %v", err)
	}
	if len(alts) == 0 || len(alts) > 10 {
		t.Errorf("len(alternatives) = %d, want 1..10", len(alts))
	}
	for _, m := range alts {
		if m.ID == "steel_316l" {
			t.Error("alternatives must not include the reference")
		}
	}

	none, err := r.FindAlternatives(t.Context(), "no_such_material", models.Requirements{})
	if err != nil || none == nil || len(none) != 0 {
		t.Errorf("FindAlternatives(unknown) = %v, %v; want empty, nil", none, err)
	}
}

func TestSearch(t *testing.T) {
	t.Parallel()
	r := newRecommender(t, nil, loadCatalog(t), nil)

	metal := models.CategoryMetal
	got, err := r.Search(t.Context(), "steel", &metal, 0)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(got) == 0 {
		t.Fatal("Search(steel) returned nothing")
	}
	for _, m := range got {
		if m.Category != models.CategoryMetal {
			t.Errorf("%s is not a metal", m.ID)
		}
	}

	one, err := r.Search(t.Context(), "steel", nil, 1)
	if err != nil || len(one) != 1 {
		t.Errorf("Search(limit 1) = %d results, err %v", len(one), err)
	}
}

func TestMaterialByID_NotFound(t *testing.T) {
	t.Parallel()
	r := newRecommender(t, nil, loadCatalog(t), nil)
	if _, err := r.MaterialByID(t.Context(), "missing"); !errors.Is(err, catalog.ErrNotFound) {
		t.Errorf("MaterialByID() error = %v, want ErrNotFound", err)
	}
}

func TestSuppliers(t *testing.T) {
	t.Parallel()
	r := newRecommender(t, nil, loadCatalog(t), nil)

	tests := []struct {
		name     string
		material string
		region   *string
		maxOrder *float64
		want     []string
	}{
		{"by material", "steel_316l", nil, nil, []string{"supplier_1"}},
		{"region match", "steel_316l", models.String("detroit"), nil, []string{"supplier_1"}},
		{"region miss", "steel_316l", models.String("munich"), nil, []string{}},
		{"order ceiling excludes", "steel_316l", nil, models.Float(50), []string{}},
		{"order ceiling includes", "peek", nil, models.Float(50), []string{"supplier_2"}},
		{"unknown material", "unobtainium", nil, nil, []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := r.Suppliers(t.Context(), tt.material, tt.region, tt.maxOrder)
			if err != nil {
				t.Fatalf("Suppliers() error = %v", err)
			}
			ids := make([]string, len(got))
			for i, s := range got {
				ids[i] = s.ID
			}
			if !slices.Equal(ids, tt.want) {
				t.Errorf("Suppliers() = %v, want %v", ids, tt.want)
			}
		})
	}
}

func TestConfig_Validate(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name   string
		modify func(*Config)
	}{
		{"zero workers", func(c *Config) { c.Workers = 0 }},
		{"zero timeout", func(c *Config) { c.Timeout = 0 }},
		{"min score above 1", func(c *Config) { c.MinScore = 1.5 }},
		{"negative threshold", func(c *Config) { c.SimilarityThreshold = -0.1 }},
		{"zero alternatives", func(c *Config) { c.MaxAlternatives = 0 }},
		{"zero search limit", func(c *Config) { c.SearchLimit = 0 }},
	}
	if err := DefaultConfig().Validate(); err != nil {
		t.Fatalf("DefaultConfig().Validate() error = %v", err)
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := DefaultConfig()
			tt.modify(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("Validate() should fail")
			}
		})
	}
}

func TestConfig_Clone(t *testing.T) {
	t.Parallel()
	orig := DefaultConfig()
	c := orig.Clone()
	c.Workers = 99
	if orig.Workers == 99 {
		t.Error("Clone() should not share state")
	}
}
