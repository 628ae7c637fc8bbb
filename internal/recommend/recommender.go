// MatTailor - Material Recommendation and Trade-off Analysis Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mattailor

package recommend

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/tomtom215/mattailor/internal/cache"
	"github.com/tomtom215/mattailor/internal/catalog"
	"github.com/tomtom215/mattailor/internal/metrics"
	"github.com/tomtom215/mattailor/internal/models"
)

// ErrCatalogUnavailable wraps failures of the material source. It is the only
// error Recommend returns for a well-formed query besides timeouts.
var ErrCatalogUnavailable = errors.New("catalog unavailable")

// Source is the read side of the catalog the Recommender depends on.
// *catalog.Catalog implements it.
type Source interface {
	QueryMaterials(ctx context.Context, filters ...catalog.Filter) ([]*models.Material, error)
	MaterialByID(ctx context.Context, id string) (*models.Material, error)
	SearchText(ctx context.Context, query string, filters []catalog.Filter, limit int) ([]*models.Material, error)
	FindSimilar(ctx context.Context, ref *models.Material, threshold float64, maxResults int) ([]*models.Material, error)
	QuerySuppliers(ctx context.Context, filters ...catalog.Filter) ([]*models.Supplier, error)
}

// Scorer maps one material and one requirements set to a score. It must not
// fail; *scoring.Scorer implements it through ScoreOrDegraded.
type Scorer interface {
	ScoreOrDegraded(m *models.Material, r *models.Requirements) models.MaterialScore
}

// QueryEnhancer turns a natural language query into structured fields. It
// must return base unchanged when it cannot parse the text.
type QueryEnhancer interface {
	ProcessQuery(ctx context.Context, text string, base models.MaterialQuery) models.MaterialQuery
}

// PropertySimulator predicts property values for a material. The returned
// map holds "<property>" values and "<property>_confidence" entries; it is
// empty on failure.
type PropertySimulator interface {
	SimulateProperties(ctx context.Context, m *models.Material, r *models.Requirements) map[string]float64
}

// Metrics is a point-in-time snapshot of Recommender counters.
type Metrics struct {
	Requests    int64 `json:"requests"`
	CacheHits   int64 `json:"cache_hits"`
	CacheMisses int64 `json:"cache_misses"`
	Errors      int64 `json:"errors"`
}

// Recommender turns a MaterialQuery into a ranked RecommendationResult.
// It owns no catalog data; it is safe for concurrent use.
type Recommender struct {
	config *Config
	logger zerolog.Logger

	source    Source
	scorer    Scorer
	cache     cache.ResultCache
	enhancer  QueryEnhancer
	simulator PropertySimulator

	requestCount atomic.Int64
	cacheHits    atomic.Int64
	cacheMisses  atomic.Int64
	errorCount   atomic.Int64
}

// New creates a Recommender. A nil cfg uses DefaultConfig; a nil rc disables
// result caching.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func New(cfg *Config, source Source, scorer Scorer, rc cache.ResultCache, logger zerolog.Logger) (*Recommender, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if source == nil {
		return nil, fmt.Errorf("%w: nil source", ErrCatalogUnavailable)
	}
	if scorer == nil {
		return nil, errors.New("nil scorer")
	}
	if rc == nil {
		rc = noCache{}
	}

	return &Recommender{
		config: cfg.Clone(),
		logger: logger.With().Str("component", "recommend").Logger(),
		source: source,
		scorer: scorer,
		cache:  rc,
	}, nil
}

// SetEnhancer wires the natural language query processor.
func (r *Recommender) SetEnhancer(e QueryEnhancer) {
	r.enhancer = e
}

// SetSimulator wires the property simulator.
func (r *Recommender) SetSimulator(s PropertySimulator) {
	r.simulator = s
}

// Outcome describes how a recommendation was produced.
type Outcome struct {
	// Fingerprint is the cache key of the query after enhancement.
	Fingerprint string

	// Cached is true when the result was served from the result cache.
	Cached bool

	// Enhanced is true when the NLP enhancer changed the query.
	Enhanced bool
}

// Recommend filters the catalog, scores every candidate, and returns the
// ranked result. Results are cached by the fingerprint of the query after
// enhancement; a cache hit returns the stored result unchanged.
func (r *Recommender) Recommend(ctx context.Context, query models.MaterialQuery) (*models.RecommendationResult, error) {
	result, _, err := r.RecommendWithOutcome(ctx, query)
	return result, err
}

// RecommendWithOutcome is Recommend that also reports cache and enhancement
// details for the caller's response metadata and events.
func (r *Recommender) RecommendWithOutcome(ctx context.Context, query models.MaterialQuery) (*models.RecommendationResult, Outcome, error) {
	start := time.Now()
	r.requestCount.Add(1)

	var outcome Outcome
	q, enhanced := r.enhance(ctx, query)
	outcome.Enhanced = enhanced
	if err := q.CheckEnums(); err != nil {
		r.errorCount.Add(1)
		return nil, outcome, fmt.Errorf("invalid query: %w", err)
	}
	if q.MaxResults <= 0 {
		q.MaxResults = models.DefaultMaxResults
	}

	key, err := Fingerprint(q)
	if err != nil {
		r.errorCount.Add(1)
		return nil, outcome, err
	}
	outcome.Fingerprint = key

	if cached, ok := r.cache.Get(ctx, key); ok {
		r.cacheHits.Add(1)
		outcome.Cached = true
		metrics.RecordRecommendation(time.Since(start), 0, true, nil)
		r.logger.Debug().Str("fingerprint", key).Msg("Returning cached recommendation")
		return cached, outcome, nil
	}
	r.cacheMisses.Add(1)

	result, candidates, err := r.compute(ctx, q, start)
	if err != nil {
		r.errorCount.Add(1)
		metrics.RecordRecommendation(time.Since(start), candidates, false, err)
		return nil, outcome, err
	}

	r.cache.Set(ctx, key, result)
	metrics.RecordRecommendation(time.Since(start), candidates, false, nil)

	r.logger.Info().
		Int("candidates", candidates).
		Int("total_results", result.TotalResults).
		Int("returned", len(result.Materials)).
		Float64("processing_time_ms", result.ProcessingTimeMS).
		Msg("Recommendation complete")

	return result, outcome, nil
}

func (r *Recommender) enhance(ctx context.Context, query models.MaterialQuery) (models.MaterialQuery, bool) {
	if !r.config.EnableNLP || r.enhancer == nil {
		return query, false
	}
	if query.NaturalLanguageQuery == nil || strings.TrimSpace(*query.NaturalLanguageQuery) == "" {
		return query, false
	}
	out := r.enhancer.ProcessQuery(ctx, *query.NaturalLanguageQuery, query)
	return out, queryChanged(query, out)
}

// queryChanged compares fingerprints; an unhashable query counts as changed.
func queryChanged(before, after models.MaterialQuery) bool {
	a, errA := Fingerprint(before)
	b, errB := Fingerprint(after)
	return errA != nil || errB != nil || a != b
}

// compute runs one uncached recommendation. The candidate count is returned
// even on failure for metrics.
func (r *Recommender) compute(ctx context.Context, q models.MaterialQuery, start time.Time) (*models.RecommendationResult, int, error) {
	candidates, err := r.source.QueryMaterials(ctx, BuildFilters(q)...)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %w", ErrCatalogUnavailable, err)
	}
	r.logger.Debug().Int("candidates", len(candidates)).Msg("Found candidate materials")

	scores, err := r.scoreCandidates(ctx, candidates, &q.Requirements)
	if err != nil {
		return nil, len(candidates), err
	}

	ranked := make([]scoredMaterial, 0, len(candidates))
	for i, m := range candidates {
		if scores[i].OverallScore >= r.config.MinScore {
			ranked = append(ranked, scoredMaterial{material: m, score: scores[i]})
		}
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].score.OverallScore > ranked[j].score.OverallScore
	})

	total := len(ranked)
	if len(ranked) > q.MaxResults {
		ranked = ranked[:q.MaxResults]
	}

	result := &models.RecommendationResult{
		Materials:      make([]*models.Material, len(ranked)),
		Scores:         make([]models.MaterialScore, len(ranked)),
		QuerySummary:   Summarize(q),
		TotalResults:   total,
		SimulationUsed: q.EnableSimulation,
	}
	for i, sm := range ranked {
		result.Materials[i] = sm.material
		result.Scores[i] = sm.score
	}

	if len(ranked) > 0 {
		best := result.Materials[0].ID
		result.BestPerformance = &best
		result.MostCostEffective = argmaxID(result.Materials, result.Scores, func(s models.MaterialScore) float64 { return s.CostScore })
		result.MostSustainable = argmaxID(result.Materials, result.Scores, func(s models.MaterialScore) float64 { return s.SustainabilityScore })
	}
	// Summary figures describe catalog data only, so they are taken before
	// simulated values are attached.
	result.ConfidenceLevel = Confidence(result.Scores)
	result.DataCompleteness = Completeness(result.Materials)

	if q.EnableSimulation && r.config.EnableSimulation && r.simulator != nil {
		for i, m := range result.Materials {
			result.Materials[i] = r.attachSimulated(ctx, m, &q.Requirements)
		}
	}

	result.ProcessingTimeMS = float64(time.Since(start).Microseconds()) / 1000.0

	return result, len(candidates), nil
}

type scoredMaterial struct {
	material *models.Material
	score    models.MaterialScore
}

// scoreCandidates scores every candidate with at most Workers goroutines.
// Scores are written by index so the result order matches candidates.
func (r *Recommender) scoreCandidates(ctx context.Context, candidates []*models.Material, req *models.Requirements) ([]models.MaterialScore, error) {
	ctx, cancel := context.WithTimeout(ctx, r.config.Timeout)
	defer cancel()

	scores := make([]models.MaterialScore, len(candidates))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.config.Workers)

	for i, m := range candidates {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			scores[i] = r.scorer.ScoreOrDegraded(m, req)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("scoring %d candidates: %w", len(candidates), err)
	}
	return scores, nil
}

// attachSimulated returns a copy of m carrying simulated values for the
// properties m lacks. m itself is never modified.
func (r *Recommender) attachSimulated(ctx context.Context, m *models.Material, req *models.Requirements) *models.Material {
	predicted := r.simulator.SimulateProperties(ctx, m, req)
	if len(predicted) == 0 {
		return m
	}

	values := make(map[string]float64)
	confidences := make(map[string]float64)
	for key, v := range predicted {
		prop, isConfidence := strings.CutSuffix(key, "_confidence")
		field, err := catalog.ParseField(prop)
		if err != nil {
			continue
		}
		if _, known := catalog.NumericValue(m, field); known {
			continue
		}
		if isConfidence {
			confidences[prop] = v
		} else {
			values[prop] = v
		}
	}
	if len(values) == 0 {
		return m
	}

	out := m.Clone()
	if out.SimulatedProperties == nil {
		out.SimulatedProperties = make(map[string]float64, len(values))
	}
	for k, v := range values {
		out.SimulatedProperties[k] = v
	}
	if len(confidences) > 0 {
		if out.ConfidenceScores == nil {
			out.ConfidenceScores = make(map[string]float64, len(confidences))
		}
		for k, v := range confidences {
			out.ConfidenceScores[k] = v
		}
	}
	return out
}

// BuildFilters translates a query into catalog predicates. Zero-valued bounds
// are treated as unset.
//
// Both operating temperature bounds map onto melting_point >= x, and the max
// bound replaces the min bound when both are present. Geographic region is
// passed through but materials carry no region, so it never narrows results.
func BuildFilters(q models.MaterialQuery) []catalog.Filter {
	var filters []catalog.Filter
	req := q.Requirements

	if len(q.PreferredCategories) > 0 {
		filters = append(filters, catalog.In(catalog.FieldCategory, categoryStrings(q.PreferredCategories)...))
	}
	if len(q.ExcludeCategories) > 0 {
		filters = append(filters, catalog.NotIn(catalog.FieldCategory, categoryStrings(q.ExcludeCategories)...))
	}

	addGte := func(f catalog.Field, p *float64) {
		if truthy(p) {
			filters = append(filters, catalog.Gte(f, *p))
		}
	}
	addLte := func(f catalog.Field, p *float64) {
		if truthy(p) {
			filters = append(filters, catalog.Lte(f, *p))
		}
	}

	addGte(catalog.FieldTensileStrength, req.MinTensileStrength)
	addLte(catalog.FieldTensileStrength, req.MaxTensileStrength)
	addGte(catalog.FieldDensity, req.MinDensity)
	addLte(catalog.FieldDensity, req.MaxDensity)

	switch {
	case truthy(req.MaxOperatingTemp):
		filters = append(filters, catalog.Gte(catalog.FieldMeltingPoint, *req.MaxOperatingTemp+100))
	case truthy(req.MinOperatingTemp):
		filters = append(filters, catalog.Gte(catalog.FieldMeltingPoint, *req.MinOperatingTemp+50))
	}

	addLte(catalog.FieldCostPerKg, req.MaxCostPerKg)
	addGte(catalog.FieldSustainabilityScore, req.MinSustainabilityScore)

	if req.MaxLeadTimeDays != nil && *req.MaxLeadTimeDays != 0 {
		filters = append(filters, catalog.Lte(catalog.FieldLeadTimeDays, float64(*req.MaxLeadTimeDays)))
	}
	if req.GeographicRegion != nil && *req.GeographicRegion != "" {
		filters = append(filters, catalog.Eq(catalog.FieldGeographicRegion, *req.GeographicRegion))
	}

	return filters
}

func truthy(p *float64) bool {
	return p != nil && *p != 0
}

func categoryStrings(cs []models.Category) []string {
	out := make([]string, len(cs))
	for i, c := range cs {
		out[i] = string(c)
	}
	return out
}

// Fingerprint returns the cache key for q: a hex SHA-256 over its JSON form.
func Fingerprint(q models.MaterialQuery) (string, error) {
	data, err := json.Marshal(q)
	if err != nil {
		return "", fmt.Errorf("fingerprint query: %w", err)
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:]), nil
}

// Summarize builds the human-readable digest of q.
func Summarize(q models.MaterialQuery) models.QuerySummary {
	s := models.QuerySummary{
		ApplicationDomain: q.ApplicationDomain,
		KeyRequirements:   []string{},
		Constraints:       []string{},
		Preferences:       []string{},
	}
	req := q.Requirements
	if truthy(req.MinTensileStrength) {
		s.KeyRequirements = append(s.KeyRequirements, "Tensile strength ≥ "+formatNumber(*req.MinTensileStrength)+" MPa")
	}
	if truthy(req.MaxCostPerKg) {
		s.Constraints = append(s.Constraints, "Cost ≤ $"+formatNumber(*req.MaxCostPerKg)+"/kg")
	}
	if truthy(req.MinSustainabilityScore) {
		s.Preferences = append(s.Preferences, "Sustainability score ≥ "+formatNumber(*req.MinSustainabilityScore))
	}
	return s
}

// formatNumber prints v with at least one decimal place: 500 becomes "500.0".
func formatNumber(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}

func argmaxID(ms []*models.Material, scores []models.MaterialScore, dim func(models.MaterialScore) float64) *string {
	if len(ms) == 0 {
		return nil
	}
	best := 0
	for i := 1; i < len(scores); i++ {
		if dim(scores[i]) > dim(scores[best]) {
			best = i
		}
	}
	id := ms[best].ID
	return &id
}

// Confidence is min(1, 0.5 + 2σ) over the overall scores, where σ is the
// population standard deviation. It is 0 for an empty result and 0.5 for a
// single result.
func Confidence(scores []models.MaterialScore) float64 {
	if len(scores) == 0 {
		return 0
	}
	mean := 0.0
	for _, s := range scores {
		mean += s.OverallScore
	}
	mean /= float64(len(scores))

	variance := 0.0
	for _, s := range scores {
		d := s.OverallScore - mean
		variance += d * d
	}
	variance /= float64(len(scores))

	return math.Min(1.0, 0.5+2*math.Sqrt(variance))
}

// Completeness is the fraction of non-identity attribute slots that are set
// across ms. It is 0 for an empty slice.
func Completeness(ms []*models.Material) float64 {
	if len(ms) == 0 {
		return 0
	}
	filled := 0
	for _, m := range ms {
		filled += m.Completeness()
	}
	return float64(filled) / float64(len(ms)*models.CompletenessSlots)
}

// FindAlternatives returns materials similar to the given one. Requirements
// are accepted for interface stability but not applied. An unknown id yields
// an empty list.
func (r *Recommender) FindAlternatives(ctx context.Context, materialID string, _ models.Requirements) ([]*models.Material, error) {
	ref, err := r.source.MaterialByID(ctx, materialID)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			return []*models.Material{}, nil
		}
		return nil, fmt.Errorf("%w: %w", ErrCatalogUnavailable, err)
	}
	alts, err := r.source.FindSimilar(ctx, ref, r.config.SimilarityThreshold, r.config.MaxAlternatives)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCatalogUnavailable, err)
	}
	if alts == nil {
		alts = []*models.Material{}
	}
	return alts, nil
}

// Search matches query against material names and composition, optionally
// restricted to one category.
func (r *Recommender) Search(ctx context.Context, query string, category *models.Category, limit int) ([]*models.Material, error) {
	var filters []catalog.Filter
	if category != nil {
		filters = append(filters, catalog.Eq(catalog.FieldCategory, string(*category)))
	}
	if limit <= 0 {
		limit = r.config.SearchLimit
	}
	ms, err := r.source.SearchText(ctx, query, filters, limit)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCatalogUnavailable, err)
	}
	if ms == nil {
		ms = []*models.Material{}
	}
	return ms, nil
}

// MaterialByID returns one material. Unknown ids return an error wrapping
// catalog.ErrNotFound.
func (r *Recommender) MaterialByID(ctx context.Context, id string) (*models.Material, error) {
	return r.source.MaterialByID(ctx, id)
}

// Suppliers returns suppliers carrying materialID, optionally narrowed by a
// location substring and a minimum order ceiling.
func (r *Recommender) Suppliers(ctx context.Context, materialID string, region *string, maxMinimumOrder *float64) ([]*models.Supplier, error) {
	filters := []catalog.Filter{catalog.Contains(catalog.FieldMaterials, materialID)}
	if region != nil && *region != "" {
		filters = append(filters, catalog.IContains(catalog.FieldLocation, *region))
	}
	if truthy(maxMinimumOrder) {
		filters = append(filters, catalog.Lte(catalog.FieldMinimumOrder, *maxMinimumOrder))
	}
	ss, err := r.source.QuerySuppliers(ctx, filters...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCatalogUnavailable, err)
	}
	if ss == nil {
		ss = []*models.Supplier{}
	}
	return ss, nil
}

// ClearCache drops every cached result.
func (r *Recommender) ClearCache(ctx context.Context) error {
	return r.cache.Clear(ctx)
}

// Metrics returns a snapshot of the request counters.
func (r *Recommender) Metrics() Metrics {
	return Metrics{
		Requests:    r.requestCount.Load(),
		CacheHits:   r.cacheHits.Load(),
		CacheMisses: r.cacheMisses.Load(),
		Errors:      r.errorCount.Load(),
	}
}

// CacheStats returns the result cache statistics.
func (r *Recommender) CacheStats() cache.Stats {
	return r.cache.Stats()
}

// noCache is used when no ResultCache is configured.
type noCache struct{}

func (noCache) Get(context.Context, string) (*models.RecommendationResult, bool) { return nil, false }
func (noCache) Set(context.Context, string, *models.RecommendationResult)        {}
func (noCache) Clear(context.Context) error                                       { return nil }
func (noCache) Stats() cache.Stats                                                { return cache.Stats{} }
