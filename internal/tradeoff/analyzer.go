// MatTailor - Material Recommendation and Trade-off Analysis Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mattailor

package tradeoff

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/tomtom215/mattailor/internal/catalog"
	"github.com/tomtom215/mattailor/internal/metrics"
	"github.com/tomtom215/mattailor/internal/models"
)

var (
	// ErrNoMaterials is returned when no material ids are given.
	ErrNoMaterials = errors.New("no materials to analyze")

	// ErrNoCriteria is returned when no criteria are given.
	ErrNoCriteria = errors.New("no criteria to analyze")

	// ErrInvalidWeights is returned for negative or all-zero weights.
	ErrInvalidWeights = errors.New("invalid criterion weights")

	// ErrUnknownMethod is returned for an unsupported analysis method.
	ErrUnknownMethod = errors.New("unknown analysis method")
)

const (
	// DefaultParetoSize is how many top-ranked materials the weighted_sum
	// method reports as Pareto optimal.
	DefaultParetoSize = 3

	// normalizationScale maps raw values onto [0,1]. Criteria on another
	// natural scale must be pre-scaled by the caller.
	normalizationScale = 100.0

	baseConfidence = 0.8
)

// MaterialLookup resolves material ids. *catalog.Catalog implements it.
type MaterialLookup interface {
	MaterialByID(ctx context.Context, id string) (*models.Material, error)
}

// Options tune a single analysis. The zero value gives equal weights and
// top-N Pareto selection.
type Options struct {
	// Weights by criterion name. Missing names get weight 1 before
	// normalization; nil means equal weights.
	Weights map[string]float64

	// Method is models.MethodWeightedSum (default) or models.MethodDominance.
	Method string
}

// Analyzer compares materials across named criteria. It holds no mutable
// state between calls.
type Analyzer struct {
	lookup MaterialLookup
	logger zerolog.Logger
	now    func() time.Time
	newID  func() string
}

// NewAnalyzer creates an Analyzer.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewAnalyzer(lookup MaterialLookup, logger zerolog.Logger) *Analyzer {
	return &Analyzer{
		lookup: lookup,
		logger: logger.With().Str("component", "tradeoff").Logger(),
		now:    time.Now,
		newID:  func() string { return "analysis_" + uuid.NewString() },
	}
}

// Analyze ranks the given materials across the given criteria.
//
// Each raw value is normalized as value/100 clamped to [0,1], regardless of
// direction. The weighted score is the weight-averaged normalized value.
// Unknown material ids are reported as "Material <id>" with zero values.
func (a *Analyzer) Analyze(ctx context.Context, materialIDs, criteria []string, opts Options) (*models.TradeoffAnalysis, error) {
	start := time.Now()
	method := opts.Method
	if method == "" {
		method = models.MethodWeightedSum
	}

	result, err := a.analyze(ctx, materialIDs, criteria, opts.Weights, method)
	metrics.RecordTradeoffAnalysis(method, time.Since(start), err)
	if err != nil {
		return nil, err
	}

	a.logger.Info().
		Str("analysis_id", result.AnalysisID).
		Int("materials", len(result.Materials)).
		Int("criteria", len(result.Criteria)).
		Str("best_overall", result.BestOverall).
		Msg("Trade-off analysis complete")
	return result, nil
}

func (a *Analyzer) analyze(ctx context.Context, materialIDs, names []string, weightsIn map[string]float64, method string) (*models.TradeoffAnalysis, error) {
	if method != models.MethodWeightedSum && method != models.MethodDominance {
		return nil, fmt.Errorf("%w: %q", ErrUnknownMethod, method)
	}
	// Rows, dominance and the frontier are keyed by material id, so a repeated
	// id is analysed once.
	ids := dedupe(materialIDs)
	if len(ids) == 0 {
		return nil, ErrNoMaterials
	}
	names = dedupe(names)
	if len(names) == 0 {
		return nil, ErrNoCriteria
	}

	crits := make([]criterion, len(names))
	for i, n := range names {
		crits[i] = resolveCriterion(n)
	}
	weights, err := normalizeWeights(names, weightsIn)
	if err != nil {
		return nil, err
	}

	rows := make([]models.MaterialComparison, 0, len(ids))
	oriented := make(map[string][]float64, len(ids))
	known, cells := 0, 0

	for _, id := range ids {
		m, err := a.lookup.MaterialByID(ctx, id)
		if err != nil {
			if !errors.Is(err, catalog.ErrNotFound) {
				return nil, fmt.Errorf("lookup %s: %w", id, err)
			}
			m = nil
		}

		row := models.MaterialComparison{
			MaterialID:       id,
			MaterialName:     "Material " + id,
			CriteriaValues:   make(map[string]float64, len(crits)),
			NormalizedScores: make(map[string]float64, len(crits)),
		}
		if m != nil {
			row.MaterialName = m.Name
		}

		ov := make([]float64, len(crits))
		for i, c := range crits {
			cells++
			v, ok := c.value(m)
			if ok {
				known++
				ov[i] = v
				if c.direction == models.DirectionMinimize {
					ov[i] = -v
				}
			} else {
				ov[i] = math.Inf(-1)
			}
			row.CriteriaValues[c.name] = v
			row.NormalizedScores[c.name] = Normalize(v)
		}
		oriented[id] = ov
		rows = append(rows, row)
	}

	rankRows(rows, names, weights)

	out := &models.TradeoffAnalysis{
		AnalysisID:            a.newID(),
		Materials:             rows,
		Criteria:              make([]models.TradeoffCriteria, len(crits)),
		BestOverall:           rows[0].MaterialID,
		StrongestCorrelations: Correlations(rows, names),
		RecommendationSummary: Summary(rows, names),
		CreatedAt:             a.now().UTC(),
		AnalysisMethod:        method,
		ConfidenceScore:       baseConfidence * float64(known) / float64(cells),
	}
	for i, c := range crits {
		out.Criteria[i] = c.toModel(weights[i])
	}

	if method == models.MethodDominance {
		out.ParetoOptimal = paretoFrontier(rows, oriented)
	} else {
		out.ParetoOptimal = topN(rows, DefaultParetoSize)
	}

	return out, nil
}

// Normalize maps a raw value onto [0,1] as v/100.
func Normalize(v float64) float64 {
	return math.Max(0, math.Min(1, v/normalizationScale))
}

// normalizeWeights returns weights aligned with names and summing to 1.
func normalizeWeights(names []string, in map[string]float64) ([]float64, error) {
	out := make([]float64, len(names))
	sum := 0.0
	for i, n := range names {
		w := 1.0
		if in != nil {
			if v, ok := in[n]; ok {
				w = v
			}
		}
		if w < 0 || math.IsNaN(w) || math.IsInf(w, 0) {
			return nil, fmt.Errorf("%w: %s = %v", ErrInvalidWeights, n, w)
		}
		out[i] = w
		sum += w
	}
	if sum == 0 {
		return nil, fmt.Errorf("%w: weights sum to zero", ErrInvalidWeights)
	}
	for i := range out {
		out[i] /= sum
	}
	return out, nil
}

// rankRows computes weighted scores, sorts rows best first, and assigns
// ranks starting at 1. Ties keep input order.
func rankRows(rows []models.MaterialComparison, names []string, weights []float64) {
	for i := range rows {
		rows[i].WeightedScore = weightedScore(rows[i], names, weights)
	}
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].WeightedScore > rows[j].WeightedScore
	})
	for i := range rows {
		rows[i].Rank = i + 1
	}
}

func weightedScore(row models.MaterialComparison, names []string, weights []float64) float64 {
	s := 0.0
	for i, n := range names {
		s += weights[i] * row.NormalizedScores[n]
	}
	return s
}

func topN(rows []models.MaterialComparison, n int) []string {
	if len(rows) < n {
		n = len(rows)
	}
	out := make([]string, n)
	for i := 0; i < n; i++ {
		out[i] = rows[i].MaterialID
	}
	return out
}

// Summary describes the top-ranked material and its highest raw criterion.
func Summary(rows []models.MaterialComparison, names []string) string {
	if len(rows) == 0 {
		return "No materials to analyze"
	}
	best := rows[0]

	var b strings.Builder
	fmt.Fprintf(&b, "Based on the analysis of %d criteria across %d materials, ", len(names), len(rows))
	fmt.Fprintf(&b, "%s emerges as the optimal choice with a score of %.2f.", best.MaterialName, best.WeightedScore)

	if len(names) > 0 {
		top := names[0]
		for _, n := range names[1:] {
			if best.CriteriaValues[n] > best.CriteriaValues[top] {
				top = n
			}
		}
		fmt.Fprintf(&b, " It excels particularly in %s with a value of %.1f.", top, best.CriteriaValues[top])
	}
	return b.String()
}

func dedupe(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}
