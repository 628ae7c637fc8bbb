// MatTailor - Material Recommendation and Trade-off Analysis Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mattailor

package simulation

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/rs/zerolog"
	gobreaker "github.com/sony/gobreaker/v2"
	"golang.org/x/time/rate"

	"github.com/tomtom215/mattailor/internal/catalog"
	"github.com/tomtom215/mattailor/internal/metrics"
	"github.com/tomtom215/mattailor/internal/models"
)

const breakerName = "simulation"

// ConfidenceSuffix is appended to a property name to form its confidence key.
const ConfidenceSuffix = "_confidence"

const (
	minConfidence = 0.1
	maxConfidence = 1.0

	hotTemperature       = 200.0 // °C
	hotStrengthFactor    = 0.9
	humidHumidity        = 80.0 // %
	humidConductivityFac = 0.95
)

var (
	// ErrRateLimited is returned when the request limiter refuses a simulation.
	ErrRateLimited = errors.New("simulation rate limit exceeded")

	// ErrBreakerOpen is returned while the circuit breaker rejects requests.
	ErrBreakerOpen = errors.New("simulation circuit breaker open")

	// ErrNoComposition is returned for materials without a composition.
	ErrNoComposition = errors.New("material has no composition")

	// ErrNoNeighbours is returned when no reference material is close enough.
	ErrNoNeighbours = errors.New("no reference material with overlapping composition")
)

// Properties are the attributes the simulator predicts.
var Properties = []catalog.Field{
	catalog.FieldTensileStrength,
	catalog.FieldYieldStrength,
	catalog.FieldElasticModulus,
	catalog.FieldThermalConductivity,
	catalog.FieldElectricalConductivity,
	catalog.FieldDensity,
	catalog.FieldCostPerKg,
}

// Reference supplies the known materials predictions are derived from.
type Reference interface {
	QueryMaterials(ctx context.Context, filters ...catalog.Filter) ([]*models.Material, error)
}

// Conditions are environmental modifiers for custom simulations.
type Conditions struct {
	Temperature *float64 `json:"temperature,omitempty" validate:"omitempty,gte=-273.15"`
	Humidity    *float64 `json:"humidity,omitempty" validate:"omitempty,gte=0,lte=100"`
}

// Simulator estimates missing material properties from the reference
// materials whose compositions overlap most with the target. Each predicted
// property is the overlap-weighted mean of the neighbours that report it.
//
// Requests pass a token-bucket limiter and a circuit breaker. Failures never
// reach callers of SimulateProperties or SimulateCustom; they get an empty map.
type Simulator struct {
	cfg     Config
	ref     Reference
	limiter *rate.Limiter
	cb      *gobreaker.CircuitBreaker[map[string]float64]
	logger  zerolog.Logger
}

// New creates a Simulator over ref.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func New(cfg Config, ref Reference, logger zerolog.Logger) (*Simulator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid simulation config: %w", err)
	}
	if ref == nil {
		return nil, errors.New("reference catalog is required")
	}

	log := logger.With().Str("component", "simulation").Logger()
	cb := gobreaker.NewCircuitBreaker[map[string]float64](gobreaker.Settings{
		Name:        breakerName,
		MaxRequests: 1,
		Interval:    time.Minute,
		Timeout:     cfg.BreakerTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= cfg.BreakerFailures
		},
		IsSuccessful: func(err error) bool {
			// Inputs the estimator cannot work with are not faults.
			return err == nil || errors.Is(err, ErrNoComposition) || errors.Is(err, ErrNoNeighbours)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warn().Str("from", from.String()).Str("to", to.String()).Msg("Circuit breaker state change")
			metrics.RecordCircuitBreakerTransition(name, from.String(), to.String())
		},
	})

	return &Simulator{
		cfg:     cfg,
		ref:     ref,
		limiter: rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), cfg.Burst),
		cb:      cb,
		logger:  log,
	}, nil
}

// SimulateProperties predicts Properties for m, adding a "<name>_confidence"
// entry in [0.1, 1] per prediction. Requirements are accepted for interface
// compatibility and do not influence the estimate.
func (s *Simulator) SimulateProperties(ctx context.Context, m *models.Material, _ *models.Requirements) map[string]float64 {
	out, err := s.Predict(ctx, m)
	if err != nil {
		s.logger.Debug().Err(err).Str("material_id", idOf(m)).Msg("Property simulation unavailable")
		return map[string]float64{}
	}
	return out
}

// SimulateCustom predicts properties for an arbitrary composition treated
// as a composite, then applies conditions: above 200 °C tensile and yield
// strength drop by 10%, above 80% humidity electrical conductivity drops
// by 5%.
func (s *Simulator) SimulateCustom(ctx context.Context, composition map[string]float64, conditions Conditions) map[string]float64 {
	m := &models.Material{
		ID:          "custom",
		Name:        "Custom Material",
		Category:    models.CategoryComposite,
		Composition: composition,
	}
	out, err := s.Predict(ctx, m)
	if err != nil {
		s.logger.Debug().Err(err).Msg("Custom simulation unavailable")
		return map[string]float64{}
	}
	ApplyConditions(out, conditions)
	return out
}

// Predict is SimulateProperties returning the failure reason.
func (s *Simulator) Predict(ctx context.Context, m *models.Material) (map[string]float64, error) {
	out, err := s.predict(ctx, m)
	metrics.RecordSimulation(len(out)/2, err)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Simulator) predict(ctx context.Context, m *models.Material) (map[string]float64, error) {
	if m == nil {
		return nil, ErrNoComposition
	}
	if !s.limiter.Allow() {
		return nil, ErrRateLimited
	}

	out, err := s.cb.Execute(func() (map[string]float64, error) {
		return s.estimate(ctx, m)
	})
	switch {
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		metrics.RecordCircuitBreakerRequest(breakerName, metrics.ResultRejected)
		return nil, fmt.Errorf("%w: %w", ErrBreakerOpen, err)
	case err != nil:
		metrics.RecordCircuitBreakerRequest(breakerName, metrics.ResultFailure)
		return nil, err
	}
	metrics.RecordCircuitBreakerRequest(breakerName, metrics.ResultSuccess)
	return out, nil
}

type neighbour struct {
	m       *models.Material
	overlap float64
}

func (s *Simulator) estimate(ctx context.Context, m *models.Material) (map[string]float64, error) {
	target := normalize(m.Composition)
	if len(target) == 0 {
		return nil, ErrNoComposition
	}

	refs, err := s.ref.QueryMaterials(ctx)
	if err != nil {
		return nil, fmt.Errorf("load reference materials: %w", err)
	}

	var near []neighbour
	for _, r := range refs {
		if r.ID == m.ID {
			continue
		}
		if ov := Overlap(target, normalize(r.Composition)); ov >= s.cfg.MinOverlap {
			near = append(near, neighbour{m: r, overlap: ov})
		}
	}
	if len(near) == 0 {
		return nil, ErrNoNeighbours
	}
	sort.SliceStable(near, func(i, j int) bool { return near[i].overlap > near[j].overlap })
	if len(near) > s.cfg.Neighbours {
		near = near[:s.cfg.Neighbours]
	}

	out := make(map[string]float64, 2*len(Properties))
	for _, f := range Properties {
		var sum, weight float64
		for _, n := range near {
			if v, ok := catalog.NumericValue(n.m, f); ok {
				sum += v * n.overlap
				weight += n.overlap
			}
		}
		if weight == 0 {
			continue
		}
		out[f.String()] = sum / weight
		out[f.String()+ConfidenceSuffix] = clamp(weight / float64(len(near)))
	}
	if len(out) == 0 {
		return nil, ErrNoNeighbours
	}
	return out, nil
}

// ApplyConditions scales predictions in place for environmental conditions.
func ApplyConditions(props map[string]float64, c Conditions) {
	if c.Temperature != nil && *c.Temperature > hotTemperature {
		for _, f := range []catalog.Field{catalog.FieldTensileStrength, catalog.FieldYieldStrength} {
			if v, ok := props[f.String()]; ok {
				props[f.String()] = v * hotStrengthFactor
			}
		}
	}
	if c.Humidity != nil && *c.Humidity > humidHumidity {
		key := catalog.FieldElectricalConductivity.String()
		if v, ok := props[key]; ok {
			props[key] = v * humidConductivityFac
		}
	}
}

// Overlap is the shared fraction of two normalized compositions:
// the sum over elements of the smaller share. It is 1 for identical
// compositions and 0 for disjoint ones.
func Overlap(a, b map[string]float64) float64 {
	var sum float64
	for el, pa := range a {
		if pb, ok := b[el]; ok {
			sum += math.Min(pa, pb)
		}
	}
	return sum
}

// normalize scales positive shares to fractions summing to 1.
func normalize(comp map[string]float64) map[string]float64 {
	var total float64
	for _, v := range comp {
		if v > 0 && !math.IsInf(v, 0) {
			total += v
		}
	}
	if total == 0 {
		return nil
	}
	out := make(map[string]float64, len(comp))
	for el, v := range comp {
		if v > 0 && !math.IsInf(v, 0) {
			out[el] = v / total
		}
	}
	return out
}

func clamp(v float64) float64 {
	return math.Max(minConfidence, math.Min(maxConfidence, v))
}

func idOf(m *models.Material) string {
	if m == nil {
		return ""
	}
	return m.ID
}
