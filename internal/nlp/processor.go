// MatTailor - Material Recommendation and Trade-off Analysis Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mattailor

package nlp

import (
	"context"
	"fmt"
	"reflect"
	"regexp"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/tomtom215/mattailor/internal/metrics"
	"github.com/tomtom215/mattailor/internal/models"
)

// Outcomes reported to metrics.
const (
	ResultEnhanced  = "enhanced"
	ResultUnchanged = "unchanged"
	ResultError     = "error"
)

// Defaults implied by qualitative phrases.
const (
	impliedCorrosionResistance = 7.0
	impliedSustainabilityScore = 6.0
	impliedRecyclability       = 7.0
	impliedLightweightDensity  = 3.0
	impliedHighStrength        = 500.0
	unqualifiedStrengthFactor  = 0.8
)

var (
	strengthKeywords    = []string{"strong", "strength", "tensile", "yield", "durable", "tough"}
	corrosionKeywords   = []string{"rust", "corrosion", "resistant", "weatherproof"}
	sustainableKeywords = []string{"green", "eco", "sustainable", "recyclable", "environment"}

	// Only these short words are dropped; longer stop words stay.
	stopWords = map[string]bool{"a": true, "an": true, "the": true, "is": true, "are": true, "was": true, "be": true}
)

// Patterns run in this order, so later assignments win.
var unitPatterns = []struct {
	unit string
	re   *regexp.Regexp
}{
	{"mpa", regexp.MustCompile(`(\d+(?:\.\d+)?)\s*mpa`)},
	{"celsius", regexp.MustCompile(`(\d+(?:\.\d+)?)\s*[°c]`)},
	{"g_cm3", regexp.MustCompile(`(\d+(?:\.\d+)?)\s*g/cm(?:³|3)`)},
	{"dollars", regexp.MustCompile(`\$(\d+(?:\.\d+)?)`)},
	{"euros", regexp.MustCompile(`€(\d+(?:\.\d+)?)`)},
}

// Domains are checked in declaration order; the first hit wins.
var domainKeywords = []struct {
	domain   models.ApplicationDomain
	keywords []string
}{
	{models.DomainAerospace, []string{"aerospace", "aircraft", "aviation", "space", "rocket"}},
	{models.DomainAutomotive, []string{"automotive", "car", "vehicle", "auto"}},
	{models.DomainConstruction, []string{"construction", "building", "structural", "concrete"}},
	{models.DomainElectronics, []string{"electronics", "circuit", "component", "pcb"}},
	{models.DomainMedical, []string{"medical", "biomedical", "implant", "prosthetic"}},
	{models.DomainPackaging, []string{"packaging", "container", "food", "beverage"}},
	{models.DomainEnergy, []string{"energy", "battery", "solar", "wind"}},
	{models.DomainMarine, []string{"marine", "ship", "boat", "underwater", "ocean"}},
}

var categoryKeywords = []struct {
	category models.Category
	keywords []string
}{
	{models.CategoryMetal, []string{"metal", "steel", "aluminum", "titanium", "copper"}},
	{models.CategoryPolymer, []string{"plastic", "polymer", "resin", "nylon"}},
	{models.CategoryCeramic, []string{"ceramic", "glass", "clay"}},
	{models.CategoryComposite, []string{"composite", "carbon fiber", "fiberglass"}},
	{models.CategorySemiconductor, []string{"semiconductor", "silicon"}},
	{models.CategoryBiomaterial, []string{"bio", "organic", "natural"}},
}

// Extraction is what Parse finds in a query.
type Extraction struct {
	CleanedQuery        string                    `json:"cleaned_query"`
	Requirements        models.Requirements       `json:"requirements"`
	ApplicationDomain   *models.ApplicationDomain `json:"application_domain"`
	PreferredCategories []models.Category         `json:"preferred_categories"`
	ExcludeCategories   []models.Category         `json:"exclude_categories"`
}

// Empty reports whether nothing was extracted.
func (e *Extraction) Empty() bool {
	return reflect.ValueOf(e.Requirements).IsZero() &&
		e.ApplicationDomain == nil &&
		len(e.PreferredCategories) == 0 &&
		len(e.ExcludeCategories) == 0
}

// Processor extracts structured requirements from free text using keyword
// and unit patterns. It is stateless and safe for concurrent use.
type Processor struct {
	logger zerolog.Logger
}

// NewProcessor creates a Processor.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewProcessor(logger zerolog.Logger) *Processor {
	return &Processor{logger: logger.With().Str("component", "nlp").Logger()}
}

// ProcessQuery returns base enhanced with everything extracted from text.
// Extracted non-nil requirement fields overwrite base; extracted category
// lists replace base lists when non-empty. It never fails: on any internal
// error base is returned unchanged.
func (p *Processor) ProcessQuery(ctx context.Context, text string, base models.MaterialQuery) (out models.MaterialQuery) {
	defer func() {
		if r := recover(); r != nil {
			p.logger.Error().Interface("panic", r).Msg("NLP processing failed, using base query")
			metrics.RecordNLPQuery(ResultError)
			out = base
		}
	}()

	if err := ctx.Err(); err != nil {
		metrics.RecordNLPQuery(ResultUnchanged)
		return base
	}

	ext, err := p.Parse(text)
	if err != nil {
		p.logger.Warn().Err(err).Msg("NLP processing failed, using base query")
		metrics.RecordNLPQuery(ResultError)
		return base
	}
	if ext.Empty() {
		metrics.RecordNLPQuery(ResultUnchanged)
		return base
	}

	out = merge(base, ext)
	metrics.RecordNLPQuery(ResultEnhanced)
	p.logger.Debug().
		Str("query", ext.CleanedQuery).
		Interface("domain", ext.ApplicationDomain).
		Int("preferred_categories", len(ext.PreferredCategories)).
		Msg("Processed natural language query")
	return out
}

// Parse extracts requirements, domain and categories from text.
func (p *Processor) Parse(text string) (*Extraction, error) {
	q := Clean(text)
	req, err := extractRequirements(q)
	if err != nil {
		return nil, err
	}
	preferred, excluded := extractCategories(q)
	return &Extraction{
		CleanedQuery:        q,
		Requirements:        req,
		ApplicationDomain:   extractDomain(q),
		PreferredCategories: preferred,
		ExcludeCategories:   excluded,
	}, nil
}

// Clean lowercases text and drops short stop words.
func Clean(text string) string {
	words := strings.Fields(strings.ToLower(strings.TrimSpace(text)))
	kept := words[:0]
	for _, w := range words {
		if !stopWords[w] {
			kept = append(kept, w)
		}
	}
	return strings.Join(kept, " ")
}

func containsAny(s string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(s, k) {
			return true
		}
	}
	return false
}

//nolint:gocyclo // one branch per unit
func extractRequirements(q string) (models.Requirements, error) {
	var req models.Requirements

	for _, up := range unitPatterns {
		for _, m := range up.re.FindAllStringSubmatch(q, -1) {
			v, err := strconv.ParseFloat(m[1], 64)
			if err != nil {
				return models.Requirements{}, fmt.Errorf("parse %s value %q: %w", up.unit, m[1], err)
			}

			switch up.unit {
			case "mpa":
				if !containsAny(q, strengthKeywords) {
					continue
				}
				switch {
				case containsAny(q, []string{"minimum", "at least", "above"}):
					req.MinTensileStrength = models.Float(v)
				case containsAny(q, []string{"maximum", "below", "under"}):
					req.MaxTensileStrength = models.Float(v)
				default:
					req.MinTensileStrength = models.Float(v * unqualifiedStrengthFactor)
				}
			case "celsius":
				switch {
				case containsAny(q, []string{"operating", "working"}):
					req.MaxOperatingTemp = models.Float(v)
				case strings.Contains(q, "minimum"):
					req.MinOperatingTemp = models.Float(v)
				}
			case "dollars", "euros":
				if containsAny(q, []string{"per kg", "/kg"}) {
					req.MaxCostPerKg = models.Float(v)
				} else {
					req.BudgetTotal = models.Float(v)
				}
			case "g_cm3":
				if containsAny(q, []string{"maximum", "under"}) {
					req.MaxDensity = models.Float(v)
				} else {
					req.MinDensity = models.Float(v)
				}
			}
		}
	}

	if containsAny(q, corrosionKeywords) {
		req.MinCorrosionResistance = models.Float(impliedCorrosionResistance)
	}
	if containsAny(q, sustainableKeywords) {
		req.MinSustainabilityScore = models.Float(impliedSustainabilityScore)
		req.MinRecyclability = models.Float(impliedRecyclability)
	}
	if containsAny(q, []string{"lightweight", "light weight"}) {
		req.MaxDensity = models.Float(impliedLightweightDensity)
	}
	if containsAny(q, []string{"high strength", "strong"}) {
		req.MinTensileStrength = models.Float(impliedHighStrength)
	}

	return req, nil
}

func extractDomain(q string) *models.ApplicationDomain {
	for _, dk := range domainKeywords {
		if containsAny(q, dk.keywords) {
			d := dk.domain
			return &d
		}
	}
	return nil
}

func extractCategories(q string) (preferred, excluded []models.Category) {
	if containsAny(q, []string{"no metal", "not metal"}) {
		excluded = append(excluded, models.CategoryMetal)
	}
	if containsAny(q, []string{"no plastic", "not plastic"}) {
		excluded = append(excluded, models.CategoryPolymer)
	}
	for _, ck := range categoryKeywords {
		if !containsAny(q, ck.keywords) {
			continue
		}
		isExcluded := false
		for _, e := range excluded {
			if e == ck.category {
				isExcluded = true
			}
		}
		if !isExcluded {
			preferred = append(preferred, ck.category)
		}
	}
	return preferred, excluded
}

// merge returns a copy of base with ext applied.
func merge(base models.MaterialQuery, ext *Extraction) models.MaterialQuery {
	out := base.Clone()
	out.Requirements = out.Requirements.Merge(ext.Requirements)
	if ext.ApplicationDomain != nil {
		d := *ext.ApplicationDomain
		out.ApplicationDomain = &d
	}
	if len(ext.PreferredCategories) > 0 {
		out.PreferredCategories = append([]models.Category(nil), ext.PreferredCategories...)
	}
	if len(ext.ExcludeCategories) > 0 {
		out.ExcludeCategories = append([]models.Category(nil), ext.ExcludeCategories...)
	}
	return out
}
