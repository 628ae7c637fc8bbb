// MatTailor - Material Recommendation and Trade-off Analysis Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mattailor

package catalog

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/rs/zerolog"

	"github.com/tomtom215/mattailor/internal/cache"
	"github.com/tomtom215/mattailor/internal/logging"
	"github.com/tomtom215/mattailor/internal/models"
)

var (
	// ErrNotFound is returned when a material ID is not in the catalog.
	ErrNotFound = errors.New("material not found")

	// ErrUnknownField is returned for filter keys naming no known attribute.
	ErrUnknownField = errors.New("unknown filter field")

	// ErrInvalidFilter is returned when an operator does not apply to a field.
	ErrInvalidFilter = errors.New("invalid filter")

	// ErrDuplicateID is returned when two records share an ID.
	ErrDuplicateID = errors.New("duplicate id")
)

// DefaultSearchLimit is used by SearchText when limit is not positive.
const DefaultSearchLimit = 20

// Catalog is the read-only materials and suppliers store. It is safe for
// concurrent use because nothing is written after New returns.
type Catalog struct {
	materials []*models.Material
	byID      map[string]*models.Material
	suppliers []*models.Supplier
	names     *cache.PrefixIndex
	logger    zerolog.Logger
}

// Stats summarizes catalog contents.
type Stats struct {
	Materials  int                     `json:"materials"`
	Suppliers  int                     `json:"suppliers"`
	ByCategory map[models.Category]int `json:"by_category"`
}

// New builds a catalog preserving the order of materials, which is the
// iteration order for every query. It rejects duplicate IDs and categories
// outside the closed set.
func New(materials []*models.Material, suppliers []*models.Supplier) (*Catalog, error) {
	c := &Catalog{
		materials: make([]*models.Material, 0, len(materials)),
		byID:      make(map[string]*models.Material, len(materials)),
		suppliers: make([]*models.Supplier, 0, len(suppliers)),
		names:     cache.NewPrefixIndex(),
		logger:    logging.WithComponent("catalog"),
	}

	for _, m := range materials {
		if m == nil {
			continue
		}
		if m.ID == "" {
			return nil, fmt.Errorf("material %q has empty id", m.Name)
		}
		if _, dup := c.byID[m.ID]; dup {
			return nil, fmt.Errorf("%w: material %s", ErrDuplicateID, m.ID)
		}
		if !m.Category.Valid() {
			return nil, fmt.Errorf("material %s: %w: %q", m.ID, models.ErrUnknownCategory, string(m.Category))
		}
		if m.Composition == nil {
			m.Composition = map[string]float64{}
		}
		c.materials = append(c.materials, m)
		c.byID[m.ID] = m
		c.indexNames(m)
	}

	seen := make(map[string]struct{}, len(suppliers))
	for _, s := range suppliers {
		if s == nil {
			continue
		}
		if _, dup := seen[s.ID]; dup {
			return nil, fmt.Errorf("%w: supplier %s", ErrDuplicateID, s.ID)
		}
		seen[s.ID] = struct{}{}
		c.suppliers = append(c.suppliers, s)
	}

	c.logger.Info().
		Int("materials", len(c.materials)).
		Int("suppliers", len(c.suppliers)).
		Msg("Initialized catalog")

	return c, nil
}

// QueryMaterials returns every material satisfying all filters, in catalog order.
func (c *Catalog) QueryMaterials(ctx context.Context, filters ...Filter) ([]*models.Material, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := validateAll(filters); err != nil {
		return nil, err
	}

	out := make([]*models.Material, 0, len(c.materials))
	for _, m := range c.materials {
		if materialMatches(m, filters) {
			out = append(out, m)
		}
	}
	return out, nil
}

// MaterialByID returns the material with the given ID or ErrNotFound.
func (c *Catalog) MaterialByID(ctx context.Context, id string) (*models.Material, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m, ok := c.byID[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return m, nil
}

// SearchText matches query case-insensitively against material names and
// composition constituent keys, optionally narrowed by filters.
//
// Scanning stops once the number of accepted materials reaches limit. The
// check runs after every text match, including matches the filters
// rejected, so truncation depends on catalog order, not relevance.
func (c *Catalog) SearchText(ctx context.Context, query string, filters []Filter, limit int) ([]*models.Material, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := validateAll(filters); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = DefaultSearchLimit
	}

	q := strings.ToLower(query)
	var out []*models.Material
	for _, m := range c.materials {
		if !textMatches(m, q) {
			continue
		}
		if len(filters) == 0 || materialMatches(m, filters) {
			out = append(out, m)
		}
		if len(out) >= limit {
			break
		}
	}
	return out, nil
}

func textMatches(m *models.Material, lowerQuery string) bool {
	if strings.Contains(strings.ToLower(m.Name), lowerQuery) {
		return true
	}
	for element := range m.Composition {
		if strings.Contains(strings.ToLower(element), lowerQuery) {
			return true
		}
	}
	return false
}

// FindSimilar returns materials whose Similarity to ref is at least
// threshold, most similar first, never including ref itself and never more
// than maxResults.
func (c *Catalog) FindSimilar(ctx context.Context, ref *models.Material, threshold float64, maxResults int) ([]*models.Material, error) {
	matches, err := c.SimilarWithScores(ctx, ref, threshold, maxResults)
	if err != nil {
		return nil, err
	}
	out := make([]*models.Material, len(matches))
	for i, sm := range matches {
		out[i] = sm.Material
	}
	return out, nil
}

// SimilarMaterial pairs a material with its similarity to a reference.
type SimilarMaterial struct {
	Material   *models.Material `json:"material"`
	Similarity float64          `json:"similarity"`
}

// SimilarWithScores is FindSimilar keeping the similarity values.
func (c *Catalog) SimilarWithScores(ctx context.Context, ref *models.Material, threshold float64, maxResults int) ([]SimilarMaterial, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if ref == nil {
		return nil, fmt.Errorf("%w: nil reference", ErrNotFound)
	}

	var matches []SimilarMaterial
	for _, m := range c.materials {
		if m.ID == ref.ID {
			continue
		}
		if s := Similarity(ref, m); s >= threshold {
			matches = append(matches, SimilarMaterial{Material: m, Similarity: s})
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Similarity > matches[j].Similarity
	})
	if maxResults >= 0 && len(matches) > maxResults {
		matches = matches[:maxResults]
	}
	return matches, nil
}

// QuerySuppliers returns every supplier satisfying all filters.
func (c *Catalog) QuerySuppliers(ctx context.Context, filters ...Filter) ([]*models.Supplier, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := validateAll(filters); err != nil {
		return nil, err
	}

	var out []*models.Supplier
	for _, s := range c.suppliers {
		if supplierMatches(s, filters) {
			out = append(out, s)
		}
	}
	return out, nil
}

// ListMaterials pages through the catalog, optionally restricted to one category.
func (c *Catalog) ListMaterials(ctx context.Context, category *models.Category, offset, limit int) ([]*models.Material, int, error) {
	var filters []Filter
	if category != nil {
		filters = append(filters, Eq(FieldCategory, string(*category)))
	}
	all, err := c.QueryMaterials(ctx, filters...)
	if err != nil {
		return nil, 0, err
	}
	total := len(all)
	if offset >= total {
		return []*models.Material{}, total, nil
	}
	end := total
	if limit > 0 && offset+limit < total {
		end = offset + limit
	}
	return all[offset:end], total, nil
}

// Stats reports material counts per category and supplier count.
func (c *Catalog) Stats() Stats {
	st := Stats{
		Materials:  len(c.materials),
		Suppliers:  len(c.suppliers),
		ByCategory: make(map[models.Category]int, len(models.AllCategories)),
	}
	for _, m := range c.materials {
		st.ByCategory[m.Category]++
	}
	return st
}

// Len returns the number of materials.
func (c *Catalog) Len() int {
	return len(c.materials)
}
