// MatTailor - Material Recommendation and Trade-off Analysis Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mattailor

package catalog

import (
	"context"
	"strings"
	"unicode"

	"github.com/tomtom215/mattailor/internal/models"
)

// DefaultSuggestLimit is used by Suggest when limit is not positive.
const DefaultSuggestLimit = 10

// Suggestion is one autocomplete hit.
type Suggestion struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Category models.Category `json:"category"`
}

// indexNames registers the full name, the id and every word of the name.
func (c *Catalog) indexNames(m *models.Material) {
	c.names.Insert(m.Name, m.ID)
	c.names.Insert(m.ID, m.ID)
	words := strings.FieldsFunc(m.Name, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	for _, w := range words {
		c.names.Insert(w, m.ID)
	}
}

// Suggest returns materials whose name, id or a name word starts with
// prefix. An empty prefix returns nothing.
func (c *Catalog) Suggest(ctx context.Context, prefix string, limit int) ([]Suggestion, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = DefaultSuggestLimit
	}
	ids := c.names.Lookup(prefix, limit)
	out := make([]Suggestion, 0, len(ids))
	for _, id := range ids {
		m := c.byID[id]
		out = append(out, Suggestion{ID: m.ID, Name: m.Name, Category: m.Category})
	}
	return out, nil
}
