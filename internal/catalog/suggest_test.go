// MatTailor - Material Recommendation and Trade-off Analysis Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mattailor

package catalog

import (
	"context"
	"slices"
	"testing"
)

func TestSuggest(t *testing.T) {
	t.Parallel()
	c := loadDefault(t)

	tests := []struct {
		prefix string
		limit  int
		want   []string
	}{
		{"titan", 0, []string{"titanium_grade2", "titanium_grade5"}},
		{"alumin", 0, []string{"alumina_99", "aluminum_6061", "aluminum_7075"}},
		{"Epoxy", 0, []string{"carbon_fiber_epoxy", "kevlar_epoxy"}},
		{"steel_3", 0, []string{"steel_304", "steel_316l"}},
		{"alumin", 1, []string{"alumina_99"}},
		{"", 0, []string{}},
		{"unobtainium", 0, []string{}},
	}
	for _, tt := range tests {
		got, err := c.Suggest(context.Background(), tt.prefix, tt.limit)
		if err != nil {
			t.Fatalf("Suggest(%q) error = %v", tt.prefix, err)
		}
		gotIDs := make([]string, len(got))
		for i, s := range got {
			gotIDs[i] = s.ID
		}
		if !slices.Equal(gotIDs, tt.want) {
			t.Errorf("Suggest(%q, %d) = %v, want %v", tt.prefix, tt.limit, gotIDs, tt.want)
		}
	}
}

func TestSuggest_Canceled(t *testing.T) {
	t.Parallel()
	c := loadDefault(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := c.Suggest(ctx, "steel", 5); err == nil {
		t.Error("Suggest should honour a canceled context")
	}
}
