// MatTailor - Material Recommendation and Trade-off Analysis Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mattailor

package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tomtom215/mattailor/internal/app"
	"github.com/tomtom215/mattailor/internal/models"
)

func searchCmd(opts *rootOptions) *cobra.Command {
	var (
		category string
		limit    int
	)
	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search materials by name or composition",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var cat *models.Category
			if category != "" {
				cats, err := parseCategories([]string{category})
				if err != nil {
					return err
				}
				cat = &cats[0]
			}
			return opts.withEngine(cmd, func(c *app.Components) error {
				ms, err := c.Recommender.Search(cmd.Context(), strings.Join(args, " "), cat, limit)
				if err != nil {
					return err
				}
				return printMaterials(cmd, opts, ms)
			})
		},
	}
	cmd.Flags().StringVar(&category, "category", "", "restrict to one category")
	cmd.Flags().IntVar(&limit, "limit", 0, "maximum results (default from config)")
	return cmd
}

func suggestCmd(opts *rootOptions) *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "suggest <prefix>",
		Short: "Autocomplete material names",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withEngine(cmd, func(c *app.Components) error {
				ss, err := c.Catalog.Suggest(cmd.Context(), args[0], limit)
				if err != nil {
					return err
				}
				if opts.jsonOut {
					return writeJSON(cmd.OutOrStdout(), ss)
				}
				for _, s := range ss {
					fmt.Fprintf(cmd.OutOrStdout(), "%s  %s\n", s.ID, dimStyle.Render(s.Name))
				}
				return nil
			})
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 0, "maximum suggestions (default 10)")
	return cmd
}

func materialCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "material <id>",
		Short: "Show one material",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withEngine(cmd, func(c *app.Components) error {
				m, err := c.Recommender.MaterialByID(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				if opts.jsonOut {
					return writeJSON(cmd.OutOrStdout(), m)
				}
				return printMaterialDetail(cmd.OutOrStdout(), m)
			})
		},
	}
}

func alternativesCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "alternatives <id>",
		Short: "List materials similar to one material",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withEngine(cmd, func(c *app.Components) error {
				ms, err := c.Recommender.FindAlternatives(cmd.Context(), args[0], models.Requirements{})
				if err != nil {
					return err
				}
				return printMaterials(cmd, opts, ms)
			})
		},
	}
}

func suppliersCmd(opts *rootOptions) *cobra.Command {
	var (
		region   string
		maxOrder float64
	)
	cmd := &cobra.Command{
		Use:   "suppliers <material-id>",
		Short: "List suppliers carrying a material",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var regionPtr *string
			if region != "" {
				regionPtr = &region
			}
			var maxOrderPtr *float64
			if cmd.Flags().Changed("max-minimum-order") {
				maxOrderPtr = &maxOrder
			}
			return opts.withEngine(cmd, func(c *app.Components) error {
				ss, err := c.Recommender.Suppliers(cmd.Context(), args[0], regionPtr, maxOrderPtr)
				if err != nil {
					return err
				}
				if opts.jsonOut {
					return writeJSON(cmd.OutOrStdout(), ss)
				}
				w := cmd.OutOrStdout()
				if len(ss) == 0 {
					fmt.Fprintln(w, infoStyle.Render("No suppliers found."))
					return nil
				}
				t := newTable(w, "ID", "Name", "Location", "Min Order", "Lead Days", "Quality")
				for _, s := range ss {
					t.row(s.ID, s.Name, s.Location, fmtFloat(s.MinimumOrder),
						strconv.Itoa(s.LeadTimeDays), fmtFloat(s.QualityRating))
				}
				return t.flush()
			})
		},
	}
	cmd.Flags().StringVar(&region, "region", "", "location substring, e.g. Germany")
	cmd.Flags().Float64Var(&maxOrder, "max-minimum-order", 0, "largest acceptable minimum order (kg)")
	return cmd
}

func categoriesCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "Count catalog materials per category",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return opts.withEngine(cmd, func(c *app.Components) error {
				stats := c.Catalog.Stats()
				if opts.jsonOut {
					return writeJSON(cmd.OutOrStdout(), stats)
				}
				t := newTable(cmd.OutOrStdout(), "Category", "Materials")
				for _, cat := range models.AllCategories {
					t.row(string(cat), strconv.Itoa(stats.ByCategory[cat]))
				}
				t.row(dimStyle.Render("total"), strconv.Itoa(stats.Materials))
				return t.flush()
			})
		},
	}
}

func printMaterials(cmd *cobra.Command, opts *rootOptions, ms []*models.Material) error {
	if opts.jsonOut {
		return writeJSON(cmd.OutOrStdout(), ms)
	}
	w := cmd.OutOrStdout()
	if len(ms) == 0 {
		fmt.Fprintln(w, infoStyle.Render("No materials found."))
		return nil
	}
	t := newTable(w, "ID", "Name", "Category", "Density", "Tensile", "Cost/kg")
	for _, m := range ms {
		t.row(m.ID, m.Name, string(m.Category),
			fmtOptional(m.Density), fmtOptional(m.TensileStrength), fmtOptional(m.CostPerKg))
	}
	return t.flush()
}

func printMaterialDetail(w io.Writer, m *models.Material) error {
	fmt.Fprintln(w, titleStyle.Render(m.Name)+" "+dimStyle.Render("("+m.ID+", "+string(m.Category)+")"))

	t := newTable(w, "Property", "Value")
	props := []struct {
		name string
		v    *float64
	}{
		{"tensile_strength (MPa)", m.TensileStrength},
		{"yield_strength (MPa)", m.YieldStrength},
		{"elastic_modulus (GPa)", m.ElasticModulus},
		{"density (g/cm³)", m.Density},
		{"melting_point (°C)", m.MeltingPoint},
		{"thermal_conductivity (W/m·K)", m.ThermalConductivity},
		{"corrosion_resistance", m.CorrosionResistance},
		{"cost_per_kg (USD)", m.CostPerKg},
		{"sustainability_score", m.SustainabilityScore},
		{"availability_score", m.AvailabilityScore},
	}
	for _, p := range props {
		t.row(p.name, fmtOptional(p.v))
	}
	if err := t.flush(); err != nil {
		return err
	}

	if len(m.Composition) > 0 {
		fmt.Fprintln(w)
		return printFloatMap(w, "Element", "Fraction", m.Composition)
	}
	return nil
}
