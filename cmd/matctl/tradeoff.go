// MatTailor - Material Recommendation and Trade-off Analysis Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mattailor

package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tomtom215/mattailor/internal/app"
	"github.com/tomtom215/mattailor/internal/models"
	"github.com/tomtom215/mattailor/internal/tradeoff"
)

func tradeoffCmd(opts *rootOptions) *cobra.Command {
	var (
		criteria    []string
		weights     map[string]string
		method      string
		sensitivity bool
	)
	cmd := &cobra.Command{
		Use:   "tradeoff <material-id>...",
		Short: "Compare materials across weighted criteria",
		Example: `  matctl tradeoff steel_316l aluminum_6061 titanium_grade5 \
    --criteria tensile_strength,density,cost_per_kg --weight cost_per_kg=2`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			w, err := parseFloatMap("weight", weights)
			if err != nil {
				return err
			}
			o := tradeoff.Options{Weights: w, Method: method}

			return opts.withEngine(cmd, func(c *app.Components) error {
				if sensitivity {
					s, err := c.Analyzer.AnalyzeSensitivity(cmd.Context(), args, criteria, o)
					if err != nil {
						return err
					}
					if opts.jsonOut {
						return writeJSON(cmd.OutOrStdout(), s)
					}
					return printSensitivity(cmd, s)
				}
				a, err := c.Analyzer.Analyze(cmd.Context(), args, criteria, o)
				if err != nil {
					return err
				}
				if opts.jsonOut {
					return writeJSON(cmd.OutOrStdout(), a)
				}
				return printTradeoff(cmd, a)
			})
		},
	}
	cmd.Flags().StringSliceVar(&criteria, "criteria", nil, "criteria to compare, e.g. density,cost_per_kg")
	cmd.Flags().StringToStringVar(&weights, "weight", nil, "criterion weight as name=value (repeatable)")
	cmd.Flags().StringVar(&method, "method", models.MethodWeightedSum, "weighted_sum or weighted_sum+dominance")
	cmd.Flags().BoolVar(&sensitivity, "sensitivity", false, "report ranking stability under weight changes")
	_ = cmd.MarkFlagRequired("criteria")
	return cmd
}

func printTradeoff(cmd *cobra.Command, a *models.TradeoffAnalysis) error {
	w := cmd.OutOrStdout()
	t := newTable(w, "Rank", "ID", "Name", "Score")
	for _, m := range a.Materials {
		t.row(strconv.Itoa(m.Rank), m.MaterialID, m.MaterialName, fmtFloat(m.WeightedScore))
	}
	if err := t.flush(); err != nil {
		return err
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, titleStyle.Render("Best overall: ")+a.BestOverall)
	fmt.Fprintln(w, infoStyle.Render("Pareto optimal: ")+strings.Join(a.ParetoOptimal, ", "))
	fmt.Fprintln(w, dimStyle.Render(fmt.Sprintf("%s, confidence %.2f", a.AnalysisMethod, a.ConfidenceScore)))
	if a.RecommendationSummary != "" {
		fmt.Fprintln(w, a.RecommendationSummary)
	}
	return nil
}

func printSensitivity(cmd *cobra.Command, s *models.SensitivityAnalysis) error {
	w := cmd.OutOrStdout()
	fmt.Fprintln(w, titleStyle.Render("Base ranking: ")+strings.Join(s.BaseRanking, " > "))
	fmt.Fprintln(w, infoStyle.Render(fmt.Sprintf("Stability: %.2f", s.StabilityScore)))
	if len(s.CriticalCriteria) > 0 {
		fmt.Fprintln(w, "Critical criteria: "+strings.Join(s.CriticalCriteria, ", "))
	}
	t := newTable(w, "Variation", "Ranking")
	for _, k := range sortedKeys(s.WeightVariations) {
		t.row(k, strings.Join(s.WeightVariations[k], " > "))
	}
	return t.flush()
}
