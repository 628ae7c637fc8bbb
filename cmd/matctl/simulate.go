// MatTailor - Material Recommendation and Trade-off Analysis Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mattailor

package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tomtom215/mattailor/internal/app"
	"github.com/tomtom215/mattailor/internal/simulation"
	"github.com/tomtom215/mattailor/internal/validation"
)

func simulateCmd(opts *rootOptions) *cobra.Command {
	var (
		composition map[string]string
		temperature float64
		humidity    float64
	)
	cmd := &cobra.Command{
		Use:   "simulate [material-id]",
		Short: "Predict properties for a material or a custom composition",
		Example: `  matctl simulate titanium_grade5
  matctl simulate --composition Fe=70 --composition Cr=18 --composition Ni=12 --temperature 400`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			comp, err := parseFloatMap("composition", composition)
			if err != nil {
				return err
			}
			if len(args) == 1 && comp != nil {
				return errors.New("give either a material id or --composition, not both")
			}
			if len(args) == 0 && comp == nil {
				return errors.New("a material id or --composition is required")
			}

			var cond simulation.Conditions
			if cmd.Flags().Changed("temperature") {
				cond.Temperature = &temperature
			}
			if cmd.Flags().Changed("humidity") {
				cond.Humidity = &humidity
			}
			if verr := validation.ValidateStruct(cond); verr != nil {
				return verr
			}

			return opts.withEngine(cmd, func(c *app.Components) error {
				if c.Simulator == nil {
					return errors.New("property simulation is disabled (ENABLE_ML_PREDICTION=false)")
				}
				var props map[string]float64
				if len(args) == 1 {
					m, err := c.Catalog.MaterialByID(cmd.Context(), args[0])
					if err != nil {
						return err
					}
					if props, err = c.Simulator.Predict(cmd.Context(), m); err != nil {
						return err
					}
				} else {
					props = c.Simulator.SimulateCustom(cmd.Context(), comp, cond)
				}
				if opts.jsonOut {
					return writeJSON(cmd.OutOrStdout(), props)
				}
				return printFloatMap(cmd.OutOrStdout(), "Property", "Value", props)
			})
		},
	}
	cmd.Flags().StringToStringVar(&composition, "composition", nil, "element fraction as symbol=value (repeatable)")
	cmd.Flags().Float64Var(&temperature, "temperature", 0, "operating temperature in °C")
	cmd.Flags().Float64Var(&humidity, "humidity", 0, "relative humidity in percent")
	return cmd
}

func planCmd(opts *rootOptions) *cobra.Command {
	var (
		objectives  []string
		constraints map[string]string
	)
	cmd := &cobra.Command{
		Use:     "plan",
		Short:   "Propose a material selection strategy",
		Example: `  matctl plan --objective lightweight --objective "high strength" --constraint max_cost=50`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cons, err := parseFloatMap("constraint", constraints)
			if err != nil {
				return err
			}
			return opts.withEngine(cmd, func(c *app.Components) error {
				if c.Planner == nil {
					return errors.New("planning is disabled (ENABLE_RL_PLANNING=false)")
				}
				p, err := c.Planner.Plan(cmd.Context(), objectives, cons)
				if err != nil {
					return err
				}
				if opts.jsonOut {
					return writeJSON(cmd.OutOrStdout(), p)
				}

				w := cmd.OutOrStdout()
				s := p.RecommendedStrategy
				fmt.Fprintln(w, titleStyle.Render(s.Approach)+" "+dimStyle.Render("("+p.SessionID+")"))
				fmt.Fprintf(w, "Primary objective: %s\n", s.PrimaryObjective)
				fmt.Fprintf(w, "Method: %s, timeline: %s, confidence %.2f\n", s.OptimizationMethod, s.Timeline, p.ConfidenceScore)
				cats := make([]string, len(s.MaterialCategories))
				for i, c := range s.MaterialCategories {
					cats[i] = string(c)
				}
				fmt.Fprintln(w, infoStyle.Render("Categories: ")+strings.Join(cats, ", "))
				if len(s.RiskFactors) > 0 {
					fmt.Fprintln(w, "Risks: "+strings.Join(s.RiskFactors, "; "))
				}
				for i, step := range p.NextSteps {
					fmt.Fprintf(w, "  %d. %s\n", i+1, step)
				}
				return nil
			})
		},
	}
	cmd.Flags().StringSliceVar(&objectives, "objective", nil, "design objective (repeatable)")
	cmd.Flags().StringToStringVar(&constraints, "constraint", nil, "numeric constraint as name=value (repeatable)")
	_ = cmd.MarkFlagRequired("objective")
	return cmd
}
