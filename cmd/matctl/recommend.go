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
	"github.com/tomtom215/mattailor/internal/validation"
)

func recommendCmd(opts *rootOptions) *cobra.Command {
	var (
		require    map[string]string
		preferred  []string
		excluded   []string
		domain     string
		text       string
		maxResults int
		noAlts     bool
	)

	cmd := &cobra.Command{
		Use:   "recommend",
		Short: "Rank materials against requirements",
		Long: `Score every catalog material against the given requirements and print
the best matches. --text adds a natural language description that is parsed
into further requirements.`,
		Example: `  matctl recommend --require max_density=3 --category metal
  matctl recommend --text "lightweight corrosion resistant aerospace bracket"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			q := models.NewMaterialQuery()
			var err error
			if q.Requirements, err = parseRequirements(require); err != nil {
				return err
			}
			if q.PreferredCategories, err = parseCategories(preferred); err != nil {
				return err
			}
			if q.ExcludeCategories, err = parseCategories(excluded); err != nil {
				return err
			}
			if domain != "" {
				d, err := models.ParseDomain(domain)
				if err != nil {
					return err
				}
				q.ApplicationDomain = &d
			}
			if text != "" {
				q.NaturalLanguageQuery = &text
			}
			q.MaxResults = maxResults
			q.IncludeAlternatives = !noAlts
			if verr := validation.ValidateStruct(q); verr != nil {
				return verr
			}

			return opts.withEngine(cmd, func(c *app.Components) error {
				res, err := c.Recommender.Recommend(cmd.Context(), q)
				if err != nil {
					return err
				}
				if opts.jsonOut {
					return writeJSON(cmd.OutOrStdout(), res)
				}
				return printRecommendation(cmd, res)
			})
		},
	}

	cmd.Flags().StringToStringVar(&require, "require", nil, "requirement as field=value, e.g. max_density=3 (repeatable)")
	cmd.Flags().StringSliceVar(&preferred, "category", nil, "preferred material categories")
	cmd.Flags().StringSliceVar(&excluded, "exclude", nil, "excluded material categories")
	cmd.Flags().StringVar(&domain, "domain", "", "application domain, e.g. aerospace")
	cmd.Flags().StringVar(&text, "text", "", "natural language description of the need")
	cmd.Flags().IntVar(&maxResults, "max-results", models.DefaultMaxResults, "maximum number of results (1-100)")
	cmd.Flags().BoolVar(&noAlts, "no-alternatives", false, "skip alternative suggestions")
	return cmd
}

func printRecommendation(cmd *cobra.Command, res *models.RecommendationResult) error {
	w := cmd.OutOrStdout()
	if len(res.Materials) == 0 {
		fmt.Fprintln(w, infoStyle.Render("No materials match these requirements."))
		return nil
	}

	fmt.Fprintln(w, titleStyle.Render(fmt.Sprintf("%d of %d candidates", len(res.Materials), res.TotalResults)))
	if len(res.QuerySummary.KeyRequirements) > 0 {
		fmt.Fprintln(w, dimStyle.Render("Requirements: "+strings.Join(res.QuerySummary.KeyRequirements, ", ")))
	}

	t := newTable(w, "#", "ID", "Name", "Category", "Overall", "Performance", "Cost", "Sustainability")
	for i, m := range res.Materials {
		var s models.MaterialScore
		if i < len(res.Scores) {
			s = res.Scores[i]
		}
		t.row(strconv.Itoa(i+1), m.ID, m.Name, string(m.Category),
			fmtFloat(s.OverallScore), fmtFloat(s.PerformanceScore),
			fmtFloat(s.CostScore), fmtFloat(s.SustainabilityScore))
	}
	return t.flush()
}

func parseCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "parse <text>",
		Short: "Extract structured requirements from free text",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withEngine(cmd, func(c *app.Components) error {
				if c.NLP == nil {
					return fmt.Errorf("natural language processing is disabled (ENABLE_NLP_PROCESSING=false)")
				}
				ex, err := c.NLP.Parse(strings.Join(args, " "))
				if err != nil {
					return err
				}
				if opts.jsonOut || !ex.Empty() {
					return writeJSON(cmd.OutOrStdout(), ex)
				}
				fmt.Fprintln(cmd.OutOrStdout(), infoStyle.Render("Nothing recognised in: "+ex.CleanedQuery))
				return nil
			})
		},
	}
}
