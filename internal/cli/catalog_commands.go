package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"visa-flow/internal/catalog"
	"visa-flow/internal/documents"
)

func categoriesCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "List the selectable visa categories",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			def, err := a.definition()
			if err != nil {
				return err
			}
			for _, c := range def.Categories {
				fmt.Fprintln(cmd.OutOrStdout(), c)
			}
			return nil
		},
	}
}

func stagesCommand(a *app) *cobra.Command {
	var category string

	cmd := &cobra.Command{
		Use:   "stages",
		Short: "Show the stage catalog and documents as seen for a category",
		Long: `Show the fixed, conditional and final stages, and the default documents.

With --category only the conditional stages and documents tagged for that
category (or for all categories) are listed, in canonical order.

Examples:
  visa-flow stages
  visa-flow stages --category Student`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			def, err := a.definition()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			conditional := def.Catalog.Conditional()
			docs := def.Documents
			if category != "" {
				conditional = catalog.VisibleStages(conditional, category)
				docs = documents.Visible(docs, category)
			}

			fmt.Fprintln(out, "Fixed stages:")
			for _, s := range def.Catalog.Fixed() {
				fmt.Fprintf(out, "  %-26s %s\n", s.ID, s.Name)
			}
			fmt.Fprintln(out, "Conditional stages:")
			for _, s := range conditional {
				fmt.Fprintf(out, "  %s %-24s %-28s %s\n", checkbox(s.Enabled), s.ID, s.Name, categoryLabel(s.Categories))
			}
			fmt.Fprintln(out, "Final stages:")
			for _, s := range def.Catalog.Final() {
				fmt.Fprintf(out, "  %-26s %s\n", s.ID, s.Name)
			}
			fmt.Fprintln(out, "Documents:")
			for _, d := range docs {
				fmt.Fprintf(out, "  %s %-24s %-28s %s\n", checkbox(d.Enabled), d.ID, d.Name, categoryLabel(d.Categories))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&category, "category", "", "Only show items visible for this category")
	return cmd
}

func checkbox(on bool) string {
	if on {
		return "[x]"
	}
	return "[ ]"
}

func categoryLabel(c catalog.Categories) string {
	if c.All() {
		return "(all)"
	}
	return strings.Join(c, ", ")
}
