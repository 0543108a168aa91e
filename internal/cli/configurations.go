package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"visa-flow/internal/store"
	"visa-flow/internal/visa"
)

func showCommand(a *app) *cobra.Command {
	var (
		typeID  string
		version int
	)

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print a saved visa configuration",
		Long: `Print a saved visa configuration as JSON.

Examples:
  visa-flow show --type-id student-long-term
  visa-flow show --type-id student-long-term --version 2`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ds, err := a.dataStore()
			if err != nil {
				return err
			}
			defer ds.Close()

			var rec *store.ConfigurationRecord
			if version > 0 {
				rec, err = ds.GetVisaConfiguration(cmd.Context(), typeID, version)
			} else {
				rec, err = ds.GetLatestVisaConfiguration(cmd.Context(), typeID)
			}
			if err != nil {
				if errors.Is(err, store.ErrConfigurationNotFound) {
					return fmt.Errorf("no saved configuration: %w", err)
				}
				return err
			}

			raw, err := visa.MarshalIndent(rec.Document.Configuration)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(raw))
			return nil
		},
	}

	cmd.Flags().StringVar(&typeID, "type-id", "", "Visa type id (required)")
	cmd.Flags().IntVar(&version, "version", 0, "Specific version (default: latest)")
	_ = cmd.MarkFlagRequired("type-id")
	return cmd
}

func historyCommand(a *app) *cobra.Command {
	var typeID string

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List every saved version of a visa type",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ds, err := a.dataStore()
			if err != nil {
				return err
			}
			defer ds.Close()

			history, err := ds.GetVisaConfigurationHistory(cmd.Context(), typeID)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "--- Configuration history for %s ---\n", typeID)
			fmt.Fprintf(out, "Found %d versions.\n", len(history))
			for _, rec := range history {
				fmt.Fprintf(out, "Version %d | %s | %s | saved %s\n",
					rec.Version, rec.Code, rec.Category, rec.CreatedAt.UTC().Format(time.RFC3339))
				fmt.Fprintf(out, "  id:        %s\n", rec.ConfigurationID)
				fmt.Fprintf(out, "  flow:      %v\n", []string(rec.ApplicationFlow))
				fmt.Fprintf(out, "  documents: %v\n", []string(rec.RequiredDocuments))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&typeID, "type-id", "", "Visa type id (required)")
	_ = cmd.MarkFlagRequired("type-id")
	return cmd
}

func listCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the latest version of every saved visa type",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ds, err := a.dataStore()
			if err != nil {
				return err
			}
			defer ds.Close()

			summaries, err := ds.ListVisaConfigurations(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(summaries) == 0 {
				fmt.Fprintln(out, "No saved configurations.")
				return nil
			}
			for _, s := range summaries {
				fmt.Fprintf(out, "%-24s v%-3d %-8s %-10s %s\n", s.TypeID, s.Version, s.Code, s.Category, s.Name)
			}
			return nil
		},
	}
}
