package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"visa-flow/internal/config"
	"visa-flow/internal/datastore"
	"visa-flow/internal/migration"
)

func migrateMockCommand(a *app) *cobra.Command {
	var (
		from   string
		dryRun bool
	)

	cmd := &cobra.Command{
		Use:   "migrate-mock",
		Short: "Copy configurations from the local mock store into the configured store",
		Long: `Copy every saved configuration version and the resumable visa code from a
mock store directory into the configured data store. Versions already present
in the target are skipped.

Examples:
  visa-flow migrate-mock --from data/mocks --store postgresql --db postgres://...
  visa-flow migrate-mock --from data/mocks --store postgresql --dry-run`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if from == "" {
				from = config.GetDataStoreConfigFor(datastore.MockStore).MockDataPath
			}
			source, err := a.openStore(datastore.Config{Type: datastore.MockStore, MockDataPath: from})
			if err != nil {
				return fmt.Errorf("failed to open mock store: %w", err)
			}
			defer source.Close()

			target, err := a.dataStore()
			if err != nil {
				return err
			}
			defer target.Close()

			res, err := migration.NewMockToDBMigrator(source, target, dryRun, a.log).RunFullMigration(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Configurations copied:   %d\n", res.ConfigurationsCopied)
			fmt.Fprintf(out, "Configurations existing: %d\n", res.ConfigurationsExisting)
			fmt.Fprintf(out, "Visa code copied:        %t\n", res.CodeCopied)
			for _, e := range res.Errors {
				fmt.Fprintf(out, "ERROR: %s\n", e)
			}
			if !res.Success {
				return fmt.Errorf("migration finished with %d errors", len(res.Errors))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "Mock store directory to copy from (default: VISA_MOCK_DATA_PATH)")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Show what would be copied without writing")
	return cmd
}
