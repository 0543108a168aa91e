package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func initDBCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "init-db",
		Short: "Create the schema and tables used by the data store",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ds, err := a.dataStore()
			if err != nil {
				return err
			}
			defer ds.Close()

			if err := ds.InitDB(cmd.Context()); err != nil {
				return fmt.Errorf("failed to initialize database: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Database initialized successfully.")
			return nil
		},
	}
}
