package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"visa-flow/internal/builder"
	"visa-flow/internal/scenario"
	"visa-flow/internal/visa"
)

func buildCommand(a *app) *cobra.Command {
	var (
		scenarioPath string
		scenarioDir  string
	)

	cmd := &cobra.Command{
		Use:   "build",
		Short: "Replay scenario files against a fresh builder and save the results",
		Long: `Replay one or more YAML scenario files. Each scenario runs against a fresh
builder wired to the data store, so a save step stores a new version.

Examples:
  visa-flow build --scenario scenarios/student.yaml
  visa-flow build --dir scenarios`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var scenarios []*scenario.Scenario
			switch {
			case scenarioPath != "":
				sc, err := scenario.LoadScenario(scenarioPath)
				if err != nil {
					return err
				}
				scenarios = append(scenarios, sc)
			default:
				all, err := scenario.LoadAllScenarios(scenarioDir)
				if err != nil {
					return err
				}
				scenarios = all
			}

			def, err := a.definition()
			if err != nil {
				return err
			}
			ds, err := a.dataStore()
			if err != nil {
				return err
			}
			defer ds.Close()

			ctx := cmd.Context()
			out := cmd.OutOrStdout()
			failed := 0
			for _, sc := range scenarios {
				b, err := builder.New(ctx, def,
					builder.WithLogger(a.log),
					builder.WithValueStore(ds),
					builder.WithSaver(ds))
				if err != nil {
					return err
				}
				runner := scenario.NewRunner(b, scenario.WithVersioner(ds), scenario.WithLogger(a.log))
				runner.SetOutput(out)

				res, runErr := runner.Run(ctx, *sc)
				if runErr != nil || !res.Success {
					failed++
					a.log.Warn("scenario failed", zap.String("scenario", sc.Name), zap.Int("failed_steps", res.FailedSteps))
				}
				if res.Saved != nil {
					raw, err := visa.MarshalIndent(*res.Saved)
					if err != nil {
						return err
					}
					fmt.Fprintf(out, "Saved %s version %d:\n%s\n", res.Saved.TypeID, res.Saved.Version, raw)
				}
			}

			if failed > 0 {
				return fmt.Errorf("%d of %d scenarios failed", failed, len(scenarios))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&scenarioPath, "scenario", "", "Scenario YAML file")
	cmd.Flags().StringVar(&scenarioDir, "dir", "scenarios", "Directory of scenario files, used when --scenario is not set")
	cmd.MarkFlagsMutuallyExclusive("scenario", "dir")
	return cmd
}
