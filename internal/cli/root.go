package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"visa-flow/internal/config"
	"visa-flow/internal/datastore"
)

// app carries the flags and services shared by every command.
type app struct {
	verbose      bool
	storeType    string
	connString   string
	mockDataPath string
	catalogPath  string

	log *zap.Logger

	// newDriver builds the prompt driver for the wizard; tests swap it.
	newDriver func(cmd *cobra.Command) PromptDriver
	// openStore opens the data store; tests swap it.
	openStore func(cfg datastore.Config) (datastore.DataStore, error)
}

// NewRootCommand builds the visa-flow command tree.
func NewRootCommand() *cobra.Command {
	return newRootCommand(&app{})
}

func newRootCommand(a *app) *cobra.Command {
	if a.log == nil {
		a.log = zap.NewNop()
	}
	if a.newDriver == nil {
		a.newDriver = func(cmd *cobra.Command) PromptDriver { return newSurveyDriver(cmd.OutOrStdout()) }
	}
	if a.openStore == nil {
		a.openStore = datastore.NewDataStore
	}

	root := &cobra.Command{
		Use:   "visa-flow",
		Short: "Build versioned visa application workflows",
		Long: `visa-flow assembles visa application workflow definitions from a catalog of
fixed, conditional and final stages, category-specific documents, processing
tiers and fees, and stores each saved definition as a new version.

Data store selection follows VISA_STORE_TYPE (mock|postgresql), DB_CONN_STRING
and VISA_MOCK_DATA_PATH unless overridden by flags.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			zcfg := zap.NewProductionConfig()
			if a.verbose {
				zcfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
			}
			logger, err := zcfg.Build()
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			a.log = logger
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.log != nil {
				_ = a.log.Sync()
			}
		},
	}

	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "Enable verbose logging")
	root.PersistentFlags().StringVar(&a.storeType, "store", "", "Data store type: mock or postgresql (overrides VISA_STORE_TYPE)")
	root.PersistentFlags().StringVar(&a.connString, "db", "", "Database connection string (overrides DB_CONN_STRING)")
	root.PersistentFlags().StringVar(&a.mockDataPath, "mock-data", "", "Mock store directory (overrides VISA_MOCK_DATA_PATH)")
	root.PersistentFlags().StringVar(&a.catalogPath, "catalog", "", "Catalog YAML file (overrides VISA_CATALOG_FILE)")

	root.AddCommand(
		initDBCommand(a),
		categoriesCommand(a),
		stagesCommand(a),
		buildCommand(a),
		wizardCommand(a),
		showCommand(a),
		historyCommand(a),
		listCommand(a),
		migrateMockCommand(a),
	)
	return root
}

// dataStoreConfig resolves the environment configuration with flag overrides applied.
func (a *app) dataStoreConfig() datastore.Config {
	cfg := config.GetDataStoreConfig()
	if a.storeType != "" {
		cfg = config.GetDataStoreConfigFor(config.ParseStoreType(a.storeType))
	}
	if a.connString != "" {
		cfg.ConnectionString = a.connString
	}
	if a.mockDataPath != "" {
		cfg.MockDataPath = a.mockDataPath
	}
	return cfg
}

func (a *app) dataStore() (datastore.DataStore, error) {
	cfg := a.dataStoreConfig()
	ds, err := a.openStore(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize data store: %w", err)
	}
	if cfg.Type == datastore.MockStore {
		a.log.Debug("using mock data store", zap.String("path", cfg.MockDataPath))
	} else {
		a.log.Debug("using database store", zap.String("conn", maskConnectionString(cfg.ConnectionString)))
	}
	return ds, nil
}

func (a *app) definition() (*config.Definition, error) {
	path := a.catalogPath
	if path == "" {
		path = config.CatalogFilePath()
	}
	return config.LoadDefinition(path)
}
