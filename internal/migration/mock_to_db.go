// Package migration copies data kept by the local mock store into another
// data store, typically PostgreSQL.
package migration

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"visa-flow/internal/builder"
	"visa-flow/internal/datastore"
	"visa-flow/internal/store"
)

// MockToDBMigrator copies saved configurations and the resumable code from a
// source store into a target store. Versions already present in the target
// are left alone, so a migration can be re-run safely.
type MockToDBMigrator struct {
	source datastore.DataStore
	target datastore.DataStore
	dryRun bool
	log    *zap.Logger
}

// MigrationResult holds the results of the migration process
type MigrationResult struct {
	Success                bool
	ConfigurationsCopied   int
	ConfigurationsExisting int
	CodeCopied             bool
	Errors                 []string
}

// NewMockToDBMigrator creates a new migrator instance
func NewMockToDBMigrator(source, target datastore.DataStore, dryRun bool, log *zap.Logger) *MockToDBMigrator {
	if log == nil {
		log = zap.NewNop()
	}
	return &MockToDBMigrator{source: source, target: target, dryRun: dryRun, log: log}
}

// RunFullMigration copies every stored version of every visa type. Failures
// on individual versions are collected and the migration carries on.
func (m *MockToDBMigrator) RunFullMigration(ctx context.Context) (*MigrationResult, error) {
	result := &MigrationResult{Success: true}
	m.log.Info("starting mock-to-database migration", zap.Bool("dry_run", m.dryRun))

	summaries, err := m.source.ListVisaConfigurations(ctx)
	if err != nil {
		result.Success = false
		return result, fmt.Errorf("failed to list source configurations: %w", err)
	}

	for _, summary := range summaries {
		history, err := m.source.GetVisaConfigurationHistory(ctx, summary.TypeID)
		if err != nil {
			result.Success = false
			return result, fmt.Errorf("failed to read history of %q: %w", summary.TypeID, err)
		}
		for _, rec := range history {
			m.copyVersion(ctx, rec, result)
		}
	}

	if err := m.copyCode(ctx, result); err != nil {
		result.Errors = append(result.Errors, err.Error())
		result.Success = false
	}

	m.log.Info("migration finished",
		zap.Int("copied", result.ConfigurationsCopied),
		zap.Int("existing", result.ConfigurationsExisting),
		zap.Int("errors", len(result.Errors)))
	return result, nil
}

func (m *MockToDBMigrator) copyVersion(ctx context.Context, rec store.ConfigurationRecord, result *MigrationResult) {
	_, err := m.target.GetVisaConfiguration(ctx, rec.TypeID, rec.Version)
	switch {
	case err == nil:
		result.ConfigurationsExisting++
		return
	case !errors.Is(err, store.ErrConfigurationNotFound):
		result.Errors = append(result.Errors, fmt.Sprintf("%s v%d: %v", rec.TypeID, rec.Version, err))
		result.Success = false
		return
	}

	if m.dryRun {
		m.log.Info("would copy configuration", zap.String("type_id", rec.TypeID), zap.Int("version", rec.Version))
		result.ConfigurationsCopied++
		return
	}
	if _, err := m.target.SaveVisaConfiguration(ctx, rec.Document.Configuration); err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("%s v%d: %v", rec.TypeID, rec.Version, err))
		result.Success = false
		return
	}
	m.log.Debug("copied configuration", zap.String("type_id", rec.TypeID), zap.Int("version", rec.Version))
	result.ConfigurationsCopied++
}

func (m *MockToDBMigrator) copyCode(ctx context.Context, result *MigrationResult) error {
	code, found, err := m.source.GetValue(ctx, builder.CodeKey)
	if err != nil {
		return fmt.Errorf("failed to read resumable code: %w", err)
	}
	if !found {
		return nil
	}
	if _, exists, err := m.target.GetValue(ctx, builder.CodeKey); err != nil {
		return fmt.Errorf("failed to read target resumable code: %w", err)
	} else if exists {
		m.log.Info("keeping resumable code already in target")
		return nil
	}
	if !m.dryRun {
		if err := m.target.SetValue(ctx, builder.CodeKey, code); err != nil {
			return fmt.Errorf("failed to copy resumable code: %w", err)
		}
	}
	result.CodeCopied = true
	return nil
}
