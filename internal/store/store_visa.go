package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"visa-flow/internal/visa"
)

// ErrVersionExists is returned when a (type_id, version) pair is already stored.
var ErrVersionExists = errors.New("visa configuration version already exists")

const uniqueViolation = "23505"

const selectConfigurationColumns = `SELECT configuration_id::text, type_id, code, name, category, version,
                application_flow, required_documents, document, created_at, updated_at
         FROM "visa-flow".visa_configurations`

// SaveVisaConfiguration inserts a new version of a visa configuration and
// returns the generated configuration id.
func (s *Store) SaveVisaConfiguration(ctx context.Context, cfg visa.Configuration) (string, error) {
	var configurationID string
	err := s.db.QueryRowxContext(ctx,
		`INSERT INTO "visa-flow".visa_configurations
            (type_id, code, name, category, version, application_flow, required_documents, document, created_at, updated_at)
         VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
         RETURNING configuration_id::text`,
		cfg.TypeID, cfg.Code, cfg.Name, cfg.Category, cfg.Version,
		pq.Array(cfg.ApplicationFlow), pq.Array(cfg.RequiredDocuments),
		JSONBConfiguration{Configuration: cfg}, cfg.CreatedAt, cfg.UpdatedAt,
	).Scan(&configurationID)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return "", fmt.Errorf("%w: type %q version %d", ErrVersionExists, cfg.TypeID, cfg.Version)
		}
		return "", fmt.Errorf("failed to save visa configuration: %w", err)
	}
	return configurationID, nil
}

// GetLatestVisaConfiguration returns the highest stored version for typeID.
func (s *Store) GetLatestVisaConfiguration(ctx context.Context, typeID string) (*ConfigurationRecord, error) {
	var rec ConfigurationRecord
	err := s.db.GetContext(ctx, &rec, selectConfigurationColumns+`
         WHERE type_id = $1
         ORDER BY version DESC
         LIMIT 1`, typeID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: type %q", ErrConfigurationNotFound, typeID)
		}
		return nil, fmt.Errorf("failed to get latest visa configuration: %w", err)
	}
	return &rec, nil
}

// GetVisaConfiguration returns one specific version for typeID.
func (s *Store) GetVisaConfiguration(ctx context.Context, typeID string, version int) (*ConfigurationRecord, error) {
	var rec ConfigurationRecord
	err := s.db.GetContext(ctx, &rec, selectConfigurationColumns+`
         WHERE type_id = $1 AND version = $2`, typeID, version)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: type %q version %d", ErrConfigurationNotFound, typeID, version)
		}
		return nil, fmt.Errorf("failed to get visa configuration: %w", err)
	}
	return &rec, nil
}

// GetVisaConfigurationHistory returns every stored version for typeID,
// oldest first.
func (s *Store) GetVisaConfigurationHistory(ctx context.Context, typeID string) ([]ConfigurationRecord, error) {
	var history []ConfigurationRecord
	err := s.db.SelectContext(ctx, &history, selectConfigurationColumns+`
         WHERE type_id = $1
         ORDER BY version ASC`, typeID)
	if err != nil {
		return nil, fmt.Errorf("failed to query visa configuration history: %w", err)
	}
	return history, nil
}

// ListVisaConfigurations returns the latest version of every visa type.
func (s *Store) ListVisaConfigurations(ctx context.Context) ([]ConfigurationSummary, error) {
	var summaries []ConfigurationSummary
	err := s.db.SelectContext(ctx, &summaries,
		`SELECT DISTINCT ON (type_id) configuration_id::text, type_id, code, name, category, version, updated_at
         FROM "visa-flow".visa_configurations
         ORDER BY type_id, version DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list visa configurations: %w", err)
	}
	return summaries, nil
}

// NextVersion returns the version a new save of typeID should carry.
func (s *Store) NextVersion(ctx context.Context, typeID string) (int, error) {
	var next int
	err := s.db.GetContext(ctx, &next,
		`SELECT COALESCE(MAX(version), 0) + 1 FROM "visa-flow".visa_configurations WHERE type_id = $1`, typeID)
	if err != nil {
		return 0, fmt.Errorf("failed to compute next version: %w", err)
	}
	return next, nil
}
