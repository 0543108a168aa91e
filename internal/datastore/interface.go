package datastore

import (
	"context"

	"visa-flow/internal/store"
	"visa-flow/internal/visa"
)

// DataStore defines the interface for all data access operations
// This interface can be implemented by both real database store and mock store
type DataStore interface {
	// Lifecycle
	Close() error
	InitDB(ctx context.Context) error

	// Key/value operations backing the builder's resumable fields
	GetValue(ctx context.Context, key string) (string, bool, error)
	SetValue(ctx context.Context, key, value string) error
	DeleteValue(ctx context.Context, key string) error

	// Visa configuration operations
	SaveVisaConfiguration(ctx context.Context, cfg visa.Configuration) (string, error)
	GetLatestVisaConfiguration(ctx context.Context, typeID string) (*store.ConfigurationRecord, error)
	GetVisaConfiguration(ctx context.Context, typeID string, version int) (*store.ConfigurationRecord, error)
	GetVisaConfigurationHistory(ctx context.Context, typeID string) ([]store.ConfigurationRecord, error)
	ListVisaConfigurations(ctx context.Context) ([]store.ConfigurationSummary, error)
	NextVersion(ctx context.Context, typeID string) (int, error)
}

var _ DataStore = (*store.Store)(nil)

// Type represents the type of data store to use
type Type string

const (
	// PostgreSQLStore uses real PostgreSQL database
	PostgreSQLStore Type = "postgresql"
	// MockStore uses a JSON file on local disk
	MockStore Type = "mock"
)

// Config holds configuration for data store creation
type Config struct {
	Type             Type
	ConnectionString string
	MockDataPath     string
}

// NewDataStore creates a new data store based on configuration
func NewDataStore(config Config) (DataStore, error) {
	switch config.Type {
	case PostgreSQLStore:
		return newPostgreSQLStore(config.ConnectionString)
	case MockStore:
		return newMockStore(config.MockDataPath)
	default:
		return nil, &UnsupportedStoreTypeError{Type: string(config.Type)}
	}
}

func newPostgreSQLStore(connectionString string) (DataStore, error) {
	s, err := store.NewStore(connectionString)
	if err != nil {
		return nil, err
	}
	return s, nil
}

// UnsupportedStoreTypeError is returned when an unsupported store type is requested
type UnsupportedStoreTypeError struct {
	Type string
}

func (e *UnsupportedStoreTypeError) Error() string {
	return "unsupported store type: " + e.Type
}
