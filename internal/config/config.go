package config

import (
	"os"
	"strings"

	"visa-flow/internal/datastore"
)

const (
	envStoreType    = "VISA_STORE_TYPE"
	envConnString   = "DB_CONN_STRING"
	envMockDataPath = "VISA_MOCK_DATA_PATH"
	envCatalogFile  = "VISA_CATALOG_FILE"
)

// GetDataStoreConfig returns the data store configuration based on environment variables
func GetDataStoreConfig() datastore.Config {
	// Local JSON store unless told otherwise
	storeType := os.Getenv(envStoreType)
	if storeType == "" {
		storeType = "mock"
	}
	return GetDataStoreConfigFor(ParseStoreType(storeType))
}

// GetDataStoreConfigFor returns the environment settings for a given store type
func GetDataStoreConfigFor(t datastore.Type) datastore.Config {
	config := datastore.Config{Type: t}

	switch t {
	case datastore.PostgreSQLStore:
		config.ConnectionString = getConnectionString()
	case datastore.MockStore:
		config.MockDataPath = getMockDataPath()
	}

	return config
}

// ParseStoreType maps a store name and its aliases to a datastore.Type.
// Unknown names pass through so NewDataStore can reject them.
func ParseStoreType(name string) datastore.Type {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "postgresql", "postgres", "db":
		return datastore.PostgreSQLStore
	case "mock":
		return datastore.MockStore
	default:
		return datastore.Type(strings.ToLower(strings.TrimSpace(name)))
	}
}

// getMockDataPath returns the directory holding the mock store file
func getMockDataPath() string {
	path := os.Getenv(envMockDataPath)
	if path == "" {
		return "data/mocks" // Default path
	}
	return path
}

// getConnectionString returns the database connection string
func getConnectionString() string {
	connStr := os.Getenv(envConnString)
	if connStr == "" {
		// Default connection string for local development
		return "postgres://localhost:5432/postgres?sslmode=disable"
	}
	return connStr
}

// CatalogFilePath returns the catalog file named by VISA_CATALOG_FILE, or ""
// to use the built-in catalog.
func CatalogFilePath() string {
	return os.Getenv(envCatalogFile)
}
