package store

import (
	"errors"
	"time"

	"github.com/lib/pq"
)

// ErrConfigurationNotFound is returned when no configuration matches a lookup.
var ErrConfigurationNotFound = errors.New("visa configuration not found")

// ConfigurationRecord is one stored version of a visa configuration.
type ConfigurationRecord struct {
	ConfigurationID   string             `db:"configuration_id" json:"configuration_id"`
	TypeID            string             `db:"type_id" json:"type_id"`
	Code              string             `db:"code" json:"code"`
	Name              string             `db:"name" json:"name"`
	Category          string             `db:"category" json:"category"`
	Version           int                `db:"version" json:"version"`
	ApplicationFlow   pq.StringArray     `db:"application_flow" json:"application_flow"`
	RequiredDocuments pq.StringArray     `db:"required_documents" json:"required_documents"`
	Document          JSONBConfiguration `db:"document" json:"document"`
	CreatedAt         time.Time          `db:"created_at" json:"created_at"`
	UpdatedAt         time.Time          `db:"updated_at" json:"updated_at"`
}

// ConfigurationSummary describes the latest version of one visa type.
type ConfigurationSummary struct {
	ConfigurationID string    `db:"configuration_id" json:"configuration_id"`
	TypeID          string    `db:"type_id" json:"type_id"`
	Code            string    `db:"code" json:"code"`
	Name            string    `db:"name" json:"name"`
	Category        string    `db:"category" json:"category"`
	Version         int       `db:"version" json:"version"`
	UpdatedAt       time.Time `db:"updated_at" json:"updated_at"`
}
