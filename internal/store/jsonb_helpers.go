package store

import (
	"database/sql/driver"
	"fmt"

	"visa-flow/internal/visa"
)

// JSONBConfiguration wraps visa.Configuration for JSONB database storage
type JSONBConfiguration struct {
	visa.Configuration
}

// Value implements the driver.Valuer interface for database storage
func (j JSONBConfiguration) Value() (driver.Value, error) {
	return visa.Marshal(j.Configuration)
}

// Scan implements the sql.Scanner interface for database retrieval
func (j *JSONBConfiguration) Scan(value interface{}) error {
	if value == nil {
		j.Configuration = visa.Configuration{}
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return fmt.Errorf("cannot scan %T into JSONBConfiguration", value)
	}

	cfg, err := visa.Unmarshal(bytes)
	if err != nil {
		return err
	}
	j.Configuration = cfg
	return nil
}
