package db

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// Fields represents a submission's per-kind field values, stored as JSON in the database.
// It implements the sql.Scanner and driver.Valuer interfaces to handle database serialization.
// A value that cannot be decoded scans as an empty map so that one corrupt row does not
// take down a full collection read.
type Fields map[string]string

// Scan implements the sql.Scanner interface, allowing Fields to be read from the database.
func (f *Fields) Scan(value interface{}) error {
	if value == nil {
		*f = make(Fields)
		return nil
	}

	switch v := value.(type) {
	case []byte:
		json.Unmarshal(v, &f)
		return nil
	case string:
		json.Unmarshal([]byte(v), &f)
		return nil
	default:
		return fmt.Errorf("unsupported type %T", v)
	}
}

// Value implements the driver.Valuer interface, allowing Fields to be written to the database.
func (f Fields) Value() (driver.Value, error) {
	if len(f) == 0 {
		return "{}", nil
	}
	return json.Marshal(f)
}

// Metadata represents a flexible key-value store for additional data, stored as JSON in the database.
// It implements the sql.Scanner and driver.Valuer interfaces to handle database serialization.
type Metadata map[string]any

// Scan implements the sql.Scanner interface, allowing Metadata to be read from the database.
func (m *Metadata) Scan(value interface{}) error {
	if value == nil {
		*m = make(Metadata)
		return nil
	}

	switch v := value.(type) {
	case []byte:
		json.Unmarshal(v, &m)
		return nil
	case string:
		json.Unmarshal([]byte(v), &m)
		return nil
	default:
		return fmt.Errorf("unsupported type %T", v)
	}
}

// Value implements the driver.Valuer interface, allowing Metadata to be written to the database.
func (m Metadata) Value() (driver.Value, error) {
	if len(m) == 0 {
		return "{}", nil
	}
	return json.Marshal(m)
}
