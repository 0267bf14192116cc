package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// jsonValue marshals a jsonb column value
func jsonValue(v any) (driver.Value, error) {
	return json.Marshal(v)
}

// jsonScan unmarshals a jsonb column into dst, leaving dst untouched for NULL
func jsonScan(value any, dst any, typeName string) error {
	if value == nil {
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return fmt.Errorf("cannot scan %T into %s", value, typeName)
	}

	if len(bytes) == 0 {
		return nil
	}
	return json.Unmarshal(bytes, dst)
}

// scanEnum reads a text column into an enum-like string type
func scanEnum(value any, typeName string) (string, error) {
	if value == nil {
		return "", nil
	}
	switch v := value.(type) {
	case string:
		return v, nil
	case []byte:
		return string(v), nil
	default:
		return "", fmt.Errorf("cannot scan %T into %s", value, typeName)
	}
}
