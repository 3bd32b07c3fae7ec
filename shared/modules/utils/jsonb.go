package utils

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// MarshalJSONB encodes v for a JSONB column.
func MarshalJSONB(v any) (driver.Value, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("JSONB: marshal failed: %w", err)
	}
	return b, nil
}

// ScanJSONB decodes a JSONB column into dest. A NULL column leaves dest untouched.
func ScanJSONB(value any, dest any) error {
	var b []byte
	switch v := value.(type) {
	case nil:
		return nil
	case []byte:
		b = v
	case string:
		b = []byte(v)
	default:
		return fmt.Errorf("JSONB: Scan failed, expected []byte but got %T", value)
	}
	if len(b) == 0 {
		return nil
	}
	return json.Unmarshal(b, dest)
}
