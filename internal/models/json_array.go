package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// JSONArray stores a slice as a JSON-encoded text column.
type JSONArray[T any] []T

// Value implements the driver.Valuer interface
func (a JSONArray[T]) Value() (driver.Value, error) {
	if len(a) == 0 {
		return "[]", nil
	}
	b, err := json.Marshal([]T(a))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements the sql.Scanner interface
func (a *JSONArray[T]) Scan(value interface{}) error {
	if value == nil {
		*a = JSONArray[T]{}
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return fmt.Errorf("unsupported type %T for JSON array column", value)
	}

	if len(bytes) == 0 {
		*a = JSONArray[T]{}
		return nil
	}

	var out []T
	if err := json.Unmarshal(bytes, &out); err != nil {
		return err
	}
	if out == nil {
		out = []T{}
	}
	*a = out
	return nil
}

// MarshalJSON always renders an array, never null.
func (a JSONArray[T]) MarshalJSON() ([]byte, error) {
	if a == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]T(a))
}

// StringArray is the common string case.
type StringArray = JSONArray[string]
