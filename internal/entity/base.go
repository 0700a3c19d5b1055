package entity

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

type Base struct {
	ID        string `gorm:"primaryKey"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Array stores a slice as a JSON column.
type Array[T any] []T

func (a Array[T]) Value() (driver.Value, error) {
	return json.Marshal(a)
}

func (a *Array[T]) Scan(obj any) error {
	switch t := obj.(type) {
	case []byte:
		return json.Unmarshal(t, a)
	case string:
		return json.Unmarshal([]byte(t), a)
	default:
		return fmt.Errorf("cannot scan %T into an array", obj)
	}
}

// Map stores a string-keyed map as a JSON column.
type Map map[string]any

func (m Map) Value() (driver.Value, error) {
	return json.Marshal(m)
}

func (m *Map) Scan(obj any) error {
	switch t := obj.(type) {
	case []byte:
		return json.Unmarshal(t, m)
	case string:
		return json.Unmarshal([]byte(t), m)
	default:
		return fmt.Errorf("cannot scan %T into a map", obj)
	}
}
