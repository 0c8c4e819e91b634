package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// GeoPoint is a normalized geospatial point used for location-based
// lookups. A point is persisted only when it is fully well-formed; any
// partial shape is stripped before the owning row is written.
type GeoPoint struct {
	Type        string    `json:"type"`
	Coordinates []float64 `json:"coordinates"`
}

// IsValid reports whether the point has a type and exactly two coordinates.
func (p *GeoPoint) IsValid() bool {
	return p != nil && p.Type != "" && len(p.Coordinates) == 2
}

// SanitizePoint returns the point unchanged when it is well-formed and
// nil otherwise, so malformed points are unset rather than stored.
func SanitizePoint(p *GeoPoint) *GeoPoint {
	if p.IsValid() {
		return p
	}
	return nil
}

// Value implements the driver.Valuer interface
func (p *GeoPoint) Value() (driver.Value, error) {
	if !p.IsValid() {
		return nil, nil
	}
	return json.Marshal(p)
}

// Scan implements the sql.Scanner interface
func (p *GeoPoint) Scan(value interface{}) error {
	if value == nil {
		*p = GeoPoint{}
		return nil
	}

	bytes, err := jsonbBytes(value)
	if err != nil {
		return err
	}

	var temp GeoPoint
	if err := json.Unmarshal(bytes, &temp); err != nil {
		return fmt.Errorf("failed to unmarshal geo point: %w", err)
	}
	*p = temp
	return nil
}

// jsonbBytes normalizes a raw jsonb column value to a byte slice.
// Postgres hands back []byte, sqlite (used by the test suites) a string.
func jsonbBytes(value interface{}) ([]byte, error) {
	switch v := value.(type) {
	case []byte:
		return v, nil
	case string:
		return []byte(v), nil
	default:
		return nil, fmt.Errorf("failed to unmarshal JSONB value: %v", value)
	}
}
