// Package table adapts loosely-typed graph query rows into a deterministic
// table schema: ordered columns with display labels and display types.
package table

import (
	"encoding/json"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// ColumnType is the display type assigned to a column.
type ColumnType string

// Display types. Inference only ever produces a subset of these; the rest are
// legal in explicit column configuration.
const (
	TypeText      ColumnType = "text"
	TypeNumber    ColumnType = "number"
	TypeBoolean   ColumnType = "boolean"
	TypeDate      ColumnType = "date"
	TypeDateLocal ColumnType = "date-local"
	TypeURL       ColumnType = "url"
	TypeEmail     ColumnType = "email"
	TypePhone     ColumnType = "phone"
)

// Valid reports whether t is one of the known display types.
func (t ColumnType) Valid() bool {
	switch t {
	case TypeText, TypeNumber, TypeBoolean, TypeDate, TypeDateLocal, TypeURL, TypeEmail, TypePhone:
		return true
	}
	return false
}

// Column is one entry of a column schema.
type Column struct {
	Label     string     `json:"label"`
	FieldName string     `json:"fieldName"`
	Type      ColumnType `json:"type"`
}

// Row is a single record returned by a graph query: a mapping from field
// identifier to scalar value. Key order as sent by the platform is preserved
// across JSON decoding so that column derivation sees fields in their natural
// order.
type Row struct {
	om *orderedmap.OrderedMap[string, any]
}

// NewRow returns an empty row.
func NewRow() Row {
	return Row{om: orderedmap.New[string, any]()}
}

// Set stores a value under key, appending the key if it is new.
func (r *Row) Set(key string, value any) {
	if r.om == nil {
		r.om = orderedmap.New[string, any]()
	}
	r.om.Set(key, value)
}

// Get returns the value stored under key and whether the key is present.
func (r Row) Get(key string) (any, bool) {
	if r.om == nil {
		return nil, false
	}
	return r.om.Get(key)
}

// Has reports whether key is present.
func (r Row) Has(key string) bool {
	_, ok := r.Get(key)
	return ok
}

// Len returns the number of fields in the row.
func (r Row) Len() int {
	if r.om == nil {
		return 0
	}
	return r.om.Len()
}

// Keys returns the field identifiers in their natural order.
func (r Row) Keys() []string {
	if r.om == nil {
		return nil
	}
	keys := make([]string, 0, r.om.Len())
	for pair := r.om.Oldest(); pair != nil; pair = pair.Next() {
		keys = append(keys, pair.Key)
	}
	return keys
}

// MarshalJSON renders the row as a JSON object with keys in natural order.
func (r Row) MarshalJSON() ([]byte, error) {
	if r.om == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(r.om)
}

// UnmarshalJSON decodes a JSON object, recording key order as encountered.
func (r *Row) UnmarshalJSON(data []byte) error {
	om := orderedmap.New[string, any]()
	if err := json.Unmarshal(data, om); err != nil {
		return err
	}
	r.om = om
	return nil
}
