package table

import (
	"encoding/json"
	"regexp"
	"strings"
)

// datePrefix matches an ISO-style date at the start of a string, e.g.
// "2024-01-31" or "2024-01-31T08:00:00Z".
var datePrefix = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}`)

// InferType decides the display type for a single scalar value. It is total:
// every input maps to a type, and unknown shapes fall back to text.
//
// Only native numeric values qualify as number; a numeric-looking string is
// left as text on purpose.
func InferType(v any) ColumnType {
	switch val := v.(type) {
	case nil:
		return TypeText
	case float64, float32, int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64, json.Number:
		return TypeNumber
	case bool:
		return TypeBoolean
	case string:
		if datePrefix.MatchString(val) {
			return TypeDate
		}
		if strings.HasPrefix(val, "http://") || strings.HasPrefix(val, "https://") {
			return TypeURL
		}
		return TypeText
	default:
		return TypeText
	}
}
