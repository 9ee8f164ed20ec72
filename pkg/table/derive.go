package table

import (
	"log/slog"
)

// Deriver builds ordered column schemas, preferring explicit configuration
// and falling back to inference from row data.
type Deriver struct {
	logger *slog.Logger
}

// NewDeriver creates a deriver. Diagnostics for rejected column configs go to
// the given logger; pass nil to use the default logger.
func NewDeriver(logger *slog.Logger) *Deriver {
	if logger == nil {
		logger = slog.Default()
	}
	return &Deriver{logger: logger}
}

// Derive builds the column schema for a result set.
//
// A usable configJSON wins verbatim, even when it disagrees with the actual
// row shape. A present-but-unusable configJSON is logged and ignored, and
// derivation falls through to the rows; this fallback is deliberate, not an
// error path. Auto-derivation reads only the first row: its keys in natural
// order, labels via FormatLabel, types via InferType of the first row's
// values. Columns whose types vary across later rows are not reconciled.
func (d *Deriver) Derive(configJSON string, rows []Row) []Column {
	if configJSON != "" {
		cols, err := ParseColumnConfig(configJSON)
		if err == nil {
			return cols
		}
		d.logger.Debug("column config unusable, deriving columns from rows",
			slog.String("error", err.Error()),
		)
	}

	if len(rows) == 0 {
		return []Column{}
	}

	first := rows[0]
	cols := make([]Column, 0, first.Len())
	for _, key := range first.Keys() {
		value, _ := first.Get(key)
		cols = append(cols, Column{
			Label:     FormatLabel(key),
			FieldName: key,
			Type:      InferType(value),
		})
	}
	return cols
}
