// Package rowextract projects raw graph query rows through a jq expression.
// Graph responses sometimes nest the interesting record under a path inside
// each returned node; the expression flattens it before column derivation.
package rowextract

import (
	"encoding/json"
	"log/slog"

	"github.com/itchyny/gojq"

	"github.com/datacell/graphtable/pkg/table"
)

// Extractor applies jq projections to result rows.
type Extractor struct {
	logger *slog.Logger
}

// New creates an extractor. Diagnostics for unusable expressions go to the
// given logger; pass nil to use the default logger.
func New(logger *slog.Logger) *Extractor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Extractor{logger: logger}
}

// Project applies expression to every row and returns the projected rows.
// An empty expression is the identity. An expression that fails to parse or
// compile is logged and ignored, returning the rows unchanged; this mirrors
// how an unusable column config falls back rather than failing. Rows whose
// projection yields no object are dropped.
//
// Projected rows pass through a JSON round trip, so their key order is the
// encoder's lexical order rather than the platform's natural order.
func (e *Extractor) Project(rows []table.Row, expression string) []table.Row {
	if expression == "" || len(rows) == 0 {
		return rows
	}

	query, err := gojq.Parse(expression)
	if err != nil {
		e.logger.Debug("row expression unusable, keeping rows as-is",
			slog.String("expression", expression),
			slog.String("error", err.Error()),
		)
		return rows
	}
	code, err := gojq.Compile(query)
	if err != nil {
		e.logger.Debug("row expression failed to compile, keeping rows as-is",
			slog.String("expression", expression),
			slog.String("error", err.Error()),
		)
		return rows
	}

	out := make([]table.Row, 0, len(rows))
	for _, row := range rows {
		projected, ok := e.projectRow(code, row)
		if !ok {
			continue
		}
		out = append(out, projected)
	}
	return out
}

// projectRow runs the compiled expression against one row and converts the
// first emitted object back into a Row.
func (e *Extractor) projectRow(code *gojq.Code, row table.Row) (table.Row, bool) {
	input, err := rowToAny(row)
	if err != nil {
		return table.Row{}, false
	}

	iter := code.Run(input)
	for {
		v, ok := iter.Next()
		if !ok {
			return table.Row{}, false
		}
		if _, isErr := v.(error); isErr {
			continue
		}
		if _, isObj := v.(map[string]any); !isObj {
			continue
		}
		return anyToRow(v)
	}
}

func rowToAny(row table.Row) (any, error) {
	data, err := json.Marshal(row)
	if err != nil {
		return nil, err
	}
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, err
	}
	return v, nil
}

func anyToRow(v any) (table.Row, bool) {
	data, err := json.Marshal(v)
	if err != nil {
		return table.Row{}, false
	}
	var row table.Row
	if err := json.Unmarshal(data, &row); err != nil {
		return table.Row{}, false
	}
	return row, true
}
