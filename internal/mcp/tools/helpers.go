package tools

import (
	"encoding/json"

	"github.com/datacell/graphtable/internal/render"
	"github.com/datacell/graphtable/pkg/table"
)

// ToAny converts a typed value into plain JSON-shaped data (maps, slices,
// scalars) via a marshal round trip. Tool outputs declared as `any` must
// hold this shape for the SDK's schema inference to line up with the
// serialized JSON.
func ToAny(v any) (any, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var out any
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// rowsToAny converts rows into []any, preserving each row's key order in the
// serialized form.
func rowsToAny(rows []table.Row) []any {
	out := make([]any, 0, len(rows))
	for _, row := range rows {
		v, err := ToAny(row)
		if err != nil {
			continue
		}
		out = append(out, v)
	}
	return out
}

// rowsFromAny converts loosely-typed sample rows supplied in tool input into
// table rows. Key order inside each row follows the encoder's lexical order;
// callers that care about natural order should query instead of sampling.
func rowsFromAny(samples []map[string]any) ([]table.Row, error) {
	rows := make([]table.Row, 0, len(samples))
	for _, sample := range samples {
		data, err := json.Marshal(sample)
		if err != nil {
			return nil, err
		}
		var row table.Row
		if err := json.Unmarshal(data, &row); err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// RenderState is the serialized display state exposed to tool callers: the
// read-only derived values the presentation layer binds to.
type RenderState struct {
	State                string         `json:"state"`
	Title                string         `json:"title,omitempty"`
	HasRequiredConfig    bool           `json:"has_required_config"`
	ConfigurationMessage string         `json:"configuration_message,omitempty"`
	IsLoading            bool           `json:"is_loading"`
	HasError             bool           `json:"has_error"`
	ErrorMessage         string         `json:"error_message,omitempty"`
	ErrorKind            string         `json:"error_kind,omitempty"`
	IsEmpty              bool           `json:"is_empty"`
	Truncated            bool           `json:"truncated,omitempty"`
	RowCountMessage      string         `json:"row_count_message,omitempty"`
	Columns              []table.Column `json:"columns,omitzero"`
	Rows                 []any          `json:"rows,omitzero"`
}

// renderState serializes a display state for tool output.
func renderState(s render.State, title string) RenderState {
	return RenderState{
		State:                string(s.Kind()),
		Title:                title,
		HasRequiredConfig:    s.HasRequiredConfig(),
		ConfigurationMessage: s.ConfigurationMessage(),
		IsLoading:            s.IsLoading(),
		HasError:             s.HasError(),
		ErrorMessage:         s.ErrorMessage(),
		ErrorKind:            s.ErrorKind(),
		IsEmpty:              s.IsEmpty(),
		Truncated:            s.Truncated(),
		RowCountMessage:      s.RowCountMessage(),
		Columns:              s.Columns(),
		Rows:                 rowsToAny(s.Rows()),
	}
}
