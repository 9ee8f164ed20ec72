// Package profile computes per-field statistics over a fetched row set. It
// is diagnostic only: column derivation stays first-row-only regardless of
// what the profile reports.
package profile

import (
	"encoding/json"
	"fmt"

	"github.com/RoaringBitmap/roaring/v2"

	"github.com/datacell/graphtable/pkg/table"
)

// FieldProfile summarizes one field across all rows.
type FieldProfile struct {
	FieldName     string           `json:"field_name"`
	Label         string           `json:"label"`
	Present       int              `json:"present"`        // rows where the key exists
	Nulls         int              `json:"nulls"`          // present rows with a null value
	Distinct      int              `json:"distinct"`       // distinct non-null values
	InferredType  table.ColumnType `json:"inferred_type"`  // from the first row holding the field
	TypeAgreement float64          `json:"type_agreement"` // fraction of non-null values matching InferredType
}

// Result is the profile of a row set.
type Result struct {
	RowCount int            `json:"row_count"`
	Fields   []FieldProfile `json:"fields,omitzero"`
}

// Engine profiles row sets.
type Engine struct{}

// NewEngine creates a profile engine.
func NewEngine() *Engine {
	return &Engine{}
}

// fieldTracker accumulates per-field bitmaps and counters during the scan.
type fieldTracker struct {
	name     string
	present  *roaring.Bitmap // row indices where the key exists
	nonNull  *roaring.Bitmap // row indices with a non-null value
	agree    *roaring.Bitmap // non-null row indices matching the inferred type
	inferred table.ColumnType
	typed    bool
	distinct map[string]struct{}
}

// Profile scans rows and returns field statistics. Fields are reported in
// order of first appearance.
func (e *Engine) Profile(rows []table.Row) *Result {
	trackers := make(map[string]*fieldTracker)
	var order []string

	for i, row := range rows {
		idx := uint32(i)
		for _, key := range row.Keys() {
			tr, ok := trackers[key]
			if !ok {
				tr = &fieldTracker{
					name:     key,
					present:  roaring.New(),
					nonNull:  roaring.New(),
					agree:    roaring.New(),
					distinct: make(map[string]struct{}),
				}
				trackers[key] = tr
				order = append(order, key)
			}

			tr.present.Add(idx)
			value, _ := row.Get(key)
			if value == nil {
				continue
			}
			tr.nonNull.Add(idx)
			tr.distinct[distinctKey(value)] = struct{}{}

			vt := table.InferType(value)
			if !tr.typed {
				tr.inferred = vt
				tr.typed = true
			}
			if vt == tr.inferred {
				tr.agree.Add(idx)
			}
		}
	}

	result := &Result{
		RowCount: len(rows),
		Fields:   make([]FieldProfile, 0, len(order)),
	}
	for _, key := range order {
		tr := trackers[key]
		fp := FieldProfile{
			FieldName:    key,
			Label:        table.FormatLabel(key),
			Present:      int(tr.present.GetCardinality()),
			Nulls:        int(roaring.AndNot(tr.present, tr.nonNull).GetCardinality()),
			Distinct:     len(tr.distinct),
			InferredType: tr.inferred,
		}
		if !tr.typed {
			fp.InferredType = table.TypeText
		}
		if n := tr.nonNull.GetCardinality(); n > 0 {
			fp.TypeAgreement = float64(tr.agree.GetCardinality()) / float64(n)
		}
		result.Fields = append(result.Fields, fp)
	}
	return result
}

// distinctKey produces a stable identity for a scalar value.
func distinctKey(v any) string {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	return string(data)
}
