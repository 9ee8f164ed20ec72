// Package render turns query outcomes into display states: the closed set of
// shapes the presentation surface knows how to show. States are replaced
// wholesale on every transition, never patched.
package render

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/datacell/graphtable/pkg/table"
)

// StateKind identifies the active display state variant.
type StateKind string

const (
	KindUnconfigured StateKind = "unconfigured"
	KindLoading      StateKind = "loading"
	KindError        StateKind = "error"
	KindEmpty        StateKind = "empty"
	KindPopulated    StateKind = "populated"
)

// State is the normalized display state. Exactly one variant is active at a
// time; construct values only through the constructors below.
type State struct {
	kind      StateKind
	message   string // configuration message or error message
	errorKind string
	rows      []table.Row
	columns   []table.Column
	truncated bool
	rowLimit  int
}

// Unconfigured reports missing required configuration. The message names the
// missing inputs.
func Unconfigured(message string) State {
	return State{kind: KindUnconfigured, message: message}
}

// Loading is the state while a query is outstanding.
func Loading() State {
	return State{kind: KindLoading}
}

// Errored reports a failed query attempt with a message and an error kind.
func Errored(message, kind string) State {
	return State{kind: KindError, message: message, errorKind: kind}
}

// Empty is a successful query with no matching records.
func Empty() State {
	return State{kind: KindEmpty}
}

// Populated is a successful query with rows to render. truncated marks that
// the result was cut at rowLimit and more records may exist.
func Populated(rows []table.Row, columns []table.Column, truncated bool, rowLimit int) State {
	return State{
		kind:      KindPopulated,
		rows:      rows,
		columns:   columns,
		truncated: truncated,
		rowLimit:  rowLimit,
	}
}

// Kind returns the active variant.
func (s State) Kind() StateKind { return s.kind }

// HasRequiredConfig reports whether the inputs were complete enough to query.
func (s State) HasRequiredConfig() bool { return s.kind != KindUnconfigured }

// ConfigurationMessage returns the missing-inputs message, or "" when
// configured.
func (s State) ConfigurationMessage() string {
	if s.kind != KindUnconfigured {
		return ""
	}
	return s.message
}

// IsLoading reports whether a query is outstanding.
func (s State) IsLoading() bool { return s.kind == KindLoading }

// HasError reports whether the last attempt failed.
func (s State) HasError() bool { return s.kind == KindError }

// ErrorMessage returns the failure message, or "" outside the error state.
func (s State) ErrorMessage() string {
	if s.kind != KindError {
		return ""
	}
	return s.message
}

// ErrorKind returns the failure kind, or "" outside the error state.
func (s State) ErrorKind() string {
	if s.kind != KindError {
		return ""
	}
	return s.errorKind
}

// IsEmpty reports a successful query with no records.
func (s State) IsEmpty() bool { return s.kind == KindEmpty }

// Rows returns the renderable rows; nil outside the populated state.
func (s State) Rows() []table.Row { return s.rows }

// Columns returns the column schema; nil outside the populated state.
func (s State) Columns() []table.Column { return s.columns }

// Truncated reports whether the row set was cut at the row limit.
func (s State) Truncated() bool { return s.truncated }

var statePrinter = message.NewPrinter(language.English)

// RowCountMessage describes the populated row count for display. A truncated
// result is reported as a lower bound since the boundary gives no true total.
func (s State) RowCountMessage() string {
	if s.kind != KindPopulated {
		return ""
	}
	if s.truncated {
		return statePrinter.Sprintf("showing %d of potentially more records (limited to %d)", len(s.rows), s.rowLimit)
	}
	return statePrinter.Sprintf("%d record(s) found", len(s.rows))
}
