package render

import (
	"errors"

	"github.com/datacell/graphtable/pkg/client"
	"github.com/datacell/graphtable/pkg/table"
)

// Outcome is the parsed result of one query attempt: either a transport
// failure (Err set) or a decoded envelope. Exactly one field is set.
type Outcome struct {
	Envelope *client.Envelope
	Err      error
}

// EnvelopeOutcome wraps a decoded result envelope.
func EnvelopeOutcome(env *client.Envelope) Outcome {
	return Outcome{Envelope: env}
}

// FailureOutcome wraps a transport-level failure.
func FailureOutcome(err error) Outcome {
	return Outcome{Err: err}
}

// transportErrorKind is the error kind reported for transport failures.
const transportErrorKind = "Error"

// defaultQueryErrorMessage is used when a failed envelope carries no message.
const defaultQueryErrorMessage = "Unknown error occurred"

// Normalize classifies a query outcome into the next display state, in
// priority order: transport failure, query failure, populated, empty.
//
// Truncation intentionally flags "possibly more" when the returned row count
// exactly equals the cap, because the boundary reports no true total.
func Normalize(outcome Outcome, rowLimit int, columnConfig string, deriver *table.Deriver) State {
	if outcome.Err != nil {
		return Errored(failureMessage(outcome.Err), transportErrorKind)
	}

	env := outcome.Envelope
	if env == nil {
		return Errored("Unknown error", transportErrorKind)
	}

	if !env.Success {
		msg := env.ErrorMessage
		if msg == "" {
			msg = defaultQueryErrorMessage
		}
		kind := env.ErrorType
		if kind == "" {
			kind = transportErrorKind
		}
		return Errored(msg, kind)
	}

	if len(env.Data) > 0 {
		rows := env.Data
		truncated := false
		if rowLimit > 0 {
			truncated = len(rows) >= rowLimit
			if len(rows) > rowLimit {
				rows = rows[:rowLimit]
			}
		}
		columns := deriver.Derive(columnConfig, rows)
		return Populated(rows, columns, truncated, rowLimit)
	}

	return Empty()
}

// failureMessage extracts a human-readable message from a transport failure.
func failureMessage(err error) string {
	var apiErr *client.APIError
	if errors.As(err, &apiErr) {
		return apiErr.DisplayMessage()
	}
	if msg := err.Error(); msg != "" {
		return msg
	}
	return "Unknown error"
}
