package client

import (
	"encoding/json"
	"fmt"

	"github.com/datacell/graphtable/pkg/table"
)

// GraphQueryRequest describes one graph query: the named graph to traverse,
// the root entity type, the subject record that anchors the traversal, and
// the fields to select.
type GraphQueryRequest struct {
	GraphName  string   `json:"graphName"`
	RootEntity string   `json:"rootEntity"`
	SubjectID  string   `json:"subjectId"`
	Fields     []string `json:"fields"`
	Limit      int      `json:"limit,omitempty"`
}

// Envelope is the success/failure wrapper returned by the query endpoint.
// It is distinct from a transport-level failure: the endpoint answered, and
// Success says whether the query itself worked.
type Envelope struct {
	Success      bool        `json:"success"`
	Data         []table.Row `json:"data,omitempty"`
	RowCount     int         `json:"rowCount,omitempty"`
	ErrorMessage string      `json:"errorMessage,omitempty"`
	ErrorType    string      `json:"errorType,omitempty"`
}

// APIError represents a transport-level failure: the query boundary itself
// faulted (HTTP error status, auth failure, malformed response). The raw
// response body is retained so callers can extract a structured message.
type APIError struct {
	StatusCode int
	Message    string
	Body       []byte
}

func (e *APIError) Error() string {
	return fmt.Sprintf("data API error %d: %s", e.StatusCode, e.Message)
}

// DisplayMessage resolves a human-readable message for the failure, checking
// in order: a structured body message, the first entry of a structured
// pageErrors list, then the error's own top-level message. Falls back to
// "Unknown error" when none is present.
func (e *APIError) DisplayMessage() string {
	if len(e.Body) > 0 {
		var body struct {
			Message    string `json:"message"`
			PageErrors []struct {
				Message string `json:"message"`
			} `json:"pageErrors"`
		}
		if err := json.Unmarshal(e.Body, &body); err == nil {
			if body.Message != "" {
				return body.Message
			}
			if len(body.PageErrors) > 0 && body.PageErrors[0].Message != "" {
				return body.PageErrors[0].Message
			}
		}
	}
	if e.Message != "" {
		return e.Message
	}
	return "Unknown error"
}
