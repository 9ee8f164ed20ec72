package tools

import (
	"errors"
	"fmt"
	"log/slog"
	"net"
	"strings"

	"github.com/datacell/graphtable/pkg/client"
)

// Error codes for MCP tool responses.
const (
	ErrCodeInvalidInput = "INVALID_INPUT"
	ErrCodeDataAPIError = "DATA_API_ERROR"
	ErrCodeTimeout      = "TIMEOUT"
)

// CodedError is an error with an associated error code.
type CodedError struct {
	Code    string
	Message string
	Cause   error
}

func (e *CodedError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *CodedError) Unwrap() error {
	return e.Cause
}

// WrapDataAPIError converts a client.APIError or other transport error into
// a coded error for tools that cannot resolve failures into a display state.
func WrapDataAPIError(err error) error {
	if err == nil {
		return nil
	}

	var coded *CodedError

	var apiErr *client.APIError
	var netErr net.Error
	switch {
	case errors.As(err, &apiErr):
		coded = &CodedError{
			Code:    ErrCodeDataAPIError,
			Message: apiErr.DisplayMessage(),
			Cause:   err,
		}
	case errors.As(err, &netErr) && netErr.Timeout(),
		strings.Contains(err.Error(), "context deadline exceeded"):
		coded = &CodedError{
			Code:    ErrCodeTimeout,
			Message: "request timed out",
			Cause:   err,
		}
	default:
		coded = &CodedError{
			Code:    ErrCodeDataAPIError,
			Message: err.Error(),
			Cause:   err,
		}
	}

	slog.Warn("data API error",
		slog.String("code", coded.Code),
		slog.String("message", coded.Message),
	)

	return coded
}

// ErrInvalidInput creates an invalid input error.
func ErrInvalidInput(message string) error {
	return &CodedError{
		Code:    ErrCodeInvalidInput,
		Message: message,
	}
}
