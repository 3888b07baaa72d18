package api

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
)

// Kind classifies an API failure the way it is surfaced to the user.
type Kind string

const (
	KindValidation   Kind = "validation"
	KindNetwork      Kind = "network"
	KindTimeout      Kind = "timeout"
	KindCanceled     Kind = "canceled"
	KindUnauthorized Kind = "unauthorized"
	KindForbidden    Kind = "forbidden"
	KindNotFound     Kind = "not_found"
	KindHTTP         Kind = "http"
	KindAPI          Kind = "api"
	KindContract     Kind = "contract"
)

// FieldError is one structured validation error returned by the backend.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error is returned by every Client operation that fails.
type Error struct {
	Op         string
	Kind       Kind
	StatusCode int
	Message    string
	Fields     []FieldError
	Cause      error
}

func (e *Error) Error() string {
	var sb strings.Builder
	sb.WriteString(e.Op)
	sb.WriteString(": ")
	sb.WriteString(string(e.Kind))
	if e.StatusCode != 0 {
		sb.WriteString(fmt.Sprintf(" (HTTP %d)", e.StatusCode))
	}
	if e.Message != "" {
		sb.WriteString(": ")
		sb.WriteString(e.Message)
	}
	if e.Cause != nil {
		sb.WriteString(": ")
		sb.WriteString(e.Cause.Error())
	}
	return sb.String()
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// IsKind reports whether err is an *Error of the given kind.
func IsKind(err error, kind Kind) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.Kind == kind
}

// StatusCode returns the HTTP status carried by err, or 0.
func StatusCode(err error) int {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	return 0
}

// UserMessage converts an error into the text shown to the user.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}

	var apiErr *Error
	if !errors.As(err, &apiErr) {
		return err.Error()
	}

	switch apiErr.Kind {
	case KindValidation:
		if len(apiErr.Fields) == 0 {
			if apiErr.Message != "" {
				return "Validation failed: " + apiErr.Message
			}
			return "Validation failed."
		}
		var sb strings.Builder
		sb.WriteString("Validation failed:")
		for _, f := range apiErr.Fields {
			sb.WriteString("\n  • ")
			if f.Field != "" {
				sb.WriteString(f.Field)
				sb.WriteString(": ")
			}
			sb.WriteString(f.Message)
		}
		return sb.String()
	case KindTimeout:
		return "The request timed out. Please check your connection and try again."
	case KindNetwork:
		return "Network error. Please check your connection and try again."
	case KindCanceled:
		return "The request was canceled."
	case KindUnauthorized:
		return "Authentication failed. Please log in again."
	case KindForbidden:
		return "You do not have permission to perform this action."
	case KindNotFound:
		return "The requested resource was not found."
	case KindHTTP:
		return fmt.Sprintf("Request failed with status %d.", apiErr.StatusCode)
	case KindContract:
		return "The server returned an unexpected response."
	default:
		if apiErr.Message != "" {
			return apiErr.Message
		}
		return "Something went wrong. Please try again."
	}
}

// transportError classifies a failure of http.Client.Do.
func transportError(op string, err error) *Error {
	switch {
	case errors.Is(err, context.Canceled):
		return &Error{Op: op, Kind: KindCanceled, Cause: err}
	case errors.Is(err, context.DeadlineExceeded):
		return &Error{Op: op, Kind: KindTimeout, Cause: err}
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return &Error{Op: op, Kind: KindTimeout, Cause: err}
	}
	return &Error{Op: op, Kind: KindNetwork, Cause: err}
}

// statusError classifies a non-2xx response, using the envelope when the body has one.
func statusError(op string, status int, env envelope) *Error {
	e := &Error{Op: op, StatusCode: status, Message: env.message(), Fields: env.Errors}

	switch {
	case status == http.StatusUnauthorized:
		e.Kind = KindUnauthorized
	case status == http.StatusForbidden:
		e.Kind = KindForbidden
	case status == http.StatusNotFound:
		e.Kind = KindNotFound
	case len(env.Errors) > 0:
		e.Kind = KindValidation
	case (status == http.StatusBadRequest || status == http.StatusUnprocessableEntity) && e.Message != "":
		e.Kind = KindAPI
	default:
		e.Kind = KindHTTP
	}
	return e
}
