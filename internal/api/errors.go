/*-------------------------------------------------------------------------
 *
 * errors.go
 *    Structured API errors for the HR support HTTP server
 *
 * Copyright (c) 2024-2026, Botivate, Inc. <support@botivate.in>
 *
 * IDENTIFICATION
 *    HR-Support/internal/api/errors.go
 *
 *-------------------------------------------------------------------------
 */

package api

import (
	"fmt"
	"net/http"
)

/* APIError is an error with an HTTP status and request correlation */
type APIError struct {
	Status    int                    `json:"-"`
	Message   string                 `json:"message"`
	RequestID string                 `json:"request_id,omitempty"`
	Details   map[string]interface{} `json:"details,omitempty"`
	cause     error
}

func (e *APIError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.cause)
	}
	return e.Message
}

func (e *APIError) Unwrap() error {
	return e.cause
}

/* NewError creates an API error with a status and optional cause */
func NewError(status int, message string, cause error) *APIError {
	return &APIError{
		Status:  status,
		Message: message,
		cause:   cause,
	}
}

/* NewErrorWithContext creates an API error carrying request correlation
 * and diagnostic details */
func NewErrorWithContext(status int, message string, cause error, requestID string, details map[string]interface{}) *APIError {
	return &APIError{
		Status:    status,
		Message:   message,
		RequestID: requestID,
		Details:   details,
		cause:     cause,
	}
}

/* WrapError attaches a request ID to a sentinel API error */
func WrapError(err *APIError, requestID string) *APIError {
	wrapped := *err
	wrapped.RequestID = requestID
	return &wrapped
}

/* Sentinel errors for common responses */
var (
	ErrNotFound     = NewError(http.StatusNotFound, "resource not found", nil)
	ErrUnauthorized = NewError(http.StatusUnauthorized, "authentication required", nil)
	ErrForbidden    = NewError(http.StatusForbidden, "insufficient role for this operation", nil)
)

/* ErrorResponse is the wire shape of an error reply */
type ErrorResponse struct {
	Error *APIError `json:"error"`
}
