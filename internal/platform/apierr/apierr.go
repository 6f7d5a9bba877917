// Copyright (c) 2026 Harborview Hotel Group. All rights reserved.
// Author: dev@harborview.app

/*
Package apierr defines the error contract shared with the hotel-operations API.

It provides a rich error type that bridges the gap between the backend's JSON
error envelope and the typed errors the rest of the client operates on.

Architecture:

  - Error: A struct containing the HTTP status, a machine-readable Code and a
    user-friendly message, exactly as the backend serializes them.
  - Decoding: FromResponse parses a failed HTTP response into an [*Error],
    rejecting malformed envelopes explicitly instead of coercing them silently.
  - Construction: The same type doubles as the response vocabulary of the
    development stub backend, so client and fixture never drift apart.

Every error produced by the transport layer is an [*Error] so callers can
branch on status codes with [errors.As] rather than string matching.
*/
package apierr

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

// Error is the canonical error type for failed hotel-operations API calls.
//
// # Security
//
// Message is whatever the backend deemed client-safe. The raw response body is
// never retained; oversized or non-JSON bodies are summarized instead.
type Error struct {
	// HTTPStatus is the HTTP response status code.
	HTTPStatus int `json:"-"`
	// Code is a machine-readable error identifier (e.g. "NOT_FOUND", "UNAUTHORIZED").
	Code string `json:"code"`
	// Message is a human-readable description safe to show to the guest.
	Message string `json:"error"`
	// Details holds per-field validation errors for VALIDATION_ERROR responses.
	Details []FieldError `json:"details,omitempty"`
}

// FieldError represents a single field-level validation failure.
type FieldError struct {
	// Field is the JSON field name that failed validation.
	Field string `json:"field"`
	// Message is the human-readable description of the failure.
	Message string `json:"message"`
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("api: %s (%d): %s", e.Code, e.HTTPStatus, e.Message)
	}
	return fmt.Sprintf("api: status %d: %s", e.HTTPStatus, e.Message)
}

// # Decoding (client side)

// maxErrorBody caps how much of a failed response body is read while decoding.
// Error envelopes are tiny; anything larger is not one of ours.
const maxErrorBody = 64 << 10

// FromResponse converts a non-2xx HTTP response into an [*Error].
//
// The backend wraps failures as {"error": "...", "code": "...", "details": [...]}.
// A body that does not parse as that envelope still yields a usable [*Error]
// carrying the status code, so the caller never loses the failure class.
func FromResponse(response *http.Response) *Error {

	apiError := &Error{
		HTTPStatus: response.StatusCode,
		Code:       "UNKNOWN",
		Message:    http.StatusText(response.StatusCode),
	}

	body, err := io.ReadAll(io.LimitReader(response.Body, maxErrorBody))
	if err != nil || len(body) == 0 {
		return apiError
	}

	var envelope Error
	if err := json.Unmarshal(body, &envelope); err != nil || envelope.Message == "" {
		// Not the documented envelope. Keep the status-derived error.
		return apiError
	}

	apiError.Code = envelope.Code
	if apiError.Code == "" {
		apiError.Code = "UNKNOWN"
	}
	apiError.Message = envelope.Message
	apiError.Details = envelope.Details

	return apiError
}

// # Construction (stub backend side)

// NotFound creates a 404 [Error] for a named resource.
func NotFound(resource string) *Error {
	return &Error{
		Code:       "NOT_FOUND",
		Message:    resource + " not found",
		HTTPStatus: http.StatusNotFound,
	}
}

// Unauthorized creates a 401 [Error].
func Unauthorized(msg string) *Error {
	return &Error{
		Code:       "UNAUTHORIZED",
		Message:    msg,
		HTTPStatus: http.StatusUnauthorized,
	}
}

// Forbidden creates a 403 [Error].
func Forbidden(msg string) *Error {
	return &Error{
		Code:       "FORBIDDEN",
		Message:    msg,
		HTTPStatus: http.StatusForbidden,
	}
}

// Conflict creates a 409 [Error] for duplicate or state-transition violations.
func Conflict(msg string) *Error {
	return &Error{
		Code:       "CONFLICT",
		Message:    msg,
		HTTPStatus: http.StatusConflict,
	}
}

// ValidationError creates a 400 [Error] with optional per-field details.
func ValidationError(msg string, details ...FieldError) *Error {
	return &Error{
		Code:       "VALIDATION_ERROR",
		Message:    msg,
		HTTPStatus: http.StatusBadRequest,
		Details:    details,
	}
}

// Internal creates a 500 [Error].
func Internal(msg string) *Error {
	return &Error{
		Code:       "INTERNAL_ERROR",
		Message:    msg,
		HTTPStatus: http.StatusInternalServerError,
	}
}

// # Helpers

// As extracts the [*Error] from err's chain. It returns nil if not found.
func As(err error) *Error {
	var apiError *Error
	if errors.As(err, &apiError) {
		return apiError
	}
	return nil
}

// StatusOf returns the HTTP status carried by err, or 0 when err is not an API error.
func StatusOf(err error) int {
	if apiError := As(err); apiError != nil {
		return apiError.HTTPStatus
	}
	return 0
}

// IsUnauthorized reports whether err is an authorization failure (HTTP 401).
//
// This is the single error class the transport pipeline is allowed to
// intercept; everything else must flow to the caller unmodified.
func IsUnauthorized(err error) bool {
	return StatusOf(err) == http.StatusUnauthorized
}

// IsNotFound reports whether err is an HTTP 404 API error.
func IsNotFound(err error) bool {
	return StatusOf(err) == http.StatusNotFound
}
