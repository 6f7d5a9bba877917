// Copyright (c) 2026 Harborview Hotel Group. All rights reserved.
// Author: dev@harborview.app

package apierr_test

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harborview/concierge/internal/platform/apierr"
)

// fakeResponse builds an *http.Response with the given status and body.
func fakeResponse(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(strings.NewReader(body)),
		Header:     http.Header{"Content-Type": []string{"application/json"}},
	}
}

/*
TestFromResponse_DecodesEnvelope verifies that a well-formed backend error
envelope is decoded into a typed error.
*/
func TestFromResponse_DecodesEnvelope(t *testing.T) {
	response := fakeResponse(http.StatusNotFound,
		`{"error":"Room not found","code":"NOT_FOUND"}`)

	apiError := apierr.FromResponse(response)

	require.NotNil(t, apiError)
	assert.Equal(t, http.StatusNotFound, apiError.HTTPStatus)
	assert.Equal(t, "NOT_FOUND", apiError.Code)
	assert.Equal(t, "Room not found", apiError.Message)
}

/*
TestFromResponse_NonEnvelopeBody verifies that a body that is not the standard
envelope still yields a usable error carrying the status code.
*/
func TestFromResponse_NonEnvelopeBody(t *testing.T) {
	response := fakeResponse(http.StatusBadGateway, `<html>upstream died</html>`)

	apiError := apierr.FromResponse(response)

	require.NotNil(t, apiError)
	assert.Equal(t, http.StatusBadGateway, apiError.HTTPStatus)
	assert.NotEmpty(t, apiError.Message)
}

/*
TestFromResponse_ValidationDetails verifies field-level details survive decoding.
*/
func TestFromResponse_ValidationDetails(t *testing.T) {
	response := fakeResponse(http.StatusBadRequest,
		`{"error":"Validation failed","code":"VALIDATION_ERROR","details":[{"field":"checkInDate","message":"required"}]}`)

	apiError := apierr.FromResponse(response)

	require.NotNil(t, apiError)
	require.Len(t, apiError.Details, 1)
	assert.Equal(t, "checkInDate", apiError.Details[0].Field)
}

/*
TestHelpers_ClassifyWrappedErrors verifies the errors.As based helpers see
through wrapping.
*/
func TestHelpers_ClassifyWrappedErrors(t *testing.T) {
	wrapped := fmt.Errorf("rooms_get_failed: %w", apierr.Unauthorized("expired"))

	assert.True(t, apierr.IsUnauthorized(wrapped))
	assert.False(t, apierr.IsNotFound(wrapped))
	assert.Equal(t, http.StatusUnauthorized, apierr.StatusOf(wrapped))

	typed := apierr.As(wrapped)
	require.NotNil(t, typed)
	assert.Equal(t, "UNAUTHORIZED", typed.Code)
}

/*
TestHelpers_NonAPIError verifies plain errors are not misclassified.
*/
func TestHelpers_NonAPIError(t *testing.T) {
	plain := errors.New("connection refused")

	assert.Nil(t, apierr.As(plain))
	assert.False(t, apierr.IsUnauthorized(plain))
	assert.Equal(t, 0, apierr.StatusOf(plain))
}
