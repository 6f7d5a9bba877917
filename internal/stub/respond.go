// Copyright (c) 2026 Harborview Hotel Group. All rights reserved.
// Author: dev@harborview.app

package stub

import (
	"encoding/json"
	"net/http"

	"github.com/harborview/concierge/internal/platform/apierr"
)

// writeJSON writes any payload with the given status code.
func writeJSON(writer http.ResponseWriter, statusCode int, payload any) {
	writer.Header().Set("Content-Type", "application/json; charset=utf-8")
	writer.WriteHeader(statusCode)
	_ = json.NewEncoder(writer).Encode(payload)
}

// writeError writes the standard error envelope for a typed API error.
func writeError(writer http.ResponseWriter, apiError *apierr.Error) {
	writeJSON(writer, apiError.HTTPStatus, apiError)
}

func writeUnauthorized(writer http.ResponseWriter, message string) {
	writeError(writer, apierr.Unauthorized(message))
}

func writeForbidden(writer http.ResponseWriter, message string) {
	writeError(writer, apierr.Forbidden(message))
}

func writeNotFound(writer http.ResponseWriter, message string) {
	writeError(writer, apierr.NotFound(message))
}

func writeBadRequest(writer http.ResponseWriter, message string) {
	writeError(writer, apierr.ValidationError(message))
}

func writeConflict(writer http.ResponseWriter, message string) {
	writeError(writer, apierr.Conflict(message))
}

// decodeJSON decodes the request body, reporting a validation error on failure.
func decodeJSON(writer http.ResponseWriter, request *http.Request, target any) bool {
	if err := json.NewDecoder(request.Body).Decode(target); err != nil {
		writeBadRequest(writer, "Invalid JSON body")
		return false
	}
	return true
}
