// Copyright (c) 2026 Harborview Hotel Group. All rights reserved.
// Author: dev@harborview.app

package transport

import (
	stdctx "context"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type roundTripperFunc func(*http.Request) (*http.Response, error)

func (fn roundTripperFunc) RoundTrip(request *http.Request) (*http.Response, error) {
	return fn(request)
}

// memoryCredentials is a minimal in-process Credentials for pipeline tests.
type memoryCredentials struct {
	access  string
	refresh string
}

func (credentials *memoryCredentials) AccessToken() string  { return credentials.access }
func (credentials *memoryCredentials) RefreshToken() string { return credentials.refresh }

func (credentials *memoryCredentials) SetTokens(_ stdctx.Context, access string, refresh string) {
	credentials.access, credentials.refresh = access, refresh
}

func (credentials *memoryCredentials) Logout(stdctx.Context) {
	credentials.access, credentials.refresh = "", ""
}

func jsonResponse(statusCode int, body string) *http.Response {
	return &http.Response{
		StatusCode: statusCode,
		Header:     http.Header{"Content-Type": []string{"application/json"}},
		Body:       io.NopCloser(strings.NewReader(body)),
	}
}

/*
TestRoundTrip_LeavesCallerRequestUntouched verifies the transport honors the
http.RoundTripper contract: the bearer header lands on an internal clone,
never on the request the caller handed in — including across a full
refresh-and-retry cycle.
*/
func TestRoundTrip_LeavesCallerRequestUntouched(t *testing.T) {
	credentials := &memoryCredentials{access: "stale", refresh: "ref1"}

	var sentHeaders []string
	base := roundTripperFunc(func(request *http.Request) (*http.Response, error) {
		if strings.HasSuffix(request.URL.Path, refreshEndpoint) {
			return jsonResponse(http.StatusOK,
				`{"accessToken":"fresh","refreshToken":"ref2"}`), nil
		}

		sentHeaders = append(sentHeaders, request.Header.Get("Authorization"))
		if request.Header.Get("Authorization") != "Bearer fresh" {
			return jsonResponse(http.StatusUnauthorized,
				`{"error":"Token expired","code":"UNAUTHORIZED"}`), nil
		}
		return jsonResponse(http.StatusOK, `{}`), nil
	})

	pipeline := &authRoundTripper{
		base:        base,
		credentials: credentials,
		baseURL:     "http://backend",
		logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
	}

	request, err := http.NewRequest(http.MethodGet, "http://backend/rooms", nil)
	require.NoError(t, err)

	response, err := pipeline.RoundTrip(request)
	require.NoError(t, err)
	drainAndClose(response)

	// Both legs carried a bearer token.
	assert.Equal(t, []string{"Bearer stale", "Bearer fresh"}, sentHeaders)

	// Neither leg leaked onto the caller's request.
	assert.Empty(t, request.Header.Get("Authorization"))
}
