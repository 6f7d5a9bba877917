// Copyright (c) 2026 Harborview Hotel Group. All rights reserved.
// Author: dev@harborview.app

package transport_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harborview/concierge/internal/platform/apierr"
	"github.com/harborview/concierge/internal/platform/storage"
	"github.com/harborview/concierge/internal/platform/transport"
	"github.com/harborview/concierge/internal/users/session"
)

// testBackend is a scriptable stand-in for the hotel-operations API.
type testBackend struct {
	refreshCalls   atomic.Int64
	protectedCalls atomic.Int64
	refreshStatus  int

	// acceptToken is the only bearer token /protected answers 200 to.
	acceptToken string

	lastAuthHeader atomic.Value
	lastBody       atomic.Value
}

func (backend *testBackend) handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/auth/refresh-token", func(writer http.ResponseWriter, request *http.Request) {
		if request.Method != http.MethodPost {
			writer.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		backend.refreshCalls.Add(1)

		var payload struct {
			RefreshToken string `json:"refreshToken"`
		}
		_ = json.NewDecoder(request.Body).Decode(&payload)

		if backend.refreshStatus != 0 {
			writer.WriteHeader(backend.refreshStatus)
			return
		}
		if payload.RefreshToken == "" {
			writer.WriteHeader(http.StatusUnauthorized)
			return
		}

		writer.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(writer).Encode(map[string]string{
			"accessToken":  "fresh-access",
			"refreshToken": "fresh-refresh",
		})
	})

	mux.HandleFunc("/protected", func(writer http.ResponseWriter, request *http.Request) {
		backend.protectedCalls.Add(1)
		backend.lastAuthHeader.Store(request.Header.Get("Authorization"))

		if request.Body != nil {
			var body map[string]any
			if err := json.NewDecoder(request.Body).Decode(&body); err == nil {
				backend.lastBody.Store(body)
			}
		}

		if request.Header.Get("Authorization") != "Bearer "+backend.acceptToken {
			writer.Header().Set("Content-Type", "application/json")
			writer.WriteHeader(http.StatusUnauthorized)
			_ = json.NewEncoder(writer).Encode(map[string]string{
				"error": "Token expired", "code": "UNAUTHORIZED",
			})
			return
		}

		writer.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(writer).Encode(map[string]string{"status": "ok"})
	})

	return mux
}

type fixture struct {
	backend *testBackend
	server  *httptest.Server
	manager *session.Manager
	client  *transport.Client
	expired atomic.Int64
}

func newFixture(t *testing.T, backend *testBackend) *fixture {
	t.Helper()

	server := httptest.NewServer(backend.handler())
	t.Cleanup(server.Close)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	manager := session.NewManager(storage.NewMemoryStore(), logger)

	fix := &fixture{backend: backend, server: server, manager: manager}
	fix.client = transport.NewClient(server.URL, manager, logger, transport.Options{
		OnSessionExpired: func() { fix.expired.Add(1) },
	})

	return fix
}

/*
TestPipeline_AttachesBearerToken verifies the request leg: the current access
token travels as an Authorization header, and its absence means the request
simply proceeds unauthenticated.
*/
func TestPipeline_AttachesBearerToken(t *testing.T) {
	ctx := context.Background()
	fix := newFixture(t, &testBackend{acceptToken: "tok1"})

	// 1. Logged out: no header, server rejects, no refresh attempted
	err := fix.client.Get(ctx, "/protected", nil, nil)
	require.Error(t, err)
	assert.Equal(t, "", fix.backend.lastAuthHeader.Load())
	assert.EqualValues(t, 0, fix.backend.refreshCalls.Load())

	// 2. Logged in: bearer attached, request succeeds
	fix.manager.Login(ctx, "tok1", "ref1", &session.User{ID: "u1"})

	var result struct {
		Status string `json:"status"`
	}
	require.NoError(t, fix.client.Get(ctx, "/protected", nil, &result))
	assert.Equal(t, "ok", result.Status)
	assert.Equal(t, "Bearer tok1", fix.backend.lastAuthHeader.Load())
}

/*
TestPipeline_RefreshAndRetryOnce verifies the INITIAL → RETRIED transition:
an expired access token with a valid refresh token triggers exactly one
refresh call and exactly one retry carrying the new token, invisibly to the
caller.
*/
func TestPipeline_RefreshAndRetryOnce(t *testing.T) {
	ctx := context.Background()
	fix := newFixture(t, &testBackend{acceptToken: "fresh-access"})

	// The stored access token is stale; only "fresh-access" is accepted.
	fix.manager.Login(ctx, "stale-access", "ref1", &session.User{ID: "u1"})

	var result struct {
		Status string `json:"status"`
	}
	require.NoError(t, fix.client.Get(ctx, "/protected", nil, &result))

	assert.Equal(t, "ok", result.Status)
	assert.EqualValues(t, 1, fix.backend.refreshCalls.Load())
	assert.EqualValues(t, 2, fix.backend.protectedCalls.Load())
	assert.Equal(t, "Bearer fresh-access", fix.backend.lastAuthHeader.Load())

	// The rotated pair is persisted and the session survives.
	assert.Equal(t, "fresh-access", fix.manager.AccessToken())
	assert.Equal(t, "fresh-refresh", fix.manager.RefreshToken())
	assert.True(t, fix.manager.IsAuthenticated())
	assert.EqualValues(t, 0, fix.expired.Load())
}

/*
TestPipeline_SecondUnauthorizedIsTerminal verifies that a 401 on the retried
request does NOT trigger a second refresh: the cycle is spent, the session is
torn down, and the caller sees the authorization error.
*/
func TestPipeline_SecondUnauthorizedIsTerminal(t *testing.T) {
	ctx := context.Background()

	// The backend accepts a token the refresh endpoint never hands out, so
	// the retried request 401s again.
	fix := newFixture(t, &testBackend{acceptToken: "never-issued"})
	fix.manager.Login(ctx, "stale-access", "ref1", &session.User{ID: "u1"})

	err := fix.client.Get(ctx, "/protected", nil, nil)
	require.Error(t, err)
	assert.True(t, apierr.IsUnauthorized(err))

	assert.EqualValues(t, 1, fix.backend.refreshCalls.Load(), "exactly one refresh, never two")
	assert.EqualValues(t, 2, fix.backend.protectedCalls.Load(), "exactly one retry, never two")
	assert.False(t, fix.manager.IsAuthenticated(), "fail closed")
	assert.EqualValues(t, 1, fix.expired.Load())
}

/*
TestPipeline_NoRefreshTokenFailsClosed verifies the terminal INITIAL
transition: a 401 with no refresh token clears the session without attempting
any refresh call.
*/
func TestPipeline_NoRefreshTokenFailsClosed(t *testing.T) {
	ctx := context.Background()
	fix := newFixture(t, &testBackend{acceptToken: "other"})

	// Access token present, refresh token absent.
	fix.manager.Login(ctx, "stale-access", "", &session.User{ID: "u1"})

	err := fix.client.Get(ctx, "/protected", nil, nil)
	require.Error(t, err)
	assert.True(t, apierr.IsUnauthorized(err))

	assert.EqualValues(t, 0, fix.backend.refreshCalls.Load(), "no refresh call may be attempted")
	assert.False(t, fix.manager.IsAuthenticated())
	assert.EqualValues(t, 1, fix.expired.Load())
}

/*
TestPipeline_RefreshFailureTearsDown verifies that a rejected refresh call
clears the session and still propagates the ORIGINAL authorization error to
the caller.
*/
func TestPipeline_RefreshFailureTearsDown(t *testing.T) {
	ctx := context.Background()
	fix := newFixture(t, &testBackend{acceptToken: "other", refreshStatus: http.StatusUnauthorized})

	fix.manager.Login(ctx, "stale-access", "ref1", &session.User{ID: "u1"})

	err := fix.client.Get(ctx, "/protected", nil, nil)
	require.Error(t, err)
	assert.True(t, apierr.IsUnauthorized(err), "caller sees the original 401, not the refresh error")

	assert.EqualValues(t, 1, fix.backend.refreshCalls.Load())
	assert.EqualValues(t, 1, fix.backend.protectedCalls.Load(), "no retry after failed refresh")
	assert.False(t, fix.manager.IsAuthenticated())
	assert.Empty(t, fix.manager.RefreshToken())
	assert.EqualValues(t, 1, fix.expired.Load())
}

/*
TestPipeline_ReplaysBodyOnRetry verifies that a JSON POST body survives the
refresh-and-retry cycle intact.
*/
func TestPipeline_ReplaysBodyOnRetry(t *testing.T) {
	ctx := context.Background()
	fix := newFixture(t, &testBackend{acceptToken: "fresh-access"})
	fix.manager.Login(ctx, "stale-access", "ref1", &session.User{ID: "u1"})

	payload := map[string]any{"itemId": "A", "quantity": float64(3)}
	require.NoError(t, fix.client.Post(ctx, "/protected", payload, nil))

	assert.EqualValues(t, 2, fix.backend.protectedCalls.Load())
	assert.Equal(t, payload, fix.backend.lastBody.Load(), "retried request carries the same body")
}

/*
TestPipeline_NonAuthErrorsPassThrough verifies that business-level failures
are not intercepted: a 400 reaches the caller as a typed API error and the
session stays intact.
*/
func TestPipeline_NonAuthErrorsPassThrough(t *testing.T) {
	ctx := context.Background()

	mux := http.NewServeMux()
	mux.HandleFunc("/bookings", func(writer http.ResponseWriter, _ *http.Request) {
		writer.Header().Set("Content-Type", "application/json")
		writer.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(writer).Encode(map[string]any{
			"error": "Check-out must be after check-in", "code": "VALIDATION_ERROR",
		})
	})
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	manager := session.NewManager(storage.NewMemoryStore(), logger)
	manager.Login(ctx, "tok1", "ref1", &session.User{ID: "u1"})

	var expired atomic.Int64
	client := transport.NewClient(server.URL, manager, logger, transport.Options{
		OnSessionExpired: func() { expired.Add(1) },
	})

	err := client.Post(ctx, "/bookings", map[string]string{}, nil)
	require.Error(t, err)

	apiError := apierr.As(err)
	require.NotNil(t, apiError)
	assert.Equal(t, http.StatusBadRequest, apiError.HTTPStatus)
	assert.Equal(t, "VALIDATION_ERROR", apiError.Code)
	assert.Equal(t, "Check-out must be after check-in", apiError.Message)

	assert.True(t, manager.IsAuthenticated(), "session untouched by business errors")
	assert.EqualValues(t, 0, expired.Load())
}
