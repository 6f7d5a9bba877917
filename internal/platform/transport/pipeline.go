// Copyright (c) 2026 Harborview Hotel Group. All rights reserved.
// Author: dev@harborview.app

/*
Package transport implements the authenticated HTTP pipeline for every call
the client makes to the hotel-operations backend.

It has exactly two jobs, and they are deliberately the only two:

  - Attach the current access token as a Bearer header on the way out.
  - Recover from a single class of failure — an authorization error with a
    usable refresh token — by refreshing once and retrying once.

Every other error, business-level or otherwise, flows to the caller unmodified.

# The one-shot retry state machine

Each original request owns a tiny state machine (INITIAL → RETRIED) rather
than a mutable flag smuggled on the request object. The retried request can
never re-enter the refresh transition, which is what rules out infinite
refresh loops when the backend keeps answering 401.

Refresh failure is always fail-closed: the session is torn down entirely and
the configured expiry hook fires (the hard-navigation analogue), so no caller
keeps operating on a stale token.
*/
package transport

import (
	"bytes"
	stdctx "context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync"
)

// # Credentials Contract

// Credentials is the narrow view of the session manager the pipeline needs.
// Defined here (consumer side) so transport has no dependency on the session
// package.
type Credentials interface {

	// AccessToken returns the current bearer token, or "" when logged out.
	AccessToken() string

	// RefreshToken returns the current refresh token, or "" when absent.
	RefreshToken() string

	// SetTokens atomically replaces the token pair after a successful refresh.
	SetTokens(context stdctx.Context, accessToken, refreshToken string)

	// Logout clears the whole session, memory and durable mirror both.
	Logout(context stdctx.Context)
}

// # Retry State Machine

// retryState tracks where a single original request is in its
// refresh-and-retry lifecycle.
type retryState int

const (
	// stateInitial: the request has not consumed its one refresh cycle.
	stateInitial retryState = iota

	// stateRetried: the refresh cycle is spent; a further 401 is terminal.
	stateRetried
)

// refreshEndpoint is the backend path that mints a new token pair.
const refreshEndpoint = "/auth/refresh-token"

// refreshRequest is the wire payload for the refresh endpoint.
type refreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

// refreshResponse is the wire payload returned by the refresh endpoint.
type refreshResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// # Round Tripper

// authRoundTripper decorates a base [http.RoundTripper] with the bearer
// attach + one-shot refresh-and-retry behavior.
type authRoundTripper struct {
	base        http.RoundTripper
	credentials Credentials
	baseURL     string
	logger      *slog.Logger

	// onSessionExpired fires after an unrecoverable auth failure has torn the
	// session down. Optional.
	onSessionExpired func()

	// refreshMutex serializes the refresh call itself so concurrent 401s
	// produce one refresh, not a thundering herd of them.
	refreshMutex sync.Mutex
}

/*
RoundTrip executes the request through the pipeline.

Transitions (per original request):
  - INITIAL → RETRIED: response is 401 AND a refresh token is present.
    Refresh once, rewrite the Authorization header, resubmit once.
  - INITIAL → terminal failure: 401 with no refresh token, or the refresh
    call itself fails. Tear down the session, fire the expiry hook, and
    return the original 401 so the caller still sees its error.
  - RETRIED → terminal failure: the retried request 401s again. Tear down;
    never refresh a second time.
  - Any non-401 response: pass through unchanged.
*/
func (transport *authRoundTripper) RoundTrip(request *http.Request) (*http.Response, error) {
	return transport.submit(request, stateInitial)
}

// submit runs one leg of the state machine.
func (transport *authRoundTripper) submit(request *http.Request, state retryState) (*http.Response, error) {

	// Request leg: attach the bearer token when one exists. No token means
	// the request proceeds unauthenticated and the server decides. The
	// header goes on a shallow clone; a RoundTripper must not mutate the
	// caller's request.
	outbound := request
	if token := transport.credentials.AccessToken(); token != "" {
		outbound = request.Clone(request.Context())
		outbound.Header.Set("Authorization", "Bearer "+token)
	}

	response, err := transport.base.RoundTrip(outbound)
	if err != nil {
		return nil, err
	}

	// Non-authorization outcomes are none of our business.
	if response.StatusCode != http.StatusUnauthorized {
		return response, nil
	}

	if state == stateRetried {
		// The one refresh cycle is spent. Terminal failure, fail closed.
		transport.teardown(request.Context())
		return response, nil
	}

	refreshToken := transport.credentials.RefreshToken()
	if refreshToken == "" {
		// No recovery possible. Fail closed.
		transport.teardown(request.Context())
		return response, nil
	}

	if refreshErr := transport.refresh(request.Context(), refreshToken); refreshErr != nil {
		transport.logger.Warn("token_refresh_failed", slog.Any("error", refreshErr))
		transport.teardown(request.Context())
		// Propagate the ORIGINAL authorization failure, not the refresh error.
		return response, nil
	}

	// The original response is superseded; release its connection.
	drainAndClose(response)

	retry, cloneErr := cloneRequest(request)
	if cloneErr != nil {
		return nil, cloneErr
	}

	transport.logger.Debug("request_retried_after_refresh",
		slog.String("method", retry.Method),
		slog.String("path", retry.URL.Path),
	)

	// The retried leg re-reads the (now rotated) token and can only reach
	// the terminal transitions above.
	return transport.submit(retry, stateRetried)
}

/*
refresh exchanges the refresh token for a fresh pair and persists it.

The call goes through a bare HTTP client, NOT through this pipeline —
a 401 from the refresh endpoint must never trigger another refresh.
*/
func (transport *authRoundTripper) refresh(context stdctx.Context, refreshToken string) error {
	transport.refreshMutex.Lock()
	defer transport.refreshMutex.Unlock()

	// Another request may have completed a refresh while this one waited on
	// the mutex. If the stored pair already rotated, reuse it instead of
	// spending a second refresh call.
	if current := transport.credentials.RefreshToken(); current != refreshToken && current != "" {
		if transport.credentials.AccessToken() != "" {
			return nil
		}
	}

	payload, err := json.Marshal(refreshRequest{RefreshToken: refreshToken})
	if err != nil {
		return fmt.Errorf("transport_refresh_encode_failed: %w", err)
	}

	request, err := http.NewRequestWithContext(context, http.MethodPost,
		transport.baseURL+refreshEndpoint, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("transport_refresh_request_failed: %w", err)
	}
	request.Header.Set("Content-Type", "application/json")

	response, err := transport.base.RoundTrip(request)
	if err != nil {
		return fmt.Errorf("transport_refresh_call_failed: %w", err)
	}
	defer drainAndClose(response)

	if response.StatusCode != http.StatusOK {
		return fmt.Errorf("transport_refresh_rejected: status %d", response.StatusCode)
	}

	var tokens refreshResponse
	if err := json.NewDecoder(response.Body).Decode(&tokens); err != nil {
		return fmt.Errorf("transport_refresh_decode_failed: %w", err)
	}
	if tokens.AccessToken == "" {
		return errors.New("transport_refresh_empty_token")
	}

	transport.credentials.SetTokens(context, tokens.AccessToken, tokens.RefreshToken)

	return nil
}

// teardown clears the session and fires the expiry hook. Fail-closed: after
// this, no authenticated state survives anywhere in the process.
func (transport *authRoundTripper) teardown(context stdctx.Context) {
	transport.credentials.Logout(context)

	if transport.onSessionExpired != nil {
		transport.onSessionExpired()
	}
}

// cloneRequest produces a resubmittable copy of request, replaying the body
// via GetBody (set by the client for all JSON payloads).
func cloneRequest(request *http.Request) (*http.Request, error) {

	retry := request.Clone(request.Context())

	if request.GetBody != nil {
		body, err := request.GetBody()
		if err != nil {
			return nil, fmt.Errorf("transport_retry_body_failed: %w", err)
		}
		retry.Body = body
	}

	return retry, nil
}

// drainAndClose consumes the remainder of a response body so the underlying
// connection returns to the keep-alive pool.
func drainAndClose(response *http.Response) {
	if response == nil || response.Body == nil {
		return
	}
	_, _ = io.Copy(io.Discard, io.LimitReader(response.Body, 4<<10))
	_ = response.Body.Close()
}
