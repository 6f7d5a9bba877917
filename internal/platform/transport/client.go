// Copyright (c) 2026 Harborview Hotel Group. All rights reserved.
// Author: dev@harborview.app

package transport

import (
	"bytes"
	stdctx "context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/harborview/concierge/internal/platform/apierr"
)

// # Client

// Client is the single outbound gateway to the hotel-operations API.
//
// All resource services (rooms, dining, cars, checkout, admin) hold one
// shared instance; every call they make passes through the authenticated
// pipeline and the client-side rate limiter.
type Client struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
	logger     *slog.Logger
}

// Options tunes a [Client]. Zero values fall back to sensible defaults.
type Options struct {

	// Timeout bounds each outbound request including its refresh-and-retry
	// cycle. Defaults to 15s.
	Timeout time.Duration

	// RequestsPerSecond throttles outbound calls. Defaults to 10.
	RequestsPerSecond float64

	// OnSessionExpired fires after an unrecoverable auth failure has torn
	// the session down (the hard-navigation analogue). Optional.
	OnSessionExpired func()

	// Base replaces the underlying round tripper. Tests only.
	Base http.RoundTripper
}

const (
	defaultTimeout           = 15 * time.Second
	defaultRequestsPerSecond = 10
	defaultRateLimiterBurst  = 5
	headerRequestID          = "X-Request-ID"
	headerContentType        = "Content-Type"
	mimeJSON                 = "application/json"
	maxSuccessBodyBytes      = 8 << 20
)

// NewClient constructs a [Client] speaking to the API at baseURL, using
// credentials for the bearer/refresh pipeline.
func NewClient(baseURL string, credentials Credentials, logger *slog.Logger, options Options) *Client {

	base := options.Base
	if base == nil {
		base = http.DefaultTransport
	}

	timeout := options.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	perSecond := options.RequestsPerSecond
	if perSecond <= 0 {
		perSecond = defaultRequestsPerSecond
	}

	trimmed := strings.TrimRight(baseURL, "/")
	pipelineLogger := logger.With(slog.String("component", "transport"))

	pipeline := &authRoundTripper{
		base:             base,
		credentials:      credentials,
		baseURL:          trimmed,
		logger:           pipelineLogger,
		onSessionExpired: options.OnSessionExpired,
	}

	return &Client{
		baseURL: trimmed,
		httpClient: &http.Client{
			Transport: pipeline,
			Timeout:   timeout,
		},
		limiter: rate.NewLimiter(rate.Limit(perSecond), defaultRateLimiterBurst),
		logger:  pipelineLogger,
	}
}

// # JSON Verbs

/*
Get issues a GET request and decodes the JSON response into target.

Parameters:
  - context: context.Context
  - path: API path relative to the base URL (e.g. "/rooms")
  - query: Optional URL query values (nil allowed)
  - target: Pointer to the response structure (nil to discard the body)

Returns:
  - error: [*apierr.Error] for API failures, transport/decode errors otherwise
*/
func (client *Client) Get(context stdctx.Context, path string, query url.Values, target any) error {
	return client.do(context, http.MethodGet, path, query, nil, target)
}

// Post issues a POST request with a JSON body and decodes the response into target.
func (client *Client) Post(context stdctx.Context, path string, body any, target any) error {
	return client.do(context, http.MethodPost, path, nil, body, target)
}

// Put issues a PUT request with a JSON body and decodes the response into target.
func (client *Client) Put(context stdctx.Context, path string, body any, target any) error {
	return client.do(context, http.MethodPut, path, nil, body, target)
}

// Delete issues a DELETE request and decodes the response into target.
func (client *Client) Delete(context stdctx.Context, path string, target any) error {
	return client.do(context, http.MethodDelete, path, nil, nil, target)
}

// # Request Execution

/*
do builds, throttles, executes, and decodes one API call.

Schema discipline: a 2xx response whose body does not decode into target is an
explicit error — payloads are never silently coerced into zero values. Error
responses are decoded into [*apierr.Error] and returned as such.
*/
func (client *Client) do(context stdctx.Context, method, path string, query url.Values, body, target any) error {

	// Client-side throttle. Respects context cancellation while waiting.
	if err := client.limiter.Wait(context); err != nil {
		return fmt.Errorf("transport_rate_limit_wait_failed: %w", err)
	}

	endpoint := client.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var payload io.Reader
	var encoded []byte
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("transport_encode_failed: %w", err)
		}
		encoded = raw
		payload = bytes.NewReader(raw)
	}

	request, err := http.NewRequestWithContext(context, method, endpoint, payload)
	if err != nil {
		return fmt.Errorf("transport_build_request_failed: %w", err)
	}

	if encoded != nil {
		request.Header.Set(headerContentType, mimeJSON)
		// GetBody lets the pipeline replay the body on its one retry.
		request.GetBody = func() (io.ReadCloser, error) {
			return io.NopCloser(bytes.NewReader(encoded)), nil
		}
	}
	request.Header.Set("Accept", mimeJSON)
	request.Header.Set(headerRequestID, uuid.NewString())

	response, err := client.httpClient.Do(request)
	if err != nil {
		return fmt.Errorf("transport_request_failed (%s %s): %w", method, path, err)
	}
	defer func() { _ = response.Body.Close() }()

	if response.StatusCode >= 400 {
		return apierr.FromResponse(response)
	}

	if target == nil || response.StatusCode == http.StatusNoContent {
		drainAndClose(response)
		return nil
	}

	decoder := json.NewDecoder(io.LimitReader(response.Body, maxSuccessBodyBytes))
	if err := decoder.Decode(target); err != nil {
		return fmt.Errorf("transport_decode_failed (%s %s): %w", method, path, err)
	}

	return nil
}
