// Copyright (c) 2026 Harborview Hotel Group. All rights reserved.
// Author: dev@harborview.app

/*
Package auth implements the sign-in flows against the hotel-operations API.

Sign-in is Google-only: the client obtains a Google ID token (see the
googleauth package), exchanges it at POST /auth/google-signin for the
backend's own token pair plus the user profile, and hands all three to the
session manager in one atomic login.

Manual token refresh also lives here for completeness; the transport pipeline
performs the same exchange automatically on 401.
*/
package auth

import (
	stdctx "context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/harborview/concierge/internal/platform/transport"
	"github.com/harborview/concierge/internal/users/session"
)

// # Service

// Service wires the auth endpoints to the session manager.
type Service struct {
	client  *transport.Client
	session *session.Manager
	logger  *slog.Logger
}

// NewService constructs an auth [Service].
func NewService(client *transport.Client, sessionManager *session.Manager, logger *slog.Logger) *Service {
	return &Service{
		client:  client,
		session: sessionManager,
		logger:  logger.With(slog.String("component", "auth")),
	}
}

// # Wire Payloads

type googleSignInRequest struct {
	IDToken string `json:"idToken"`
}

type signInResponse struct {
	AccessToken  string        `json:"accessToken"`
	RefreshToken string        `json:"refreshToken"`
	User         *session.User `json:"user"`
}

type refreshTokenRequest struct {
	RefreshToken string `json:"refreshToken"`
}

type refreshTokenResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// # Operations

/*
SignInWithGoogle exchanges a verified Google ID token for a backend session.

Description: On success the session manager replaces user, access token and
refresh token atomically; subsequent calls are authenticated immediately.
The backend's response is validated for shape — a 200 without tokens or user
is rejected, never coerced into a half-logged-in state.

Parameters:
  - context: context.Context
  - idToken: Google-issued ID token (already verified client-side)

Returns:
  - *session.User: The signed-in guest profile
  - error: API or validation failures
*/
func (service *Service) SignInWithGoogle(context stdctx.Context, idToken string) (*session.User, error) {

	var response signInResponse
	if err := service.client.Post(context, "/auth/google-signin", googleSignInRequest{IDToken: idToken}, &response); err != nil {
		return nil, fmt.Errorf("auth_google_signin_failed: %w", err)
	}

	// Schema discipline: partial payloads are an error, not a degraded login.
	if response.AccessToken == "" || response.User == nil || response.User.ID == "" {
		return nil, errors.New("auth_google_signin_malformed_response")
	}

	service.session.Login(context, response.AccessToken, response.RefreshToken, response.User)

	service.logger.Info("google_signin_succeeded", slog.String("user_id", response.User.ID))

	return response.User, nil
}

/*
Refresh manually exchanges the stored refresh token for a fresh pair.

Description: The transport pipeline already performs this exchange
transparently on 401; this explicit entry point exists for proactive
refreshes (e.g. before a long-running admin bulk operation) driven by
[session.Manager.TokenExpired].

Returns:
  - error: Missing refresh token or exchange failures
*/
func (service *Service) Refresh(context stdctx.Context) error {

	refreshToken := service.session.RefreshToken()
	if refreshToken == "" {
		return errors.New("auth_refresh_no_token")
	}

	var response refreshTokenResponse
	if err := service.client.Post(context, "/auth/refresh-token", refreshTokenRequest{RefreshToken: refreshToken}, &response); err != nil {
		return fmt.Errorf("auth_refresh_failed: %w", err)
	}

	if response.AccessToken == "" {
		return errors.New("auth_refresh_malformed_response")
	}

	service.session.SetTokens(context, response.AccessToken, response.RefreshToken)

	return nil
}

/*
SignOut tears down the local session.

Description: No server-side revocation call is made — the backend issues
stateless tokens and exposes no revocation endpoint. Teardown is purely
local and always succeeds.
*/
func (service *Service) SignOut(context stdctx.Context) {
	service.session.Logout(context)
}
