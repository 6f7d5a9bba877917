// Copyright (c) 2026 Harborview Hotel Group. All rights reserved.
// Author: dev@harborview.app

/*
Package googleauth obtains a Google ID token via the OAuth 2.0
authorization-code flow with PKCE on a loopback redirect.

The flow is interactive: Authorize prints a consent URL, listens on a local
loopback port for Google's redirect, exchanges the authorization code for a
token set, and verifies the embedded ID token against Google's published keys
before returning it. The verified ID token is then suitable for
[auth.Service.SignInWithGoogle].

Google's endpoints are discovered through OIDC rather than hardcoded, so key
rotation and endpoint moves are handled transparently.
*/
package googleauth

import (
	stdctx "context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/coreos/go-oidc/v3/oidc"
	"golang.org/x/oauth2"
)

// # Constants

const (
	// googleIssuer is the OIDC issuer for Google accounts.
	googleIssuer = "https://accounts.google.com"

	// callbackPath is the loopback redirect path registered with Google.
	callbackPath = "/oauth/callback"

	// flowTimeout bounds the whole interactive flow, consent included.
	flowTimeout = 3 * time.Minute
)

// # Flow

// Flow drives one interactive Google sign-in.
type Flow struct {
	clientID     string
	clientSecret string
	listenPort   int
	logger       *slog.Logger

	// openURL is invoked with the consent URL. Overridable in tests;
	// the default logs the URL for the operator to open.
	openURL func(url string)
}

// NewFlow constructs a Google sign-in [Flow] listening on the given loopback port.
func NewFlow(clientID string, clientSecret string, listenPort int, logger *slog.Logger) *Flow {
	flow := &Flow{
		clientID:     clientID,
		clientSecret: clientSecret,
		listenPort:   listenPort,
		logger:       logger.With(slog.String("component", "googleauth")),
	}
	flow.openURL = func(url string) {
		flow.logger.Info("open_consent_url", slog.String("url", url))
		fmt.Printf("\nOpen this URL in your browser to sign in:\n\n  %s\n\n", url)
	}
	return flow
}

// callbackResult carries the redirect outcome from the loopback handler.
type callbackResult struct {
	code  string
	state string
	err   error
}

/*
Authorize runs the full authorization-code flow and returns a verified Google
ID token.

Description: Binds the loopback listener first so the redirect URL is known
to be serviceable before the consent URL is printed. State and PKCE verifier
are single-use random values; a redirect carrying a mismatched state is
rejected. The ID token's signature, issuer, audience and expiry are verified
against Google's keys before it is returned.

Parameters:
  - context: context.Context, cancels the flow (a hard cap of three minutes
    applies on top)

Returns:
  - string: The verified Google ID token
  - error: Listener, consent, exchange or verification failures
*/
func (flow *Flow) Authorize(context stdctx.Context) (string, error) {

	if flow.clientID == "" {
		return "", errors.New("googleauth_client_id_missing")
	}

	context, cancel := stdctx.WithTimeout(context, flowTimeout)
	defer cancel()

	provider, err := oidc.NewProvider(context, googleIssuer)
	if err != nil {
		return "", fmt.Errorf("googleauth_discovery_failed: %w", err)
	}

	listener, err := net.Listen("tcp", fmt.Sprintf("127.0.0.1:%d", flow.listenPort))
	if err != nil {
		return "", fmt.Errorf("googleauth_listen_failed: %w", err)
	}
	defer listener.Close()

	redirectURL := fmt.Sprintf("http://%s%s", listener.Addr().String(), callbackPath)

	oauthConfig := &oauth2.Config{
		ClientID:     flow.clientID,
		ClientSecret: flow.clientSecret,
		Endpoint:     provider.Endpoint(),
		RedirectURL:  redirectURL,
		Scopes:       []string{oidc.ScopeOpenID, "profile", "email"},
	}

	state := randomToken(32)
	verifier := randomToken(32)

	results := make(chan callbackResult, 1)
	server := &http.Server{Handler: callbackHandler(results)}
	go func() {
		if serveErr := server.Serve(listener); serveErr != nil && !errors.Is(serveErr, http.ErrServerClosed) {
			results <- callbackResult{err: serveErr}
		}
	}()
	defer server.Close()

	consentURL := oauthConfig.AuthCodeURL(state,
		oauth2.SetAuthURLParam("code_challenge", codeChallenge(verifier)),
		oauth2.SetAuthURLParam("code_challenge_method", "S256"),
	)
	flow.openURL(consentURL)

	var result callbackResult
	select {
	case result = <-results:
	case <-context.Done():
		return "", fmt.Errorf("googleauth_flow_aborted: %w", context.Err())
	}

	if result.err != nil {
		return "", fmt.Errorf("googleauth_callback_failed: %w", result.err)
	}
	if result.state != state {
		return "", errors.New("googleauth_state_mismatch")
	}

	token, err := oauthConfig.Exchange(context, result.code,
		oauth2.SetAuthURLParam("code_verifier", verifier),
	)
	if err != nil {
		return "", fmt.Errorf("googleauth_exchange_failed: %w", err)
	}

	rawIDToken, ok := token.Extra("id_token").(string)
	if !ok || rawIDToken == "" {
		return "", errors.New("googleauth_no_id_token")
	}

	idTokenVerifier := provider.Verifier(&oidc.Config{ClientID: flow.clientID})
	if _, err := idTokenVerifier.Verify(context, rawIDToken); err != nil {
		return "", fmt.Errorf("googleauth_id_token_invalid: %w", err)
	}

	flow.logger.Info("google_authorization_succeeded")

	return rawIDToken, nil
}

// # Loopback Handler

// callbackHandler serves the single redirect from Google and reports it once.
func callbackHandler(results chan<- callbackResult) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc(callbackPath, func(writer http.ResponseWriter, request *http.Request) {
		query := request.URL.Query()

		if errCode := query.Get("error"); errCode != "" {
			http.Error(writer, "Sign-in was denied. You can close this window.", http.StatusBadRequest)
			select {
			case results <- callbackResult{err: fmt.Errorf("googleauth_consent_denied: %s", errCode)}:
			default:
			}
			return
		}

		writer.Header().Set("Content-Type", "text/html; charset=utf-8")
		fmt.Fprint(writer, "<html><body><p>Signed in. You can close this window.</p></body></html>")

		select {
		case results <- callbackResult{code: query.Get("code"), state: query.Get("state")}:
		default:
		}
	})
	return mux
}

// # PKCE Helpers

// randomToken returns a random base64url string of the given byte length.
func randomToken(length int) string {
	buffer := make([]byte, length)
	rand.Read(buffer)
	return base64.RawURLEncoding.EncodeToString(buffer)
}

// codeChallenge derives the S256 PKCE challenge from a verifier.
func codeChallenge(verifier string) string {
	sum := sha256.Sum256([]byte(verifier))
	return base64.RawURLEncoding.EncodeToString(sum[:])
}
