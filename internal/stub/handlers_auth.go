// Copyright (c) 2026 Harborview Hotel Group. All rights reserved.
// Author: dev@harborview.app

package stub

import (
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// # Sign-In

/*
handleGoogleSignIn exchanges a Google ID token for a stub session.

The ID token is parsed without signature verification to pull out the email
and name claims; the stub has no Google client registration to verify
against. Tokens that do not parse as JWTs at all still sign in a default
guest, so tests can use any opaque string. An email containing "admin" maps
to the admin role, which is how development flows exercise the back office.
*/
func (server *Server) handleGoogleSignIn(writer http.ResponseWriter, request *http.Request) {

	var payload struct {
		IDToken string `json:"idToken"`
	}
	if !decodeJSON(writer, request, &payload) {
		return
	}
	if payload.IDToken == "" {
		writeBadRequest(writer, "idToken is required")
		return
	}

	email, firstName, lastName := identityFromToken(payload.IDToken)

	server.mutex.Lock()
	user, ok := server.users[email]
	if !ok {
		now := time.Now().UTC().Format(time.RFC3339)
		role := "user"
		if strings.Contains(email, "admin") {
			role = "admin"
		}
		user = &stubUser{
			ID:           server.newID("usr"),
			Email:        email,
			FirstName:    firstName,
			LastName:     lastName,
			Role:         role,
			IsActive:     true,
			AuthProvider: "google",
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		server.users[email] = user
	}
	server.mutex.Unlock()

	if !user.IsActive {
		writeForbidden(writer, "Account is deactivated")
		return
	}

	accessToken, refreshToken, err := server.tokens.issuePair(user.ID, user.Role)
	if err != nil {
		writeJSON(writer, http.StatusInternalServerError, map[string]string{"error": "token issuance failed", "code": "INTERNAL"})
		return
	}

	writeJSON(writer, http.StatusOK, map[string]any{
		"accessToken":  accessToken,
		"refreshToken": refreshToken,
		"user":         user,
	})
}

// handleRefreshToken rotates a refresh token into a fresh pair.
func (server *Server) handleRefreshToken(writer http.ResponseWriter, request *http.Request) {

	var payload struct {
		RefreshToken string `json:"refreshToken"`
	}
	if !decodeJSON(writer, request, &payload) {
		return
	}

	userID, err := server.tokens.rotate(payload.RefreshToken)
	if err != nil {
		writeUnauthorized(writer, "Invalid refresh token")
		return
	}

	server.mutex.Lock()
	user := server.userByID(userID)
	server.mutex.Unlock()
	if user == nil {
		writeUnauthorized(writer, "Unknown user")
		return
	}

	accessToken, refreshToken, err := server.tokens.issuePair(user.ID, user.Role)
	if err != nil {
		writeJSON(writer, http.StatusInternalServerError, map[string]string{"error": "token issuance failed", "code": "INTERNAL"})
		return
	}

	writeJSON(writer, http.StatusOK, map[string]string{
		"accessToken":  accessToken,
		"refreshToken": refreshToken,
	})
}

// userByID scans the user table. Caller holds the mutex.
func (server *Server) userByID(userID string) *stubUser {
	for _, user := range server.users {
		if user.ID == userID {
			return user
		}
	}
	return nil
}

// identityFromToken extracts profile claims from an unverified Google ID token.
func identityFromToken(idToken string) (email string, firstName string, lastName string) {
	email, firstName, lastName = "guest@harborview.test", "Dev", "Guest"

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(idToken, claims); err != nil {
		return email, firstName, lastName
	}

	if claimed, ok := claims["email"].(string); ok && claimed != "" {
		email = claimed
	}
	if given, ok := claims["given_name"].(string); ok && given != "" {
		firstName = given
	}
	if family, ok := claims["family_name"].(string); ok && family != "" {
		lastName = family
	}
	return email, firstName, lastName
}
