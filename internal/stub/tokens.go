// Copyright (c) 2026 Harborview Hotel Group. All rights reserved.
// Author: dev@harborview.app

package stub

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// accessTokenTTL is deliberately short so the client's refresh path gets
// exercised constantly during development.
const accessTokenTTL = 5 * time.Minute

// authClaims is the payload inside a stub access token. Embedding the role
// lets the authorization middleware decide without a user lookup.
type authClaims struct {
	jwt.RegisteredClaims

	UserID string `json:"uid"`
	Role   string `json:"rol"`
}

// tokenService mints HS256 access tokens and tracks opaque refresh tokens.
// Refresh tokens are single-use: each exchange rotates the pair.
type tokenService struct {
	secret []byte

	mutex   sync.Mutex
	refresh map[string]string // refresh token -> user ID
}

func newTokenService(secret string) *tokenService {
	return &tokenService{
		secret:  []byte(secret),
		refresh: make(map[string]string),
	}
}

// issuePair mints a fresh access and refresh token for the user.
func (service *tokenService) issuePair(userID string, role string) (accessToken string, refreshToken string, err error) {
	now := time.Now()
	claims := authClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			Issuer:    "harborview-stub",
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(accessTokenTTL)),
		},
		UserID: userID,
		Role:   role,
	}

	accessToken, err = jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(service.secret)
	if err != nil {
		return "", "", fmt.Errorf("stub_token_sign_failed: %w", err)
	}

	refreshToken = uuid.NewString()
	service.mutex.Lock()
	service.refresh[refreshToken] = userID
	service.mutex.Unlock()

	return accessToken, refreshToken, nil
}

// rotate redeems a refresh token, invalidating it in the same step.
func (service *tokenService) rotate(refreshToken string) (userID string, err error) {
	service.mutex.Lock()
	defer service.mutex.Unlock()

	userID, ok := service.refresh[refreshToken]
	if !ok {
		return "", errors.New("stub_refresh_token_unknown")
	}
	delete(service.refresh, refreshToken)

	return userID, nil
}

// verify checks an access token's signature and expiry.
func (service *tokenService) verify(tokenString string) (*authClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &authClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("stub_unexpected_signing_method: %v", token.Header["alg"])
		}
		return service.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("stub_token_invalid: %w", err)
	}

	claims, ok := token.Claims.(*authClaims)
	if !ok || !token.Valid {
		return nil, errors.New("stub_token_claims_invalid")
	}
	return claims, nil
}
