// Copyright (c) 2026 Harborview Hotel Group. All rights reserved.
// Author: dev@harborview.app

package stub

import (
	stdctx "context"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

// contextKey scopes stub context values away from other packages.
type contextKey string

const keyClaims contextKey = "stub_claims"

// # Request Logging

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (recorder *statusRecorder) WriteHeader(code int) {
	recorder.status = code
	recorder.ResponseWriter.WriteHeader(code)
}

// requestLogging logs every request with its status and latency.
func (server *Server) requestLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {

		startTime := time.Now()
		wrappedWriter := &statusRecorder{ResponseWriter: writer, status: http.StatusOK}

		next.ServeHTTP(wrappedWriter, request)

		level := slog.LevelInfo
		if wrappedWriter.status >= 500 {
			level = slog.LevelError
		} else if wrappedWriter.status >= 400 {
			level = slog.LevelWarn
		}

		server.logger.Log(request.Context(), level, "request_completed",
			slog.String("method", request.Method),
			slog.String("path", request.URL.Path),
			slog.Int("status", wrappedWriter.status),
			slog.Int64("latency_ms", time.Since(startTime).Milliseconds()),
		)
	})
}

// # Authentication

/*
authenticate extracts and verifies the bearer token, if one is present.

A missing Authorization header lets the request proceed anonymously; the
route groups decide whether anonymity is acceptable. A present but invalid
token is always a 401, so an expired access token surfaces to the client's
refresh machinery instead of silently degrading to anonymous.
*/
func (server *Server) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {

		authHeader := request.Header.Get("Authorization")
		if authHeader == "" {
			next.ServeHTTP(writer, request)
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
			writeUnauthorized(writer, "Invalid authorization format")
			return
		}

		claims, err := server.tokens.verify(parts[1])
		if err != nil {
			writeUnauthorized(writer, "Invalid or expired token")
			return
		}

		ctx := stdctx.WithValue(request.Context(), keyClaims, claims)
		next.ServeHTTP(writer, request.WithContext(ctx))
	})
}

// requireAuth blocks anonymous requests. Mount after authenticate.
func requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		if claimsFrom(request.Context()) == nil {
			writeUnauthorized(writer, "Authentication required")
			return
		}
		next.ServeHTTP(writer, request)
	})
}

// requireAdmin blocks non-admin sessions. Mount after requireAuth.
func requireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		claims := claimsFrom(request.Context())
		if claims == nil || claims.Role != "admin" {
			writeForbidden(writer, "Insufficient permissions")
			return
		}
		next.ServeHTTP(writer, request)
	})
}

// claimsFrom retrieves the verified claims, or nil for anonymous requests.
func claimsFrom(ctx stdctx.Context) *authClaims {
	claims, ok := ctx.Value(keyClaims).(*authClaims)
	if !ok {
		return nil
	}
	return claims
}
