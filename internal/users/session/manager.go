// Copyright (c) 2026 Harborview Hotel Group. All rights reserved.
// Author: dev@harborview.app

package session

import (
	stdctx "context"
	"log/slog"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/harborview/concierge/internal/platform/storage"
)

// # Manager

// Manager owns the in-memory session state and its durable mirror.
//
// # Concurrency
//
// All reads and writes go through an RWMutex, so two rapid mutations merge
// deterministically in call order. There is no cross-process coordination:
// two processes sharing one storage profile race with last-write-wins
// semantics (an accepted limitation, not an invariant).
type Manager struct {
	store  storage.Store
	logger *slog.Logger

	mutex        sync.RWMutex
	user         *User
	accessToken  string
	refreshToken string
	subscribers  []func(Snapshot)
}

// NewManager constructs a [Manager] bound to its durable storage.
// The session starts empty; call [Manager.Restore] before first use.
func NewManager(store storage.Store, logger *slog.Logger) *Manager {
	return &Manager{
		store:  store,
		logger: logger.With(slog.String("component", "session")),
	}
}

// # Lifecycle

/*
Restore initializes the session from durable storage.

Description: Runs synchronously at startup, before any authenticated call is
issued. A malformed or absent blob degrades to the logged-out state; no error
is surfaced and none is retried (first run and wiped profiles are normal).
*/
func (manager *Manager) Restore(context stdctx.Context) {

	restored := storage.Restore(context, manager.store, storage.KeySession, manager.logger, persistedSession{})

	manager.mutex.Lock()
	manager.user = restored.User
	manager.accessToken = restored.Token
	manager.refreshToken = restored.RefreshToken

	// Re-establish the invariant if a hand-edited or partial blob broke it:
	// a token without a user (or vice versa) is a logged-out session.
	if manager.user == nil || manager.accessToken == "" {
		manager.user = nil
		manager.accessToken = ""
		manager.refreshToken = ""
	}
	manager.mutex.Unlock()

	if manager.Current().Authenticated() {
		manager.logger.Debug("session_restored", slog.String("user_id", restored.User.ID))
	}
}

/*
Login replaces the whole session atomically and persists it.

Description: All three fields (user, access token, refresh token) change
together; subsequent HTTP calls immediately use the new token. No validation
of token shape is performed — tokens are opaque to the client.
*/
func (manager *Manager) Login(context stdctx.Context, accessToken, refreshToken string, user *User) {

	manager.mutex.Lock()
	manager.user = user
	manager.accessToken = accessToken
	manager.refreshToken = refreshToken
	manager.mutex.Unlock()

	manager.persist(context)
	manager.notify()

	manager.logger.Info("session_login", slog.String("user_id", user.ID))
}

/*
SetTokens replaces only the token pair, keeping the current user.

Description: The refresh path — invoked by the transport pipeline after a
successful token refresh. Persisted immediately so a crash between refresh
and the retried request cannot resurrect the stale token.
*/
func (manager *Manager) SetTokens(context stdctx.Context, accessToken, refreshToken string) {

	manager.mutex.Lock()
	manager.accessToken = accessToken
	manager.refreshToken = refreshToken
	manager.mutex.Unlock()

	manager.persist(context)
	manager.notify()
}

/*
Logout clears the session in memory and erases the persisted blob.

Description: Fail-closed teardown. No server-side revocation call is made
from here — the backend issues stateless tokens and the original client
behaved the same way.
*/
func (manager *Manager) Logout(context stdctx.Context) {

	manager.mutex.Lock()
	wasAuthenticated := manager.user != nil
	manager.user = nil
	manager.accessToken = ""
	manager.refreshToken = ""
	manager.mutex.Unlock()

	if err := manager.store.Delete(context, storage.KeySession); err != nil {
		// The in-memory state is already cleared; a failed erase only means
		// the stale blob survives until the next successful write.
		manager.logger.Warn("session_erase_failed", slog.Any("error", err))
	}

	manager.notify()

	if wasAuthenticated {
		manager.logger.Info("session_logout")
	}
}

// # Readers

// Current returns an immutable copy of the session state.
func (manager *Manager) Current() Snapshot {
	manager.mutex.RLock()
	defer manager.mutex.RUnlock()

	snapshot := Snapshot{
		AccessToken:  manager.accessToken,
		RefreshToken: manager.refreshToken,
	}

	// Copy the user so callers cannot mutate shared state by reference.
	if manager.user != nil {
		user := *manager.user
		snapshot.User = &user
	}

	return snapshot
}

// AccessToken returns the current bearer token, or "" when logged out.
func (manager *Manager) AccessToken() string {
	manager.mutex.RLock()
	defer manager.mutex.RUnlock()
	return manager.accessToken
}

// RefreshToken returns the current refresh token, or "" when absent.
func (manager *Manager) RefreshToken() string {
	manager.mutex.RLock()
	defer manager.mutex.RUnlock()
	return manager.refreshToken
}

// IsAuthenticated reports whether a guest is currently logged in.
func (manager *Manager) IsAuthenticated() bool {
	return manager.Current().Authenticated()
}

/*
TokenExpired reports whether the current access token is past its exp claim.

Description: Best-effort and purely local — the token is parsed WITHOUT
signature verification (the client does not hold the signing key). A token
that does not parse as a JWT is reported as expired so the caller refreshes
proactively instead of burning a request on a guaranteed 401.
*/
func (manager *Manager) TokenExpired() bool {

	token := manager.AccessToken()
	if token == "" {
		return true
	}

	claims := jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return true
	}

	if claims.ExpiresAt == nil {
		// No exp claim: treat as non-expiring, let the server decide.
		return false
	}

	return claims.ExpiresAt.Before(time.Now())
}

// # Change Notification

// Subscribe registers fn to run after every session mutation — the analogue
// of dependent UI re-rendering on store writes. Callbacks run synchronously
// on the mutating goroutine and must not call back into the Manager.
func (manager *Manager) Subscribe(fn func(Snapshot)) {
	manager.mutex.Lock()
	defer manager.mutex.Unlock()
	manager.subscribers = append(manager.subscribers, fn)
}

func (manager *Manager) notify() {
	snapshot := manager.Current()

	manager.mutex.RLock()
	subscribers := make([]func(Snapshot), len(manager.subscribers))
	copy(subscribers, manager.subscribers)
	manager.mutex.RUnlock()

	for _, fn := range subscribers {
		fn(snapshot)
	}
}

// persist mirrors the in-memory state into durable storage.
func (manager *Manager) persist(context stdctx.Context) {

	manager.mutex.RLock()
	blob := persistedSession{
		Token:        manager.accessToken,
		RefreshToken: manager.refreshToken,
		User:         manager.user,
	}
	manager.mutex.RUnlock()

	if err := storage.Persist(context, manager.store, storage.KeySession, blob); err != nil {
		manager.logger.Warn("session_persist_failed", slog.Any("error", err))
	}
}
