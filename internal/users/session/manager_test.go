// Copyright (c) 2026 Harborview Hotel Group. All rights reserved.
// Author: dev@harborview.app

package session_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harborview/concierge/internal/platform/storage"
	"github.com/harborview/concierge/internal/users/session"
)

func newManager(t *testing.T) (*session.Manager, *storage.MemoryStore) {
	t.Helper()
	store := storage.NewMemoryStore()
	return session.NewManager(store, slog.New(slog.NewTextHandler(io.Discard, nil))), store
}

/*
TestManager_LoginPersists verifies the login scenario from the storage
contract: login("tok1","ref1",{id:"u1"}) leaves a matching JSON blob under
the "auth" key and exposes the user in memory.
*/
func TestManager_LoginPersists(t *testing.T) {
	ctx := context.Background()
	manager, store := newManager(t)

	manager.Login(ctx, "tok1", "ref1", &session.User{ID: "u1", Email: "guest@example.com"})

	// 1. In-memory state
	snapshot := manager.Current()
	require.NotNil(t, snapshot.User)
	assert.Equal(t, "u1", snapshot.User.ID)
	assert.Equal(t, "tok1", snapshot.AccessToken)
	assert.Equal(t, "ref1", snapshot.RefreshToken)
	assert.True(t, snapshot.Authenticated())

	// 2. Persisted blob matches {token, refreshToken, user}
	raw, err := store.Get(ctx, storage.KeySession)
	require.NoError(t, err)

	var blob struct {
		Token        string        `json:"token"`
		RefreshToken string        `json:"refreshToken"`
		User         *session.User `json:"user"`
	}
	require.NoError(t, json.Unmarshal(raw, &blob))
	assert.Equal(t, "tok1", blob.Token)
	assert.Equal(t, "ref1", blob.RefreshToken)
	require.NotNil(t, blob.User)
	assert.Equal(t, "u1", blob.User.ID)
}

/*
TestManager_RestoreRoundTrip verifies that a persisted session restores with
identical user and token fields in a fresh manager.
*/
func TestManager_RestoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStore()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	first := session.NewManager(store, logger)
	first.Login(ctx, "tok1", "ref1", &session.User{ID: "u1", Email: "guest@example.com", Role: session.RoleAdmin})

	second := session.NewManager(store, logger)
	second.Restore(ctx)

	snapshot := second.Current()
	require.NotNil(t, snapshot.User)
	assert.Equal(t, "u1", snapshot.User.ID)
	assert.Equal(t, "guest@example.com", snapshot.User.Email)
	assert.Equal(t, "tok1", snapshot.AccessToken)
	assert.Equal(t, "ref1", snapshot.RefreshToken)
	assert.True(t, snapshot.IsAdmin())
}

/*
TestManager_RestoreMalformed verifies that corrupt persisted JSON degrades to
the logged-out state without surfacing an error.
*/
func TestManager_RestoreMalformed(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStore()
	require.NoError(t, store.Set(ctx, storage.KeySession, []byte("{not json")))

	manager := session.NewManager(store, slog.New(slog.NewTextHandler(io.Discard, nil)))
	manager.Restore(ctx)

	assert.False(t, manager.IsAuthenticated())
	assert.Empty(t, manager.AccessToken())
	assert.Empty(t, manager.RefreshToken())
}

/*
TestManager_RestoreBrokenInvariant verifies that a blob with a token but no
user (or the reverse) restores as fully logged out.
*/
func TestManager_RestoreBrokenInvariant(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStore()
	require.NoError(t, store.Set(ctx, storage.KeySession, []byte(`{"token":"tok1","refreshToken":"ref1","user":null}`)))

	manager := session.NewManager(store, slog.New(slog.NewTextHandler(io.Discard, nil)))
	manager.Restore(ctx)

	assert.False(t, manager.IsAuthenticated())
	assert.Empty(t, manager.AccessToken())
	assert.Empty(t, manager.RefreshToken())
}

/*
TestManager_Logout verifies that logout clears memory and erases the
persisted blob.
*/
func TestManager_Logout(t *testing.T) {
	ctx := context.Background()
	manager, store := newManager(t)

	manager.Login(ctx, "tok1", "ref1", &session.User{ID: "u1"})
	manager.Logout(ctx)

	assert.False(t, manager.IsAuthenticated())
	_, err := store.Get(ctx, storage.KeySession)
	assert.ErrorIs(t, err, storage.ErrKeyNotFound)
}

/*
TestManager_SetTokens verifies that the refresh path replaces only the token
pair, keeping the current user, and persists immediately.
*/
func TestManager_SetTokens(t *testing.T) {
	ctx := context.Background()
	manager, store := newManager(t)

	manager.Login(ctx, "tok1", "ref1", &session.User{ID: "u1"})
	manager.SetTokens(ctx, "tok2", "ref2")

	snapshot := manager.Current()
	require.NotNil(t, snapshot.User)
	assert.Equal(t, "u1", snapshot.User.ID)
	assert.Equal(t, "tok2", snapshot.AccessToken)
	assert.Equal(t, "ref2", snapshot.RefreshToken)

	raw, err := store.Get(ctx, storage.KeySession)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"tok2"`)
}

/*
TestManager_Subscribe verifies that subscribers observe every mutation with
the post-mutation snapshot.
*/
func TestManager_Subscribe(t *testing.T) {
	ctx := context.Background()
	manager, _ := newManager(t)

	var seen []session.Snapshot
	manager.Subscribe(func(s session.Snapshot) { seen = append(seen, s) })

	manager.Login(ctx, "tok1", "ref1", &session.User{ID: "u1"})
	manager.Logout(ctx)

	require.Len(t, seen, 2)
	assert.True(t, seen[0].Authenticated())
	assert.False(t, seen[1].Authenticated())
}

/*
TestManager_TokenExpired verifies the best-effort local expiry check against
a real (unsigned-verification) JWT exp claim.
*/
func TestManager_TokenExpired(t *testing.T) {
	ctx := context.Background()
	manager, _ := newManager(t)

	// 1. No token at all counts as expired
	assert.True(t, manager.TokenExpired())

	// 2. Opaque non-JWT tokens count as expired (force a proactive refresh)
	manager.Login(ctx, "not-a-jwt", "ref1", &session.User{ID: "u1"})
	assert.True(t, manager.TokenExpired())

	// 3. A live JWT is not expired
	live := mintToken(t, time.Now().Add(10*time.Minute))
	manager.SetTokens(ctx, live, "ref1")
	assert.False(t, manager.TokenExpired())

	// 4. A stale JWT is expired
	stale := mintToken(t, time.Now().Add(-10*time.Minute))
	manager.SetTokens(ctx, stale, "ref1")
	assert.True(t, manager.TokenExpired())
}

func mintToken(t *testing.T, expiry time.Time) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "u1",
		ExpiresAt: jwt.NewNumericDate(expiry),
	})
	signed, err := token.SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return signed
}
