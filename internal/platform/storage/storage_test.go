// Copyright (c) 2026 Harborview Hotel Group. All rights reserved.
// Author: dev@harborview.app

package storage_test

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harborview/concierge/internal/platform/storage"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

/*
TestFileStore_RoundTrip verifies that values written to the file backend can be
read back across store instances (i.e. across process restarts).
*/
func TestFileStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "state.json")

	store, err := storage.NewFileStore(path)
	require.NoError(t, err)

	// 1. Absent key before any write
	_, err = store.Get(ctx, storage.KeyCart)
	assert.ErrorIs(t, err, storage.ErrKeyNotFound)

	// 2. Write both well-known keys
	require.NoError(t, store.Set(ctx, storage.KeySession, []byte(`{"token":"tok1"}`)))
	require.NoError(t, store.Set(ctx, storage.KeyCart, []byte(`[{"itemId":"A"}]`)))

	// 3. Reopen the file with a fresh store instance
	reopened, err := storage.NewFileStore(path)
	require.NoError(t, err)

	session, err := reopened.Get(ctx, storage.KeySession)
	require.NoError(t, err)
	assert.JSONEq(t, `{"token":"tok1"}`, string(session))

	cart, err := reopened.Get(ctx, storage.KeyCart)
	require.NoError(t, err)
	assert.JSONEq(t, `[{"itemId":"A"}]`, string(cart))
}

/*
TestFileStore_Delete verifies that deleting a key removes only that key and is
idempotent when the key is already absent.
*/
func TestFileStore_Delete(t *testing.T) {
	ctx := context.Background()

	store, err := storage.NewFileStore(filepath.Join(t.TempDir(), "state.json"))
	require.NoError(t, err)

	// Deleting from an empty store is not an error
	assert.NoError(t, store.Delete(ctx, storage.KeySession))

	require.NoError(t, store.Set(ctx, storage.KeySession, []byte(`{}`)))
	require.NoError(t, store.Set(ctx, storage.KeyCart, []byte(`[]`)))

	require.NoError(t, store.Delete(ctx, storage.KeySession))

	// Session gone, cart untouched
	_, err = store.Get(ctx, storage.KeySession)
	assert.ErrorIs(t, err, storage.ErrKeyNotFound)

	_, err = store.Get(ctx, storage.KeyCart)
	assert.NoError(t, err)
}

/*
TestFileStore_CorruptFileAcceptsWrites verifies that a corrupt backing file does
not block new writes: the store starts over instead of failing forever.
*/
func TestFileStore_CorruptFileAcceptsWrites(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "state.json")

	require.NoError(t, os.WriteFile(path, []byte("{{{ not json"), 0o600))

	store, err := storage.NewFileStore(path)
	require.NoError(t, err)

	require.NoError(t, store.Set(ctx, storage.KeyCart, []byte(`[]`)))

	raw, err := store.Get(ctx, storage.KeyCart)
	require.NoError(t, err)
	assert.JSONEq(t, `[]`, string(raw))
}

/*
TestRestore_DegradeToDefault verifies the named degrade-to-default policy: an
absent key and malformed JSON both restore the fallback value without error.
*/
func TestRestore_DegradeToDefault(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStore()

	type blob struct {
		Token string `json:"token"`
	}

	// 1. Absent key degrades to the fallback
	restored := storage.Restore(ctx, store, storage.KeySession, discardLogger(), blob{})
	assert.Equal(t, blob{}, restored)

	// 2. Malformed JSON degrades to the fallback
	require.NoError(t, store.Set(ctx, storage.KeySession, []byte("corrupted###")))
	restored = storage.Restore(ctx, store, storage.KeySession, discardLogger(), blob{})
	assert.Equal(t, blob{}, restored)

	// 3. Valid JSON restores the persisted value
	require.NoError(t, store.Set(ctx, storage.KeySession, []byte(`{"token":"tok1"}`)))
	restored = storage.Restore(ctx, store, storage.KeySession, discardLogger(), blob{})
	assert.Equal(t, "tok1", restored.Token)
}

/*
TestPersist_RoundTrip verifies that Persist followed by Restore yields the
exact value that was stored.
*/
func TestPersist_RoundTrip(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStore()

	type line struct {
		ItemID   string `json:"itemId"`
		Quantity int    `json:"quantity"`
	}

	lines := []line{{ItemID: "A", Quantity: 2}, {ItemID: "B", Quantity: 1}}
	require.NoError(t, storage.Persist(ctx, store, storage.KeyCart, lines))

	restored := storage.Restore(ctx, store, storage.KeyCart, discardLogger(), []line(nil))
	assert.Equal(t, lines, restored)
}
