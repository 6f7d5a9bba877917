// Copyright (c) 2026 Harborview Hotel Group. All rights reserved.
// Author: dev@harborview.app

package storage

import (
	stdctx "context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// # File Backend

// FileStore persists all keys inside a single JSON document on disk.
//
// Layout on disk: {"auth": <raw>, "dining_cart": <raw>}. Writes go through a
// temp-file + rename so a crash mid-write can never corrupt the previous state.
//
// # Concurrency
//
// A mutex serializes writers within this process. There is no cross-process
// coordination: two concierge processes sharing one state file race with
// last-write-wins semantics, mirroring the accepted multi-tab limitation of
// the original storage model.
type FileStore struct {
	path  string
	mutex sync.Mutex
}

// NewFileStore creates a [FileStore] rooted at path, creating parent
// directories as needed. The file itself is created lazily on first write.
func NewFileStore(path string) (*FileStore, error) {

	// Ensure the parent directory exists with owner-only permissions;
	// the session blob contains bearer credentials.
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("storage_file_mkdir_failed: %w", err)
	}

	return &FileStore{path: path}, nil
}

/*
Get returns the raw document stored under key.

Returns:
  - []byte: The stored document
  - error: [ErrKeyNotFound] when the file or key is absent, read failures otherwise
*/
func (store *FileStore) Get(_ stdctx.Context, key string) ([]byte, error) {
	store.mutex.Lock()
	defer store.mutex.Unlock()

	document, err := store.read()
	if err != nil {
		return nil, err
	}

	raw, ok := document[key]
	if !ok {
		return nil, ErrKeyNotFound
	}

	return raw, nil
}

/*
Set replaces the document stored under key and flushes the whole file.

Returns:
  - error: Write failures
*/
func (store *FileStore) Set(_ stdctx.Context, key string, value []byte) error {
	store.mutex.Lock()
	defer store.mutex.Unlock()

	document, err := store.read()
	if err != nil {
		// A corrupt or missing file must not block new writes; start over.
		document = map[string]json.RawMessage{}
	}

	document[key] = json.RawMessage(value)

	return store.write(document)
}

/*
Delete removes the document stored under key. Idempotent.

Returns:
  - error: Write failures
*/
func (store *FileStore) Delete(_ stdctx.Context, key string) error {
	store.mutex.Lock()
	defer store.mutex.Unlock()

	document, err := store.read()
	if err != nil {
		// Nothing persisted means nothing to delete.
		return nil
	}

	if _, ok := document[key]; !ok {
		return nil
	}

	delete(document, key)

	return store.write(document)
}

// read loads and parses the backing file. Callers hold the mutex.
func (store *FileStore) read() (map[string]json.RawMessage, error) {

	raw, err := os.ReadFile(store.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrKeyNotFound
		}
		return nil, fmt.Errorf("storage_file_read_failed: %w", err)
	}

	document := map[string]json.RawMessage{}
	if err := json.Unmarshal(raw, &document); err != nil {
		return nil, fmt.Errorf("storage_file_parse_failed: %w", err)
	}

	return document, nil
}

// write atomically replaces the backing file. Callers hold the mutex.
func (store *FileStore) write(document map[string]json.RawMessage) error {

	raw, err := json.Marshal(document)
	if err != nil {
		return fmt.Errorf("storage_file_encode_failed: %w", err)
	}

	// Write to a sibling temp file, then rename over the original. Rename is
	// atomic on POSIX filesystems, so readers observe old-or-new, never torn.
	temp := store.path + ".tmp"
	if err := os.WriteFile(temp, raw, 0o600); err != nil {
		return fmt.Errorf("storage_file_write_failed: %w", err)
	}

	if err := os.Rename(temp, store.path); err != nil {
		return fmt.Errorf("storage_file_rename_failed: %w", err)
	}

	return nil
}
