// Copyright (c) 2026 Harborview Hotel Group. All rights reserved.
// Author: dev@harborview.app

/*
Package storage provides the durable local key-value store for client state.

It is the Go analogue of the browser's localStorage: a small, process-owned
key-value surface that survives restarts and holds exactly two documents — the
auth session blob and the dining cart.

Core Responsibilities:

  - Durability: State survives process restarts within the same profile.
  - Exclusivity: Each key is owned by exactly one in-memory store; no other
    component reads or writes it directly.
  - Degradation: Malformed persisted state is an expected condition (first run,
    wiped profile, corrupt JSON) and decays to a caller-supplied default.

Two production backends exist: a single JSON file on disk and a Redis keyspace.
Both are interchangeable behind the [Store] interface.
*/
package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
)

// # Well-Known Keys

const (
	// KeySession is the storage key for the persisted auth session blob.
	KeySession = "auth"

	// KeyCart is the storage key for the persisted dining cart line list.
	KeyCart = "dining_cart"
)

// ErrKeyNotFound is returned by [Store.Get] when the key has never been
// written or has been deleted.
var ErrKeyNotFound = errors.New("storage: key not found")

// # Contract

// Store defines the durable key-value contract shared by all backends.
type Store interface {

	/*
		Get returns the raw bytes stored under key.

		Returns:
		  - []byte: The stored document
		  - error: [ErrKeyNotFound] or backend failures
	*/
	Get(context context.Context, key string) ([]byte, error)

	/*
		Set replaces the document stored under key.

		Returns:
		  - error: Backend failures
	*/
	Set(context context.Context, key string, value []byte) error

	/*
		Delete removes the document stored under key. Deleting an absent
		key is not an error (idempotent).

		Returns:
		  - error: Backend failures
	*/
	Delete(context context.Context, key string) error
}

// # Degrade-To-Default Policy

/*
Restore loads and decodes the document stored under key into target.

This is the single, named "degrade to default" policy required by the session
and cart stores: an absent key, a backend read failure, or malformed JSON all
resolve to the fallback value. No error ever crosses this boundary — a corrupt
profile must restore as "logged out" / "empty cart", never as a crash.

The degraded cases are logged at Warn (corruption) or Debug (absence) so the
condition remains observable without surfacing to the caller.
*/
func Restore[T any](context context.Context, store Store, key string, logger *slog.Logger, fallback T) T {

	raw, err := store.Get(context, key)
	if err != nil {
		if !errors.Is(err, ErrKeyNotFound) {
			logger.Warn("storage_restore_read_failed",
				slog.String("key", key),
				slog.Any("error", err),
			)
		} else {
			logger.Debug("storage_restore_key_absent", slog.String("key", key))
		}
		return fallback
	}

	var target T
	if err := json.Unmarshal(raw, &target); err != nil {
		logger.Warn("storage_restore_malformed_state",
			slog.String("key", key),
			slog.Any("error", err),
		)
		return fallback
	}

	return target
}

// Persist encodes value as JSON and writes it under key.
//
// Unlike [Restore], write failures ARE surfaced: losing a mutation is a real
// error the caller may want to log, even though stores treat it as non-fatal.
func Persist(context context.Context, store Store, key string, value any) error {

	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("storage_persist_encode_failed (%s): %w", key, err)
	}

	if err := store.Set(context, key, raw); err != nil {
		return fmt.Errorf("storage_persist_write_failed (%s): %w", key, err)
	}

	return nil
}
