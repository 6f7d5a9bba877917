// Copyright (c) 2026 Harborview Hotel Group. All rights reserved.
// Author: dev@harborview.app

package cart

import (
	stdctx "context"
	"log/slog"
	"sync"

	"github.com/harborview/concierge/internal/platform/storage"
)

// # Store

// Store owns the in-memory cart state and its durable mirror.
//
// # Concurrency
//
// A mutex serializes mutations, so two rapid Add calls for the same ItemID
// merge deterministically in call order. Insertion order of distinct items is
// preserved — it is meaningful for display, not for business logic.
type Store struct {
	store  storage.Store
	logger *slog.Logger

	mutex       sync.RWMutex
	lines       []Line
	subscribers []func([]Line)
}

// NewStore constructs an empty cart bound to its durable storage.
// Call [Store.Restore] before first use.
func NewStore(store storage.Store, logger *slog.Logger) *Store {
	return &Store{
		store:  store,
		logger: logger.With(slog.String("component", "cart")),
	}
}

// # Lifecycle

/*
Restore initializes the cart from durable storage.

Description: An absent or malformed persisted cart degrades to the empty
cart; no error surfaces to the caller.
*/
func (cart *Store) Restore(context stdctx.Context) {

	restored := storage.Restore(context, cart.store, storage.KeyCart, cart.logger, []Line(nil))

	// Sanitize what came off disk: a hand-edited blob could carry lines that
	// violate the quantity >= 1 invariant or duplicate an ItemID.
	sane := make([]Line, 0, len(restored))
	seen := map[string]int{}
	for _, line := range restored {
		if line.ItemID == "" || line.Quantity < 1 {
			continue
		}
		if at, ok := seen[line.ItemID]; ok {
			sane[at].Quantity += line.Quantity
			continue
		}
		seen[line.ItemID] = len(sane)
		sane = append(sane, line)
	}

	cart.mutex.Lock()
	cart.lines = sane
	cart.mutex.Unlock()
}

// # Operations

/*
Add inserts a line, merging quantities when the ItemID already exists.

Description: A repeated add of the same item increments the existing line's
quantity by line.Quantity instead of duplicating the line. New items append
at the end, preserving insertion order. Quantities below 1 are treated as 1 —
an "add to cart" gesture always adds something.
*/
func (cart *Store) Add(context stdctx.Context, line Line) {

	if line.ItemID == "" {
		return
	}
	if line.Quantity < 1 {
		line.Quantity = 1
	}

	cart.mutex.Lock()
	merged := false
	for index := range cart.lines {
		if cart.lines[index].ItemID == line.ItemID {
			cart.lines[index].Quantity += line.Quantity
			merged = true
			break
		}
	}
	if !merged {
		cart.lines = append(cart.lines, line)
	}
	cart.mutex.Unlock()

	cart.persist(context)
	cart.notify()
}

/*
Remove deletes the line for itemID entirely. Idempotent if absent.
*/
func (cart *Store) Remove(context stdctx.Context, itemID string) {

	cart.mutex.Lock()
	filtered := cart.lines[:0]
	for _, line := range cart.lines {
		if line.ItemID != itemID {
			filtered = append(filtered, line)
		}
	}
	changed := len(filtered) != len(cart.lines)
	cart.lines = filtered
	cart.mutex.Unlock()

	if changed {
		cart.persist(context)
		cart.notify()
	}
}

/*
SetQuantity replaces the quantity of the matching line.

Description: quantity < 1 is equivalent to [Store.Remove]; an absent itemID
is a no-op (nothing is created that was never added).
*/
func (cart *Store) SetQuantity(context stdctx.Context, itemID string, quantity int) {

	if quantity < 1 {
		cart.Remove(context, itemID)
		return
	}

	cart.mutex.Lock()
	changed := false
	for index := range cart.lines {
		if cart.lines[index].ItemID == itemID {
			changed = cart.lines[index].Quantity != quantity
			cart.lines[index].Quantity = quantity
			break
		}
	}
	cart.mutex.Unlock()

	if changed {
		cart.persist(context)
		cart.notify()
	}
}

/*
Clear empties the cart — called after a successful order submission.
*/
func (cart *Store) Clear(context stdctx.Context) {

	cart.mutex.Lock()
	cart.lines = nil
	cart.mutex.Unlock()

	cart.persist(context)
	cart.notify()
}

// # Derived Values

// Lines returns a defensive copy of the current line list in insertion order.
// Callers must not mutate cart state except through the documented operations.
func (cart *Store) Lines() []Line {
	cart.mutex.RLock()
	defer cart.mutex.RUnlock()

	lines := make([]Line, len(cart.lines))
	copy(lines, cart.lines)
	return lines
}

// TotalAmount returns Σ(unitPrice × quantity), recomputed on every call.
func (cart *Store) TotalAmount() float64 {
	cart.mutex.RLock()
	defer cart.mutex.RUnlock()

	total := 0.0
	for _, line := range cart.lines {
		total += line.Subtotal()
	}
	return total
}

// TotalItems returns Σ(quantity), recomputed on every call.
func (cart *Store) TotalItems() int {
	cart.mutex.RLock()
	defer cart.mutex.RUnlock()

	total := 0
	for _, line := range cart.lines {
		total += line.Quantity
	}
	return total
}

// # Change Notification

// Subscribe registers fn to run after every cart mutation with the
// post-mutation line list. Callbacks run synchronously on the mutating
// goroutine and must not call back into the Store.
func (cart *Store) Subscribe(fn func([]Line)) {
	cart.mutex.Lock()
	defer cart.mutex.Unlock()
	cart.subscribers = append(cart.subscribers, fn)
}

func (cart *Store) notify() {
	lines := cart.Lines()

	cart.mutex.RLock()
	subscribers := make([]func([]Line), len(cart.subscribers))
	copy(subscribers, cart.subscribers)
	cart.mutex.RUnlock()

	for _, fn := range subscribers {
		fn(lines)
	}
}

// persist mirrors the full line list into durable storage. The empty cart is
// persisted as an empty array, not a deleted key, so restore never confuses
// "cleared" with "first run".
func (cart *Store) persist(context stdctx.Context) {

	lines := cart.Lines()
	if lines == nil {
		lines = []Line{}
	}

	if err := storage.Persist(context, cart.store, storage.KeyCart, lines); err != nil {
		cart.logger.Warn("cart_persist_failed", slog.Any("error", err))
	}
}
