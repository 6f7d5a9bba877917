// Copyright (c) 2026 Harborview Hotel Group. All rights reserved.
// Author: dev@harborview.app

package cart_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harborview/concierge/internal/dining/cart"
	"github.com/harborview/concierge/internal/platform/storage"
)

func newStore(t *testing.T) (*cart.Store, *storage.MemoryStore) {
	t.Helper()
	backing := storage.NewMemoryStore()
	return cart.NewStore(backing, slog.New(slog.NewTextHandler(io.Discard, nil))), backing
}

/*
TestStore_AddMergesQuantities verifies the merge invariant: any sequence of
Add calls with the same ItemID yields exactly one line whose quantity is the
sum of all added quantities.

Scenario from the contract: [{A, qty 2, price 5}] + add {A, qty 3, price 5}
→ line {A, qty 5}, totalAmount 25, totalItems 5.
*/
func TestStore_AddMergesQuantities(t *testing.T) {
	ctx := context.Background()
	store, _ := newStore(t)

	store.Add(ctx, cart.Line{ItemID: "A", Name: "Club Sandwich", UnitPrice: 5, Quantity: 2})
	store.Add(ctx, cart.Line{ItemID: "A", Name: "Club Sandwich", UnitPrice: 5, Quantity: 3})

	lines := store.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, "A", lines[0].ItemID)
	assert.Equal(t, 5, lines[0].Quantity)
	assert.Equal(t, 25.0, store.TotalAmount())
	assert.Equal(t, 5, store.TotalItems())
}

/*
TestStore_PreservesInsertionOrder verifies that distinct items keep their
insertion order through merges, removals, and quantity updates.
*/
func TestStore_PreservesInsertionOrder(t *testing.T) {
	ctx := context.Background()
	store, _ := newStore(t)

	store.Add(ctx, cart.Line{ItemID: "A", UnitPrice: 5, Quantity: 1})
	store.Add(ctx, cart.Line{ItemID: "B", UnitPrice: 3, Quantity: 1})
	store.Add(ctx, cart.Line{ItemID: "C", UnitPrice: 7, Quantity: 1})
	store.Add(ctx, cart.Line{ItemID: "A", UnitPrice: 5, Quantity: 1}) // merge, not move

	ids := func() []string {
		var out []string
		for _, line := range store.Lines() {
			out = append(out, line.ItemID)
		}
		return out
	}

	assert.Equal(t, []string{"A", "B", "C"}, ids())

	store.Remove(ctx, "B")
	assert.Equal(t, []string{"A", "C"}, ids())
}

/*
TestStore_SetQuantity verifies the quantity rules: q < 1 removes the line,
positive q replaces it, and an absent itemID is a no-op.
*/
func TestStore_SetQuantity(t *testing.T) {
	ctx := context.Background()
	store, _ := newStore(t)

	store.Add(ctx, cart.Line{ItemID: "A", UnitPrice: 4, Quantity: 2})

	// 1. Replace quantity
	store.SetQuantity(ctx, "A", 7)
	require.Len(t, store.Lines(), 1)
	assert.Equal(t, 7, store.Lines()[0].Quantity)
	assert.Equal(t, 28.0, store.TotalAmount())

	// 2. Absent id is a no-op
	store.SetQuantity(ctx, "ghost", 3)
	assert.Len(t, store.Lines(), 1)

	// 3. Zero and negative quantities remove the line
	store.SetQuantity(ctx, "A", 0)
	assert.Empty(t, store.Lines())

	store.Add(ctx, cart.Line{ItemID: "B", UnitPrice: 2, Quantity: 1})
	store.SetQuantity(ctx, "B", -5)
	assert.Empty(t, store.Lines())
}

/*
TestStore_RemoveIdempotent verifies that removing an absent line is a no-op.
*/
func TestStore_RemoveIdempotent(t *testing.T) {
	ctx := context.Background()
	store, _ := newStore(t)

	store.Remove(ctx, "never-added")
	assert.Empty(t, store.Lines())

	store.Add(ctx, cart.Line{ItemID: "A", UnitPrice: 1, Quantity: 1})
	store.Remove(ctx, "A")
	store.Remove(ctx, "A")
	assert.Empty(t, store.Lines())
}

/*
TestStore_TotalsRecomputed verifies that totals always equal the sum over the
current lines after arbitrary add/remove/setQuantity sequences.
*/
func TestStore_TotalsRecomputed(t *testing.T) {
	ctx := context.Background()
	store, _ := newStore(t)

	store.Add(ctx, cart.Line{ItemID: "A", UnitPrice: 5, Quantity: 2})
	store.Add(ctx, cart.Line{ItemID: "B", UnitPrice: 3.5, Quantity: 4})
	store.SetQuantity(ctx, "A", 1)
	store.Remove(ctx, "B")
	store.Add(ctx, cart.Line{ItemID: "C", UnitPrice: 10, Quantity: 3})

	assert.Equal(t, 35.0, store.TotalAmount())
	assert.Equal(t, 4, store.TotalItems())

	store.Clear(ctx)
	assert.Zero(t, store.TotalAmount())
	assert.Zero(t, store.TotalItems())
}

/*
TestStore_PersistRestoreRoundTrip verifies that persisting then restoring the
cart in a fresh store yields an identical line list, order preserved.
*/
func TestStore_PersistRestoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	backing := storage.NewMemoryStore()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	first := cart.NewStore(backing, logger)
	first.Add(ctx, cart.Line{ItemID: "A", Name: "Pad Thai", UnitPrice: 12.5, Quantity: 2, Note: "no peanuts"})
	first.Add(ctx, cart.Line{ItemID: "B", Name: "Iced Tea", UnitPrice: 3, Quantity: 1, Image: "tea.jpg"})

	second := cart.NewStore(backing, logger)
	second.Restore(ctx)

	assert.Equal(t, first.Lines(), second.Lines())
	assert.Equal(t, first.TotalAmount(), second.TotalAmount())
}

/*
TestStore_RestoreMalformed verifies that corrupt persisted cart data degrades
to the empty cart without surfacing an error.
*/
func TestStore_RestoreMalformed(t *testing.T) {
	ctx := context.Background()
	backing := storage.NewMemoryStore()
	require.NoError(t, backing.Set(ctx, storage.KeyCart, []byte(`{"not":"an array"`)))

	store := cart.NewStore(backing, slog.New(slog.NewTextHandler(io.Discard, nil)))
	store.Restore(ctx)

	assert.Empty(t, store.Lines())
	assert.Zero(t, store.TotalAmount())
}

/*
TestStore_RestoreSanitizes verifies that hand-edited persisted state that
violates the invariants (duplicate ids, zero quantities) is repaired on
restore rather than trusted.
*/
func TestStore_RestoreSanitizes(t *testing.T) {
	ctx := context.Background()
	backing := storage.NewMemoryStore()
	blob := `[
		{"menuItemId":"A","price":5,"quantity":2},
		{"menuItemId":"","price":1,"quantity":1},
		{"menuItemId":"B","price":3,"quantity":0},
		{"menuItemId":"A","price":5,"quantity":3}
	]`
	require.NoError(t, backing.Set(ctx, storage.KeyCart, []byte(blob)))

	store := cart.NewStore(backing, slog.New(slog.NewTextHandler(io.Discard, nil)))
	store.Restore(ctx)

	lines := store.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, "A", lines[0].ItemID)
	assert.Equal(t, 5, lines[0].Quantity)
}

/*
TestStore_MutationsMirrorToStorage verifies that every mutation synchronously
rewrites the dining_cart key, including clearing to an empty array.
*/
func TestStore_MutationsMirrorToStorage(t *testing.T) {
	ctx := context.Background()
	store, backing := newStore(t)

	store.Add(ctx, cart.Line{ItemID: "A", UnitPrice: 5, Quantity: 1})

	raw, err := backing.Get(ctx, storage.KeyCart)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"menuItemId":"A"`)

	store.Clear(ctx)
	raw, err = backing.Get(ctx, storage.KeyCart)
	require.NoError(t, err)
	assert.JSONEq(t, `[]`, string(raw))
}

/*
TestStore_Subscribe verifies that subscribers observe each mutation with the
post-mutation line list.
*/
func TestStore_Subscribe(t *testing.T) {
	ctx := context.Background()
	store, _ := newStore(t)

	var counts []int
	store.Subscribe(func(lines []cart.Line) { counts = append(counts, len(lines)) })

	store.Add(ctx, cart.Line{ItemID: "A", UnitPrice: 5, Quantity: 1})
	store.Add(ctx, cart.Line{ItemID: "B", UnitPrice: 5, Quantity: 1})
	store.Remove(ctx, "A")
	store.Clear(ctx)

	assert.Equal(t, []int{1, 2, 1, 0}, counts)
}
