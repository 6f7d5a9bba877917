// Copyright (c) 2026 Harborview Hotel Group. All rights reserved.
// Author: dev@harborview.app

/*
Package cart implements the client-side dining cart: an ordered list of menu
line items accumulated across one ordering session, prior to and independent
of server-side order submission.

# Architecture

[Store] is an explicit state object with the same lifecycle discipline as the
session manager: constructed once by the application container, restored from
durable storage at startup, mutated only through its documented operations.
Every mutation synchronously mirrors the full line list to the "dining_cart"
storage key, and derived totals are recomputed on every read — never cached,
never stale.
*/
package cart

// Line is one purchasable item entry held client-side.
//
// Name and UnitPrice are display/billing snapshots taken at add time; they are
// not re-fetched if the menu changes afterwards. Field names mirror the wire
// shape the original web client persisted.
type Line struct {
	// ItemID identifies the menu item. Unique key within the cart.
	ItemID string `json:"menuItemId"`

	// Name is the display name snapshot at time of add.
	Name string `json:"name"`

	// UnitPrice is the price snapshot at time of add, in major units.
	UnitPrice float64 `json:"price"`

	// Quantity is always >= 1 for a line present in the cart.
	Quantity int `json:"quantity"`

	// Image is an optional display image reference.
	Image string `json:"image,omitempty"`

	// Note carries optional special instructions for the kitchen.
	Note string `json:"specialInstructions,omitempty"`
}

// Subtotal returns UnitPrice × Quantity for this line.
func (line Line) Subtotal() float64 {
	return line.UnitPrice * float64(line.Quantity)
}
