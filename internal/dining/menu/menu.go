// Copyright (c) 2026 Harborview Hotel Group. All rights reserved.
// Author: dev@harborview.app

/*
Package menu exposes the dining menu catalogue.

The guest-facing read lives at /dining/menu; item management lives under
/dining/admin/menu and requires an admin session.
*/
package menu

import (
	stdctx "context"
	"fmt"

	"github.com/harborview/concierge/internal/platform/transport"
	"github.com/harborview/concierge/pkg/query"
)

// # Types

// Item is one orderable dish as the backend reports it.
type Item struct {
	ID          string  `json:"_id"`
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	Price       float64 `json:"price"`
	Category    string  `json:"category"`
	Available   bool    `json:"available"`
	Image       string  `json:"image,omitempty"`
}

// ItemInput carries the writable fields for create and update.
type ItemInput struct {
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	Price       float64 `json:"price"`
	Category    string  `json:"category"`
	Available   bool    `json:"available"`
	Image       string  `json:"image,omitempty"`
}

// AdminFilters narrows the back-office menu listing.
type AdminFilters struct {
	Category  string
	Available *bool
	Page      int
	Limit     int
}

// # Wire Envelopes

type listResponse struct {
	Menu []Item `json:"menu"`
}

type itemResponse struct {
	Item *Item `json:"item"`
}

// # Service

// Service is the typed client for the menu endpoints.
type Service struct {
	client *transport.Client
}

// NewService constructs a menu [Service].
func NewService(client *transport.Client) *Service {
	return &Service{client: client}
}

// List returns the menu, optionally filtered to one category.
func (service *Service) List(context stdctx.Context, category string) ([]Item, error) {
	values := query.New().Str("category", category).Build()

	var response listResponse
	if err := service.client.Get(context, "/dining/menu", values, &response); err != nil {
		return nil, fmt.Errorf("menu_list_failed: %w", err)
	}
	return response.Menu, nil
}

// # Admin Operations

// AdminList returns the full menu for the back office, unavailable items included.
func (service *Service) AdminList(context stdctx.Context, filters AdminFilters) ([]Item, error) {
	values := query.New().
		Str("category", filters.Category).
		Bool("available", filters.Available).
		Int("page", filters.Page).
		Int("limit", filters.Limit).
		Build()

	var response listResponse
	if err := service.client.Get(context, "/dining/admin/menu", values, &response); err != nil {
		return nil, fmt.Errorf("menu_admin_list_failed: %w", err)
	}
	return response.Menu, nil
}

// CreateItem adds a dish to the menu.
func (service *Service) CreateItem(context stdctx.Context, input ItemInput) (*Item, error) {
	var response itemResponse
	if err := service.client.Post(context, "/dining/admin/menu", input, &response); err != nil {
		return nil, fmt.Errorf("menu_create_item_failed: %w", err)
	}
	return response.Item, nil
}

// UpdateItem replaces a dish's writable fields.
func (service *Service) UpdateItem(context stdctx.Context, itemID string, input ItemInput) (*Item, error) {
	var response itemResponse
	if err := service.client.Put(context, "/dining/admin/menu/"+itemID, input, &response); err != nil {
		return nil, fmt.Errorf("menu_update_item_failed: %w", err)
	}
	return response.Item, nil
}

// SetAvailability toggles a dish on or off the guest-facing menu.
func (service *Service) SetAvailability(context stdctx.Context, itemID string, available bool) error {
	payload := struct {
		IsAvailable bool `json:"isAvailable"`
	}{IsAvailable: available}

	if err := service.client.Put(context, "/dining/admin/menu/"+itemID+"/status", payload, nil); err != nil {
		return fmt.Errorf("menu_set_availability_failed: %w", err)
	}
	return nil
}

// DeleteItem removes a dish from the menu.
func (service *Service) DeleteItem(context stdctx.Context, itemID string) error {
	if err := service.client.Delete(context, "/dining/admin/menu/"+itemID, nil); err != nil {
		return fmt.Errorf("menu_delete_item_failed: %w", err)
	}
	return nil
}
