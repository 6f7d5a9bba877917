// Copyright (c) 2026 Harborview Hotel Group. All rights reserved.
// Author: dev@harborview.app

/*
Package rooms exposes the hotel room catalogue.

Guest-facing reads go through /rooms; the back-office management surface lives
under /admin/rooms and requires an admin session.
*/
package rooms

import (
	stdctx "context"
	"fmt"

	"github.com/harborview/concierge/internal/platform/transport"
	"github.com/harborview/concierge/pkg/query"
)

// # Types

// Room is a bookable hotel room as the backend reports it.
type Room struct {
	ID          string   `json:"_id"`
	RoomNumber  string   `json:"roomNumber,omitempty"`
	Type        string   `json:"type,omitempty"`
	Price       float64  `json:"price,omitempty"`
	Images      []string `json:"images,omitempty"`
	Description string   `json:"description,omitempty"`
	Status      string   `json:"status,omitempty"`
	Capacity    int      `json:"capacity,omitempty"`
	Amenities   []string `json:"amenities,omitempty"`
}

// RoomInput carries the writable fields for create and update.
type RoomInput struct {
	RoomNumber  string   `json:"roomNumber"`
	Type        string   `json:"type"`
	Price       float64  `json:"price"`
	Description string   `json:"description,omitempty"`
	Images      []string `json:"images,omitempty"`
	Capacity    int      `json:"capacity,omitempty"`
	Amenities   []string `json:"amenities,omitempty"`
}

// AdminFilters narrows the back-office room listing.
type AdminFilters struct {
	Status string
	Type   string
	Page   int
	Limit  int
}

// Pagination echoes the backend's paging envelope for admin listings.
type Pagination struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	TotalPages int `json:"totalPages"`
	TotalRooms int `json:"totalRooms"`
}

// AdminPage is one page of the back-office room listing.
type AdminPage struct {
	Rooms      []Room     `json:"rooms"`
	Pagination Pagination `json:"pagination"`
}

// # Wire Envelopes

type listResponse struct {
	Rooms []Room `json:"rooms"`
}

type itemResponse struct {
	Room *Room `json:"room"`
}

// # Service

// Service is the typed client for the room endpoints.
type Service struct {
	client *transport.Client
}

// NewService constructs a room [Service].
func NewService(client *transport.Client) *Service {
	return &Service{client: client}
}

// List returns the public room catalogue.
func (service *Service) List(context stdctx.Context) ([]Room, error) {
	var response listResponse
	if err := service.client.Get(context, "/rooms", nil, &response); err != nil {
		return nil, fmt.Errorf("rooms_list_failed: %w", err)
	}
	return response.Rooms, nil
}

// Get returns a single room by identifier.
func (service *Service) Get(context stdctx.Context, roomID string) (*Room, error) {
	var response itemResponse
	if err := service.client.Get(context, "/rooms/"+roomID, nil, &response); err != nil {
		return nil, fmt.Errorf("rooms_get_failed: %w", err)
	}
	return response.Room, nil
}

// # Admin Operations

// AdminList returns a filtered, paginated page of rooms for the back office.
func (service *Service) AdminList(context stdctx.Context, filters AdminFilters) (*AdminPage, error) {
	values := query.New().
		Str("status", filters.Status).
		Str("type", filters.Type).
		Int("page", filters.Page).
		Int("limit", filters.Limit).
		Build()

	var page AdminPage
	if err := service.client.Get(context, "/admin/rooms", values, &page); err != nil {
		return nil, fmt.Errorf("rooms_admin_list_failed: %w", err)
	}
	return &page, nil
}

// Create registers a new room.
func (service *Service) Create(context stdctx.Context, input RoomInput) (*Room, error) {
	var response itemResponse
	if err := service.client.Post(context, "/admin/rooms", input, &response); err != nil {
		return nil, fmt.Errorf("rooms_create_failed: %w", err)
	}
	return response.Room, nil
}

// Update replaces a room's writable fields.
func (service *Service) Update(context stdctx.Context, roomID string, input RoomInput) (*Room, error) {
	var response itemResponse
	if err := service.client.Put(context, "/admin/rooms/"+roomID, input, &response); err != nil {
		return nil, fmt.Errorf("rooms_update_failed: %w", err)
	}
	return response.Room, nil
}

// UpdateStatus moves a room through its housekeeping lifecycle.
func (service *Service) UpdateStatus(context stdctx.Context, roomID string, status string, notes string) error {
	payload := struct {
		Status string `json:"status"`
		Notes  string `json:"notes,omitempty"`
	}{Status: status, Notes: notes}

	if err := service.client.Put(context, "/admin/rooms/"+roomID+"/status", payload, nil); err != nil {
		return fmt.Errorf("rooms_update_status_failed: %w", err)
	}
	return nil
}

// Delete removes a room from the catalogue.
func (service *Service) Delete(context stdctx.Context, roomID string) error {
	if err := service.client.Delete(context, "/admin/rooms/"+roomID, nil); err != nil {
		return fmt.Errorf("rooms_delete_failed: %w", err)
	}
	return nil
}

// DeleteImage removes one gallery image from a room by its index.
func (service *Service) DeleteImage(context stdctx.Context, roomID string, imageIndex int) error {
	path := fmt.Sprintf("/admin/rooms/%s/images/%d", roomID, imageIndex)
	if err := service.client.Delete(context, path, nil); err != nil {
		return fmt.Errorf("rooms_delete_image_failed: %w", err)
	}
	return nil
}
