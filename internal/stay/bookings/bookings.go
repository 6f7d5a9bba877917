// Copyright (c) 2026 Harborview Hotel Group. All rights reserved.
// Author: dev@harborview.app

/*
Package bookings exposes room reservations.

Guests create, read and cancel their own bookings through /bookings; staff
approve, reject and complete any booking through /admin/bookings.
*/
package bookings

import (
	stdctx "context"
	"fmt"

	"github.com/harborview/concierge/internal/platform/transport"
	"github.com/harborview/concierge/pkg/query"
)

// # Types

// Guest is one occupant on a booking. Exactly one is primary.
type Guest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email,omitempty"`
	Phone     string `json:"phone,omitempty"`
	IsPrimary bool   `json:"isPrimary,omitempty"`
}

// Booking is a room reservation as the backend reports it.
type Booking struct {
	ID              string  `json:"_id"`
	UserID          string  `json:"userId"`
	RoomID          string  `json:"roomId"`
	CheckInDate     string  `json:"checkInDate"`
	CheckOutDate    string  `json:"checkOutDate"`
	NumberOfGuests  int     `json:"numberOfGuests"`
	Guests          []Guest `json:"guests"`
	TotalAmount     float64 `json:"totalAmount"`
	Status          string  `json:"status"`
	PaymentStatus   string  `json:"paymentStatus,omitempty"`
	SpecialRequests string  `json:"specialRequests,omitempty"`
}

// Booking status values as the backend reports them.
const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusCancelled = "cancelled"
	StatusCompleted = "completed"
)

// CreateInput carries the fields for a new reservation.
type CreateInput struct {
	RoomID          string  `json:"roomId"`
	CheckInDate     string  `json:"checkInDate"`
	CheckOutDate    string  `json:"checkOutDate"`
	NumberOfGuests  int     `json:"numberOfGuests"`
	Guests          []Guest `json:"guests"`
	SpecialRequests string  `json:"specialRequests,omitempty"`
}

// AdminFilters narrows the back-office booking listing.
type AdminFilters struct {
	Status string
	Page   int
	Limit  int
}

// Pagination echoes the backend's paging envelope for admin listings.
type Pagination struct {
	Page          int `json:"page"`
	Limit         int `json:"limit"`
	TotalPages    int `json:"totalPages"`
	TotalBookings int `json:"totalBookings"`
}

// AdminPage is one page of the back-office booking listing.
type AdminPage struct {
	Bookings   []Booking  `json:"bookings"`
	Pagination Pagination `json:"pagination"`
}

// # Wire Envelopes

type listResponse struct {
	Bookings []Booking `json:"bookings"`
}

type itemResponse struct {
	Booking *Booking `json:"booking"`
}

type reasonPayload struct {
	Reason string `json:"reason,omitempty"`
}

// # Service

// Service is the typed client for the booking endpoints.
type Service struct {
	client *transport.Client
}

// NewService constructs a booking [Service].
func NewService(client *transport.Client) *Service {
	return &Service{client: client}
}

// ListMine returns the signed-in guest's bookings.
func (service *Service) ListMine(context stdctx.Context) ([]Booking, error) {
	var response listResponse
	if err := service.client.Get(context, "/bookings", nil, &response); err != nil {
		return nil, fmt.Errorf("bookings_list_failed: %w", err)
	}
	return response.Bookings, nil
}

// Get returns a single booking by identifier.
func (service *Service) Get(context stdctx.Context, bookingID string) (*Booking, error) {
	var response itemResponse
	if err := service.client.Get(context, "/bookings/"+bookingID, nil, &response); err != nil {
		return nil, fmt.Errorf("bookings_get_failed: %w", err)
	}
	return response.Booking, nil
}

/*
Create places a new reservation.

Description: Dates are ISO calendar dates; availability and price are decided
server-side and reported back on the created booking, which starts in the
pending state until staff accept it.

Parameters:
  - context: context.Context
  - input: Room, date range and guest roster

Returns:
  - *Booking: The created reservation, pending staff review
  - error: Validation or conflict failures from the backend
*/
func (service *Service) Create(context stdctx.Context, input CreateInput) (*Booking, error) {
	var response itemResponse
	if err := service.client.Post(context, "/bookings", input, &response); err != nil {
		return nil, fmt.Errorf("bookings_create_failed: %w", err)
	}
	return response.Booking, nil
}

// Cancel cancels the guest's own booking, with an optional reason.
func (service *Service) Cancel(context stdctx.Context, bookingID string, reason string) (*Booking, error) {
	var response itemResponse
	if err := service.client.Put(context, "/bookings/"+bookingID+"/cancel", reasonPayload{Reason: reason}, &response); err != nil {
		return nil, fmt.Errorf("bookings_cancel_failed: %w", err)
	}
	return response.Booking, nil
}

// # Admin Operations

// AdminList returns a filtered, paginated page of all bookings.
func (service *Service) AdminList(context stdctx.Context, filters AdminFilters) (*AdminPage, error) {
	values := query.New().
		Str("status", filters.Status).
		Int("page", filters.Page).
		Int("limit", filters.Limit).
		Build()

	var page AdminPage
	if err := service.client.Get(context, "/admin/bookings", values, &page); err != nil {
		return nil, fmt.Errorf("bookings_admin_list_failed: %w", err)
	}
	return &page, nil
}

// Accept confirms a pending booking.
func (service *Service) Accept(context stdctx.Context, bookingID string, reason string) error {
	if err := service.client.Put(context, "/admin/bookings/"+bookingID+"/accept", reasonPayload{Reason: reason}, nil); err != nil {
		return fmt.Errorf("bookings_accept_failed: %w", err)
	}
	return nil
}

// Reject declines a pending booking. A reason is required by the backend.
func (service *Service) Reject(context stdctx.Context, bookingID string, reason string) error {
	if err := service.client.Put(context, "/admin/bookings/"+bookingID+"/reject", reasonPayload{Reason: reason}, nil); err != nil {
		return fmt.Errorf("bookings_reject_failed: %w", err)
	}
	return nil
}

// Complete marks a confirmed booking as completed after checkout.
func (service *Service) Complete(context stdctx.Context, bookingID string) error {
	if err := service.client.Put(context, "/admin/bookings/"+bookingID+"/complete", nil, nil); err != nil {
		return fmt.Errorf("bookings_complete_failed: %w", err)
	}
	return nil
}
