// Copyright (c) 2026 Harborview Hotel Group. All rights reserved.
// Author: dev@harborview.app

/*
Package checkout exposes checkout sessions.

A checkout session aggregates every chargeable service a guest consumed during
a stay (room, food, car, custom requests) into one bill with taxes and a
payment status. Guests read and settle their own sessions; finance staff list
and audit all sessions under /checkout/admin.
*/
package checkout

import (
	stdctx "context"
	"fmt"

	"github.com/harborview/concierge/internal/platform/transport"
	"github.com/harborview/concierge/pkg/query"
)

// # Types

// ServiceItem is one chargeable line on a checkout session.
type ServiceItem struct {
	Type         string  `json:"type"`
	ServiceID    string  `json:"serviceId"`
	ServiceModel string  `json:"serviceModel"`
	Description  string  `json:"description"`
	Amount       float64 `json:"amount"`
	Status       string  `json:"status"`
	AddedAt      string  `json:"addedAt"`
}

// Session is a checkout session as the backend reports it.
type Session struct {
	ID             string        `json:"_id"`
	UserID         string        `json:"userId"`
	CheckInDate    string        `json:"checkInDate"`
	CheckOutDate   string        `json:"checkOutDate"`
	NumberOfNights int           `json:"numberOfNights"`
	Services       []ServiceItem `json:"services"`
	Subtotal       float64       `json:"subtotal"`
	Taxes          float64       `json:"taxes"`
	TotalAmount    float64       `json:"totalAmount"`
	Status         string        `json:"status"`
	PaymentStatus  string        `json:"paymentStatus"`
	CreatedAt      string        `json:"createdAt,omitempty"`
	UpdatedAt      string        `json:"updatedAt,omitempty"`
}

// Session status values.
const (
	StatusActive    = "active"
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"
)

// AdminFilters narrows the finance listing.
type AdminFilters struct {
	Status string
	Page   int
	Limit  int
}

// AdminStats summarizes revenue for the finance dashboard.
type AdminStats struct {
	TotalSessions     int     `json:"totalSessions"`
	ActiveSessions    int     `json:"activeSessions"`
	CompletedSessions int     `json:"completedSessions"`
	TotalRevenue      float64 `json:"totalRevenue"`
}

// # Wire Envelopes

type sessionsResponse struct {
	Sessions []Session `json:"sessions"`
}

type sessionResponse struct {
	Session *Session `json:"session"`
}

type summaryResponse struct {
	Summary *Session `json:"summary"`
}

type completeRequest struct {
	CheckoutID    string `json:"checkoutId"`
	PaymentMethod string `json:"paymentMethod"`
	Notes         string `json:"notes,omitempty"`
}

// # Service

// Service is the typed client for the checkout endpoints.
type Service struct {
	client *transport.Client
}

// NewService constructs a checkout [Service].
func NewService(client *transport.Client) *Service {
	return &Service{client: client}
}

// Sessions returns the signed-in guest's checkout sessions.
func (service *Service) Sessions(context stdctx.Context) ([]Session, error) {
	var response sessionsResponse
	if err := service.client.Get(context, "/checkout/sessions", nil, &response); err != nil {
		return nil, fmt.Errorf("checkout_sessions_failed: %w", err)
	}
	return response.Sessions, nil
}

// Summary returns the running bill for a stay window without settling it.
func (service *Service) Summary(context stdctx.Context, checkInDate string, checkOutDate string) (*Session, error) {
	values := query.New().
		Str("checkInDate", checkInDate).
		Str("checkOutDate", checkOutDate).
		Build()

	var response summaryResponse
	if err := service.client.Get(context, "/checkout/summary", values, &response); err != nil {
		return nil, fmt.Errorf("checkout_summary_failed: %w", err)
	}
	return response.Summary, nil
}

/*
Complete settles a checkout session.

Description: Settlement is idempotent server-side; completing an already
settled session is a conflict, not a double charge.

Parameters:
  - context: context.Context
  - checkoutID: Session to settle
  - paymentMethod: How the guest paid
  - notes: Optional free-form settlement notes

Returns:
  - *Session: The settled session
  - error: Conflict or backend failures
*/
func (service *Service) Complete(context stdctx.Context, checkoutID string, paymentMethod string, notes string) (*Session, error) {
	request := completeRequest{
		CheckoutID:    checkoutID,
		PaymentMethod: paymentMethod,
		Notes:         notes,
	}

	var response sessionResponse
	if err := service.client.Post(context, "/checkout/complete", request, &response); err != nil {
		return nil, fmt.Errorf("checkout_complete_failed: %w", err)
	}
	return response.Session, nil
}

// # Admin Operations

// AdminSessions returns a filtered page of all checkout sessions.
func (service *Service) AdminSessions(context stdctx.Context, filters AdminFilters) ([]Session, error) {
	values := query.New().
		Str("status", filters.Status).
		Int("page", filters.Page).
		Int("limit", filters.Limit).
		Build()

	var response sessionsResponse
	if err := service.client.Get(context, "/checkout/admin/sessions", values, &response); err != nil {
		return nil, fmt.Errorf("checkout_admin_sessions_failed: %w", err)
	}
	return response.Sessions, nil
}

// AdminStats returns revenue counters for the finance dashboard.
func (service *Service) AdminStats(context stdctx.Context) (*AdminStats, error) {
	var stats AdminStats
	if err := service.client.Get(context, "/checkout/admin/stats", nil, &stats); err != nil {
		return nil, fmt.Errorf("checkout_admin_stats_failed: %w", err)
	}
	return &stats, nil
}
